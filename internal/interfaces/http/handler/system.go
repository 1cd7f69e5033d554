package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sooquk/dashboard/internal/domain/shared"
	"github.com/sooquk/dashboard/internal/domain/system"
	"github.com/sooquk/dashboard/internal/infrastructure/memdb"
)

// ErrorLogHandler serves the backend error log
type ErrorLogHandler struct {
	BaseHandler
	db *memdb.DB
}

// NewErrorLogHandler creates a new ErrorLogHandler
func NewErrorLogHandler(db *memdb.DB) *ErrorLogHandler {
	return &ErrorLogHandler{db: db}
}

// RegisterRoutes registers the error log routes
func (h *ErrorLogHandler) RegisterRoutes(rg *gin.RouterGroup) {
	logs := rg.Group("/error-logs")
	{
		logs.GET("", h.List)
		logs.GET("/types", h.Types)
		logs.GET("/:id", h.Get)
		logs.PUT("/:id/resolve", h.Resolve)
		logs.DELETE("/:id", h.Delete)
	}
}

// List returns a page of error logs. The stack trace is left out.
func (h *ErrorLogHandler) List(c *gin.Context) {
	typ := c.Query("type")
	severity := system.ErrorSeverity(c.Query("severity"))
	resolved := queryBool(c, "isResolved")
	from, to := queryTime(c, "fromDate"), queryTime(c, "toDate")
	search := c.Query("search")

	rows := h.db.ErrorLogs.Find(func(e system.ErrorLog) bool {
		return (typ == "" || e.Type == typ) &&
			(severity == "" || e.Severity == severity) &&
			(resolved == nil || e.IsResolved == *resolved) &&
			inRange(e.OccurredAt, from, to) &&
			matches(search, e.Message, e.Source, e.Path)
	})
	for i := range rows {
		rows[i].StackTrace = ""
	}
	sendPage(&h.BaseHandler, c, rows)
}

// Types returns the error log taxonomy
func (h *ErrorLogHandler) Types(c *gin.Context) {
	h.Success(c, h.db.ErrorLogTypes)
}

// Get returns one error log with its stack trace
func (h *ErrorLogHandler) Get(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	e, ok := h.db.ErrorLogs.Get(id)
	if !ok {
		h.NotFound(c, "Error log not found")
		return
	}
	h.Success(c, e)
}

// Resolve marks an error log as handled. Resolving twice is rejected.
func (h *ErrorLogHandler) Resolve(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req system.ResolveRequest
	if !h.bindJSON(c, &req) {
		return
	}
	if err := shared.ValidateStruct(req); err != nil {
		h.HandleError(c, err)
		return
	}
	e, err := h.db.ErrorLogs.Update(id, func(e *system.ErrorLog) error {
		if e.IsResolved {
			return shared.NewDomainError("INVALID_STATE", "Error log is already resolved")
		}
		now := time.Now().UTC()
		e.IsResolved = true
		e.ResolvedAt = &now
		return nil
	})
	if err != nil {
		h.notFoundOr(c, err, "Error log not found")
		return
	}
	h.Success(c, e)
}

// Delete removes an error log
func (h *ErrorLogHandler) Delete(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	if !h.db.ErrorLogs.Delete(id) {
		h.NotFound(c, "Error log not found")
		return
	}
	h.Message(c, "Error log deleted")
}
