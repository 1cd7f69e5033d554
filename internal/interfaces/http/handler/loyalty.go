package handler

import (
	"cmp"
	"slices"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sooquk/dashboard/internal/domain/loyalty"
	"github.com/sooquk/dashboard/internal/infrastructure/memdb"
)

// PointsHandler serves loyalty point terms and settings
type PointsHandler struct {
	BaseHandler
	db *memdb.DB
}

// NewPointsHandler creates a new PointsHandler
func NewPointsHandler(db *memdb.DB) *PointsHandler {
	return &PointsHandler{db: db}
}

// RegisterRoutes registers the points routes
func (h *PointsHandler) RegisterRoutes(rg *gin.RouterGroup) {
	points := rg.Group("/points")
	{
		points.GET("/settings", h.GetSettings)
		points.PUT("/settings", h.UpdateSettings)

		points.GET("/terms", h.ListTerms)
		points.POST("/terms", h.CreateTerm)
		points.GET("/terms/:id", h.GetTerm)
		points.PUT("/terms/:id", h.UpdateTerm)
		points.DELETE("/terms/:id", h.DeleteTerm)
	}
}

// GetSettings returns the points settings
func (h *PointsHandler) GetSettings(c *gin.Context) {
	h.Success(c, h.db.Settings())
}

// UpdateSettings replaces the points settings
func (h *PointsHandler) UpdateSettings(c *gin.Context) {
	var s loyalty.PointsSettings
	if !h.bindValid(c, &s) {
		return
	}
	s.UpdatedAt = time.Now().UTC()
	h.db.SetSettings(s)
	h.Success(c, s)
}

// ListTerms returns a page of point terms by display order
func (h *PointsHandler) ListTerms(c *gin.Context) {
	active := queryBool(c, "isActive")
	search := c.Query("search")

	rows := h.db.PointTerms.Find(func(t loyalty.PointTerm) bool {
		return (active == nil || t.IsActive == *active) &&
			matches(search, t.Title, t.TitleAr, t.Description)
	})
	slices.SortStableFunc(rows, func(a, b loyalty.PointTerm) int {
		return cmp.Compare(a.DisplayOrder, b.DisplayOrder)
	})
	sendPage(&h.BaseHandler, c, rows)
}

// GetTerm returns one point term
func (h *PointsHandler) GetTerm(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	t, ok := h.db.PointTerms.Get(id)
	if !ok {
		h.NotFound(c, "Point term not found")
		return
	}
	h.Success(c, t)
}

// CreateTerm adds a point term
func (h *PointsHandler) CreateTerm(c *gin.Context) {
	var in loyalty.PointTermInput
	if !h.bindValid(c, &in) {
		return
	}
	t := loyalty.PointTerm{
		PointTermID: h.db.PointTermIDs.Next(),
		CreatedAt:   time.Now().UTC(),
	}
	applyTerm(&t, in)
	h.db.PointTerms.Put(t)
	h.Created(c, t)
}

// UpdateTerm replaces a point term
func (h *PointsHandler) UpdateTerm(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var in loyalty.PointTermInput
	if !h.bindValid(c, &in) {
		return
	}
	t, err := h.db.PointTerms.Update(id, func(t *loyalty.PointTerm) error {
		applyTerm(t, in)
		return nil
	})
	if err != nil {
		h.notFoundOr(c, err, "Point term not found")
		return
	}
	h.Success(c, t)
}

// DeleteTerm removes a point term
func (h *PointsHandler) DeleteTerm(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	if !h.db.PointTerms.Delete(id) {
		h.NotFound(c, "Point term not found")
		return
	}
	h.Message(c, "Point term deleted")
}

func applyTerm(t *loyalty.PointTerm, in loyalty.PointTermInput) {
	t.Title = in.Title
	t.TitleAr = in.TitleAr
	t.Description = in.Description
	t.DescriptionAr = in.DescriptionAr
	t.Points = in.Points
	t.DisplayOrder = in.DisplayOrder
	t.IsActive = in.IsActive
}
