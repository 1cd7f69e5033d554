package handler

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sooquk/dashboard/internal/domain/system"
	"github.com/sooquk/dashboard/internal/infrastructure/apiclient"
	"github.com/sooquk/dashboard/internal/infrastructure/memdb"
	"github.com/sooquk/dashboard/internal/interfaces/http/dto"
)

func errorLogDB() *memdb.DB {
	db := fixtureDB()
	db.ErrorLogs.Put(system.ErrorLog{
		ID: db.ErrorLogIDs.Next(), Type: "Database", Severity: system.SeverityCritical,
		Source: "OrderService", Message: "deadlock detected", StackTrace: "at OrderService.Save()",
		OccurredAt: time.Date(2026, 4, 2, 8, 0, 0, 0, time.UTC),
	})
	db.ErrorLogs.Put(system.ErrorLog{
		ID: db.ErrorLogIDs.Next(), Type: "Validation", Severity: system.SeverityWarning,
		Source: "CouponService", Message: "bad coupon", IsResolved: true,
		OccurredAt: time.Date(2026, 4, 5, 8, 0, 0, 0, time.UTC),
	})
	return db
}

func TestErrorLogs_ListStripsStackTrace(t *testing.T) {
	engine := asAdmin(NewErrorLogHandler(errorLogDB()))

	_, env := do(t, engine, http.MethodGet, "/api/error-logs?severity=Critical&isResolved=false", nil)
	page := data[listData[system.ErrorLog]](t, env)
	require.Len(t, page.Items, 1)
	assert.Empty(t, page.Items[0].StackTrace)

	_, env = do(t, engine, http.MethodGet, "/api/error-logs/1", nil)
	assert.Equal(t, "at OrderService.Save()", data[system.ErrorLog](t, env).StackTrace)

	_, env = do(t, engine, http.MethodGet, "/api/error-logs?fromDate=2026-04-03", nil)
	page = data[listData[system.ErrorLog]](t, env)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "bad coupon", page.Items[0].Message)
}

func TestErrorLogs_ResolveOnce(t *testing.T) {
	engine := asAdmin(NewErrorLogHandler(errorLogDB()))

	rec, env := do(t, engine, http.MethodPut, "/api/error-logs/1/resolve", apiclient.JSON(system.ResolveRequest{Note: "retried"}))
	require.Equal(t, http.StatusOK, rec.Code)
	e := data[system.ErrorLog](t, env)
	assert.True(t, e.IsResolved)
	assert.NotNil(t, e.ResolvedAt)

	rec, env = do(t, engine, http.MethodPut, "/api/error-logs/1/resolve", apiclient.JSON(system.ResolveRequest{}))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, dto.ErrCodeInvalidState, env.Error.Code)
}

func TestErrorLogs_Delete(t *testing.T) {
	db := errorLogDB()
	engine := asAdmin(NewErrorLogHandler(db))

	rec, _ := do(t, engine, http.MethodDelete, "/api/error-logs/2", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, db.ErrorLogs.Len())

	rec, _ = do(t, engine, http.MethodDelete, "/api/error-logs/2", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
