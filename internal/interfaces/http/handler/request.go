package handler

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/sooquk/dashboard/internal/domain/shared"
)

// validatable is a request that checks itself
type validatable interface {
	Validate() error
}

// bindJSON decodes the body into dst, answering 400 on malformed JSON
func (h *BaseHandler) bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return false
	}
	return true
}

// bindValid decodes and validates the body
func (h *BaseHandler) bindValid(c *gin.Context, dst validatable) bool {
	if !h.bindJSON(c, dst) {
		return false
	}
	if err := dst.Validate(); err != nil {
		h.HandleError(c, err)
		return false
	}
	return true
}

// pathID parses an int64 path parameter, answering 400 when malformed
func (h *BaseHandler) pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		h.BadRequest(c, "Invalid "+name)
		return 0, false
	}
	return id, true
}

// paging reads the 1-based page and page size. Missing or malformed values
// fall back to the first page of the default size.
func paging(c *gin.Context, pageKey, sizeKey string) (page, size int) {
	page, _ = strconv.Atoi(c.Query(pageKey))
	size, _ = strconv.Atoi(c.Query(sizeKey))
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = shared.DefaultPageSize
	}
	return page, min(size, 100)
}

func queryBool(c *gin.Context, key string) *bool {
	v, err := strconv.ParseBool(c.Query(key))
	if err != nil {
		return nil
	}
	return &v
}

func queryInt64(c *gin.Context, key string) *int64 {
	v, err := strconv.ParseInt(c.Query(key), 10, 64)
	if err != nil {
		return nil
	}
	return &v
}

func queryDecimal(c *gin.Context, key string) *decimal.Decimal {
	v, err := decimal.NewFromString(c.Query(key))
	if err != nil {
		return nil
	}
	return &v
}

func queryTime(c *gin.Context, key string) *time.Time {
	raw := c.Query(key)
	for _, layout := range []string{time.RFC3339, time.DateOnly} {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t
		}
	}
	return nil
}

// matches reports whether any of fields contains the search term, ignoring
// case. An empty term matches everything.
func matches(term string, fields ...string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}

func inRange(t time.Time, from, to *time.Time) bool {
	if from != nil && t.Before(*from) {
		return false
	}
	if to != nil && t.After(*to) {
		return false
	}
	return true
}
