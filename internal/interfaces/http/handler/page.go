package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/sooquk/dashboard/internal/domain/shared"
	"github.com/sooquk/dashboard/internal/infrastructure/memdb"
	"github.com/sooquk/dashboard/internal/interfaces/http/dto"
)

// sendPage answers with one {items, pagination} page of rows
func sendPage[T any](h *BaseHandler, c *gin.Context, rows []T) {
	page, size := paging(c, shared.ParamPageNumber, shared.ParamPageSize)
	h.Success(c, dto.NewListData(memdb.Page(rows, page, size), page, size, int64(len(rows))))
}
