package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"pos-backend/models"
)

const (
	defaultPageNumber = 1
	defaultPageSize   = 10
	maxPageSize       = 100
)

func respondOK(ctx *gin.Context, status int, message string, data interface{}) {
	ctx.JSON(status, models.Response{IsSuccess: true, Message: message, Data: data})
}

func respondError(ctx *gin.Context, status int, message string) {
	ctx.JSON(status, models.Response{IsSuccess: false, Message: message})
}

// parsePaginationParams reads pageNumber and pageSize from the query string.
// Missing, malformed or non-positive values fall back to the defaults and the
// page size is capped at maxPageSize.
func parsePaginationParams(ctx *gin.Context) (int, int) {
	page := defaultPageNumber
	if raw := ctx.Query("pageNumber"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			page = v
		}
	}

	size := defaultPageSize
	if raw := ctx.Query("pageSize"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			size = v
		}
	}
	if size > maxPageSize {
		size = maxPageSize
	}
	return page, size
}

func parseIDParam(ctx *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}
