package v1

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
)

func parseUintParam(ctx *gin.Context, name string) (uint, error) {
	v, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid %v", name)
	}

	return uint(v), nil
}

// parsePagination reads limit/offset query parameters. A missing or zero
// limit means unbounded.
func parsePagination(ctx *gin.Context) (limit, offset int, err error) {
	limit, err = strconv.Atoi(ctx.DefaultQuery("limit", "0"))
	if err != nil || limit < 0 {
		return 0, 0, fmt.Errorf("invalid limit")
	}

	offset, err = strconv.Atoi(ctx.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		return 0, 0, fmt.Errorf("invalid offset")
	}

	return limit, offset, nil
}
