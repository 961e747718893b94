package v1

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/sorteo-app/raffles-api/internal/api/handler/v1/response"
	"github.com/sorteo-app/raffles-api/internal/service"
)

// renderServiceErr maps the faults every service can return. A store outage
// is a distinct, retryable condition; anything else unexpected is a 500.
func renderServiceErr(ctx *gin.Context, err error) {
	if errors.Is(err, service.ErrStoreUnavailable) {
		response.RenderErr(ctx, response.ErrServiceUnavailable(err))

		return
	}

	response.RenderErr(ctx, response.ErrInternalServerError(err))
}
