package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sorteo-app/raffles-api/internal/api/handler/v1/response"
	"github.com/sorteo-app/raffles-api/internal/domain"
	"github.com/sorteo-app/raffles-api/internal/service"
)

type EntityService interface {
	Get(ctx context.Context, caller domain.Principal) (domain.Entity, error)
	Delete(ctx context.Context, caller domain.Principal) error
}

type EntityHandler struct {
	svc EntityService
}

func NewEntityHandler(svc EntityService) *EntityHandler {
	return &EntityHandler{
		svc: svc,
	}
}

// HandleGetEntity godoc
// @Summary      Get the caller's entity
// @Tags         entity
// @Produce      json
// @Security     Bearer
// @Success      200      {object}   domain.Entity
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /entity [get]
func (h *EntityHandler) HandleGetEntity(ctx *gin.Context) {
	caller, err := principalFromContext(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrUnauthorized(err))

		return
	}

	entity, err := h.svc.Get(ctx.Request.Context(), caller)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPermissionDenied):
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
		case errors.Is(err, service.ErrEntityNotFound):
			response.RenderErr(ctx, response.ErrNotFound("entity", "id", caller.EntityID))
		default:
			renderServiceErr(ctx, fmt.Errorf("v1.HandleGetEntity -> h.svc.Get -> %w", err))
		}

		return
	}

	ctx.JSON(http.StatusOK, entity)
}

// HandleDeleteEntity godoc
// @Summary      Delete the caller's entity and everything it owns
// @Tags         entity
// @Produce      json
// @Security     Bearer
// @Success      200      {object}   response.DeletedResponse
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /entity [delete]
func (h *EntityHandler) HandleDeleteEntity(ctx *gin.Context) {
	caller, err := principalFromContext(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrUnauthorized(err))

		return
	}

	if err := h.svc.Delete(ctx.Request.Context(), caller); err != nil {
		switch {
		case errors.Is(err, service.ErrPermissionDenied):
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
		case errors.Is(err, service.ErrEntityNotFound):
			response.RenderErr(ctx, response.ErrNotFound("entity", "id", caller.EntityID))
		case errors.Is(err, service.ErrDeleteFailed):
			response.RenderErr(ctx, response.ErrConflict(err))
		default:
			renderServiceErr(ctx, fmt.Errorf("v1.HandleDeleteEntity -> h.svc.Delete -> %w", err))
		}

		return
	}

	ctx.JSON(http.StatusOK, response.DeletedResponse{Message: "entity deleted"})
}
