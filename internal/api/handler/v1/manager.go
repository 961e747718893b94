package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sorteo-app/raffles-api/internal/api/handler/v1/request"
	"github.com/sorteo-app/raffles-api/internal/api/handler/v1/response"
	"github.com/sorteo-app/raffles-api/internal/domain"
	"github.com/sorteo-app/raffles-api/internal/service"
)

type ManagerService interface {
	Get(ctx context.Context, caller domain.Principal, managerNumber uint) (domain.Manager, error)
	List(ctx context.Context, caller domain.Principal, limit, offset int) ([]domain.Manager, error)
	Update(ctx context.Context, caller domain.Principal, managerNumber uint, update service.ManagerUpdate) (domain.Manager, error)
	Delete(ctx context.Context, caller domain.Principal, managerNumber uint) error
}

type ManagerHandler struct {
	svc ManagerService
}

func NewManagerHandler(svc ManagerService) *ManagerHandler {
	return &ManagerHandler{
		svc: svc,
	}
}

func (h *ManagerHandler) renderManagerErr(ctx *gin.Context, op string, managerNumber uint, err error) {
	switch {
	case errors.Is(err, service.ErrPermissionDenied):
		response.RenderErr(ctx, response.ErrPermissionDenied(err))
	case errors.Is(err, service.ErrManagerNotFound):
		response.RenderErr(ctx, response.ErrNotFound("manager", "manager_number", managerNumber))
	case errors.Is(err, service.ErrManagerUsernameExists):
		response.RenderErr(ctx, response.ErrConflict(service.ErrManagerUsernameExists))
	case errors.Is(err, service.ErrDeleteFailed):
		response.RenderErr(ctx, response.ErrConflict(err))
	default:
		renderServiceErr(ctx, fmt.Errorf("v1.%v -> %w", op, err))
	}
}

// HandleGetManager godoc
// @Summary      Get one manager of the caller's entity
// @Tags         managers
// @Produce      json
// @Security     Bearer
// @Param        managerNumber  path      int  true  "Manager number"
// @Success      200      {object}   domain.Manager
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /managers/{managerNumber} [get]
func (h *ManagerHandler) HandleGetManager(ctx *gin.Context) {
	caller, err := principalFromContext(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrUnauthorized(err))

		return
	}

	managerNumber, err := parseUintParam(ctx, "managerNumber")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	manager, err := h.svc.Get(ctx.Request.Context(), caller, managerNumber)
	if err != nil {
		h.renderManagerErr(ctx, "HandleGetManager", managerNumber, err)

		return
	}

	ctx.JSON(http.StatusOK, manager)
}

// HandleListManagers godoc
// @Summary      List the managers of the caller's entity
// @Tags         managers
// @Produce      json
// @Security     Bearer
// @Param        limit    query     int  false  "Page size (0 = all)"
// @Param        offset   query     int  false  "Page offset"
// @Success      200      {array}    domain.Manager
// @Failure      403      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /managers [get]
func (h *ManagerHandler) HandleListManagers(ctx *gin.Context) {
	caller, err := principalFromContext(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrUnauthorized(err))

		return
	}

	limit, offset, err := parsePagination(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	managers, err := h.svc.List(ctx.Request.Context(), caller, limit, offset)
	if err != nil {
		h.renderManagerErr(ctx, "HandleListManagers", 0, err)

		return
	}

	ctx.JSON(http.StatusOK, managers)
}

// HandleUpdateManager godoc
// @Summary      Update a manager of the caller's entity
// @Tags         managers
// @Produce      json
// @Security     Bearer
// @Param        managerNumber  path      int  true  "Manager number"
// @Param        request  body      request.UpdateManagerRequest true "request body"
// @Success      200      {object}   domain.Manager
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /managers/{managerNumber} [patch]
func (h *ManagerHandler) HandleUpdateManager(ctx *gin.Context) {
	caller, err := principalFromContext(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrUnauthorized(err))

		return
	}

	managerNumber, err := parseUintParam(ctx, "managerNumber")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	var req request.UpdateManagerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	manager, err := h.svc.Update(ctx.Request.Context(), caller, managerNumber, service.ManagerUpdate{
		Username: req.Username,
		Password: req.Password,
		IsActive: req.IsActive,
	})
	if err != nil {
		h.renderManagerErr(ctx, "HandleUpdateManager", managerNumber, err)

		return
	}

	ctx.JSON(http.StatusOK, manager)
}

// HandleDeleteManager godoc
// @Summary      Delete a manager of the caller's entity
// @Tags         managers
// @Produce      json
// @Security     Bearer
// @Param        managerNumber  path      int  true  "Manager number"
// @Success      200      {object}   response.DeletedResponse
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /managers/{managerNumber} [delete]
func (h *ManagerHandler) HandleDeleteManager(ctx *gin.Context) {
	caller, err := principalFromContext(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrUnauthorized(err))

		return
	}

	managerNumber, err := parseUintParam(ctx, "managerNumber")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := h.svc.Delete(ctx.Request.Context(), caller, managerNumber); err != nil {
		h.renderManagerErr(ctx, "HandleDeleteManager", managerNumber, err)

		return
	}

	ctx.JSON(http.StatusOK, response.DeletedResponse{Message: "manager deleted"})
}
