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

type RaffleSetService interface {
	Create(ctx context.Context, caller domain.Principal, set domain.RaffleSet, quantity uint) (domain.RaffleSet, error)
	Get(ctx context.Context, caller domain.Principal, projectNumber, setNumber uint) (domain.RaffleSet, error)
	List(ctx context.Context, caller domain.Principal, projectNumber uint, limit, offset int) ([]domain.RaffleSet, error)
	Update(ctx context.Context, caller domain.Principal, projectNumber, setNumber uint, update service.RaffleSetUpdate) (domain.RaffleSet, error)
	Delete(ctx context.Context, caller domain.Principal, projectNumber, setNumber uint) error
}

type RaffleSetHandler struct {
	svc RaffleSetService
}

func NewRaffleSetHandler(svc RaffleSetService) *RaffleSetHandler {
	return &RaffleSetHandler{
		svc: svc,
	}
}

func (h *RaffleSetHandler) renderRaffleSetErr(ctx *gin.Context, op string, setNumber uint, err error) {
	switch {
	case errors.Is(err, service.ErrPermissionDenied):
		response.RenderErr(ctx, response.ErrPermissionDenied(err))
	case errors.Is(err, service.ErrProjectNotFound):
		response.RenderErr(ctx, response.ErrBadRequest(service.ErrProjectNotFound))
	case errors.Is(err, service.ErrRaffleSetNotFound):
		response.RenderErr(ctx, response.ErrNotFound("raffle set", "set_number", setNumber))
	case errors.Is(err, service.ErrInvalidQuantity):
		response.RenderErr(ctx, response.ErrBadRequest(err))
	case errors.Is(err, service.ErrDeleteFailed):
		response.RenderErr(ctx, response.ErrConflict(err))
	default:
		renderServiceErr(ctx, fmt.Errorf("v1.%v -> %w", op, err))
	}
}

// HandleCreateRaffleSet godoc
// @Summary      Add a raffle set to a project, materializing its raffles
// @Tags         rafflesets
// @Produce      json
// @Security     Bearer
// @Param        projectNumber  path      int  true  "Project number"
// @Param        request  body      request.CreateRaffleSetRequest true "request body"
// @Success      201      {object}   domain.RaffleSet
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /projects/{projectNumber}/rafflesets [post]
func (h *RaffleSetHandler) HandleCreateRaffleSet(ctx *gin.Context) {
	caller, err := principalFromContext(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrUnauthorized(err))

		return
	}

	projectNumber, err := parseUintParam(ctx, "projectNumber")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	var req request.CreateRaffleSetRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	set, err := h.svc.Create(ctx.Request.Context(), caller, domain.RaffleSet{
		ProjectNumber: projectNumber,
		Name:          req.Name,
		Type:          domain.SetType(req.Type),
		UnitPrice:     req.UnitPrice,
	}, req.Quantity)
	if err != nil {
		h.renderRaffleSetErr(ctx, "HandleCreateRaffleSet", 0, err)

		return
	}

	ctx.JSON(http.StatusCreated, set)
}

// HandleGetRaffleSet godoc
// @Summary      Get one raffle set of a project
// @Tags         rafflesets
// @Produce      json
// @Security     Bearer
// @Param        projectNumber  path      int  true  "Project number"
// @Param        setNumber      path      int  true  "Set number"
// @Success      200      {object}   domain.RaffleSet
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /projects/{projectNumber}/rafflesets/{setNumber} [get]
func (h *RaffleSetHandler) HandleGetRaffleSet(ctx *gin.Context) {
	caller, err := principalFromContext(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrUnauthorized(err))

		return
	}

	projectNumber, err := parseUintParam(ctx, "projectNumber")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	setNumber, err := parseUintParam(ctx, "setNumber")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	set, err := h.svc.Get(ctx.Request.Context(), caller, projectNumber, setNumber)
	if err != nil {
		h.renderRaffleSetErr(ctx, "HandleGetRaffleSet", setNumber, err)

		return
	}

	ctx.JSON(http.StatusOK, set)
}

// HandleListRaffleSets godoc
// @Summary      List the raffle sets of a project
// @Tags         rafflesets
// @Produce      json
// @Security     Bearer
// @Param        projectNumber  path      int  true  "Project number"
// @Param        limit    query     int  false  "Page size (0 = all)"
// @Param        offset   query     int  false  "Page offset"
// @Success      200      {array}    domain.RaffleSet
// @Failure      403      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /projects/{projectNumber}/rafflesets [get]
func (h *RaffleSetHandler) HandleListRaffleSets(ctx *gin.Context) {
	caller, err := principalFromContext(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrUnauthorized(err))

		return
	}

	projectNumber, err := parseUintParam(ctx, "projectNumber")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	limit, offset, err := parsePagination(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	sets, err := h.svc.List(ctx.Request.Context(), caller, projectNumber, limit, offset)
	if err != nil {
		h.renderRaffleSetErr(ctx, "HandleListRaffleSets", 0, err)

		return
	}

	ctx.JSON(http.StatusOK, sets)
}

// HandleUpdateRaffleSet godoc
// @Summary      Update a raffle set
// @Tags         rafflesets
// @Produce      json
// @Security     Bearer
// @Param        projectNumber  path      int  true  "Project number"
// @Param        setNumber      path      int  true  "Set number"
// @Param        request  body      request.UpdateRaffleSetRequest true "request body"
// @Success      200      {object}   domain.RaffleSet
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /projects/{projectNumber}/rafflesets/{setNumber} [patch]
func (h *RaffleSetHandler) HandleUpdateRaffleSet(ctx *gin.Context) {
	caller, err := principalFromContext(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrUnauthorized(err))

		return
	}

	projectNumber, err := parseUintParam(ctx, "projectNumber")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	setNumber, err := parseUintParam(ctx, "setNumber")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	var req request.UpdateRaffleSetRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	update := service.RaffleSetUpdate{
		Name:      req.Name,
		UnitPrice: req.UnitPrice,
	}
	if req.Type != nil {
		setType := domain.SetType(*req.Type)
		update.Type = &setType
	}

	set, err := h.svc.Update(ctx.Request.Context(), caller, projectNumber, setNumber, update)
	if err != nil {
		h.renderRaffleSetErr(ctx, "HandleUpdateRaffleSet", setNumber, err)

		return
	}

	ctx.JSON(http.StatusOK, set)
}

// HandleDeleteRaffleSet godoc
// @Summary      Delete a raffle set together with its raffles
// @Tags         rafflesets
// @Produce      json
// @Security     Bearer
// @Param        projectNumber  path      int  true  "Project number"
// @Param        setNumber      path      int  true  "Set number"
// @Success      200      {object}   response.DeletedResponse
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /projects/{projectNumber}/rafflesets/{setNumber} [delete]
func (h *RaffleSetHandler) HandleDeleteRaffleSet(ctx *gin.Context) {
	caller, err := principalFromContext(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrUnauthorized(err))

		return
	}

	projectNumber, err := parseUintParam(ctx, "projectNumber")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	setNumber, err := parseUintParam(ctx, "setNumber")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := h.svc.Delete(ctx.Request.Context(), caller, projectNumber, setNumber); err != nil {
		h.renderRaffleSetErr(ctx, "HandleDeleteRaffleSet", setNumber, err)

		return
	}

	ctx.JSON(http.StatusOK, response.DeletedResponse{Message: "raffle set deleted"})
}
