package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/sorteo-app/raffles-api/internal/api/handler/v1/request"
	"github.com/sorteo-app/raffles-api/internal/api/handler/v1/response"
	"github.com/sorteo-app/raffles-api/internal/domain"
	"github.com/sorteo-app/raffles-api/internal/repository"
	"github.com/sorteo-app/raffles-api/internal/service"
)

type RaffleService interface {
	Get(ctx context.Context, caller domain.Principal, projectNumber, raffleNumber uint) (domain.Raffle, error)
	List(ctx context.Context, caller domain.Principal, projectNumber uint, filter repository.ListFilter, limit, offset int) ([]domain.Raffle, error)
	Sell(ctx context.Context, caller domain.Principal, projectNumber, raffleNumber, buyerNumber uint, paymentMethod domain.PaymentMethod, sellerNumber *uint) (domain.Raffle, error)
	Update(ctx context.Context, caller domain.Principal, projectNumber, raffleNumber uint, update service.RaffleUpdate) (domain.Raffle, error)
	Delete(ctx context.Context, caller domain.Principal, projectNumber, raffleNumber uint) error
}

type RaffleHandler struct {
	svc RaffleService
}

func NewRaffleHandler(svc RaffleService) *RaffleHandler {
	return &RaffleHandler{
		svc: svc,
	}
}

func (h *RaffleHandler) renderRaffleErr(ctx *gin.Context, op string, raffleNumber uint, err error) {
	switch {
	case errors.Is(err, service.ErrPermissionDenied):
		response.RenderErr(ctx, response.ErrPermissionDenied(err))
	case errors.Is(err, service.ErrRaffleNotFound):
		response.RenderErr(ctx, response.ErrNotFound("raffle", "raffle_number", raffleNumber))
	case errors.Is(err, service.ErrBuyerNotFound):
		response.RenderErr(ctx, response.ErrBadRequest(service.ErrBuyerNotFound))
	case errors.Is(err, service.ErrManagerNotFound):
		response.RenderErr(ctx, response.ErrBadRequest(service.ErrManagerNotFound))
	case errors.Is(err, service.ErrRaffleNotSellable):
		response.RenderErr(ctx, response.ErrConflict(service.ErrRaffleNotSellable))
	case errors.Is(err, service.ErrDeleteFailed):
		response.RenderErr(ctx, response.ErrConflict(err))
	default:
		renderServiceErr(ctx, fmt.Errorf("v1.%v -> %w", op, err))
	}
}

// HandleGetRaffle godoc
// @Summary      Get one raffle of a project
// @Tags         raffles
// @Produce      json
// @Security     Bearer
// @Param        projectNumber  path      int  true  "Project number"
// @Param        raffleNumber   path      int  true  "Raffle number"
// @Success      200      {object}   domain.Raffle
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /projects/{projectNumber}/raffles/{raffleNumber} [get]
func (h *RaffleHandler) HandleGetRaffle(ctx *gin.Context) {
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

	raffleNumber, err := parseUintParam(ctx, "raffleNumber")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	raffle, err := h.svc.Get(ctx.Request.Context(), caller, projectNumber, raffleNumber)
	if err != nil {
		h.renderRaffleErr(ctx, "HandleGetRaffle", raffleNumber, err)

		return
	}

	ctx.JSON(http.StatusOK, raffle)
}

// HandleListRaffles godoc
// @Summary      List the raffles of a project
// @Tags         raffles
// @Produce      json
// @Security     Bearer
// @Param        projectNumber  path      int  true  "Project number"
// @Param        set_number  query     int     false  "Filter by raffle set"
// @Param        state       query     string  false  "Filter by state (available|reserved|sold)"
// @Param        limit    query     int  false  "Page size (0 = all)"
// @Param        offset   query     int  false  "Page offset"
// @Success      200      {array}    domain.Raffle
// @Failure      400      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /projects/{projectNumber}/raffles [get]
func (h *RaffleHandler) HandleListRaffles(ctx *gin.Context) {
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

	var filter repository.ListFilter
	if raw := ctx.Query("set_number"); raw != "" {
		v, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			response.RenderErr(ctx, response.ErrBadRequest(errors.New("invalid set_number")))

			return
		}
		setNumber := uint(v)
		filter.SetNumber = &setNumber
	}
	if raw := ctx.Query("state"); raw != "" {
		state := domain.RaffleState(raw)
		switch state {
		case domain.RaffleAvailable, domain.RaffleReserved, domain.RaffleSold:
			filter.State = &state
		default:
			response.RenderErr(ctx, response.ErrBadRequest(errors.New("invalid state")))

			return
		}
	}

	raffles, err := h.svc.List(ctx.Request.Context(), caller, projectNumber, filter, limit, offset)
	if err != nil {
		h.renderRaffleErr(ctx, "HandleListRaffles", 0, err)

		return
	}

	ctx.JSON(http.StatusOK, raffles)
}

// HandleSellRaffle godoc
// @Summary      Sell a raffle to a buyer
// @Tags         raffles
// @Produce      json
// @Security     Bearer
// @Param        projectNumber  path      int  true  "Project number"
// @Param        raffleNumber   path      int  true  "Raffle number"
// @Param        request  body      request.SellRaffleRequest true "request body"
// @Success      200      {object}   domain.Raffle
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /projects/{projectNumber}/raffles/{raffleNumber}/sell [post]
func (h *RaffleHandler) HandleSellRaffle(ctx *gin.Context) {
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

	raffleNumber, err := parseUintParam(ctx, "raffleNumber")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	var req request.SellRaffleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	raffle, err := h.svc.Sell(ctx.Request.Context(), caller, projectNumber, raffleNumber,
		req.BuyerNumber, domain.PaymentMethod(req.PaymentMethod), req.SellerNumber)
	if err != nil {
		h.renderRaffleErr(ctx, "HandleSellRaffle", raffleNumber, err)

		return
	}

	ctx.JSON(http.StatusOK, raffle)
}

// HandleUpdateRaffle godoc
// @Summary      Update the reservation state of a raffle
// @Tags         raffles
// @Produce      json
// @Security     Bearer
// @Param        projectNumber  path      int  true  "Project number"
// @Param        raffleNumber   path      int  true  "Raffle number"
// @Param        request  body      request.UpdateRaffleRequest true "request body"
// @Success      200      {object}   domain.Raffle
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /projects/{projectNumber}/raffles/{raffleNumber} [patch]
func (h *RaffleHandler) HandleUpdateRaffle(ctx *gin.Context) {
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

	raffleNumber, err := parseUintParam(ctx, "raffleNumber")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	var req request.UpdateRaffleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	var update service.RaffleUpdate
	if req.State != nil {
		state := domain.RaffleState(*req.State)
		update.State = &state
	}

	raffle, err := h.svc.Update(ctx.Request.Context(), caller, projectNumber, raffleNumber, update)
	if err != nil {
		h.renderRaffleErr(ctx, "HandleUpdateRaffle", raffleNumber, err)

		return
	}

	ctx.JSON(http.StatusOK, raffle)
}

// HandleDeleteRaffle godoc
// @Summary      Delete a raffle
// @Tags         raffles
// @Produce      json
// @Security     Bearer
// @Param        projectNumber  path      int  true  "Project number"
// @Param        raffleNumber   path      int  true  "Raffle number"
// @Success      200      {object}   response.DeletedResponse
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /projects/{projectNumber}/raffles/{raffleNumber} [delete]
func (h *RaffleHandler) HandleDeleteRaffle(ctx *gin.Context) {
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

	raffleNumber, err := parseUintParam(ctx, "raffleNumber")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := h.svc.Delete(ctx.Request.Context(), caller, projectNumber, raffleNumber); err != nil {
		h.renderRaffleErr(ctx, "HandleDeleteRaffle", raffleNumber, err)

		return
	}

	ctx.JSON(http.StatusOK, response.DeletedResponse{Message: "raffle deleted"})
}
