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
	"github.com/sorteo-app/raffles-api/internal/service"
)

type BuyerService interface {
	Create(ctx context.Context, caller domain.Principal, buyer domain.Buyer) (domain.Buyer, error)
	Get(ctx context.Context, caller domain.Principal, buyerNumber uint) (domain.Buyer, error)
	List(ctx context.Context, caller domain.Principal, createdByManagerNumber *uint, limit, offset int) ([]domain.Buyer, error)
	Update(ctx context.Context, caller domain.Principal, buyerNumber uint, update service.BuyerUpdate) (domain.Buyer, error)
	Delete(ctx context.Context, caller domain.Principal, buyerNumber uint) error
}

type BuyerHandler struct {
	svc BuyerService
}

func NewBuyerHandler(svc BuyerService) *BuyerHandler {
	return &BuyerHandler{
		svc: svc,
	}
}

func (h *BuyerHandler) renderBuyerErr(ctx *gin.Context, op string, buyerNumber uint, err error) {
	switch {
	case errors.Is(err, service.ErrPermissionDenied):
		response.RenderErr(ctx, response.ErrPermissionDenied(err))
	case errors.Is(err, service.ErrBuyerNotFound):
		response.RenderErr(ctx, response.ErrNotFound("buyer", "buyer_number", buyerNumber))
	case errors.Is(err, service.ErrBuyerExists):
		response.RenderErr(ctx, response.ErrConflict(service.ErrBuyerExists))
	case errors.Is(err, service.ErrDeleteFailed):
		response.RenderErr(ctx, response.ErrConflict(err))
	default:
		renderServiceErr(ctx, fmt.Errorf("v1.%v -> %w", op, err))
	}
}

// HandleCreateBuyer godoc
// @Summary      Register a buyer for the caller's entity
// @Tags         buyers
// @Produce      json
// @Security     Bearer
// @Param        request  body      request.CreateBuyerRequest true "request body"
// @Success      201      {object}   domain.Buyer
// @Failure      400      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /buyers [post]
func (h *BuyerHandler) HandleCreateBuyer(ctx *gin.Context) {
	caller, err := principalFromContext(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrUnauthorized(err))

		return
	}

	var req request.CreateBuyerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	buyer, err := h.svc.Create(ctx.Request.Context(), caller, domain.Buyer{
		Name:  req.Name,
		Phone: req.Phone,
		Email: req.Email,
	})
	if err != nil {
		h.renderBuyerErr(ctx, "HandleCreateBuyer", 0, err)

		return
	}

	ctx.JSON(http.StatusCreated, buyer)
}

// HandleGetBuyer godoc
// @Summary      Get one buyer of the caller's entity
// @Tags         buyers
// @Produce      json
// @Security     Bearer
// @Param        buyerNumber  path      int  true  "Buyer number"
// @Success      200      {object}   domain.Buyer
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /buyers/{buyerNumber} [get]
func (h *BuyerHandler) HandleGetBuyer(ctx *gin.Context) {
	caller, err := principalFromContext(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrUnauthorized(err))

		return
	}

	buyerNumber, err := parseUintParam(ctx, "buyerNumber")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	buyer, err := h.svc.Get(ctx.Request.Context(), caller, buyerNumber)
	if err != nil {
		h.renderBuyerErr(ctx, "HandleGetBuyer", buyerNumber, err)

		return
	}

	ctx.JSON(http.StatusOK, buyer)
}

// HandleListBuyers godoc
// @Summary      List the buyers of the caller's entity
// @Description  Managers only see buyers they registered themselves.
// @Tags         buyers
// @Produce      json
// @Security     Bearer
// @Param        created_by  query     int  false  "Filter by creating manager"
// @Param        limit    query     int  false  "Page size (0 = all)"
// @Param        offset   query     int  false  "Page offset"
// @Success      200      {array}    domain.Buyer
// @Failure      400      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /buyers [get]
func (h *BuyerHandler) HandleListBuyers(ctx *gin.Context) {
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

	var createdBy *uint
	if raw := ctx.Query("created_by"); raw != "" {
		v, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			response.RenderErr(ctx, response.ErrBadRequest(errors.New("invalid created_by")))

			return
		}
		managerNumber := uint(v)
		createdBy = &managerNumber
	}

	buyers, err := h.svc.List(ctx.Request.Context(), caller, createdBy, limit, offset)
	if err != nil {
		h.renderBuyerErr(ctx, "HandleListBuyers", 0, err)

		return
	}

	ctx.JSON(http.StatusOK, buyers)
}

// HandleUpdateBuyer godoc
// @Summary      Update a buyer
// @Description  Managers may only update buyers they registered themselves.
// @Tags         buyers
// @Produce      json
// @Security     Bearer
// @Param        buyerNumber  path      int  true  "Buyer number"
// @Param        request  body      request.UpdateBuyerRequest true "request body"
// @Success      200      {object}   domain.Buyer
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /buyers/{buyerNumber} [patch]
func (h *BuyerHandler) HandleUpdateBuyer(ctx *gin.Context) {
	caller, err := principalFromContext(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrUnauthorized(err))

		return
	}

	buyerNumber, err := parseUintParam(ctx, "buyerNumber")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	var req request.UpdateBuyerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	buyer, err := h.svc.Update(ctx.Request.Context(), caller, buyerNumber, service.BuyerUpdate{
		Name:  req.Name,
		Phone: req.Phone,
		Email: req.Email,
	})
	if err != nil {
		h.renderBuyerErr(ctx, "HandleUpdateBuyer", buyerNumber, err)

		return
	}

	ctx.JSON(http.StatusOK, buyer)
}

// HandleDeleteBuyer godoc
// @Summary      Delete a buyer
// @Description  Managers may only delete buyers they registered themselves.
// @Tags         buyers
// @Produce      json
// @Security     Bearer
// @Param        buyerNumber  path      int  true  "Buyer number"
// @Success      200      {object}   response.DeletedResponse
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /buyers/{buyerNumber} [delete]
func (h *BuyerHandler) HandleDeleteBuyer(ctx *gin.Context) {
	caller, err := principalFromContext(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrUnauthorized(err))

		return
	}

	buyerNumber, err := parseUintParam(ctx, "buyerNumber")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := h.svc.Delete(ctx.Request.Context(), caller, buyerNumber); err != nil {
		h.renderBuyerErr(ctx, "HandleDeleteBuyer", buyerNumber, err)

		return
	}

	ctx.JSON(http.StatusOK, response.DeletedResponse{Message: "buyer deleted"})
}
