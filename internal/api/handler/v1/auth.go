package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sorteo-app/raffles-api/internal/api/handler/v1/request"
	"github.com/sorteo-app/raffles-api/internal/api/handler/v1/response"
	"github.com/sorteo-app/raffles-api/internal/config"
	"github.com/sorteo-app/raffles-api/internal/domain"
	"github.com/sorteo-app/raffles-api/internal/pkg/jwthelper"
	"github.com/sorteo-app/raffles-api/internal/service"
)

type AuthService interface {
	RegisterEntity(ctx context.Context, entity domain.Entity) (domain.Entity, error)
	LoginEntity(ctx context.Context, name, password string) (domain.Entity, error)
	RegisterManager(ctx context.Context, caller domain.Principal, manager domain.Manager) (domain.Manager, error)
	LoginManager(ctx context.Context, entityName, username, password string) (domain.Manager, error)
}

type AuthHandler struct {
	conf *config.APIConfig
	svc  AuthService
}

func NewAuthHandler(conf *config.APIConfig, svc AuthService) *AuthHandler {
	return &AuthHandler{
		conf: conf,
		svc:  svc,
	}
}

// HandleRegisterEntity godoc
// @Summary      Register a new entity
// @Tags         auth
// @Produce      json
// @Param        request   body      request.RegisterEntityRequest true "request body"
// @Success      201      {object}   domain.Entity
// @Failure      400      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /auth/entity/register [post]
func (h *AuthHandler) HandleRegisterEntity(ctx *gin.Context) {
	var req request.RegisterEntityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	entity, err := h.svc.RegisterEntity(ctx.Request.Context(), domain.Entity{
		Name:        req.Name,
		Password:    req.Password,
		Description: req.Description,
	})
	if err != nil {
		if errors.Is(err, service.ErrEntityNameExists) {
			response.RenderErr(ctx, response.ErrConflict(service.ErrEntityNameExists))

			return
		}

		renderServiceErr(ctx, fmt.Errorf("v1.HandleRegisterEntity -> h.svc.RegisterEntity -> %w", err))

		return
	}

	ctx.JSON(http.StatusCreated, entity)
}

// HandleLoginEntity godoc
// @Summary      Login as an entity
// @Tags         auth
// @Produce      json
// @Param        request   body      request.LoginEntityRequest true "request body"
// @Success      200      {object}   response.EntityLoginResponse
// @Failure      401      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /auth/entity/login [post]
func (h *AuthHandler) HandleLoginEntity(ctx *gin.Context) {
	var req request.LoginEntityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	entity, err := h.svc.LoginEntity(ctx.Request.Context(), req.Name, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrEntityNotFound) || errors.Is(err, service.ErrWrongPassword) {
			response.RenderErr(ctx, response.ErrWrongCredentials(err))

			return
		}

		renderServiceErr(ctx, fmt.Errorf("v1.HandleLoginEntity -> h.svc.LoginEntity -> %w", err))

		return
	}

	token, err := jwthelper.GenerateToken([]byte(h.conf.JWTSigningKey), domain.Principal{
		EntityID: entity.ID,
		Role:     domain.RoleEntity,
	})
	if err != nil {
		renderServiceErr(ctx, fmt.Errorf("v1.HandleLoginEntity -> jwthelper.GenerateToken -> %w", err))

		return
	}

	ctx.JSON(http.StatusOK, response.EntityLoginResponse{
		Token:  token,
		Entity: entity,
	})
}

// HandleLoginManager godoc
// @Summary      Login as a manager of an entity
// @Tags         auth
// @Produce      json
// @Param        request   body      request.LoginManagerRequest true "request body"
// @Success      200      {object}   response.ManagerLoginResponse
// @Failure      401      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /auth/manager/login [post]
func (h *AuthHandler) HandleLoginManager(ctx *gin.Context) {
	var req request.LoginManagerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	manager, err := h.svc.LoginManager(ctx.Request.Context(), req.EntityName, req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEntityNotFound),
			errors.Is(err, service.ErrManagerNotFound),
			errors.Is(err, service.ErrWrongPassword):
			response.RenderErr(ctx, response.ErrWrongCredentials(err))
		case errors.Is(err, service.ErrManagerInactive):
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
		default:
			renderServiceErr(ctx, fmt.Errorf("v1.HandleLoginManager -> h.svc.LoginManager -> %w", err))
		}

		return
	}

	token, err := jwthelper.GenerateToken([]byte(h.conf.JWTSigningKey), domain.Principal{
		EntityID:      manager.EntityID,
		Role:          domain.RoleManager,
		ManagerNumber: manager.ManagerNumber,
	})
	if err != nil {
		renderServiceErr(ctx, fmt.Errorf("v1.HandleLoginManager -> jwthelper.GenerateToken -> %w", err))

		return
	}

	ctx.JSON(http.StatusOK, response.ManagerLoginResponse{
		Token:   token,
		Manager: manager,
	})
}

// HandleRegisterManager godoc
// @Summary      Register a manager for the caller's entity
// @Tags         managers
// @Produce      json
// @Security     Bearer
// @Param        request   body      request.RegisterManagerRequest true "request body"
// @Success      201      {object}   domain.Manager
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /managers [post]
func (h *AuthHandler) HandleRegisterManager(ctx *gin.Context) {
	caller, err := principalFromContext(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrUnauthorized(err))

		return
	}

	var req request.RegisterManagerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	manager, err := h.svc.RegisterManager(ctx.Request.Context(), caller, domain.Manager{
		Username: req.Username,
		Password: req.Password,
		IsActive: true,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPermissionDenied):
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
		case errors.Is(err, service.ErrManagerUsernameExists):
			response.RenderErr(ctx, response.ErrConflict(service.ErrManagerUsernameExists))
		default:
			renderServiceErr(ctx, fmt.Errorf("v1.HandleRegisterManager -> h.svc.RegisterManager -> %w", err))
		}

		return
	}

	ctx.JSON(http.StatusCreated, manager)
}
