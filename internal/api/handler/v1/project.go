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

type ProjectService interface {
	Create(ctx context.Context, caller domain.Principal, project domain.Project) (domain.Project, error)
	Get(ctx context.Context, caller domain.Principal, projectNumber uint) (domain.Project, error)
	List(ctx context.Context, caller domain.Principal, limit, offset int) ([]domain.Project, error)
	Update(ctx context.Context, caller domain.Principal, projectNumber uint, update service.ProjectUpdate) (domain.Project, error)
	Delete(ctx context.Context, caller domain.Principal, projectNumber uint) error
}

type ProjectHandler struct {
	svc ProjectService
}

func NewProjectHandler(svc ProjectService) *ProjectHandler {
	return &ProjectHandler{
		svc: svc,
	}
}

func (h *ProjectHandler) renderProjectErr(ctx *gin.Context, op string, projectNumber uint, err error) {
	switch {
	case errors.Is(err, service.ErrPermissionDenied):
		response.RenderErr(ctx, response.ErrPermissionDenied(err))
	case errors.Is(err, service.ErrProjectNotFound):
		response.RenderErr(ctx, response.ErrNotFound("project", "project_number", projectNumber))
	case errors.Is(err, service.ErrDeleteFailed):
		response.RenderErr(ctx, response.ErrConflict(err))
	default:
		renderServiceErr(ctx, fmt.Errorf("v1.%v -> %w", op, err))
	}
}

// HandleCreateProject godoc
// @Summary      Create a raffle project
// @Tags         projects
// @Produce      json
// @Security     Bearer
// @Param        request  body      request.CreateProjectRequest true "request body"
// @Success      201      {object}   domain.Project
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /projects [post]
func (h *ProjectHandler) HandleCreateProject(ctx *gin.Context) {
	caller, err := principalFromContext(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrUnauthorized(err))

		return
	}

	var req request.CreateProjectRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	project, err := h.svc.Create(ctx.Request.Context(), caller, domain.Project{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		h.renderProjectErr(ctx, "HandleCreateProject", 0, err)

		return
	}

	ctx.JSON(http.StatusCreated, project)
}

// HandleGetProject godoc
// @Summary      Get one project of the caller's entity
// @Tags         projects
// @Produce      json
// @Security     Bearer
// @Param        projectNumber  path      int  true  "Project number"
// @Success      200      {object}   domain.Project
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /projects/{projectNumber} [get]
func (h *ProjectHandler) HandleGetProject(ctx *gin.Context) {
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

	project, err := h.svc.Get(ctx.Request.Context(), caller, projectNumber)
	if err != nil {
		h.renderProjectErr(ctx, "HandleGetProject", projectNumber, err)

		return
	}

	ctx.JSON(http.StatusOK, project)
}

// HandleListProjects godoc
// @Summary      List the projects of the caller's entity
// @Tags         projects
// @Produce      json
// @Security     Bearer
// @Param        limit    query     int  false  "Page size (0 = all)"
// @Param        offset   query     int  false  "Page offset"
// @Success      200      {array}    domain.Project
// @Failure      403      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /projects [get]
func (h *ProjectHandler) HandleListProjects(ctx *gin.Context) {
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

	projects, err := h.svc.List(ctx.Request.Context(), caller, limit, offset)
	if err != nil {
		h.renderProjectErr(ctx, "HandleListProjects", 0, err)

		return
	}

	ctx.JSON(http.StatusOK, projects)
}

// HandleUpdateProject godoc
// @Summary      Update a project of the caller's entity
// @Tags         projects
// @Produce      json
// @Security     Bearer
// @Param        projectNumber  path      int  true  "Project number"
// @Param        request  body      request.UpdateProjectRequest true "request body"
// @Success      200      {object}   domain.Project
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /projects/{projectNumber} [patch]
func (h *ProjectHandler) HandleUpdateProject(ctx *gin.Context) {
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

	var req request.UpdateProjectRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	project, err := h.svc.Update(ctx.Request.Context(), caller, projectNumber, service.ProjectUpdate{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		h.renderProjectErr(ctx, "HandleUpdateProject", projectNumber, err)

		return
	}

	ctx.JSON(http.StatusOK, project)
}

// HandleDeleteProject godoc
// @Summary      Delete a project with its raffle sets and raffles
// @Tags         projects
// @Produce      json
// @Security     Bearer
// @Param        projectNumber  path      int  true  "Project number"
// @Success      200      {object}   response.DeletedResponse
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /projects/{projectNumber} [delete]
func (h *ProjectHandler) HandleDeleteProject(ctx *gin.Context) {
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

	if err := h.svc.Delete(ctx.Request.Context(), caller, projectNumber); err != nil {
		h.renderProjectErr(ctx, "HandleDeleteProject", projectNumber, err)

		return
	}

	ctx.JSON(http.StatusOK, response.DeletedResponse{Message: "project deleted"})
}
