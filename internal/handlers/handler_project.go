package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/EstateBooks/plot_booking_app/internal/apperrors"
	portssvc "github.com/EstateBooks/plot_booking_app/internal/core/ports/services"
	"github.com/EstateBooks/plot_booking_app/internal/dto"
	"github.com/EstateBooks/plot_booking_app/internal/middleware"
)

// projectHandler handles HTTP requests related to projects.
type projectHandler struct {
	projectService portssvc.ProjectSvcFacade
}

func newProjectHandler(projectService portssvc.ProjectSvcFacade) *projectHandler {
	return &projectHandler{projectService: projectService}
}

func (h *projectHandler) createProject(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateProject", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	project, err := h.projectService.CreateProject(c.Request.Context(), req, creatorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			logger.Warn("Project code already exists", slog.String("code", req.Code))
			c.JSON(http.StatusConflict, ErrorResponse{Error: "A project with this code already exists"})
			return
		}
		logger.Error("Failed to create project", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create project"})
		return
	}

	logger.Info("Project created successfully", slog.String("project_id", project.ProjectID))
	c.JSON(http.StatusCreated, dto.ToProjectResponse(project))
}

func (h *projectHandler) getProject(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	projectID := c.Param("projectID")

	project, err := h.projectService.GetProjectByID(c.Request.Context(), projectID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Project not found"})
			return
		}
		logger.Error("Failed to get project", slog.String("error", err.Error()), slog.String("project_id", projectID))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve project"})
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectResponse(project))
}

func (h *projectHandler) updateProject(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	projectID := c.Param("projectID")

	var req dto.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateProject", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	project, err := h.projectService.UpdateProject(c.Request.Context(), projectID, req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Project not found"})
			return
		}
		logger.Error("Failed to update project", slog.String("error", err.Error()), slog.String("project_id", projectID))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to update project"})
		return
	}

	logger.Info("Project updated successfully", slog.String("project_id", projectID))
	c.JSON(http.StatusOK, dto.ToProjectResponse(project))
}

func (h *projectHandler) listProjects(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	projects, err := h.projectService.ListProjects(c.Request.Context(), params.Limit, params.Offset)
	if err != nil {
		logger.Error("Failed to list projects", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list projects"})
		return
	}

	responses := make([]dto.ProjectResponse, len(projects))
	for i := range projects {
		responses[i] = dto.ToProjectResponse(&projects[i])
	}
	c.JSON(http.StatusOK, gin.H{"projects": responses})
}

// registerProjectRoutes registers project specific routes.
func registerProjectRoutes(group *gin.RouterGroup, projectService portssvc.ProjectSvcFacade) {
	h := newProjectHandler(projectService)

	projects := group.Group("/projects")
	{
		projects.POST("", h.createProject)
		projects.GET("", h.listProjects)
		projects.GET("/:projectID", h.getProject)
		projects.PUT("/:projectID", h.updateProject)
	}
}
