package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	projectUC "github.com/khoahotran/skillfolio/internal/application/usecase/project"
	"github.com/khoahotran/skillfolio/pkg/apperror"
	"github.com/khoahotran/skillfolio/pkg/logger"
)

type ProjectHandler struct {
	createProjectUseCase *projectUC.CreateProjectUseCase
	listProjectsUseCase  *projectUC.ListProjectsUseCase
	getProjectUseCase    *projectUC.GetProjectUseCase
	updateProjectUseCase *projectUC.UpdateProjectUseCase
	deleteProjectUseCase *projectUC.DeleteProjectUseCase
	logger               logger.Logger
}

func NewProjectHandler(
	createUC *projectUC.CreateProjectUseCase,
	listUC *projectUC.ListProjectsUseCase,
	getUC *projectUC.GetProjectUseCase,
	updateUC *projectUC.UpdateProjectUseCase,
	deleteUC *projectUC.DeleteProjectUseCase,
	log logger.Logger,
) *ProjectHandler {
	return &ProjectHandler{
		createProjectUseCase: createUC,
		listProjectsUseCase:  listUC,
		getProjectUseCase:    getUC,
		updateProjectUseCase: updateUC,
		deleteProjectUseCase: deleteUC,
		logger:               log,
	}
}

func (h *ProjectHandler) CreateProject(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	sec, ok := sectorParam(c)
	if !ok {
		return
	}
	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid request data", err))
		return
	}

	input := projectUC.CreateProjectInput{
		UserID:        userID,
		Title:         req.Title,
		Description:   req.Description,
		Sector:        string(sec),
		Category:      req.Category,
		SkillsUsed:    req.SkillsUsed,
		Technologies:  req.Technologies,
		Outcomes:      req.Outcomes,
		Impact:        req.Impact,
		Metrics:       req.Metrics,
		StartDate:     req.StartDate.ptr(),
		EndDate:       req.EndDate.ptr(),
		Status:        req.Status,
		TeamSize:      req.TeamSize,
		Role:          req.Role,
		IsPublic:      req.IsPublic,
		RepositoryURL: req.RepositoryURL,
		LiveURL:       req.LiveURL,
	}

	p, err := h.createProjectUseCase.Execute(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}
	respondCreated(c, p)
}

func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	sec, ok := sectorParam(c)
	if !ok {
		return
	}
	projectID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid request data", err))
		return
	}

	input := projectUC.UpdateProjectInput{
		ProjectID:     projectID,
		UserID:        userID,
		Sector:        sec,
		Title:         req.Title,
		Description:   req.Description,
		Category:      req.Category,
		SkillsUsed:    req.SkillsUsed,
		Technologies:  req.Technologies,
		Outcomes:      req.Outcomes,
		Impact:        req.Impact,
		Metrics:       req.Metrics,
		StartDate:     req.StartDate.ptr(),
		EndDate:       req.EndDate.ptr(),
		Status:        req.Status,
		TeamSize:      req.TeamSize,
		Role:          req.Role,
		IsPublic:      req.IsPublic,
		RepositoryURL: req.RepositoryURL,
		LiveURL:       req.LiveURL,
	}

	p, err := h.updateProjectUseCase.Execute(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}
	respondOK(c, p)
}

func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	sec, ok := sectorParam(c)
	if !ok {
		return
	}
	projectID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	err := h.deleteProjectUseCase.Execute(c.Request.Context(), projectUC.DeleteProjectInput{
		ProjectID: projectID,
		UserID:    userID,
		Sector:    sec,
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ProjectHandler) GetProject(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	sec, ok := sectorParam(c)
	if !ok {
		return
	}
	projectID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	p, err := h.getProjectUseCase.Execute(c.Request.Context(), projectUC.GetProjectInput{
		ProjectID: projectID,
		UserID:    userID,
		Sector:    sec,
	})
	if err != nil {
		c.Error(err)
		return
	}
	respondOK(c, p)
}

func (h *ProjectHandler) ListProjects(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	sec, ok := sectorParam(c)
	if !ok {
		return
	}
	input := projectUC.ListProjectsInput{
		UserID:   userID,
		Sector:   sec,
		Category: c.Query("category"),
		Status:   c.Query("status"),
		Search:   c.Query("search"),
	}
	input.Page, input.Limit = pageQuery(c)

	projects, err := h.listProjectsUseCase.Execute(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}
	respondOK(c, projects)
}
