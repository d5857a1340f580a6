package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"taskhub/internal/middleware"
	"taskhub/internal/model"
	"taskhub/internal/service"
)

type ProjectHandler struct {
	projects *service.ProjectService
}

func NewProjectHandler(projects *service.ProjectService) *ProjectHandler {
	return &ProjectHandler{projects: projects}
}

// CreateProjectRequest представляет запрос на создание проекта
type CreateProjectRequest struct {
	Name        string     `json:"name" binding:"required"`
	Description string     `json:"description"`
	TeamMembers []string   `json:"team_members" binding:"omitempty,dive,uuid"`
	Status      string     `json:"status" binding:"omitempty,oneof=not_started in_progress completed on_hold"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
}

// UpdateProjectRequest представляет запрос на обновление проекта
type UpdateProjectRequest struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Status      string     `json:"status" binding:"omitempty,oneof=not_started in_progress completed on_hold"`
	EndDate     *time.Time `json:"end_date"`
	TeamMembers *[]string  `json:"team_members" binding:"omitempty,dive,uuid"`
}

// AddMemberRequest представляет запрос на добавление участника
type AddMemberRequest struct {
	UserID string `json:"user_id" binding:"required,uuid"`
}

// ProjectResponse представляет ответ с данными проекта
type ProjectResponse struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	CreatedBy   string         `json:"created_by"`
	Status      string         `json:"status"`
	StartDate   string         `json:"start_date"`
	EndDate     *string        `json:"end_date,omitempty"`
	Version     int            `json:"version"`
	TeamMembers []UserResponse `json:"team_members"`
}

// ProjectDetailResponse представляет проект вместе с его задачами
type ProjectDetailResponse struct {
	Project ProjectResponse `json:"project"`
	Tasks   []TaskResponse  `json:"tasks"`
}

// Create создает новый проект, владельцем становится текущий пользователь
// @Summary Create a project
// @Tags Projects
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param input body CreateProjectRequest true "Project data"
// @Success 201 {object} ProjectResponse
// @Router /projects [post]
func (h *ProjectHandler) Create(c *gin.Context) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	memberIDs, err := parseUUIDs(req.TeamMembers)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid team member ID format"})
		return
	}

	project, err := h.projects.Create(c.Request.Context(), identity, service.CreateProjectInput{
		Name:          req.Name,
		Description:   req.Description,
		TeamMemberIDs: memberIDs,
		Status:        req.Status,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toProjectResponse(project))
}

// GetAll возвращает проекты текущего пользователя
// @Summary List projects visible to the caller
// @Tags Projects
// @Security BearerAuth
// @Produce json
// @Success 200 {array} ProjectResponse
// @Router /projects [get]
func (h *ProjectHandler) GetAll(c *gin.Context) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	projects, err := h.projects.List(c.Request.Context(), identity)
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]ProjectResponse, len(projects))
	for i := range projects {
		response[i] = toProjectResponse(&projects[i])
	}
	c.JSON(http.StatusOK, response)
}

// GetByID возвращает проект вместе с его задачами
// @Summary Get a project with its tasks
// @Tags Projects
// @Security BearerAuth
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {object} ProjectDetailResponse
// @Router /projects/{id} [get]
func (h *ProjectHandler) GetByID(c *gin.Context) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project ID format"})
		return
	}

	project, tasks, err := h.projects.Get(c.Request.Context(), identity, projectID)
	if err != nil {
		respondError(c, err)
		return
	}

	taskResponses := make([]TaskResponse, len(tasks))
	for i := range tasks {
		taskResponses[i] = toTaskResponse(&tasks[i])
	}

	c.JSON(http.StatusOK, ProjectDetailResponse{
		Project: toProjectResponse(project),
		Tasks:   taskResponses,
	})
}

// Update обновляет метаданные проекта и состав команды
// @Summary Update a project
// @Tags Projects
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Project ID"
// @Param input body UpdateProjectRequest true "Fields to update"
// @Success 200 {object} ProjectResponse
// @Router /projects/{id} [put]
func (h *ProjectHandler) Update(c *gin.Context) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project ID format"})
		return
	}

	var req UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	input := service.UpdateProjectInput{
		Name:        req.Name,
		Description: req.Description,
		Status:      req.Status,
		EndDate:     req.EndDate,
	}
	if req.TeamMembers != nil {
		memberIDs, err := parseUUIDs(*req.TeamMembers)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid team member ID format"})
			return
		}
		input.TeamMemberIDs = &memberIDs
	}

	project, err := h.projects.Update(c.Request.Context(), identity, projectID, input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toProjectResponse(project))
}

// Delete удаляет проект вместе с задачами и комментариями
// @Summary Delete a project
// @Tags Projects
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Success 200 {object} map[string]string
// @Router /projects/{id} [delete]
func (h *ProjectHandler) Delete(c *gin.Context) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project ID format"})
		return
	}

	if err := h.projects.Delete(c.Request.Context(), identity, projectID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Project deleted successfully"})
}

// AddMember добавляет участника в команду проекта
// @Summary Add a team member
// @Tags Projects
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Project ID"
// @Param input body AddMemberRequest true "User to add"
// @Success 200 {object} ProjectResponse
// @Router /projects/{id}/members [post]
func (h *ProjectHandler) AddMember(c *gin.Context) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project ID format"})
		return
	}

	var req AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID format"})
		return
	}

	project, err := h.projects.AddTeamMember(c.Request.Context(), identity, projectID, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toProjectResponse(project))
}

// RemoveMember удаляет участника из команды проекта
// @Summary Remove a team member
// @Tags Projects
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Param user_id path string true "User ID"
// @Success 200 {object} map[string]string
// @Router /projects/{id}/members/{user_id} [delete]
func (h *ProjectHandler) RemoveMember(c *gin.Context) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project ID format"})
		return
	}

	userID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID format"})
		return
	}

	if err := h.projects.RemoveTeamMember(c.Request.Context(), identity, projectID, userID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Team member removed successfully"})
}

func toProjectResponse(project *model.Project) ProjectResponse {
	response := ProjectResponse{
		ID:          project.ID.String(),
		Name:        project.Name,
		Description: project.Description,
		CreatedBy:   project.CreatedBy.String(),
		Status:      project.Status,
		StartDate:   project.StartDate.Format(time.RFC3339),
		Version:     project.Version,
		TeamMembers: make([]UserResponse, len(project.TeamMembers)),
	}
	if project.EndDate != nil {
		endDate := project.EndDate.Format(time.RFC3339)
		response.EndDate = &endDate
	}
	for i := range project.TeamMembers {
		response.TeamMembers[i] = toUserResponse(&project.TeamMembers[i])
	}
	return response
}

func parseUUIDs(values []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(values))
	for _, value := range values {
		id, err := uuid.Parse(value)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
