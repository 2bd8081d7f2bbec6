package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/gymdesk-api/internal/application/service"
	"github.com/sangkips/gymdesk-api/internal/presentation/http/dto/request"
	"github.com/sangkips/gymdesk-api/internal/presentation/http/dto/response"
)

// HousekeepingHandler handles housekeeping task HTTP requests
type HousekeepingHandler struct {
	taskService *service.HousekeepingService
}

// NewHousekeepingHandler creates a new housekeeping handler
func NewHousekeepingHandler(taskService *service.HousekeepingService) *HousekeepingHandler {
	return &HousekeepingHandler{taskService: taskService}
}

// @Summary Create Task
// @Tags housekeeping
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body request.CreateTaskRequest true "Task"
// @Success 201 {object} response.APIResponse
// @Router /housekeeping [post]
func (h *HousekeepingHandler) Create(c *gin.Context) {
	var req request.CreateTaskRequest
	if !bindJSON(c, &req) {
		return
	}

	task, err := h.taskService.CreateTask(c.Request.Context(), &service.TaskInput{
		Category:    &req.Category,
		Title:       &req.Title,
		Description: req.Description,
		Status:      req.Status,
		AssignedTo:  req.AssignedTo,
		BranchID:    req.BranchID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Task created successfully", gin.H{"task": task})
}

func (h *HousekeepingHandler) List(c *gin.Context) {
	tasks, err := h.taskService.ListTasks(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Tasks retrieved successfully", gin.H{"tasks": tasks})
}

func (h *HousekeepingHandler) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	task, err := h.taskService.GetTask(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Task retrieved successfully", gin.H{"task": task})
}

// Update applies a partial update; absent fields keep their stored values
func (h *HousekeepingHandler) Update(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req request.UpdateTaskRequest
	if !bindJSON(c, &req) {
		return
	}

	task, err := h.taskService.UpdateTask(c.Request.Context(), id, &service.TaskInput{
		Category:    req.Category,
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		AssignedTo:  req.AssignedTo,
		BranchID:    req.BranchID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Task updated successfully", gin.H{"task": task})
}

func (h *HousekeepingHandler) Delete(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Task deleted successfully", nil)
}

// ListByStaff returns the tasks assigned to one staff member
func (h *HousekeepingHandler) ListByStaff(c *gin.Context) {
	staffID, ok := parseUUIDParam(c, "staffId")
	if !ok {
		return
	}

	tasks, err := h.taskService.ListByStaff(c.Request.Context(), staffID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Tasks retrieved successfully", gin.H{"tasks": tasks})
}
