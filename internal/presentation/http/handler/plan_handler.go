package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/gymdesk-api/internal/application/service"
	"github.com/sangkips/gymdesk-api/internal/domain/repository"
	"github.com/sangkips/gymdesk-api/internal/presentation/http/dto/request"
	"github.com/sangkips/gymdesk-api/internal/presentation/http/dto/response"
)

// PlanHandler handles membership plan HTTP requests
type PlanHandler struct {
	planService *service.PlanService
}

// NewPlanHandler creates a new plan handler
func NewPlanHandler(planService *service.PlanService) *PlanHandler {
	return &PlanHandler{planService: planService}
}

func planInput(req *request.PlanRequest) *service.PlanInput {
	return &service.PlanInput{
		Name:         req.Name,
		Category:     req.Category,
		DurationDays: req.DurationDays,
		Price:        req.Price,
		Description:  req.Description,
		BranchID:     req.BranchID,
		Status:       req.Status,
	}
}

// Create handles creating a membership plan
// @Summary Create Plan
// @Tags plans
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body request.PlanRequest true "Plan data"
// @Success 201 {object} response.APIResponse
// @Failure 422 {object} response.APIResponse
// @Router /plans [post]
func (h *PlanHandler) Create(c *gin.Context) {
	var req request.PlanRequest
	if !bindJSON(c, &req) {
		return
	}

	plan, err := h.planService.CreatePlan(c.Request.Context(), planInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Plan created successfully", gin.H{"plan": plan})
}

// List returns the plans offered at the caller's branch plus the gym-wide ones.
// Optional filters: ?category= and ?status=.
// @Summary List Plans
// @Tags plans
// @Security BearerAuth
// @Produce json
// @Param category query string false "Plan category"
// @Param status query string false "Plan status"
// @Success 200 {object} response.APIResponse
// @Router /plans [get]
func (h *PlanHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	filter := repository.PlanFilter{
		Category: c.Query("category"),
		Status:   c.Query("status"),
	}
	if branchID, ok := repository.BranchFromContext(ctx); ok {
		filter.BranchID = &branchID
	}

	plans, err := h.planService.ListPlans(ctx, filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Plans retrieved successfully", gin.H{"plans": plans})
}

// @Summary Get Plan
// @Tags plans
// @Security BearerAuth
// @Produce json
// @Param id path string true "Plan ID"
// @Success 200 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Router /plans/{id} [get]
func (h *PlanHandler) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	plan, err := h.planService.GetPlan(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Plan retrieved successfully", gin.H{"plan": plan})
}

// @Summary Update Plan
// @Tags plans
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Plan ID"
// @Param request body request.PlanRequest true "Plan data"
// @Success 200 {object} response.APIResponse
// @Router /plans/{id} [put]
func (h *PlanHandler) Update(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req request.PlanRequest
	if !bindJSON(c, &req) {
		return
	}

	plan, err := h.planService.UpdatePlan(c.Request.Context(), id, planInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Plan updated successfully", gin.H{"plan": plan})
}

// Delete removes a plan that no member is enrolled on
// @Summary Delete Plan
// @Tags plans
// @Security BearerAuth
// @Param id path string true "Plan ID"
// @Success 200 {object} response.APIResponse
// @Failure 409 {object} response.APIResponse
// @Router /plans/{id} [delete]
func (h *PlanHandler) Delete(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.planService.DeletePlan(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Plan deleted successfully", nil)
}
