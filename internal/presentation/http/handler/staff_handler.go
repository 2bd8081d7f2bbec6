package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/gymdesk-api/internal/application/service"
	"github.com/sangkips/gymdesk-api/internal/presentation/http/dto/request"
	"github.com/sangkips/gymdesk-api/internal/presentation/http/dto/response"
)

// StaffHandler handles staff member HTTP requests
type StaffHandler struct {
	staffService *service.StaffService
}

// NewStaffHandler creates a new staff handler
func NewStaffHandler(staffService *service.StaffService) *StaffHandler {
	return &StaffHandler{staffService: staffService}
}

// Create handles onboarding a staff member: the account and the HR profile
// are written together
// @Summary Create Staff
// @Tags staff
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body request.CreateStaffRequest true "Staff data"
// @Success 201 {object} response.APIResponse
// @Failure 409 {object} response.APIResponse
// @Failure 422 {object} response.APIResponse
// @Router /staff [post]
func (h *StaffHandler) Create(c *gin.Context) {
	adminID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req request.CreateStaffRequest
	if !bindJSON(c, &req) {
		return
	}

	staff, err := h.staffService.CreateStaff(c.Request.Context(), &service.CreateStaffInput{
		FullName:     req.FullName,
		Email:        req.Email,
		Password:     req.Password,
		Phone:        req.Phone,
		RoleID:       req.RoleID,
		BranchID:     req.BranchID,
		Gender:       req.Gender,
		DateOfBirth:  req.DateOfBirth.Value(),
		JoinDate:     req.JoinDate.Value(),
		ProfilePhoto: req.ProfilePhoto,
		AdminID:      adminID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Staff created successfully", gin.H{"staff": staff})
}

// List returns the staff of the caller's branch
func (h *StaffHandler) List(c *gin.Context) {
	staff, err := h.staffService.ListStaff(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Staff retrieved successfully", gin.H{"staff": staff})
}

func (h *StaffHandler) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	staff, err := h.staffService.GetStaff(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Staff retrieved successfully", gin.H{"staff": staff})
}

// @Summary Update Staff
// @Tags staff
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Staff user ID"
// @Param request body request.UpdateStaffRequest true "Staff data"
// @Success 200 {object} response.APIResponse
// @Router /staff/{id} [put]
func (h *StaffHandler) Update(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req request.UpdateStaffRequest
	if !bindJSON(c, &req) {
		return
	}

	staff, err := h.staffService.UpdateStaff(c.Request.Context(), id, &service.UpdateStaffInput{
		FullName:     req.FullName,
		Email:        req.Email,
		Password:     req.Password,
		Phone:        req.Phone,
		RoleID:       req.RoleID,
		BranchID:     req.BranchID,
		Status:       req.Status,
		Gender:       req.Gender,
		DateOfBirth:  req.DateOfBirth.Ptr(),
		JoinDate:     req.JoinDate.Ptr(),
		ExitDate:     req.ExitDate.Ptr(),
		ProfilePhoto: req.ProfilePhoto,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Staff updated successfully", gin.H{"staff": staff})
}

// Delete deactivates a staff member and stamps the exit date
// @Summary Delete Staff
// @Tags staff
// @Security BearerAuth
// @Param id path string true "Staff user ID"
// @Success 200 {object} response.APIResponse
// @Router /staff/{id} [delete]
func (h *StaffHandler) Delete(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if currentUserID := GetUserID(c); currentUserID != nil && *currentUserID == id {
		response.BadRequest(c, "Cannot delete your own account")
		return
	}

	if err := h.staffService.DeleteStaff(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Staff deleted successfully", nil)
}
