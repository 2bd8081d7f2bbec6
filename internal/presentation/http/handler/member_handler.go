package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/gymdesk-api/internal/application/service"
	"github.com/sangkips/gymdesk-api/internal/presentation/http/dto/request"
	"github.com/sangkips/gymdesk-api/internal/presentation/http/dto/response"
)

// MemberHandler handles member, attendance and payment HTTP requests
type MemberHandler struct {
	memberService *service.MemberService
}

// NewMemberHandler creates a new member handler
func NewMemberHandler(memberService *service.MemberService) *MemberHandler {
	return &MemberHandler{memberService: memberService}
}

// Create handles registering a member. The membership period comes from the
// chosen plan; a positive amount_paid records the first payment.
// @Summary Create Member
// @Tags members
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param Idempotency-Key header string false "Idempotency key"
// @Param request body request.CreateMemberRequest true "Member data"
// @Success 201 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Failure 409 {object} response.APIResponse
// @Router /members [post]
func (h *MemberHandler) Create(c *gin.Context) {
	adminID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req request.CreateMemberRequest
	if !bindJSON(c, &req) {
		return
	}

	member, err := h.memberService.CreateMember(c.Request.Context(), &service.CreateMemberInput{
		FullName:       req.FullName,
		Email:          req.Email,
		Password:       req.Password,
		Phone:          req.Phone,
		Gender:         req.Gender,
		DateOfBirth:    req.DateOfBirth.Ptr(),
		Address:        req.Address,
		InterestedIn:   req.InterestedIn,
		PlanID:         req.PlanID,
		MembershipFrom: req.MembershipFrom.Ptr(),
		PaymentMode:    req.PaymentMode,
		AmountPaid:     req.AmountPaid,
		BranchID:       req.BranchID,
		AdminID:        adminID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Member created successfully", gin.H{"member": member})
}

// List handles listing members of the caller's branch
// @Summary List Members
// @Tags members
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(15)
// @Param search query string false "Name, email or phone"
// @Success 200 {object} response.APIResponse
// @Router /members [get]
func (h *MemberHandler) List(c *gin.Context) {
	result, err := h.memberService.ListMembers(c.Request.Context(), paginationFromQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, "Members retrieved successfully", result)
}

// ListByAdmin returns the members registered by one staff account
func (h *MemberHandler) ListByAdmin(c *gin.Context) {
	adminID, ok := parseUUIDParam(c, "adminId")
	if !ok {
		return
	}

	members, err := h.memberService.ListByAdmin(c.Request.Context(), adminID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Members retrieved successfully", gin.H{"members": members})
}

// @Summary Get Member
// @Tags members
// @Security BearerAuth
// @Produce json
// @Param id path string true "Member ID"
// @Success 200 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Router /members/{id} [get]
func (h *MemberHandler) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	member, err := h.memberService.GetMember(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Member retrieved successfully", gin.H{"member": member})
}

// Update merges the present fields into the member. A new plan or start date
// recomputes the membership period.
// @Summary Update Member
// @Tags members
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Member ID"
// @Param request body request.UpdateMemberRequest true "Member data"
// @Success 200 {object} response.APIResponse
// @Router /members/{id} [put]
func (h *MemberHandler) Update(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req request.UpdateMemberRequest
	if !bindJSON(c, &req) {
		return
	}

	member, err := h.memberService.UpdateMember(c.Request.Context(), id, &service.UpdateMemberInput{
		FullName:       req.FullName,
		Email:          req.Email,
		Password:       req.Password,
		Phone:          req.Phone,
		Gender:         req.Gender,
		DateOfBirth:    req.DateOfBirth.Ptr(),
		Address:        req.Address,
		InterestedIn:   req.InterestedIn,
		PlanID:         req.PlanID,
		MembershipFrom: req.MembershipFrom.Ptr(),
		PaymentMode:    req.PaymentMode,
		AmountPaid:     req.AmountPaid,
		BranchID:       req.BranchID,
		Status:         req.Status,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Member updated successfully", gin.H{"member": member})
}

// Delete deactivates a member
// @Summary Delete Member
// @Tags members
// @Security BearerAuth
// @Param id path string true "Member ID"
// @Success 200 {object} response.APIResponse
// @Router /members/{id} [delete]
func (h *MemberHandler) Delete(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.memberService.DeleteMember(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Member deleted successfully", nil)
}

// CheckIn records a visit for the member
// @Summary Check In
// @Tags members
// @Security BearerAuth
// @Param id path string true "Member ID"
// @Success 201 {object} response.APIResponse
// @Failure 400 {object} response.APIResponse
// @Router /members/{id}/check-in [post]
func (h *MemberHandler) CheckIn(c *gin.Context) {
	staffID, ok := requireUserID(c)
	if !ok {
		return
	}
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	attendance, err := h.memberService.CheckIn(c.Request.Context(), id, staffID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Member checked in successfully", gin.H{"attendance": attendance})
}

func (h *MemberHandler) ListAttendance(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.memberService.ListAttendance(c.Request.Context(), id, paginationFromQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, "Attendance retrieved successfully", result)
}

// RecordPayment stores a payment; a payment against a plan renews the membership
// @Summary Record Payment
// @Tags members
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Member ID"
// @Param Idempotency-Key header string false "Idempotency key"
// @Param request body request.RecordPaymentRequest true "Payment data"
// @Success 201 {object} response.APIResponse
// @Router /members/{id}/payments [post]
func (h *MemberHandler) RecordPayment(c *gin.Context) {
	staffID, ok := requireUserID(c)
	if !ok {
		return
	}
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req request.RecordPaymentRequest
	if !bindJSON(c, &req) {
		return
	}

	output, err := h.memberService.RecordPayment(c.Request.Context(), id, &service.RecordPaymentInput{
		PlanID:     req.PlanID,
		Amount:     *req.Amount,
		Mode:       *req.Mode,
		Reference:  req.Reference,
		RecordedBy: staffID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Payment recorded successfully", output)
}

func (h *MemberHandler) ListPayments(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	payments, err := h.memberService.ListPayments(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payments retrieved successfully", gin.H{"payments": payments})
}
