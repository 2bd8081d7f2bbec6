package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/gymdesk-api/internal/application/service"
	"github.com/sangkips/gymdesk-api/internal/presentation/http/dto/request"
	"github.com/sangkips/gymdesk-api/internal/presentation/http/dto/response"
)

// ClassHandler handles class types, schedules and bookings
type ClassHandler struct {
	classService *service.ClassService
}

// NewClassHandler creates a new class handler
func NewClassHandler(classService *service.ClassService) *ClassHandler {
	return &ClassHandler{classService: classService}
}

// CreateClassType handles creating a class type
// @Summary Create Class Type
// @Tags classes
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body request.CreateClassTypeRequest true "Class type"
// @Success 201 {object} response.APIResponse
// @Failure 409 {object} response.APIResponse
// @Router /class-types [post]
func (h *ClassHandler) CreateClassType(c *gin.Context) {
	var req request.CreateClassTypeRequest
	if !bindJSON(c, &req) {
		return
	}

	classType, err := h.classService.CreateClassType(c.Request.Context(), req.Name)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Class type created successfully", gin.H{"class_type": classType})
}

func (h *ClassHandler) ListClassTypes(c *gin.Context) {
	classTypes, err := h.classService.ListClassTypes(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Class types retrieved successfully", gin.H{"class_types": classTypes})
}

// CreateSchedule handles scheduling a class
// @Summary Create Schedule
// @Tags classes
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body request.CreateScheduleRequest true "Schedule"
// @Success 201 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Failure 422 {object} response.APIResponse
// @Router /schedules [post]
func (h *ClassHandler) CreateSchedule(c *gin.Context) {
	var req request.CreateScheduleRequest
	if !bindJSON(c, &req) {
		return
	}

	schedule, err := h.classService.CreateSchedule(c.Request.Context(), &service.ScheduleInput{
		BranchID:    req.BranchID,
		ClassTypeID: req.ClassTypeID,
		TrainerID:   req.TrainerID,
		Date:        req.Date.Ptr(),
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Capacity:    req.Capacity,
		Status:      req.Status,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Schedule created successfully", gin.H{"schedule": schedule})
}

// ListSchedules returns the schedules of the caller's branch with booked counts
// @Summary List Schedules
// @Tags classes
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /schedules [get]
func (h *ClassHandler) ListSchedules(c *gin.Context) {
	schedules, err := h.classService.ListSchedules(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Schedules retrieved successfully", gin.H{"schedules": schedules})
}

func (h *ClassHandler) GetSchedule(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	schedule, err := h.classService.GetSchedule(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Schedule retrieved successfully", gin.H{"schedule": schedule})
}

// UpdateSchedule applies a partial update
// @Summary Update Schedule
// @Tags classes
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Schedule ID"
// @Param request body request.UpdateScheduleRequest true "Schedule fields"
// @Success 200 {object} response.APIResponse
// @Router /schedules/{id} [patch]
func (h *ClassHandler) UpdateSchedule(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req request.UpdateScheduleRequest
	if !bindJSON(c, &req) {
		return
	}

	schedule, err := h.classService.UpdateSchedule(c.Request.Context(), id, &service.ScheduleInput{
		BranchID:    req.BranchID,
		ClassTypeID: req.ClassTypeID,
		TrainerID:   req.TrainerID,
		Date:        req.Date.Ptr(),
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Capacity:    req.Capacity,
		Status:      req.Status,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Schedule updated successfully", gin.H{"schedule": schedule})
}

// DeleteSchedule removes a schedule together with its bookings
func (h *ClassHandler) DeleteSchedule(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.classService.DeleteSchedule(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Schedule deleted successfully", nil)
}

// ScheduleBookings lists the bookings of one schedule
func (h *ClassHandler) ScheduleBookings(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	bookings, err := h.classService.ScheduleBookings(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Bookings retrieved successfully", gin.H{"bookings": bookings})
}

// BookForMember lets staff book a member onto a class
// @Summary Book Member
// @Tags bookings
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Schedule ID"
// @Param Idempotency-Key header string false "Idempotency key"
// @Param request body request.BookingRequest true "Member"
// @Success 201 {object} response.APIResponse
// @Failure 400 {object} response.APIResponse
// @Failure 409 {object} response.APIResponse
// @Router /schedules/{id}/bookings [post]
func (h *ClassHandler) BookForMember(c *gin.Context) {
	scheduleID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req request.BookingRequest
	if !bindJSON(c, &req) {
		return
	}

	h.book(c, scheduleID, req.MemberID)
}

// CancelForMember cancels a member's booking on behalf of staff
func (h *ClassHandler) CancelForMember(c *gin.Context) {
	scheduleID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	memberID, ok := parseUUIDParam(c, "memberId")
	if !ok {
		return
	}

	h.cancel(c, scheduleID, memberID)
}

// MemberBookingsByID lists a member's bookings for staff
func (h *ClassHandler) MemberBookingsByID(c *gin.Context) {
	memberID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	h.memberBookings(c, memberID)
}

// BookSelf books the signed-in member onto a class
// @Summary Book Class
// @Tags bookings
// @Security BearerAuth
// @Produce json
// @Param id path string true "Schedule ID"
// @Param Idempotency-Key header string false "Idempotency key"
// @Success 201 {object} response.APIResponse
// @Failure 400 {object} response.APIResponse
// @Failure 409 {object} response.APIResponse
// @Router /me/bookings/{id} [post]
func (h *ClassHandler) BookSelf(c *gin.Context) {
	memberID, ok := requireUserID(c)
	if !ok {
		return
	}
	scheduleID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	h.book(c, scheduleID, memberID)
}

func (h *ClassHandler) CancelSelf(c *gin.Context) {
	memberID, ok := requireUserID(c)
	if !ok {
		return
	}
	scheduleID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	h.cancel(c, scheduleID, memberID)
}

func (h *ClassHandler) MyBookings(c *gin.Context) {
	memberID, ok := requireUserID(c)
	if !ok {
		return
	}

	h.memberBookings(c, memberID)
}

func (h *ClassHandler) book(c *gin.Context, scheduleID, memberID uuid.UUID) {
	booking, err := h.classService.Book(c.Request.Context(), scheduleID, memberID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Class booked successfully", gin.H{"booking": booking})
}

func (h *ClassHandler) cancel(c *gin.Context, scheduleID, memberID uuid.UUID) {
	if err := h.classService.Cancel(c.Request.Context(), scheduleID, memberID); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Booking cancelled successfully", nil)
}

func (h *ClassHandler) memberBookings(c *gin.Context, memberID uuid.UUID) {
	bookings, err := h.classService.MemberBookings(c.Request.Context(), memberID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Bookings retrieved successfully", gin.H{"bookings": bookings})
}
