package handler

import (
	"bytes"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/gymdesk-api/internal/application/service"
	"github.com/sangkips/gymdesk-api/internal/domain/entity"
	"github.com/sangkips/gymdesk-api/internal/presentation/http/dto/request"
	"github.com/sangkips/gymdesk-api/internal/presentation/http/dto/response"
	"github.com/sangkips/gymdesk-api/pkg/export"
)

// SalaryHandler handles payroll HTTP requests
type SalaryHandler struct {
	salaryService *service.SalaryService
}

// NewSalaryHandler creates a new salary handler
func NewSalaryHandler(salaryService *service.SalaryService) *SalaryHandler {
	return &SalaryHandler{salaryService: salaryService}
}

func lineItems(items []request.LineItemRequest) []entity.PayrollLineItem {
	if items == nil {
		return nil
	}
	out := make([]entity.PayrollLineItem, len(items))
	for i, item := range items {
		out[i] = entity.PayrollLineItem{Name: item.Name, Amount: item.Amount}
	}
	return out
}

func salaryInput(req *request.SalaryRequest) *service.SalaryInput {
	return &service.SalaryInput{
		SalaryRef:       req.SalaryID,
		StaffID:         req.StaffID,
		Role:            req.Role,
		PeriodStart:     req.PeriodStart.Ptr(),
		PeriodEnd:       req.PeriodEnd.Ptr(),
		HoursWorked:     req.HoursWorked,
		HourlyRate:      req.HourlyRate,
		FixedSalary:     req.FixedSalary,
		CommissionTotal: req.CommissionTotal,
		Bonuses:         lineItems(req.Bonuses),
		Deductions:      lineItems(req.Deductions),
		Status:          req.Status,
	}
}

// Create records a payroll entry and computes its net pay
// @Summary Create Salary
// @Tags salaries
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param Idempotency-Key header string false "Idempotency key"
// @Param request body request.SalaryRequest true "Payroll data"
// @Success 201 {object} response.APIResponse
// @Failure 422 {object} response.APIResponse
// @Router /salaries [post]
func (h *SalaryHandler) Create(c *gin.Context) {
	var req request.SalaryRequest
	if !bindJSON(c, &req) {
		return
	}

	salary, err := h.salaryService.CreateSalary(c.Request.Context(), salaryInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Salary created successfully", gin.H{"salary": salary})
}

// List returns every payroll record, newest first
func (h *SalaryHandler) List(c *gin.Context) {
	salaries, err := h.salaryService.ListSalaries(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Salaries retrieved successfully", gin.H{"salaries": salaries})
}

func (h *SalaryHandler) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	salary, err := h.salaryService.GetSalary(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Salary retrieved successfully", gin.H{"salary": salary})
}

// Update merges the present fields and recomputes every total
// @Summary Update Salary
// @Tags salaries
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Salary ID"
// @Param request body request.SalaryRequest true "Payroll data"
// @Success 200 {object} response.APIResponse
// @Router /salaries/{id} [put]
func (h *SalaryHandler) Update(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req request.SalaryRequest
	if !bindJSON(c, &req) {
		return
	}

	salary, err := h.salaryService.UpdateSalary(c.Request.Context(), id, salaryInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Salary updated successfully", gin.H{"salary": salary})
}

func (h *SalaryHandler) Delete(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.salaryService.DeleteSalary(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Salary deleted successfully", nil)
}

// ListByStaff returns one staff member's payroll history
func (h *SalaryHandler) ListByStaff(c *gin.Context) {
	staffID, ok := parseUUIDParam(c, "staffId")
	if !ok {
		return
	}

	salaries, err := h.salaryService.ListByStaff(c.Request.Context(), staffID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Salaries retrieved successfully", gin.H{"salaries": salaries})
}

// Export downloads every payroll record as an xlsx workbook
// @Summary Export Salaries
// @Tags salaries
// @Security BearerAuth
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} file
// @Router /salaries/export [get]
func (h *SalaryHandler) Export(c *gin.Context) {
	// buffered so a failure can still be reported as JSON
	var buf bytes.Buffer
	if err := h.salaryService.ExportSalaries(c.Request.Context(), &buf); err != nil {
		response.Error(c, err)
		return
	}

	response.Attachment(c, "salaries.xlsx", export.ContentType, buf.Bytes())
}
