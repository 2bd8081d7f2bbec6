package service

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/gymdesk-api/internal/domain/calc"
	"github.com/sangkips/gymdesk-api/internal/domain/entity"
	"github.com/sangkips/gymdesk-api/internal/domain/enum"
	"github.com/sangkips/gymdesk-api/internal/domain/repository"
	"github.com/sangkips/gymdesk-api/pkg/apperror"
	"github.com/sangkips/gymdesk-api/pkg/export"
	"github.com/sangkips/gymdesk-api/pkg/utils"
	"github.com/shopspring/decimal"
)

// SalaryService manages payroll records
type SalaryService struct {
	salaryRepo repository.SalaryRepository
	userRepo   repository.UserRepository
}

// NewSalaryService creates a new salary service
func NewSalaryService(salaryRepo repository.SalaryRepository, userRepo repository.UserRepository) *SalaryService {
	return &SalaryService{salaryRepo: salaryRepo, userRepo: userRepo}
}

// SalaryInput represents payroll fields. Nil fields keep their stored values on update.
type SalaryInput struct {
	SalaryRef       *string
	StaffID         *uuid.UUID
	Role            *string
	PeriodStart     *time.Time
	PeriodEnd       *time.Time
	HoursWorked     *decimal.Decimal
	HourlyRate      *decimal.Decimal
	FixedSalary     *decimal.Decimal
	CommissionTotal *decimal.Decimal
	Bonuses         []entity.PayrollLineItem
	Deductions      []entity.PayrollLineItem
	Status          *string
}

// CreateSalary records a payroll entry. A missing salary id is generated.
func (s *SalaryService) CreateSalary(ctx context.Context, input *SalaryInput) (*entity.SalaryView, error) {
	var errs []apperror.FieldError
	if input.StaffID == nil {
		errs = append(errs, apperror.FieldError{Field: "staff_id", Message: "staff_id is required"})
	}
	if input.PeriodStart == nil {
		errs = append(errs, apperror.FieldError{Field: "period_start", Message: "period_start is required"})
	}
	if input.PeriodEnd == nil {
		errs = append(errs, apperror.FieldError{Field: "period_end", Message: "period_end is required"})
	}
	if len(errs) > 0 {
		return nil, apperror.NewValidationError(errs)
	}

	salary := &entity.Salary{
		Bonuses:    []entity.PayrollLineItem{},
		Deductions: []entity.PayrollLineItem{},
		Status:     enum.SalaryStatusPending,
	}
	if input.SalaryRef == nil || strings.TrimSpace(*input.SalaryRef) == "" {
		salary.SalaryRef = utils.GenerateSalaryRef()
	}
	if err := s.apply(ctx, salary, input); err != nil {
		return nil, err
	}

	if err := s.salaryRepo.Create(ctx, salary); err != nil {
		return nil, err
	}
	return s.GetSalary(ctx, salary.ID)
}

// apply merges input into salary and recomputes every derived figure
func (s *SalaryService) apply(ctx context.Context, salary *entity.Salary, input *SalaryInput) error {
	if input.StaffID != nil {
		staff, err := s.userRepo.GetByID(ctx, *input.StaffID)
		if err != nil {
			return err
		}
		if staff == nil {
			return apperror.NewNotFoundError("Staff")
		}
		salary.StaffID = staff.ID
		if salary.Role == "" && input.Role == nil {
			salary.Role = staff.Role.Name
		}
	}
	if input.SalaryRef != nil && strings.TrimSpace(*input.SalaryRef) != "" {
		salary.SalaryRef = strings.TrimSpace(*input.SalaryRef)
	}
	if input.Role != nil {
		salary.Role = *input.Role
	}
	if input.PeriodStart != nil {
		salary.PeriodStart = calc.StartOfDay(*input.PeriodStart)
	}
	if input.PeriodEnd != nil {
		salary.PeriodEnd = calc.StartOfDay(*input.PeriodEnd)
	}
	if salary.PeriodEnd.Before(salary.PeriodStart) {
		return apperror.NewFieldError("period_end", "must not be before period_start")
	}
	if input.Status != nil && *input.Status != "" {
		salary.Status = *input.Status
	}

	pay := calc.PayrollInputs{
		HoursWorked:     pick(input.HoursWorked, salary.HoursWorked),
		HourlyRate:      pick(input.HourlyRate, salary.HourlyRate),
		FixedSalary:     pick(input.FixedSalary, salary.FixedSalary),
		CommissionTotal: pick(input.CommissionTotal, salary.CommissionTotal),
		Bonuses:         salary.Bonuses,
		Deductions:      salary.Deductions,
	}
	if input.Bonuses != nil {
		pay.Bonuses = input.Bonuses
	}
	if input.Deductions != nil {
		pay.Deductions = input.Deductions
	}

	totals, err := calc.ComputeNetPay(pay)
	if err != nil {
		return err
	}

	salary.HoursWorked = *pay.HoursWorked
	salary.HourlyRate = *pay.HourlyRate
	salary.FixedSalary = *pay.FixedSalary
	salary.CommissionTotal = *pay.CommissionTotal
	salary.Bonuses = pay.Bonuses
	salary.Deductions = pay.Deductions
	salary.HourlyTotal = totals.HourlyTotal
	salary.NetPay = totals.NetPay
	return nil
}

func pick(in *decimal.Decimal, stored decimal.Decimal) *decimal.Decimal {
	if in != nil {
		return in
	}
	return &stored
}

// ListSalaries returns all payroll records, newest first
func (s *SalaryService) ListSalaries(ctx context.Context) ([]entity.SalaryView, error) {
	return s.salaryRepo.List(ctx)
}

// GetSalary returns a payroll record with the staff member's name
func (s *SalaryService) GetSalary(ctx context.Context, id uuid.UUID) (*entity.SalaryView, error) {
	view, err := s.salaryRepo.GetView(ctx, id)
	if err != nil {
		return nil, err
	}
	if view == nil {
		return nil, apperror.NewNotFoundError("Salary record")
	}
	return view, nil
}

// UpdateSalary merges input into the stored record and recomputes the totals
func (s *SalaryService) UpdateSalary(ctx context.Context, id uuid.UUID, input *SalaryInput) (*entity.SalaryView, error) {
	salary, err := s.salaryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if salary == nil {
		return nil, apperror.NewNotFoundError("Salary record")
	}

	if err := s.apply(ctx, salary, input); err != nil {
		return nil, err
	}
	if err := s.salaryRepo.Update(ctx, salary); err != nil {
		return nil, err
	}
	return s.GetSalary(ctx, id)
}

// DeleteSalary removes a payroll record
func (s *SalaryService) DeleteSalary(ctx context.Context, id uuid.UUID) error {
	salary, err := s.salaryRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if salary == nil {
		return apperror.NewNotFoundError("Salary record")
	}
	return s.salaryRepo.Delete(ctx, id)
}

// ListByStaff returns one staff member's payroll history
func (s *SalaryService) ListByStaff(ctx context.Context, staffID uuid.UUID) ([]entity.SalaryView, error) {
	views, err := s.salaryRepo.ListByStaff(ctx, staffID)
	if err != nil {
		return nil, err
	}
	if len(views) == 0 {
		return nil, apperror.NewNotFoundError("Salary records for this staff member")
	}
	return views, nil
}

var salaryColumns = []export.Column[entity.SalaryView]{
	{Header: "Salary ID", Width: 16, Value: func(s entity.SalaryView) any { return s.SalaryRef }},
	{Header: "Staff", Width: 24, Value: func(s entity.SalaryView) any { return s.FullName }},
	{Header: "Role", Width: 14, Value: func(s entity.SalaryView) any { return s.Role }},
	{Header: "Period Start", Width: 14, Value: func(s entity.SalaryView) any { return s.PeriodStart.Format("2006-01-02") }},
	{Header: "Period End", Width: 14, Value: func(s entity.SalaryView) any { return s.PeriodEnd.Format("2006-01-02") }},
	{Header: "Hours Worked", Width: 14, Value: func(s entity.SalaryView) any { return s.HoursWorked.InexactFloat64() }},
	{Header: "Hourly Rate", Width: 14, Value: func(s entity.SalaryView) any { return s.HourlyRate.InexactFloat64() }},
	{Header: "Hourly Total", Width: 14, Value: func(s entity.SalaryView) any { return s.HourlyTotal.InexactFloat64() }},
	{Header: "Fixed Salary", Width: 14, Value: func(s entity.SalaryView) any { return s.FixedSalary.InexactFloat64() }},
	{Header: "Commission", Width: 14, Value: func(s entity.SalaryView) any { return s.CommissionTotal.InexactFloat64() }},
	{Header: "Bonuses", Width: 12, Value: func(s entity.SalaryView) any { return lineTotal(s.Bonuses).InexactFloat64() }},
	{Header: "Deductions", Width: 12, Value: func(s entity.SalaryView) any { return lineTotal(s.Deductions).InexactFloat64() }},
	{Header: "Net Pay", Width: 14, Value: func(s entity.SalaryView) any { return s.NetPay.InexactFloat64() }},
	{Header: "Status", Width: 12, Value: func(s entity.SalaryView) any { return s.Status }},
}

func lineTotal(items []entity.PayrollLineItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		if item.Amount != nil {
			total = total.Add(*item.Amount)
		}
	}
	return total
}

// ExportSalaries writes every payroll record to w as an xlsx workbook
func (s *SalaryService) ExportSalaries(ctx context.Context, w io.Writer) error {
	views, err := s.salaryRepo.List(ctx)
	if err != nil {
		return err
	}
	return export.WriteSheet(w, "Salaries", salaryColumns, views)
}
