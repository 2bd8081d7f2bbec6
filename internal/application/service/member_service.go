package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/gymdesk-api/internal/domain/calc"
	"github.com/sangkips/gymdesk-api/internal/domain/entity"
	"github.com/sangkips/gymdesk-api/internal/domain/enum"
	"github.com/sangkips/gymdesk-api/internal/domain/repository"
	"github.com/sangkips/gymdesk-api/pkg/apperror"
	"github.com/sangkips/gymdesk-api/pkg/email"
	"github.com/sangkips/gymdesk-api/pkg/logger"
	"github.com/sangkips/gymdesk-api/pkg/pagination"
	"github.com/sangkips/gymdesk-api/pkg/utils"
	"github.com/shopspring/decimal"
)

// MemberService manages gym members, their check-ins and payments
type MemberService struct {
	memberRepo     repository.MemberRepository
	planRepo       repository.PlanRepository
	attendanceRepo repository.AttendanceRepository
	paymentRepo    repository.PaymentRepository
	txManager      repository.TxManager
	emailService   *email.EmailService
	now            func() time.Time
}

// NewMemberService creates a new member service
func NewMemberService(
	memberRepo repository.MemberRepository,
	planRepo repository.PlanRepository,
	attendanceRepo repository.AttendanceRepository,
	paymentRepo repository.PaymentRepository,
	txManager repository.TxManager,
	emailService *email.EmailService,
) *MemberService {
	return &MemberService{
		memberRepo:     memberRepo,
		planRepo:       planRepo,
		attendanceRepo: attendanceRepo,
		paymentRepo:    paymentRepo,
		txManager:      txManager,
		emailService:   emailService,
		now:            time.Now,
	}
}

// CreateMemberInput represents the input for registering a member
type CreateMemberInput struct {
	FullName       string
	Email          string
	Password       string
	Phone          *string
	Gender         *string
	DateOfBirth    *time.Time
	Address        *string
	InterestedIn   *string
	PlanID         *uuid.UUID
	MembershipFrom *time.Time
	PaymentMode    *enum.PaymentMode
	AmountPaid     decimal.Decimal
	BranchID       *uuid.UUID
	AdminID        uuid.UUID
}

// CreateMember registers a member. The membership end date is derived from
// the plan, and a positive amount paid is recorded as the first payment in the
// same transaction.
func (s *MemberService) CreateMember(ctx context.Context, input *CreateMemberInput) (*entity.Member, error) {
	emailAddr := normalizeEmail(input.Email)
	phone := trimmed(input.Phone)

	if input.AmountPaid.IsNegative() {
		return nil, apperror.NewFieldError("amount_paid", "must not be negative")
	}
	if err := s.checkDuplicate(ctx, emailAddr, phone, nil); err != nil {
		return nil, err
	}

	branchID, err := s.resolveBranch(ctx, input.BranchID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	period, plan, err := calc.ResolveMembershipPeriod(ctx, s.planRepo, input.MembershipFrom, input.PlanID, now)
	if err != nil {
		return nil, err
	}

	hashed, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	adminID := input.AdminID
	member := &entity.Member{
		FullName:       strings.TrimSpace(input.FullName),
		Email:          emailAddr,
		Password:       hashed,
		Phone:          phone,
		Gender:         input.Gender,
		DateOfBirth:    input.DateOfBirth,
		Address:        input.Address,
		InterestedIn:   input.InterestedIn,
		PlanID:         input.PlanID,
		MembershipFrom: period.StartDate,
		MembershipTo:   period.EndDate,
		PaymentMode:    input.PaymentMode,
		AmountPaid:     input.AmountPaid,
		BranchID:       branchID,
		AdminID:        &adminID,
		Status:         enum.StatusActive,
	}

	err = s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.memberRepo.Create(ctx, member); err != nil {
			return err
		}
		if !input.AmountPaid.IsPositive() {
			return nil
		}

		mode := enum.PaymentModeCash
		if input.PaymentMode != nil {
			mode = *input.PaymentMode
		}
		start := period.StartDate
		return s.paymentRepo.Create(ctx, &entity.Payment{
			MemberID:   member.ID,
			PlanID:     input.PlanID,
			BranchID:   branchID,
			Amount:     input.AmountPaid,
			Mode:       mode,
			PeriodFrom: &start,
			PeriodTo:   period.EndDate,
			PaidAt:     now,
			RecordedBy: &adminID,
		})
	})
	if err != nil {
		return nil, err
	}

	member.Plan = plan
	s.sendWelcome(ctx, member)
	return member, nil
}

func (s *MemberService) sendWelcome(ctx context.Context, member *entity.Member) {
	if s.emailService == nil || !s.emailService.IsConfigured() {
		return
	}
	planName := ""
	if member.Plan != nil {
		planName = member.Plan.Name
	}
	err := s.emailService.SendWelcomeEmail(ctx, member.Email, member.FullName, planName, member.MembershipFrom, member.MembershipTo)
	if err != nil {
		logger.ErrorLog(ctx, "failed to send welcome email", err)
	}
}

func (s *MemberService) checkDuplicate(ctx context.Context, emailAddr string, phone *string, excludeID *uuid.UUID) error {
	dup, err := s.memberRepo.FindDuplicate(ctx, emailAddr, phone, excludeID)
	if err != nil {
		return err
	}
	if dup == nil {
		return nil
	}
	if strings.EqualFold(dup.Email, emailAddr) {
		return apperror.NewConflictError("Email already registered")
	}
	return apperror.NewConflictError("Phone number already registered")
}

// resolveBranch defaults to the caller's branch and rejects branches outside the caller's scope
func (s *MemberService) resolveBranch(ctx context.Context, branchID *uuid.UUID) (*uuid.UUID, error) {
	if branchID == nil {
		if scoped, ok := repository.BranchFromContext(ctx); ok {
			return &scoped, nil
		}
		return nil, nil
	}
	if !repository.CanAccessBranch(ctx, branchID) {
		return nil, apperror.ErrForbidden
	}
	return branchID, nil
}

// ListMembers returns a page of members in the caller's branch scope
func (s *MemberService) ListMembers(ctx context.Context, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.Member], error) {
	params.Validate()
	members, total, err := s.memberRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}
	return pagination.ResultFor(members, total, params), nil
}

// GetMember returns a member the caller may access
func (s *MemberService) GetMember(ctx context.Context, id uuid.UUID) (*entity.Member, error) {
	member, err := s.memberRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, apperror.NewNotFoundError("Member")
	}
	if !repository.CanAccessBranch(ctx, member.BranchID) {
		return nil, apperror.ErrForbidden
	}
	return member, nil
}

// UpdateMemberInput represents a partial member update. An empty password keeps the stored one.
type UpdateMemberInput struct {
	FullName       *string
	Email          *string
	Password       string
	Phone          *string
	Gender         *string
	DateOfBirth    *time.Time
	Address        *string
	InterestedIn   *string
	PlanID         *uuid.UUID
	MembershipFrom *time.Time
	PaymentMode    *enum.PaymentMode
	AmountPaid     *decimal.Decimal
	BranchID       *uuid.UUID
	Status         *string
}

// UpdateMember merges input into the stored member and recomputes the
// membership end date when the plan or start date changes.
func (s *MemberService) UpdateMember(ctx context.Context, id uuid.UUID, input *UpdateMemberInput) (*entity.Member, error) {
	member, err := s.GetMember(ctx, id)
	if err != nil {
		return nil, err
	}

	emailAddr := member.Email
	if input.Email != nil {
		emailAddr = normalizeEmail(*input.Email)
	}
	phone := member.Phone
	if input.Phone != nil {
		phone = trimmed(input.Phone)
	}
	if emailAddr != member.Email || !sameString(phone, member.Phone) {
		if err := s.checkDuplicate(ctx, emailAddr, phone, &member.ID); err != nil {
			return nil, err
		}
	}

	if input.PlanID != nil || input.MembershipFrom != nil {
		planID := member.PlanID
		if input.PlanID != nil {
			planID = input.PlanID
		}
		start := member.MembershipFrom
		if input.MembershipFrom != nil {
			start = *input.MembershipFrom
		}

		period, plan, err := calc.ResolveMembershipPeriod(ctx, s.planRepo, &start, planID, s.now())
		if err != nil {
			return nil, err
		}
		member.PlanID = planID
		member.Plan = plan
		member.MembershipFrom = period.StartDate
		member.MembershipTo = period.EndDate
	}

	if input.BranchID != nil {
		if !repository.CanAccessBranch(ctx, input.BranchID) {
			return nil, apperror.ErrForbidden
		}
		member.BranchID = input.BranchID
		member.Branch = nil
	}
	if input.AmountPaid != nil {
		if input.AmountPaid.IsNegative() {
			return nil, apperror.NewFieldError("amount_paid", "must not be negative")
		}
		member.AmountPaid = *input.AmountPaid
	}
	if input.Password != "" {
		hashed, err := utils.HashPassword(input.Password)
		if err != nil {
			return nil, err
		}
		member.Password = hashed
	}

	member.Email = emailAddr
	member.Phone = phone
	if input.FullName != nil {
		member.FullName = strings.TrimSpace(*input.FullName)
	}
	if input.Gender != nil {
		member.Gender = input.Gender
	}
	if input.DateOfBirth != nil {
		member.DateOfBirth = input.DateOfBirth
	}
	if input.Address != nil {
		member.Address = input.Address
	}
	if input.InterestedIn != nil {
		member.InterestedIn = input.InterestedIn
	}
	if input.PaymentMode != nil {
		member.PaymentMode = input.PaymentMode
	}
	if input.Status != nil {
		member.Status = *input.Status
	}

	if err := s.memberRepo.Update(ctx, member); err != nil {
		return nil, err
	}
	return member, nil
}

// DeleteMember deactivates a member. History is kept.
func (s *MemberService) DeleteMember(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetMember(ctx, id); err != nil {
		return err
	}
	return s.memberRepo.SetStatus(ctx, id, enum.StatusInactive)
}

// ListByAdmin returns the members registered by an admin
func (s *MemberService) ListByAdmin(ctx context.Context, adminID uuid.UUID) ([]entity.Member, error) {
	return s.memberRepo.ListByAdmin(ctx, adminID)
}

// checkInCooldown swallows repeated scans of the same card at the desk.
const checkInCooldown = 5 * time.Minute

// CheckIn records a front desk visit for an active member whose membership covers today
func (s *MemberService) CheckIn(ctx context.Context, id uuid.UUID, checkedInBy uuid.UUID) (*entity.MemberAttendance, error) {
	member, err := s.GetMember(ctx, id)
	if err != nil {
		return nil, err
	}
	if !member.IsActive() {
		return nil, apperror.NewBadRequestError("Member is inactive")
	}
	now := s.now()
	if !member.HasValidMembership(calc.StartOfDay(now)) {
		return nil, apperror.NewBadRequestError("Membership has expired")
	}

	last, err := s.attendanceRepo.LastCheckIn(ctx, member.ID)
	if err != nil {
		return nil, err
	}
	if last != nil && now.Sub(last.CheckInAt) < checkInCooldown {
		return nil, apperror.NewConflictError("Member has just checked in")
	}

	by := checkedInBy
	attendance := &entity.MemberAttendance{
		MemberID:    member.ID,
		BranchID:    member.BranchID,
		CheckInAt:   now,
		CheckedInBy: &by,
	}
	if err := s.attendanceRepo.Create(ctx, attendance); err != nil {
		return nil, err
	}
	return attendance, nil
}

// ListAttendance returns a member's check-ins, newest first
func (s *MemberService) ListAttendance(ctx context.Context, id uuid.UUID, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.MemberAttendance], error) {
	if _, err := s.GetMember(ctx, id); err != nil {
		return nil, err
	}

	params.Validate()
	rows, total, err := s.attendanceRepo.ListByMember(ctx, id, params)
	if err != nil {
		return nil, err
	}
	return pagination.ResultFor(rows, total, params), nil
}

// RecordPaymentInput represents a membership payment
type RecordPaymentInput struct {
	PlanID     *uuid.UUID
	Amount     decimal.Decimal
	Mode       enum.PaymentMode
	Reference  *string
	RecordedBy uuid.UUID
}

// PaymentOutput is a recorded payment together with the updated member
type PaymentOutput struct {
	Payment *entity.Payment `json:"payment"`
	Member  *entity.Member  `json:"member"`
}

// RecordPayment stores a payment. A payment against a plan renews the
// membership from the later of today and the current end date.
func (s *MemberService) RecordPayment(ctx context.Context, id uuid.UUID, input *RecordPaymentInput) (*PaymentOutput, error) {
	if !input.Amount.IsPositive() {
		return nil, apperror.NewFieldError("amount", "must be greater than zero")
	}

	member, err := s.GetMember(ctx, id)
	if err != nil {
		return nil, err
	}

	now := s.now()
	recordedBy := input.RecordedBy
	payment := &entity.Payment{
		MemberID:   member.ID,
		PlanID:     input.PlanID,
		BranchID:   member.BranchID,
		Amount:     input.Amount,
		Mode:       input.Mode,
		Reference:  input.Reference,
		PaidAt:     now,
		RecordedBy: &recordedBy,
	}

	if input.PlanID != nil {
		plan, err := s.planRepo.FindByID(ctx, *input.PlanID)
		if err != nil {
			return nil, err
		}
		if plan == nil {
			return nil, apperror.ErrInvalidPlan
		}

		start := calc.RenewalStart(member.MembershipTo, now)
		end := calc.MembershipEnd(start, plan.DurationDays)
		payment.PeriodFrom = &start
		payment.PeriodTo = &end

		if member.MembershipTo == nil || !member.MembershipTo.After(calc.StartOfDay(now)) {
			member.MembershipFrom = start
		}
		member.PlanID = &plan.ID
		member.Plan = plan
		member.MembershipTo = &end
	}

	mode := input.Mode
	member.PaymentMode = &mode
	member.AmountPaid = member.AmountPaid.Add(input.Amount)

	err = s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.paymentRepo.Create(ctx, payment); err != nil {
			return err
		}
		return s.memberRepo.Update(ctx, member)
	})
	if err != nil {
		return nil, err
	}

	return &PaymentOutput{Payment: payment, Member: member}, nil
}

// ListPayments returns a member's payments, newest first
func (s *MemberService) ListPayments(ctx context.Context, id uuid.UUID) ([]entity.Payment, error) {
	if _, err := s.GetMember(ctx, id); err != nil {
		return nil, err
	}
	return s.paymentRepo.ListByMember(ctx, id)
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func sameString(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
