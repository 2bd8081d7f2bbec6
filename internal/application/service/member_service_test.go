package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/gymdesk-api/internal/domain/entity"
	"github.com/sangkips/gymdesk-api/internal/domain/enum"
	"github.com/sangkips/gymdesk-api/internal/domain/repository"
	"github.com/sangkips/gymdesk-api/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memberFixture struct {
	svc        *MemberService
	members    *fakeMemberRepo
	plans      *fakePlanRepo
	payments   *fakePaymentRepo
	attendance *fakeAttendanceRepo
	mailer     *fakeMailer
	monthly    *entity.Plan
}

func newMemberFixture() *memberFixture {
	f := &memberFixture{
		members:    newFakeMemberRepo(),
		payments:   &fakePaymentRepo{},
		attendance: &fakeAttendanceRepo{},
		mailer:     &fakeMailer{},
		monthly:    &entity.Plan{Name: "Monthly", DurationDays: 30, Price: dec("50")},
	}
	f.plans = newFakePlanRepo(f.monthly)
	f.svc = NewMemberService(f.members, f.plans, f.attendance, f.payments, &fakeTx{}, newFakeEmailService(f.mailer))
	f.svc.now = clock
	return f
}

func (f *memberFixture) create(t *testing.T, ctx context.Context, in *CreateMemberInput) *entity.Member {
	t.Helper()
	if in.Password == "" {
		in.Password = "secret123"
	}
	m, err := f.svc.CreateMember(ctx, in)
	require.NoError(t, err)
	return m
}

func TestCreateMemberDerivesEndDateAndRecordsPayment(t *testing.T) {
	f := newMemberFixture()
	start := date(2024, 2, 20)

	m := f.create(t, allBranches(), &CreateMemberInput{
		FullName:       " Jane Doe ",
		Email:          "Jane@Example.com",
		PlanID:         &f.monthly.ID,
		MembershipFrom: &start,
		AmountPaid:     dec("50"),
		AdminID:        uuid.New(),
	})

	assert.Equal(t, "Jane Doe", m.FullName)
	assert.Equal(t, "jane@example.com", m.Email)
	assert.Equal(t, enum.StatusActive, m.Status)
	require.NotNil(t, m.MembershipTo)
	assert.True(t, date(2024, 3, 21).Equal(*m.MembershipTo), m.MembershipTo.String())

	require.Len(t, f.payments.payments, 1)
	p := f.payments.payments[0]
	assert.Equal(t, m.ID, p.MemberID)
	assert.Equal(t, enum.PaymentModeCash, p.Mode)
	assert.True(t, p.Amount.Equal(dec("50")))
	assert.True(t, m.MembershipTo.Equal(*p.PeriodTo))

	require.Len(t, f.mailer.sent, 1)
	assert.Equal(t, "jane@example.com", f.mailer.sent[0].To)
	assert.Contains(t, f.mailer.sent[0].HTML, "Monthly")
}

func TestCreateMemberWithoutAmountSkipsPayment(t *testing.T) {
	f := newMemberFixture()

	m := f.create(t, allBranches(), &CreateMemberInput{FullName: "Walk In", Email: "walkin@example.com"})

	assert.Nil(t, m.MembershipTo)
	assert.True(t, date(2024, 2, 20).Equal(m.MembershipFrom))
	assert.Empty(t, f.payments.payments)
}

func TestCreateMemberUnknownPlanWritesNothing(t *testing.T) {
	f := newMemberFixture()
	missing := uuid.New()

	_, err := f.svc.CreateMember(allBranches(), &CreateMemberInput{
		FullName:   "Nobody",
		Email:      "nobody@example.com",
		Password:   "secret123",
		PlanID:     &missing,
		AmountPaid: dec("10"),
	})

	assert.ErrorIs(t, err, apperror.ErrInvalidPlan)
	assert.Empty(t, f.members.members)
	assert.Empty(t, f.payments.payments)
}

func TestCreateMemberRejectsDuplicates(t *testing.T) {
	f := newMemberFixture()
	phone := "0700000001"
	f.create(t, allBranches(), &CreateMemberInput{FullName: "First", Email: "first@example.com", Phone: &phone})

	_, err := f.svc.CreateMember(allBranches(), &CreateMemberInput{FullName: "Again", Email: "FIRST@example.com", Password: "x"})
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, apperror.GetAppError(err).Code)
	assert.Equal(t, "Email already registered", err.Error())

	_, err = f.svc.CreateMember(allBranches(), &CreateMemberInput{FullName: "Other", Email: "other@example.com", Password: "x", Phone: &phone})
	require.Error(t, err)
	assert.Equal(t, "Phone number already registered", err.Error())
}

func TestCreateMemberNegativeAmount(t *testing.T) {
	f := newMemberFixture()

	_, err := f.svc.CreateMember(allBranches(), &CreateMemberInput{Email: "neg@example.com", AmountPaid: dec("-1")})

	assert.True(t, apperror.IsValidation(err))
}

func TestMemberBranchScope(t *testing.T) {
	f := newMemberFixture()
	branchA, branchB := uuid.New(), uuid.New()
	scoped := repository.WithBranch(context.Background(), branchA)

	m := f.create(t, scoped, &CreateMemberInput{FullName: "Local", Email: "local@example.com"})
	require.NotNil(t, m.BranchID)
	assert.Equal(t, branchA, *m.BranchID)

	_, err := f.svc.CreateMember(scoped, &CreateMemberInput{Email: "far@example.com", Password: "x", BranchID: &branchB})
	assert.ErrorIs(t, err, apperror.ErrForbidden)

	other := f.create(t, allBranches(), &CreateMemberInput{FullName: "Far", Email: "far@example.com", BranchID: &branchB})
	_, err = f.svc.GetMember(scoped, other.ID)
	assert.ErrorIs(t, err, apperror.ErrForbidden)

	_, err = f.svc.GetMember(scoped, uuid.New())
	assert.True(t, apperror.IsNotFound(err))
}

func TestUpdateMemberRecomputesEndDateOnPlanChange(t *testing.T) {
	f := newMemberFixture()
	weekly := &entity.Plan{Name: "Weekly", DurationDays: 7}
	require.NoError(t, f.plans.Create(context.Background(), weekly))
	start := date(2024, 2, 1)
	m := f.create(t, allBranches(), &CreateMemberInput{FullName: "Ann", Email: "ann@example.com", PlanID: &f.monthly.ID, MembershipFrom: &start})

	updated, err := f.svc.UpdateMember(allBranches(), m.ID, &UpdateMemberInput{PlanID: &weekly.ID})

	require.NoError(t, err)
	assert.True(t, date(2024, 2, 8).Equal(*updated.MembershipTo))
	assert.Equal(t, "ann@example.com", updated.Email)
	assert.Equal(t, m.Password, f.members.members[m.ID].Password)
}

func TestUpdateMemberNameOnlyKeepsPeriod(t *testing.T) {
	f := newMemberFixture()
	start := date(2024, 2, 1)
	m := f.create(t, allBranches(), &CreateMemberInput{FullName: "Ben", Email: "ben@example.com", PlanID: &f.monthly.ID, MembershipFrom: &start})

	updated, err := f.svc.UpdateMember(allBranches(), m.ID, &UpdateMemberInput{FullName: strPtr("Benjamin")})

	require.NoError(t, err)
	assert.Equal(t, "Benjamin", updated.FullName)
	assert.True(t, m.MembershipTo.Equal(*updated.MembershipTo))
}

func TestUpdateMemberRejectsUnknownPlan(t *testing.T) {
	f := newMemberFixture()
	start := date(2024, 2, 20)
	m := f.create(t, allBranches(), &CreateMemberInput{FullName: "Fay", Email: "fay@example.com", PlanID: &f.monthly.ID, MembershipFrom: &start})
	before := *f.members.members[m.ID]

	missing := uuid.New()
	_, err := f.svc.UpdateMember(allBranches(), m.ID, &UpdateMemberInput{FullName: strPtr("Renamed"), PlanID: &missing})

	assert.ErrorIs(t, err, apperror.ErrInvalidPlan)
	stored := f.members.members[m.ID]
	assert.Equal(t, "Fay", stored.FullName)
	assert.Equal(t, f.monthly.ID, *stored.PlanID)
	assert.True(t, before.MembershipTo.Equal(*stored.MembershipTo))
}

func TestDeletedMemberCannotCheckIn(t *testing.T) {
	f := newMemberFixture()
	m := f.create(t, allBranches(), &CreateMemberInput{FullName: "Cat", Email: "cat@example.com"})

	_, err := f.svc.CheckIn(allBranches(), m.ID, uuid.New())
	require.NoError(t, err)
	require.Len(t, f.attendance.rows, 1)

	require.NoError(t, f.svc.DeleteMember(allBranches(), m.ID))
	assert.Equal(t, enum.StatusInactive, f.members.members[m.ID].Status)

	_, err = f.svc.CheckIn(allBranches(), m.ID, uuid.New())
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperror.GetAppError(err).Code)
	assert.Len(t, f.attendance.rows, 1)
}

func TestCheckInRequiresCurrentMembership(t *testing.T) {
	f := newMemberFixture()
	start := date(2024, 2, 20)
	m := f.create(t, allBranches(), &CreateMemberInput{FullName: "Dee", Email: "dee@example.com", PlanID: &f.monthly.ID, MembershipFrom: &start})

	// last covered day is still valid
	lapsed := date(2024, 2, 20)
	f.members.members[m.ID].MembershipTo = &lapsed
	_, err := f.svc.CheckIn(allBranches(), m.ID, uuid.New())
	require.NoError(t, err)

	lapsed = date(2024, 2, 19)
	f.members.members[m.ID].MembershipTo = &lapsed
	f.svc.now = func() time.Time { return fixedNow.Add(time.Hour) }
	_, err = f.svc.CheckIn(allBranches(), m.ID, uuid.New())
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperror.GetAppError(err).Code)
	assert.Equal(t, "Membership has expired", err.Error())
	assert.Len(t, f.attendance.rows, 1)
}

func TestCheckInIgnoresRepeatedScan(t *testing.T) {
	f := newMemberFixture()
	m := f.create(t, allBranches(), &CreateMemberInput{FullName: "Eve", Email: "eve@example.com"})

	_, err := f.svc.CheckIn(allBranches(), m.ID, uuid.New())
	require.NoError(t, err)

	f.svc.now = func() time.Time { return fixedNow.Add(2 * time.Minute) }
	_, err = f.svc.CheckIn(allBranches(), m.ID, uuid.New())
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, apperror.GetAppError(err).Code)
	assert.Len(t, f.attendance.rows, 1)

	f.svc.now = func() time.Time { return fixedNow.Add(3 * time.Hour) }
	_, err = f.svc.CheckIn(allBranches(), m.ID, uuid.New())
	require.NoError(t, err)
	assert.Len(t, f.attendance.rows, 2)
}

func TestRecordPaymentRenewal(t *testing.T) {
	tests := []struct {
		name      string
		currentTo *int // days after 2024-02-01
		wantFrom  string
		wantTo    string
	}{
		{"running membership extends from end date", intPtr(29), "2024-03-01", "2024-03-31"},
		{"lapsed membership restarts today", intPtr(-31), "2024-02-20", "2024-03-21"},
		{"no end date starts today", nil, "2024-02-20", "2024-03-21"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newMemberFixture()
			m := f.create(t, allBranches(), &CreateMemberInput{FullName: "Dan", Email: "dan@example.com", AmountPaid: dec("20")})
			if tt.currentTo != nil {
				end := date(2024, 2, 1).AddDate(0, 0, *tt.currentTo)
				f.members.members[m.ID].MembershipTo = &end
			}

			out, err := f.svc.RecordPayment(allBranches(), m.ID, &RecordPaymentInput{
				PlanID: &f.monthly.ID,
				Amount: dec("50"),
				Mode:   enum.PaymentModeMobileMoney,
			})

			require.NoError(t, err)
			assert.Equal(t, tt.wantFrom, out.Payment.PeriodFrom.Format("2006-01-02"))
			assert.Equal(t, tt.wantTo, out.Member.MembershipTo.Format("2006-01-02"))
			assert.True(t, out.Member.AmountPaid.Equal(dec("70")))
			assert.Equal(t, enum.PaymentModeMobileMoney, *f.members.members[m.ID].PaymentMode)
			assert.Len(t, f.payments.payments, 2)
		})
	}
}

func TestRecordPaymentValidation(t *testing.T) {
	f := newMemberFixture()
	m := f.create(t, allBranches(), &CreateMemberInput{FullName: "Eve", Email: "eve@example.com"})

	_, err := f.svc.RecordPayment(allBranches(), m.ID, &RecordPaymentInput{Amount: dec("0")})
	assert.True(t, apperror.IsValidation(err))

	missing := uuid.New()
	_, err = f.svc.RecordPayment(allBranches(), m.ID, &RecordPaymentInput{Amount: dec("5"), PlanID: &missing})
	assert.ErrorIs(t, err, apperror.ErrInvalidPlan)
	assert.Empty(t, f.payments.payments)
}

func intPtr(v int) *int { return &v }
