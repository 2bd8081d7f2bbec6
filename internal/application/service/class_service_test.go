package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/sangkips/gymdesk-api/internal/domain/entity"
	"github.com/sangkips/gymdesk-api/internal/domain/enum"
	"github.com/sangkips/gymdesk-api/internal/domain/repository"
	"github.com/sangkips/gymdesk-api/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type classFixture struct {
	svc       *ClassService
	schedules *fakeScheduleRepo
	bookings  *fakeBookingRepo
	members   *fakeMemberRepo
	branch    *entity.Branch
	yoga      *entity.ClassType
	trainer   *entity.User
}

func newClassFixture(t *testing.T) *classFixture {
	t.Helper()
	ctx := context.Background()
	roles := newFakeRoleRepo(entity.RoleTrainer)
	users := newFakeUserRepo(roles)
	f := &classFixture{
		bookings: newFakeBookingRepo(),
		members:  newFakeMemberRepo(),
		branch:   &entity.Branch{Name: "Downtown"},
		yoga:     &entity.ClassType{Name: "Yoga"},
		trainer:  &entity.User{FullName: "Tina Trainer", Email: "tina@gym.test", RoleID: roles.byName(entity.RoleTrainer).ID},
	}
	f.schedules = newFakeScheduleRepo(f.bookings)
	classTypes := newFakeClassTypeRepo()
	require.NoError(t, classTypes.Create(ctx, f.yoga))
	require.NoError(t, users.Create(ctx, f.trainer))

	f.svc = NewClassService(classTypes, f.schedules, f.bookings, newFakeBranchRepo(f.branch), users, f.members, &fakeTx{})
	return f
}

func (f *classFixture) input(capacity int) *ScheduleInput {
	day := date(2024, 3, 4)
	return &ScheduleInput{
		BranchID:    &f.branch.ID,
		ClassTypeID: &f.yoga.ID,
		TrainerID:   &f.trainer.ID,
		Date:        &day,
		StartTime:   strPtr("07:00"),
		EndTime:     strPtr("08:00"),
		Capacity:    &capacity,
	}
}

func (f *classFixture) member(t *testing.T) uuid.UUID {
	t.Helper()
	m := &entity.Member{FullName: "Member", Email: uuid.NewString() + "@example.com", Status: enum.StatusActive}
	require.NoError(t, f.members.Create(context.Background(), m))
	return m.ID
}

func TestCreateSchedule(t *testing.T) {
	f := newClassFixture(t)

	view, err := f.svc.CreateSchedule(allBranches(), f.input(10))

	require.NoError(t, err)
	assert.Equal(t, "Monday", view.Day)
	assert.Equal(t, enum.StatusActive, view.Status)
	assert.Equal(t, int64(0), view.BookedCount)
	assert.Empty(t, view.Members)
}

func TestCreateScheduleValidation(t *testing.T) {
	f := newClassFixture(t)

	tests := []struct {
		name   string
		mutate func(in *ScheduleInput)
		field  string
	}{
		{"end before start", func(in *ScheduleInput) { in.EndTime = strPtr("06:30") }, "end_time"},
		{"malformed clock", func(in *ScheduleInput) { in.StartTime = strPtr("7am") }, "start_time"},
		{"zero capacity", func(in *ScheduleInput) { zero := 0; in.Capacity = &zero }, "capacity"},
		{"missing trainer", func(in *ScheduleInput) { in.TrainerID = nil }, "trainer_id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := f.input(10)
			tt.mutate(in)

			_, err := f.svc.CreateSchedule(allBranches(), in)

			require.True(t, apperror.IsValidation(err), "got %v", err)
			assert.Equal(t, tt.field, apperror.GetAppError(err).Errors[0].Field)
		})
	}
	assert.Empty(t, f.schedules.schedules)
}

func TestCreateScheduleUnknownClassType(t *testing.T) {
	f := newClassFixture(t)
	in := f.input(10)
	missing := uuid.New()
	in.ClassTypeID = &missing

	_, err := f.svc.CreateSchedule(allBranches(), in)

	assert.True(t, apperror.IsNotFound(err))
}

func TestBookUntilFull(t *testing.T) {
	f := newClassFixture(t)
	view, err := f.svc.CreateSchedule(allBranches(), f.input(2))
	require.NoError(t, err)

	first, second, third := f.member(t), f.member(t), f.member(t)
	_, err = f.svc.Book(allBranches(), view.ID, first)
	require.NoError(t, err)
	_, err = f.svc.Book(allBranches(), view.ID, second)
	require.NoError(t, err)

	_, err = f.svc.Book(allBranches(), view.ID, third)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperror.GetAppError(err).Code)
	assert.Equal(t, "Class is full", err.Error())

	got, err := f.svc.GetSchedule(allBranches(), view.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.BookedCount)
	assert.ElementsMatch(t, []uuid.UUID{first, second}, []uuid.UUID(got.Members))
	assert.Equal(t, 3, f.schedules.locks)
}

func TestBookTwiceConflicts(t *testing.T) {
	f := newClassFixture(t)
	view, err := f.svc.CreateSchedule(allBranches(), f.input(5))
	require.NoError(t, err)
	m := f.member(t)

	_, err = f.svc.Book(allBranches(), view.ID, m)
	require.NoError(t, err)
	_, err = f.svc.Book(allBranches(), view.ID, m)

	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, apperror.GetAppError(err).Code)
	count, _ := f.bookings.CountBySchedule(context.Background(), view.ID)
	assert.Equal(t, int64(1), count)
}

func TestBookRejectsInactiveMemberAndMissingSchedule(t *testing.T) {
	f := newClassFixture(t)
	view, err := f.svc.CreateSchedule(allBranches(), f.input(5))
	require.NoError(t, err)
	m := f.member(t)
	f.members.members[m].Status = enum.StatusInactive

	_, err = f.svc.Book(allBranches(), view.ID, m)
	assert.ErrorIs(t, err, apperror.ErrMemberInactive)

	_, err = f.svc.Book(allBranches(), uuid.New(), f.member(t))
	assert.True(t, apperror.IsNotFound(err))
}

func TestCancelBooking(t *testing.T) {
	f := newClassFixture(t)
	view, err := f.svc.CreateSchedule(allBranches(), f.input(1))
	require.NoError(t, err)
	m := f.member(t)

	err = f.svc.Cancel(allBranches(), view.ID, m)
	require.Error(t, err)
	assert.Equal(t, "You have not booked this class", err.Error())

	_, err = f.svc.Book(allBranches(), view.ID, m)
	require.NoError(t, err)
	require.NoError(t, f.svc.Cancel(allBranches(), view.ID, m))

	got, err := f.svc.GetSchedule(allBranches(), view.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), got.BookedCount)
	assert.Empty(t, got.Members)

	// the freed place can be taken again
	_, err = f.svc.Book(allBranches(), view.ID, f.member(t))
	assert.NoError(t, err)
}

func TestUpdateScheduleCapacityBelowBookings(t *testing.T) {
	f := newClassFixture(t)
	view, err := f.svc.CreateSchedule(allBranches(), f.input(3))
	require.NoError(t, err)
	_, err = f.svc.Book(allBranches(), view.ID, f.member(t))
	require.NoError(t, err)
	_, err = f.svc.Book(allBranches(), view.ID, f.member(t))
	require.NoError(t, err)

	one := 1
	_, err = f.svc.UpdateSchedule(allBranches(), view.ID, &ScheduleInput{Capacity: &one})
	assert.True(t, apperror.IsValidation(err))

	two := 2
	got, err := f.svc.UpdateSchedule(allBranches(), view.ID, &ScheduleInput{Capacity: &two, EndTime: strPtr("08:30")})
	require.NoError(t, err)
	assert.Equal(t, 2, got.Capacity)
	assert.Equal(t, "08:30", got.EndTime)
	assert.Equal(t, "07:00", got.StartTime)
}

func TestDeleteScheduleRemovesBookings(t *testing.T) {
	f := newClassFixture(t)
	view, err := f.svc.CreateSchedule(allBranches(), f.input(3))
	require.NoError(t, err)
	_, err = f.svc.Book(allBranches(), view.ID, f.member(t))
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteSchedule(allBranches(), view.ID))

	assert.Empty(t, f.schedules.schedules)
	assert.Empty(t, f.bookings.bookings)
	assert.True(t, apperror.IsNotFound(f.svc.DeleteSchedule(allBranches(), view.ID)))
}

func TestCreateClassTypeDuplicate(t *testing.T) {
	f := newClassFixture(t)

	_, err := f.svc.CreateClassType(context.Background(), " yoga ")

	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, apperror.GetAppError(err).Code)
}

func TestBookingIsScopedToBranch(t *testing.T) {
	f := newClassFixture(t)
	view, err := f.svc.CreateSchedule(allBranches(), f.input(5))
	require.NoError(t, err)
	m := f.member(t)
	elsewhere := repository.WithBranch(context.Background(), uuid.New())

	_, err = f.svc.Book(elsewhere, view.ID, m)
	assert.ErrorIs(t, err, apperror.ErrForbidden)
	assert.Empty(t, f.bookings.bookings)

	own := repository.WithBranch(context.Background(), f.branch.ID)
	_, err = f.svc.Book(own, view.ID, m)
	require.NoError(t, err)

	err = f.svc.Cancel(elsewhere, view.ID, m)
	assert.ErrorIs(t, err, apperror.ErrForbidden)

	got, err := f.svc.GetSchedule(allBranches(), view.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.BookedCount)

	require.NoError(t, f.svc.Cancel(own, view.ID, m))
}
