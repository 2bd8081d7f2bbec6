package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/sangkips/gymdesk-api/internal/domain/entity"
	"github.com/sangkips/gymdesk-api/internal/domain/repository"
	"github.com/sangkips/gymdesk-api/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanLifecycle(t *testing.T) {
	branch := &entity.Branch{Name: "Central"}
	plans := newFakePlanRepo()
	members := newFakeMemberRepo()
	plans.members = members
	svc := NewPlanService(plans, newFakeBranchRepo(branch))
	days := 90

	plan, err := svc.CreatePlan(allBranches(), &PlanInput{Name: strPtr("Quarterly"), DurationDays: &days, Price: decPtr("120")})
	require.NoError(t, err)
	assert.Equal(t, "General", plan.Category)
	assert.Equal(t, "Active", plan.Status)

	updated, err := svc.UpdatePlan(allBranches(), plan.ID, &PlanInput{Category: strPtr("PT"), BranchID: &branch.ID})
	require.NoError(t, err)
	assert.Equal(t, "PT", updated.Category)
	assert.Equal(t, 90, updated.DurationDays)

	planID := plan.ID
	require.NoError(t, members.Create(context.Background(), &entity.Member{Email: "x@example.com", PlanID: &planID}))
	err = svc.DeletePlan(allBranches(), plan.ID)
	assert.Equal(t, http.StatusConflict, apperror.GetAppError(err).Code)

	otherBranch := repository.WithBranch(context.Background(), uuid.New())
	_, err = svc.UpdatePlan(otherBranch, plan.ID, &PlanInput{Name: strPtr("Hijack")})
	assert.ErrorIs(t, err, apperror.ErrForbidden)
}

func TestPlanValidation(t *testing.T) {
	svc := NewPlanService(newFakePlanRepo(), newFakeBranchRepo())
	negative := -1

	_, err := svc.CreatePlan(allBranches(), &PlanInput{})
	assert.True(t, apperror.IsValidation(err))

	_, err = svc.CreatePlan(allBranches(), &PlanInput{Name: strPtr("Bad"), DurationDays: &negative})
	assert.True(t, apperror.IsValidation(err))

	_, err = svc.CreatePlan(allBranches(), &PlanInput{Name: strPtr("Bad"), Price: decPtr("-5")})
	assert.True(t, apperror.IsValidation(err))

	_, err = svc.GetPlan(allBranches(), uuid.New())
	assert.True(t, apperror.IsNotFound(err))
}

func TestBranchService(t *testing.T) {
	branches := newFakeBranchRepo()
	svc := NewBranchService(branches)

	north, err := svc.CreateBranch(allBranches(), &CreateBranchInput{Name: " North ", AdminID: uuid.New()})
	require.NoError(t, err)
	assert.Equal(t, "North", north.Name)

	_, err = svc.CreateBranch(allBranches(), &CreateBranchInput{Name: "north"})
	assert.Equal(t, http.StatusConflict, apperror.GetAppError(err).Code)

	south, err := svc.CreateBranch(allBranches(), &CreateBranchInput{Name: "South"})
	require.NoError(t, err)

	northOnly := repository.WithBranch(context.Background(), north.ID)
	visible, err := svc.ListBranches(northOnly)
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, north.ID, visible[0].ID)

	_, err = svc.GetBranch(northOnly, south.ID)
	assert.ErrorIs(t, err, apperror.ErrForbidden)
}

func TestUpdatePlanDurationLockedOnceEnrolled(t *testing.T) {
	plans := newFakePlanRepo()
	members := newFakeMemberRepo()
	plans.members = members
	svc := NewPlanService(plans, newFakeBranchRepo())
	days, longer := 30, 45

	plan, err := svc.CreatePlan(allBranches(), &PlanInput{Name: strPtr("Monthly"), DurationDays: &days})
	require.NoError(t, err)

	// free to change before anyone enrols
	_, err = svc.UpdatePlan(allBranches(), plan.ID, &PlanInput{DurationDays: &longer})
	require.NoError(t, err)

	planID := plan.ID
	require.NoError(t, members.Create(context.Background(), &entity.Member{Email: "m@example.com", PlanID: &planID}))

	days = 60
	_, err = svc.UpdatePlan(allBranches(), plan.ID, &PlanInput{DurationDays: &days})
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, apperror.GetAppError(err).Code)

	stored, err := svc.GetPlan(allBranches(), plan.ID)
	require.NoError(t, err)
	assert.Equal(t, 45, stored.DurationDays)

	// resending the same duration with other edits is fine
	same := 45
	updated, err := svc.UpdatePlan(allBranches(), plan.ID, &PlanInput{DurationDays: &same, Price: decPtr("55")})
	require.NoError(t, err)
	assert.Equal(t, "55", updated.Price.String())
}
