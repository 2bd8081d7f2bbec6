package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/sangkips/gymdesk-api/internal/domain/entity"
	"github.com/sangkips/gymdesk-api/internal/domain/enum"
	"github.com/sangkips/gymdesk-api/internal/domain/repository"
	"github.com/sangkips/gymdesk-api/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHousekeepingTaskLifecycle(t *testing.T) {
	roles := newFakeRoleRepo(entity.RoleStaff)
	users := newFakeUserRepo(roles)
	cleaner := &entity.User{FullName: "Cleo", Email: "cleo@gym.test", RoleID: 1}
	require.NoError(t, users.Create(context.Background(), cleaner))
	tasks := newFakeTaskRepo()
	svc := NewHousekeepingService(tasks, users)

	branch := uuid.New()
	ctx := repository.WithBranch(context.Background(), branch)

	task, err := svc.CreateTask(ctx, &TaskInput{
		Category:    strPtr("Cleaning"),
		Title:       strPtr(" Mop the studio "),
		Description: strPtr("After the evening class"),
		AssignedTo:  &cleaner.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "Mop the studio", task.Title)
	assert.Equal(t, enum.TaskStatusPending, task.Status)
	assert.Equal(t, branch, *task.BranchID)

	updated, err := svc.UpdateTask(ctx, task.ID, &TaskInput{Status: strPtr(enum.TaskStatusCompleted)})
	require.NoError(t, err)
	assert.Equal(t, enum.TaskStatusCompleted, updated.Status)
	assert.Equal(t, "Cleaning", updated.Category)
	assert.Equal(t, "After the evening class", *updated.Description)
	assert.Equal(t, cleaner.ID, *updated.AssignedTo)

	mine, err := svc.ListByStaff(ctx, cleaner.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	require.NoError(t, svc.DeleteTask(ctx, task.ID))
	_, err = svc.GetTask(ctx, task.ID)
	assert.True(t, apperror.IsNotFound(err))
}

func TestHousekeepingValidation(t *testing.T) {
	users := newFakeUserRepo(newFakeRoleRepo())
	svc := NewHousekeepingService(newFakeTaskRepo(), users)
	ctx := allBranches()

	_, err := svc.CreateTask(ctx, &TaskInput{Title: strPtr("  ")})
	require.True(t, apperror.IsValidation(err))
	assert.Len(t, apperror.GetAppError(err).Errors, 2)

	nobody := uuid.New()
	_, err = svc.CreateTask(ctx, &TaskInput{Category: strPtr("Repair"), Title: strPtr("Fix bike"), AssignedTo: &nobody})
	assert.True(t, apperror.IsNotFound(err))

	task, err := svc.CreateTask(ctx, &TaskInput{Category: strPtr("Repair"), Title: strPtr("Fix bike")})
	require.NoError(t, err)
	assert.Nil(t, task.BranchID)

	_, err = svc.UpdateTask(ctx, task.ID, &TaskInput{Title: strPtr("")})
	assert.True(t, apperror.IsValidation(err))
}
