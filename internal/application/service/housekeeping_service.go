package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/gymdesk-api/internal/domain/entity"
	"github.com/sangkips/gymdesk-api/internal/domain/enum"
	"github.com/sangkips/gymdesk-api/internal/domain/repository"
	"github.com/sangkips/gymdesk-api/pkg/apperror"
)

// HousekeepingService manages cleaning and maintenance tasks
type HousekeepingService struct {
	taskRepo repository.HousekeepingRepository
	userRepo repository.UserRepository
}

// NewHousekeepingService creates a new housekeeping service
func NewHousekeepingService(taskRepo repository.HousekeepingRepository, userRepo repository.UserRepository) *HousekeepingService {
	return &HousekeepingService{taskRepo: taskRepo, userRepo: userRepo}
}

// TaskInput represents task fields. Nil fields keep their stored values on update.
type TaskInput struct {
	Category    *string
	Title       *string
	Description *string
	Status      *string
	AssignedTo  *uuid.UUID
	BranchID    *uuid.UUID
}

// CreateTask creates a housekeeping task
func (s *HousekeepingService) CreateTask(ctx context.Context, input *TaskInput) (*entity.HousekeepingTask, error) {
	var errs []apperror.FieldError
	if input.Category == nil || strings.TrimSpace(*input.Category) == "" {
		errs = append(errs, apperror.FieldError{Field: "category", Message: "category is required"})
	}
	if input.Title == nil || strings.TrimSpace(*input.Title) == "" {
		errs = append(errs, apperror.FieldError{Field: "title", Message: "title is required"})
	}
	if len(errs) > 0 {
		return nil, apperror.NewValidationError(errs)
	}

	task := &entity.HousekeepingTask{Status: enum.TaskStatusPending}
	if input.BranchID == nil {
		if scoped, ok := repository.BranchFromContext(ctx); ok {
			task.BranchID = &scoped
		}
	}
	if err := s.apply(ctx, task, input); err != nil {
		return nil, err
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *HousekeepingService) apply(ctx context.Context, task *entity.HousekeepingTask, input *TaskInput) error {
	if input.AssignedTo != nil {
		user, err := s.userRepo.GetByID(ctx, *input.AssignedTo)
		if err != nil {
			return err
		}
		if user == nil {
			return apperror.NewNotFoundError("Staff")
		}
		task.AssignedTo = input.AssignedTo
	}
	if input.Category != nil {
		task.Category = strings.TrimSpace(*input.Category)
	}
	if input.Title != nil {
		task.Title = strings.TrimSpace(*input.Title)
	}
	if input.Description != nil {
		task.Description = input.Description
	}
	if input.Status != nil && *input.Status != "" {
		task.Status = *input.Status
	}
	if input.BranchID != nil {
		task.BranchID = input.BranchID
	}
	return nil
}

// ListTasks returns all tasks, newest first
func (s *HousekeepingService) ListTasks(ctx context.Context) ([]entity.HousekeepingTask, error) {
	return s.taskRepo.List(ctx)
}

// GetTask returns a task by id
func (s *HousekeepingService) GetTask(ctx context.Context, id uuid.UUID) (*entity.HousekeepingTask, error) {
	task, err := s.taskRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, apperror.NewNotFoundError("Task")
	}
	return task, nil
}

// UpdateTask applies a partial update
func (s *HousekeepingService) UpdateTask(ctx context.Context, id uuid.UUID, input *TaskInput) (*entity.HousekeepingTask, error) {
	task, err := s.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Category != nil && strings.TrimSpace(*input.Category) == "" {
		return nil, apperror.NewFieldError("category", "category must not be empty")
	}
	if input.Title != nil && strings.TrimSpace(*input.Title) == "" {
		return nil, apperror.NewFieldError("title", "title must not be empty")
	}
	if err := s.apply(ctx, task, input); err != nil {
		return nil, err
	}

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// DeleteTask removes a task
func (s *HousekeepingService) DeleteTask(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetTask(ctx, id); err != nil {
		return err
	}
	return s.taskRepo.Delete(ctx, id)
}

// ListByStaff returns the tasks assigned to one staff member
func (s *HousekeepingService) ListByStaff(ctx context.Context, userID uuid.UUID) ([]entity.HousekeepingTask, error) {
	return s.taskRepo.ListByAssignee(ctx, userID)
}
