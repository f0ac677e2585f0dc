package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/sooratali/TaskManager/internal/common"
	"github.com/sooratali/TaskManager/internal/dbx"
	"github.com/sooratali/TaskManager/internal/server/models"
	"github.com/sooratali/TaskManager/internal/server/repositories/repomanager"
	"github.com/sooratali/TaskManager/internal/server/repositories/tasks"
)

// TaskService provides ownership-guarded task CRUD for an already-resolved
// caller identity. Callers must pass the owner's user id explicitly; there
// is no ambient current-user state. Every operation that targets an existing
// task re-fetches it and compares its owner to the caller before acting.
type TaskService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewTaskService constructs a TaskService over the given connection and
// repository manager.
func NewTaskService(db *sql.DB, m repomanager.RepositoryManager) *TaskService {
	return &TaskService{db: db, repomanager: m}
}

// Create inserts a new incomplete task for ownerID. The title must be
// non-empty after trimming; an empty priority defaults to "Normal".
func (s *TaskService) Create(ctx context.Context, ownerID, title, description, dueDate, priority string) (*models.Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", common.ErrorValidation)
	}
	if priority == "" {
		priority = models.DefaultPriority
	}

	task := &models.Task{
		ID:          uuid.NewString(),
		OwnerID:     ownerID,
		Title:       title,
		Description: strings.TrimSpace(description),
		DueDate:     strings.TrimSpace(dueDate),
		Priority:    priority,
		Status:      models.StatusIncomplete,
	}

	repo := s.repomanager.Tasks(s.db)
	created, err := repo.Create(ctx, task)
	if err != nil {
		return nil, fmt.Errorf("error creating task: %w", err)
	}
	return created, nil
}

// ListForOwner returns every task owned by ownerID, newest first.
func (s *TaskService) ListForOwner(ctx context.Context, ownerID string) ([]*models.Task, error) {
	repo := s.repomanager.Tasks(s.db)
	return repo.ListByOwner(ctx, ownerID)
}

// GetIfOwned returns the task only when it exists and belongs to ownerID.
func (s *TaskService) GetIfOwned(ctx context.Context, taskID, ownerID string) (*models.Task, error) {
	repo := s.repomanager.Tasks(s.db)
	return s.getIfOwned(ctx, repo, taskID, ownerID)
}

// Update overwrites the five mutable fields of an owned task. The ownership
// check runs first, then title validation, inside one transaction.
func (s *TaskService) Update(ctx context.Context, taskID, ownerID, title, description, dueDate, priority string, status models.Status) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Tasks(tx)

		task, err := s.getIfOwned(ctx, repo, taskID, ownerID)
		if err != nil {
			return err
		}

		title = strings.TrimSpace(title)
		if title == "" {
			return fmt.Errorf("%w: title is required", common.ErrorValidation)
		}
		if !status.Valid() {
			return fmt.Errorf("%w: unknown status %q", common.ErrorValidation, status)
		}
		if priority == "" {
			priority = models.DefaultPriority
		}

		task.Title = title
		task.Description = strings.TrimSpace(description)
		task.DueDate = strings.TrimSpace(dueDate)
		task.Priority = priority
		task.Status = status

		return repo.Update(ctx, task)
	})
}

// Delete removes an owned task.
func (s *TaskService) Delete(ctx context.Context, taskID, ownerID string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Tasks(tx)

		if _, err := s.getIfOwned(ctx, repo, taskID, ownerID); err != nil {
			return err
		}
		return repo.Delete(ctx, taskID)
	})
}

// ToggleStatus flips the task between incomplete and complete and returns
// the new status. The rest of the row is persisted unchanged.
func (s *TaskService) ToggleStatus(ctx context.Context, taskID, ownerID string) (models.Status, error) {
	var newStatus models.Status
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Tasks(tx)

		task, err := s.getIfOwned(ctx, repo, taskID, ownerID)
		if err != nil {
			return err
		}

		task.Status = task.Status.Toggled()
		if err := repo.Update(ctx, task); err != nil {
			return err
		}
		newStatus = task.Status
		return nil
	})
	if err != nil {
		return "", err
	}
	return newStatus, nil
}

// getIfOwned fetches a task and asserts ownership. A missing row and a row
// owned by somebody else both come back as common.ErrorNotFound so callers
// cannot probe for existence.
func (s *TaskService) getIfOwned(ctx context.Context, repo tasks.Repository, taskID, ownerID string) (*models.Task, error) {
	task, err := repo.GetByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, err
	}
	if task.OwnerID != ownerID {
		return nil, common.ErrorNotFound
	}
	return task, nil
}
