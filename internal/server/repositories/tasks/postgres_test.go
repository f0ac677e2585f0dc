package tasks

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/sooratali/TaskManager/internal/common"
	"github.com/sooratali/TaskManager/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

const insertTaskQ = `(?s)^INSERT\s+INTO\s+tasks\s*\(id,\s*owner_id,\s*title,\s*description,\s*due_date,\s*priority,\s*status\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4,\s*\$5,\s*\$6,\s*\$7\)\s*RETURNING\s+created_at\s*$`
const selectTaskQ = `(?s)^SELECT\s+id,\s*owner_id,\s*title,\s*description,\s*due_date,\s*priority,\s*status,\s*created_at\s+FROM\s+tasks\s+WHERE\s+id\s*=\s*\$1\s*$`
const listTasksQ = `(?s)^SELECT\s+id,\s*owner_id,\s*title,\s*description,\s*due_date,\s*priority,\s*status,\s*created_at\s+FROM\s+tasks\s+WHERE\s+owner_id\s*=\s*\$1\s+ORDER\s+BY\s+created_at\s+DESC,\s*id\s+DESC\s*$`
const updateTaskQ = `(?s)^UPDATE\s+tasks\s+SET\s+title\s*=\s*\$2,\s*description\s*=\s*\$3,\s*due_date\s*=\s*\$4,\s*priority\s*=\s*\$5,\s*status\s*=\s*\$6\s+WHERE\s+id\s*=\s*\$1\s*$`
const deleteTaskQ = `(?s)^DELETE\s+FROM\s+tasks\s+WHERE\s+id\s*=\s*\$1\s*$`

func sampleTask() *models.Task {
	return &models.Task{
		ID:          "t-1",
		OwnerID:     "u-1",
		Title:       "Buy milk",
		Description: "2 liters",
		DueDate:     "2026-09-01",
		Priority:    "Normal",
		Status:      models.StatusIncomplete,
	}
}

func TestCreate_ReturnsCreatedAt(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows([]string{"created_at"}).AddRow(now)
	mock.ExpectQuery(insertTaskQ).
		WithArgs("t-1", "u-1", "Buy milk", "2 liters", "2026-09-01", "Normal", models.StatusIncomplete).
		WillReturnRows(rows)

	got, err := repo.Create(context.Background(), sampleTask())
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if !got.CreatedAt.Equal(now) {
		t.Fatalf("created_at not read back: %v", got.CreatedAt)
	}
}

func TestGetByID_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "owner_id", "title", "description", "due_date", "priority", "status", "created_at"}).
		AddRow("t-1", "u-1", "Buy milk", "", "", "Normal", "incomplete", now)
	mock.ExpectQuery(selectTaskQ).WithArgs("t-1").WillReturnRows(rows)

	got, err := repo.GetByID(context.Background(), "t-1")
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if got.OwnerID != "u-1" || got.Status != models.StatusIncomplete {
		t.Fatalf("unexpected task: %+v", got)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(selectTaskQ).WithArgs("ghost").WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "ghost")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestListByOwner_OrderAndScan(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "owner_id", "title", "description", "due_date", "priority", "status", "created_at"}).
		AddRow("t-3", "u-1", "third", "", "", "Normal", "incomplete", now).
		AddRow("t-2", "u-1", "second", "", "", "Normal", "complete", now.Add(-time.Minute)).
		AddRow("t-1", "u-1", "first", "", "", "Normal", "incomplete", now.Add(-2*time.Minute))
	mock.ExpectQuery(listTasksQ).WithArgs("u-1").WillReturnRows(rows)

	got, err := repo.ListByOwner(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("ListByOwner error: %v", err)
	}
	if len(got) != 3 || got[0].ID != "t-3" || got[2].ID != "t-1" {
		t.Fatalf("unexpected order: %+v", got)
	}
}

func TestListByOwner_Empty(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "owner_id", "title", "description", "due_date", "priority", "status", "created_at"})
	mock.ExpectQuery(listTasksQ).WithArgs("u-2").WillReturnRows(rows)

	got, err := repo.ListByOwner(context.Background(), "u-2")
	if err != nil {
		t.Fatalf("ListByOwner error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty list, got %+v", got)
	}
}

func TestUpdate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	task := sampleTask()
	mock.ExpectExec(updateTaskQ).
		WithArgs(task.ID, task.Title, task.Description, task.DueDate, task.Priority, task.Status).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Update(context.Background(), task); err != nil {
		t.Fatalf("Update error: %v", err)
	}
}

func TestUpdate_NoRow(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	task := sampleTask()
	mock.ExpectExec(updateTaskQ).
		WithArgs(task.ID, task.Title, task.Description, task.DueDate, task.Priority, task.Status).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.Update(context.Background(), task); !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestDelete_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(deleteTaskQ).WithArgs("t-1").WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Delete(context.Background(), "t-1"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
}

func TestDelete_NoRow(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(deleteTaskQ).WithArgs("ghost").WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.Delete(context.Background(), "ghost"); !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}
