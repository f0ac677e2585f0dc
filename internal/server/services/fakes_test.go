package services

import (
	"context"
	"database/sql"
	"sort"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/sooratali/TaskManager/internal/common"
	"github.com/sooratali/TaskManager/internal/dbx"
	"github.com/sooratali/TaskManager/internal/server/models"
	tasksrepo "github.com/sooratali/TaskManager/internal/server/repositories/tasks"
	usersrepo "github.com/sooratali/TaskManager/internal/server/repositories/users"
)

// newSQLMockDB provides a *sql.DB for the services under test; the fake
// repositories never touch it, but transactional operations still begin and
// commit against it.
func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func expectTxCommit(mock sqlmock.Sqlmock) {
	mock.ExpectBegin()
	mock.ExpectCommit()
}

func expectTxRollback(mock sqlmock.Sqlmock) {
	mock.ExpectBegin()
	mock.ExpectRollback()
}

// --- fake repositories, map-backed ---

type fakeUsersRepo struct {
	byEmail map[string]*models.User
}

func newFakeUsersRepo() *fakeUsersRepo {
	return &fakeUsersRepo{byEmail: make(map[string]*models.User)}
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if _, ok := f.byEmail[u.Email]; ok {
		return nil, common.ErrorDuplicateEmail
	}
	cp := *u
	f.byEmail[u.Email] = &cp
	return u, nil
}

func (f *fakeUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsersRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, common.ErrorNotFound
}

type fakeTasksRepo struct {
	byID map[string]*models.Task
	now  time.Time
}

func newFakeTasksRepo() *fakeTasksRepo {
	return &fakeTasksRepo{byID: make(map[string]*models.Task), now: time.Now()}
}

func (f *fakeTasksRepo) Create(ctx context.Context, task *models.Task) (*models.Task, error) {
	// Mimic the storage default: each insert gets a later created_at.
	f.now = f.now.Add(time.Second)
	task.CreatedAt = f.now
	cp := *task
	f.byID[task.ID] = &cp
	return task, nil
}

func (f *fakeTasksRepo) GetByID(ctx context.Context, id string) (*models.Task, error) {
	task, ok := f.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *task
	return &cp, nil
}

func (f *fakeTasksRepo) ListByOwner(ctx context.Context, ownerID string) ([]*models.Task, error) {
	var result []*models.Task
	for _, task := range f.byID {
		if task.OwnerID == ownerID {
			cp := *task
			result = append(result, &cp)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return result[i].ID > result[j].ID
	})
	return result, nil
}

func (f *fakeTasksRepo) Update(ctx context.Context, task *models.Task) error {
	if _, ok := f.byID[task.ID]; !ok {
		return common.ErrorNotFound
	}
	cp := *task
	f.byID[task.ID] = &cp
	return nil
}

func (f *fakeTasksRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return common.ErrorNotFound
	}
	delete(f.byID, id)
	return nil
}

// fakeManager vends the fakes regardless of the DBTX it is handed, so the
// same instances are seen inside and outside transactions.
type fakeManager struct {
	users *fakeUsersRepo
	tasks *fakeTasksRepo
}

func newFakeManager() *fakeManager {
	return &fakeManager{users: newFakeUsersRepo(), tasks: newFakeTasksRepo()}
}

func (m *fakeManager) RunMigrations(ctx context.Context, db *sql.DB) error { return nil }

func (m *fakeManager) Users(db dbx.DBTX) usersrepo.Repository { return m.users }

func (m *fakeManager) Tasks(db dbx.DBTX) tasksrepo.Repository { return m.tasks }
