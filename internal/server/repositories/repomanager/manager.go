package repomanager

import (
	"context"
	"database/sql"

	"github.com/sooratali/TaskManager/internal/dbx"
	"github.com/sooratali/TaskManager/internal/server/repositories/tasks"
	"github.com/sooratali/TaskManager/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a DBTX, so the same
// implementations work against a plain connection or inside a transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Tasks(db dbx.DBTX) tasks.Repository
}
