// Package repository - доступ к справочнику произведений (PostgreSQL) и хранилища на Redis.
package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/SxxMWolf/ReMadeBE/internal/domain"
)

// DBTX - общий интерфейс для *pgxpool.Pool и pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// WorkRepository - запросы к справочнику только на чтение.
// Find* для одной записи возвращают models.ErrNotFound, если записи нет.
type WorkRepository interface {
	// FindMusicalByTitle - точное совпадение названия.
	FindMusicalByTitle(ctx context.Context, title string) (*domain.WorkRecord, error)
	// FindMusicalsContaining - записи, в названии которых есть fragment, в порядке id.
	FindMusicalsContaining(ctx context.Context, fragment string) ([]domain.WorkRecord, error)
	// FindMusicalsContainedIn - записи, чье название входит в text; сначала самые длинные.
	FindMusicalsContainedIn(ctx context.Context, text string) ([]domain.WorkRecord, error)
	// FindMusicalWithRoster - запись вместе с составом персонажей.
	FindMusicalWithRoster(ctx context.Context, id int64) (*domain.WorkRecord, error)
	// FindBandByName - совпадение имени группы без учета регистра.
	FindBandByName(ctx context.Context, name string) (*domain.BandRecord, error)
}
