package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/SxxMWolf/ReMadeBE/internal/domain"
	"github.com/SxxMWolf/ReMadeBE/shared/models"
)

const (
	musicalFields = `id, title, summary, background, main_character_count`
	bandFields    = `id, title, summary, background, main_member_count, band_name, band_name_meaning, band_symbol, poster_color, genre`

	// Ограничение на выборки по подстроке: резолверу нужна только первая запись.
	containsLimit = 10

	findMusicalByTitleQuery      = `SELECT ` + musicalFields + ` FROM musical_db WHERE title = $1 ORDER BY id LIMIT 1`
	findMusicalByIDQuery         = `SELECT ` + musicalFields + ` FROM musical_db WHERE id = $1`
	findMusicalsContainingQuery  = `SELECT ` + musicalFields + ` FROM musical_db WHERE strpos(title, $1) > 0 ORDER BY id LIMIT $2`
	findMusicalsContainedInQuery = `SELECT ` + musicalFields + ` FROM musical_db
        WHERE title <> '' AND strpos($1, title) > 0
        ORDER BY char_length(title) DESC, id LIMIT $2`
	findRosterQuery = `SELECT name, age, gender, occupation, description
        FROM musical_characters WHERE musical_id = $1 ORDER BY id`
	findBandByNameQuery = `SELECT ` + bandFields + ` FROM band_db WHERE LOWER(band_name) = LOWER($1) ORDER BY id LIMIT 1`
)

// Строки таблиц: почти все колонки nullable.
type musicalRow struct {
	ID         int64   `db:"id"`
	Title      string  `db:"title"`
	Summary    *string `db:"summary"`
	Background *string `db:"background"`
	CastSize   *int32  `db:"main_character_count"`
}

func (r musicalRow) toDomain() domain.WorkRecord {
	rec := domain.WorkRecord{
		ID:         r.ID,
		Title:      r.Title,
		Summary:    deref(r.Summary),
		Background: deref(r.Background),
	}
	if r.CastSize != nil {
		rec.CastSize = int(*r.CastSize)
	}
	return rec
}

type characterRow struct {
	Name        *string `db:"name"`
	Age         *string `db:"age"`
	Gender      *string `db:"gender"`
	Occupation  *string `db:"occupation"`
	Description *string `db:"description"`
}

type bandRow struct {
	ID          int64   `db:"id"`
	Title       *string `db:"title"`
	Summary     *string `db:"summary"`
	Background  *string `db:"background"`
	MemberCount *int32  `db:"main_member_count"`
	BandName    string  `db:"band_name"`
	NameMeaning *string `db:"band_name_meaning"`
	Symbol      *string `db:"band_symbol"`
	PosterColor *string `db:"poster_color"`
	Genre       *string `db:"genre"`
}

func (r bandRow) toDomain() *domain.BandRecord {
	rec := &domain.BandRecord{
		ID:          r.ID,
		Title:       deref(r.Title),
		Summary:     deref(r.Summary),
		Background:  deref(r.Background),
		BandName:    r.BandName,
		NameMeaning: deref(r.NameMeaning),
		Symbol:      deref(r.Symbol),
		PosterColor: deref(r.PosterColor),
		Genre:       deref(r.Genre),
	}
	if r.MemberCount != nil {
		rec.MemberCount = int(*r.MemberCount)
	}
	return rec
}

var _ WorkRepository = (*pgWorkRepository)(nil)

type pgWorkRepository struct {
	db     DBTX
	logger *zap.Logger
}

// NewPgWorkRepository создает репозиторий справочника поверх пула или транзакции.
func NewPgWorkRepository(db DBTX, logger *zap.Logger) WorkRepository {
	return &pgWorkRepository{
		db:     db,
		logger: logger.Named("PgWorkRepo"),
	}
}

func (r *pgWorkRepository) FindMusicalByTitle(ctx context.Context, title string) (*domain.WorkRecord, error) {
	return r.getMusical(ctx, findMusicalByTitleQuery, title)
}

func (r *pgWorkRepository) FindMusicalsContaining(ctx context.Context, fragment string) ([]domain.WorkRecord, error) {
	return r.selectMusicals(ctx, findMusicalsContainingQuery, fragment)
}

func (r *pgWorkRepository) FindMusicalsContainedIn(ctx context.Context, text string) ([]domain.WorkRecord, error) {
	return r.selectMusicals(ctx, findMusicalsContainedInQuery, text)
}

func (r *pgWorkRepository) FindMusicalWithRoster(ctx context.Context, id int64) (*domain.WorkRecord, error) {
	rec, err := r.getMusical(ctx, findMusicalByIDQuery, id)
	if err != nil {
		return nil, err
	}

	var rows []characterRow
	if err := pgxscan.Select(ctx, r.db, &rows, findRosterQuery, id); err != nil {
		r.logger.Error("Error loading musical roster", zap.Int64("musical_id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to load roster for musical %d: %w", id, err)
	}
	rec.Characters = make([]domain.Character, 0, len(rows))
	for _, row := range rows {
		rec.Characters = append(rec.Characters, domain.Character{
			Name:        deref(row.Name),
			Age:         deref(row.Age),
			Gender:      deref(row.Gender),
			Occupation:  deref(row.Occupation),
			Description: deref(row.Description),
		})
	}
	return rec, nil
}

func (r *pgWorkRepository) FindBandByName(ctx context.Context, name string) (*domain.BandRecord, error) {
	var row bandRow
	if err := pgxscan.Get(ctx, r.db, &row, findBandByNameQuery, name); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		r.logger.Error("Error getting band by name", zap.String("band_name", name), zap.Error(err))
		return nil, fmt.Errorf("failed to get band by name %q: %w", name, err)
	}
	return row.toDomain(), nil
}

func (r *pgWorkRepository) getMusical(ctx context.Context, query string, arg any) (*domain.WorkRecord, error) {
	var row musicalRow
	if err := pgxscan.Get(ctx, r.db, &row, query, arg); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		r.logger.Error("Error getting musical", zap.Any("arg", arg), zap.Error(err))
		return nil, fmt.Errorf("failed to get musical: %w", err)
	}
	rec := row.toDomain()
	return &rec, nil
}

func (r *pgWorkRepository) selectMusicals(ctx context.Context, query, arg string) ([]domain.WorkRecord, error) {
	var rows []musicalRow
	if err := pgxscan.Select(ctx, r.db, &rows, query, arg, containsLimit); err != nil {
		r.logger.Error("Error selecting musicals", zap.String("arg", arg), zap.Error(err))
		return nil, fmt.Errorf("failed to select musicals: %w", err)
	}
	out := make([]domain.WorkRecord, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
