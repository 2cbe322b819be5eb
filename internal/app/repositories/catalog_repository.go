package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/coursescope/coursescope/internal/app/models"
	"github.com/coursescope/coursescope/internal/db"
	"github.com/coursescope/coursescope/internal/pkg/apperrors"
	"github.com/coursescope/coursescope/internal/pkg/dberrors"
	"github.com/coursescope/coursescope/internal/pkg/logger"
)

// lastUpdateKey is the metadata row holding the catalog's last refresh time.
const lastUpdateKey = "last_update"

// sectionColumns is the section insert column list, in CopyFrom row order.
var sectionColumns = []string{
	"course_code", "section_key", "code", "title", "hide", "crn",
	"section_no", "total", "schd", "stat", "is_cancelled", "meets",
	"mpkey", "meeting_times", "instr", "start_date", "end_date",
	"srcdb", "campus_group",
}

// CatalogRepository owns the courses, sections, and metadata tables: the
// refresh bookkeeping, the atomic full replace, and the read queries.
type CatalogRepository struct {
	db *db.PostgresDB
	// Use squirrel instance with placeholder format
	sb squirrel.StatementBuilderType
}

// NewCatalogRepository creates a new CatalogRepository
func NewCatalogRepository(database *db.PostgresDB) *CatalogRepository {
	return &CatalogRepository{
		db: database,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// LastRefreshedAt returns the persisted UTC timestamp of the last completed
// refresh, or the zero time when the catalog has never been loaded. An
// unparseable value is treated as never loaded instead of an error, so a
// corrupted metadata row cannot wedge the refresh pipeline shut.
func (r *CatalogRepository) LastRefreshedAt(ctx context.Context) (time.Time, error) {
	query := `
		SELECT value
		FROM metadata
		WHERE key = $1
	`

	var value string
	err := r.db.Pool.QueryRow(ctx, query, lastUpdateKey).Scan(&value)
	if err != nil {
		if dberrors.IsNoRows(err) || dberrors.IsUndefinedTable(err) {
			return time.Time{}, nil
		}
		return time.Time{}, fmt.Errorf("error reading last refresh time: %w", err)
	}

	ts, err := time.Parse(time.RFC3339, value)
	if err != nil {
		logger.Warn().Str("value", value).Msg("Unparseable last_update value, treating catalog as never refreshed")
		return time.Time{}, nil
	}

	return ts, nil
}

// ReplaceCatalog swaps the entire catalog in one transaction: clear all
// sections, courses, and cached details, bulk-insert the new courses and
// sections, and record refreshedAt as the new last refresh time. On any
// failure the transaction rolls back and the previous snapshot stays fully
// intact; readers never observe an intermediate state. Returns how many
// courses and sections were inserted.
func (r *CatalogRepository) ReplaceCatalog(ctx context.Context, courses []models.Course, sections []models.Section, refreshedAt time.Time) (int64, int64, error) {
	var coursesInserted, sectionsInserted int64

	err := r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		// Relax commit durability for the bulk load. Rollback on failure
		// still restores full consistency.
		if _, err := tx.Exec(ctx, "SET LOCAL synchronous_commit = off"); err != nil {
			return fmt.Errorf("error relaxing commit durability: %w", err)
		}

		for _, stmt := range []string{
			"DELETE FROM sections",
			"DELETE FROM courses",
			"DELETE FROM course_details_cache",
		} {
			if _, err := tx.Exec(ctx, stmt); err != nil {
				return fmt.Errorf("error clearing catalog: %w", err)
			}
		}

		inserted, err := insertCourses(ctx, tx, courses)
		if err != nil {
			return err
		}
		coursesInserted = inserted

		copied, err := tx.CopyFrom(ctx, pgx.Identifier{"sections"}, sectionColumns,
			pgx.CopyFromSlice(len(sections), func(i int) ([]interface{}, error) {
				s := sections[i]
				return []interface{}{
					s.CourseCode, s.SectionKey, s.Code, s.Title, s.Hide, s.CRN,
					s.SectionNo, s.Total, s.Schd, s.Stat, s.IsCancelled, s.Meets,
					s.MpKey, s.MeetingTimes, s.Instr, s.StartDate, s.EndDate,
					s.Srcdb, s.CampusGroup,
				}, nil
			}))
		if err != nil {
			return fmt.Errorf("error bulk-inserting sections: %w", err)
		}
		sectionsInserted = copied

		query := `
			INSERT INTO metadata (key, value, updated_at)
			VALUES ($1, $2, now())
			ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()
		`
		if _, err := tx.Exec(ctx, query, lastUpdateKey, refreshedAt.UTC().Format(time.RFC3339)); err != nil {
			return fmt.Errorf("error writing last refresh time: %w", err)
		}

		return nil
	})
	if err != nil {
		logger.Error().Err(err).Msg("Catalog replace rolled back")
		return 0, 0, apperrors.NewTransactionError(fmt.Sprintf("catalog replace failed: %v", err))
	}

	return coursesInserted, sectionsInserted, nil
}

// insertCourses batch-inserts course tuples with insert-if-absent semantics:
// the first tuple for a code wins, later duplicates are ignored. Returns the
// number of rows actually inserted.
func insertCourses(ctx context.Context, tx pgx.Tx, courses []models.Course) (int64, error) {
	if len(courses) == 0 {
		return 0, nil
	}

	query := `
		INSERT INTO courses (code, subject, catalog_number, title)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (code) DO NOTHING
	`

	batch := &pgx.Batch{}
	for _, course := range courses {
		batch.Queue(query, course.Code, course.Subject, course.CatalogNumber, course.Title)
	}

	results := tx.SendBatch(ctx, batch)
	defer results.Close()

	var inserted int64
	for range courses {
		tag, err := results.Exec()
		if err != nil {
			return 0, fmt.Errorf("error inserting course: %w", err)
		}
		inserted += tag.RowsAffected()
	}

	if err := results.Close(); err != nil {
		return 0, fmt.Errorf("error closing course batch: %w", err)
	}

	return inserted, nil
}

// searchQuery builds the section search statement for the given filter.
// Code and title match partially and case-insensitively, the remaining
// filters match exactly. Results are ordered by course code and section
// number so the output is stable across refreshes.
func (r *CatalogRepository) searchQuery(filter models.SectionSearchFilter, limit int) (string, []interface{}, error) {
	builder := r.sb.Select(
		"s.id", "s.course_code", "s.section_key", "s.code", "s.title",
		"s.hide", "s.crn", "s.section_no", "s.total", "s.schd", "s.stat",
		"s.is_cancelled", "s.meets", "s.mpkey", "s.meeting_times", "s.instr",
		"s.start_date", "s.end_date", "s.srcdb", "s.campus_group",
		"c.subject", "c.catalog_number", "c.title AS course_title",
	).
		From("sections s").
		LeftJoin("courses c ON s.course_code = c.code").
		OrderBy("s.course_code", "s.section_no")

	if filter.Code != "" {
		builder = builder.Where(squirrel.ILike{"s.code": "%" + filter.Code + "%"})
	}
	if filter.Title != "" {
		builder = builder.Where(squirrel.Or{
			squirrel.ILike{"s.title": "%" + filter.Title + "%"},
			squirrel.ILike{"c.title": "%" + filter.Title + "%"},
		})
	}
	if filter.CRN != "" {
		builder = builder.Where(squirrel.Eq{"s.crn": filter.CRN})
	}
	if filter.Schd != "" {
		builder = builder.Where(squirrel.Eq{"s.schd": filter.Schd})
	}
	if filter.CampusGroup != "" {
		builder = builder.Where(squirrel.Eq{"s.campus_group": filter.CampusGroup})
	}
	if limit > 0 {
		builder = builder.Limit(uint64(limit))
	}

	return builder.ToSql()
}

// SearchSections returns sections joined with their course, filtered by the
// given criteria.
func (r *CatalogRepository) SearchSections(ctx context.Context, filter models.SectionSearchFilter, limit int) ([]models.SectionSearchRow, error) {
	sql, args, err := r.searchQuery(filter, limit)
	if err != nil {
		logger.Error().Err(err).Msg("Error building section search SQL")
		return nil, fmt.Errorf("failed to build section search query: %w", err)
	}

	rows, err := r.db.Pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error searching sections: %w", err)
	}

	results, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.SectionSearchRow])
	if err != nil {
		return nil, fmt.Errorf("error scanning section rows: %w", err)
	}

	return results, nil
}

// Status reports the catalog's row counts, the per-campus-group section
// tallies, and the last refresh time.
func (r *CatalogRepository) Status(ctx context.Context) (*models.CatalogStatus, error) {
	status := &models.CatalogStatus{}

	if err := r.db.Pool.QueryRow(ctx, "SELECT COUNT(*) FROM courses").Scan(&status.CourseCount); err != nil {
		return nil, fmt.Errorf("error counting courses: %w", err)
	}
	if err := r.db.Pool.QueryRow(ctx, "SELECT COUNT(*) FROM sections").Scan(&status.SectionCount); err != nil {
		return nil, fmt.Errorf("error counting sections: %w", err)
	}

	query := `
		SELECT campus_group, COUNT(*) AS section_count
		FROM sections
		GROUP BY campus_group
		ORDER BY campus_group
	`
	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error counting campus groups: %w", err)
	}
	groups, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.CampusGroupCount])
	if err != nil {
		return nil, fmt.Errorf("error scanning campus group rows: %w", err)
	}
	status.CampusGroups = groups

	lastUpdate, err := r.LastRefreshedAt(ctx)
	if err != nil {
		return nil, err
	}
	if !lastUpdate.IsZero() {
		status.LastUpdate = &lastUpdate
	}

	return status, nil
}
