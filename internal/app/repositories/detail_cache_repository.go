package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/coursescope/coursescope/internal/app/models"
	"github.com/coursescope/coursescope/internal/db"
	"github.com/coursescope/coursescope/internal/pkg/dberrors"
)

// DetailCacheRepository owns the course_details_cache table. Entries never
// expire on their own; they are only removed wholesale when the catalog is
// replaced.
type DetailCacheRepository struct {
	db *db.PostgresDB
}

// NewDetailCacheRepository creates a new DetailCacheRepository
func NewDetailCacheRepository(database *db.PostgresDB) *DetailCacheRepository {
	return &DetailCacheRepository{db: database}
}

// Find returns the cached detail record for the (group, key, srcdb) triple,
// or nil when the triple has not been cached yet. A miss is not an error.
func (r *DetailCacheRepository) Find(ctx context.Context, group, key, srcdb string) (*models.SectionDetail, error) {
	query := `
		SELECT group_key, crn_key, srcdb, description, class_notes, hours,
		       status, component, instructional_method, campus_location,
		       registration_restrictions, meeting_html, meeting_pattern,
		       start_date, end_date, dates_html, all_sections, details_json,
		       cached_at
		FROM course_details_cache
		WHERE group_key = $1 AND crn_key = $2 AND srcdb = $3
	`

	rows, err := r.db.Pool.Query(ctx, query, group, key, srcdb)
	if err != nil {
		return nil, fmt.Errorf("error querying detail cache: %w", err)
	}

	detail, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[models.SectionDetail])
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("error scanning detail cache row: %w", err)
	}

	return detail, nil
}

// Save upserts a detail record. An existing entry for the same triple is
// fully overwritten, including its cached_at time.
func (r *DetailCacheRepository) Save(ctx context.Context, detail *models.SectionDetail) error {
	query := `
		INSERT INTO course_details_cache (
			group_key, crn_key, srcdb, description, class_notes, hours,
			status, component, instructional_method, campus_location,
			registration_restrictions, meeting_html, meeting_pattern,
			start_date, end_date, dates_html, all_sections, details_json,
			cached_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
		ON CONFLICT (group_key, crn_key, srcdb) DO UPDATE SET
			description = EXCLUDED.description,
			class_notes = EXCLUDED.class_notes,
			hours = EXCLUDED.hours,
			status = EXCLUDED.status,
			component = EXCLUDED.component,
			instructional_method = EXCLUDED.instructional_method,
			campus_location = EXCLUDED.campus_location,
			registration_restrictions = EXCLUDED.registration_restrictions,
			meeting_html = EXCLUDED.meeting_html,
			meeting_pattern = EXCLUDED.meeting_pattern,
			start_date = EXCLUDED.start_date,
			end_date = EXCLUDED.end_date,
			dates_html = EXCLUDED.dates_html,
			all_sections = EXCLUDED.all_sections,
			details_json = EXCLUDED.details_json,
			cached_at = EXCLUDED.cached_at
	`

	_, err := r.db.Pool.Exec(ctx, query,
		detail.GroupKey, detail.CRNKey, detail.Srcdb, detail.Description,
		detail.ClassNotes, detail.Hours, detail.Status, detail.Component,
		detail.InstructionalMethod, detail.CampusLocation,
		detail.RegistrationRestrictions, detail.MeetingHTML,
		detail.MeetingPattern, detail.StartDate, detail.EndDate,
		detail.DatesHTML, detail.AllSections, detail.DetailsJSON,
		detail.CachedAt,
	)
	if err != nil {
		return fmt.Errorf("error saving detail cache entry: %w", err)
	}

	return nil
}
