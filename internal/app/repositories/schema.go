package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/coursescope/coursescope/internal/pkg/logger"
)

// schemaStatements creates every catalog table if it does not exist yet.
// The sections.course_code link to courses.code is deliberately not a
// foreign key: it would force courses to outlive sections row-by-row during
// a replace, and the upstream feed does not guarantee referential cleanness.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS courses (
		id             BIGSERIAL PRIMARY KEY,
		code           TEXT NOT NULL UNIQUE,
		subject        TEXT,
		catalog_number TEXT,
		title          TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS sections (
		id            BIGSERIAL PRIMARY KEY,
		course_code   TEXT NOT NULL,
		section_key   TEXT NOT NULL DEFAULT '',
		code          TEXT NOT NULL DEFAULT '',
		title         TEXT NOT NULL DEFAULT '',
		hide          TEXT NOT NULL DEFAULT '',
		crn           TEXT NOT NULL DEFAULT '',
		section_no    TEXT NOT NULL DEFAULT '',
		total         INTEGER,
		schd          TEXT NOT NULL DEFAULT '',
		stat          TEXT NOT NULL DEFAULT '',
		is_cancelled  TEXT NOT NULL DEFAULT '',
		meets         TEXT NOT NULL DEFAULT '',
		mpkey         TEXT NOT NULL DEFAULT '',
		meeting_times TEXT NOT NULL DEFAULT '',
		instr         TEXT NOT NULL DEFAULT '',
		start_date    TEXT NOT NULL DEFAULT '',
		end_date      TEXT NOT NULL DEFAULT '',
		srcdb         TEXT NOT NULL DEFAULT '',
		campus_group  TEXT NOT NULL DEFAULT ''
	)`,

	`CREATE INDEX IF NOT EXISTS idx_sections_course_code ON sections (course_code)`,
	`CREATE INDEX IF NOT EXISTS idx_sections_campus_group ON sections (campus_group)`,
	`CREATE INDEX IF NOT EXISTS idx_sections_crn ON sections (crn)`,

	`CREATE TABLE IF NOT EXISTS course_details_cache (
		id                        BIGSERIAL PRIMARY KEY,
		group_key                 TEXT NOT NULL,
		crn_key                   TEXT NOT NULL,
		srcdb                     TEXT NOT NULL,
		description               TEXT NOT NULL DEFAULT '',
		class_notes               TEXT NOT NULL DEFAULT '',
		hours                     TEXT NOT NULL DEFAULT '',
		status                    TEXT NOT NULL DEFAULT '',
		component                 TEXT NOT NULL DEFAULT '',
		instructional_method      TEXT NOT NULL DEFAULT '',
		campus_location           TEXT NOT NULL DEFAULT '',
		registration_restrictions TEXT NOT NULL DEFAULT '',
		meeting_html              TEXT NOT NULL DEFAULT '',
		meeting_pattern           TEXT NOT NULL DEFAULT '',
		start_date                TEXT NOT NULL DEFAULT '',
		end_date                  TEXT NOT NULL DEFAULT '',
		dates_html                TEXT NOT NULL DEFAULT '',
		all_sections              JSONB,
		details_json              JSONB NOT NULL,
		cached_at                 TIMESTAMPTZ NOT NULL DEFAULT now(),
		UNIQUE (group_key, crn_key, srcdb)
	)`,

	`CREATE TABLE IF NOT EXISTS metadata (
		key        TEXT PRIMARY KEY,
		value      TEXT NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
}

// EnsureSchema applies the catalog schema statements in order. Every
// statement is idempotent, so it is safe to run on every startup.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schemaStatements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("error applying schema statement: %w", err)
		}
	}

	logger.Info().Int("statements", len(schemaStatements)).Msg("Catalog schema ensured")
	return nil
}
