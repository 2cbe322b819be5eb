package models

// Course represents a deduplicated course derived from upstream section
// records. Code is globally unique; the first record seen for a code wins.
type Course struct {
	ID            int64   `json:"id" db:"id"`
	Code          string  `json:"code" db:"code"`
	Subject       *string `json:"subject,omitempty" db:"subject"`              // Nullable
	CatalogNumber *string `json:"catalogNumber,omitempty" db:"catalog_number"` // Nullable
	Title         string  `json:"title" db:"title"`
}
