package dto

// RefreshRequest triggers a catalog refresh cycle. Every field is optional;
// unset fields fall back to the configured defaults.
type RefreshRequest struct {
	Srcdb  string   `json:"srcdb" binding:"omitempty,numeric" example:"1264"`
	Career string   `json:"career" binding:"omitempty,oneof=UGRD GRAD" example:"UGRD"`
	Camps  []string `json:"camps" binding:"omitempty,min=1,dive,min=1"`
	// Force bypasses the 24-hour staleness gate.
	Force bool `json:"force"`
}
