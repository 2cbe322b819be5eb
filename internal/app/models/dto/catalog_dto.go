package dto

import "github.com/coursescope/coursescope/internal/app/models"

// SectionSearchRequest carries the /search filters. Code and title are
// matched as case-insensitive substrings; the rest are exact. At least one
// filter must be provided.
type SectionSearchRequest struct {
	Code        string `form:"code" json:"code"`
	Title       string `form:"title" json:"title"`
	CRN         string `form:"crn" json:"crn"`
	Schd        string `form:"schd" json:"schd"`
	CampusGroup string `form:"campus_group" json:"campusGroup"`
}

// SectionSearchResponse wraps search hits with their count.
type SectionSearchResponse struct {
	Count   int                       `json:"count" example:"12"`
	Results []models.SectionSearchRow `json:"results"`
}
