package dto

// CourseDetailsRequest asks for the enrichment record of one section.
// Group, key and srcdb form the cache key; matched is passed through to
// the upstream call untouched.
type CourseDetailsRequest struct {
	Group   string `json:"group" binding:"required" example:"code:BIOL-UA 123"`
	Key     string `json:"key" binding:"required" example:"crn:8807"`
	Srcdb   string `json:"srcdb" binding:"omitempty,numeric" example:"1264"`
	Matched string `json:"matched" example:"crn:8807,8808"`
}
