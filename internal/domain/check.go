package domain

// Candidate is one submission compared against the reference solution.
// UUID is opaque to the engine; duplicates are allowed.
type Candidate struct {
	UUID string `json:"uuid" yaml:"uuid" binding:"required"`
	Code string `json:"code" yaml:"code"`
}

// CheckInput describes a single plagiarism check request
type CheckInput struct {
	Lang       string      `json:"lang" yaml:"lang" binding:"required"`
	RefCode    string      `json:"ref_code" yaml:"ref_code" binding:"required"`
	Candidates []Candidate `json:"candidates" yaml:"candidates" binding:"required,min=1,dive"`
}

// CheckResult holds the most similar candidate. UUID is nil when no
// candidate shares anything with the reference.
type CheckResult struct {
	UUID    *string `json:"uuid" yaml:"uuid"`
	Percent float64 `json:"percent" yaml:"percent"`
}

// Winner returns the winning candidate id or an empty string.
func (r *CheckResult) Winner() string {
	if r == nil || r.UUID == nil {
		return ""
	}
	return *r.UUID
}
