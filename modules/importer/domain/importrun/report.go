package importrun

import "time"

// ReconciliationFailure marks a row that validated cleanly but could not be
// applied to the registry. Distinct from validation errors: the data was
// fine, the registry write failed, so the row can be retried as-is.
type ReconciliationFailure struct {
	Row     int
	Message string
}

// Report is the outcome of one import run.
type Report struct {
	Filename  string
	StartedAt time.Time

	TotalRows   int
	ValidRows   int
	InvalidRows int

	Created  int
	Updated  int
	Archived int

	Errors   []ValidationError
	Failures []ReconciliationFailure
}

// Failed reports whether any row was rejected at either stage.
func (r *Report) Failed() bool {
	return len(r.Errors) > 0 || len(r.Failures) > 0
}
