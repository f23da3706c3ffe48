package validation

import (
	"errors"
	"fmt"
	"strings"
)

// Level indicates which validation stage produced the result.
type Level string

const (
	LevelSchema     Level = "schema"
	LevelSpatial    Level = "spatial"
	LevelAnalytical Level = "analytical"
	LevelScene      Level = "scene"
)

// Severity indicates how critical a validation result is.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Result is a single validation finding.
type Result struct {
	Level        Level    `json:"level"`
	Severity     Severity `json:"severity"`
	Message      string   `json:"message"`
	Path         string   `json:"path,omitempty"`
	BusinessID   string   `json:"business_id,omitempty"`
	ActualValue  any      `json:"actual_value,omitempty"`
	Expected     string   `json:"expected,omitempty"`
	ConflictWith string   `json:"conflict_with,omitempty"`
	Suggestions  []string `json:"suggestions,omitempty"`
}

// Report is the complete validation output.
type Report struct {
	Valid    bool     `json:"valid"`
	Errors   []Result `json:"errors"`
	Warnings []Result `json:"warnings"`
	Info     []Result `json:"info"`
	Summary  string   `json:"summary"`
}

// NewReport creates an empty valid report.
func NewReport() *Report {
	r := &Report{
		Valid:    true,
		Errors:   []Result{},
		Warnings: []Result{},
		Info:     []Result{},
	}
	r.updateSummary()
	return r
}

// AddError adds an error result and marks the report invalid.
func (r *Report) AddError(result Result) { r.add(SeverityError, result) }

// AddWarning adds a warning result.
func (r *Report) AddWarning(result Result) { r.add(SeverityWarning, result) }

// AddInfo adds an informational result.
func (r *Report) AddInfo(result Result) { r.add(SeverityInfo, result) }

func (r *Report) add(sev Severity, result Result) {
	result.Severity = sev
	switch sev {
	case SeverityError:
		r.Errors = append(r.Errors, result)
		r.Valid = false
	case SeverityWarning:
		r.Warnings = append(r.Warnings, result)
	default:
		r.Info = append(r.Info, result)
	}
	r.updateSummary()
}

// findingKey identifies a finding regardless of which pass produced it.
type findingKey struct {
	severity Severity
	level    Level
	path     string
	business string
	message  string
}

func keyOf(res Result) findingKey {
	return findingKey{res.Severity, res.Level, res.Path, res.BusinessID, res.Message}
}

// Merge folds other into r. A finding already present in r is not repeated,
// so reports from the same check run over several map modes stay readable.
func (r *Report) Merge(other *Report) {
	if other == nil {
		return
	}
	seen := make(map[findingKey]bool, len(r.Errors)+len(r.Warnings)+len(r.Info))
	for _, list := range [][]Result{r.Errors, r.Warnings, r.Info} {
		for _, res := range list {
			seen[keyOf(res)] = true
		}
	}
	for _, list := range [][]Result{other.Errors, other.Warnings, other.Info} {
		for _, res := range list {
			if k := keyOf(res); !seen[k] {
				seen[k] = true
				r.add(res.Severity, res)
			}
		}
	}
	if !other.Valid {
		r.Valid = false
	}
	r.updateSummary()
}

// ForBusiness returns every finding that names the business id, errors first.
func (r *Report) ForBusiness(id string) []Result {
	var out []Result
	for _, list := range [][]Result{r.Errors, r.Warnings, r.Info} {
		for _, res := range list {
			if res.BusinessID == id {
				out = append(out, res)
			}
		}
	}
	return out
}

// ErrInvalid wraps the messages of an invalid report.
var ErrInvalid = errors.New("validation failed")

// Err returns nil for a valid report, otherwise an error listing every error message.
func (r *Report) Err() error {
	if r.Valid {
		return nil
	}
	msgs := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		msgs = append(msgs, e.Message)
	}
	return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(msgs, "; "))
}

func (r *Report) updateSummary() {
	r.Summary = fmt.Sprintf("%d errors, %d warnings, %d info",
		len(r.Errors), len(r.Warnings), len(r.Info))
}
