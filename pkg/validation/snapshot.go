package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/devcompany145/Business-developers-ai/pkg/district"
)

var validate = validator.New()

// MaxVisitorsHint is the visitor count above which a record is flagged as
// suspicious. It does not invalidate the snapshot.
const MaxVisitorsHint = 10000

// ValidateBusiness runs struct-tag validation on a single record.
func ValidateBusiness(b *district.Business) error {
	if b == nil {
		return fmt.Errorf("%w: business cannot be nil", ErrInvalid)
	}
	if err := validate.Struct(b); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// ValidateSnapshot checks a district snapshot. Malformed records are errors;
// spatial problems such as out-of-range or shared cells are warnings, since
// the map renders them anyway.
func ValidateSnapshot(s *district.Snapshot) *Report {
	r := NewReport()
	if s == nil {
		r.AddError(Result{Level: LevelSchema, Message: "district snapshot is nil"})
		return r
	}

	validateGrid(s, r)
	validateRecords(s, r)
	validatePlacement(s, r)

	if len(district.Occupied(s.Businesses)) == 0 && len(s.Businesses) > 0 {
		r.AddInfo(Result{
			Level:   LevelAnalytical,
			Message: "no occupied businesses: heatmap, traffic and networking layers will be empty",
		})
	}
	return r
}

func validateGrid(s *district.Snapshot, r *Report) {
	if err := validate.Struct(s.Grid); err != nil {
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     "grid must have at least one column and one row",
			Path:        "grid",
			ActualValue: fmt.Sprintf("%dx%d", s.Grid.Cols, s.Grid.Rows),
			Expected:    ">= 1x1",
		})
		return
	}
	if s.Grid.Cols < district.DefaultGrid.Cols || s.Grid.Rows < district.DefaultGrid.Rows {
		r.AddWarning(Result{
			Level:       LevelSchema,
			Message:     "grid is smaller than 3x3",
			Path:        "grid",
			ActualValue: fmt.Sprintf("%dx%d", s.Grid.Cols, s.Grid.Rows),
			Expected:    ">= 3x3",
		})
	}
}

func validateRecords(s *district.Snapshot, r *Report) {
	seen := make(map[string]int, len(s.Businesses))
	for i := range s.Businesses {
		b := &s.Businesses[i]
		path := fmt.Sprintf("businesses[%d]", i)

		if err := ValidateBusiness(b); err != nil {
			r.AddError(Result{
				Level:      LevelSchema,
				Message:    err.Error(),
				Path:       path,
				BusinessID: b.ID,
			})
		}
		if b.ID != "" {
			if prev, ok := seen[b.ID]; ok {
				r.AddError(Result{
					Level:        LevelSchema,
					Message:      fmt.Sprintf("duplicate business id %q at indices %d and %d", b.ID, prev, i),
					Path:         path + ".id",
					BusinessID:   b.ID,
					ConflictWith: fmt.Sprintf("businesses[%d]", prev),
				})
			}
			seen[b.ID] = i
		}
		if b.ActiveVisitors > 0 && !b.IsOccupied {
			r.AddInfo(Result{
				Level:      LevelAnalytical,
				Message:    fmt.Sprintf("vacant business %q reports visitors; they are ignored", b.ID),
				Path:       path + ".active_visitors",
				BusinessID: b.ID,
			})
		}
		if b.ActiveVisitors > MaxVisitorsHint {
			r.AddWarning(Result{
				Level:       LevelAnalytical,
				Message:     fmt.Sprintf("business %q reports an unusually high visitor count", b.ID),
				Path:        path + ".active_visitors",
				BusinessID:  b.ID,
				ActualValue: b.ActiveVisitors,
				Expected:    fmt.Sprintf("<= %d", MaxVisitorsHint),
			})
		}
	}
}

func validatePlacement(s *district.Snapshot, r *Report) {
	occupiedAt := make(map[district.GridPosition]string)
	for i, b := range s.Businesses {
		pos := b.GridPosition
		path := fmt.Sprintf("businesses[%d].grid_position", i)

		if pos.X < 1 || pos.X > s.Grid.Cols || pos.Y < 1 || pos.Y > s.Grid.Rows {
			r.AddWarning(Result{
				Level:       LevelSpatial,
				Message:     fmt.Sprintf("business %q sits outside the %dx%d grid and will render off-canvas", b.ID, s.Grid.Cols, s.Grid.Rows),
				Path:        path,
				BusinessID:  b.ID,
				ActualValue: fmt.Sprintf("(%d,%d)", pos.X, pos.Y),
				Expected:    fmt.Sprintf("1..%d, 1..%d", s.Grid.Cols, s.Grid.Rows),
			})
		}
		if !b.IsOccupied {
			continue
		}
		if other, ok := occupiedAt[pos]; ok {
			r.AddWarning(Result{
				Level:        LevelSpatial,
				Message:      fmt.Sprintf("businesses %q and %q share cell (%d,%d)", other, b.ID, pos.X, pos.Y),
				Path:         path,
				BusinessID:   b.ID,
				ConflictWith: other,
				Suggestions:  []string{"Move one of the businesses to a free cell"},
			})
			continue
		}
		occupiedAt[pos] = b.ID
	}
}

// formatValidationError flattens validator errors into one readable error.
func formatValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", fe.Field()))
		case "min":
			msgs = append(msgs, fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param()))
		case "max":
			msgs = append(msgs, fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag()))
		}
	}
	return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(msgs, "; "))
}
