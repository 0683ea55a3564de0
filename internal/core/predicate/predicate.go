// Package predicate turns a FilterRequest into a store-independent list of
// conditions, and renders that list as parameterized SQL fragments.
package predicate

import (
	"strconv"
	"strings"

	"github.com/okruhlystol/catalog/internal/core/calendar"
	"github.com/okruhlystol/catalog/internal/core/model"
)

// Op is the kind of a Condition.
type Op int

const (
	// OpEquals matches Fields[0] = Value.
	OpEquals Op = iota + 1
	// OpYear matches the year component of the date Fields[0] against Value.
	OpYear
	// OpMonth matches the 1-based month component of the date Fields[0] against Value.
	OpMonth
	// OpContains matches Value as a case-insensitive substring of any of Fields.
	OpContains
	// OpEqualsOrMissing matches Fields[0] = Value, or Fields[0] null or empty.
	OpEqualsOrMissing
)

// Field is an event attribute a Condition may reference. Fields are a closed set;
// adapters map them to columns or document keys.
type Field string

const (
	FieldStartDate   Field = "event_start_date"
	FieldEventType   Field = "event_type"
	FieldLocation    Field = "location"
	FieldTitle       Field = "title"
	FieldDescription Field = "description"
)

// Condition is one boolean constraint over events. Value is always bound as a
// parameter, never written into query text.
type Condition struct {
	Op     Op
	Fields []Field
	Value  any
}

// Predicate is the conjunction of its conditions. The zero value matches every event.
type Predicate struct {
	conditions []Condition
}

// Conditions returns the conditions in the order they were built.
func (p Predicate) Conditions() []Condition {
	out := make([]Condition, len(p.conditions))
	copy(out, p.conditions)
	return out
}

// Empty reports whether the predicate matches every event.
func (p Predicate) Empty() bool {
	return len(p.conditions) == 0
}

// Build translates a filter request into a predicate. It never fails: absent,
// "All", unknown month names and non-numeric years produce no condition.
func Build(f model.FilterRequest) Predicate {
	var conds []Condition

	if active(f.Year) {
		if year, err := strconv.Atoi(strings.TrimSpace(f.Year)); err == nil {
			conds = append(conds, Condition{Op: OpYear, Fields: []Field{FieldStartDate}, Value: year})
		}
	}

	if active(f.Month) {
		if month, ok := calendar.MonthNumber(f.Month); ok {
			conds = append(conds, Condition{Op: OpMonth, Fields: []Field{FieldStartDate}, Value: month})
		}
	}

	if active(f.EventType) {
		op := OpEquals
		if f.EventType == model.Uncategorized {
			// the category facet folds missing types into this label
			op = OpEqualsOrMissing
		}
		conds = append(conds, Condition{Op: op, Fields: []Field{FieldEventType}, Value: f.EventType})
	}

	if active(f.Location) {
		conds = append(conds, Condition{Op: OpEquals, Fields: []Field{FieldLocation}, Value: f.Location})
	}

	if f.Search != "" {
		conds = append(conds, Condition{
			Op:     OpContains,
			Fields: []Field{FieldTitle, FieldDescription, FieldLocation},
			Value:  f.Search,
		})
	}

	return Predicate{conditions: conds}
}

func active(v string) bool {
	return v != "" && v != model.AllValue
}
