package predicate

import (
	"fmt"
	"strings"
)

// SQLCondition is a WHERE fragment together with its bound values.
// Clause references its values positionally (?0, ?1, ...).
type SQLCondition struct {
	Clause string
	Params []any
}

// likeEscaper quotes the pattern characters of ILIKE with the default escape character.
var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// columns maps fields to SQL column names.
var columns = map[Field]string{
	FieldStartDate:   "event_start_date",
	FieldEventType:   "event_type",
	FieldLocation:    "location",
	FieldTitle:       "title",
	FieldDescription: "description",
}

// SQL renders every condition of p as one parameterized fragment. The fragments
// are meant to be combined with AND. An empty predicate renders no fragment.
func SQL(p Predicate) []SQLCondition {
	out := make([]SQLCondition, 0, len(p.conditions))
	for _, c := range p.conditions {
		if sc, ok := renderSQL(c); ok {
			out = append(out, sc)
		}
	}
	return out
}

func renderSQL(c Condition) (SQLCondition, bool) {
	cols := make([]string, 0, len(c.Fields))
	for _, f := range c.Fields {
		col, ok := columns[f]
		if !ok {
			return SQLCondition{}, false
		}
		cols = append(cols, col)
	}
	if len(cols) == 0 {
		return SQLCondition{}, false
	}

	switch c.Op {
	case OpEquals:
		return SQLCondition{Clause: cols[0] + " = ?0", Params: []any{c.Value}}, true
	case OpEqualsOrMissing:
		return SQLCondition{Clause: "COALESCE(NULLIF(" + cols[0] + ", ''), ?0) = ?0", Params: []any{c.Value}}, true
	case OpYear:
		return SQLCondition{Clause: "EXTRACT(YEAR FROM " + cols[0] + ") = ?0", Params: []any{c.Value}}, true
	case OpMonth:
		return SQLCondition{Clause: "EXTRACT(MONTH FROM " + cols[0] + ") = ?0", Params: []any{c.Value}}, true
	case OpContains:
		parts := make([]string, len(cols))
		for i, col := range cols {
			parts[i] = col + " ILIKE ?0"
		}
		return SQLCondition{
			Clause: "(" + strings.Join(parts, " OR ") + ")",
			Params: []any{"%" + likeEscaper.Replace(fmt.Sprint(c.Value)) + "%"},
		}, true
	default:
		return SQLCondition{}, false
	}
}
