package predicate

import (
	"testing"

	"github.com/okruhlystol/catalog/internal/core/model"
	"github.com/stretchr/testify/require"
)

func TestBuild(t *testing.T) {
	tests := []struct {
		name     string
		filter   model.FilterRequest
		expected []Condition
	}{
		{
			name:   "no filters match everything",
			filter: model.FilterRequest{},
		},
		{
			name:   "All is the same as absent",
			filter: model.FilterRequest{Year: "All", Month: "All", EventType: "All", Location: "All"},
		},
		{
			name:     "year",
			filter:   model.FilterRequest{Year: "2024"},
			expected: []Condition{{Op: OpYear, Fields: []Field{FieldStartDate}, Value: 2024}},
		},
		{
			name:   "non numeric year is ignored",
			filter: model.FilterRequest{Year: "twenty"},
		},
		{
			name:     "month name with year All",
			filter:   model.FilterRequest{Year: "All", Month: "Marec"},
			expected: []Condition{{Op: OpMonth, Fields: []Field{FieldStartDate}, Value: 3}},
		},
		{
			name:     "month name is case insensitive",
			filter:   model.FilterRequest{Month: "OKTÓBER"},
			expected: []Condition{{Op: OpMonth, Fields: []Field{FieldStartDate}, Value: 10}},
		},
		{
			name:   "unknown month is ignored",
			filter: model.FilterRequest{Month: "Smarch"},
		},
		{
			name:     "uncategorized also matches missing types",
			filter:   model.FilterRequest{EventType: model.Uncategorized},
			expected: []Condition{{Op: OpEqualsOrMissing, Fields: []Field{FieldEventType}, Value: "Uncategorized"}},
		},
		{
			name:   "search spans title description and location",
			filter: model.FilterRequest{Search: "jazz"},
			expected: []Condition{{
				Op:     OpContains,
				Fields: []Field{FieldTitle, FieldDescription, FieldLocation},
				Value:  "jazz",
			}},
		},
		{
			name: "every filter in a fixed order",
			filter: model.FilterRequest{
				Year:      "2023",
				Month:     "máj",
				EventType: "Koncert",
				Location:  "Prešov",
				Search:    "rock",
			},
			expected: []Condition{
				{Op: OpYear, Fields: []Field{FieldStartDate}, Value: 2023},
				{Op: OpMonth, Fields: []Field{FieldStartDate}, Value: 5},
				{Op: OpEquals, Fields: []Field{FieldEventType}, Value: "Koncert"},
				{Op: OpEquals, Fields: []Field{FieldLocation}, Value: "Prešov"},
				{Op: OpContains, Fields: []Field{FieldTitle, FieldDescription, FieldLocation}, Value: "rock"},
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			p := Build(test.filter)
			if len(test.expected) == 0 {
				require.True(t, p.Empty())
				require.Empty(t, p.Conditions())
				return
			}
			require.False(t, p.Empty())
			require.Equal(t, test.expected, p.Conditions())
		})
	}
}

func TestSQL(t *testing.T) {
	p := Build(model.FilterRequest{
		Year:      "2024",
		Month:     "Marec",
		EventType: "Koncert",
		Location:  "Košice",
		Search:    "open air",
	})

	got := SQL(p)
	require.Equal(t, []SQLCondition{
		{Clause: "EXTRACT(YEAR FROM event_start_date) = ?0", Params: []any{2024}},
		{Clause: "EXTRACT(MONTH FROM event_start_date) = ?0", Params: []any{3}},
		{Clause: "event_type = ?0", Params: []any{"Koncert"}},
		{Clause: "location = ?0", Params: []any{"Košice"}},
		{Clause: "(title ILIKE ?0 OR description ILIKE ?0 OR location ILIKE ?0)", Params: []any{"%open air%"}},
	}, got)
}

func TestSQL_Uncategorized(t *testing.T) {
	got := SQL(Build(model.FilterRequest{EventType: model.Uncategorized}))
	require.Equal(t, []SQLCondition{
		{Clause: "COALESCE(NULLIF(event_type, ''), ?0) = ?0", Params: []any{"Uncategorized"}},
	}, got)
}

func TestSQL_SearchPatternIsLiteral(t *testing.T) {
	tests := []struct {
		search   string
		expected string
	}{
		{search: "100%", expected: `%100\%%`},
		{search: "a_b", expected: `%a\_b%`},
		{search: `C:\dir`, expected: `%C:\\dir%`},
		{search: "jazz", expected: "%jazz%"},
	}
	for _, test := range tests {
		t.Run(test.search, func(t *testing.T) {
			got := SQL(Build(model.FilterRequest{Search: test.search}))
			require.Len(t, got, 1)
			require.Equal(t, []any{test.expected}, got[0].Params)
		})
	}
}

func TestSQL_EmptyPredicate(t *testing.T) {
	require.Empty(t, SQL(Build(model.FilterRequest{})))
}

func TestSQL_ValuesNeverReachClauseText(t *testing.T) {
	hostile := "x'); DROP TABLE events; --"
	p := Build(model.FilterRequest{
		Year:      hostile,
		Month:     hostile,
		EventType: hostile,
		Location:  hostile,
		Search:    hostile,
	})

	conds := SQL(p)
	// the non numeric year and unknown month are dropped
	require.Len(t, conds, 3)
	for _, c := range conds {
		require.NotContains(t, c.Clause, "DROP")
		require.NotContains(t, c.Clause, "'")
		require.Len(t, c.Params, 1)
	}
	require.Equal(t, hostile, conds[0].Params[0])
	require.Equal(t, hostile, conds[1].Params[0])
	require.Equal(t, "%"+hostile+"%", conds[2].Params[0])
}
