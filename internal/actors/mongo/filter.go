package mongo

import (
	"fmt"
	"regexp"

	"github.com/okruhlystol/catalog/internal/core/predicate"
	"go.mongodb.org/mongo-driver/bson"
)

// keys maps predicate fields to document keys.
var keys = map[predicate.Field]string{
	predicate.FieldStartDate:   "event_start_date",
	predicate.FieldEventType:   "event_type",
	predicate.FieldLocation:    "location",
	predicate.FieldTitle:       "title",
	predicate.FieldDescription: "description",
}

// filter renders the predicate as a query document. Values are embedded as BSON
// values, search terms are quoted before becoming a regular expression.
func filter(p predicate.Predicate) bson.M {
	clauses := bson.A{}
	for _, c := range p.Conditions() {
		if clause, ok := renderClause(c); ok {
			clauses = append(clauses, clause)
		}
	}
	if len(clauses) == 0 {
		return bson.M{}
	}
	return bson.M{"$and": clauses}
}

func renderClause(c predicate.Condition) (bson.M, bool) {
	fields := make([]string, 0, len(c.Fields))
	for _, f := range c.Fields {
		key, ok := keys[f]
		if !ok {
			return nil, false
		}
		fields = append(fields, key)
	}
	if len(fields) == 0 {
		return nil, false
	}

	switch c.Op {
	case predicate.OpEquals:
		return bson.M{fields[0]: c.Value}, true
	case predicate.OpEqualsOrMissing:
		// nil matches both null and absent keys
		return bson.M{"$or": bson.A{
			bson.M{fields[0]: nil},
			bson.M{fields[0]: ""},
			bson.M{fields[0]: c.Value},
		}}, true
	case predicate.OpYear:
		return bson.M{"$expr": bson.M{"$eq": bson.A{bson.M{"$year": "$" + fields[0]}, c.Value}}}, true
	case predicate.OpMonth:
		return bson.M{"$expr": bson.M{"$eq": bson.A{bson.M{"$month": "$" + fields[0]}, c.Value}}}, true
	case predicate.OpContains:
		pattern := regexp.QuoteMeta(fmt.Sprint(c.Value))
		or := make(bson.A, len(fields))
		for i, f := range fields {
			or[i] = bson.M{f: bson.M{"$regex": pattern, "$options": "i"}}
		}
		return bson.M{"$or": or}, true
	default:
		return nil, false
	}
}
