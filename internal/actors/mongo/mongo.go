package mongo

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/okruhlystol/catalog/internal/core/model"
	"github.com/okruhlystol/catalog/internal/core/ports"
	"github.com/okruhlystol/catalog/internal/core/predicate"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// eventsCounter is the counters document holding the last assigned event id.
const eventsCounter = "events"

// MongoDB is a mongodb adapter serving the event and facet repositories.
type MongoDB struct {
	eventCollection   *mongo.Collection
	counterCollection *mongo.Collection
	nowFunc           func() time.Time
}

// MongoDBArgs are the mandatory arguments for the creation of a MongoDB
type MongoDBArgs struct {
	// EventCollection holds the events.
	EventCollection *mongo.Collection

	// CounterCollection holds sequence documents used to assign numeric ids.
	CounterCollection *mongo.Collection
}

// MongoDBOptArgs are the optional arguments for building a MongoDB
type MongoDBOptArgs = func(*MongoDB)

// WithNowFunc can be used to override the nowFunc. Useful for testing.
func WithNowFunc(nowFunc func() time.Time) MongoDBOptArgs {
	return func(p *MongoDB) {
		p.nowFunc = nowFunc
	}
}

// NewMongoDB creates a new MongoDB.
func NewMongoDB(args MongoDBArgs, optArgs ...MongoDBOptArgs) (*MongoDB, error) {
	if args.EventCollection == nil || args.CounterCollection == nil {
		return nil, errors.New("nil collection")
	}
	m := &MongoDB{
		eventCollection:   args.EventCollection,
		counterCollection: args.CounterCollection,
		nowFunc:           func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range optArgs {
		opt(m)
	}
	return m, nil
}

// EnsureIndexes creates the listing index. It is idempotent.
func (m *MongoDB) EnsureIndexes(ctx context.Context) error {
	_, err := m.eventCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "event_start_date", Value: -1}, {Key: "created_at", Value: -1}, {Key: "_id", Value: -1}},
	})
	return err
}

// QueryEvents counts and pages the events matching pred within one snapshot session.
func (m *MongoDB) QueryEvents(ctx context.Context, pred predicate.Predicate, window ports.Window) (*ports.EventRows, error) {
	sess, err := m.eventCollection.Database().Client().StartSession(options.Session().SetSnapshot(true))
	if err != nil {
		return nil, fmt.Errorf("error starting snapshot session: %w", err)
	}
	defer sess.EndSession(ctx)

	query := filter(pred)
	var (
		rows  []eventDB
		total int64
	)
	err = mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		var err error
		if total, err = m.eventCollection.CountDocuments(sc, query); err != nil {
			return err
		}
		if total <= int64(window.Offset) {
			return nil
		}
		opts := options.Find().
			SetSort(bson.D{{Key: "event_start_date", Value: -1}, {Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}).
			SetSkip(int64(window.Offset)).
			SetLimit(int64(window.Limit))
		cursor, err := m.eventCollection.Find(sc, query, opts)
		if err != nil {
			return err
		}
		return cursor.All(sc, &rows)
	})
	if err != nil {
		return nil, err
	}
	return &ports.EventRows{Records: translateDBToModels(rows), Total: int(total)}, nil
}

// GetEvent returns the event with the given id or model.ErrNotFound.
func (m *MongoDB) GetEvent(ctx context.Context, id int64) (*model.EventRecord, error) {
	row := new(eventDB)
	err := m.eventCollection.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(row)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	rec := translateDBToModel(*row)
	return &rec, nil
}

// GetEventsByIDs returns the existing events among ids.
func (m *MongoDB) GetEventsByIDs(ctx context.Context, ids []int64) ([]model.EventRecord, error) {
	if len(ids) == 0 {
		return []model.EventRecord{}, nil
	}
	cursor, err := m.eventCollection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	var rows []eventDB
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}
	return translateDBToModels(rows), nil
}

// SaveEvent inserts the event under the next id of the events counter.
func (m *MongoDB) SaveEvent(ctx context.Context, event *model.EventRecord) error {
	if event == nil {
		return errors.New("nil event passed to save method")
	}
	id, err := m.nextID(ctx, eventsCounter)
	if err != nil {
		return fmt.Errorf("error assigning event id: %w", err)
	}

	row := toDBModel(event)
	row.ID = id
	if row.CreatedAt.IsZero() {
		row.CreatedAt = m.nowFunc()
	}
	if _, err := m.eventCollection.InsertOne(ctx, row); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return model.ErrAlreadyExists
		}
		return err
	}
	event.ID = row.ID
	event.CreatedAt = row.CreatedAt
	return nil
}

func (m *MongoDB) nextID(ctx context.Context, name string) (int64, error) {
	var counter struct {
		Seq int64 `bson:"seq"`
	}
	err := m.counterCollection.FindOneAndUpdate(ctx,
		bson.D{{Key: "_id", Value: name}},
		bson.D{{Key: "$inc", Value: bson.D{{Key: "seq", Value: int64(1)}}}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&counter)
	if err != nil {
		return 0, err
	}
	return counter.Seq, nil
}

// YearCounts returns the distinct start years, newest first.
func (m *MongoDB) YearCounts(ctx context.Context) ([]model.ValueCount, error) {
	rows, err := m.aggregate(ctx, mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: bson.D{{Key: "$year", Value: "$event_start_date"}}},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: -1}}}},
	})
	if err != nil {
		return nil, err
	}
	out := make([]model.ValueCount, len(rows))
	for i, r := range rows {
		year, err := asInt(r.ID)
		if err != nil {
			return nil, err
		}
		out[i] = model.ValueCount{Value: strconv.Itoa(year), Count: r.Count}
	}
	return out, nil
}

// MonthCounts returns the number of events per start month.
func (m *MongoDB) MonthCounts(ctx context.Context) (map[int]int, error) {
	rows, err := m.aggregate(ctx, mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: bson.D{{Key: "$month", Value: "$event_start_date"}}},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	})
	if err != nil {
		return nil, err
	}
	out := make(map[int]int, len(rows))
	for _, r := range rows {
		month, err := asInt(r.ID)
		if err != nil {
			return nil, err
		}
		out[month] = r.Count
	}
	return out, nil
}

// CategoryCounts returns the event types, missing and empty ones folded into
// model.Uncategorized, sorted by label.
func (m *MongoDB) CategoryCounts(ctx context.Context) ([]model.ValueCount, error) {
	label := bson.D{{Key: "$cond", Value: bson.A{
		bson.D{{Key: "$eq", Value: bson.A{bson.D{{Key: "$ifNull", Value: bson.A{"$event_type", ""}}}, ""}}},
		model.Uncategorized,
		"$event_type",
	}}}
	rows, err := m.aggregate(ctx, mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: label},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	})
	if err != nil {
		return nil, err
	}
	return translateValueCounts(rows), nil
}

// LocationCounts returns the known locations, sorted.
func (m *MongoDB) LocationCounts(ctx context.Context) ([]model.ValueCount, error) {
	rows, err := m.aggregate(ctx, mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "location", Value: bson.D{{Key: "$nin", Value: bson.A{nil, ""}}}}}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$location"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	})
	if err != nil {
		return nil, err
	}
	return translateValueCounts(rows), nil
}

func (m *MongoDB) aggregate(ctx context.Context, pipeline mongo.Pipeline) ([]groupDB, error) {
	cursor, err := m.eventCollection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	var rows []groupDB
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func asInt(v any) (int, error) {
	switch n := v.(type) {
	case int32:
		return int(n), nil
	case int64:
		return int(n), nil
	case float64:
		return int(n), nil
	default:
		return 0, fmt.Errorf("unexpected group key %v of type %T", v, v)
	}
}
