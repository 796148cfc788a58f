package repositories

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shashiranjanraj/backoffice/app/models"
	"github.com/shashiranjanraj/backoffice/pkg/orm"
)

type mongoRepo[T any, P record[T]] struct {
	col    *mongo.Collection
	schema schema
}

func newMongoRepo[T any, P record[T]](db *mongo.Database, s schema) *mongoRepo[T, P] {
	return &mongoRepo[T, P]{col: db.Collection(s.name), schema: s}
}

func (r *mongoRepo[T, P]) Create(ctx context.Context, rec *T) error {
	stamp(P(rec).Meta(), primitive.NewObjectID().Hex())

	if _, err := r.col.InsertOne(ctx, rec); err != nil {
		return r.wrap("insert", err)
	}
	return nil
}

func (r *mongoRepo[T, P]) FindByID(ctx context.Context, id string) (*T, error) {
	var out T
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&out); err != nil {
		return nil, r.wrap("find", err)
	}
	return &out, nil
}

func (r *mongoRepo[T, P]) FindByIDs(ctx context.Context, ids []string) ([]T, error) {
	out := []T{}
	if len(ids) == 0 {
		return out, nil
	}

	cur, err := r.col.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, r.wrap("find", err)
	}
	if err := cur.All(ctx, &out); err != nil {
		return nil, r.wrap("decode", err)
	}
	return out, nil
}

func (r *mongoRepo[T, P]) Exists(ctx context.Context, field Field, value interface{}) (bool, error) {
	n, err := r.col.CountDocuments(ctx, bson.M{field.Doc: value}, options.Count().SetLimit(1))
	if err != nil {
		return false, r.wrap("count", err)
	}
	return n > 0, nil
}

func (r *mongoRepo[T, P]) List(ctx context.Context, q ListQuery) ([]T, orm.Pagination, error) {
	page, limit := orm.Normalize(q.Page, q.Limit)
	filter := r.searchFilter(q)

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, orm.Pagination{}, r.wrap("count", err)
	}
	if orm.PastEnd(page, limit, total) {
		return []T{}, orm.NewPagination(page, limit, total), nil
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(int64(orm.Offset(page, limit))).
		SetLimit(int64(limit))

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, orm.Pagination{}, r.wrap("find", err)
	}

	items := []T{}
	if err := cur.All(ctx, &items); err != nil {
		return nil, orm.Pagination{}, r.wrap("decode", err)
	}
	if items == nil {
		items = []T{}
	}

	return items, orm.NewPagination(page, limit, total), nil
}

func (r *mongoRepo[T, P]) SearchIDs(ctx context.Context, term string) ([]string, error) {
	ids := []string{}
	if term == "" {
		return ids, nil
	}

	opts := options.Find().SetProjection(bson.M{"_id": 1})
	cur, err := r.col.Find(ctx, r.searchFilter(ListQuery{Search: term}), opts)
	if err != nil {
		return nil, r.wrap("find", err)
	}

	var rows []struct {
		ID string `bson:"_id"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, r.wrap("decode", err)
	}
	for _, row := range rows {
		ids = append(ids, row.ID)
	}
	return ids, nil
}

// searchFilter matches Search as a literal, case-insensitive substring.
func (r *mongoRepo[T, P]) searchFilter(q ListQuery) bson.M {
	if q.Search == "" {
		return bson.M{}
	}

	pattern := regexp.QuoteMeta(q.Search)
	var or []bson.M
	for _, f := range r.schema.search {
		or = append(or, bson.M{f.Doc: primitive.Regex{Pattern: pattern, Options: "i"}})
	}
	for _, f := range r.schema.numeric {
		or = append(or, bson.M{"$expr": bson.M{"$regexMatch": bson.M{
			"input":   bson.M{"$toString": "$" + f.Doc},
			"regex":   pattern,
			"options": "i",
		}}})
	}
	if r.schema.ref != nil && len(q.RefIDs) > 0 {
		or = append(or, bson.M{r.schema.ref.Doc: bson.M{"$in": q.RefIDs}})
	}
	return bson.M{"$or": or}
}

func (r *mongoRepo[T, P]) Update(ctx context.Context, id string, changes Changes) (*T, error) {
	set := bson.M{"updatedAt": Now()}
	for f, v := range changes {
		set[f.Doc] = v
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var out T
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&out); err != nil {
		return nil, r.wrap("update", err)
	}
	return &out, nil
}

func (r *mongoRepo[T, P]) Delete(ctx context.Context, id string) (*T, error) {
	var out T
	if err := r.col.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&out); err != nil {
		return nil, r.wrap("delete", err)
	}
	return &out, nil
}

func (r *mongoRepo[T, P]) Count(ctx context.Context) (int64, error) {
	n, err := r.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, r.wrap("count", err)
	}
	return n, nil
}

func (r *mongoRepo[T, P]) wrap(op string, err error) error {
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return fmt.Errorf("%s %s: %w", r.schema.name, op, ErrDuplicate)
	default:
		return fmt.Errorf("%s %s: %w", r.schema.name, op, err)
	}
}

type mongoOrders struct {
	*mongoRepo[models.Order, *models.Order]
}

func (r mongoOrders) SumTotalAmount(ctx context.Context) (float64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "total", Value: bson.D{{Key: "$sum", Value: "$totalAmount"}}},
		}}},
	}

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, r.wrap("aggregate", err)
	}

	var rows []struct {
		Total float64 `bson:"total"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return 0, r.wrap("decode", err)
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].Total, nil
}

// NewMongoStore builds a Store on db. Close disconnects db's client.
func NewMongoStore(db *mongo.Database) *Store {
	return &Store{
		Users:      newMongoRepo[models.User](db, userSchema),
		Categories: newMongoRepo[models.Category](db, categorySchema),
		Products:   newMongoRepo[models.Product](db, productSchema),
		Orders:     mongoOrders{newMongoRepo[models.Order](db, orderSchema)},

		backend: "mongo",
		ping: func(ctx context.Context) error {
			return db.RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err()
		},
		close: func(ctx context.Context) error {
			return db.Client().Disconnect(ctx)
		},
	}
}

// EnsureMongoIndexes creates the unique and ordering indexes. It is
// idempotent and runs at boot and from the migrate command.
func EnsureMongoIndexes(ctx context.Context, db *mongo.Database) error {
	createdAt := mongo.IndexModel{Keys: bson.D{{Key: "createdAt", Value: -1}}}
	unique := func(key string) mongo.IndexModel {
		return mongo.IndexModel{
			Keys:    bson.D{{Key: key, Value: 1}},
			Options: options.Index().SetUnique(true),
		}
	}

	indexes := map[string][]mongo.IndexModel{
		userSchema.name:     {unique(UserEmail.Doc), createdAt},
		categorySchema.name: {unique(CategoryName.Doc), createdAt},
		productSchema.name:  {unique(ProductName.Doc), {Keys: bson.D{{Key: ProductCategoryID.Doc, Value: 1}}}, createdAt},
		orderSchema.name:    {{Keys: bson.D{{Key: OrderUserID.Doc, Value: 1}}}, createdAt},
	}

	for name, idx := range indexes {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, idx); err != nil {
			return fmt.Errorf("%s indexes: %w", name, err)
		}
	}
	return nil
}
