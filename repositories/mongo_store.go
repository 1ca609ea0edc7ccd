package repositories

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/HSouheill/barrim_admin/models"
)

// MongoStore is a DocumentStore backed by a MongoDB database. Record ids are
// the hex form of the _id ObjectID, or the _id itself for records written
// elsewhere with string ids.
type MongoStore struct {
	db *mongo.Database
}

func NewMongoStore(client *mongo.Client, dbName string) *MongoStore {
	return &MongoStore{db: client.Database(dbName)}
}

func (s *MongoStore) List(ctx context.Context, collection string, opts ListOptions) (*ListResult, error) {
	coll := s.db.Collection(collection)

	filter, err := buildFilter(opts.Filters)
	if err != nil {
		return nil, err
	}

	total, err := coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("count %s: %w", collection, err)
	}

	pageFilter := filter
	if opts.CursorAfter != "" {
		cursorID, err := primitive.ObjectIDFromHex(opts.CursorAfter)
		if err != nil {
			return nil, fmt.Errorf("%w: cursor %s", models.ErrInvalidInput, opts.CursorAfter)
		}
		pageFilter = bson.M{"$and": bson.A{filter, bson.M{"_id": bson.M{"$gt": cursorID}}}}
	}

	findOpts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	if opts.Limit > 0 {
		findOpts.SetLimit(int64(opts.Limit))
	}
	if opts.Offset > 0 {
		findOpts.SetSkip(int64(opts.Offset))
	}

	cursor, err := coll.Find(ctx, pageFilter, findOpts)
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", collection, err)
	}
	defer cursor.Close(ctx)

	var raw []bson.M
	if err := cursor.All(ctx, &raw); err != nil {
		return nil, fmt.Errorf("decode %s: %w", collection, err)
	}

	docs := make([]Document, 0, len(raw))
	for _, m := range raw {
		docs = append(docs, fromMongo(m))
	}
	return &ListResult{Documents: docs, Total: total}, nil
}

func (s *MongoStore) Get(ctx context.Context, collection, id string) (Document, error) {
	var m bson.M
	err := s.db.Collection(collection).FindOne(ctx, bson.M{"_id": mongoID(id)}).Decode(&m)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%w: %s/%s", models.ErrNotFound, collection, id)
	}
	if err != nil {
		return nil, fmt.Errorf("get %s/%s: %w", collection, id, err)
	}
	return fromMongo(m), nil
}

func (s *MongoStore) Create(ctx context.Context, collection string, doc Document) (Document, error) {
	m := toMongo(doc)
	if _, ok := m["_id"]; !ok {
		m["_id"] = primitive.NewObjectID()
	}

	if _, err := s.db.Collection(collection).InsertOne(ctx, m); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("%w: %v", models.ErrDuplicateCode, err)
		}
		return nil, fmt.Errorf("insert %s: %w", collection, err)
	}
	return fromMongo(m), nil
}

func (s *MongoStore) Update(ctx context.Context, collection, id string, patch Document) (Document, error) {
	set := toMongo(patch)
	delete(set, "_id")

	var m bson.M
	err := s.db.Collection(collection).FindOneAndUpdate(
		ctx,
		bson.M{"_id": mongoID(id)},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&m)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%w: %s/%s", models.ErrNotFound, collection, id)
	}
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("%w: %v", models.ErrDuplicateCode, err)
		}
		return nil, fmt.Errorf("update %s/%s: %w", collection, id, err)
	}
	return fromMongo(m), nil
}

func (s *MongoStore) Delete(ctx context.Context, collection, id string) error {
	result, err := s.db.Collection(collection).DeleteOne(ctx, bson.M{"_id": mongoID(id)})
	if err != nil {
		return fmt.Errorf("delete %s/%s: %w", collection, id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("%w: %s/%s", models.ErrNotFound, collection, id)
	}
	return nil
}

func buildFilter(filters []Filter) (bson.M, error) {
	filter := bson.M{}
	for _, f := range filters {
		field := f.Field
		values := f.Values
		if field == "id" {
			field = "_id"
			ids := make([]interface{}, 0, len(values))
			for _, v := range values {
				s, ok := v.(string)
				if !ok {
					return nil, fmt.Errorf("%w: id filter value %v", models.ErrInvalidInput, v)
				}
				ids = append(ids, mongoID(s))
			}
			values = ids
		}
		switch len(values) {
		case 0:
			// An empty set matches nothing
			filter[field] = bson.M{"$in": bson.A{}}
		case 1:
			filter[field] = values[0]
		default:
			filter[field] = bson.M{"$in": values}
		}
	}
	return filter, nil
}

// mongoID maps a record id to its _id value. Hex ids are ObjectIDs; anything
// else was stored as a plain string _id.
func mongoID(id string) interface{} {
	if objID, err := primitive.ObjectIDFromHex(id); err == nil {
		return objID
	}
	return id
}

func toMongo(doc Document) bson.M {
	m := bson.M{}
	for k, v := range doc {
		if k == "id" {
			if s, ok := v.(string); ok && s != "" {
				m["_id"] = mongoID(s)
			}
			continue
		}
		m[k] = v
	}
	return m
}

func fromMongo(m bson.M) Document {
	doc := Document{}
	for k, v := range m {
		if k == "_id" {
			if objID, ok := v.(primitive.ObjectID); ok {
				doc["id"] = objID.Hex()
			} else {
				doc["id"] = fmt.Sprint(v)
			}
			continue
		}
		doc[k] = v
	}
	return doc
}
