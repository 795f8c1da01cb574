package mongo

import (
	"alcyxob/studio-admin/internal/repository"
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// mongoDocumentStore implements repository.DocumentStore. Document IDs are
// stored as string _id values; ObjectIDs written by other tools are listed
// by their hex form.
type mongoDocumentStore struct {
	db *mongo.Database
}

// NewDocumentStore creates a document store over the given database.
func NewDocumentStore(db *mongo.Database) repository.DocumentStore {
	return &mongoDocumentStore{db: db}
}

// List returns all documents of a collection in natural order.
func (s *mongoDocumentStore) List(ctx context.Context, collection string) ([]repository.StoredDocument, error) {
	cursor, err := s.db.Collection(collection).Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var raw []bson.M
	if err = cursor.All(ctx, &raw); err != nil {
		return nil, err
	}

	docs := make([]repository.StoredDocument, 0, len(raw))
	for _, m := range raw {
		id := idString(m["_id"])
		delete(m, "_id")
		docs = append(docs, repository.StoredDocument{ID: id, Data: repository.Document(m)})
	}
	return docs, nil
}

// Get retrieves a single document by ID.
func (s *mongoDocumentStore) Get(ctx context.Context, collection, id string) (repository.Document, error) {
	var m bson.M
	err := s.db.Collection(collection).FindOne(ctx, idFilter(id)).Decode(&m)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	delete(m, "_id")
	return repository.Document(m), nil
}

// Set replaces the document stored under id, inserting it when absent.
func (s *mongoDocumentStore) Set(ctx context.Context, collection, id string, doc repository.Document) error {
	if id == "" {
		return repository.ErrMissingID
	}
	replacement := withoutID(doc)
	coll := s.db.Collection(collection)

	// Overwrite an ObjectID-keyed document in place rather than adding a string-keyed twin.
	if oid, err := primitive.ObjectIDFromHex(id); err == nil {
		result, err := coll.ReplaceOne(ctx, bson.M{"_id": oid}, replacement)
		if err != nil {
			return err
		}
		if result.MatchedCount > 0 {
			return nil
		}
	}

	_, err := coll.ReplaceOne(ctx, bson.M{"_id": id}, replacement, options.Replace().SetUpsert(true))
	return err
}

// Add inserts a document under a freshly generated ID.
func (s *mongoDocumentStore) Add(ctx context.Context, collection string, doc repository.Document) (string, error) {
	id := primitive.NewObjectID().Hex()
	insert := withoutID(doc)
	insert["_id"] = id

	result, err := s.db.Collection(collection).InsertOne(ctx, insert)
	if err != nil {
		return "", err
	}
	insertedID, ok := result.InsertedID.(string)
	if !ok {
		return "", fmt.Errorf("unexpected inserted ID type %T", result.InsertedID)
	}
	return insertedID, nil
}

// Delete removes a document by ID.
func (s *mongoDocumentStore) Delete(ctx context.Context, collection, id string) error {
	result, err := s.db.Collection(collection).DeleteOne(ctx, idFilter(id))
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// idFilter matches id as a string and, when it is valid hex, as an ObjectID.
func idFilter(id string) bson.M {
	if oid, err := primitive.ObjectIDFromHex(id); err == nil {
		return bson.M{"_id": bson.M{"$in": bson.A{id, oid}}}
	}
	return bson.M{"_id": id}
}

func withoutID(doc repository.Document) bson.M {
	m := make(bson.M, len(doc)+1)
	for k, v := range doc {
		if k == "_id" {
			continue
		}
		m[k] = v
	}
	return m
}

func idString(v interface{}) string {
	switch id := v.(type) {
	case string:
		return id
	case primitive.ObjectID:
		return id.Hex()
	case nil:
		return ""
	}
	return fmt.Sprint(v)
}
