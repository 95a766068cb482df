package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/yzhernand/treedraw/pkg/pipeline"
)

const (
	mongoDatabase   = "treedraw"
	mongoCollection = "drawings"
	mongoTimeout    = 5 * time.Second
)

// MongoStore persists drawings in a MongoDB collection.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

var _ Store = (*MongoStore)(nil)

// mongoDrawing is the stored document shape. Pipeline options are kept as
// their JSON encoding so the document does not depend on bson struct tags.
type mongoDrawing struct {
	ID        string    `bson:"_id"`
	Name      string    `bson:"name"`
	Options   []byte    `bson:"options"`
	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// NewMongoStore connects to MongoDB at uri and verifies the connection
// with a ping before returning.
func NewMongoStore(ctx context.Context, uri string) (*MongoStore, error) {
	ctx, cancel := context.WithTimeout(ctx, mongoTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &MongoStore{
		client: client,
		coll:   client.Database(mongoDatabase).Collection(mongoCollection),
	}, nil
}

// Save stores a drawing, replacing any document with the same ID.
func (s *MongoStore) Save(ctx context.Context, d *Drawing) error {
	if err := d.Validate(); err != nil {
		return err
	}
	prepare(d)

	doc, err := encodeDrawing(d)
	if err != nil {
		return err
	}
	_, err = s.coll.ReplaceOne(ctx,
		bson.M{"_id": d.ID}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to save drawing: %w", err)
	}
	return nil
}

// Get retrieves a drawing by ID.
func (s *MongoStore) Get(ctx context.Context, id string) (*Drawing, error) {
	var doc mongoDrawing
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get drawing: %w", err)
	}
	return decodeDrawing(&doc)
}

// List returns all drawings, newest first.
func (s *MongoStore) List(ctx context.Context) ([]*Drawing, error) {
	cur, err := s.coll.Find(ctx, bson.M{},
		options.Find().SetSort(bson.M{"created_at": -1}))
	if err != nil {
		return nil, fmt.Errorf("failed to list drawings: %w", err)
	}
	defer cur.Close(ctx)

	var out []*Drawing
	for cur.Next(ctx) {
		var doc mongoDrawing
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode drawing: %w", err)
		}
		d, err := decodeDrawing(&doc)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate drawings: %w", err)
	}
	return out, nil
}

// Delete removes a drawing by ID.
func (s *MongoStore) Delete(ctx context.Context, id string) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete drawing: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, mongoTimeout)
	defer cancel()
	return s.client.Disconnect(ctx)
}

func encodeDrawing(d *Drawing) (*mongoDrawing, error) {
	opts, err := json.Marshal(d.Options)
	if err != nil {
		return nil, fmt.Errorf("failed to encode options: %w", err)
	}
	return &mongoDrawing{
		ID:        d.ID,
		Name:      d.Name,
		Options:   opts,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}, nil
}

func decodeDrawing(doc *mongoDrawing) (*Drawing, error) {
	var opts pipeline.Options
	if err := json.Unmarshal(doc.Options, &opts); err != nil {
		return nil, fmt.Errorf("failed to decode options: %w", err)
	}
	return &Drawing{
		ID:        doc.ID,
		Name:      doc.Name,
		Options:   opts,
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}, nil
}
