package catalog

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/courseflow/courseflow/pkg/errors"
	"github.com/courseflow/courseflow/pkg/prereq"
)

// MongoStore reads course metadata from a MongoDB collection. Server
// deployments sync the institutional catalog into Mongo and serve
// metadata joins from there instead of fanning out HTTP requests per
// course.
type MongoStore struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// NewMongoStore connects to MongoDB and targets db.collection.
func NewMongoStore(ctx context.Context, uri, db, collection string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "connecting to mongodb")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "pinging mongodb")
	}
	return &MongoStore{
		client:     client,
		collection: client.Database(db).Collection(collection),
	}, nil
}

// MetadataByIDs loads metadata for the given course ids in one query.
// Unknown ids are simply absent from the result.
func (s *MongoStore) MetadataByIDs(ctx context.Context, courseIDs []int) (map[int]prereq.CourseMetadata, error) {
	if len(courseIDs) == 0 {
		return map[int]prereq.CourseMetadata{}, nil
	}

	cursor, err := s.collection.Find(ctx, bson.M{"course_id": bson.M{"$in": courseIDs}})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "querying course metadata")
	}
	defer cursor.Close(ctx)

	var docs []prereq.CourseMetadata
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "decoding course metadata")
	}

	out := make(map[int]prereq.CourseMetadata, len(docs))
	for _, doc := range docs {
		out[doc.CourseID] = doc
	}
	return out, nil
}

// Upsert writes one course's metadata, keyed by course id. Used by the
// catalog sync job.
func (s *MongoStore) Upsert(ctx context.Context, meta prereq.CourseMetadata) error {
	_, err := s.collection.ReplaceOne(
		ctx,
		bson.M{"course_id": meta.CourseID},
		meta,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "upserting course %d", meta.CourseID)
	}
	return nil
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

var _ MetadataSource = (*MongoStore)(nil)
