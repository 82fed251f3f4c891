// Package mongo stores raw provider documents in MongoDB collections.
package mongo

import (
	"context"
	"fmt"
	"sort"
	"time"

	crerr "github.com/cockroachdb/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	driver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/riskibarqy/sports-dw/internal/domain/staging"
	"github.com/riskibarqy/sports-dw/internal/platform/document"
)

type ConnectConfig struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// Connect dials MongoDB and pings the primary so a bad URI fails at
// startup instead of on the first read.
func Connect(ctx context.Context, cfg ConnectConfig) (*driver.Client, error) {
	opts := options.Client().ApplyURI(cfg.URI)
	if cfg.Timeout > 0 {
		opts.SetServerSelectionTimeout(cfg.Timeout).SetConnectTimeout(cfg.Timeout)
	}

	client, err := driver.Connect(ctx, opts)
	if err != nil {
		return nil, crerr.Wrap(err, "connect mongo")
	}

	pingCtx := ctx
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		pingCtx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, crerr.Wrap(err, "ping mongo")
	}
	return client, nil
}

// StagingRepository reads and replaces staging collections in one database.
type StagingRepository struct {
	db *driver.Database
}

func NewStagingRepository(db *driver.Database) *StagingRepository {
	return &StagingRepository{db: db}
}

func (r *StagingRepository) CollectionNames(ctx context.Context) ([]string, error) {
	names, err := r.db.ListCollectionNames(ctx, bson.D{})
	if err != nil {
		return nil, crerr.Wrapf(err, "list collections in %s", r.db.Name())
	}
	sort.Strings(names)
	return names, nil
}

// Iterate walks the collection in natural order. A document that fails to
// decode is handed to fn with Err set and the scan continues.
func (r *StagingRepository) Iterate(ctx context.Context, collection string, fn func(staging.Document) error) error {
	cursor, err := r.db.Collection(collection).Find(ctx, bson.D{})
	if err != nil {
		return crerr.Wrapf(err, "find documents in %s", collection)
	}
	defer cursor.Close(context.Background())

	for cursor.Next(ctx) {
		if err := fn(decodeCurrent(cursor.Decode, cursor.Current, collection)); err != nil {
			return err
		}
	}
	if err := cursor.Err(); err != nil {
		return crerr.Wrapf(err, "iterate %s", collection)
	}
	return nil
}

func decodeCurrent(decode func(any) error, current bson.Raw, collection string) staging.Document {
	var raw bson.D
	if err := decode(&raw); err != nil {
		out := staging.Document{
			Collection: collection,
			Err:        crerr.Wrapf(err, "decode document in %s", collection),
		}
		if id, lookupErr := current.LookupErr("_id"); lookupErr == nil {
			out.ID = rawID(id)
		}
		return out
	}
	return staging.Document{
		Collection: collection,
		ID:         documentID(raw),
		Body:       fromBSON(raw),
	}
}

// ReplaceCollection deletes every document and inserts docs. The two steps
// are not atomic.
func (r *StagingRepository) ReplaceCollection(ctx context.Context, collection string, docs []document.Value) (int, error) {
	coll := r.db.Collection(collection)
	if _, err := coll.DeleteMany(ctx, bson.D{}); err != nil {
		return 0, crerr.Wrapf(err, "clear collection %s", collection)
	}
	if len(docs) == 0 {
		return 0, nil
	}

	payload := make([]any, 0, len(docs))
	for _, doc := range docs {
		payload = append(payload, toBSON(doc))
	}
	res, err := coll.InsertMany(ctx, payload)
	if err != nil {
		return 0, crerr.Wrapf(err, "insert documents into %s", collection)
	}
	return len(res.InsertedIDs), nil
}

func documentID(raw bson.D) string {
	for _, elem := range raw {
		if elem.Key != "_id" {
			continue
		}
		switch v := elem.Value.(type) {
		case primitive.ObjectID:
			return v.Hex()
		default:
			return fmt.Sprint(v)
		}
	}
	return ""
}

func rawID(v bson.RawValue) string {
	if oid, ok := v.ObjectIDOK(); ok {
		return oid.Hex()
	}
	if str, ok := v.StringValueOK(); ok {
		return str
	}
	return v.String()
}

var (
	_ staging.Source = (*StagingRepository)(nil)
	_ staging.Writer = (*StagingRepository)(nil)
)
