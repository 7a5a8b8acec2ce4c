package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/dmitrymomot/sessionkit/pkg/session"
)

// ErrNilDatabase indicates the store was constructed without a database.
var ErrNilDatabase = errors.New("session.mongo.nil_database")

// sessionDoc is the stored shape of one visitor bag. The bag itself is
// kept as its encoded JSON form rather than a native subdocument, since
// namespace names contain dots and dotted field names clash with the
// update path syntax.
type sessionDoc struct {
	Token      string `bson:"_id"`
	Data       string `bson:"data"`
	LastAccess int64  `bson:"last_access"`
}

// Store implements session.Backend on a MongoDB collection. Stamp writes
// go through the $max update operator, so a visitor's last access is
// merged as a maximum by the server and never regressed by racing
// workers.
type Store struct {
	col *mongo.Collection
}

var _ session.Backend = (*Store)(nil)

// Option configures a Store.
type Option func(*config)

type config struct {
	collection string
}

// WithCollection overrides the default "sessionkit_sessions" collection
// name.
func WithCollection(name string) Option {
	return func(c *config) {
		if name != "" {
			c.collection = name
		}
	}
}

// New creates a MongoDB session store on a collection of db.
func New(db *mongo.Database, opts ...Option) (*Store, error) {
	if db == nil {
		return nil, ErrNilDatabase
	}
	cfg := config{collection: "sessionkit_sessions"}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Store{col: db.Collection(cfg.collection)}, nil
}

// EnsureIndexes creates the index backing the sweep's stamp listing. Call
// once at startup; index creation is idempotent.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "last_access", Value: 1}},
	})
	if err != nil {
		return errors.Join(session.ErrBackend, err)
	}
	return nil
}

// Load retrieves the bag for token together with its access stamp.
// Returns session.ErrNotFound when no document exists.
func (s *Store) Load(ctx context.Context, token string) (*session.Data, error) {
	var doc sessionDoc
	err := s.col.FindOne(ctx, bson.M{"_id": token}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, session.ErrNotFound
	}
	if err != nil {
		return nil, errors.Join(session.ErrBackend, err)
	}

	return session.DecodeData([]byte(doc.Data), doc.LastAccess)
}

// Store upserts the bag document and merges its access stamp with any
// already stored, keeping the maximum of the two.
func (s *Store) Store(ctx context.Context, token string, data *session.Data) error {
	raw, err := data.EncodePkgs()
	if err != nil {
		return err
	}

	update := bson.M{
		"$set": bson.M{"data": string(raw)},
		"$max": bson.M{"last_access": data.LastAccess()},
	}
	_, err = s.col.UpdateOne(ctx, bson.M{"_id": token}, update,
		options.UpdateOne().SetUpsert(true))
	if err != nil {
		return errors.Join(session.ErrBackend, err)
	}
	return nil
}

// Touch advances the stored access stamp to max(current, stamp). Without
// upsert the update matches nothing for absent tokens, keeping the no-op
// contract.
func (s *Store) Touch(ctx context.Context, token string, stamp int64) error {
	update := bson.M{"$max": bson.M{"last_access": stamp}}
	if _, err := s.col.UpdateOne(ctx, bson.M{"_id": token}, update); err != nil {
		return errors.Join(session.ErrBackend, err)
	}
	return nil
}

// Delete removes the bag for token. Deleting an absent token is a silent
// no-op.
func (s *Store) Delete(ctx context.Context, token string) error {
	if _, err := s.col.DeleteOne(ctx, bson.M{"_id": token}); err != nil {
		return errors.Join(session.ErrBackend, err)
	}
	return nil
}

// Stamps lists every stored token with its access stamp. The bag payload
// is projected away, so the listing stays cheap even with large bags.
func (s *Store) Stamps(ctx context.Context) ([]session.Stamp, error) {
	cursor, err := s.col.Find(ctx, bson.M{},
		options.Find().SetProjection(bson.M{"last_access": 1}))
	if err != nil {
		return nil, errors.Join(session.ErrBackend, err)
	}
	defer func() { _ = cursor.Close(ctx) }()

	var stamps []session.Stamp
	for cursor.Next(ctx) {
		var doc sessionDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, errors.Join(session.ErrBackend, err)
		}
		stamps = append(stamps, session.Stamp{
			Token:      doc.Token,
			LastAccess: doc.LastAccess,
		})
	}
	if err := cursor.Err(); err != nil {
		return nil, errors.Join(session.ErrBackend, err)
	}
	return stamps, nil
}
