package redis

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/sessionkit/pkg/session"
)

// ErrNilClient indicates the store was constructed without a redis client.
var ErrNilClient = errors.New("session.redis.nil_client")

// touchScript advances the access stamp only while the bag document still
// exists, so a Touch racing a Delete cannot leave an orphaned stamp
// behind. ZADD GT keeps the merge-max rule on the server side.
const touchScript = `
if redis.call("EXISTS", KEYS[1]) == 0 then
  return 0
end
redis.call("ZADD", KEYS[2], "GT", ARGV[2], ARGV[1])
return 1
`

var touchLua = redis.NewScript(touchScript)

// deleteScript removes the bag document and its stamp in one atomic step.
const deleteScript = `
redis.call("ZREM", KEYS[2], ARGV[1])
return redis.call("DEL", KEYS[1])
`

var deleteLua = redis.NewScript(deleteScript)

// Store persists visitor bags in redis. Each bag is a JSON document under
// its own key; all access stamps live in one sorted set scored by Unix
// seconds, which makes the eviction listing a single ZRANGE and the
// merge-max stamp write a single ZADD GT.
//
// Keys carry no redis TTL. Expiry belongs to the container, which decides
// through Stamps and Delete.
type Store struct {
	client redis.UniversalClient
	prefix string
}

var _ session.Backend = (*Store)(nil)

// Option configures a Store.
type Option func(*Store)

// WithKeyPrefix overrides the default "sessionkit" key prefix. Give each
// container its own prefix when several share one redis database.
func WithKeyPrefix(prefix string) Option {
	return func(s *Store) {
		if prefix != "" {
			s.prefix = prefix
		}
	}
}

// New creates a redis-backed session store over the given client.
func New(client redis.UniversalClient, opts ...Option) (*Store, error) {
	if client == nil {
		return nil, ErrNilClient
	}
	s := &Store{
		client: client,
		prefix: "sessionkit",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *Store) dataKey(token string) string {
	return s.prefix + ":data:" + token
}

func (s *Store) stampsKey() string {
	return s.prefix + ":stamps"
}

// Load retrieves the bag for token together with its access stamp.
// Returns session.ErrNotFound when no bag is stored.
func (s *Store) Load(ctx context.Context, token string) (*session.Data, error) {
	pipe := s.client.Pipeline()
	dataCmd := pipe.Get(ctx, s.dataKey(token))
	stampCmd := pipe.ZScore(ctx, s.stampsKey(), token)
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, errors.Join(session.ErrBackend, err)
	}

	raw, err := dataCmd.Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, session.ErrNotFound
		}
		return nil, errors.Join(session.ErrBackend, err)
	}

	var lastAccess int64
	if stamp, err := stampCmd.Result(); err == nil {
		lastAccess = int64(stamp)
	} else if !errors.Is(err, redis.Nil) {
		return nil, errors.Join(session.ErrBackend, err)
	}

	return session.DecodeData(raw, lastAccess)
}

// Store writes the bag document and merges its access stamp with any
// already stored, keeping the maximum of the two. A concurrent worker can
// therefore never move a visitor's last access backwards.
func (s *Store) Store(ctx context.Context, token string, data *session.Data) error {
	raw, err := data.EncodePkgs()
	if err != nil {
		return err
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, s.dataKey(token), raw, 0)
		pipe.ZAddGT(ctx, s.stampsKey(), redis.Z{
			Score:  float64(data.LastAccess()),
			Member: token,
		})
		return nil
	})
	if err != nil {
		return errors.Join(session.ErrBackend, err)
	}
	return nil
}

// Touch advances the stored access stamp to max(current, stamp). Touching
// an absent token is a silent no-op.
func (s *Store) Touch(ctx context.Context, token string, stamp int64) error {
	err := touchLua.Run(ctx, s.client,
		[]string{s.dataKey(token), s.stampsKey()},
		token, stamp,
	).Err()
	if err != nil {
		return errors.Join(session.ErrBackend, err)
	}
	return nil
}

// Delete removes the bag and its stamp. Deleting an absent token is a
// silent no-op.
func (s *Store) Delete(ctx context.Context, token string) error {
	err := deleteLua.Run(ctx, s.client,
		[]string{s.dataKey(token), s.stampsKey()},
		token,
	).Err()
	if err != nil {
		return errors.Join(session.ErrBackend, err)
	}
	return nil
}

// Stamps lists every stored token with its access stamp.
func (s *Store) Stamps(ctx context.Context) ([]session.Stamp, error) {
	members, err := s.client.ZRangeWithScores(ctx, s.stampsKey(), 0, -1).Result()
	if err != nil {
		return nil, errors.Join(session.ErrBackend, err)
	}

	stamps := make([]session.Stamp, 0, len(members))
	for _, m := range members {
		token, ok := m.Member.(string)
		if !ok {
			continue
		}
		stamps = append(stamps, session.Stamp{
			Token:      token,
			LastAccess: int64(m.Score),
		})
	}
	return stamps, nil
}
