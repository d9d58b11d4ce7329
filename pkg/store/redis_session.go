package store

import (
	"context"
	"errors"
	"math/rand/v2"
	"slices"
	"strings"
	"time"

	// Packages
	sonic "github.com/bytedance/sonic"
	mia "github.com/mutablelogic/go-mia"
	schema "github.com/mutablelogic/go-mia/pkg/schema"
	redis "github.com/redis/go-redis/v9"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// RedisSessionStore keeps sessions in Redis as JSON values which expire
// after the session TTL. Updates use optimistic transactions, so that
// processes sharing a Redis server do not lose each other's messages.
type RedisSessionStore struct {
	opts
	client *redis.Client
}

var _ schema.SessionStore = (*RedisSessionStore)(nil)

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	// Number of times an update is attempted when the key changes under it
	maxRetries = 50

	// Upper bound of the pause between attempts
	maxBackoff = 10 * time.Millisecond

	// Keys fetched per SCAN call
	scanCount = 100
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewRedisSessionStore returns a store which uses an existing client. The
// client is closed with the store.
func NewRedisSessionStore(client *redis.Client, opt ...Opt) (*RedisSessionStore, error) {
	if client == nil {
		return nil, mia.ErrBadParameter.With("redis client is required")
	}
	o, err := applyOpts(opt)
	if err != nil {
		return nil, err
	}
	return &RedisSessionStore{opts: o, client: client}, nil
}

// Close closes the redis client
func (r *RedisSessionStore) Close() error {
	return r.client.Close()
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// GetSession returns a session and refreshes its expiry
func (r *RedisSessionStore) GetSession(ctx context.Context, id string) (*schema.Session, error) {
	id = sessionID(id)
	key := r.key(id)
	data, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, mia.ErrNotFound.Withf("session %q", id)
	} else if err != nil {
		return nil, mia.ErrInternalServerError.Withf("redis: %v", err)
	}
	session, err := decodeSession(data)
	if err != nil {
		return nil, err
	}
	if err := r.client.Expire(ctx, key, r.ttl).Err(); err != nil {
		return nil, mia.ErrInternalServerError.Withf("redis: %v", err)
	}
	return session, nil
}

// UpdateSession reads, modifies and writes a session within a WATCH
// transaction, retrying when another writer changed the session first
func (r *RedisSessionStore) UpdateSession(ctx context.Context, id string, fn func(*schema.Session) error) (*schema.Session, error) {
	id = sessionID(id)
	key := r.key(id)

	var result *schema.Session
	txn := func(tx *redis.Tx) error {
		var current *schema.Session
		data, err := tx.Get(ctx, key).Bytes()
		if err == nil {
			if current, err = decodeSession(data); err != nil {
				return err
			}
		} else if !errors.Is(err, redis.Nil) {
			return mia.ErrInternalServerError.Withf("redis: %v", err)
		}

		session, err := r.apply(id, current, fn)
		if err != nil {
			return err
		}
		data, err = sonic.Marshal(session)
		if err != nil {
			return mia.ErrInternalServerError.Withf("marshal: %v", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, r.ttl)
			return nil
		})
		if err == nil {
			result = session
		}
		return err
	}

	for i := 0; i < maxRetries; i++ {
		err := r.client.Watch(ctx, txn, key)
		if errors.Is(err, redis.TxFailedErr) {
			time.Sleep(rand.N(maxBackoff))
			continue
		} else if err != nil {
			return nil, err
		}
		return result, nil
	}
	return nil, mia.ErrConflict.Withf("session %q: too many concurrent updates", id)
}

// DeleteSession removes a session
func (r *RedisSessionStore) DeleteSession(ctx context.Context, id string) error {
	if err := r.client.Del(ctx, r.key(sessionID(id))).Err(); err != nil {
		return mia.ErrInternalServerError.Withf("redis: %v", err)
	}
	return nil
}

// ListSessions returns the identifiers of sessions under the key prefix
func (r *RedisSessionStore) ListSessions(ctx context.Context) ([]string, error) {
	var result []string
	iter := r.client.Scan(ctx, 0, r.prefix+"*", scanCount).Iterator()
	for iter.Next(ctx) {
		result = append(result, strings.TrimPrefix(iter.Val(), r.prefix))
	}
	if err := iter.Err(); err != nil {
		return nil, mia.ErrInternalServerError.Withf("redis: %v", err)
	}
	slices.Sort(result)
	return slices.Compact(result), nil
}

// Purge is a no-op as Redis expires sessions itself
func (r *RedisSessionStore) Purge(context.Context) (int, error) {
	return 0, nil
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func (r *RedisSessionStore) key(id string) string {
	return r.prefix + id
}

func decodeSession(data []byte) (*schema.Session, error) {
	var session schema.Session
	if err := sonic.Unmarshal(data, &session); err != nil {
		return nil, mia.ErrInternalServerError.Withf("unmarshal: %v", err)
	}
	if session.Context == nil {
		session.Context = map[string]any{}
	}
	if session.Messages == nil {
		session.Messages = []schema.Message{}
	}
	return &session, nil
}
