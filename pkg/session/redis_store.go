package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	redisTokenPrefix   = "session:token:"
	redisSubjectPrefix = "session:subject:"
)

// RedisStore persists sessions in Redis. Token keys carry a TTL matching
// the session expiry, so Redis evicts stale sessions on its own and
// DeleteExpired only has to prune the per-subject index sets.
type RedisStore struct {
	client redis.UniversalClient
}

var _ Store = (*RedisStore)(nil)

// NewRedisStore creates a Redis-backed session store. Build the client
// with the redis package's Connect:
//
//	client, err := redis.Connect(ctx, redis.Config{URL: os.Getenv("REDIS_URL")})
//	if err != nil {
//	    return err
//	}
//	sessions := session.NewManager(session.NewRedisStore(client))
func NewRedisStore(client redis.UniversalClient) *RedisStore {
	return &RedisStore{client: client}
}

type redisSession struct {
	Token     string    `json:"token"`
	SubjectID uint      `json:"subject_id"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (s *RedisStore) Create(ctx context.Context, sess *Session) error {
	payload, err := json.Marshal(redisSession{
		Token:     sess.Token,
		SubjectID: sess.SubjectID,
		CreatedAt: sess.CreatedAt,
		ExpiresAt: sess.ExpiresAt,
	})
	if err != nil {
		return fmt.Errorf("session: redis marshal: %w", err)
	}

	ttl := time.Until(sess.ExpiresAt)
	if ttl <= 0 {
		ttl = time.Second
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, redisTokenPrefix+sess.Token, payload, ttl)
	pipe.SAdd(ctx, subjectKey(sess.SubjectID), sess.Token)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("session: redis create: %w", err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, token string) (*Session, error) {
	payload, err := s.client.Get(ctx, redisTokenPrefix+token).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("session: redis get: %w", err)
	}

	var rec redisSession
	if err := json.Unmarshal(payload, &rec); err != nil {
		return nil, fmt.Errorf("session: redis unmarshal: %w", err)
	}
	return &Session{
		Token:     rec.Token,
		SubjectID: rec.SubjectID,
		CreatedAt: rec.CreatedAt,
		ExpiresAt: rec.ExpiresAt,
	}, nil
}

func (s *RedisStore) Delete(ctx context.Context, token string) error {
	// Find the owner first so the subject index stays consistent.
	sess, err := s.Get(ctx, token)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil
		}
		return err
	}

	pipe := s.client.TxPipeline()
	pipe.Del(ctx, redisTokenPrefix+token)
	pipe.SRem(ctx, subjectKey(sess.SubjectID), token)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("session: redis delete: %w", err)
	}
	return nil
}

func (s *RedisStore) DeleteBySubject(ctx context.Context, subjectID uint) error {
	key := subjectKey(subjectID)
	tokens, err := s.client.SMembers(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("session: redis members: %w", err)
	}

	pipe := s.client.TxPipeline()
	for _, token := range tokens {
		pipe.Del(ctx, redisTokenPrefix+token)
	}
	pipe.Del(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("session: redis delete by subject: %w", err)
	}
	return nil
}

// DeleteExpired prunes subject index entries whose token keys Redis has
// already evicted. Token keys themselves expire via TTL.
func (s *RedisStore) DeleteExpired(ctx context.Context) (int64, error) {
	var pruned int64
	iter := s.client.Scan(ctx, 0, redisSubjectPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		tokens, err := s.client.SMembers(ctx, key).Result()
		if err != nil {
			return pruned, fmt.Errorf("session: redis members: %w", err)
		}
		for _, token := range tokens {
			exists, err := s.client.Exists(ctx, redisTokenPrefix+token).Result()
			if err != nil {
				return pruned, fmt.Errorf("session: redis exists: %w", err)
			}
			if exists == 0 {
				if err := s.client.SRem(ctx, key, token).Err(); err != nil {
					return pruned, fmt.Errorf("session: redis prune: %w", err)
				}
				pruned++
			}
		}
	}
	if err := iter.Err(); err != nil {
		return pruned, fmt.Errorf("session: redis scan: %w", err)
	}
	return pruned, nil
}

func subjectKey(subjectID uint) string {
	return fmt.Sprintf("%s%d", redisSubjectPrefix, subjectID)
}
