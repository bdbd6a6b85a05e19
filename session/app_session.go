package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Store keeps bearer-token sessions in Redis, plus a per-user set so all
// of a user's sessions can be revoked at once.
type Store struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewStore(rdb *redis.Client, ttl time.Duration) *Store {
	return &Store{rdb: rdb, ttl: ttl}
}

type Session struct {
	UserID    string `json:"uid"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}

func key(token string) string      { return fmt.Sprintf("app:sess:%s", token) }
func userSetKey(uid string) string { return fmt.Sprintf("app:user_sessions:%s", uid) }

// Create issues a fresh token for the user and stores it with the TTL.
func (s *Store) Create(ctx context.Context, userID string) (string, error) {
	token := uuid.NewString()
	now := time.Now()
	b, _ := json.Marshal(Session{
		UserID:    userID,
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(s.ttl).Unix(),
	})
	pipe := s.rdb.TxPipeline()
	pipe.Set(ctx, key(token), b, s.ttl)
	pipe.SAdd(ctx, userSetKey(userID), token)
	pipe.Expire(ctx, userSetKey(userID), s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return "", err
	}
	return token, nil
}

func (s *Store) Get(ctx context.Context, token string) (*Session, error) {
	b, err := s.rdb.Get(ctx, key(token)).Bytes()
	if err != nil {
		return nil, err
	}
	var sess Session
	if err := json.Unmarshal(b, &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

func (s *Store) Delete(ctx context.Context, token string) error {
	sess, _ := s.Get(ctx, token) // 忽略失败
	pipe := s.rdb.TxPipeline()
	pipe.Del(ctx, key(token))
	if sess != nil {
		pipe.SRem(ctx, userSetKey(sess.UserID), token)
	}
	_, err := pipe.Exec(ctx)
	return err
}

// RevokeAllForUser drops every session of the user, e.g. when the account
// is deleted.
func (s *Store) RevokeAllForUser(ctx context.Context, userID string) error {
	tokens, err := s.rdb.SMembers(ctx, userSetKey(userID)).Result()
	if err != nil && err != redis.Nil {
		return err
	}

	pipe := s.rdb.TxPipeline()
	for _, t := range tokens {
		pipe.Del(ctx, key(t))
	}
	pipe.Del(ctx, userSetKey(userID))
	_, err = pipe.Exec(ctx)
	return err
}
