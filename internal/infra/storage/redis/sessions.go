package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis"

	domainauth "github.com/CristhianAlv-ing/HotelFind/internal/domain/auth"
	domainuser "github.com/CristhianAlv-ing/HotelFind/internal/domain/user"
)

const sessionKeyPrefix = "session:"

// SessionStore keeps bearer sessions in Redis so they survive restarts and
// can be shared across instances. Expiry rides on the Redis TTL.
type SessionStore struct {
	client *redis.Client
}

func NewSessionStore(addr, password string, db int) (*SessionStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping().Err(); err != nil {
		return nil, fmt.Errorf("redis: ping failed: %w", err)
	}
	return &SessionStore{client: client}, nil
}

type sessionDocument struct {
	Token     string    `json:"token"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (s *SessionStore) Save(ctx context.Context, session *domainauth.Session) error {
	if session == nil {
		return domainauth.ErrTokenRequired
	}
	doc := sessionDocument{
		Token:     string(session.Token),
		UserID:    string(session.UserID),
		CreatedAt: session.CreatedAt,
		ExpiresAt: session.ExpiresAt,
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return domainauth.ErrTTLInvalid
	}
	if err := s.client.Set(sessionKeyPrefix+doc.Token, raw, ttl).Err(); err != nil {
		return fmt.Errorf("redis: save session: %w", err)
	}
	if err := s.client.SAdd(userSessionsKey(session.UserID), doc.Token).Err(); err != nil {
		return fmt.Errorf("redis: index session: %w", err)
	}
	return nil
}

func (s *SessionStore) Get(ctx context.Context, token domainauth.Token) (*domainauth.Session, error) {
	raw, err := s.client.Get(sessionKeyPrefix + string(token)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, domainauth.ErrSessionNotFound
		}
		return nil, fmt.Errorf("redis: get session: %w", err)
	}
	var doc sessionDocument
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, fmt.Errorf("redis: decode session: %w", err)
	}
	session := &domainauth.Session{
		Token:     domainauth.Token(doc.Token),
		UserID:    domainuser.ID(doc.UserID),
		CreatedAt: doc.CreatedAt,
		ExpiresAt: doc.ExpiresAt,
	}
	if session.Expired(time.Now()) {
		_ = s.Delete(ctx, token)
		return nil, domainauth.ErrSessionNotFound
	}
	return session, nil
}

func (s *SessionStore) Delete(ctx context.Context, token domainauth.Token) error {
	raw, err := s.client.Get(sessionKeyPrefix + string(token)).Result()
	if err == nil {
		var doc sessionDocument
		if json.Unmarshal([]byte(raw), &doc) == nil {
			_ = s.client.SRem(userSessionsKey(domainuser.ID(doc.UserID)), string(token)).Err()
		}
	}
	if err := s.client.Del(sessionKeyPrefix + string(token)).Err(); err != nil {
		return fmt.Errorf("redis: delete session: %w", err)
	}
	return nil
}

func (s *SessionStore) DeleteByUser(ctx context.Context, userID domainuser.ID) error {
	tokens, err := s.client.SMembers(userSessionsKey(userID)).Result()
	if err != nil && err != redis.Nil {
		return fmt.Errorf("redis: list user sessions: %w", err)
	}
	for _, token := range tokens {
		_ = s.client.Del(sessionKeyPrefix + token).Err()
	}
	if err := s.client.Del(userSessionsKey(userID)).Err(); err != nil {
		return fmt.Errorf("redis: drop session index: %w", err)
	}
	return nil
}

func userSessionsKey(userID domainuser.ID) string {
	return "user-sessions:" + string(userID)
}

var _ domainauth.SessionStore = (*SessionStore)(nil)
