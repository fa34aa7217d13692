package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/flexly/pkg"

	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"
)

const (
	DefaultTTL           = 30 * 24 * time.Hour
	sessionKeyPrefix     = "flexly-session||"
	userSessionKeyPrefix = "flexly-user-sessions||"
	tokensSetKey         = "flexly-sessions"
)

var ErrInvalidSession = errors.New("invalid or expired session")

// Sessions maps opaque bearer tokens to user ids, stored in redis with a TTL.
type Sessions struct {
	redisClient *redis.Client
	ttl         time.Duration
	// ability to inject random string generator func for tokens (for unit and dev testing)
	RandStringFunc func(s int) (string, error)
}

func NewSessions(ttl time.Duration, redisClient *redis.Client) *Sessions {
	return &Sessions{
		ttl:            ttl,
		redisClient:    redisClient,
		RandStringFunc: pkg.GenerateRandomString,
	}
}

func (s *Sessions) Create(ctx context.Context, userID string) (string, error) {
	token, err := s.RandStringFunc(30)
	if err != nil {
		return "", err
	}

	if err := s.redisClient.Set(ctx, sessionKeyPrefix+token, userID, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}
	if err := s.redisClient.SAdd(ctx, tokensSetKey, token).Err(); err != nil {
		return "", fmt.Errorf("add session to list: %w", err)
	}
	if err := s.redisClient.SAdd(ctx, userSessionKeyPrefix+userID, token).Err(); err != nil {
		return "", fmt.Errorf("add session to user list: %w", err)
	}

	return token, nil
}

func (s *Sessions) Resolve(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", ErrInvalidSession
	}

	userID, err := s.redisClient.Get(ctx, sessionKeyPrefix+token).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrInvalidSession
		}
		return "", err
	}
	if userID == "" {
		return "", ErrInvalidSession
	}

	return userID, nil
}

func (s *Sessions) Revoke(ctx context.Context, token string) error {
	userID, err := s.Resolve(ctx, token)
	if err != nil {
		return err
	}

	if err := s.redisClient.Del(ctx, sessionKeyPrefix+token).Err(); err != nil {
		return err
	}
	if err := s.redisClient.SRem(ctx, tokensSetKey, token).Err(); err != nil {
		return err
	}
	return s.redisClient.SRem(ctx, userSessionKeyPrefix+userID, token).Err()
}

// RevokeAll drops every session of the user, used on account deletion.
func (s *Sessions) RevokeAll(ctx context.Context, userID string) error {
	userSetKey := userSessionKeyPrefix + userID
	tokens, err := s.redisClient.SMembers(ctx, userSetKey).Result()
	if err != nil {
		return err
	}

	for _, token := range tokens {
		if err := s.redisClient.Del(ctx, sessionKeyPrefix+token).Err(); err != nil {
			return err
		}
		if err := s.redisClient.SRem(ctx, tokensSetKey, token).Err(); err != nil {
			return err
		}
	}

	return s.redisClient.Del(ctx, userSetKey).Err()
}

// ScanAndClean drops the tokens whose session key already expired from the sessions list
func (s *Sessions) ScanAndClean(ctx context.Context) {
	tokens, err := s.redisClient.SMembers(ctx, tokensSetKey).Result()
	if err != nil {
		log.Errorf("!!! sessions, scan and clean, get sessions: %s", err)
		return
	}
	if len(tokens) == 0 {
		log.Debugln("=> sessions, scan and clean abort, no sessions")
		return
	}

	log.Debugf("=> sessions, scan and clean [%d sessions] start ...", len(tokens))
	cleaned := 0
	for _, token := range tokens {
		err := s.redisClient.Get(ctx, sessionKeyPrefix+token).Err()
		if err == nil {
			continue
		}
		if !errors.Is(err, redis.Nil) {
			log.Errorf("=> sessions, scan and clean token %s: %s", token, err)
			continue
		}

		if err := s.redisClient.SRem(ctx, tokensSetKey, token).Err(); err != nil {
			log.Errorf("=> sessions, clean token %s: %s", token, err)
			continue
		}
		cleaned++
	}
	log.Debugf("=> sessions, scan and clean done, %d expired tokens removed", cleaned)
}
