package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const accessTokenKeyPrefix = "access_token"

// TokenStore is the revocation registry for issued access tokens. A token is
// valid only while its key exists in Redis; logout deletes the key, and the
// TTL matches the JWT expiry so abandoned sessions clean themselves up.
type TokenStore interface {
	Store(ctx context.Context, userID uuid.UUID, tokenID string, ttl time.Duration) error
	IsActive(ctx context.Context, userID uuid.UUID, tokenID string) (bool, error)
	Revoke(ctx context.Context, userID uuid.UUID, tokenID string) error
}

type tokenStore struct {
	client *redis.Client
	log    *logrus.Logger
}

func NewTokenStore(client *redis.Client, log *logrus.Logger) TokenStore {
	return &tokenStore{client: client, log: log}
}

func accessTokenKey(userID uuid.UUID, tokenID string) string {
	return fmt.Sprintf("%s:%s:%s", accessTokenKeyPrefix, userID, tokenID)
}

func (s *tokenStore) Store(ctx context.Context, userID uuid.UUID, tokenID string, ttl time.Duration) error {
	if err := s.client.Set(ctx, accessTokenKey(userID, tokenID), "1", ttl).Err(); err != nil {
		s.log.Warnf("Failed to store access token: %+v", err)
		return err
	}
	return nil
}

func (s *tokenStore) IsActive(ctx context.Context, userID uuid.UUID, tokenID string) (bool, error) {
	err := s.client.Get(ctx, accessTokenKey(userID, tokenID)).Err()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		s.log.Warnf("Failed to check access token: %+v", err)
		return false, err
	}
	return true, nil
}

func (s *tokenStore) Revoke(ctx context.Context, userID uuid.UUID, tokenID string) error {
	if err := s.client.Del(ctx, accessTokenKey(userID, tokenID)).Err(); err != nil {
		s.log.Warnf("Failed to revoke access token: %+v", err)
		return err
	}
	return nil
}
