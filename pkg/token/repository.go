package token

import (
	"fmt"
	"time"

	"github.com/go-redis/redis"
)

//goland:noinspection GoExportedFuncWithUnexportedType
func NewRepository(redisClient *redis.Client) *redisRepository {
	return &redisRepository{redisClient}
}

// redisRepository keeps an allow-list of refresh token ids. A refresh token
// which is no longer in the list can't be used to mint new tokens.
type redisRepository struct {
	redisClient *redis.Client
}

func (r redisRepository) SetRefreshToken(userId uint, tokenId string, expiresIn time.Duration) error {
	key := refreshTokenKey(userId, tokenId)
	if err := r.redisClient.Set(key, "0", expiresIn).Err(); err != nil {
		return fmt.Errorf("failed to set refresh token: %v", err)
	}
	return nil
}

func (r redisRepository) DeleteRefreshToken(userId uint, tokenId string) error {
	key := refreshTokenKey(userId, tokenId)
	deleted, err := r.redisClient.Del(key).Result()
	if err != nil {
		return fmt.Errorf("failed to delete refresh token: %v", err)
	}
	if deleted == 0 {
		return fmt.Errorf("refresh token not found: %s", key)
	}
	return nil
}

func (r redisRepository) DeleteRefreshTokens(userId uint) error {
	keys, err := r.redisClient.Keys(fmt.Sprintf("%d:*", userId)).Result()
	if err != nil {
		return fmt.Errorf("failed to list refresh tokens: %v", err)
	}
	if len(keys) == 0 {
		return nil
	}
	if err := r.redisClient.Del(keys...).Err(); err != nil {
		return fmt.Errorf("failed to delete refresh tokens: %v", err)
	}
	return nil
}

func refreshTokenKey(userId uint, tokenId string) string {
	return fmt.Sprintf("%d:%s", userId, tokenId)
}
