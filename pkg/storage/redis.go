package storage

import (
	"fmt"

	"github.com/go-redis/redis"
)

// NewRedis connects to the redis instance backing the refresh token
// allow-list and verifies the connection with a ping.
func NewRedis(host string, port int, password string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", host, port),
		Password: password,
		DB:       0,
	})

	if _, err := client.Ping().Result(); err != nil {
		return nil, fmt.Errorf("failed to ping redis: %v", err)
	}

	return client, nil
}
