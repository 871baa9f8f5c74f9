package cache

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisLedger marca envios já feitos com SETNX, compartilhado entre instâncias da API.
type RedisLedger struct {
	Client *redis.Client
}

func NewRedisLedger(redisURL string) (*RedisLedger, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	log.Println("[Redis] ✅ Connected to Redis")
	return &RedisLedger{Client: client}, nil
}

// Claim devolve true só para o primeiro que reivindicar a chave dentro do ttl.
func (r *RedisLedger) Claim(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	return r.Client.SetNX(ctx, "dispatch:"+key, time.Now().Unix(), ttl).Result()
}

func (r *RedisLedger) Close() {
	if r.Client != nil {
		r.Client.Close()
		log.Println("[Redis] Connection closed")
	}
}
