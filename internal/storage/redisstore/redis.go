// Package redisstore хранит ключи сессии в redis.
package redisstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/magabrotheeeer/fitplanhub/internal/config"
)

// Store хранилище ключей сессии в redis. Ключи хранятся без TTL:
// клиент не управляет сроком жизни токена.
type Store struct {
	Db     *redis.Client
	prefix string
}

// New подключается к redis и проверяет соединение.
func New(ctx context.Context, cfg config.RedisConnection, prefix string) (*Store, error) {
	const op = "redisstore.New"
	db := redis.NewClient(&redis.Options{
		Addr:         cfg.AddressRedis,
		Password:     cfg.Password,
		DB:           cfg.DB,
		Username:     cfg.User,
		MaxRetries:   cfg.MaxRetries,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.TimeoutRedis,
		WriteTimeout: cfg.TimeoutRedis,
	})

	if err := db.Ping(ctx).Err(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Store{Db: db, prefix: prefix}, nil
}

// Get возвращает значение ключа; found=false, если ключа нет.
func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	const op = "redisstore.Get"
	val, err := s.Db.Get(ctx, s.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("%s: %w", op, err)
	}
	return val, true, nil
}

// Set сохраняет значение ключа.
func (s *Store) Set(ctx context.Context, key, value string) error {
	const op = "redisstore.Set"
	if err := s.Db.Set(ctx, s.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Delete удаляет ключ. Отсутствие ключа ошибкой не считается.
func (s *Store) Delete(ctx context.Context, key string) error {
	const op = "redisstore.Delete"
	if err := s.Db.Del(ctx, s.prefix+key).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Close закрывает соединение.
func (s *Store) Close() error {
	return s.Db.Close()
}
