package repository

import "context"

// CacheRepository stores serialized responses by key.
//
//go:generate mockgen -destination=mocks/mock_cache_repository.go -package=mocks -source=cache_repository.go CacheRepository
type CacheRepository interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key string, value string) error
}
