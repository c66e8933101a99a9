package storage

import (
	"context"
	"fmt"
)

// Open returns the backend named by typ. The returned close function
// releases backend connections and is never nil.
func Open(ctx context.Context, typ StorageType, basePath string, redisCfg RedisConfig) (Storage, func() error, error) {
	switch typ {
	case StorageTypeLocal, "":
		s, err := NewLocalStorage(basePath)
		if err != nil {
			return nil, nil, err
		}
		return s, func() error { return nil }, nil
	case StorageTypeRedis:
		s, err := NewRedisStorage(ctx, redisCfg)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage type %q", typ)
	}
}
