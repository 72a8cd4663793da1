package tokenstore

// NewStore creates a Store for the given driver type.
// The file driver requires WithFilePath; the redis driver requires WithRedisClient.
func NewStore(storeType StoreType, opts ...StoreOption) (Store, error) {
	cfg := &storeConfig{
		keyPrefix:  defaultKeyPrefix,
		bufferSize: defaultBufferSize,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	switch storeType {
	case StoreTypeMemory:
		return NewMemoryStore(cfg.bufferSize), nil

	case StoreTypeFile:
		if cfg.filePath == "" {
			return nil, ErrInvalidConfig
		}
		return NewFileStore(cfg.filePath, cfg.bufferSize), nil

	case StoreTypeRedis:
		if cfg.redisClient == nil {
			return nil, ErrInvalidConfig
		}
		store, err := NewRedisStore(cfg.redisClient, cfg.keyPrefix, cfg.ttl, cfg.bufferSize)
		if err != nil {
			return nil, err
		}
		return store, nil

	default:
		return nil, ErrInvalidStoreType
	}
}
