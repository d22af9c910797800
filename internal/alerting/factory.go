package alerting

import (
	"fmt"

	"FlowScope/internal/config"
)

// NewStore creates the alert store backend named in the configuration.
func NewStore(cfg config.AlertingConfig) (Store, error) {
	switch cfg.StoreType {
	case "", "memory":
		return NewMemoryStore(cfg.Capacity), nil
	case "redis":
		return NewRedisStore(cfg.Redis, cfg.Capacity)
	default:
		return nil, fmt.Errorf("unknown alert store type: '%s'", cfg.StoreType)
	}
}
