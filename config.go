package execcache

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/lumenforge/execcache/internal/boundedcache"
)

// Config configures the three size-bounded sub-caches (packages, markers,
// transaction-objects). The object sub-cache and the effects/digest/
// pending triad are manually evicted and have no capacity knobs of their
// own (spec §4.1, §4.5).
type Config struct {
	Packages         boundedcache.Config
	Markers          boundedcache.Config
	TransactionObjects boundedcache.Config
}

// DefaultConfig returns the spec's target sizing (§4.2: 10,000-entry,
// approximate-LRU bounded sub-caches) for all three bounded sub-caches.
func DefaultConfig() Config {
	return Config{
		Packages:           boundedcache.DefaultConfig(),
		Markers:            boundedcache.DefaultConfig(),
		TransactionObjects: boundedcache.DefaultConfig(),
	}
}

// Validate checks all three bounded-cache configs.
func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Packages),
		validation.Field(&c.Markers),
		validation.Field(&c.TransactionObjects),
	)
}
