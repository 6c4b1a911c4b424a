package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Config holds configuration for metrics collection.
type Config struct {
	// Enabled controls whether metrics collection is active.
	Enabled bool

	// Registry is the Prometheus registry to use. If nil, prometheus.DefaultRegisterer is used.
	Registry prometheus.Registerer

	// Namespace overrides the default "thpool" namespace for metrics.
	Namespace string
}

// DefaultConfig returns a default metrics configuration.
func DefaultConfig() Config {
	return Config{
		Enabled:   true,
		Registry:  prometheus.DefaultRegisterer,
		Namespace: DefaultNamespace,
	}
}

// NewRegistryFromConfig returns the registry described by c. A nil Registry
// selects prometheus.DefaultRegisterer; with the default namespace that is
// DefaultRegistry itself.
func NewRegistryFromConfig(c Config) (*Registry, error) {
	if c.Registry == nil {
		if c.Namespace == "" || c.Namespace == DefaultNamespace {
			return DefaultRegistry, nil
		}
		return NewRegistryWithNamespace(prometheus.DefaultRegisterer, c.Namespace)
	}
	return NewRegistryWithNamespace(c.Registry, c.Namespace)
}
