package threadpool

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	gferrors "github.com/vnykmshr/thpool/pkg/common/errors"
	"github.com/vnykmshr/thpool/pkg/metrics"
)

// NewWithMetrics creates a pool whose metrics are registered on reg under
// the given name. A nil reg uses a fresh private registry.
func NewWithMetrics(workerCount int, name string, reg prometheus.Registerer) (*Pool, error) {
	if reg == nil {
		// Use a separate registry for each metrics-enabled pool to avoid conflicts
		reg = prometheus.NewRegistry()
	}
	cfg := DefaultConfig()
	cfg.WorkerCount = workerCount
	cfg.Name = name

	mcfg := metrics.DefaultConfig()
	mcfg.Registry = reg
	return NewWithConfigAndMetrics(cfg, mcfg)
}

// NewWithConfigAndMetrics creates a pool from config and instruments it as
// described by metricsConfig. Hooks already present in config still run.
// Destroy unregisters the pool's metrics, so the name can be reused.
func NewWithConfigAndMetrics(config Config, metricsConfig metrics.Config) (*Pool, error) {
	if !metricsConfig.Enabled {
		return NewWithConfig(config)
	}

	if config.Name == "" {
		config.Name = generateName()
	}
	name := config.Name
	registry, err := metrics.NewRegistryFromConfig(metricsConfig)
	if err != nil {
		return nil, gferrors.NewOperationError(module, "NewWithMetrics", err).
			WithContext("pool " + name)
	}

	userComplete := config.OnTaskComplete
	config.OnTaskComplete = func(workerID int, d time.Duration, panicked bool) {
		registry.ObserveTask(name, d.Seconds(), panicked)
		if userComplete != nil {
			userComplete(workerID, d, panicked)
		}
	}

	p, err := NewWithConfig(config)
	if err != nil {
		return nil, err
	}

	unregister, err := registry.RegisterPool(name, p)
	if err != nil {
		p.Destroy()
		return nil, gferrors.NewOperationError(module, "NewWithMetrics", err).
			WithContext("pool " + name)
	}
	p.onDestroy(unregister)
	return p, nil
}
