/*
Package thpool provides a fixed-size worker pool for Go applications.

Packages:
  - pkg/threadpool: the pool (create, submit, destroy)
  - pkg/metrics: Prometheus instrumentation for pools
  - pkg/common/errors: shared error values
  - pkg/common/validation: argument checks

Example usage:

	import "github.com/vnykmshr/thpool/pkg/threadpool"

	pool, err := threadpool.New(5) // 5 workers
	if err != nil {
		return err
	}
	defer pool.Destroy()

	pool.Submit(func() { process(item) })
*/
package thpool
