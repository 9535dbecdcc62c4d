// Package retry retries database connection attempts that fail for transient
// reasons, waiting with exponential backoff between attempts.
//
//	executor := retry.NewExecutor(retry.NewPostgreSQLErrorClassifier(), retry.NewExponentialBackoff(3))
//	err := executor.Execute(ctx, func(ctx context.Context) error {
//	    return pool.Ping(ctx)
//	})
//
// Only connection setup is retried. SQL file execution is never retried: a
// failed file is rolled back and the run stops.
package retry
