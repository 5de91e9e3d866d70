// Package redis provides Redis client utilities for applications using the
// Redis session store.
//
// This package wraps [github.com/redis/go-redis/v9] to provide connection
// pooling, health checks, and graceful shutdown with sensible defaults.
//
// # Usage
//
//	client, err := redis.Connect(ctx, redis.Config{
//	    URL: os.Getenv("REDIS_URL"),
//	})
//	if err != nil {
//	    return err
//	}
//
//	sessions := session.NewManager(session.NewRedisStore(client))
//
// Both redis:// and rediss:// (TLS) URL schemes are supported. Connect
// retries with progressive backoff, configurable through [Config].
//
// # Health Checks and Shutdown
//
// [Healthcheck] and [Shutdown] pair with the app's readiness checks and
// shutdown hooks:
//
//	app := anvil.New(
//	    anvil.WithHealthChecks(
//	        anvil.WithReadinessCheck("redis", redis.Healthcheck(client)),
//	    ),
//	)
//
//	err := app.Run(":8080", anvil.ShutdownHook(redis.Shutdown(client)))
//
// # Error Handling
//
// The package defines sentinel errors for common failure modes:
//
//   - [ErrEmptyConnectionURL] - Empty connection URL provided
//   - [ErrFailedToParseURL] - Invalid connection URL format or scheme
//   - [ErrConnectionFailed] - Connection failed after all retry attempts
//   - [ErrHealthcheckFailed] - Redis ping failed
//
// Errors are wrapped using [errors.Join] to preserve the original error context.
package redis
