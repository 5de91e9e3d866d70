// Package health provides HTTP handlers for liveness and readiness probes.
//
// [LivenessHandler] always answers OK and only signals that the process is
// running. [ReadinessHandler] runs a set of named [Checks] in parallel and
// answers 503 if any of them fail.
//
// The app mounts both automatically when configured with health checks:
//
//	app := anvil.New(
//	    anvil.WithHealthChecks(
//	        anvil.WithReadinessCheck("database", db.Healthcheck(conn)),
//	    ),
//	)
//
// Handlers are plain http.HandlerFunc values and can also be mounted on any
// mux directly. Responses are plain text by default; clients get JSON by
// sending Accept: application/json or ?format=json:
//
//	{"status":"unhealthy","checks":{"database":{"status":"unhealthy","error":"connection refused"}}}
//
// Checks share a single timeout, 5 seconds unless overridden with
// [WithTimeout]. Failed checks are logged through the logger passed via
// [WithLogger].
package health
