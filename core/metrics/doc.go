// Package metrics provides Prometheus instrumentation.
//
// Collectors are registered once on Registry at init. Features increment the
// domain counters directly; the HTTP histogram is fed by Middleware.
//
//	app.Use(metrics.Middleware())
//	app.Get("/metrics", metrics.Handler())
package metrics
