// Package server provides the browser front end of the estimator: an HTML
// form, a JSON API, health and Prometheus endpoints.
//
// Routes:
//
//	GET /              HTML calculator (query parameters recompute the result)
//	GET /api/estimate  JSON result for population, sample, percent and level
//	GET /metrics       Prometheus metrics
//	GET /healthz       liveness probe
//
// Every estimate runs inside an OpenTelemetry span named "estimate".
package server
