// Package server is the HTTP layer of the dashboard.
//
// It exposes the Discord OAuth login flow, a JSON API for guilds and their
// child resources, and the health and metrics endpoints. Handlers return
// structured errors from internal/errors; the error middleware turns them
// into JSON responses and metrics.
package server
