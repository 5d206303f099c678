// Package api implements the HTTP handlers of the matching service. The
// transport layer is deliberately thin: handlers decode and validate
// requests, call into the service layer, and map errors to status codes.
// No business rule lives here.
package api
