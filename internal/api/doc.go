// Package api translates HTTP requests into list, task, invite and push-token
// operations and renders their results. Every failure goes through
// HandleAPIError, which owns the mapping from domain error kind to HTTP
// status and client-safe message.
package api
