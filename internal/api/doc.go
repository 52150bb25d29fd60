// Package api handles incoming HTTP requests, routing, request validation,
// and response formatting. It acts as an adapter between external clients
// and the review and quiz services, translating HTTP concerns to
// business operations.
//
// All routes under /api require a bearer token whose subject is the learner
// ID. Errors are mapped to status codes in one place (MapErrorToStatusCode)
// and returned as {"error": ..., "trace_id": ...}.
package api
