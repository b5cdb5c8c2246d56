// Package common contains shared constants and sentinel errors used across
// visadesk client components.
package common

const (
	// TokenStorageKey and UserStorageKey are the two entries kept in the
	// durable credential store. They are always written and cleared together.
	TokenStorageKey = "token"
	UserStorageKey  = "user"

	// AuthorizationHeader carries the bearer credential on outbound requests.
	AuthorizationHeader = "Authorization"

	// RequestIDHeader carries a client-generated id for tracing.
	RequestIDHeader = "X-Request-Id"
)
