// Package common contains shared constants, sentinel errors and small random
// helpers used by both the dashboard server and its CLI client.
package common

// AccessTokenHeaderName is the gRPC metadata key that carries the session
// token on authenticated calls.
const AccessTokenHeaderName = "access_token"

// SessionTokenBytes is the number of random bytes behind every session token.
// Tokens are hex encoded, so the string form is twice as long.
const SessionTokenBytes = 32
