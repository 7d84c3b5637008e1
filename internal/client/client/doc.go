// Package client talks to the dashboard server.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic contract (see the Client interface) with Status,
//     Signup, Login, Logout, ListApps and OpenApp.
//  2. A gRPC implementation (see GRPCClient) that manages a connection,
//     attaches the session token through an interceptor and maps gRPC status
//     codes to sentinel errors.
//
// # Error Handling
//
// Conditions are exposed as sentinel errors matched with errors.Is:
// ErrUnavailable, ErrUnauthorized, ErrSignupClosed, ErrAlreadyExists,
// ErrInvalidInput, ErrNotFound.
//
// Concurrency & Contexts
//
// GRPCClient is safe for concurrent use. All operations accept
// context.Context and honor cancellation.
package client
