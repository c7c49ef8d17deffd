// Package client contains client-side building blocks for Pustaka.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface) to talk to
//     the remote collection endpoint: FetchAll, Push, Ping.
//  2. A concrete HTTP implementation (see HTTPClient) for the single-URL
//     endpoint protocol: GET returns the collection as a JSON array, POST
//     accepts one {action, data} mutation. Read failures are classified into
//     common.ErrNetwork and common.ErrFormat; push outcomes are opaque by
//     design.
//  3. Local persistence bootstrap utilities (InitDatabase, RunMigrations) for
//     the CLI, wiring an SQLite database and applying embedded goose migrations.
//
// # Error Handling
//
// Common conditions are exposed as sentinel errors in internal/common that
// callers can match with errors.Is: ErrNetwork, ErrFormat.
//
// Concurrency & Contexts
//
// Implementations are safe for concurrent use. All operations accept
// context.Context and honor cancellation/timeouts.
package client
