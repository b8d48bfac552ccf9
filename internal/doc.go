// Package internal documents the CropCraft site server internals.
//
// The internal tree is organized by responsibility:
// - api: HTTP handlers, middleware and routing
// - domain: users, hero, services and contacts business logic
// - storage: repositories for Postgres (pgx) and SQLite, plus migrations
// - email: contact notification delivery (Resend)
// - auth, config, metrics, telemetry, validation, sanitize: shared infrastructure
// - testauth: bearer tokens for tests and local tooling
//
// Code in internal/ is not meant for external import.
package internal
