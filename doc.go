// Package backend provides the VideoTube API server.

// This package contains the main application entry point. The actual API
// documentation is organized into subpackages:

// - internal/handlers: HTTP request handlers for all API endpoints
// - internal/models: Data models and database schemas
// - internal/auth: Registration, login, and the JWT token lifecycle
// - internal/social: Like and subscription toggle semantics
// - internal/storage: File storage (S3) operations
// - internal/database: Database connection and migrations
// - internal/middleware: HTTP middleware (auth gate, rate limiting, metrics)
// - internal/cache: Redis client used by the rate limiter
// - internal/metrics: Prometheus metric definitions
// - internal/seed: Development and test data seeding

// See the individual package documentation for detailed API reference.
package backend
