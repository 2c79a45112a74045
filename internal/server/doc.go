// Package server provides the HTTP server for async-services.
//
// The server uses the Gin web framework. The API lives under /api/v1 and an
// unauthenticated /health endpoint is served at the root.
//
// # Architecture Overview
//
//	┌───────────────────────────────────────────────────────────────┐
//	│                         HTTP Server                           │
//	├───────────────────────────────────────────────────────────────┤
//	│                       Middleware Stack                        │
//	│  ┌─────────────────────────────────────────────────────────┐  │
//	│  │  Logger (request/response logging)                      │  │
//	│  │  Recovery (panic recovery with zap logging)             │  │
//	│  └─────────────────────────────────────────────────────────┘  │
//	├───────────────────────────────────────────────────────────────┤
//	│  GET /health                                                  │
//	├───────────────────────────────────────────────────────────────┤
//	│                       Router (/api/v1)                        │
//	│  ┌─────────────────────────────────────────────────────────┐  │
//	│  │  RateLimit (token bucket, 429)     if RateLimit > 0     │  │
//	│  │  Auth (HS256 bearer token, 401)    if Auth.Enabled      │  │
//	│  │  Handlers (registered via callback)                     │  │
//	│  └─────────────────────────────────────────────────────────┘  │
//	└───────────────────────────────────────────────────────────────┘
//
// # Server Modes
//
// Development Mode (ServerMode = "dev"): Gin runs in debug mode.
//
// Production Mode (ServerMode = "prod"): Gin runs in release mode.
//
// # Server Lifecycle
//
// Creation:
//
//	srv, err := server.NewServer(cfg, func(router *gin.RouterGroup) {
//	    v1.RegisterHandlers(router, handler)
//	})
//
// Starting blocks until error or shutdown:
//
//	err := srv.Start(ctx)
//
// Stopping performs a graceful shutdown, waiting for in-flight requests:
//
//	srv.Stop(ctx)
//
// # Middleware
//
// Logger (middlewares.Logger) logs request start at debug and request end
// at info with status and latency on the "http" logger. Gin errors attached
// to the context are logged at error instead.
//
// Recovery (ginzap.RecoveryWithZap) recovers handler panics, logs them with
// the stack and answers 500.
//
// RateLimit (middlewares.RateLimit) shares one token bucket between all
// clients of the API group and answers 429 with a Retry-After header.
//
// Auth (middlewares.Auth) requires "Authorization: Bearer <token>" where the
// token is a HS256 JWT signed with Auth.Secret and carrying an expiration.
// The subject is stored in the gin context under middlewares.SubjectKey.
// Tokens can be minted with middlewares.GenerateToken or the CLI:
//
//	async-services token --subject ci --ttl 24h
//
// Unknown routes under /api return {"error": "not found"} with 404.
package server
