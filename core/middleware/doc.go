// Package middleware contains HTTP middleware for the Fiber application.
//
// It provides cross-cutting concerns that sit between the request and the handler.
//
// # Components
//
//   - Auth: validates bearer access tokens and guards routes by role.
//   - RayID: tags every incoming request with a unique Request ID (RayID),
//     injecting it into the context and response headers for tracing.
//
// RayID is registered globally; Auth is attached per route group by the
// features that need it.
package middleware
