// Package ports defines the interfaces (ports) that connect the formship core to
// infrastructure adapters.
//
// # Port Interfaces
//
//   - [Transport]: Submits parameters to an endpoint and returns the response stream
//   - [Logger]: Structured logging abstraction
//   - [HTTPClient]: HTTP request abstraction for dependency injection
//
// # Usage
//
// The factory (internal/factory) returns [Transport] values backed by the
// adapters in internal/adapters. Callers depend only on these interfaces, which
// lets tests swap the network for the in-memory stub transport.
package ports
