// Package domain contains the core entities and errors shared by every formship
// transport.
//
// This package represents the innermost layer of the Clean Architecture. It has
// no dependencies on infrastructure concerns (HTTP, sockets, file system, logging)
// and contains only the values that cross the transport boundary.
//
// # Entities
//
//   - [Parameter]: A named text value or file attachment submitted to an endpoint
//   - [TransportError]: Endpoint-class failure carrying the operation, URL and cause
//
// # Design Principles
//
// Domain values are:
//   - Immutable after construction
//   - Owned by the caller and never mutated by transports
//   - Free of infrastructure dependencies
package domain
