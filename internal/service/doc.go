// Package service contains the application-specific use cases and business
// logic. It orchestrates interactions between domain objects and repositories
// (defined in internal/store) to fulfill application features.
//
// Services receive their dependencies through constructor injection and
// never depend on a specific infrastructure implementation. Expected
// conditions are reported with sentinel errors from the store and domain
// packages; everything else is wrapped in a service-specific error type so
// callers can use errors.Is and errors.As, and the API layer can map each
// kind to a status code.
package service
