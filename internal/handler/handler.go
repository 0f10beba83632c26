// Package handler is the first layer. The first entry point
// for business logic after the router.
//
// It reads query parameters, validates them with the
// validation package, and calls the service layer.
package handler
