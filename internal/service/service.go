// Package service contains the business logic.
//
// It sits behind the handler layer. It receives validated values
// from the handler and performs the computations: numeric sum,
// shift cipher and lottery comparison. Nothing here fails on a
// value that passed validation.
package service
