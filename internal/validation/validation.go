// Package validation turns raw query parameters into typed, range-checked
// request values.
//
// Each Validate* function runs its checks in a fixed order and stops at the
// first failure. A failure is always an *errs.HTTPError built with
// errs.ValidationError; its message is what the client receives.
package validation
