// Packages lib acts as a library for modules that do not fit
// strictly into other layers.
//
// It contains shared formatting utilities and the Redis-backed
// rate limiter store.
package lib
