// Package domain defines the core domain models for sesskv.
//
// Domain models are pure value objects and entities without any
// IO dependencies or framework coupling.
package domain
