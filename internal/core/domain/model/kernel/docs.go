// Package kernel provides core domain primitives shared by the order model.
//
// The package includes:
//   - UUID: a value object for order and principal identifiers
//   - Money: a non-negative decimal amount rounded to cents
//
// Both are immutable and safe for concurrent use. Their zero values are invalid and
// are rejected by Validate.
package kernel
