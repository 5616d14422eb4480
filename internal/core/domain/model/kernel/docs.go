// Package kernel provides the shared value objects of the marketplace domain model.
//
// The package includes:
//   - UUID: identifier value object wrapping github.com/google/uuid
//   - Money: non-negative monetary amount with cent precision, backed by
//     github.com/shopspring/decimal so that sums and products never lose precision
//
// Values are immutable and safe for concurrent use.
package kernel
