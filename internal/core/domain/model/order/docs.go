// Package order provides the Order aggregate root of the ordering system and
// the value objects it owns.
//
// The package includes:
//   - Order: the aggregate root holding line items, total, region and status
//   - Status: the lifecycle state machine (PENDING -> PAID | CANCELLED)
//   - Item: an immutable priced line snapshot
//   - PaymentMethod: validated, masked payment details, at most one per order
//   - Scope: the visibility filter used by list queries
//   - Created and StatusChanged domain events
//
// Key business rules:
//   - TotalAmount is the exact sum of item price times quantity, fixed at creation
//   - Region is fixed at creation
//   - Nothing leaves PAID or CANCELLED
//   - Card numbers are masked before they reach the aggregate
package order
