// Package kernel provides the value objects shared by every aggregate of the
// ordering domain.
//
// The package includes:
//   - UUID: identifiers for orders, restaurants and menu items
//   - Money: exact non-negative amounts with two minor-unit digits
//   - Region: the geographic partition used for visibility scoping
//
// All value objects are immutable and their zero values fail validation.
package kernel
