// Package catalog models the read-only side of restaurant catalogs: which
// restaurant belongs to which region and what each menu item costs now.
//
// Catalog mutation is owned by catalog management; the ordering domain only
// reads MenuItem prices to snapshot them into orders.
package catalog
