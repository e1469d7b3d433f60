// Package services provides domain services that evaluate business rules
// spanning the identity, catalog and order models.
//
// The package includes:
//   - AccessPolicy: the pure authorization scoper deciding who may see and
//     mutate which order, and the visibility filters used by list queries
//   - OrderPricer: the pricing engine turning requested lines and catalog
//     entries into frozen item snapshots and an exact total
//
// Neither service performs I/O; use case handlers load the data and pass it in.
package services
