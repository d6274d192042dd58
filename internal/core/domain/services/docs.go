// Package services provides domain services that orchestrate business operations
// across multiple domain entities in the order management system. It implements
// business workflows that don't naturally belong to a single aggregate root.
//
// The package includes:
//   - OrderVerifier: Issues and checks the tokens used by anonymous customers
//     to access their order status pages
//
// Domain services coordinate between aggregates, implementing business logic that
// spans multiple bounded contexts following Domain-Driven Design principles.
package services
