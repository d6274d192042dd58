// Package order provides domain entities and business logic for the order
// lifecycle in the shop. It implements the Order aggregate root with status
// state machines, fulfilment and payment ledgers, and discount records.
//
// The package includes:
//   - Order: The aggregate root owning lines, events, discounts, notes and the
//     append-only status change history
//   - Line: A single product line with its price snapshot and its own status
//   - Pipeline / Pipelines: Configurable status graphs injected at construction
//   - ShippingEvent / PaymentEvent: Ledgers of per-line quantity allocations
//   - Discount: Recorded benefit applications with offer/voucher snapshots
//
// Key business rules:
//   - Order and line statuses only move along the configured pipelines
//   - Entering a mapped order status cascades a line status to every line
//   - The cumulative quantity recorded for a line under one event type can
//     never exceed the line quantity
//   - Monetary totals are fixed at placement and never recomputed from lines
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
