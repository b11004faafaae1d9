// Package order provides the Order aggregate created at checkout.
//
// The package includes:
//   - Order: the aggregate root holding customer e-mail, addresses, item snapshots and
//     payment state
//   - Address: the shipping/billing value object
//   - Item: an immutable snapshot of a cart line taken at checkout
//   - Status: the fulfilment state machine
//   - Number: the human-facing order reference
//
// Key business rules:
//   - An order can only be created from a non-empty cart
//   - Billing defaults to a copy of the shipping address
//   - Marking an order paid is idempotent, so a repeated payment webhook has no effect
//   - Status changes follow the transition table in status.go
package order
