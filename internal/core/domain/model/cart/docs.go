// Package cart models the shopping cart of an anonymous shopper.
//
// A cart is addressed by a session key kept in the shopper's HTTP session. Only one
// ACTIVE cart is used per key; checkout completes it and a sweeper abandons carts
// that sit idle. Line items reference product variants and carry a snapshot of the
// variant's price and stock as loaded with the cart, which is what stock checks run
// against.
package cart
