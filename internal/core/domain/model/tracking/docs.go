// Package tracking models server-side conversion events (ViewContent, AddToCart,
// InitiateCheckout, Purchase) destined for the Meta Conversions API.
//
// Events are stored in an outbox and relayed asynchronously; a relay failure never
// affects the shopper request that produced the event.
package tracking
