// Package kernel holds the value objects shared by the storefront aggregates:
// identifiers (UUID), money in minor units, e-mail addresses, supported shipping
// countries and URL slugs.
//
// Values are immutable and validated on construction, so an aggregate holding a
// kernel value can rely on it without re-checking.
package kernel
