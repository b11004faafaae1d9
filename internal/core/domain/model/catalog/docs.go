// Package catalog models what the storefront sells.
//
// A Product belongs to a ProductType, which lists the Attributes every one of its
// Variants must carry. Variants are the purchasable units: each has a unique SKU,
// a price, optional compare-at price, stock and concrete attribute values checked
// against the type. Categories form a tree through parent references; products can
// sit in several categories at once.
package catalog
