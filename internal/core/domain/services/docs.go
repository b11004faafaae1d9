// Package services holds domain logic that spans aggregates or produces read-side
// shapes from them:
//   - category tree assembly from flat rows
//   - SEO metadata for products and categories
//   - catalogue feed rows for Meta commerce
//   - absolute URL building for frontend pages and media
//
// Everything here is pure: no I/O, no clocks, no persistence.
package services
