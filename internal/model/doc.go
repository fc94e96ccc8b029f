// Package model defines shared data types used across the price sync pipeline.
//
// Conventions:
//   - Dates: time.Time truncated to UTC midnight, no market timezone attached
//   - Prices: decimal for rounded closes, int64 num/denom for the exact
//     integer ratio stored in the prices table
//   - IDs: 32-char lowercase hex guids, matching the GnuCash schema
package model
