// Package quote retrieves daily price series from the external quote source
// and normalizes them into calendar-dated closing prices.
//
// Retrieval is a single attempt per instrument: there is no retry or
// backoff, a failed fetch is surfaced to the caller and isolated there.
// A window with no quotable data is an empty series, not an error.
package quote
