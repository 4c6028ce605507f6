// Package ledger holds the storage-free rules of the personal ledger: money
// arithmetic, input validation, balance aggregation, the monthly category
// summary, planner payments and transfer legs.
//
// Everything here is deterministic and works on in-memory values, so the
// services re-run it on every change instead of keeping running totals.
package ledger
