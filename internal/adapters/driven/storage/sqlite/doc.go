// Package sqlite provides the SQLite-based implementation of driven.InspectionStore.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation. The nested inspection graph is mapped onto
// four tables linked by cascading foreign keys:
//
//   - inspections: header fields, completion flag and the redundant conformity percentage
//   - inspection_items: checklist categories
//   - inspection_questions: question text and the tri-state is_conform column
//   - photos: evidence references for answered questions
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
//
// # Data Location
//
// By default, the database is stored at ~/.equipcheck/data/inspections.db
//
// # Known Gaps
//
// Answer timestamps are not stored. A reloaded answer is stamped with the load time.
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking provided
// by SQLite in WAL mode. Each inspection save or delete runs in one transaction.
package sqlite
