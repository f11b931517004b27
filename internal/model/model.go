// Package model defines data structures for vocab-sync.
//
// This package contains:
//   - Request/Response: the versioned envelope exchanged with the note service
//   - Note: flashcard note submitted to a deck
//   - Entry/Table: spreadsheet rows with blank cells normalized to nil
//   - Lookup: dictionary lookup result
//   - SyncRun: ledger record of one sync run
//   - Config: application configuration
package model
