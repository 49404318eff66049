// Package repositories implements SQLite persistence for all domain entities.
//
// The repositories expose the narrow contracts the suggestion engine consumes:
// the engine never issues ad-hoc queries itself, only calls these methods,
// which return plain immutable records.
//
// Key Implementations:
//   - [UserRepository] : get-or-create users, idempotent like recording, neighbor discovery
//   - [SongRepository] : catalog metadata caching, liked-song joins, candidate pools
//
// Sequence numbers provide stable, human-readable ordering (e.g., user #42, song #15)
// independent of UUIDs and creation timestamps. The [NextSequence] function atomically
// increments per-table sequence counters in dedicated sequence tables.
package repositories
