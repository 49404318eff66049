// Package models defines domain entities and persistence interfaces for the mixtape suggestion service.
//
// The package contains two categories of types:
//
// 1. Data Transfer Objects (DTOs): Lightweight structs passed between engine components
//   - [Suggestion] : A ranked recommendation with provenance (never persisted)
//   - [LikedSongRecord] : A liked song joined with its metadata for read endpoints
//   - [Neighbor] : A user sharing liked songs with a target user, with overlap count
//
// 2. Persistent Entities: Database-backed models with full lifecycle management
//   - [User] : Service users keyed by an opaque external identifier
//   - [SongMetadata] : Catalog reference data shared across users
//   - [LikedSong] : The (user, song) association at the core of user preferences
//
// Persistent entities implement the Model interface providing ID generation, timestamps, and validation.
package models
