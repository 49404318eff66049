// Package suggest implements the hybrid recommendation engine.
//
// [Engine] orchestrates a suggestion request end to end: seed titles are
// resolved against the catalog through the in-process result cache, the
// resolved likes are persisted, and recommendations come from
// [CollaborativeRecommender] first with [ContentRecommender] as the fallback.
// Collaborative filtering scores candidates by how many overlapping-taste
// neighbors like them; the content path ranks unseen catalog songs by TF-IDF
// cosine similarity against the user's liked songs, degrading to a popularity
// search when the user has no history.
package suggest
