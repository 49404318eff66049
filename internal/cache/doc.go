// Package cache implements the two advisory cache tiers in front of the
// persistent store.
//
// [LRU] is the in-process result cache for catalog lookups: bounded, keyed by
// normalized query, safe for concurrent use. [LikesCache] is the distributed
// write-behind tier holding each user's liked-song ID list in Redis with an
// expiry.
//
// Both tiers are strictly subordinate to SQLite: a stale or absent entry may
// make a request slower, never incorrect.
package cache
