// Package store provides SQLite-backed storage for rendered query documents.
//
// Documents are content-addressed: the key is value.Fingerprint of the
// document, and the body is its canonical JSON. Saving the same document
// twice is a no-op, whatever name it is saved under the second time.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//
// Listing is deterministic: ORDER BY name, fingerprint COLLATE BINARY.
package store
