// Package snapshot persists encoded state snapshots under string keys.
//
// A component host saves a snapshot after every applied update and restores
// it when the component is created again. Snapshots are JSON compressed with
// zstd; see Encode and Decode.
//
// Stores:
//   - MemoryStore keeps snapshots in process memory.
//   - BoltStore keeps them in a local bbolt database file.
//   - S3Store keeps them as objects in an S3 bucket.
package snapshot
