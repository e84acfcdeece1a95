// Package persistence provides the shared on-disk plumbing for container
// files: atomic whole-file replacement via tmp+rename, buffered loading, and
// CRC32 integrity checking.
//
// Both container files (vectors and metadata) are rewritten in full on every
// mutation; SaveToFile guarantees readers never observe a partially written
// file. Corruption is detected on read and reported, never repaired.
package persistence
