// Package domain defines the core data model of the hashgen pipeline.
//
// Domain values are plain byte containers without any IO dependencies:
//
//   - Layout: token, digest and record sizes
//   - Tokens: the flat arena of random tokens produced by the generator
//   - Pair: a (digest, token) tuple produced by the hasher
//   - Errors: coded pipeline errors
//
// Records are serialized as digest bytes followed by token bytes with
// no framing, so a file of n records is exactly n*RecordSize bytes.
package domain
