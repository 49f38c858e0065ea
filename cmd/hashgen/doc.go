// Package main provides the entry point for hashgen.
//
// hashgen benchmarks a four-stage record pipeline: random token
// generation, parallel digesting, parallel sorting by digest and a
// chunked parallel write merged into one file. Each stage finishes
// before the next one starts and is timed on its own.
//
// Usage:
//
//	hashgen -f plot.bin -s 1024 -t 8 -o 8 -i 4 -m 2048
//	hashgen --format json run -f plot.bin -s 64 --algorithm xxhash --hash-size 8
//	hashgen verify --digests plot.bin
//	hashgen --history-dir ./runs history list
//
// Configuration is read from flags, HASHGEN_* environment variables and
// an optional YAML file, in that order of precedence.
package main
