// Package confloader loads layered configuration with koanf.
//
// Sources, highest priority first:
//
//  1. Overrides (command-line flags the user actually set)
//  2. Environment variables (HASHGEN_ prefix)
//  3. YAML configuration file
//  4. Defaults (whatever the target struct holds before loading)
//
// Keys are lower snake case. Nested sections are joined with ".", so
// record.nonce_size is read from HASHGEN_RECORD_NONCE_SIZE once "record"
// is registered with WithEnvSections.
package confloader
