// Package config defines the hashgen benchmark configuration.
//
//   - spec.go: BenchConfig struct definition
//   - default.go: default values
//   - verify.go: validation, all problems reported together
//   - load.go: layered loading through internal/infra/confloader
package config
