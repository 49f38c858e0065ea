// Package buildinfo reports the version of the hashgen binary.
//
// Release builds inject values with ldflags:
//
//	go build -ldflags "-X github.com/yndnr/hashgen-go/internal/infra/buildinfo.Version=v1.0.0"
//
// Anything not injected is filled from the module and VCS data the Go
// toolchain embeds in the binary.
package buildinfo
