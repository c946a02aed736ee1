// Package buildinfo reports the linearcli version and the VCS and
// toolchain details embedded by the Go linker.
//
// Version can be overridden at link time:
//
//	go build -ldflags "-X github.com/yndnr/linearcli/internal/infra/buildinfo.Version=1.0.1"
package buildinfo
