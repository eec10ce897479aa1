// Package version exposes build information. Version is overridden at link
// time: go build -ldflags "-X github.com/inovacc/clockr/internal/version.Version=v1.2.3"
package version

var Version = "dev"
