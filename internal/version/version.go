// Package version holds the build version of mf.
package version

// Version is overridden at build time with
//
//	-ldflags "-X github.com/ndewijer/mutualfund-tracker/internal/version.Version=v1.2.3"
var Version = "dev"
