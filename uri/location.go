package uri

import (
	"os"
	"path/filepath"
	"strings"
)

// LocationProvider reports the current location of the host,
// e.g. the address of the page being displayed.
// It is consulted on every call that needs it and never cached.
type LocationProvider interface {
	Location() string
}

//go:generate go tool mockgen -destination=../internal/testutil/locmock/location.go -package=locmock . LocationProvider

// LocationFunc adapts a function to [LocationProvider].
type LocationFunc func() string

func (f LocationFunc) Location() string { return f() }

// StaticLocation is a fixed location.
type StaticLocation string

func (l StaticLocation) Location() string { return string(l) }

// RootLocation is used when no [LocationProvider] is configured.
const RootLocation StaticLocation = "/"

// WorkingDirLocation returns a provider reporting the process working directory
// as a "file://" URL with a trailing slash.
// It falls back to [RootLocation] when the directory is unavailable.
func WorkingDirLocation() LocationProvider {
	return LocationFunc(func() string {
		wd, err := os.Getwd()
		if err != nil {
			return RootLocation.Location()
		}
		p := filepath.ToSlash(wd)
		if !strings.HasPrefix(p, "/") {
			p = "/" + p
		}
		if !strings.HasSuffix(p, "/") {
			p += "/"
		}
		return "file://" + p
	})
}
