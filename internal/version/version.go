// Package version reports the vercheck build version.
package version

import "runtime/debug"

// version is set at build time with -ldflags "-X github.com/indaco/vercheck/internal/version.version=1.0.0".
var version = ""

// readBuildInfo is swapped in tests.
var readBuildInfo = debug.ReadBuildInfo

// GetVersion returns the linker-provided version, then the module version, then "dev".
func GetVersion() string {
	if version != "" {
		return version
	}
	if info, ok := readBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return "dev"
}
