// © 2024 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

// Package version contains version information that is set at build time.
package version

import (
	"runtime"
)

// Version is the canonical version of the compiler.
var Version = "0.1.0-dev"

// GoVersion is the version of Go this was built with.
var GoVersion = runtime.Version()

// Platform is the runtime OS and architecture of this binary.
var Platform = runtime.GOOS + "/" + runtime.GOARCH

// Additional build information displayed by the version command. These are
// empty unless set through -ldflags at build time.
var (
	Vcs       = ""
	Timestamp = ""
)
