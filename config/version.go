//-----------------------------------------------------------------------------
// Copyright (c) 2024-present Detlef Stern
//
// This file is part of Blockmark.
//
// Blockmark is licensed under the latest version of the EUPL (European Union
// Public License). Please see file LICENSE.txt for your rights and obligations
// under this license.
//-----------------------------------------------------------------------------

package config

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Version describes the running program.
type Version struct {
	Prog      string // Name of the program
	Build     string // Version given at build time, or module version
	GoVersion string
	Platform  string // GOOS/GOARCH
}

var version = Version{Prog: "blockmark", Build: "unknown"}

// SetupVersion initializes the version data. Without a build version, the
// version of the main module is used, if the binary carries build info.
func SetupVersion(progName, buildVersion string) {
	version = Version{
		Prog:      progName,
		Build:     buildVersion,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
	if version.Build == "" {
		version.Build = "unknown"
		if bi, ok := debug.ReadBuildInfo(); ok && bi.Main.Version != "" {
			version.Build = bi.Main.Version
		}
	}
}

// GetVersion returns the current software version data.
func GetVersion() Version { return version }

func (v Version) String() string {
	return fmt.Sprintf("%s %s (%s, %s)", v.Prog, v.Build, v.GoVersion, v.Platform)
}
