// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package main

import (
	"regexp"
	"runtime"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/weavelang/weave/compiler"
)

// Typed flag wrappers, grounded on the JobsFlag/FilterFlag shape in
// Tosca's go/ct/driver/cli/flags.go: each flag is a small struct embedding
// the urfave/cli flag type plus a Fetch method that reads it back out of a
// *cli.Context with the right Go type.

type stdlibFlagType struct {
	cli.StringFlag
}

var StdlibFlag = &stdlibFlagType{
	cli.StringFlag{
		Name:    "stdlib",
		Usage:   "path to the standard-library root",
		EnvVars: []string{compiler.StdlibRootEnvVar},
	},
}

func (f *stdlibFlagType) Fetch(ctx *cli.Context) string {
	return ctx.String(f.Name)
}

type ffiManifestFlagType struct {
	cli.StringFlag
}

var FfiManifestFlag = &ffiManifestFlagType{
	cli.StringFlag{
		Name:      "ffi-manifest",
		Usage:     "path to an FFI manifest file",
		TakesFile: true,
	},
}

func (f *ffiManifestFlagType) Fetch(ctx *cli.Context) string {
	return ctx.String(f.Name)
}

type jobsFlagType struct {
	cli.IntFlag
}

var JobsFlag = &jobsFlagType{
	cli.IntFlag{
		Name:    "jobs",
		Aliases: []string{"j"},
		Usage:   "number of strand-execution workers",
		Value:   runtime.NumCPU(),
	},
}

func (f *jobsFlagType) Fetch(ctx *cli.Context) int {
	return ctx.Int(f.Name)
}

type progressFlagType struct {
	cli.DurationFlag
}

// ProgressFlag enables periodic "N strands spawned" reporting on stderr,
// the driver-level exposure of sched.ProgressReporter (grounded on the same
// ticker-reporter idiom as the reporter itself). A zero duration (the
// default) disables it.
var ProgressFlag = &progressFlagType{
	cli.DurationFlag{
		Name:  "progress",
		Usage: "report strand-spawn progress on stderr every interval (0 disables)",
		Value: 0,
	},
}

func (f *progressFlagType) Fetch(ctx *cli.Context) time.Duration {
	return ctx.Duration(f.Name)
}

type filterFlagType struct {
	cli.StringFlag
}

var FilterFlag = &filterFlagType{
	cli.StringFlag{
		Name:    "filter",
		Aliases: []string{"f"},
		Usage:   "report only words whose name matches the given regex",
		Value:   ".*",
	},
}

func (f *filterFlagType) Fetch(ctx *cli.Context) (*regexp.Regexp, error) {
	return regexp.Compile(ctx.String(f.Name))
}

func optionsFromFlags(ctx *cli.Context) compiler.Options {
	return compiler.Options{
		StdlibRoot:      StdlibFlag.Fetch(ctx),
		FfiManifestPath: FfiManifestFlag.Fetch(ctx),
	}
}
