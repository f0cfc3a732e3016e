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
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/weavelang/weave/abi"
	"github.com/weavelang/weave/pipeline"
	"github.com/weavelang/weave/sched"
)

var RunCmd = &cli.Command{
	Name:      "run",
	Usage:     "resolve includes, collision-check, and execute word main",
	ArgsUsage: "<root.seq>",
	Flags: []cli.Flag{
		&StdlibFlag.StringFlag,
		&FfiManifestFlag.StringFlag,
		&JobsFlag.IntFlag,
		&ProgressFlag.DurationFlag,
	},
	Action: doRun,
}

func doRun(ctx *cli.Context) error {
	root := ctx.Args().First()
	if root == "" {
		return fmt.Errorf("usage: weave run <root.seq>")
	}

	io := abi.NewStdHostIO(os.Stdout, os.Stdin)
	prog, err := pipeline.Load(root, optionsFromFlags(ctx), JobsFlag.Fetch(ctx), io)
	if err != nil {
		return err
	}

	for _, w := range prog.Lint() {
		fmt.Fprintln(os.Stderr, "warning:", w.String())
	}

	if interval := ProgressFlag.Fetch(ctx); interval > 0 {
		reporter := sched.NewProgressReporter(interval, func(n int64) {
			fmt.Fprintf(os.Stderr, "progress: %d strands spawned\n", n)
		})
		defer reporter.Stop()
		prog.Scheduler().SetProgress(reporter)
	}

	result, err := prog.Run(context.Background(), "main")
	if err != nil {
		return err
	}
	fmt.Println(result.String())
	return nil
}
