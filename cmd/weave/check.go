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
	"fmt"
	"os"
	"sort"

	"github.com/urfave/cli/v2"

	"github.com/weavelang/weave/abi"
	"github.com/weavelang/weave/pipeline"
)

var CheckCmd = &cli.Command{
	Name:      "check",
	Usage:     "run only the include/collision phase and report the merged word list",
	ArgsUsage: "<root.seq>",
	Flags: []cli.Flag{
		&StdlibFlag.StringFlag,
		&FfiManifestFlag.StringFlag,
		&FilterFlag.StringFlag,
	},
	Action: doCheck,
}

func doCheck(ctx *cli.Context) error {
	root := ctx.Args().First()
	if root == "" {
		return fmt.Errorf("usage: weave check <root.seq>")
	}

	filter, err := FilterFlag.Fetch(ctx)
	if err != nil {
		return fmt.Errorf("invalid --filter: %w", err)
	}

	prog, err := pipeline.Load(root, optionsFromFlags(ctx), 1, abi.NewStdHostIO(os.Stdout, os.Stdin))
	if err != nil {
		return err
	}

	names := make([]string, 0, len(prog.Merged.Words))
	for name := range prog.Merged.Words {
		if filter.MatchString(name) {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	for _, name := range names {
		w := prog.Merged.Words[name]
		fmt.Printf("%s ( %s )\t%s\n", w.Name, w.StackEffect, w.Location())
	}

	for _, warning := range prog.Lint() {
		fmt.Fprintln(os.Stderr, "warning:", warning.String())
	}

	return nil
}
