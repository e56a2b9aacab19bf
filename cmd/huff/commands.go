package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v2"
	"golang.org/x/exp/slices"

	"github.com/consensys/huffcode/huffman"
	"github.com/consensys/huffcode/huffman/treeio"
)

func runCommand(st *state) *cli.Command {
	return &cli.Command{
		Name:      "run",
		Usage:     "encode a file, then decode the result and check it matches",
		ArgsUsage: "[FILE]",
		Action: func(cCtx *cli.Context) error {
			report, err := st.archiver().RoundTrip(cCtx.Context, st.source(cCtx))
			if err != nil {
				return err
			}
			fmt.Fprintf(cCtx.App.Writer, "%s: %d symbols, %d bits -> %s, %s\n",
				st.source(cCtx), report.Length, report.EncodedBits, report.EncodedPath, report.DecodedPath)
			return nil
		},
	}
}

func encodeCommand(st *state) *cli.Command {
	return &cli.Command{
		Name:      "encode",
		Usage:     "encode a file and persist its tree",
		ArgsUsage: "[FILE]",
		Action: func(cCtx *cli.Context) error {
			report, err := st.archiver().EncodeFile(cCtx.Context, st.source(cCtx))
			if err != nil {
				return err
			}
			fmt.Fprintf(cCtx.App.Writer, "%s: %d symbols, %d bits -> %s (tree %s)\n",
				st.source(cCtx), report.Length, report.EncodedBits, report.EncodedPath, report.TreePath)
			return nil
		},
	}
}

func decodeCommand(st *state) *cli.Command {
	return &cli.Command{
		Name:  "decode",
		Usage: "decode an encoded file with a persisted tree",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "in", Usage: "encoded `FILE` (default: configured encoded file)"},
			&cli.StringFlag{Name: "tree", Usage: "tree `FILE` (default: configured tree file)"},
			&cli.StringFlag{Name: "out", Usage: "decoded `FILE` (default: configured decoded file)"},
		},
		Action: func(cCtx *cli.Context) error {
			a := st.archiver()
			in, tree, out := a.EncodedPath(), a.TreePath(), a.DecodedPath()
			if cCtx.IsSet("in") {
				in = cCtx.String("in")
			}
			if cCtx.IsSet("tree") {
				tree = cCtx.String("tree")
			}
			if cCtx.IsSet("out") {
				out = cCtx.String("out")
			}
			report, err := a.DecodeFile(cCtx.Context, in, tree, out)
			if err != nil {
				return err
			}
			fmt.Fprintf(cCtx.App.Writer, "%s: %d symbols -> %s\n", in, report.Length, report.DecodedPath)
			return nil
		},
	}
}

func inspectCommand() *cli.Command {
	return &cli.Command{
		Name:      "inspect",
		Usage:     "print a persisted tree and its code table",
		ArgsUsage: "TREEFILE",
		Action: func(cCtx *cli.Context) error {
			if !cCtx.Args().Present() {
				return errors.New("inspect: missing tree file")
			}
			data, err := os.ReadFile(cCtx.Args().First())
			if err != nil {
				return err
			}
			tree, err := treeio.Unmarshal(data)
			if err != nil {
				return err
			}
			diag, err := treeio.Diagnose(data)
			if err != nil {
				return err
			}

			w := cCtx.App.Writer
			fmt.Fprintln(w, diag)
			fmt.Fprintf(w, "%d symbols, weight %d, depth %d\n", tree.NbLeaves(), tree.Weight(), tree.Depth())

			codes := huffman.BuildCodeTable(tree)
			leaves := tree.Leaves()
			slices.SortFunc(leaves, func(a, b *huffman.Leaf) int { return int(a.Symbol - b.Symbol) })

			table := tablewriter.NewWriter(w)
			table.SetHeader([]string{"symbol", "weight", "code"})
			for _, l := range leaves {
				table.Append([]string{fmt.Sprintf("%q", l.Symbol), fmt.Sprint(l.Weight), codes[l.Symbol]})
			}
			table.Render()
			return nil
		},
	}
}
