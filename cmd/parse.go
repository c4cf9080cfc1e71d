package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"gopkg.microglot.org/pegc/internal/compiler"
	"gopkg.microglot.org/pegc/internal/grammar"
)

type parseParams struct {
	format   *enumFlag
	roots    []string
	dumpTree bool
}

var configuredParseParams = parseParams{
	format: newFormatFlag(formatPretty, formatJSON),
}

var parseCommand = &cobra.Command{
	Use:   "parse <path> [<path> [...]]",
	Short: "Parse PEG grammar files",
	Long: `Parse PEG grammar files and print the syntax tree of each.

Paths are resolved against the root search paths (--root, default the
current directory). A path that names a directory is expanded to the
grammar files inside it.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return errors.New("no grammar file specified")
		}
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		os.Exit(parse(args, &configuredParseParams, os.Stdout, os.Stderr))
	},
}

func parse(args []string, params *parseParams, stdout io.Writer, stderr io.Writer) int {
	out, err := compileTargets(context.Background(), args, params.roots, params.dumpTree)
	if err != nil {
		printErr(stderr, err)
		return 1
	}

	switch params.format.String() {
	case formatJSON:
		bs, err := json.MarshalIndent(out.Grammars, "", "  ")
		if err != nil {
			fmt.Fprintln(stderr, err.Error())
			return 1
		}
		fmt.Fprint(stdout, string(bs)+"\n")
	default:
		for _, g := range out.Grammars {
			grammar.Pretty(stdout, g)
		}
	}

	return 0
}

func printErr(stderr io.Writer, err error) {
	var me compiler.MultiException
	if errors.As(err, &me) {
		for _, e := range me {
			fmt.Fprintln(stderr, e.Error())
		}
		return
	}
	fmt.Fprintln(stderr, err.Error())
}

func init() {
	addOutputFormat(parseCommand.Flags(), configuredParseParams.format)
	addRoots(parseCommand.Flags(), &configuredParseParams.roots)
	addDumpTree(parseCommand.Flags(), &configuredParseParams.dumpTree)
	RootCommand.AddCommand(parseCommand)
}
