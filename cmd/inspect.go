package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"gopkg.microglot.org/pegc/internal/grammar"
)

type inspectParams struct {
	roots []string
}

func newInspectParams() inspectParams {
	return inspectParams{}
}

func init() {
	params := newInspectParams()

	var inspectCommand = &cobra.Command{
		Use:   "inspect <path> [<path> [...]]",
		Short: "Summarize PEG grammar files",
		Long: `Summarize PEG grammar files.

The 'inspect' command parses the given grammar files and lists every rule
together with counts of the alternatives, terminal matchers, and rule
references appearing in its definition.`,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errors.New("no grammar file specified")
			}
			return nil
		},
		Run: func(cmd *cobra.Command, args []string) {
			os.Exit(inspect(args, &params, os.Stdout, os.Stderr))
		},
	}

	addRoots(inspectCommand.Flags(), &params.roots)
	RootCommand.AddCommand(inspectCommand)
}

func inspect(args []string, params *inspectParams, stdout io.Writer, stderr io.Writer) int {
	out, err := compileTargets(context.Background(), args, params.roots, false)
	if err != nil {
		printErr(stderr, err)
		return 1
	}
	for _, g := range out.Grammars {
		populateRuleSummary(stdout, g)
	}
	return 0
}

func populateRuleSummary(out io.Writer, g *grammar.Grammar) {
	t := generateTableWithKeys(out, "Rule", "Alternatives", "Terminals", "References")
	t.AppendBulk(ruleSummaryLines(g))
	if t.NumLines() > 0 {
		fmt.Fprintf(out, "%s:\n", g.URI)
		t.Render()
	}
}

func ruleSummaryLines(g *grammar.Grammar) [][]string {
	lines := make([][]string, 0, len(g.Rules))
	for _, rule := range g.Rules {
		alternatives := 0
		if pc, ok := rule.Expression.(grammar.PrioritizedChoice); ok {
			alternatives = len(pc.Alternatives)
		}
		terminals := 0
		references := 0
		grammar.WalkRule(rule, func(e grammar.Expression) {
			switch e.(type) {
			case grammar.Terminal, grammar.CharacterClass, grammar.AnyTerminal:
				terminals = terminals + 1
			case grammar.NonTerminal:
				references = references + 1
			}
		})
		lines = append(lines, []string{
			rule.Name,
			strconv.Itoa(alternatives),
			strconv.Itoa(terminals),
			strconv.Itoa(references),
		})
	}
	return lines
}

func generateTableWithKeys(writer io.Writer, keys ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(writer)
	aligns := []int{}
	var hdrs []string
	for _, k := range keys {
		hdrs = append(hdrs, k)
		aligns = append(aligns, tablewriter.ALIGN_LEFT)
	}
	table.SetHeader(hdrs)
	table.SetAlignment(tablewriter.ALIGN_CENTER)
	table.SetColumnAlignment(aligns)
	table.SetAutoMergeCells(true)
	table.SetRowLine(false)
	table.SetAutoWrapText(false)
	return table
}
