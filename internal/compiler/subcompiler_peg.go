package compiler

import (
	"context"
	"os"

	"gopkg.microglot.org/pegc/internal/compiler/peg"
	"gopkg.microglot.org/pegc/internal/exc"
	"gopkg.microglot.org/pegc/internal/grammar"
)

type SubCompilerPEG struct{}

func (self *SubCompilerPEG) CompileFile(ctx context.Context, r exc.Reporter, file grammar.File, dumpTree bool) (*grammar.Grammar, error) {
	parser := peg.NewParserPEG(r)
	g, err := parser.Parse(ctx, file)
	if err != nil {
		return nil, err
	}
	if dumpTree {
		grammar.Pretty(os.Stdout, g)
	}
	return g, nil
}
