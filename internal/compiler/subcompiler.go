package compiler

import (
	"context"

	"gopkg.microglot.org/pegc/internal/exc"
	"gopkg.microglot.org/pegc/internal/grammar"
)

// SubCompiler converts a single file into a grammar. Implementations must
// record every failure they return in the given Reporter.
type SubCompiler interface {
	CompileFile(ctx context.Context, r exc.Reporter, file grammar.File, dumpTree bool) (*grammar.Grammar, error)
}

func DefaultSubCompilers() map[grammar.FileKind]SubCompiler {
	scpeg := &SubCompilerPEG{}
	return map[grammar.FileKind]SubCompiler{
		grammar.FileKindPEG: scpeg,
		// TODO: Add deserializer support for the encoded file format below.
		grammar.FileKindRuleSetJSON: nil,
	}
}
