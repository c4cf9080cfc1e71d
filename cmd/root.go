package cmd

import (
	"context"
	"os"
	"path"

	"github.com/spf13/cobra"

	"gopkg.microglot.org/pegc/internal/compiler"
	"gopkg.microglot.org/pegc/internal/fs"
	"gopkg.microglot.org/pegc/internal/grammar"
	"gopkg.microglot.org/pegc/internal/logging"
)

// RootCommand is the base CLI command that all subcommands are added to.
var RootCommand = &cobra.Command{
	Use:   path.Base(os.Args[0]),
	Short: "PEG grammar compiler",
	Long:  "A compiler front end that parses parsing expression grammars into syntax trees.",
}

var (
	logLevel  = newEnumFlag("error", []string{"debug", "info", "warn", "error"})
	logFormat = newEnumFlag("text", []string{"text", "json", "json-pretty"})
)

func init() {
	RootCommand.PersistentFlags().VarP(logLevel, "log-level", "l", "set log level")
	RootCommand.PersistentFlags().Var(logFormat, "log-format", "set log format")
}

func setupLogging(level string, format string) (logging.Logger, error) {
	lvl, err := logging.GetLevel(level)
	if err != nil {
		return nil, err
	}
	logger := logging.New()
	logger.SetLevel(lvl)
	logger.SetFormatter(logging.GetFormatter(format, ""))
	return logger, nil
}

// compileTargets parses the given targets with a compiler that searches the
// given roots before falling back to the system data directories. Targets are
// resolved against the roots so they are either relative paths or rooted at
// one of the search paths.
func compileTargets(ctx context.Context, targets []string, roots []string, dumpTree bool) (*grammar.CompileResponse, error) {
	logger, err := setupLogging(logLevel.String(), logFormat.String())
	if err != nil {
		return nil, err
	}

	dfs, err := compiler.NewDefaultFS(os.LookupEnv)
	if err != nil {
		return nil, err
	}
	mf := make(fs.FileSystemMulti, 0, len(roots)+1)
	for _, root := range roots {
		rf, err := fs.NewFileSystemLocal(root)
		if err != nil {
			return nil, err
		}
		mf = append(mf, rf)
	}
	mf = append(mf, dfs)

	c, err := compiler.New(
		compiler.OptionWithLookupEnv(os.LookupEnv),
		compiler.OptionWithFS(mf),
		compiler.OptionWithLogger(logger),
	)
	if err != nil {
		return nil, err
	}

	return c.Compile(ctx, &grammar.CompileRequest{
		Files:    targets,
		DumpTree: dumpTree,
	})
}
