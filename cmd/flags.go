package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

const (
	formatPretty = "pretty"
	formatJSON   = "json"
)

// enumFlag implements the pflag.Value interface to provide enumerated command
// line parameter values.
type enumFlag struct {
	value   string
	allowed []string
}

func newEnumFlag(defaultValue string, vs []string) *enumFlag {
	return &enumFlag{
		value:   defaultValue,
		allowed: vs,
	}
}

func (f *enumFlag) String() string {
	return f.value
}

func (f *enumFlag) Type() string {
	return "{" + strings.Join(f.allowed, ",") + "}"
}

func (f *enumFlag) Set(s string) error {
	for _, v := range f.allowed {
		if s == v {
			f.value = s
			return nil
		}
	}
	return fmt.Errorf("must be one of %s", f.Type())
}

// newFormatFlag returns an enum flag for the given output formats, where the
// first provided format is the default.
func newFormatFlag(formats ...string) *enumFlag {
	return newEnumFlag(formats[0], formats)
}

func addOutputFormat(fs *pflag.FlagSet, format *enumFlag) {
	fs.VarP(format, "format", "f", "set output format")
}

func addRoots(fs *pflag.FlagSet, roots *[]string) {
	fs.StringSliceVarP(roots, "root", "", []string{"."}, "set root search paths for grammar files")
}

func addDumpTree(fs *pflag.FlagSet, dumpTree *bool) {
	fs.BoolVarP(dumpTree, "dump-tree", "", false, "write an indented parse tree to stdout while compiling")
}
