package grammar

import (
	"context"
	"fmt"

	"gopkg.microglot.org/pegc/internal/optional"
)

type Closer interface {
	Close(ctx context.Context) error
}

type CodePoint uint32

type Iterator[T any] interface {
	Next(ctx context.Context) optional.Optional[T]
	Closer
}

type Reader interface {
	Read(ctx context.Context, size int32) ([]byte, error)
}

type FileBody interface {
	Reader
	Closer
}

// Location is a position within a source file. Line and Column are
// 1-based, Offset is a 0-based code point index.
type Location struct {
	Line   int32
	Column int32
	Offset int64
}

type FileKind uint32

const (
	FileKindNone FileKind = iota
	FileKindPEG
	FileKindRuleSetJSON
)

func (k FileKind) String() string {
	switch k {
	case FileKindNone:
		return "none"
	case FileKindPEG:
		return "peg"
	case FileKindRuleSetJSON:
		return "ruleset-json"
	default:
		return fmt.Sprintf("unkown-%d", k)
	}
}

type File interface {
	Path(ctx context.Context) string
	Kind(ctx context.Context) FileKind
	Body(ctx context.Context) (FileBody, error)
}

type FileSystem interface {
	Open(ctx context.Context, uri string) ([]File, error)
	Write(ctx context.Context, uri string, content string) error
}

type Compiler interface {
	Compile(ctx context.Context, req *CompileRequest) (*CompileResponse, error)
}

type CompileRequest struct {
	Files []string
	// DumpTree writes an indented rendering of each parsed grammar to
	// stdout as a side effect of compiling. Debug aid only.
	DumpTree bool
}

type CompileResponse struct {
	Grammars []*Grammar
}

type Parser interface {
	Parse(ctx context.Context, f File) (*Grammar, error)
}
