package compiler

import (
	"context"
	"os"
	"runtime"
	"strings"
	"sync"
	"time"

	"gopkg.microglot.org/pegc/internal/exc"
	"gopkg.microglot.org/pegc/internal/grammar"
	"gopkg.microglot.org/pegc/internal/logging"
	"gopkg.microglot.org/pegc/internal/target"
)

type Option func(c *compiler) error

func OptionWithFS(fs grammar.FileSystem) Option {
	return func(c *compiler) error {
		c.FS = fs
		return nil
	}
}

func OptionWithLookupEnv(lookupEnv func(string) (string, bool)) Option {
	return func(c *compiler) error {
		c.LookupENV = lookupEnv
		return nil
	}
}

func OptionWithExcReporter(reporter exc.Reporter) Option {
	return func(c *compiler) error {
		c.Reporter = reporter
		return nil
	}
}

func OptionWithLogger(logger logging.Logger) Option {
	return func(c *compiler) error {
		c.Logger = logger
		return nil
	}
}

func OptionWithMaxConcurrency(n int) Option {
	return func(c *compiler) error {
		c.MaxConcurrency = n
		return nil
	}
}

func New(opts ...Option) (grammar.Compiler, error) {
	c := &compiler{}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	if c.LookupENV == nil {
		c.LookupENV = os.LookupEnv
	}
	if c.FS == nil {
		dfs, err := NewDefaultFS(c.LookupENV)
		if err != nil {
			return nil, err
		}
		c.FS = dfs
	}
	if c.MaxConcurrency == 0 {
		max := runtime.GOMAXPROCS(-1)
		cpus := runtime.NumCPU()
		if max > cpus {
			max = cpus
		}
		c.MaxConcurrency = max
	}
	if c.Semaphore == nil {
		c.Semaphore = newSemaphore(c.MaxConcurrency)
	}
	if c.Reporter == nil {
		c.Reporter = exc.NewReporter(nil)
	}
	if c.Logger == nil {
		c.Logger = logging.NewNoOpLogger()
	}
	if c.SubCompilers == nil {
		c.SubCompilers = DefaultSubCompilers()
	}
	return c, nil
}

type compiler struct {
	LookupENV      func(string) (string, bool)
	FS             grammar.FileSystem
	MaxConcurrency int
	Semaphore      *semaphore
	Reporter       exc.Reporter
	Logger         logging.Logger
	SubCompilers   map[grammar.FileKind]SubCompiler
}

func (self *compiler) Compile(ctx context.Context, req *grammar.CompileRequest) (*grammar.CompileResponse, error) {
	files := make([]grammar.File, 0, len(req.Files))
	for _, f := range req.Files {
		t := target.Normalize(f)
		in, err := self.FS.Open(ctx, t)
		if err != nil {
			if e, ok := err.(exc.Exception); ok {
				_ = self.Reporter.Report(e)
			} else {
				_ = self.Reporter.Report(exc.WrapUnknown(exc.Location{URI: t}, err))
			}
			continue
		}
		for _, inf := range in {
			if inf.Kind(ctx) == grammar.FileKindNone {
				self.Logger.Debug("skipping %s: not a grammar file", inf.Path(ctx))
				continue
			}
			files = append(files, inf)
		}
	}

	loaded := &sync.Map{}
	results := make(chan fileResult, len(files))

	for _, file := range files {
		go func(file grammar.File) {
			g, err := self.compileFile(ctx, file, loaded, req.DumpTree)
			results <- fileResult{uri: file.Path(ctx), grammar: g, err: err}
		}(file)
	}

	byURI := make(map[string]*grammar.Grammar, len(files))
	for x := 0; x < len(files); x = x + 1 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case result := <-results:
			if result.err != nil {
				// sub compilers report every failure they return, so the
				// exception carrying the detail is already in the reporter
				// and the per-file error is only logged
				self.Logger.Debug("compile of %s failed: %v", result.uri, result.err)
				continue
			}
			if result.grammar != nil {
				byURI[result.uri] = result.grammar
			}
		}
	}

	// assemble the response in request order regardless of which
	// goroutine finished first
	final := &grammar.CompileResponse{}
	included := make(map[string]bool, len(files))
	for _, file := range files {
		uri := file.Path(ctx)
		if included[uri] {
			continue
		}
		included[uri] = true
		if g, ok := byURI[uri]; ok {
			final.Grammars = append(final.Grammars, g)
		}
	}

	caught := self.Reporter.Reported()
	if len(caught) > 0 {
		return final, MultiException(caught)
	}
	return final, nil
}

func (self *compiler) compileFile(ctx context.Context, file grammar.File, loaded *sync.Map, dumpTree bool) (*grammar.Grammar, error) {
	self.Semaphore.Lock()
	defer self.Semaphore.Unlock()
	if _, ok := loaded.Load(file.Path(ctx)); ok {
		return nil, nil
	}
	loaded.Store(file.Path(ctx), true)
	sc := self.SubCompilers[file.Kind(ctx)]
	if sc == nil {
		e := exc.New(exc.Location{URI: file.Path(ctx)}, exc.CodeUnsupportedFileFormat, "Unsupported file format")
		return nil, self.Reporter.Report(e)
	}
	self.Logger.Debug("parsing %s", file.Path(ctx))
	start := time.Now()
	g, err := sc.CompileFile(ctx, self.Reporter, file, dumpTree)
	if err == nil && g != nil {
		self.Logger.WithFields(map[string]interface{}{
			"uri":      g.URI,
			"rules":    len(g.Rules),
			"duration": time.Since(start).String(),
		}).Debug("parsed grammar")
	}
	return g, err
}

type fileResult struct {
	uri     string
	grammar *grammar.Grammar
	err     error
}

type MultiException []exc.Exception

func (self MultiException) Error() string {
	var b strings.Builder
	for _, err := range self[:len(self)-1] {
		b.WriteString(err.Error())
		b.WriteString("; ")
	}
	b.WriteString(self[len(self)-1].Error())
	return b.String()
}
