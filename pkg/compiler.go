package seasharp

import (
	"context"
	"io"

	"golang.org/x/sync/errgroup"
)

// Unit is the outcome of analysing one input. Result is nil when the input
// had syntax errors.
type Unit struct {
	Filename     string
	SyntaxErrors []*SyntaxError
	Result       *Result
}

func (u *Unit) Rejected() bool {
	return len(u.SyntaxErrors) != 0 || u.Result.Rejected()
}

type Compiler struct {
	// Workers caps the number of inputs CompileAll analyses at once. Zero
	// means no limit.
	Workers int
}

func NewCompiler() *Compiler {
	return &Compiler{}
}

func (c *Compiler) Compile(filename string) (*Unit, error) {
	lexer, err := NewLexer(filename)
	if err != nil {
		return nil, err
	}

	parser := NewParser(lexer)
	return c.compile(parser), nil
}

func (c *Compiler) CompileFromReader(reader io.Reader) *Unit {
	lexer := NewLexerFromReader(reader)
	parser := NewParser(lexer)

	return c.compile(parser)
}

// CompileAll analyses every file concurrently and returns the units in the
// order of filenames. The first I/O error cancels the remaining work.
func (c *Compiler) CompileAll(ctx context.Context, filenames []string) ([]*Unit, error) {
	units := make([]*Unit, len(filenames))

	g, ctx := errgroup.WithContext(ctx)
	if c.Workers > 0 {
		g.SetLimit(c.Workers)
	}

	for i, filename := range filenames {
		i, filename := i, filename
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			unit, err := c.Compile(filename)
			if err != nil {
				return err
			}

			units[i] = unit
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return units, nil
}

func (c *Compiler) compile(p *Parser) *Unit {
	unit := &Unit{Filename: p.GetFilename()}

	tree, syntaxErrors := p.Run()
	if len(syntaxErrors) != 0 {
		unit.SyntaxErrors = syntaxErrors
		return unit
	}

	unit.Result = Transform(tree)
	return unit
}
