// Package regcraft builds .NET-dialect regular expressions from pattern
// trees and generates Go code that compiles them at init time.
package regcraft

import (
	"fmt"

	"github.com/KromDaniel/regcraft/definition"
	"github.com/KromDaniel/regcraft/internal/compiler"
)

// Options configures code generation from a description file.
type Options struct {
	// Input is the path of the pattern description file
	Input string

	// OutputFile is the path where generated code will be written
	OutputFile string

	// Package is the Go package name for the generated code
	Package string

	// Engine is the regex package the generated code uses: "regexp2" (default), "regexp" or "coregex"
	Engine string

	// Definitions restricts generation to the named definitions. Empty means all.
	Definitions []string

	// GenerateTestFile also writes <output>_test.go checking every generated variable
	GenerateTestFile bool

	// Verbose logs each rendered pattern to stderr
	Verbose bool
}

// Validate checks if the options are valid.
func (o Options) Validate() error {
	if o.Input == "" {
		return fmt.Errorf("input file cannot be empty")
	}
	if o.OutputFile == "" {
		return fmt.Errorf("output file cannot be empty")
	}
	if o.Package == "" {
		return fmt.Errorf("package cannot be empty")
	}
	if _, err := compiler.ParseEngine(o.Engine); err != nil {
		return err
	}
	return nil
}

// Generate reads the description file and writes the generated Go code.
func Generate(opts Options) error {
	if err := opts.Validate(); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}
	engine, _ := compiler.ParseEngine(opts.Engine)

	defs, err := definition.LoadFile(opts.Input)
	if err != nil {
		return fmt.Errorf("failed to load definitions: %w", err)
	}
	defs, err = Select(defs, opts.Definitions)
	if err != nil {
		return err
	}

	c := compiler.New(compiler.Config{
		Definitions:      defs,
		Source:           opts.Input,
		Package:          opts.Package,
		Engine:           engine,
		GenerateTestFile: opts.GenerateTestFile,
		Verbose:          opts.Verbose,
	})
	c.SetOutputFile(opts.OutputFile)

	if err := c.Generate(); err != nil {
		return fmt.Errorf("failed to generate code: %w", err)
	}

	return nil
}

// Select keeps the definitions named in names, in file order. An empty names
// keeps everything; an unknown name is an error.
func Select(defs []definition.Named, names []string) ([]definition.Named, error) {
	if len(names) == 0 {
		return defs, nil
	}
	want := make(map[string]bool, len(names))
	for _, n := range names {
		want[n] = true
	}
	var out []definition.Named
	for _, d := range defs {
		if want[d.Name] {
			out = append(out, d)
			delete(want, d.Name)
		}
	}
	for _, n := range names {
		if want[n] {
			return nil, fmt.Errorf("no definition named %q", n)
		}
	}
	return out, nil
}
