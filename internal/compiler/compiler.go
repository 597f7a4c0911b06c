// Package compiler renders pattern definitions and generates the Go source
// that compiles them.
package compiler

import (
	"fmt"
	"go/format"
	"os"
	"strings"

	"github.com/KromDaniel/regcraft/definition"
	"github.com/KromDaniel/regcraft/internal/codegen"
	"github.com/KromDaniel/regcraft/pattern"
	"github.com/dave/jennifer/jen"
)

// Config holds the configuration for code generation.
type Config struct {
	Definitions      []definition.Named
	Source           string // description file name, recorded in the header
	OutputFile       string
	Package          string
	Engine           Engine // defaults to EngineRegexp2
	GenerateTestFile bool   // Generate a test file checking every pattern variable
	Verbose          bool   // Enable verbose logging of rendering decisions
}

// Compiler generates Go code from rendered pattern definitions.
type Compiler struct {
	config  Config
	file    *jen.File
	logger  *Logger
	entries []entry
}

// entry is one rendered definition.
type entry struct {
	name      string // definition name
	ident     string // generated variable
	constName string // generated constant
	source    string // rendered pattern
}

// New creates a new compiler instance.
func New(config Config) *Compiler {
	if config.Engine == "" {
		config.Engine = EngineRegexp2
	}
	return &Compiler{
		config: config,
		file:   jen.NewFile(config.Package),
		logger: NewLogger(config.Verbose),
	}
}

// SetOutputFile sets the output file path.
func (c *Compiler) SetOutputFile(path string) {
	c.config.OutputFile = path
}

// Render renders and verifies every definition without writing anything.
// It returns the rendered patterns in definition order.
func (c *Compiler) Render() ([]string, error) {
	if err := c.render(); err != nil {
		return nil, err
	}
	out := make([]string, len(c.entries))
	for i, e := range c.entries {
		out[i] = e.source
	}
	return out, nil
}

func (c *Compiler) render() error {
	c.logger.Section("Rendering")
	c.logger.Log("Engine: %s", c.config.Engine)
	c.logger.Log("Definitions: %d", len(c.config.Definitions))

	c.entries = c.entries[:0]
	owners := make(map[string]string)
	for _, d := range c.config.Definitions {
		c.logger.Definition(d.Name, d.Pos.String())
		src, features, err := pattern.StringFeatures(d.Pattern)
		if err != nil {
			c.logger.Detail("render failed: %v", err)
			return fmt.Errorf("%s: pattern %s: %w", d.Pos, d.Name, err)
		}
		c.logger.Detail("source: %s", src)
		if features.Subtraction {
			c.logger.Detail("uses character class subtraction")
		}

		e := entry{
			name:      d.Name,
			ident:     codegen.Identifier(d.Name),
			constName: codegen.PatternConst(d.Name),
			source:    src,
		}
		for _, id := range []string{e.ident, e.constName} {
			if other, taken := owners[id]; taken {
				return fmt.Errorf("patterns %s and %s both generate %s", other, d.Name, id)
			}
			owners[id] = d.Name
		}

		if err := c.config.Engine.Check(src, features); err != nil {
			c.logger.Detail("%s: %v", c.config.Engine, err)
			return fmt.Errorf("pattern %s does not compile with %s: %w", d.Name, c.config.Engine, err)
		}
		c.logger.Detail("%s: ok", c.config.Engine)
		c.logger.Detail("emits %s and %s", e.constName, e.ident)
		c.entries = append(c.entries, e)
	}
	return nil
}

func (c *Compiler) header() string {
	if c.config.Source == "" {
		return fmt.Sprintf("Code generated by %s. DO NOT EDIT.", codegen.GeneratorName)
	}
	return fmt.Sprintf("Code generated by %s from %s. DO NOT EDIT.", codegen.GeneratorName, c.config.Source)
}

// Generate generates the Go code and writes it to the output file.
func (c *Compiler) Generate() error {
	if err := c.render(); err != nil {
		return err
	}

	c.logger.Section("Code Generation")
	c.file.HeaderComment(c.header())

	for _, e := range c.entries {
		c.file.Commentf("%s is the source of the %s pattern.", e.constName, e.name)
		c.file.Const().Id(e.constName).Op("=").Lit(e.source)
		c.file.Line()
		c.file.Commentf("%s matches the %s pattern.", e.ident, e.name)
		c.file.Var().Id(e.ident).Op("=").Add(c.config.Engine.mustCompile(e.constName))
		c.file.Line()
	}

	// Save to file
	if err := c.file.Save(c.config.OutputFile); err != nil {
		return fmt.Errorf("failed to save file: %w", err)
	}

	// Format the generated file
	if err := formatFile(c.config.OutputFile); err != nil {
		return fmt.Errorf("failed to format file: %w", err)
	}
	c.logger.Log("Wrote %s", c.config.OutputFile)

	// Generate test file if requested
	if c.config.GenerateTestFile {
		if err := c.generateTestFile(); err != nil {
			return fmt.Errorf("failed to generate test file: %w", err)
		}
	}

	return nil
}

// testFilePath returns the path of the generated test file.
func (c *Compiler) testFilePath() string {
	return strings.TrimSuffix(c.config.OutputFile, ".go") + "_test.go"
}

// generateTestFile writes a test asserting that every generated variable
// holds its pattern source.
func (c *Compiler) generateTestFile() error {
	f := jen.NewFile(c.config.Package)
	f.HeaderComment(c.header())

	rows := make([]jen.Code, 0, len(c.entries))
	for _, e := range c.entries {
		rows = append(rows, jen.Values(jen.Lit(e.name), jen.Id(e.ident), jen.Id(e.constName)))
	}

	f.Func().Id("TestPatterns").Params(jen.Id("t").Op("*").Qual("testing", "T")).Block(
		jen.Id("tests").Op(":=").Index().Struct(
			jen.Id("name").String(),
			jen.Id("re").Interface(jen.Id("String").Params().String()),
			jen.Id("want").String(),
		).Values(rows...),
		jen.Line(),
		jen.For(jen.List(jen.Id("_"), jen.Id("tt")).Op(":=").Range().Id("tests")).Block(
			jen.If(
				jen.Id("got").Op(":=").Id("tt").Dot("re").Dot("String").Call(),
				jen.Id("got").Op("!=").Id("tt").Dot("want"),
			).Block(
				jen.Id("t").Dot("Errorf").Call(
					jen.Lit("%s.String() = %q, want %q"),
					jen.Id("tt").Dot("name"), jen.Id("got"), jen.Id("tt").Dot("want"),
				),
			),
		),
	)

	path := c.testFilePath()
	if err := f.Save(path); err != nil {
		return err
	}
	if err := formatFile(path); err != nil {
		return err
	}
	c.logger.Log("Wrote %s", path)
	return nil
}

// formatFile reads a file, formats it with go/format, and writes it back.
func formatFile(path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	formatted, err := format.Source(src)
	if err != nil {
		return err
	}

	return os.WriteFile(path, formatted, 0644)
}
