package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/KromDaniel/regcraft/definition"
	"github.com/KromDaniel/regcraft/internal/compiler"
	"github.com/KromDaniel/regcraft/pkg/regcraft"
)

// arrayFlags collects a repeatable string flag.
type arrayFlags []string

func (a *arrayFlags) String() string {
	return strings.Join(*a, ", ")
}

func (a *arrayFlags) Set(value string) error {
	*a = append(*a, value)
	return nil
}

const (
	appVersion = "1.0.0"
	appName    = "regcraft"
)

var (
	input    = flag.String("in", "", "Pattern description file (required)")
	output   = flag.String("out", "", "Output Go file (default: input file with a .go extension)")
	pkg      = flag.String("pkg", "", "Package name for the generated code (default: name of the output directory)")
	engine   = flag.String("engine", "regexp2", "Regex package used by the generated code: regexp2, regexp, coregex")
	testFile = flag.Bool("test", false, "Also generate a test file checking every pattern")
	printOut = flag.Bool("print", false, "Print the rendered patterns instead of generating code")
	verbose  = flag.Bool("v", false, "Log rendering decisions to stderr")
	helpFlag = flag.Bool("help", false, "Show help message")
	version  = flag.Bool("version", false, "Print version information")
	defs     arrayFlags
)

func main() {
	flag.Var(&defs, "def", "Only generate this definition (repeatable)")
	flag.Parse()

	if *helpFlag {
		printHelp()
		return
	}

	if *version {
		fmt.Printf("%s version %s\n", appName, appVersion)
		return
	}

	if *input == "" {
		fmt.Fprintf(os.Stderr, "Error: -in flag is required\n\n")
		printHelp()
		os.Exit(1)
	}

	if *printOut {
		if err := printPatterns(*input, defs); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	out := *output
	if out == "" {
		out = defaultOutput(*input)
	}
	pkgName := *pkg
	if pkgName == "" {
		pkgName = defaultPackage(out)
	}

	err := regcraft.Generate(regcraft.Options{
		Input:            *input,
		OutputFile:       out,
		Package:          pkgName,
		Engine:           *engine,
		Definitions:      defs,
		GenerateTestFile: *testFile,
		Verbose:          *verbose,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// defaultOutput replaces the extension of the description file with .go.
func defaultOutput(in string) string {
	return strings.TrimSuffix(in, filepath.Ext(in)) + ".go"
}

// defaultPackage names the package after the directory holding out.
func defaultPackage(out string) string {
	dir, err := filepath.Abs(filepath.Dir(out))
	if err != nil {
		return "main"
	}
	name := strings.Map(func(r rune) rune {
		if r == '-' || r == '.' {
			return '_'
		}
		return r
	}, filepath.Base(dir))
	if name == "" || name == string(filepath.Separator) {
		return "main"
	}
	return name
}

func printPatterns(path string, names []string) error {
	all, err := definition.LoadFile(path)
	if err != nil {
		return err
	}
	selected, err := regcraft.Select(all, names)
	if err != nil {
		return err
	}
	c := compiler.New(compiler.Config{Definitions: selected, Engine: compiler.EngineRegexp2, Verbose: *verbose})
	rendered, err := c.Render()
	if err != nil {
		return err
	}
	for i, d := range selected {
		fmt.Printf("%s\t%s\n", d.Name, rendered[i])
	}
	return nil
}

func printHelp() {
	fmt.Printf("Usage: %s -in FILE [OPTIONS]\n\n", appName)
	fmt.Println("Generates Go code for the regular expressions described in FILE")
	fmt.Println()
	fmt.Println("Options:")
	flag.PrintDefaults()
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Printf("  %s -in ids.rx                          # Write ids.go next to ids.rx\n", appName)
	fmt.Printf("  %s -in ids.rx -engine=coregex -test    # Use coregex and write ids_test.go\n", appName)
	fmt.Printf("  %s -in ids.rx -def IPv4 -print         # Print the rendered IPv4 pattern\n", appName)
}
