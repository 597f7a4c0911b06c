package definition

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/KromDaniel/regcraft/pattern"
)

const octet = `\d|[1-9]\d|1\d{2}|2[0-4]\d|25[0-5]`

func render(t *testing.T, src string) map[string]string {
	t.Helper()
	defs, err := Load("test.rx", src)
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	out := make(map[string]string, len(defs))
	for _, d := range defs {
		s, err := pattern.String(d.Pattern)
		if err != nil {
			t.Fatalf("String(%s) returned error: %v", d.Name, err)
		}
		out[d.Name] = s
	}
	return out
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"alternation", `pattern A = "cat" | "dog";`, "cat|dog"},
		{"grouped alternation", `pattern A = "a" ("b" | "c") "d";`, "a(?:b|c)d"},
		{"lazy quantifier", `pattern A = "ab"+ lazy;`, "(?:ab)+?"},
		{"counted quantifiers", `pattern A = digit{2,4} word{3,} any{3} space? notspace*;`, `\d{2,4}\w{3,}.{3}\s?\S*`},
		{"set with subtraction", `pattern A = [ "a"-"z" digit except "q" ];`, `[a-z\d-[q]]`},
		{"negated set", `pattern A = [^ "abc" ];`, "[^abc]"},
		{"set with category", `pattern A = [ category("Lu") "_" ];`, `[\p{Lu}_]`},
		{"named backreference", `pattern A = capture<year>(digit{4}) "-" backref(year);`, `(?<year>\d{4})-\k<year>`},
		{"numbered backreference", `pattern A = capture(any) backref(1);`, `(.)\1`},
		{"balancing group", `pattern A = capture<close-open>("x") capture<-open>("y");`, "(?<close-open>x)(?<-open>y)"},
		{"conditional", `pattern A = if(1, "a", "b");`, "(?(1)a|b)"},
		{"named conditional", `pattern A = if(tag, "a");`, "(?(tag)a)"},
		{"modifier", `pattern A = modify("i-m", "a");`, "(?i-m:a)"},
		{"lookarounds", `pattern A = ahead("a") notahead("b") behind("c") notbehind("d");`, "(?=a)(?!b)(?<=c)(?<!d)"},
		{"atomic", `pattern A = atomic("a"+);`, "(?>a+)"},
		{"anchors", `pattern A = ^ "x" $ start end eol contiguous boundary notboundary;`, `^x$\A\z\Z\G\b\B`},
		{"escapes", `pattern A = hex("1f") octal("12") unicode("00e9") control("M") char(".");`, `\x1F\012\u00E9\cM\.`},
		{"raw and comment", `pattern A = raw("\\d+") comment("digits");`, `\d+(?#digits)`},
		{"numeric range", `pattern A = range(0, 255);`, octet},
		{"required zeros", `pattern A = range(1, 1000, required);`, `000[1-9]|00[1-9]\d|0[1-9]\d{2}|1000`},
		{"negative range", `pattern A = range(-15, 7, optional);`, `-(?:0?\d|1[0-5])|0?[0-7]`},
		{"line comments", "// leading\npattern A = \"a\"; // trailing\n", "a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := render(t, tt.src)["A"]
			if got != tt.want {
				t.Errorf("A = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestReferences(t *testing.T) {
	got := render(t, `
		pattern IPv4  = Octet ("." Octet){3};
		pattern Octet = range(0, 255);
	`)

	if got["Octet"] != octet {
		t.Errorf("Octet = %q, want %q", got["Octet"], octet)
	}
	want := "(?:" + octet + `)(?:\.(?:` + octet + ")){3}"
	if got["IPv4"] != want {
		t.Errorf("IPv4 = %q, want %q", got["IPv4"], want)
	}
}

func TestReferencesShareNodes(t *testing.T) {
	defs, err := Load("test.rx", `pattern A = "a"; pattern B = A A;`)
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	b := defs[1].Pattern.(*pattern.NonCaptureGroup).Child.(*pattern.Concat)
	if b.Children[0] != defs[0].Pattern || b.Children[1] != defs[0].Pattern {
		t.Errorf("references to A do not share the definition node")
	}
}

func TestDefinitionOrder(t *testing.T) {
	defs, err := Load("test.rx", "pattern Z = \"z\";\npattern A = \"a\";\npattern M = \"m\";\n")
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	var names []string
	for _, d := range defs {
		names = append(names, d.Name)
	}
	if got := strings.Join(names, ","); got != "Z,A,M" {
		t.Errorf("names = %q, want %q", got, "Z,A,M")
	}
	if defs[2].Pos.Line != 3 {
		t.Errorf("M line = %d, want 3", defs[2].Pos.Line)
	}
}

func TestRecursiveDefinition(t *testing.T) {
	defs, err := Load("test.rx", `pattern Nested = "(" Nested? ")";`)
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	_, err = pattern.String(defs[0].Pattern)
	if !errors.Is(err, pattern.ErrRecursion) {
		t.Fatalf("String() error = %v, want ErrRecursion", err)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"syntax", `pattern A = "a"`, "unexpected"},
		{"duplicate", `pattern A = "a"; pattern A = "b";`, "defined twice"},
		{"keyword name", `pattern digit = "a";`, "keyword"},
		{"unknown reference", `pattern A = B;`, `unknown pattern "B"`},
		{"multi-character range end", `pattern A = [ "ab"-"c" ];`, "not a single character"},
		{"inverted set range", `pattern A = [ "z"-"a" ];`, "greater than end"},
		{"inverted numeric range", `pattern A = range(5, 1);`, "min"},
		{"inverted quantifier", `pattern A = "a"{3,1};`, "inverted"},
		{"unknown modifier", `pattern A = modify("q", "a");`, "unknown option letter"},
		{"named atomic", `pattern A = atomic<x>("a");`, "cannot be named"},
		{"bad group name", `pattern A = capture<>("a");`, "name"},
		{"bad hex", `pattern A = hex("zz");`, "hex"},
		{"long char", `pattern A = char("ab");`, "not a single character"},
		{"comment with paren", `pattern A = comment("a)");`, "comment"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load("test.rx", tt.src)
			if err == nil {
				t.Fatalf("Load(%q) returned no error", tt.src)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Load(%q) error = %q, want it to contain %q", tt.src, err, tt.want)
			}
		})
	}
}

func TestErrorsCarryPosition(t *testing.T) {
	_, err := Load("ids.rx", "pattern A = \"a\";\npattern B = Missing;\n")
	if err == nil {
		t.Fatal("Load() returned no error")
	}
	if !strings.Contains(err.Error(), "ids.rx:2:") {
		t.Errorf("error %q does not name ids.rx line 2", err)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.rx")
	if err := os.WriteFile(path, []byte(`pattern Word = word+;`), 0o644); err != nil {
		t.Fatal(err)
	}
	defs, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() returned error: %v", err)
	}
	if len(defs) != 1 || defs[0].Name != "Word" {
		t.Fatalf("LoadFile() = %+v, want one definition named Word", defs)
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.rx")); err == nil {
		t.Error("LoadFile() on a missing file returned no error")
	}
}
