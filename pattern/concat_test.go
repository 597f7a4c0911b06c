package pattern

import (
	"testing"

	"github.com/dlclark/regexp2"
)

func TestDigitAfterShortEscape(t *testing.T) {
	shared := Seq(Capture(Lit("a")), Backref(1))
	octal, err := Octal("12")
	if err != nil {
		t.Fatalf("Octal returned error: %v", err)
	}

	tests := []struct {
		name  string
		p     Pattern
		want  string
		match string
	}{
		{"backreference then digit", Seq(Capture(Lit("a")), Backref(1), Lit("0")), `(a)(?:\1)0`, "aa0"},
		{"backreference then letter", Seq(Capture(Lit("a")), Backref(1), Lit("x")), `(a)\1x`, "aax"},
		{"null then digit", Seq(NullChar(), Lit("1")), `(?:\0)1`, "\x001"},
		{"nested backreference then quantified digit", Seq(Capture(Lit("a")), Seq(Lit("b"), Backref(1)), OneOrMore(Lit("2"))), `(a)b(?:\1)2+`, "aba22"},
		{"shared node replayed", Seq(shared, Lit("0"), shared, Lit("1")), `(a)(?:\1)0(a)(?:\1)1`, ""},
		{"escaped backslash then digit", Seq(Lit(`\`), Lit("1")), `\\1`, `\1`},
		{"octal then digit", Seq(octal, Lit("3")), `\0123`, "\n3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mustRender(t, tt.p)
			if got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
			if tt.match == "" {
				return
			}
			re, err := regexp2.Compile("^(?:"+got+")$", regexp2.None)
			if err != nil {
				t.Fatalf("regexp2.Compile(%q) returned error: %v", got, err)
			}
			ok, err := re.MatchString(tt.match)
			if err != nil {
				t.Fatalf("MatchString(%q) returned error: %v", tt.match, err)
			}
			if !ok {
				t.Errorf("%q does not match %q", got, tt.match)
			}
		})
	}
}

func TestStringFeatures(t *testing.T) {
	tests := []struct {
		name    string
		p       Pattern
		safe    bool
		wantOut string
	}{
		{"plain set", RangeSet(MustRange('a', 'z')), true, "[a-z]"},
		{"subtraction", Set(WordChar()).SubtractChars(DigitChar()), false, `[\w-[\d]]`},
		{"nested subtraction", Seq(Lit("x"), OneOrMore(RangeSet(MustRange('a', 'z')).SubtractChars(Char('q')))), false, "x[a-z-[q]]+"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, features, err := StringFeatures(tt.p)
			if err != nil {
				t.Fatalf("StringFeatures returned error: %v", err)
			}
			if out != tt.wantOut {
				t.Errorf("StringFeatures() = %q, want %q", out, tt.wantOut)
			}
			if features.RE2Safe() != tt.safe {
				t.Errorf("RE2Safe() = %v, want %v", features.RE2Safe(), tt.safe)
			}
		})
	}
}

func TestSharedSubtractionReplayKeepsFeature(t *testing.T) {
	set := Set(WordChar()).SubtractChars(DigitChar())
	_, features, err := StringFeatures(Seq(set, Lit("-"), set))
	if err != nil {
		t.Fatalf("StringFeatures returned error: %v", err)
	}
	if !features.Subtraction {
		t.Error("Subtraction = false for a shared subtracted set")
	}
}
