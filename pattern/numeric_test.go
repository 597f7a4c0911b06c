package pattern

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/dlclark/regexp2"
)

func TestNumericRangeString(t *testing.T) {
	tests := []struct {
		min, max int64
		lz       LeadingZeros
		want     string
	}{
		{100, 299, NoLeadingZeros, `[1-2]\d{2}`},
		{99, 100, NoLeadingZeros, "99|100"},
		{0, 9, NoLeadingZeros, `\d`},
		{7, 7, NoLeadingZeros, "7"},
		{3, 5, NoLeadingZeros, "[3-5]"},
		{1, 10, NoLeadingZeros, "[1-9]|10"},
		{0, 255, NoLeadingZeros, `\d|[1-9]\d|1\d{2}|2[0-4]\d|25[0-5]`},
		{150, 234, NoLeadingZeros, `1[5-9]\d|2[0-2]\d|23[0-4]`},
		{200, 200, NoLeadingZeros, "200"},
		{-9, -1, NoLeadingZeros, "-[1-9]"},
		{-15, 7, OptionalLeadingZeros, `-(?:0?\d|1[0-5])|0?[0-7]`},
		{1, 1000, RequiredLeadingZeros, `000[1-9]|00[1-9]\d|0[1-9]\d{2}|1000`},
		{0, 99, OptionalLeadingZeros, `0?\d|[1-9]\d`},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d..%d/%s", tt.min, tt.max, tt.lz), func(t *testing.T) {
			p, err := NumericRange(tt.min, tt.max, tt.lz)
			if err != nil {
				t.Fatalf("NumericRange returned error: %v", err)
			}
			if got := mustRender(t, p); got != tt.want {
				t.Errorf("NumericRange(%d, %d, %s) = %q, want %q", tt.min, tt.max, tt.lz, got, tt.want)
			}
		})
	}
}

func TestNumericRangeErrors(t *testing.T) {
	if _, err := NumericRange(5, 4, NoLeadingZeros); !errors.Is(err, ErrInvalidPattern) {
		t.Errorf("NumericRange(5, 4) error = %v, want ErrInvalidPattern", err)
	}
	if _, err := NumericRange(1, 4, LeadingZeros(7)); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("NumericRange with unknown policy error = %v, want ErrInvalidArgument", err)
	}
}

// zeroPad renders v padded with zeros to width digits.
func zeroPad(v int64, width int) string {
	digits := strconv.FormatInt(v, 10)
	sign := ""
	if v < 0 {
		sign, digits = "-", digits[1:]
	}
	if len(digits) < width {
		digits = strings.Repeat("0", width-len(digits)) + digits
	}
	return sign + digits
}

func numericWidth(min, max int64) int {
	width := len(strconv.FormatInt(max, 10))
	if min < 0 {
		if n := len(strconv.FormatInt(min, 10)) - 1; n > width {
			width = n
		}
	}
	if max < 0 {
		width = len(strconv.FormatInt(min, 10)) - 1
	}
	return width
}

func compileAnchored(t *testing.T, p Pattern) (*regexp2.Regexp, *regexp.Regexp) {
	t.Helper()
	expr := "^(?:" + mustRender(t, p) + ")$"
	dotnet, err := regexp2.Compile(expr, regexp2.None)
	if err != nil {
		t.Fatalf("regexp2.Compile(%q) returned error: %v", expr, err)
	}
	re2, err := regexp.Compile(expr)
	if err != nil {
		t.Fatalf("regexp.Compile(%q) returned error: %v", expr, err)
	}
	return dotnet, re2
}

func matches(t *testing.T, dotnet *regexp2.Regexp, re2 *regexp.Regexp, s string) bool {
	t.Helper()
	got, err := dotnet.MatchString(s)
	if err != nil {
		t.Fatalf("MatchString(%q) returned error: %v", s, err)
	}
	if re2.MatchString(s) != got {
		t.Fatalf("engines disagree on %q for %s", s, dotnet.String())
	}
	return got
}

func TestNumericRangeMatches(t *testing.T) {
	bounds := [][2]int64{
		{0, 0}, {0, 9}, {1, 9}, {0, 10}, {5, 42}, {10, 99}, {99, 100},
		{100, 299}, {105, 2340}, {999, 1001}, {0, 255}, {1, 1000},
		{37, 37}, {190, 210}, {-7, 0}, {-25, 13}, {-300, -120},
		{-1000, -999}, {-9, 99}, {18, 1203},
	}
	policies := []LeadingZeros{NoLeadingZeros, OptionalLeadingZeros, RequiredLeadingZeros}

	for _, b := range bounds {
		for _, lz := range policies {
			min, max := b[0], b[1]
			t.Run(fmt.Sprintf("%d..%d/%s", min, max, lz), func(t *testing.T) {
				p, err := NumericRange(min, max, lz)
				if err != nil {
					t.Fatalf("NumericRange returned error: %v", err)
				}
				dotnet, re2 := compileAnchored(t, p)
				width := numericWidth(min, max)

				for v := min - 40; v <= max+40; v++ {
					want := min <= v && v <= max
					plain := strconv.FormatInt(v, 10)
					pad := zeroPad(v, width)

					switch lz {
					case NoLeadingZeros:
						if got := matches(t, dotnet, re2, plain); got != want {
							t.Errorf("%q matched %v, want %v", plain, got, want)
						}
						if pad != plain && matches(t, dotnet, re2, pad) {
							t.Errorf("padded %q matched without leading zeros", pad)
						}
					case RequiredLeadingZeros:
						if got := matches(t, dotnet, re2, pad); got != want {
							t.Errorf("%q matched %v, want %v", pad, got, want)
						}
						if pad != plain && matches(t, dotnet, re2, plain) {
							t.Errorf("unpadded %q matched with required leading zeros", plain)
						}
					case OptionalLeadingZeros:
						if got := matches(t, dotnet, re2, plain); got != want {
							t.Errorf("%q matched %v, want %v", plain, got, want)
						}
						if got := matches(t, dotnet, re2, pad); got != want {
							t.Errorf("%q matched %v, want %v", pad, got, want)
						}
					}
				}
			})
		}
	}
}

func TestNumericRangeExtremes(t *testing.T) {
	p, err := NumericRange(math.MinInt64, math.MaxInt64, NoLeadingZeros)
	if err != nil {
		t.Fatalf("NumericRange returned error: %v", err)
	}
	dotnet, re2 := compileAnchored(t, p)
	for _, s := range []string{"0", "-9223372036854775808", "9223372036854775807", "-1", "42"} {
		if !matches(t, dotnet, re2, s) {
			t.Errorf("%q did not match the full int64 range", s)
		}
	}
	for _, s := range []string{"9223372036854775808", "-9223372036854775809", "10000000000000000000"} {
		if matches(t, dotnet, re2, s) {
			t.Errorf("%q matched the full int64 range", s)
		}
	}
}

func TestDigitPattern(t *testing.T) {
	tests := []struct {
		prefix         string
		lo, hi, trails int
		want           string
	}{
		{"", 0, 9, 0, `\d`},
		{"", 1, 2, 2, `[1-2]\d{2}`},
		{"4", 3, 3, 1, `43\d`},
		{"12", 0, 9, 3, `12\d\d{3}`},
	}
	for _, tt := range tests {
		got := mustRender(t, DigitPattern(tt.prefix, tt.lo, tt.hi, tt.trails))
		if got != tt.want {
			t.Errorf("DigitPattern(%q, %d, %d, %d) = %q, want %q", tt.prefix, tt.lo, tt.hi, tt.trails, got, tt.want)
		}
	}
}
