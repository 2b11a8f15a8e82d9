package scanner

import (
	"sort"
	"testing"
	"unicode/utf8"
)

// scanSorted runs Scan and returns the result as a sorted slice for easy
// comparison.
func scanSorted(t *testing.T, input string) []string {
	t.Helper()
	set := Scan([]byte(input))
	out := make([]string, 0, len(set))
	for c := range set {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestScanBasicUtilities(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"single utility", "flex", []string{"flex"}},
		{"two utilities", "flex underline", []string{"flex", "underline"}},
		{"duplicate collapses", "flex flex flex", []string{"flex"}},
		{"negative margin", "-mt-4", []string{"-mt-4"}},
		{"fraction modifier", "w-1/2", []string{"w-1/2"}},
		{"decimal spacing", "p-1.5", []string{"p-1.5"}},
		{"opacity modifier", "bg-red-500/50", []string{"bg-red-500/50"}},
		{"important marker", "!p-0", []string{"!p-0"}},
		{"numeric prefix", "2xl:flex", []string{"2xl:flex"}},
		{"empty input", "", nil},
		{"whitespace only", " \t\n ", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := scanSorted(t, tt.input)
			want := tt.want
			if want == nil {
				want = []string{}
			}
			if !equal(got, want) {
				t.Errorf("Scan(%q) = %v, want %v", tt.input, got, want)
			}
		})
	}
}

func TestScanVariantChains(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"single variant", "hover:flex", []string{"hover:flex"}},
		{"chained variants", "md:hover:bg-red-500", []string{"md:hover:bg-red-500"}},
		{"long chain", "dark:md:hover:focus:underline", []string{"dark:md:hover:focus:underline"}},
		{"arbitrary selector variant", "[&>*]:flex", []string{"[&>*]:flex"}},
		{"pseudo element variant", "[&::before]:content-none", []string{"[&::before]:content-none"}},
		{"variant on important", "md:!p-0", []string{"md:!p-0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := scanSorted(t, tt.input)
			if !equal(got, tt.want) {
				t.Errorf("Scan(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestScanArbitraryValues(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"arbitrary value", "bg-[red]", []string{"bg-[red]"}},
		{"arbitrary property", "[color:red]", []string{"[color:red]"}},
		{"nested brackets", "grid-cols-[repeat(2,[min-content])]", []string{"grid-cols-[repeat(2,[min-content])]"}},
		{"quoted bracket is data", "content-['[']", []string{"content-['[']"}},
		{"quoted space is data", "bg-[url('a b.png')]", []string{"bg-[url('a b.png')]"}},
		{"arbitrary value with modifier", "bg-[red]/50", []string{"bg-[red]/50"}},
		{"arbitrary modifier", "bg-red-500/[0.5]", []string{"bg-red-500/[0.5]"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := scanSorted(t, tt.input)
			if !equal(got, tt.want) {
				t.Errorf("Scan(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestScanMalformedRunsEmitNothing(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"unbalanced bracket", "bg-[red"},
		{"dangling colon", "hover:"},
		{"dangling chain colon", "md:hover:"},
		{"unterminated quote", "bg-['red"},
		{"punctuation only", "--- ... !!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := scanSorted(t, tt.input)
			if len(got) != 0 {
				t.Errorf("Scan(%q) = %v, want no candidates", tt.input, got)
			}
		})
	}
}

// The span before an unquoted space inside a bracket can never balance, but
// text after the reset is scanned normally.
func TestScanRecoversAfterMalformedRun(t *testing.T) {
	got := scanSorted(t, "bg-[a b] flex")
	for _, c := range got {
		if c == "bg-[a" || c == "bg-[a b]" {
			t.Fatalf("malformed bracket run leaked candidate %q", c)
		}
	}
	found := false
	for _, c := range got {
		if c == "flex" {
			found = true
		}
	}
	if !found {
		t.Errorf("Scan after malformed run = %v, want it to contain %q", got, "flex")
	}
}

func TestScanMarkupContext(t *testing.T) {
	got := scanSorted(t, `<div class="md:hover:bg-red-500">`)

	want := "md:hover:bg-red-500"
	found := false
	for _, c := range got {
		if c == want {
			found = true
		}
	}
	if !found {
		t.Fatalf("Scan(markup) = %v, want it to contain %q", got, want)
	}

	// The chain must be one candidate, not its fragments.
	for _, fragment := range []string{"md", "hover", "bg-red-500"} {
		for _, c := range got {
			if c == fragment {
				t.Errorf("Scan emitted fragment %q instead of keeping the chain whole", fragment)
			}
		}
	}
}

func TestScanEmptyVariantSegment(t *testing.T) {
	got := scanSorted(t, "md::flex")
	if !equal(got, []string{"flex"}) {
		t.Errorf("Scan(%q) = %v, want [flex]", "md::flex", got)
	}
}

func TestScanSecondBangTerminates(t *testing.T) {
	got := scanSorted(t, "a!b!c")
	if !equal(got, []string{"!c", "a!b"}) {
		t.Errorf("Scan(%q) = %v, want [!c a!b]", "a!b!c", got)
	}
}

func TestScanEscapedTerminator(t *testing.T) {
	got := scanSorted(t, `w-\[7px\]`)
	if !equal(got, []string{`w-\[7px\]`}) {
		t.Errorf("Scan = %v, want the escaped span kept literal", got)
	}
}

func TestScanMultiByteBoundaries(t *testing.T) {
	inputs := []string{
		"héllo-class flex",
		"日本語 underline 中文",
		"before état:after flex",
		"emoji🎉inside p-4",
		"🎉 leading and trailing 🎉",
	}

	for _, input := range inputs {
		set := Scan([]byte(input))
		for c := range set {
			if !utf8.ValidString(c) {
				t.Errorf("Scan(%q) emitted invalid UTF-8 candidate %q", input, c)
			}
			if c[0] >= 0x80 {
				t.Errorf("Scan(%q) emitted candidate starting at a non-ASCII byte: %q", input, c)
			}
		}
	}
}

// Leading multi-byte runes never open a candidate; the first ASCII start
// byte after them does.
func TestScanSkipsLeadingMultiByte(t *testing.T) {
	got := scanSorted(t, "é flex")
	found := false
	for _, c := range got {
		if c == "flex" {
			found = true
		}
	}
	if !found {
		t.Errorf("Scan = %v, want it to contain flex", got)
	}
}

// Re-scanning any emitted candidate as its own buffer must reproduce exactly
// that candidate.
func TestScanIdempotence(t *testing.T) {
	source := `<main class="md:hover:bg-red-500 w-1/2 !p-0 bg-[url('a b.png')] [&>*]:flex p-1.5 bg-red-500/[0.5]">`

	for c := range Scan([]byte(source)) {
		rescan := Scan([]byte(c))
		if _, ok := rescan[c]; !ok || len(rescan) != 1 {
			t.Errorf("rescanning %q produced %v, want exactly itself", c, rescan)
		}
	}
}

func TestScanLargeBufferLinear(t *testing.T) {
	// Duplicate-heavy buffer: many repetitions collapse to a small set.
	chunk := []byte(`<div class="flex md:hover:bg-red-500 w-1/2">text content here</div>` + "\n")
	buf := make([]byte, 0, len(chunk)*5000)
	for i := 0; i < 5000; i++ {
		buf = append(buf, chunk...)
	}

	set := Scan(buf)
	for _, want := range []string{"flex", "md:hover:bg-red-500", "w-1/2"} {
		if _, ok := set[want]; !ok {
			t.Errorf("large scan missing %q", want)
		}
	}
	if len(set) > 16 {
		t.Errorf("large duplicate-heavy scan produced %d distinct candidates, expected a small set", len(set))
	}
}
