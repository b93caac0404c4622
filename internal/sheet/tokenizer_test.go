package sheet

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  [][]string
	}{
		{
			name:  "empty input",
			input: "",
			want:  nil,
		},
		{
			name:  "single row without trailing newline",
			input: "a,b,c",
			want:  [][]string{{"a", "b", "c"}},
		},
		{
			name:  "quoted field with comma",
			input: "a,\"b,c\",d\n",
			want:  [][]string{{"a", "b,c", "d"}},
		},
		{
			name:  "escaped quotes",
			input: "\"he said \"\"hi\"\"\",x\n",
			want:  [][]string{{`he said "hi"`, "x"}},
		},
		{
			name:  "crlf terminators collapse",
			input: "a,b\r\nc,d\r\n",
			want:  [][]string{{"a", "b"}, {"c", "d"}},
		},
		{
			name:  "bare cr terminator",
			input: "a,b\rc,d",
			want:  [][]string{{"a", "b"}, {"c", "d"}},
		},
		{
			name:  "embedded newline inside quotes",
			input: "id,games\n1,\"Zelda\nMario\"\n",
			want:  [][]string{{"id", "games"}, {"1", "Zelda\nMario"}},
		},
		{
			name:  "blank lines produce no rows",
			input: "a\n\n\nb\n",
			want:  [][]string{{"a"}, {"b"}},
		},
		{
			name:  "trailing comma keeps empty last cell",
			input: "a,\n",
			want:  [][]string{{"a", ""}},
		},
		{
			name:  "empty quoted field",
			input: "\"\",x\n",
			want:  [][]string{{"", "x"}},
		},
		{
			name:  "uneven rows are kept as-is",
			input: "a,b,c\n1\n2,3\n",
			want:  [][]string{{"a", "b", "c"}, {"1"}, {"2", "3"}},
		},
		{
			name:  "utf-8 passes through",
			input: "Pokémon,·\n",
			want:  [][]string{{"Pokémon", "·"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.input)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Parse(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestParse_RoundTrip(t *testing.T) {
	inputs := []string{
		"a,b,c\nd,e,f",
		"id,name,price\n1,zelda,19990\n2,mario,14990",
		"x",
		"one,two\nthree,four\nfive,six",
	}

	for _, in := range inputs {
		rows := Parse(in)
		lines := make([]string, len(rows))
		for i, row := range rows {
			lines[i] = strings.Join(row, ",")
		}
		if got := strings.Join(lines, "\n"); got != in {
			t.Errorf("round trip of %q = %q", in, got)
		}

		// A trailing newline must not change the rows.
		if diff := cmp.Diff(rows, Parse(in+"\n")); diff != "" {
			t.Errorf("trailing newline changed rows for %q:\n%s", in, diff)
		}
	}
}

func TestParseReader_SkipsBOM(t *testing.T) {
	input := "\xEF\xBB\xBFPack ID,Estado\n1,Disponible\n"

	rows, err := ParseReader(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseReader() error = %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	if rows[0][0] != "Pack ID" {
		t.Errorf("first header = %q, want %q", rows[0][0], "Pack ID")
	}
}

func TestParseReader_InvalidUTF8(t *testing.T) {
	rows, err := ParseReader(strings.NewReader("a\x80b,c\n"))
	if err != nil {
		t.Fatalf("ParseReader() error = %v", err)
	}
	if got := rows[0][0]; got != "a\uFFFDb" {
		t.Errorf("cell = %q, want %q", got, "a\uFFFDb")
	}
}
