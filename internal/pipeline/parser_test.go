package pipeline

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []string
	}{
		{
			name: "plain fields",
			line: "1,Ana,Silva",
			want: []string{"1", "Ana", "Silva"},
		},
		{
			name: "quoted field keeps comma",
			line: `1,"Doe, Jane",x`,
			want: []string{"1", "Doe, Jane", "x"},
		},
		{
			name: "whitespace trimmed",
			line: "  a , b  ,c\r",
			want: []string{"a", "b", "c"},
		},
		{
			name: "empty fields kept",
			line: "a,,c,",
			want: []string{"a", "", "c", ""},
		},
		{
			name: "every quote is dropped",
			line: `"a"b"c"`,
			want: []string{"abc"},
		},
		{
			// Doubled quotes are not an escape: the state flips twice.
			name: "doubled quote limitation",
			line: `"say ""hi"", ok",z`,
			want: []string{"say hi, ok", "z"},
		},
		{
			name: "empty line is one empty field",
			line: "",
			want: []string{""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseLine(tt.line)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParseLine(%q) mismatch (-want +got):\n%s", tt.line, diff)
			}
		})
	}
}

func TestParseRecords(t *testing.T) {
	text := "id,nome,email\n" +
		"1,\"Silva, Ana\",ana@example.com\n" +
		"\n" +
		"   \n" +
		"2,Bruno\n" +
		"3,Carla,carla@example.com,extra\n"

	got := ParseRecords(text)
	want := []Record{
		{"id": "1", "nome": "Silva, Ana", "email": "ana@example.com"},
		{"id": "2", "nome": "Bruno", "email": ""},
		{"id": "3", "nome": "Carla", "email": "carla@example.com"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ParseRecords() mismatch (-want +got):\n%s", diff)
	}
}

func TestParseRecords_CountMatchesDataRows(t *testing.T) {
	text := "a,b,c\r\n1,2,3\r\n4,5,6\r\n7,8,9\r\n"

	got := ParseRecords(text)
	if len(got) != 3 {
		t.Fatalf("len(records) = %d, want 3", len(got))
	}
	for i, rec := range got {
		if len(rec) != 3 {
			t.Errorf("record %d has %d keys, want 3", i, len(rec))
		}
	}
	if got[2]["c"] != "9" {
		t.Errorf(`records[2]["c"] = %q, want "9"`, got[2]["c"])
	}
}

func TestParse_HeaderOnlyAndEmpty(t *testing.T) {
	if recs := ParseRecords("id,nome\n"); len(recs) != 0 {
		t.Errorf("header only: got %d records, want 0", len(recs))
	}
	if recs := ParseRecords(""); len(recs) != 0 {
		t.Errorf("empty text: got %d records, want 0", len(recs))
	}
}

func TestRecordsFromRows_DuplicateHeaderLastWins(t *testing.T) {
	got := RecordsFromRows([]string{"nome", "nome"}, [][]string{{"first", "second"}})
	if got[0]["nome"] != "second" {
		t.Errorf(`nome = %q, want "second"`, got[0]["nome"])
	}
}
