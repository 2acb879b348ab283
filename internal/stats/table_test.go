package stats

import (
	"strings"
	"testing"
)

func TestFormatTableAlignsColumns(t *testing.T) {
	headers := []string{"Stat", "Value"}
	rows := [][]string{
		{"Accuracy", "97%"},
		{"Avg Reaction", "412 ms"},
	}
	rightAlign := map[int]bool{1: true}

	lines := formatTable(headers, rows, rightAlign)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "Stat           Value" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != "Accuracy         97%" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if lines[2] != "Avg Reaction  412 ms" {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
}

func TestFormatTableWithoutHeaders(t *testing.T) {
	lines := formatTable(nil, [][]string{{"a", "1"}, {"bbb", "22"}}, nil)
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[0] != "a    1" {
		t.Fatalf("unexpected first line: %q", lines[0])
	}
	if lines[1] != "bbb  22" {
		t.Fatalf("unexpected second line: %q", lines[1])
	}
}

func TestWriteTable(t *testing.T) {
	var b strings.Builder
	if err := WriteTable(&b, []string{"Mode", "Lives"}, [][]string{{"reflex", "1"}, {"tracking", "5"}}, map[int]bool{1: true}); err != nil {
		t.Fatalf("write table: %v", err)
	}
	want := "Mode      Lives\nreflex        1\ntracking      5\n"
	if b.String() != want {
		t.Fatalf("unexpected table:\n%q\nwant\n%q", b.String(), want)
	}
}
