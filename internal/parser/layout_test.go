package parser

import (
	"testing"

	"github.com/sorinciupitu/extrase-trezorerie/internal/models"
)

func TestGroupRows(t *testing.T) {
	words := []models.Word{
		{Text: "c", X: 300, Y: 102},
		{Text: "a", X: 100, Y: 100},
		{Text: "e", X: 250, Y: 141},
		{Text: "b", X: 200, Y: 101},
		{Text: "d", X: 120, Y: 140},
	}

	rows := GroupRows(words)
	if len(rows) != 2 {
		t.Fatalf("rows: got %d, want 2", len(rows))
	}

	if got, want := rows[0].Text(), "a b c"; got != want {
		t.Errorf("rows[0]: got %q, want %q", got, want)
	}
	if got, want := rows[1].Text(), "d e"; got != want {
		t.Errorf("rows[1]: got %q, want %q", got, want)
	}
}

func TestGroupRows_DriftAcrossRow(t *testing.T) {
	// Each word drifts 4 units below the previous one. The greedy walk
	// compares against the last appended word, so the whole run stays
	// one row even though first and last are 12 apart.
	words := []models.Word{
		{Text: "a", X: 10, Y: 100},
		{Text: "b", X: 20, Y: 104},
		{Text: "c", X: 30, Y: 108},
		{Text: "d", X: 40, Y: 112},
	}

	rows := GroupRows(words)
	if len(rows) != 1 {
		t.Fatalf("rows: got %d, want 1", len(rows))
	}
	if got := rows[0].Text(); got != "a b c d" {
		t.Errorf("row text: got %q", got)
	}
}

func TestGroupRows_Empty(t *testing.T) {
	if rows := GroupRows(nil); rows != nil {
		t.Errorf("expected no rows for empty input, got %d", len(rows))
	}
}

func TestDetectColumnSplit(t *testing.T) {
	words := []models.Word{
		{Text: "Nr.", X: 50, Y: 90},
		{Text: "DEBIT", X: 300, Y: 90},
		{Text: "CREDIT", X: 500, Y: 90},
	}
	if got := DetectColumnSplit(words, 1000); got != 400 {
		t.Errorf("split: got %v, want 400", got)
	}
}

func TestDetectColumnSplit_CaseInsensitive(t *testing.T) {
	words := []models.Word{
		{Text: "Debit", X: 280, Y: 90},
		{Text: "Credit", X: 520, Y: 90},
	}
	if got := DetectColumnSplit(words, 1000); got != 400 {
		t.Errorf("split: got %v, want 400", got)
	}
}

func TestDetectColumnSplit_Fallback(t *testing.T) {
	words := []models.Word{
		{Text: "Extras", X: 50, Y: 20},
		{Text: "de", X: 120, Y: 20},
		{Text: "cont", X: 150, Y: 20},
	}
	if got := DetectColumnSplit(words, 1000); got != 650 {
		t.Errorf("split: got %v, want 650", got)
	}
}
