package extractor

import (
	"testing"

	"github.com/ledongthuc/pdf"

	"github.com/sorinciupitu/extrase-trezorerie/internal/models"
)

func frag(s string, x, y, w float64) pdf.Text {
	return pdf.Text{Font: "Helvetica", FontSize: 9, X: x, Y: y, W: w, S: s}
}

func TestAssembleWords_MergesGlyphRuns(t *testing.T) {
	// "Sold" and "final" on one baseline, glyph by glyph, with a word
	// gap between them. Page height 800, so baseline 700 maps to y=100.
	texts := []pdf.Text{
		frag("S", 100, 700, 5),
		frag("o", 105, 700, 5),
		frag("l", 110, 700, 3),
		frag("d", 113, 700, 5),
		frag("f", 140, 700, 4),
		frag("i", 144, 700, 2),
		frag("n", 146, 700, 5),
		frag("a", 151, 700, 5),
		frag("l", 156, 700, 3),
	}

	words := assembleWords(texts, 800)
	if len(words) != 2 {
		t.Fatalf("words: got %d, want 2", len(words))
	}
	if words[0].Text != "Sold" {
		t.Errorf("words[0]: got %q, want Sold", words[0].Text)
	}
	if words[1].Text != "final" {
		t.Errorf("words[1]: got %q, want final", words[1].Text)
	}
	if words[0].X != 100 {
		t.Errorf("words[0].X: got %v, want 100", words[0].X)
	}
	if words[0].Y != 100 {
		t.Errorf("words[0].Y: got %v, want 100 (flipped origin)", words[0].Y)
	}
}

func TestAssembleWords_BaselineNudge(t *testing.T) {
	// Fragments whose baselines differ by under a point still land on
	// one row, in left-to-right order.
	texts := []pdf.Text{
		frag("b", 120, 699.6, 5),
		frag("a", 100, 700, 5),
	}

	words := assembleWords(texts, 800)
	if len(words) != 2 {
		t.Fatalf("words: got %d, want 2", len(words))
	}
	if words[0].Text != "a" || words[1].Text != "b" {
		t.Errorf("order: got %q, %q, want a, b", words[0].Text, words[1].Text)
	}
	if words[0].Y != words[1].Y {
		t.Errorf("expected equal Y after nudge, got %v and %v", words[0].Y, words[1].Y)
	}
}

func TestAssembleWords_SpaceGlyphSplits(t *testing.T) {
	texts := []pdf.Text{
		frag("1.234,56", 500, 700, 40),
		frag(" ", 540, 700, 3),
		frag("RON", 543, 700, 20),
	}

	words := assembleWords(texts, 800)
	if len(words) != 2 {
		t.Fatalf("words: got %d, want 2", len(words))
	}
	if words[0].Text != "1.234,56" {
		t.Errorf("words[0]: got %q", words[0].Text)
	}
	if words[1].Text != "RON" {
		t.Errorf("words[1]: got %q", words[1].Text)
	}
}

func TestAssembleWords_Empty(t *testing.T) {
	if words := assembleWords(nil, 800); words != nil {
		t.Errorf("expected no words, got %d", len(words))
	}
}

func TestIsReadableDocument(t *testing.T) {
	readable := models.Document{Pages: []models.Page{{
		Width: 595,
		Words: []models.Word{
			{Text: "TREZORERIA", X: 100, Y: 20},
			{Text: "Extras", X: 100, Y: 40},
			{Text: "de", X: 140, Y: 40},
			{Text: "cont", X: 155, Y: 40},
			{Text: "Sold", X: 100, Y: 60},
			{Text: "final", X: 130, Y: 60},
			{Text: "12.345,67", X: 400, Y: 60},
			{Text: "editat", X: 100, Y: 80},
			{Text: "la", X: 140, Y: 80},
			{Text: "data", X: 155, Y: 80},
			{Text: "31.01.2024", X: 190, Y: 80},
		},
	}}}
	if !isReadableDocument(readable) {
		t.Error("expected readable document to pass")
	}

	empty := models.Document{}
	if isReadableDocument(empty) {
		t.Error("expected empty document to fail")
	}

	garbage := models.Document{Pages: []models.Page{{
		Width: 595,
		Words: []models.Word{
			{Text: "�������", X: 10, Y: 10},
			{Text: "����������", X: 10, Y: 30},
			{Text: "����������", X: 10, Y: 50},
			{Text: "����������", X: 10, Y: 70},
			{Text: "����������", X: 10, Y: 90},
			{Text: "����������", X: 10, Y: 110},
		},
	}}}
	if isReadableDocument(garbage) {
		t.Error("expected garbage document to fail")
	}
}
