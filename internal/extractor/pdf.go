package extractor

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"unicode"

	"github.com/ledongthuc/pdf"

	"github.com/sorinciupitu/extrase-trezorerie/internal/models"
)

// ExtractDocument reads a PDF file and returns its pages as positioned
// words, ready for layout parsing. It fails for image-based scans and
// for PDFs whose fonts decode to garbage — the caller gets a
// document-level error and nothing is parsed from the file.
func ExtractDocument(filePath, name string) (models.Document, error) {
	doc, err := extractWithLibrary(filePath)
	if err != nil {
		return models.Document{}, fmt.Errorf("PDF text extraction failed: %w. The file may be image-based/scanned or use custom font encodings", err)
	}
	doc.Name = name

	if !isReadableDocument(doc) {
		return models.Document{}, fmt.Errorf("no readable text could be extracted from PDF; the file may be image-based/scanned")
	}
	return doc, nil
}

// extractWithLibrary walks every page's content stream and assembles
// positioned words. The pdf library panics on malformed files, so the
// whole walk runs under a recover.
func extractWithLibrary(filePath string) (doc models.Document, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("PDF library crashed: %v", r)
		}
	}()

	f, r, openErr := pdf.Open(filePath)
	if openErr != nil {
		return models.Document{}, openErr
	}
	defer f.Close()

	numPages := r.NumPage()
	if numPages == 0 {
		return models.Document{}, fmt.Errorf("PDF has no pages")
	}

	for i := 1; i <= numPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		width, height := pageSize(page)
		words := assembleWords(page.Content().Text, height)
		doc.Pages = append(doc.Pages, models.Page{Width: width, Words: words})
	}

	return doc, nil
}

// pageSize resolves the page's MediaBox, walking up the page tree for
// inherited values, and returns width and height in points.
func pageSize(page pdf.Page) (width, height float64) {
	v := page.V
	for !v.IsNull() {
		if mb := v.Key("MediaBox"); !mb.IsNull() && mb.Len() == 4 {
			width = mb.Index(2).Float64() - mb.Index(0).Float64()
			height = mb.Index(3).Float64() - mb.Index(1).Float64()
			return width, height
		}
		v = v.Key("Parent")
	}
	// A4 portrait default when the PDF omits the MediaBox entirely.
	return 595.0, 842.0
}

// assembleWords merges the content stream's text fragments into word
// tokens. Fragments are often single glyphs; two fragments belong to
// the same word when they share a baseline and the horizontal gap
// between them is within a fraction of the font size. Y coordinates
// are flipped from the PDF's bottom-left origin to top-left so that
// ascending Y means further down the page.
func assembleWords(texts []pdf.Text, pageHeight float64) []models.Word {
	if len(texts) == 0 {
		return nil
	}

	chars := make([]pdf.Text, 0, len(texts))
	for _, t := range texts {
		if t.S == "" {
			continue
		}
		chars = append(chars, t)
	}
	if len(chars) == 0 {
		return nil
	}

	// Normalize baselines that differ by less than a point, then sort
	// top-to-bottom, left-to-right.
	sort.Sort(pdf.TextVertical(chars))
	const nudge = 1.0
	old := -100000.0
	for i, c := range chars {
		if c.Y != old && math.Abs(old-c.Y) < nudge {
			chars[i].Y = old
		} else {
			old = c.Y
		}
	}
	sort.Sort(pdf.TextVertical(chars))

	var words []models.Word
	for i := 0; i < len(chars); {
		// All fragments on this baseline.
		j := i + 1
		for j < len(chars) && chars[j].Y == chars[i].Y {
			j++
		}

		for k := i; k < j; {
			ck := chars[k]
			s := ck.S
			end := ck.X + ck.W
			// Glyph gaps beyond this are word breaks.
			charSpace := ck.FontSize / 3
			if charSpace <= 0 {
				charSpace = 1.5
			}

			l := k + 1
			for l < j {
				cl := chars[l]
				if strings.TrimSpace(cl.S) == "" {
					// Explicit space glyph terminates the word.
					l++
					break
				}
				if cl.X > end+charSpace {
					break
				}
				s += cl.S
				end = cl.X + cl.W
				l++
			}

			if trimmed := strings.TrimSpace(s); trimmed != "" {
				words = append(words, models.Word{
					Text: trimmed,
					X:    ck.X,
					Y:    pageHeight - ck.Y,
				})
			}
			k = l
		}
		i = j
	}

	return words
}

// textQuality returns the ratio of basic readable characters to total.
// A strict ASCII check plus Romanian diacritics — unicode.IsLetter is
// too broad and matches the garbage produced by identity-encoded fonts.
func textQuality(doc models.Document) float64 {
	total := 0
	readable := 0
	for _, page := range doc.Pages {
		for _, w := range page.Words {
			for _, r := range w.Text {
				total++
				if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
					(r >= '0' && r <= '9') || unicode.IsSpace(r) ||
					strings.ContainsRune(".,-/:;()'\"=%&@#!?+*", r) ||
					strings.ContainsRune("ăâîșțĂÂÎȘȚşţŞŢ", r) {
					readable++
				}
			}
		}
	}
	if total == 0 {
		return 0
	}
	return float64(readable) / float64(total)
}

// commonWords appear in virtually every treasury statement. Extracted
// text containing none of them is likely garbage.
var commonWords = []string{
	"trezorer", "extras", "cont", "sold", "data", "debit", "credit",
	"plat", "document", "banca", "pagina",
}

func containsCommonWords(doc models.Document) bool {
	var b strings.Builder
	for _, page := range doc.Pages {
		for _, w := range page.Words {
			b.WriteString(w.Text)
			b.WriteByte(' ')
		}
	}
	combined := strings.ToLower(b.String())
	for _, word := range commonWords {
		if strings.Contains(combined, word) {
			return true
		}
	}
	return false
}

// isReadableDocument checks that the extraction produced enough text,
// that it is readable rather than binary garbage, and that it contains
// at least one word a statement would actually have.
func isReadableDocument(doc models.Document) bool {
	total := 0
	for _, page := range doc.Pages {
		for _, w := range page.Words {
			total += len(w.Text)
		}
	}
	if total <= 50 {
		return false
	}
	if textQuality(doc) <= 0.6 {
		return false
	}
	return containsCommonWords(doc)
}
