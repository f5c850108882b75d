package parser

import (
	"fmt"
	"strings"

	"github.com/sorinciupitu/extrase-trezorerie/internal/models"
)

// Parser defines the interface for statement-family parsers.
type Parser interface {
	// Parse reconstructs transactions and the candidate closing
	// balance from a document's positioned words.
	Parse(doc models.Document) (*models.StatementInfo, error)
	// StatementName returns the human-readable statement family name.
	StatementName() string
}

// New returns the parser for the given statement kind.
func New(kind models.StatementKind) (Parser, error) {
	switch kind {
	case models.KindTreasury:
		return &TreasuryParser{}, nil
	default:
		return nil, fmt.Errorf("unsupported statement kind: %q", kind)
	}
}

// treasuryMarkers identify the Romanian treasury statement family.
var treasuryMarkers = []string{
	"trezorer",       // TREZORERIA, Trezoreria Statului
	"extras de cont", // statement title
	"sold final",
}

// AutoDetect identifies the statement family from the document's text.
func AutoDetect(doc models.Document) (models.StatementKind, error) {
	var b strings.Builder
	for _, page := range doc.Pages {
		for _, w := range page.Words {
			b.WriteString(w.Text)
			b.WriteByte(' ')
		}
	}
	combined := strings.ToLower(b.String())

	for _, marker := range treasuryMarkers {
		if strings.Contains(combined, marker) {
			return models.KindTreasury, nil
		}
	}

	return "", fmt.Errorf("could not detect statement family from document content")
}
