package services

import (
	"fmt"
	"io"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// Only the first pages of a multi-page bill are considered; anything past
// this is terms-and-conditions boilerplate.
const maxPDFPages = 5

// ExtractTextFromPDF pulls the text layer out of a PDF, page by page, capped
// at maxPDFPages, and returns the concatenated text for the bill extractor.
// Scanned-image PDFs have no text layer and come back (near) empty; the
// caller falls back to the all-default record in that case.
func ExtractTextFromPDF(rs io.ReadSeeker) (string, error) {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	ctx, err := api.ReadContext(rs, conf)
	if err != nil {
		return "", fmt.Errorf("read pdf: %w", err)
	}
	if err := api.ValidateContext(ctx); err != nil {
		return "", fmt.Errorf("validate pdf: %w", err)
	}

	pages := ctx.PageCount
	if pages > maxPDFPages {
		pages = maxPDFPages
	}

	var sb strings.Builder
	for i := 1; i <= pages; i++ {
		r, err := pdfcpu.ExtractPageContent(ctx, i)
		if err != nil || r == nil {
			continue
		}
		content, err := io.ReadAll(r)
		if err != nil {
			continue
		}
		sb.WriteString(pageTextFromContent(content))
		sb.WriteString(" ")
	}

	return sb.String(), nil
}

// pageTextFromContent scans a decoded content stream for literal string
// operands ("(...)" as used by Tj/TJ/' operators) and joins them with
// spaces. Hex strings and glyph positioning are ignored; bill PDFs with a
// real text layer emit plain literal strings, and the downstream regex
// extraction only needs the words in order.
func pageTextFromContent(content []byte) string {
	var parts []string
	var current strings.Builder
	depth := 0

	for i := 0; i < len(content); i++ {
		ch := content[i]

		if depth == 0 {
			if ch == '(' {
				depth = 1
				current.Reset()
			}
			continue
		}

		switch ch {
		case '\\':
			if i+1 < len(content) {
				i++
				switch content[i] {
				case 'n':
					current.WriteByte('\n')
				case 't':
					current.WriteByte('\t')
				case 'r', 'f', 'b':
					current.WriteByte(' ')
				default:
					current.WriteByte(content[i])
				}
			}
		case '(':
			depth++
			current.WriteByte(ch)
		case ')':
			depth--
			if depth == 0 {
				if s := current.String(); strings.TrimSpace(s) != "" {
					parts = append(parts, s)
				}
			} else {
				current.WriteByte(ch)
			}
		default:
			current.WriteByte(ch)
		}
	}

	return strings.Join(parts, " ")
}
