package taxonomy

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/prevanto-lab/duerpcore/pkg/domain/types"
)

var stripMarks = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// Slugify normalizes free text for matching: diacritics stripped, lower
// cased, every run of non-alphanumerics collapsed to a single hyphen.
// "Chute de plain-pied (Atelier)" becomes "chute-de-plain-pied-atelier".
func Slugify(text string) string {
	folded, _, err := transform.String(stripMarks, text)
	if err != nil {
		// Transform only fails on malformed UTF-8; fall back to the raw text
		folded = text
	}

	var b strings.Builder
	b.Grow(len(folded))
	pendingSep := false
	for _, r := range strings.ToLower(folded) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingSep && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingSep = false
			b.WriteRune(r)
		} else {
			pendingSep = true
		}
	}
	return b.String()
}

// SlugOf is Slugify constrained to the CategorySlug type
func SlugOf(text string) types.CategorySlug {
	return types.CategorySlug(Slugify(text))
}
