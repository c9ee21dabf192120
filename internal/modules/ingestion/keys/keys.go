package keys

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/aitbenali/autoparts-backend/internal/modules/ingestion/feed"
)

// VehicleKey is the natural identity of a vehicle configuration. Year is the
// synthesized midpoint of the feed's fitment range: collapsing a range onto a
// single representative year is a deliberate, lossy policy, so two ranges
// with the same midpoint resolve to the same vehicle.
type VehicleKey struct {
	Brand           string
	Model           string
	Year            int
	EngineSignature string
}

// RowKeys are the candidate natural keys synthesized from one fitment row.
type RowKeys struct {
	CategorySlug string
	Vehicle      VehicleKey
	ProductRef   string
}

var stripDiacritics = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Slugify is total and deterministic: lowercase, diacritics stripped,
// non-alphanumeric runs collapsed to a single dash, leading/trailing dashes
// trimmed. Repeated and concurrent runs must agree on identity without a
// lookup, which is why this never consults the store.
func Slugify(name string) string {
	s, _, err := transform.String(stripDiacritics, name)
	if err != nil {
		s = name
	}
	s = strings.ToLower(s)
	var b strings.Builder
	b.Grow(len(s))
	lastDash := true
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			lastDash = false
			continue
		}
		if !lastDash {
			b.WriteByte('-')
			lastDash = true
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// SynthesizeYear is the floor of the arithmetic mean of the range bounds.
// A corrupt row with start > end is swapped rather than rejected.
func SynthesizeYear(start, end int) int {
	if start > end {
		start, end = end, start
	}
	return (start + end) / 2
}

// EngineSignature normalizes and concatenates displacement and engine code.
func EngineSignature(displacement, engineCode string) string {
	d := normalizeToken(displacement)
	c := normalizeToken(engineCode)
	switch {
	case d == "":
		return c
	case c == "":
		return d
	}
	return d + "-" + c
}

func normalizeToken(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), ""))
}

// FromRow synthesizes all candidate keys for one fitment row.
func FromRow(row feed.Row) RowKeys {
	return RowKeys{
		CategorySlug: Slugify(row.CategoryName),
		Vehicle: VehicleKey{
			Brand:           strings.TrimSpace(row.Brand),
			Model:           strings.TrimSpace(row.Model),
			Year:            SynthesizeYear(row.YearStart, row.YearEnd),
			EngineSignature: EngineSignature(row.Displacement, row.EngineCode),
		},
		ProductRef: strings.TrimSpace(row.PartRef),
	}
}

// Label is the human-readable form of the vehicle key, used when composing
// product descriptions from compatible vehicles.
func (k VehicleKey) Label() string {
	if k.Year <= 0 {
		return k.Brand + " " + k.Model
	}
	return fmt.Sprintf("%s %s (%d)", k.Brand, k.Model, k.Year)
}
