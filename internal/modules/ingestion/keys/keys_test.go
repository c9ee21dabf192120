package keys

import (
	"testing"

	"github.com/aitbenali/autoparts-backend/internal/modules/ingestion/feed"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain", in: "Freinage", want: "freinage"},
		{name: "lowercase_already", in: "freinage", want: "freinage"},
		{name: "upper_with_trailing_space", in: "FREINAGE ", want: "freinage"},
		{name: "accents", in: "Filtre à huile", want: "filtre-a-huile"},
		{name: "punctuation_runs", in: "Amortisseurs -- avant / arrière", want: "amortisseurs-avant-arriere"},
		{name: "leading_symbols", in: "  ***Échappement***", want: "echappement"},
		{name: "digits", in: "Kit distribution 2.0 TDI", want: "kit-distribution-2-0-tdi"},
		{name: "empty", in: "", want: ""},
		{name: "no_sluggable_runes", in: "Тормоза", want: ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Slugify(tc.in); got != tc.want {
				t.Fatalf("Slugify(%q)=%q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestSlugifyDeterministic(t *testing.T) {
	// Same name must always yield the same slug: repeated and concurrent runs
	// agree on identity without a lookup.
	for i := 0; i < 1000; i++ {
		if got := Slugify("Filtre à huile"); got != "filtre-a-huile" {
			t.Fatalf("iteration %d: got %q", i, got)
		}
	}
}

func TestSynthesizeYear(t *testing.T) {
	cases := []struct {
		name       string
		start, end int
		want       int
	}{
		{name: "even_range", start: 2010, end: 2014, want: 2012},
		{name: "nested_range_same_midpoint", start: 2011, end: 2013, want: 2012},
		{name: "floor_of_mean", start: 2010, end: 2013, want: 2011},
		{name: "single_year", start: 2015, end: 2015, want: 2015},
		{name: "swapped_bounds", start: 2014, end: 2010, want: 2012},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := SynthesizeYear(tc.start, tc.end); got != tc.want {
				t.Fatalf("SynthesizeYear(%d, %d)=%d, want %d", tc.start, tc.end, got, tc.want)
			}
		})
	}
}

func TestEngineSignature(t *testing.T) {
	cases := []struct {
		name         string
		displacement string
		engineCode   string
		want         string
	}{
		{name: "both", displacement: "1.6", engineCode: "1ZR", want: "1.6-1zr"},
		{name: "spaces_collapsed", displacement: " 1.6 ", engineCode: "1 ZR", want: "1.6-1zr"},
		{name: "only_displacement", displacement: "2.0", engineCode: "", want: "2.0"},
		{name: "only_code", displacement: "", engineCode: "EP6", want: "ep6"},
		{name: "neither", displacement: "", engineCode: "", want: ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := EngineSignature(tc.displacement, tc.engineCode); got != tc.want {
				t.Fatalf("EngineSignature(%q, %q)=%q, want %q", tc.displacement, tc.engineCode, got, tc.want)
			}
		})
	}
}

func TestFromRowCollapsesEquivalentRanges(t *testing.T) {
	a := feed.Row{
		Brand: "Toyota", Model: "Corolla", YearStart: 2010, YearEnd: 2014,
		Displacement: "1.6", EngineCode: "1ZR",
		CategoryName: "Freinage", PartName: "Plaquette avant", PartRef: "REF-001",
	}
	b := a
	b.YearStart, b.YearEnd = 2011, 2013

	ka := FromRow(a)
	kb := FromRow(b)
	if ka.Vehicle != kb.Vehicle {
		t.Fatalf("vehicle keys differ: %+v vs %+v", ka.Vehicle, kb.Vehicle)
	}
	if ka.Vehicle.Year != 2012 {
		t.Fatalf("expected midpoint 2012, got %d", ka.Vehicle.Year)
	}
	if ka.CategorySlug != "freinage" {
		t.Fatalf("expected slug freinage, got %q", ka.CategorySlug)
	}
	if ka.ProductRef != "REF-001" {
		t.Fatalf("expected product ref REF-001, got %q", ka.ProductRef)
	}
}
