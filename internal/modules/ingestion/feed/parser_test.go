package feed

import (
	"bufio"
	"errors"
	"strings"
	"testing"
)

const header = "brand;model;year_start;year_end;displacement;engine_code;power;category;part_name;part_ref\n"

func collect(r *Reader) []Row {
	var rows []Row
	for {
		row, ok := r.Next()
		if !ok {
			return rows
		}
		rows = append(rows, row)
	}
}

func TestReaderSkipsHeader(t *testing.T) {
	raw := header + "Toyota;Corolla;2010;2014;1.6;1ZR;97;Freinage;Plaquette avant;REF-001\n"
	r := NewReader(strings.NewReader(raw), Options{})
	rows := collect(r)
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0].Brand != "Toyota" || rows[0].PartRef != "REF-001" {
		t.Fatalf("unexpected row: %+v", rows[0])
	}
	if r.Parsed() != 1 || r.Skipped() != 0 {
		t.Fatalf("parsed=%d skipped=%d", r.Parsed(), r.Skipped())
	}
}

func TestReaderSkipsMalformedLines(t *testing.T) {
	var b strings.Builder
	b.WriteString(header)
	for i := 0; i < 95; i++ {
		b.WriteString("Toyota;Corolla;2010;2014;1.6;1ZR;97;Freinage;Plaquette avant;REF-001\n")
	}
	for i := 0; i < 5; i++ {
		b.WriteString("Toyota;Corolla;2010\n") // too few fields
	}

	r := NewReader(strings.NewReader(b.String()), Options{})
	rows := collect(r)
	if len(rows) != 95 {
		t.Fatalf("expected 95 usable rows, got %d", len(rows))
	}
	if r.Skipped() != 5 {
		t.Fatalf("expected 5 skipped, got %d", r.Skipped())
	}
}

func TestReaderDefaultsUnparseableYears(t *testing.T) {
	raw := header + "Toyota;Corolla;;n/a;1.6;1ZR;97;Freinage;Plaquette avant;REF-001\n"
	r := NewReader(strings.NewReader(raw), Options{BaselineYear: 1990})
	rows := collect(r)
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0].YearStart != 1990 || rows[0].YearEnd != 1990 {
		t.Fatalf("expected baseline years, got %d-%d", rows[0].YearStart, rows[0].YearEnd)
	}
	if r.Skipped() != 0 {
		t.Fatalf("dirty years must not skip the row, skipped=%d", r.Skipped())
	}
}

func TestReaderRejectsRowsWithoutIdentity(t *testing.T) {
	raw := header +
		"Toyota;Corolla;2010;2014;1.6;1ZR;97;Freinage;Plaquette avant;\n" + // no ref
		";Corolla;2010;2014;1.6;1ZR;97;Freinage;Plaquette avant;REF-001\n" // no brand
	r := NewReader(strings.NewReader(raw), Options{})
	rows := collect(r)
	if len(rows) != 0 {
		t.Fatalf("expected 0 rows, got %d", len(rows))
	}
	if r.Skipped() != 2 {
		t.Fatalf("expected 2 skipped, got %d", r.Skipped())
	}
}

func TestReaderCustomSeparator(t *testing.T) {
	raw := "h|h|h|h|h|h|h|h|h|h\n" +
		"Peugeot|308|2015|2018|1.6|EP6|120|Filtration|Filtre à huile|REF-002\n"
	r := NewReader(strings.NewReader(raw), Options{Separator: "|"})
	rows := collect(r)
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0].Model != "308" || rows[0].EngineCode != "EP6" {
		t.Fatalf("unexpected row: %+v", rows[0])
	}
}

func TestReaderIgnoresBlankLines(t *testing.T) {
	raw := header + "\n\nToyota;Corolla;2010;2014;1.6;1ZR;97;Freinage;Plaquette avant;REF-001\n\n"
	r := NewReader(strings.NewReader(raw), Options{})
	rows := collect(r)
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if r.Skipped() != 0 {
		t.Fatalf("blank lines must not count as skipped, got %d", r.Skipped())
	}
}

func TestReaderSurfacesScanFailure(t *testing.T) {
	// A line over the scanner's cap aborts the scan; the row after it is never
	// seen and must not vanish silently.
	var b strings.Builder
	b.WriteString(header)
	b.WriteString("Toyota;Corolla;2010;2014;1.6;1ZR;97;Freinage;Plaquette avant;REF-001\n")
	b.WriteString(strings.Repeat("x", 2<<20))
	b.WriteString("\n")
	b.WriteString("Peugeot;308;2015;2018;1.6;EP6;120;Filtration;Filtre à huile;REF-002\n")

	r := NewReader(strings.NewReader(b.String()), Options{})
	rows := collect(r)
	if len(rows) != 1 || rows[0].PartRef != "REF-001" {
		t.Fatalf("expected only the row before the failure, got %d rows", len(rows))
	}
	if !errors.Is(r.Err(), bufio.ErrTooLong) {
		t.Fatalf("expected ErrTooLong from Err(), got %v", r.Err())
	}
}

func TestReaderErrNilOnCleanInput(t *testing.T) {
	raw := header + "Toyota;Corolla;2010;2014;1.6;1ZR;97;Freinage;Plaquette avant;REF-001\n"
	r := NewReader(strings.NewReader(raw), Options{})
	collect(r)
	if err := r.Err(); err != nil {
		t.Fatalf("clean input must leave Err nil, got %v", err)
	}
}

func TestReaderEmptyInput(t *testing.T) {
	r := NewReader(strings.NewReader(""), Options{})
	if rows := collect(r); len(rows) != 0 {
		t.Fatalf("expected no rows, got %d", len(rows))
	}
	if r.Parsed() != 0 || r.Skipped() != 0 {
		t.Fatalf("parsed=%d skipped=%d", r.Parsed(), r.Skipped())
	}
}
