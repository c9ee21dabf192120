package feed

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

const fieldCount = 10

// Row is one fitment line from the feed: which part fits which vehicle
// configuration. Rows are ephemeral, consumed by the import coordinator and
// never persisted as-is.
type Row struct {
	Brand        string
	Model        string
	YearStart    int
	YearEnd      int
	Displacement string
	EngineCode   string
	Power        string
	CategoryName string
	PartName     string
	PartRef      string
}

type Options struct {
	// Separator is the field separator, fixed per feed.
	Separator string
	// BaselineYear is substituted for year fields that fail to parse, so a
	// partially dirty row stays usable instead of failing the batch.
	BaselineYear int
}

func (o Options) withDefaults() Options {
	if o.Separator == "" {
		o.Separator = ";"
	}
	if o.BaselineYear == 0 {
		o.BaselineYear = 2000
	}
	return o
}

// Reader yields fitment rows one at a time from raw delimited text. It is
// lazy and non-restartable: the coordinator exhausts it exactly once. The
// first line is always treated as a header and skipped. Malformed lines are
// skipped and counted, never abort the scan.
type Reader struct {
	sc         *bufio.Scanner
	opts       Options
	headerRead bool
	parsed     int
	skipped    int
}

func NewReader(r io.Reader, opts Options) *Reader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &Reader{sc: sc, opts: opts.withDefaults()}
}

// Next returns the next usable row. ok is false once the input is exhausted.
func (r *Reader) Next() (Row, bool) {
	for r.sc.Scan() {
		line := strings.TrimRight(r.sc.Text(), "\r\n")
		if !r.headerRead {
			r.headerRead = true
			continue
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		row, ok := r.parseLine(line)
		if !ok {
			r.skipped++
			continue
		}
		r.parsed++
		return row, true
	}
	return Row{}, false
}

// Err reports the scan failure that ended the sequence, if any. A reader that
// stops on a failure (oversized line, broken input stream) has dropped every
// line after the failure point, so callers must not treat its counters as a
// complete account of the feed.
func (r *Reader) Err() error { return r.sc.Err() }

// Parsed is the number of usable rows yielded so far.
func (r *Reader) Parsed() int { return r.parsed }

// Skipped is the number of malformed lines dropped so far. Operators use this
// to spot dirty feeds, since sentinel defaults otherwise hide imprecision.
func (r *Reader) Skipped() int { return r.skipped }

func (r *Reader) parseLine(line string) (Row, bool) {
	fields := strings.Split(line, r.opts.Separator)
	if len(fields) != fieldCount {
		return Row{}, false
	}
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	row := Row{
		Brand:        fields[0],
		Model:        fields[1],
		YearStart:    r.parseYear(fields[2]),
		YearEnd:      r.parseYear(fields[3]),
		Displacement: fields[4],
		EngineCode:   fields[5],
		Power:        fields[6],
		CategoryName: fields[7],
		PartName:     fields[8],
		PartRef:      fields[9],
	}
	// Rows without the fields that carry entity identity are unusable.
	if row.Brand == "" || row.Model == "" || row.CategoryName == "" || row.PartRef == "" {
		return Row{}, false
	}
	return row, true
}

func (r *Reader) parseYear(s string) int {
	y, err := strconv.Atoi(s)
	if err != nil || y <= 0 {
		return r.opts.BaselineYear
	}
	return y
}
