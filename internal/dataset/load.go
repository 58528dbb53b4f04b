package dataset

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
)

// ErrUnreadableInput marks the only fatal load condition: the input file
// could not be opened or read.
var ErrUnreadableInput = errors.New("unreadable input")

// LoadOptions controls how an input file is read and normalized.
type LoadOptions struct {
	// Delimiter for CSV. If 0, sniffed from the file.
	Delimiter rune
	// XLSX sheet selection. SheetIndex is 1-based and used when SheetName is empty.
	SheetName  string
	SheetIndex int
	// MaxRows limits rows normalized; 0 means unlimited.
	MaxRows int
	// DropZeroViews discards records with zero views after normalization.
	DropZeroViews bool
	Aliases       AliasTable
	Number        NumberFormat
	DurationUnit  DurationUnit
}

// DefaultLoadOptions returns the defaults used by the CLI.
func DefaultLoadOptions() LoadOptions {
	return LoadOptions{
		SheetIndex:   1,
		Aliases:      DefaultAliases(),
		DurationUnit: UnitMinutes,
	}
}

// Dataset is the normalized content of one input file.
type Dataset struct {
	Name      string
	Headers   []string
	Mapping   ColumnMapping
	Records   []VideoRecord
	Rows      int
	Processed int
	Dropped   int
	// Defaulted counts fallbacks per field where the column was present.
	Defaulted map[Field]int
	Warnings  []string
}

// Loader reads a tabular file into a header row and data rows.
type Loader interface {
	CanLoad(path string) bool
	Rows(path string, opt LoadOptions) (header []string, rows [][]string, err error)
}

var registry []Loader

// Register adds a loader to the registry. Later registrations are consulted last.
func Register(l Loader) {
	registry = append(registry, l)
}

func init() {
	Register(csvLoader{})
	Register(xlsxLoader{})
}

// Load reads path with the first loader that accepts it, falling back to CSV,
// and normalizes every row.
func Load(path string, opt LoadOptions) (*Dataset, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnreadableInput, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrUnreadableInput, path)
	}
	var ld Loader = csvLoader{}
	for _, l := range registry {
		if l.CanLoad(path) {
			ld = l
			break
		}
	}
	header, rows, err := ld.Rows(path, opt)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnreadableInput, err)
	}
	name := filepath.Base(path)
	if _, ok := ld.(xlsxLoader); ok && opt.SheetName != "" {
		name = fmt.Sprintf("%s (sheet: %s)", name, opt.SheetName)
	}
	return Build(name, header, rows, opt), nil
}

// Build resolves columns and normalizes rows that are already in memory.
func Build(name string, header []string, rows [][]string, opt LoadOptions) *Dataset {
	ds := &Dataset{Name: name, Headers: header, Defaulted: map[Field]int{}}
	if len(header) == 0 {
		ds.Mapping = ColumnMapping{}
		ds.Warnings = append(ds.Warnings, "input has no header row")
		return ds
	}
	ds.Mapping = Resolve(header, opt.Aliases)
	for _, f := range ds.Mapping.Missing() {
		if f == FieldSubscribers {
			continue
		}
		ds.Warnings = append(ds.Warnings, fmt.Sprintf("no column matched %q; using defaults", string(f)))
	}
	unit := opt.DurationUnit
	if unit == "" {
		unit = UnitMinutes
	}
	norm := Normalizer{Mapping: ds.Mapping, Number: opt.Number, DurationUnit: unit}
	maxRows := opt.MaxRows
	if maxRows <= 0 {
		maxRows = math.MaxInt
	}
	for _, rec := range rows {
		ds.Rows++
		if ds.Processed >= maxRows {
			continue
		}
		ds.Processed++
		v := norm.Normalize(rawRow(header, rec))
		for _, f := range v.Fallbacks {
			if _, ok := ds.Mapping[f]; ok {
				ds.Defaulted[f]++
			}
		}
		if opt.DropZeroViews && v.Views == 0 {
			ds.Dropped++
			continue
		}
		ds.Records = append(ds.Records, v)
	}
	if ds.Processed < ds.Rows {
		ds.Warnings = append(ds.Warnings, fmt.Sprintf("processed only %d/%d rows due to MaxRows", ds.Processed, ds.Rows))
	}
	for _, f := range Fields {
		if n := ds.Defaulted[f]; n > 0 {
			ds.Warnings = append(ds.Warnings, fmt.Sprintf("%d %s value(s) missing or malformed; defaulted", n, f))
		}
	}
	if ds.Dropped > 0 {
		ds.Warnings = append(ds.Warnings, fmt.Sprintf("dropped %d row(s) with zero views", ds.Dropped))
	}
	return ds
}

// rawRow pads short rows; with duplicate headers the first column wins.
func rawRow(header, rec []string) RawRow {
	row := make(RawRow, len(header))
	for i, h := range header {
		if _, dup := row[h]; dup {
			continue
		}
		if i < len(rec) {
			row[h] = rec[i]
		} else {
			row[h] = ""
		}
	}
	return row
}

type csvLoader struct{}

func (csvLoader) CanLoad(path string) bool {
	name := strings.ToLower(path)
	return strings.HasSuffix(name, ".csv") || strings.HasSuffix(name, ".tsv") || strings.HasSuffix(name, ".txt")
}

func (csvLoader) Rows(path string, opt LoadOptions) ([]string, [][]string, error) {
	delim := opt.Delimiter
	if delim == 0 {
		delim = sniffDelimiter(path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()
	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	r.LazyQuotes = true
	r.Comma = delim

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("read header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	var rows [][]string
	for {
		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, nil, fmt.Errorf("read row %d: %w", len(rows)+1, err)
		}
		rows = append(rows, rec)
	}
	return header, rows, nil
}

// sniffDelimiter picks among ',', ';' and tab by counting them on the first line.
func sniffDelimiter(path string) rune {
	if strings.HasSuffix(strings.ToLower(path), ".tsv") {
		return '\t'
	}
	f, err := os.Open(path)
	if err != nil {
		return ','
	}
	defer f.Close()
	line, err := bufio.NewReader(f).ReadString('\n')
	if err != nil && line == "" {
		return ','
	}
	best, bestN := ',', 0
	for _, d := range []rune{',', ';', '\t'} {
		if n := strings.Count(line, string(d)); n > bestN {
			best, bestN = d, n
		}
	}
	return best
}
