// Package lightcurve loads time series (time, value) from delimited text or
// JSON documents, optionally gzip or zstd compressed.
package lightcurve

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

var (
	// ErrUnknownFormat is returned for an unrecognized format name.
	ErrUnknownFormat = errors.New("lightcurve: unknown format")
	// ErrNoData is returned when a document holds no samples.
	ErrNoData = errors.New("lightcurve: no data")
	// ErrMalformed is returned when a row or element cannot be parsed.
	ErrMalformed = errors.New("lightcurve: malformed input")
	// ErrLengthMismatch is returned when time and value arrays differ in length.
	ErrLengthMismatch = errors.New("lightcurve: time and value counts differ")
	// ErrPathNotFound is returned when a JSON path does not resolve.
	ErrPathNotFound = errors.New("lightcurve: path not found")
)

// Format selects the document parser.
type Format int

const (
	// FormatAuto sniffs the first non-blank byte: '{' or '[' selects JSON.
	FormatAuto Format = iota
	// FormatText reads comma or whitespace separated columns.
	FormatText
	// FormatJSON reads two arrays addressed by gjson paths.
	FormatJSON
)

// String returns the name accepted by ParseFormat.
func (f Format) String() string {
	switch f {
	case FormatAuto:
		return "auto"
	case FormatText:
		return "csv"
	case FormatJSON:
		return "json"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// ParseFormat maps "auto", "csv" (or "text") and "json" to a Format.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "auto":
		return FormatAuto, nil
	case "csv", "text", "txt":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	default:
		return FormatAuto, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
}

// Default column indices and JSON paths.
const (
	DefaultTimeColumn  = 0
	DefaultValueColumn = 1
	DefaultTimePath    = "time"
	DefaultValuePath   = "flux"
)

// Options controls how a document is interpreted.
type Options struct {
	Format      Format
	TimeColumn  int // zero-based, text only
	ValueColumn int // zero-based, text only
	TimePath    string
	ValuePath   string
}

// DefaultOptions returns auto-detection with the default columns and paths.
func DefaultOptions() Options {
	return Options{
		Format:      FormatAuto,
		TimeColumn:  DefaultTimeColumn,
		ValueColumn: DefaultValueColumn,
		TimePath:    DefaultTimePath,
		ValuePath:   DefaultValuePath,
	}
}

// Curve is a loaded series. Missing values are NaN; times are kept in file
// order and are not validated beyond being parseable.
type Curve struct {
	Times   []float64
	Values  []float64
	Format  Format // the parser that produced the curve
	Missing int    // number of NaN values
}

// Len returns the number of samples.
func (c Curve) Len() int {
	return len(c.Times)
}

// Load reads and parses the file at path.
func Load(path string, opts Options) (Curve, error) {
	f, err := os.Open(path)
	if err != nil {
		return Curve{}, fmt.Errorf("lightcurve: open: %w", err)
	}
	defer f.Close()

	c, err := Read(f, opts)
	if err != nil {
		return Curve{}, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Read parses a document from r, decompressing gzip or zstd streams detected
// by their magic bytes.
func Read(r io.Reader, opts Options) (Curve, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return Curve{}, fmt.Errorf("lightcurve: read: %w", err)
	}
	data, err := decompress(raw)
	if err != nil {
		return Curve{}, err
	}
	return Parse(data, opts)
}

// Parse parses an uncompressed document.
func Parse(data []byte, opts Options) (Curve, error) {
	format := opts.Format
	if format == FormatAuto {
		format = sniff(data)
	}

	var (
		c   Curve
		err error
	)
	switch format {
	case FormatText:
		c, err = parseText(data, opts.TimeColumn, opts.ValueColumn)
	case FormatJSON:
		c, err = parseJSON(data, opts.TimePath, opts.ValuePath)
	default:
		return Curve{}, fmt.Errorf("%w: %v", ErrUnknownFormat, format)
	}
	if err != nil {
		return Curve{}, err
	}
	if c.Len() == 0 {
		return Curve{}, ErrNoData
	}
	c.Format = format
	return c, nil
}

var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
)

func decompress(data []byte) ([]byte, error) {
	switch {
	case bytes.HasPrefix(data, gzipMagic):
		zr, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("lightcurve: gzip: %w", err)
		}
		defer zr.Close()
		out, err := io.ReadAll(zr)
		if err != nil {
			return nil, fmt.Errorf("lightcurve: gzip: %w", err)
		}
		return out, nil
	case bytes.HasPrefix(data, zstdMagic):
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, fmt.Errorf("lightcurve: zstd: %w", err)
		}
		defer dec.Close()
		out, err := dec.DecodeAll(data, nil)
		if err != nil {
			return nil, fmt.Errorf("lightcurve: zstd: %w", err)
		}
		return out, nil
	default:
		return data, nil
	}
}

func sniff(data []byte) Format {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') {
		return FormatJSON
	}
	return FormatText
}
