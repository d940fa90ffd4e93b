package lightcurve

import (
	"bytes"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

const textDoc = `# synthetic curve
time,flux,flux_err
0.0,1.5,0.1
0.5,,0.1
1.0,nan,0.1
1.5,2.5,0.1
`

const jsonDoc = `{"meta":{"target":"x"},"time":[0,0.5,1.0,1.5],"flux":[1.5,null,"NaN",2.5]}`

func requireCurve(t *testing.T, c Curve, times []float64, missing int) {
	t.Helper()
	if c.Len() != len(times) {
		t.Fatalf("len = %d, want %d", c.Len(), len(times))
	}
	for i := range times {
		if c.Times[i] != times[i] {
			t.Fatalf("time[%d] = %v, want %v", i, c.Times[i], times[i])
		}
	}
	if c.Missing != missing {
		t.Fatalf("missing = %d, want %d", c.Missing, missing)
	}
}

func TestParseText(t *testing.T) {
	c, err := Parse([]byte(textDoc), DefaultOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	requireCurve(t, c, []float64{0, 0.5, 1, 1.5}, 2)
	if c.Format != FormatText {
		t.Fatalf("format = %v, want csv", c.Format)
	}
	if c.Values[0] != 1.5 || !math.IsNaN(c.Values[1]) || !math.IsNaN(c.Values[2]) || c.Values[3] != 2.5 {
		t.Fatalf("values = %v", c.Values)
	}
}

func TestParseTextWhitespaceColumns(t *testing.T) {
	doc := "% bjd  err  flux\n10.0  0.2  3\n\n10.5  0.2  4\n11.0  0.2  NaN\n"
	opts := DefaultOptions()
	opts.ValueColumn = 2

	c, err := Parse([]byte(doc), opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	requireCurve(t, c, []float64{10, 10.5, 11}, 1)
	if c.Values[1] != 4 {
		t.Fatalf("value[1] = %v, want 4", c.Values[1])
	}
}

func TestParseTextErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		opts Options
		want error
	}{
		{"bad row", "0,1\nx,2\n", DefaultOptions(), ErrMalformed},
		{"short row", "0,1\n1\n", DefaultOptions(), ErrMalformed},
		{"bad value", "0,1\n1,abc\n", DefaultOptions(), ErrMalformed},
		{"only comments", "# nothing\n\n", DefaultOptions(), ErrNoData},
		{"negative column", "0,1\n", Options{Format: FormatText, TimeColumn: -1, ValueColumn: 1}, ErrMalformed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.doc), tt.opts); !errors.Is(err, tt.want) {
				t.Fatalf("got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestParseJSON(t *testing.T) {
	c, err := Parse([]byte(jsonDoc), DefaultOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Format != FormatJSON {
		t.Fatalf("format = %v, want json", c.Format)
	}
	requireCurve(t, c, []float64{0, 0.5, 1, 1.5}, 2)
}

func TestParseJSONRowObjects(t *testing.T) {
	doc := `{"rows":[{"t":1,"v":5},{"t":2,"v":6},{"t":3,"v":null}]}`
	opts := DefaultOptions()
	opts.TimePath = "rows.#.t"
	opts.ValuePath = "rows.#.v"

	c, err := Parse([]byte(doc), opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	requireCurve(t, c, []float64{1, 2, 3}, 1)
}

func TestParseJSONErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want error
	}{
		{"invalid", `{"time":[1,2`, ErrMalformed},
		{"missing time", `{"flux":[1]}`, ErrPathNotFound},
		{"missing flux", `{"time":[1]}`, ErrPathNotFound},
		{"mismatch", `{"time":[1,2],"flux":[1]}`, ErrLengthMismatch},
		{"not array", `{"time":1,"flux":2}`, ErrMalformed},
		{"null time", `{"time":[null],"flux":[1]}`, ErrMalformed},
		{"bool value", `{"time":[1],"flux":[true]}`, ErrMalformed},
		{"empty", `{"time":[],"flux":[]}`, ErrNoData},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.doc), DefaultOptions()); !errors.Is(err, tt.want) {
				t.Fatalf("got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestReadCompressed(t *testing.T) {
	var gz bytes.Buffer
	zw := gzip.NewWriter(&gz)
	if _, err := zw.Write([]byte(textDoc)); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}

	enc, err := zstd.NewWriter(nil)
	if err != nil {
		t.Fatal(err)
	}
	zst := enc.EncodeAll([]byte(jsonDoc), nil)
	enc.Close()

	for name, data := range map[string][]byte{"gzip": gz.Bytes(), "zstd": zst} {
		t.Run(name, func(t *testing.T) {
			c, err := Read(bytes.NewReader(data), DefaultOptions())
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			requireCurve(t, c, []float64{0, 0.5, 1, 1.5}, 2)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "curve.json")
	if err := os.WriteFile(path, []byte(jsonDoc), 0o600); err != nil {
		t.Fatal(err)
	}

	c, err := Load(path, DefaultOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	requireCurve(t, c, []float64{0, 0.5, 1, 1.5}, 2)

	if _, err := Load(filepath.Join(t.TempDir(), "absent.csv"), DefaultOptions()); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestParseFormat(t *testing.T) {
	tests := map[string]Format{"": FormatAuto, "auto": FormatAuto, "CSV": FormatText, "text": FormatText, "json": FormatJSON}
	for in, want := range tests {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseFormat("fits"); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("expected ErrUnknownFormat, got %v", err)
	}
}
