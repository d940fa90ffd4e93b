package lightcurve

import (
	"bufio"
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// parseText reads one sample per line. Lines starting with '#' or '%' and
// blank lines are skipped; a first row whose selected columns are not
// numeric is taken as a header. Empty, "nan" and "null" values are missing.
func parseText(data []byte, timeCol, valueCol int) (Curve, error) {
	if timeCol < 0 || valueCol < 0 {
		return Curve{}, fmt.Errorf("%w: negative column index", ErrMalformed)
	}

	var c Curve
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)

	line := 0
	headerAllowed := true
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || text[0] == '#' || text[0] == '%' {
			continue
		}

		fields := splitFields(text)
		need := max(timeCol, valueCol) + 1
		if len(fields) < need {
			return Curve{}, fmt.Errorf("%w: line %d has %d columns, need %d", ErrMalformed, line, len(fields), need)
		}

		t, terr := strconv.ParseFloat(fields[timeCol], 64)
		v, verr := parseValue(fields[valueCol])
		if headerAllowed && (terr != nil || verr != nil) {
			headerAllowed = false
			continue
		}
		headerAllowed = false
		if terr != nil {
			return Curve{}, fmt.Errorf("%w: line %d: time %q", ErrMalformed, line, fields[timeCol])
		}
		if verr != nil {
			return Curve{}, fmt.Errorf("%w: line %d: value %q", ErrMalformed, line, fields[valueCol])
		}

		c.Times = append(c.Times, t)
		c.Values = append(c.Values, v)
		if math.IsNaN(v) {
			c.Missing++
		}
	}
	if err := sc.Err(); err != nil {
		return Curve{}, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	return c, nil
}

func splitFields(line string) []string {
	var fields []string
	switch {
	case strings.Contains(line, ","):
		fields = strings.Split(line, ",")
	case strings.Contains(line, ";"):
		fields = strings.Split(line, ";")
	default:
		return strings.Fields(line)
	}
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	return fields
}

func parseValue(s string) (float64, error) {
	switch strings.ToLower(strings.Trim(s, `"`)) {
	case "", "nan", "null", "na":
		return math.NaN(), nil
	}
	return strconv.ParseFloat(strings.Trim(s, `"`), 64)
}
