package force

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ReadTable parses a whitespace-delimited numeric table from r. The first
// column holds position samples; col selects the value column (1 = first
// force component). Blank lines and lines starting with '#' are skipped.
func ReadTable(r io.Reader, col int) (*Table, error) {
	if col < 1 {
		return nil, fmt.Errorf("force: column index must be >= 1, got %d", col)
	}

	xs := make([]float64, 0, 64)
	ys := make([]float64, 0, 64)

	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		fields := strings.Fields(text)
		if len(fields) <= col {
			return nil, fmt.Errorf("force: line %d has %d columns, need %d", line, len(fields), col+1)
		}

		x, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return nil, fmt.Errorf("force: line %d: bad position %q: %w", line, fields[0], err)
		}
		y, err := strconv.ParseFloat(fields[col], 64)
		if err != nil {
			return nil, fmt.Errorf("force: line %d: bad value %q: %w", line, fields[col], err)
		}

		xs = append(xs, x)
		ys = append(ys, y)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return NewTable(xs, ys)
}

// LoadTable reads a force table from a file. See ReadTable for the format.
func LoadTable(path string, col int) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	tb, err := ReadTable(f, col)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return tb, nil
}
