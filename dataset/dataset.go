// Package dataset reads (x, y) observations from whitespace separated text.
//
// Each non-blank line holds one observation: the first field is x and the
// second is y. Lines starting with '#' are comments. Any further fields on a
// line are ignored.
package dataset

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/YuminosukeSato/lsq/pkg/errors"
	"github.com/YuminosukeSato/lsq/pkg/log"
)

// Samples holds paired observations.
type Samples struct {
	X []float64
	Y []float64
}

// Len returns the number of observations.
func (s Samples) Len() int { return len(s.X) }

// Load parses observations from r. Errors carry the 1-based line number.
func Load(r io.Reader) (x, y []float64, err error) {
	s, err := read(r, "input")
	if err != nil {
		return nil, nil, err
	}
	return s.X, s.Y, nil
}

// LoadFile parses observations from the file at path.
func LoadFile(path string) (Samples, error) {
	f, err := os.Open(path)
	if err != nil {
		return Samples{}, errors.Wrapf(err, "open data file %s", path)
	}
	defer f.Close()

	s, err := read(f, path)
	if err != nil {
		return Samples{}, err
	}
	log.GetLogger().Debug("dataset loaded",
		log.OperationKey, log.OperationLoad,
		log.ComponentKey, "dataset",
		log.SourceKey, path,
		log.SamplesKey, s.Len(),
	)
	return s, nil
}

func read(r io.Reader, source string) (Samples, error) {
	var s Samples
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		fields := strings.Fields(text)
		if len(fields) < 2 {
			return Samples{}, errors.NewInputError(source, line, text, "expected two fields \"x y\"")
		}
		x, err := parseFloat(source, line, fields[0])
		if err != nil {
			return Samples{}, err
		}
		y, err := parseFloat(source, line, fields[1])
		if err != nil {
			return Samples{}, err
		}
		s.X = append(s.X, x)
		s.Y = append(s.Y, y)
	}
	if err := sc.Err(); err != nil {
		return Samples{}, errors.Wrapf(err, "read %s", source)
	}
	return s, nil
}

func parseFloat(source string, line int, field string) (float64, error) {
	v, err := strconv.ParseFloat(field, 64)
	if err != nil {
		return 0, errors.NewInputError(source, line, field, "not a number")
	}
	return v, nil
}
