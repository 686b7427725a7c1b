// Package msp provides a streaming reader for profile scans stored in an
// MSP-style text layout:
//
//	Name: scan=12
//	Comment: Scan=12 MSLevel=1 RT=3.25 BasePeak=15000
//	Num peaks: 4
//	400.000	0
//	400.001	120.5
//	...
//
// Entries are separated by blank lines. Only the Num peaks line is required;
// the scan number defaults to the entry's 1-based position and the base peak
// is computed from the points when absent.
package msp

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/inambioinfo/mzmine2/pkg/core"
)

// maxLineSize bounds a single line; profile entries can have long comments.
const maxLineSize = 1 << 20

// Reader provides streaming access to MSP format files
type Reader struct {
	scanner     *bufio.Scanner
	sourceFile  string
	lineNum     int
	entries     int
	currentScan *core.Scan
	err         error
}

// NewReader creates a new MSP reader. sourceFile is recorded on every scan.
func NewReader(r io.Reader, sourceFile string) *Reader {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	return &Reader{
		scanner:    scanner,
		sourceFile: sourceFile,
	}
}

// Next advances to the next scan. Returns false when no more scans or error.
func (r *Reader) Next() bool {
	r.currentScan = nil
	if r.err != nil {
		return false
	}

	scan, err := r.readScan()
	if err != nil {
		if err != io.EOF {
			r.err = err
		}
		return false
	}

	r.currentScan = scan
	return true
}

// Scan returns the current scan
func (r *Reader) Scan() *core.Scan {
	return r.currentScan
}

// Err returns any error encountered during reading
func (r *Reader) Err() error {
	return r.err
}

// readScan reads a single scan entry from the MSP file
func (r *Reader) readScan() (*core.Scan, error) {
	scan := &core.Scan{
		Number:       -1,
		MSLevel:      1,
		SourceFile:   r.sourceFile,
		SourceFormat: "msp",
	}

	started := false
	basePeakGiven := false
	numPoints := -1

	for numPoints < 0 || len(scan.Points) < numPoints {
		if !r.scanner.Scan() {
			if err := r.scanner.Err(); err != nil {
				return nil, err
			}
			if started {
				return nil, fmt.Errorf("line %d: unexpected end of file in entry %d", r.lineNum, r.entries+1)
			}
			return nil, io.EOF
		}
		r.lineNum++
		line := strings.TrimSpace(r.scanner.Text())

		// Skip empty lines between entries
		if line == "" {
			continue
		}
		started = true

		if numPoints >= 0 {
			point, err := parsePoint(line)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", r.lineNum, err)
			}
			scan.Points = append(scan.Points, point)
			continue
		}

		key, value, ok := strings.Cut(line, ":")
		if !ok {
			return nil, fmt.Errorf("line %d: expected header field, got %q", r.lineNum, line)
		}
		value = strings.TrimSpace(value)

		switch strings.ToLower(strings.TrimSpace(key)) {
		case "name":
			// Name carries no fields of its own; Comment holds the metadata.
		case "comment":
			given, err := parseComment(scan, value)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", r.lineNum, err)
			}
			basePeakGiven = basePeakGiven || given
		case "num peaks":
			n, err := strconv.Atoi(value)
			if err != nil || n < 0 {
				return nil, fmt.Errorf("line %d: invalid num peaks %q", r.lineNum, value)
			}
			numPoints = n
			scan.Points = make([]core.DataPoint, 0, n)
		}
	}

	r.entries++
	if scan.Number < 0 {
		scan.Number = r.entries
	}
	if !basePeakGiven {
		scan.UpdateBasePeak()
	}

	return scan, nil
}

// parseComment extracts metadata from the Comment field and reports whether
// it carried a base peak intensity.
func parseComment(scan *core.Scan, comment string) (bool, error) {
	// Comment format: key=value key=value...
	// Example: Scan=12 MSLevel=1 RT=3.25 BasePeak=15000

	basePeak := false
	for _, field := range strings.Fields(comment) {
		key, value, ok := strings.Cut(field, "=")
		if !ok {
			continue
		}

		switch strings.ToLower(key) {
		case "scan":
			n, err := strconv.Atoi(value)
			if err != nil {
				return false, fmt.Errorf("invalid scan number %q: %w", value, err)
			}
			scan.Number = n

		case "mslevel":
			n, err := strconv.Atoi(value)
			if err != nil {
				return false, fmt.Errorf("invalid MS level %q: %w", value, err)
			}
			scan.MSLevel = n

		case "rt", "retentiontime":
			rt, err := strconv.ParseFloat(value, 64)
			if err == nil {
				scan.RetentionTime = &rt
			}

		case "basepeak":
			bp, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return false, fmt.Errorf("invalid base peak %q: %w", value, err)
			}
			scan.BasePeakIntensity = bp
			basePeak = true
		}
	}

	return basePeak, nil
}

// parsePoint parses a single point line (format: "mz intensity [annotation]")
func parsePoint(line string) (core.DataPoint, error) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return core.DataPoint{}, fmt.Errorf("invalid point format, expected at least 2 fields")
	}

	mz, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return core.DataPoint{}, fmt.Errorf("invalid m/z value: %w", err)
	}

	intensity, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return core.DataPoint{}, fmt.Errorf("invalid intensity value: %w", err)
	}

	return core.DataPoint{MZ: mz, Intensity: intensity}, nil
}
