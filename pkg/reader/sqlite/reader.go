// Package sqlite provides streaming reads of profile scans stored in an
// mzVault-style SQLite library. Each SpectrumTable row is one scan whose m/z
// and intensity columns are little-endian float64 blobs.
package sqlite

import (
	"database/sql"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"

	_ "github.com/mattn/go-sqlite3"

	"github.com/inambioinfo/mzmine2/pkg/core"
)

// ErrBlobMismatch is returned when a row's m/z and intensity blobs disagree.
var ErrBlobMismatch = errors.New("sqlite: mass and intensity blobs differ in length")

const scanQuery = `
	SELECT SpectrumId, ScanNumber, RetentionTime, ScanFilter, blobMass, blobIntensity
	FROM SpectrumTable
	ORDER BY SpectrumId
`

// msLevelPattern finds the MS level in a Thermo-style scan filter, e.g.
// "FTMS + p ESI Full ms2 445.12@hcd30.00".
var msLevelPattern = regexp.MustCompile(`\bms(\d+)\b`)

// Reader handles reading scans from SQLite database files
type Reader struct {
	db          *sql.DB
	rows        *sql.Rows
	sourceFile  string
	currentScan *core.Scan
	err         error
}

// Open opens the database at path read-only and starts iterating its scans.
func Open(path string) (*Reader, error) {
	db, err := sql.Open("sqlite3", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	r, err := newReader(db, path)
	if err != nil {
		db.Close()
		return nil, err
	}
	return r, nil
}

func newReader(db *sql.DB, sourceFile string) (*Reader, error) {
	rows, err := db.Query(scanQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to query scans: %w", err)
	}
	return &Reader{db: db, rows: rows, sourceFile: sourceFile}, nil
}

// Next advances to the next scan. Returns false when no more scans or error.
func (r *Reader) Next() bool {
	r.currentScan = nil
	if r.err != nil {
		return false
	}

	if !r.rows.Next() {
		r.err = r.rows.Err()
		return false
	}

	scan, err := r.readScan()
	if err != nil {
		r.err = err
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

// Close releases the query and the database connection.
func (r *Reader) Close() error {
	if r.rows != nil {
		r.rows.Close()
	}
	if err := r.db.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	return nil
}

func (r *Reader) readScan() (*core.Scan, error) {
	var (
		id         int
		scanNumber sql.NullInt64
		rt         sql.NullFloat64
		filter     sql.NullString
		mzBlob     []byte
		intBlob    []byte
	)
	if err := r.rows.Scan(&id, &scanNumber, &rt, &filter, &mzBlob, &intBlob); err != nil {
		return nil, fmt.Errorf("failed to scan row: %w", err)
	}

	if len(mzBlob) != len(intBlob) {
		return nil, fmt.Errorf("%w: spectrum %d: %d vs %d bytes", ErrBlobMismatch, id, len(mzBlob), len(intBlob))
	}
	if len(mzBlob)%8 != 0 {
		return nil, fmt.Errorf("spectrum %d: blob length %d is not a multiple of 8", id, len(mzBlob))
	}

	mz := decodeFloat64(mzBlob)
	intensities := decodeFloat64(intBlob)

	scan := &core.Scan{
		Number:       id,
		MSLevel:      1,
		Points:       make([]core.DataPoint, len(mz)),
		SourceFile:   r.sourceFile,
		SourceFormat: "sqlite",
	}
	// The library writer stores 0 when no instrument scan number is known.
	if scanNumber.Valid && scanNumber.Int64 > 0 {
		scan.Number = int(scanNumber.Int64)
	}
	if rt.Valid {
		v := rt.Float64
		scan.RetentionTime = &v
	}
	if filter.Valid {
		if m := msLevelPattern.FindStringSubmatch(filter.String); m != nil {
			if level, err := strconv.Atoi(m[1]); err == nil {
				scan.MSLevel = level
			}
		}
	}

	for i := range mz {
		scan.Points[i] = core.DataPoint{MZ: mz[i], Intensity: intensities[i]}
	}
	if !scan.ArePointsSorted() {
		scan.SortPoints()
	}
	scan.UpdateBasePeak()

	return scan, nil
}

// decodeFloat64 decodes a little-endian float64 blob
func decodeFloat64(buf []byte) []float64 {
	out := make([]float64, len(buf)/8)
	for i := range out {
		out[i] = math.Float64frombits(binary.LittleEndian.Uint64(buf[i*8:]))
	}
	return out
}
