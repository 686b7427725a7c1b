package msp

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inambioinfo/mzmine2/pkg/core"
)

const twoScans = `Name: scan=7
Comment: Scan=7 MSLevel=1 RT=3.25 BasePeak=900
Num peaks: 3
100.0	0
100.1	50.5
100.2	0

Name: second
Num peaks: 2
200.0 10 "noise"
200.1 20
`

func TestReader(t *testing.T) {
	r := NewReader(strings.NewReader(twoScans), "run.msp")

	require.True(t, r.Next())
	first := r.Scan()
	assert.Equal(t, 7, first.Number)
	assert.Equal(t, 1, first.MSLevel)
	require.NotNil(t, first.RetentionTime)
	assert.Equal(t, 3.25, *first.RetentionTime)
	assert.Equal(t, 900.0, first.BasePeakIntensity, "base peak from the comment is kept")
	assert.Equal(t, []core.DataPoint{{MZ: 100.0}, {MZ: 100.1, Intensity: 50.5}, {MZ: 100.2}}, first.Points)
	assert.Equal(t, "run.msp", first.SourceFile)
	assert.Equal(t, "msp", first.SourceFormat)

	require.True(t, r.Next())
	second := r.Scan()
	assert.Equal(t, 2, second.Number, "scan number defaults to the entry position")
	assert.Nil(t, second.RetentionTime)
	assert.Equal(t, 20.0, second.BasePeakIntensity, "base peak computed from the points")
	assert.Len(t, second.Points, 2)

	assert.False(t, r.Next())
	assert.NoError(t, r.Err())
	assert.Nil(t, r.Scan())
}

func TestReaderEmpty(t *testing.T) {
	r := NewReader(strings.NewReader("\n\n"), "")
	assert.False(t, r.Next())
	assert.NoError(t, r.Err())
}

func TestReaderZeroPoints(t *testing.T) {
	r := NewReader(strings.NewReader("Name: x\nNum peaks: 0\n"), "")
	require.True(t, r.Next())
	assert.Empty(t, r.Scan().Points)
	assert.False(t, r.Next())
	assert.NoError(t, r.Err())
}

func TestReaderErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "truncated entry", input: "Name: x\nNum peaks: 3\n100 1\n"},
		{name: "bad num peaks", input: "Name: x\nNum peaks: many\n"},
		{name: "bad point", input: "Name: x\nNum peaks: 1\n100 abc\n"},
		{name: "point before header", input: "100 1\n"},
		{name: "bad scan number", input: "Comment: Scan=x\nNum peaks: 0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewReader(strings.NewReader(tt.input), "")
			assert.False(t, r.Next())
			assert.Error(t, r.Err())
			assert.False(t, r.Next(), "reader stays stopped after an error")
		})
	}
}
