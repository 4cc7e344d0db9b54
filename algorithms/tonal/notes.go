package tonal

import (
	"fmt"
	"math"
	"slices"
	"sort"
	"strings"
	"sync"
)

// PitchClass is one of the twelve equal-tempered note names, or Unknown
type PitchClass int

const (
	Unknown PitchClass = iota
	C
	CSharp
	D
	DSharp
	E
	F
	FSharp
	G
	GSharp
	A
	ASharp
	B
)

var pitchClassNames = []string{"Unknown", "C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// PitchClasses lists the twelve named classes in chromatic order from C
func PitchClasses() []PitchClass {
	return []PitchClass{C, CSharp, D, DSharp, E, F, FSharp, G, GSharp, A, ASharp, B}
}

func (p PitchClass) String() string {
	if p < Unknown || p > B {
		return pitchClassNames[Unknown]
	}
	return pitchClassNames[p]
}

// MarshalText encodes the class by name
func (p PitchClass) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText accepts names such as "C#", "c#" or "Unknown"
func (p *PitchClass) UnmarshalText(text []byte) error {
	parsed, err := ParsePitchClass(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// ParsePitchClass maps a note name to its class
func ParsePitchClass(name string) (PitchClass, error) {
	trimmed := strings.TrimSpace(name)
	for i, n := range pitchClassNames {
		if strings.EqualFold(n, trimmed) {
			return PitchClass(i), nil
		}
	}
	return Unknown, fmt.Errorf("unrecognized pitch class %q", name)
}

// NoteReference is one row of a note table
type NoteReference struct {
	Frequency float64    `json:"frequency"` // Reference frequency (Hz)
	Class     PitchClass `json:"class"`
	Octave    int        `json:"octave"` // Scientific pitch octave, C4 is middle C
}

func (r NoteReference) String() string {
	return fmt.Sprintf("%s%d (%.2f Hz)", r.Class, r.Octave, r.Frequency)
}

// NoteTable is an immutable list of references sorted by frequency
type NoteTable struct {
	refs []NoteReference
}

// NewNoteTable copies refs and sorts them by ascending frequency
func NewNoteTable(refs []NoteReference) *NoteTable {
	sorted := slices.Clone(refs)
	slices.SortStableFunc(sorted, func(a, b NoteReference) int {
		switch {
		case a.Frequency < b.Frequency:
			return -1
		case a.Frequency > b.Frequency:
			return 1
		default:
			return 0
		}
	})
	return &NoteTable{refs: sorted}
}

// Len returns the number of references
func (t *NoteTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.refs)
}

// References returns a copy of the table rows in ascending order
func (t *NoteTable) References() []NoteReference {
	if t == nil {
		return nil
	}
	return slices.Clone(t.refs)
}

// Match returns the lowest reference within epsilon of hz. Because the rows
// are sorted, the first row above hz-epsilon is the only candidate a linear
// first-match scan could return.
func (t *NoteTable) Match(hz, epsilon float64) (NoteReference, bool) {
	if t == nil || len(t.refs) == 0 {
		return NoteReference{}, false
	}
	if math.IsNaN(hz) || math.IsInf(hz, 0) || !(epsilon > 0) {
		return NoteReference{}, false
	}

	lower := hz - epsilon
	i := sort.Search(len(t.refs), func(i int) bool {
		return t.refs[i].Frequency > lower
	})
	if i == len(t.refs) {
		return NoteReference{}, false
	}

	ref := t.refs[i]
	if math.Abs(hz-ref.Frequency) < epsilon {
		return ref, true
	}
	return NoteReference{}, false
}

// ClassifyNote returns the pitch class of the first reference within epsilon
// of hz, or Unknown.
//
// With a flat tolerance of about 1 Hz, classification is unreliable below
// roughly 130 Hz, where neighbouring semitones are less than 2 Hz apart in
// the low octaves and a tolerance window can cover two references.
func ClassifyNote(hz float64, table *NoteTable, epsilon float64) PitchClass {
	ref, ok := table.Match(hz, epsilon)
	if !ok {
		return Unknown
	}
	return ref.Class
}

// Equal-tempered reference frequencies from C0 to B8 rounded to 0.01 Hz
var defaultFrequencies = [9][12]float64{
	{16.35, 17.32, 18.35, 19.45, 20.60, 21.83, 23.12, 24.50, 25.96, 27.50, 29.14, 30.87},
	{32.70, 34.65, 36.71, 38.89, 41.20, 43.65, 46.25, 49.00, 51.91, 55.00, 58.27, 61.74},
	{65.41, 69.30, 73.42, 77.78, 82.41, 87.31, 92.50, 98.00, 103.83, 110.00, 116.54, 123.47},
	{130.81, 138.59, 146.83, 155.56, 164.81, 174.61, 185.00, 196.00, 207.65, 220.00, 233.08, 246.94},
	{261.63, 277.18, 293.66, 311.13, 329.63, 349.23, 369.99, 392.00, 415.30, 440.00, 466.16, 493.88},
	{523.25, 554.37, 587.33, 622.25, 659.25, 698.46, 739.99, 783.99, 830.61, 880.00, 932.33, 987.77},
	{1046.50, 1108.73, 1174.66, 1244.51, 1318.51, 1396.91, 1479.98, 1567.98, 1661.22, 1760.00, 1864.66, 1975.53},
	{2093.00, 2217.46, 2349.32, 2489.02, 2637.02, 2793.83, 2959.96, 3135.96, 3322.44, 3520.00, 3729.31, 3951.07},
	{4186.01, 4434.92, 4698.63, 4978.03, 5274.04, 5587.65, 5919.91, 6271.93, 6644.88, 7040.00, 7458.62, 7902.13},
}

var defaultTable = sync.OnceValue(func() *NoteTable {
	classes := PitchClasses()
	refs := make([]NoteReference, 0, len(defaultFrequencies)*len(classes))
	for octave, row := range defaultFrequencies {
		for i, hz := range row {
			refs = append(refs, NoteReference{Frequency: hz, Class: classes[i], Octave: octave})
		}
	}
	return NewNoteTable(refs)
})

// DefaultNoteTable returns the shared 108-note table spanning C0 to B8
func DefaultNoteTable() *NoteTable {
	return defaultTable()
}
