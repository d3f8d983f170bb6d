// Package piece describes variant piece types: their move atoms, zones and
// flags, independent of any particular board shape. Compilation of
// atoms into per-cell lookup tables is the move generator's job (pkg/movegen);
// this package only holds the declarative description.
package piece

// Offset is a (dx, dy) leap or ray step, in board-file/rank units.
type Offset struct{ DX, DY int }

// Family identifies one of the five move-atom families.
type Family int

const (
	FamilyLeaper Family = iota
	FamilyALeaper
	FamilyDoubleLeaper
	FamilyLameLeaper
	FamilySlider
	FamilyHopper
	FamilyStepper
	FamilyRider
)

// Atom is one primitive move family, compiled by the move generator into
// lookup tables keyed by origin cell.
type Atom struct {
	Family Family

	// FamilyLeaper: offsets, expanded 8-fold (or 4-fold if Symmetric4) by the compiler.
	// FamilyALeaper: offsets taken literally, then mirrored vertically for Black.
	Offsets    []Offset
	Symmetric4 bool // restrict the leaper's 8-fold symmetry to the 4 orthogonal-swap reflections

	// FamilyDoubleLeaper: composition of two leaps; the mid-square must be vacant of own pieces.
	First, Second Offset

	// FamilyLameLeaper: a leaper whose completion is blocked by an occupant on the mask offset.
	Leap, Mask Offset

	// FamilySlider / FamilyHopper: ray directions.
	Horizontal, Vertical, Diagonal, Antidiagonal bool

	// FamilyHopper: exactly one screen piece must lie on the ray before the landing run begins.

	// FamilyStepper: per-compass-direction repetition counts (0-15), White-oriented;
	// index order is N, NE, E, SE, S, SW, W, NW. Mirrored vertically for Black.
	StepCounts [8]int

	// FamilyRider: repeated leap offsets (up to 4 ray families), each ray continues
	// until blocked, like a slider but along a leaper's geometry.
	RiderOffsets []Offset
}

// Compass direction indices for Atom.StepCounts.
const (
	North = iota
	NorthEast
	East
	SouthEast
	South
	SouthWest
	West
	NorthWest
)

var compassDelta = [8]Offset{
	North:     {0, 1},
	NorthEast: {1, 1},
	East:      {1, 0},
	SouthEast: {1, -1},
	South:     {0, -1},
	SouthWest: {-1, -1},
	West:      {-1, 0},
	NorthWest: {-1, 1},
}

// CompassDelta returns the (dx,dy) unit step for a compass index.
func CompassDelta(i int) Offset { return compassDelta[i] }

// Leaper builds a simple 8-fold-symmetric leaper atom, e.g. Leaper(2,1) for a knight.
func Leaper(n, m int) Atom {
	return Atom{Family: FamilyLeaper, Offsets: []Offset{{n, m}}}
}

// Slide builds a slider atom over the requested ray directions.
func Slide(horizontal, vertical, diagonal, antidiagonal bool) Atom {
	return Atom{Family: FamilySlider, Horizontal: horizontal, Vertical: vertical, Diagonal: diagonal, Antidiagonal: antidiagonal}
}

// Hop builds a hopper (cannon-like) atom over the requested ray directions.
func Hop(horizontal, vertical, diagonal, antidiagonal bool) Atom {
	return Atom{Family: FamilyHopper, Horizontal: horizontal, Vertical: vertical, Diagonal: diagonal, Antidiagonal: antidiagonal}
}

// Step builds a stepper atom, e.g. Step(North: 1) for a single forward pawn step,
// or Step with North:2 for a piece that marches up to two squares.
func Step(counts [8]int) Atom {
	return Atom{Family: FamilyStepper, StepCounts: counts}
}

// Ride builds a rider atom repeating the given leap offsets until blocked.
func Ride(offsets ...Offset) Atom {
	return Atom{Family: FamilyRider, RiderOffsets: offsets}
}
