package piece

import "github.com/polychess/vace/pkg/bitboard"

// MaxPromotionZones bounds the number of rows in a piece's promotion table.
const MaxPromotionZones = 4

// Type identifies a piece type within a variant (up to 32 per variant).
type Type uint8

// PromotionRow is one row of a piece's promotion table: a zone and the set
// of type IDs the piece may become upon promoting within/through that zone.
type PromotionRow struct {
	Zone     bitboard.Word
	Targets  []Type
	Optional bool // optional_promotion: in-zone promotions also generate a non-promoting copy
	OnEntry  bool // entry_promotion: only promote when entering the zone from outside it
}

// Zones groups the side-relative (White-oriented; mirrored for Black by the
// variant assembler) square sets that govern a piece's special behaviour.
type Zones struct {
	Promotion    bitboard.Word
	SpecialZone  bitboard.Word // e.g. the unmoved-pawn zone that enables SpecialMoveFlags
	Prison       bitboard.Word // cells the piece may ever occupy; zero means unrestricted
	Block        bitboard.Word // cells treated as occupied for this piece's movement computation
	DropZone     bitboard.Word
}

// Descriptor fully describes one piece type's movement and rules.
type Descriptor struct {
	ID Type

	NameWhite, NameBlack string
	Symbol               rune
	NotationLetter        rune

	MoveAtoms    []Atom // non-capturing moves
	CaptureAtoms []Atom // capturing moves (defaults to MoveAtoms if empty)
	SpecialAtoms []Atom // used instead of MoveAtoms/CaptureAtoms inside Zones.SpecialZone
	InitialAtoms []Atom // used instead of MoveAtoms/CaptureAtoms from the piece's initial square

	Zones Zones

	PromotionTable []PromotionRow
	Demotion       Type // self (ID) if the piece does not demote when captured/re-entering hand

	Flags Flags
	Class Class

	MaxPerSide int // cap on simultaneous board+hand count; 0 means unlimited

	ValueMG, ValueEG int // nominal static value, centipawns
}

// CaptureAtomsOrMove returns CaptureAtoms, defaulting to MoveAtoms when unset —
// the common case of a piece that captures the way it moves.
func (d *Descriptor) CaptureAtomsOrMove() []Atom {
	if len(d.CaptureAtoms) > 0 {
		return d.CaptureAtoms
	}
	return d.MoveAtoms
}

// EffectiveDemotion returns Demotion, defaulting to the piece's own ID.
func (d *Descriptor) EffectiveDemotion() Type {
	if d.Demotion == 0 && d.ID != 0 {
		return d.ID
	}
	return d.Demotion
}
