package movegen

import (
	"github.com/polychess/vace/pkg/bitboard"
	"github.com/polychess/vace/pkg/board"
	"github.com/polychess/vace/pkg/move"
	"github.com/polychess/vace/pkg/piece"
)

// Generator binds a compiled Tables to move generation over a board.State
// One Generator is built per variant at assembly time and shared by
// every game/search thread that plays that variant; it holds no mutable state.
type Generator struct {
	Shape *bitboard.Shape
	T     *Tables

	// CaptureToHand, when set by the variant assembler (KEEP_CAPTURE or
	// RETURN_CAPTURE), makes a capturing move also add the captured piece's
	// demoted form to a side's hand -- the shogi/crazyhouse drop-back rule.
	CaptureToHand bool
	// CaptureToHandReturn routes the captured piece into its original
	// owner's hand instead of the capturer's (RETURN_CAPTURE rather than
	// KEEP_CAPTURE); meaningless unless CaptureToHand is set.
	CaptureToHandReturn bool
	// AllowPickup, when set by the variant assembler (ALLOW_PICKUP), makes
	// PseudoLegalMoves additionally emit "piece to hand" moves: a
	// non-royal own piece lifted into the mover's hand without landing
	// anywhere, only outside of check.
	AllowPickup bool
	// GateDrops, when set by the variant assembler (GATE_DROPS), makes
	// PseudoLegalMoves additionally emit Seirawan-style gating add-ons: a
	// copy of any move vacating a still-unmoved square, with a held piece
	// dropped onto that square in the same ply.
	GateDrops bool
	// ForceCapture, when set by the variant assembler (FORCE_CAPTURE), makes
	// LegalMoves narrow to capturing moves whenever at least one is legal --
	// draughts-style forced-capture rather than a recommendation.
	ForceCapture bool
}

// New compiles atom tables for the given shape/descriptors and returns a Generator.
func New(shape *bitboard.Shape, descriptors []*piece.Descriptor) *Generator {
	return &Generator{Shape: shape, T: Compile(shape, descriptors)}
}

// occupancy returns the board's full occupancy word.
func occupancy(s *board.State) bitboard.Word {
	return s.BBC[board.White].Or(s.BBC[board.Black])
}

// EmptyBoardReach returns the set of cells a piece of the given type could
// reach from cell on an otherwise empty board, move and capture atoms
// combined, occupancy ignored (rays run to the board edge). Used at variant
// assembly time to build a per-cell mobility figure for piece-square
// tables -- not used during search, where occupancy always matters.
func (g *Generator) EmptyBoardReach(pieceType piece.Type, cell int) bitboard.Word {
	var u bitboard.Word
	for _, a := range g.T.move[pieceType] {
		u = u.Or(a.unobstructedReach(g.Shape, cell))
	}
	for _, a := range g.T.capture[pieceType] {
		u = u.Or(a.unobstructedReach(g.Shape, cell))
	}
	return u
}

// destinations returns the set of cells reachable by one compiled atom from
// cell, given the board's occupancy, blocking on the first occupied cell
// (inclusive) for ray-like families.
func (g *Generator) destinations(ca compiledAtom, c board.Color, cell int, occ bitboard.Word) bitboard.Word {
	switch {
	case ca.isScreened:
		table, mask := ca.leapFromCellWhite, ca.maskCellWhite
		if c == board.Black {
			table, mask = ca.leapFromCellBlack, ca.maskCellBlack
		}
		m := mask[cell]
		if m < 0 || occ.Test(m) {
			return bitboard.Zero
		}
		return table[cell]
	case ca.leapFromCellWhite != nil:
		if c == board.Black {
			return ca.leapFromCellBlack[cell]
		}
		return ca.leapFromCellWhite[cell]
	case ca.isRider:
		return riderReach(g.Shape, cell, ca.atom.RiderOffsets, ca.riderMax, occ)
	case ca.isHopper:
		var out bitboard.Word
		for _, d := range ca.rays {
			out = out.Or(hopperLanding(g.Shape, cell, d, occ))
		}
		return out
	case ca.stepFromCellWhite != nil:
		runs := ca.stepFromCellWhite
		if c == board.Black {
			runs = ca.stepFromCellBlack
		}
		return stepperBlocked(g.Shape, cell, runs, occ)
	default: // slider
		var out bitboard.Word
		for _, d := range ca.rays {
			out = out.Or(rayReach(g.Shape, cell, d, occ))
		}
		return out
	}
}

// hopperLanding finds the landing set beyond exactly one screen piece along dir.
func hopperLanding(shape *bitboard.Shape, cell int, dir [2]int, occ bitboard.Word) bitboard.Word {
	var out bitboard.Word
	f, r := shape.File(cell), shape.Rank(cell)
	screened := false
	for {
		f += dir[0]
		r += dir[1]
		if f < 0 || f >= shape.Files || r < 0 || r >= shape.Ranks {
			break
		}
		c := shape.Cell(f, r)
		if !screened {
			if occ.Test(c) {
				screened = true
			}
			continue
		}
		out = out.Set(c)
		if occ.Test(c) {
			break
		}
	}
	return out
}

func stepperBlocked(shape *bitboard.Shape, cell int, runs []stepRun, occ bitboard.Word) bitboard.Word {
	var out bitboard.Word
	f, r := shape.File(cell), shape.Rank(cell)
	for _, run := range runs {
		nf, nr := f, r
		for i := 0; i < run.count; i++ {
			nf += run.dx
			nr += run.dy
			if nf < 0 || nf >= shape.Files || nr < 0 || nr >= shape.Ranks {
				break
			}
			c := shape.Cell(nf, nr)
			if occ.Test(c) {
				break
			}
			out = out.Set(c)
		}
	}
	return out
}

// AttacksCell reports whether side `by` attacks `cell`, by running each
// declared piece type's capture atoms in reverse from cell and checking
// whether a piece of that type belonging to `by` sits on a reached square
// (a superpiece technique, specialized per type rather than the
// single coarse filter, which is reserved for the cheap pre-screen).
func (g *Generator) AttacksCell(s *board.State, cell int, by board.Color) bool {
	occ := occupancy(s)
	for t, descs := range g.T.capture {
		bbp := s.BBP[piece.Type(t)]
		if bbp.IsEmpty() {
			continue
		}
		target := bbp.And(s.BBC[by])
		if target.IsEmpty() {
			continue
		}
		for _, ca := range descs {
			reach := g.destinations(ca, by.Opponent(), cell, occ)
			if reach.And(target).IsEmpty() {
				continue
			}
			return true
		}
	}
	return false
}

// PlayerInCheck reports whether side c's royal piece(s) are attacked.
func (g *Generator) PlayerInCheck(s *board.State, c board.Color) bool {
	royal := s.Royal.And(s.BBC[c])
	for royal.PopCount() > 0 {
		var sq int
		sq, royal = royal.PopLSB()
		if g.AttacksCell(s, sq, c.Opponent()) {
			return true
		}
	}
	return false
}

// Attacker is one piece of a given side found to attack a target square.
type Attacker struct {
	From int
	Type piece.Type
}

// FindAttackers returns every piece belonging to `side` that directly
// attacks `sq`, per-type (unlike AttacksCell's yes/no answer), for SEE's
// swap-off ordering.
func (g *Generator) FindAttackers(s *board.State, sq int, side board.Color) []Attacker {
	occ := occupancy(s)
	var out []Attacker
	for t, descs := range g.T.capture {
		own := s.BBP[piece.Type(t)].And(s.BBC[side])
		if own.IsEmpty() {
			continue
		}
		for _, ca := range descs {
			reach := g.destinations(ca, side.Opponent(), sq, occ)
			candidates := reach.And(own)
			for candidates.PopCount() > 0 {
				var from int
				from, candidates = candidates.PopLSB()
				out = append(out, Attacker{From: from, Type: piece.Type(t)})
			}
		}
	}
	return out
}

// CountPseudoLegalDestinations sums the destination-square count of every
// piece belonging to c, quiet and capturing combined -- a cheap mobility
// proxy for evaluation that skips building Move values entirely.
func (g *Generator) CountPseudoLegalDestinations(s *board.State, c board.Color) int {
	occ := occupancy(s)
	enemy := s.BBC[c.Opponent()]
	n := 0
	pieces := s.BBC[c]
	for pieces.PopCount() > 0 {
		var from int
		from, pieces = pieces.PopLSB()
		t := s.PieceAt[from].Type

		moveAtoms, captureAtoms := g.T.move[t], g.T.capture[t]
		switch {
		case s.Init.Test(from) && len(g.T.initial[t]) > 0:
			moveAtoms, captureAtoms = g.T.initial[t], g.T.initial[t]
		case s.Descriptors[t].Zones.SpecialZone.Test(from) && len(g.T.special[t]) > 0:
			moveAtoms, captureAtoms = g.T.special[t], g.T.special[t]
		}

		dest := bitboard.Zero
		for _, ca := range moveAtoms {
			dest = dest.Or(g.destinations(ca, c, from, occ))
		}
		dest = dest.AndNot(occ)
		for _, ca := range captureAtoms {
			dest = dest.Or(g.destinations(ca, c, from, occ).And(enemy))
		}
		n += dest.PopCount()
	}
	return n
}

// PseudoLegalMoves generates every move available to the side to move,
// without filtering for self-check (stage order: drops, pickups, board
// moves including promotions, castling, gating add-ons, en passant).
func (g *Generator) PseudoLegalMoves(s *board.State) []move.Move {
	var out []move.Move
	mover := s.SideToMove
	occ := occupancy(s)

	out = append(out, g.generateDrops(s, mover)...)
	if g.AllowPickup && !g.PlayerInCheck(s, mover) {
		out = append(out, g.generatePickups(s, mover, occ)...)
	}
	boardMoves := g.generateBoardMoves(s, mover, occ)
	castles := g.generateCastles(s, mover, occ)
	out = append(out, boardMoves...)
	out = append(out, castles...)
	if g.GateDrops {
		out = append(out, g.generateGates(s, mover, boardMoves, castles)...)
	}
	out = append(out, g.generateEnPassant(s, mover)...)

	return out
}

// generateGates implements Seirawan-style gating (spec step 8): after all
// normal and castle moves are produced, any move whose primary origin
// square is still marked Init (the piece standing there has never moved)
// gets one additional copy per piece the mover holds, each adding a Drop of
// that piece onto the vacated origin square alongside a -1 holding delta.
func (g *Generator) generateGates(s *board.State, mover board.Color, boardMoves, castles []move.Move) []move.Move {
	var out []move.Move
	for _, m := range append(append([]move.Move{}, boardMoves...), castles...) {
		from, ok := m.From()
		if !ok || !s.Init.Test(int(from)) {
			continue
		}
		for t := range s.Descriptors {
			if s.Holdings[t][mover] <= 0 {
				continue
			}
			gated := m
			gated.Drops = append(append([]move.Drop{}, m.Drops...), move.Drop{Piece: move.PieceRef(t), To: from})
			gated.Holding = &move.HoldingDelta{Piece: move.PieceRef(t), Delta: -1}
			out = append(out, gated)
		}
	}
	return out
}

// generatePickups emits ALLOW_PICKUP's "piece to hand" shape: one pickup of
// a non-royal own piece, no swap or drop, crediting the lifted piece to the
// mover's hand. Spec step 2 restricts this to when the mover is not in
// check; the caller already guarantees that.
func (g *Generator) generatePickups(s *board.State, mover board.Color, occ bitboard.Word) []move.Move {
	var out []move.Move
	candidates := s.BBC[mover].AndNot(s.Royal)
	for candidates.PopCount() > 0 {
		var from int
		from, candidates = candidates.PopLSB()
		t := s.PieceAt[from].Type
		out = append(out, move.Move{
			Primary: move.PieceRef(t),
			Pickups: []move.Cell{move.Cell(from)},
			Holding: &move.HoldingDelta{Piece: move.PieceRef(t), Delta: 1},
			Reset50: true,
		})
	}
	return out
}

// LegalMoves filters its candidate set by make/unmake self-check testing.
// When the mover is in check, the narrower EvasionMoves set is used as the
// candidate pool instead of the full PseudoLegalMoves; the self-check
// filter below still runs regardless, since pins, discovered check and
// duplecheck configurations can leave a pseudo-legal evasion illegal.
func (g *Generator) LegalMoves(s *board.State) []move.Move {
	mover := s.SideToMove
	candidates := g.PseudoLegalMoves(s)
	if g.PlayerInCheck(s, mover) {
		candidates = g.EvasionMoves(s)
	}
	var out []move.Move
	for _, m := range candidates {
		undo := s.Make(m)
		if !g.PlayerInCheck(s, mover) {
			out = append(out, m)
		}
		s.Unmake(m, undo)
	}
	if g.ForceCapture {
		if captures := filterCaptures(out); len(captures) > 0 {
			return captures
		}
	}
	return out
}

// filterCaptures narrows a legal-move list to its capturing moves, for the
// FORCE_CAPTURE rule -- a capture is mandatory whenever at least one exists.
func filterCaptures(moves []move.Move) []move.Move {
	var out []move.Move
	for _, m := range moves {
		if m.IsCapture() {
			out = append(out, m)
		}
	}
	return out
}

// EvasionMoves generates the check-evasion candidate set (spec §4.2.4): king
// moves off the attacked square, captures of the sole checker, and
// interpositions on the ray between a sole slider/rider/hopper checker and
// the royal cell. Pseudo-legal only, like PseudoLegalMoves -- callers still
// need to self-check-filter it. With more than one checker only king moves
// and en passant captures are returned; the self-check filter in LegalMoves
// then excludes king moves onto squares the checkers still attack. Falls
// back to the full pseudo-legal set when the mover does not have exactly
// one royal cell (duplecheck-style variants) or no checker is found.
func (g *Generator) EvasionMoves(s *board.State) []move.Move {
	mover := s.SideToMove
	occ := occupancy(s)
	royal := s.Royal.And(s.BBC[mover])

	if royal.PopCount() != 1 {
		return g.PseudoLegalMoves(s)
	}
	kingCell := royal.Bitscan()

	attackers := g.FindAttackers(s, kingCell, mover.Opponent())
	if len(attackers) == 0 {
		return g.PseudoLegalMoves(s)
	}
	if len(attackers) > 1 {
		out := g.kingMoves(s, mover, kingCell, occ)
		out = append(out, g.generateEnPassant(s, mover)...)
		return out
	}

	out := g.kingMoves(s, mover, kingCell, occ)
	checkerCell := attackers[0].From
	blockSquares := g.Shape.Between[checkerCell][kingCell].Set(checkerCell)
	out = append(out, g.movesLandingOn(s, mover, occ, blockSquares)...)
	out = append(out, g.generateEnPassant(s, mover)...)
	return out
}

// kingMoves generates quiet and capturing destinations for the single piece
// standing on `from`, used by EvasionMoves for the royal cell (any legal
// king move is always a candidate evasion).
func (g *Generator) kingMoves(s *board.State, mover board.Color, from int, occ bitboard.Word) []move.Move {
	t := s.PieceAt[from].Type
	moveAtoms, captureAtoms := g.T.move[t], g.T.capture[t]

	quietDest := bitboard.Zero
	for _, ca := range moveAtoms {
		quietDest = quietDest.Or(g.destinations(ca, mover, from, occ))
	}
	quietDest = quietDest.AndNot(occ)

	capDest := bitboard.Zero
	for _, ca := range captureAtoms {
		capDest = capDest.Or(g.destinations(ca, mover, from, occ))
	}
	capDest = capDest.And(s.BBC[mover.Opponent()])

	var out []move.Move
	out = append(out, g.expandDestinations(s, mover, from, quietDest, false)...)
	out = append(out, g.expandDestinations(s, mover, from, capDest, true)...)
	return out
}

// movesLandingOn restricts board moves and drops to those whose destination
// square is in dests -- the interposition/capture-the-checker leg of
// EvasionMoves.
func (g *Generator) movesLandingOn(s *board.State, mover board.Color, occ bitboard.Word, dests bitboard.Word) []move.Move {
	var out []move.Move
	for _, m := range g.generateBoardMoves(s, mover, occ) {
		if to, ok := m.To(); ok && dests.Test(int(to)) {
			out = append(out, m)
		}
	}
	for _, m := range g.generateDrops(s, mover) {
		if len(m.Drops) > 0 && dests.Test(int(m.Drops[0].To)) {
			out = append(out, m)
		}
	}
	return out
}

func (g *Generator) generateDrops(s *board.State, mover board.Color) []move.Move {
	var out []move.Move
	occ := occupancy(s)
	empty := s.Shape.All.AndNot(occ)
	for t, d := range s.Descriptors {
		if s.Holdings[t][mover] <= 0 {
			continue
		}
		zone := d.Zones.DropZone
		if zone.IsEmpty() {
			zone = s.Shape.All
		}
		avail := zone.And(empty)
		for avail.PopCount() > 0 {
			var sq int
			sq, avail = avail.PopLSB()
			out = append(out, move.Move{
				Primary: move.PieceRef(t),
				Drops:   []move.Drop{{Piece: move.PieceRef(t), To: move.Cell(sq)}},
				Holding: &move.HoldingDelta{Piece: move.PieceRef(t), Delta: -1},
				Reset50: true,
			})
		}
	}
	return out
}

func (g *Generator) generateBoardMoves(s *board.State, mover board.Color, occ bitboard.Word) []move.Move {
	var out []move.Move
	own := s.BBC[mover]
	enemy := s.BBC[mover.Opponent()]

	pieces := own
	for pieces.PopCount() > 0 {
		var from int
		from, pieces = pieces.PopLSB()
		t := s.PieceAt[from].Type

		moveAtoms, captureAtoms := g.T.move[t], g.T.capture[t]
		switch {
		case s.Init.Test(from) && len(g.T.initial[t]) > 0:
			moveAtoms, captureAtoms = g.T.initial[t], g.T.initial[t]
		case s.Descriptors[t].Zones.SpecialZone.Test(from) && len(g.T.special[t]) > 0:
			moveAtoms, captureAtoms = g.T.special[t], g.T.special[t]
		}

		quietDest := bitboard.Zero
		for _, ca := range moveAtoms {
			quietDest = quietDest.Or(g.destinations(ca, mover, from, occ))
		}
		quietDest = quietDest.AndNot(occ)

		capDest := bitboard.Zero
		for _, ca := range captureAtoms {
			capDest = capDest.Or(g.destinations(ca, mover, from, occ))
		}
		capDest = capDest.And(enemy)

		out = append(out, g.expandDestinations(s, mover, from, quietDest, false)...)
		out = append(out, g.expandDestinations(s, mover, from, capDest, true)...)
	}
	return out
}

// expandDestinations turns a destination set from one origin square into
// Move values, splitting into promotion alternatives per the piece's
// PromotionTable and tagging double-step pawn-likes for en passant.
func (g *Generator) expandDestinations(s *board.State, mover board.Color, from int, dests bitboard.Word, capture bool) []move.Move {
	var out []move.Move
	t := s.PieceAt[from].Type
	d := s.Descriptors[t]

	for dests.PopCount() > 0 {
		var to int
		to, dests = dests.PopLSB()

		var pickups []move.Cell
		if capture {
			pickups = append(pickups, move.Cell(to))
		}

		base := move.Move{
			Primary: move.PieceRef(t),
			Pickups: pickups,
			Swaps:   []move.Swap{{From: move.Cell(from), To: move.Cell(to)}},
		}
		if capture && g.CaptureToHand {
			victimOcc := s.PieceAt[to]
			gained := s.Descriptors[victimOcc.Type].EffectiveDemotion()
			base.Holding = &move.HoldingDelta{
				Piece:      move.PieceRef(gained),
				Delta:      1,
				ToOpponent: g.CaptureToHandReturn,
			}
		}

		promoted := false
		for _, row := range d.PromotionTable {
			if !row.Zone.Test(to) {
				continue
			}
			enters := !row.Zone.Test(from)
			if row.OnEntry && !enters {
				continue
			}
			for _, target := range row.Targets {
				m := base
				m.Drops = []move.Drop{{Piece: move.PieceRef(target), To: move.Cell(to)}}
				m.Reset50 = true
				out = append(out, m)
				promoted = true
			}
			if row.Optional {
				m := base
				m.Reset50 = capture
				out = append(out, m)
			}
		}
		if promoted {
			continue
		}

		m := base
		m.Reset50 = capture || d.Class.Has(piece.ClassPawn)
		if d.Zones.SpecialZone.Test(from) && abs(g.Shape.Rank(to)-g.Shape.Rank(from)) == 2 {
			m.SetEnPassant = true
		}
		out = append(out, m)
	}
	return out
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func (g *Generator) generateEnPassant(s *board.State, mover board.Color) []move.Move {
	if s.EP.IsEmpty() {
		return nil
	}
	var out []move.Move
	victimOcc := s.PieceAt[s.EPVictim]
	if !victimOcc.Present || victimOcc.Color == mover {
		return out
	}
	ep := s.EP
	for ep.PopCount() > 0 {
		var target int
		target, ep = ep.PopLSB()
		for t, d := range s.Descriptors {
			if !d.Class.Has(piece.ClassPawn) {
				continue
			}
			candidates := s.BBP[t].And(s.BBC[mover])
			c := candidates
			for c.PopCount() > 0 {
				var from int
				from, c = c.PopLSB()
				occ := occupancy(s)
				reach := bitboard.Zero
				for _, ca := range g.T.capture[t] {
					reach = reach.Or(g.destinations(ca, mover, from, occ))
				}
				if !reach.Test(target) {
					continue
				}
				out = append(out, move.Move{
					Primary: move.PieceRef(t),
					Pickups: []move.Cell{move.Cell(s.EPVictim)},
					Swaps:   []move.Swap{{From: move.Cell(from), To: move.Cell(target)}},
					Reset50: true,
				})
			}
		}
	}
	return out
}

// generateCastles emits the double-swap Castle shape for every
// declared CastlingRule still available, whose path is clear and whose
// king does not pass through or land on an attacked square.
func (g *Generator) generateCastles(s *board.State, mover board.Color, occ bitboard.Word) []move.Move {
	var out []move.Move
	for _, rule := range s.CastlingRules {
		if rule.Side != mover || !s.Castling.IsAllowed(rule.Right) {
			continue
		}
		path := g.Shape.Between[rule.KingFrom][rule.KingTo].Or(bitboard.FromCell(rule.KingTo))
		path = path.Or(g.Shape.Between[rule.RookFrom][rule.RookTo]).Or(bitboard.FromCell(rule.RookTo))
		path = path.AndNot(bitboard.FromCell(rule.KingFrom)).AndNot(bitboard.FromCell(rule.RookFrom))
		if !path.AndNot(occ).Equals(path) {
			continue
		}
		kingTravel := g.Shape.Between[rule.KingFrom][rule.KingTo]
		kingTravel = kingTravel.Or(bitboard.FromCell(rule.KingFrom)).Or(bitboard.FromCell(rule.KingTo))
		unsafe := false
		for kingTravel.PopCount() > 0 {
			var sq int
			sq, kingTravel = kingTravel.PopLSB()
			if g.AttacksCell(s, sq, mover.Opponent()) {
				unsafe = true
				break
			}
		}
		if unsafe {
			continue
		}
		out = append(out, move.Move{
			Primary: move.PieceRef(s.PieceAt[rule.KingFrom].Type),
			Swaps: []move.Swap{
				{From: move.Cell(rule.KingFrom), To: move.Cell(rule.KingTo)},
				{From: move.Cell(rule.RookFrom), To: move.Cell(rule.RookTo)},
			},
		})
	}
	return out
}
