package eval

import (
	"fmt"

	"github.com/polychess/vace/pkg/board"
)

// Score is a signed position or move score in centipawns. Positive favors
// White. Mate scores live in the narrow band just inside [MinScore,
// MaxScore] so they still compare correctly against ordinary material
// scores while remaining distinguishable via IsMateScore.
type Score int32

const (
	MaxScore Score = 1000000
	MinScore Score = -MaxScore
	Inf            = MaxScore + 1
	NegInf         = MinScore - 1

	// MateScore is returned for delivering mate on the current ply; a
	// shallower forced mate (fewer plies to deliver) is worth more, so
	// search results subtract one unit of MatePly per ply of depth as the
	// score is returned up the tree (StepMateDistance).
	MateScore     Score = MaxScore - 1000
	MateThreshold Score = MateScore - 1000
)

func (s Score) String() string {
	if IsMateScore(s) {
		return fmt.Sprintf("mate%+d", MatePly(s))
	}
	return fmt.Sprintf("%.2f", float64(s)/100)
}

// Unit returns the signed unit for the color: 1 for White and -1 for Black.
func Unit(c board.Color) Score {
	if c == board.White {
		return 1
	}
	return -1
}

// Crop crops a Score into [MinScore;MaxScore].
func Crop(s Score) Score {
	switch {
	case s > MaxScore:
		return MaxScore
	case s < MinScore:
		return MinScore
	default:
		return s
	}
}

// Max returns the largest of the given scores.
func Max(a, b Score) Score {
	if a < b {
		return b
	}
	return a
}

// Min returns the smallest of the given scores.
func Min(a, b Score) Score {
	if a < b {
		return a
	}
	return b
}

// IsMateScore reports whether s encodes a forced mate rather than a
// material/positional evaluation.
func IsMateScore(s Score) bool {
	return s > MateThreshold || s < -MateThreshold
}

// MatePly returns the signed ply count to mate encoded in s (positive: this
// side mates; negative: this side is mated), valid only when IsMateScore(s).
func MatePly(s Score) int {
	if s > 0 {
		return int(MateScore - s)
	}
	return -int(MateScore + s)
}

// MateIn builds the score for delivering mate in the given number of plies.
func MateIn(ply int) Score { return MateScore - Score(ply) }

// MatedIn builds the score for being mated in the given number of plies.
func MatedIn(ply int) Score { return -MateScore + Score(ply) }

// StepMateDistance widens a mate score by one ply as it is returned up
// through a recursive search call: a mate found deeper in the tree is worth
// one ply less to the node above it.
func StepMateDistance(s Score) Score {
	switch {
	case s > MateThreshold:
		return s - 1
	case s < -MateThreshold:
		return s + 1
	default:
		return s
	}
}
