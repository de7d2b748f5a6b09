package domain

// UnknownDistance is the score reported when either bin cannot be decoded.
// It is distinct from 0, which means the same location.
const UnknownDistance = -1

// DefaultRowChangePenalty weights a change of aisle against one bay of travel.
const DefaultRowChangePenalty = 25

// DistanceScorer computes a unit-less travel cost between two bins.
type DistanceScorer struct {
	RowChangePenalty int
}

// Score returns |row delta| * RowChangePenalty + |bay delta|.
func (s DistanceScorer) Score(currentBin, previousBin string) int {
	cur, ok := DecodeBin(currentBin)
	if !ok {
		return UnknownDistance
	}
	prev, ok := DecodeBin(previousBin)
	if !ok {
		return UnknownDistance
	}

	return abs(cur.Row-prev.Row)*s.RowChangePenalty + abs(cur.Bay-prev.Bay)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
