package puzzle

import (
	"math"

	"github.com/tilereveal/tilereveal/internal/bank"
)

// TileAssignment pairs a grid tile with its question. Options arrive
// pre-shuffled for this assignment, with CorrectIndex remapped to match.
type TileAssignment struct {
	TileIndex int           `json:"tile_index"`
	Question  bank.Question `json:"question"`
}

// UsedSet accumulates question ids a user has been served across sessions.
// The selector mutates it in place; the caller owns it exclusively and must
// serialize concurrent sessions for the same user.
type UsedSet map[string]struct{}

func (s UsedSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

func (s UsedSet) Add(id string) {
	s[id] = struct{}{}
}

// Selector assigns questions to puzzle tiles under difficulty, role
// diversity, repeat and similarity constraints.
type Selector struct {
	bank      []bank.Question
	threshold int
}

// NewSelector wraps a built corpus with the default similarity threshold.
func NewSelector(questions []bank.Question) *Selector {
	return &Selector{bank: questions, threshold: DefaultSimilarityThreshold}
}

// Select fills gridSize^2 tiles. A nil seed picks freshly each call; with a
// seed the whole session replays bit-for-bit: role order, candidate picks,
// option shuffles and the final tile shuffle all draw from one generator.
// used grows by every chosen question id. If the bank is exhausted the
// result is shorter than gridSize^2 and the caller decides how to degrade.
func (s *Selector) Select(gridSize int, used UsedSet, seed *int64) []TileAssignment {
	rng := NewClockRNG()
	if seed != nil {
		rng = NewRNG(*seed)
	}
	return s.selectWithRNG(gridSize, used, rng)
}

func (s *Selector) selectWithRNG(gridSize int, used UsedSet, rng *RNG) []TileAssignment {
	total := gridSize * gridSize

	// Role order is shuffled once and fixed for the whole puzzle.
	roleOrder := append([]bank.Role(nil), bank.Roles...)
	rng.Shuffle(len(roleOrder), func(i, j int) {
		roleOrder[i], roleOrder[j] = roleOrder[j], roleOrder[i]
	})

	sessionUsed := make(map[string]struct{}, total)
	usedRoles := make(map[bank.Role]struct{}, len(roleOrder))
	selected := make([]bank.Question, 0, total)
	assignments := make([]TileAssignment, 0, total)

	for tile := 0; tile < total; tile++ {
		minDiff, maxDiff := difficultyBand(tile, total)
		q, ok := s.pickForTile(minDiff, maxDiff, roleOrder, usedRoles, sessionUsed, used, selected, rng)
		if !ok {
			continue
		}
		sessionUsed[q.ID] = struct{}{}
		used.Add(q.ID)
		selected = append(selected, q)
		assignments = append(assignments, TileAssignment{
			TileIndex: tile,
			Question:  shuffleOptions(q, rng),
		})
	}

	// Decouple assignment order from grid position: shuffle, then renumber,
	// so a tile's spot on the board says nothing about its difficulty tier.
	rng.Shuffle(len(assignments), func(i, j int) {
		assignments[i], assignments[j] = assignments[j], assignments[i]
	})
	for i := range assignments {
		assignments[i].TileIndex = i
	}
	return assignments
}

// difficultyBand ramps the first three assignments ([1,2], [2,3], [3,4])
// and then holds a constant band: [3,4] for grids of at most 9 tiles,
// [3,5] for larger ones.
func difficultyBand(tile, total int) (int, int) {
	switch tile {
	case 0:
		return 1, 2
	case 1:
		return 2, 3
	case 2:
		return 3, 4
	}
	if total <= 9 {
		return 3, 4
	}
	return 3, 5
}

// stage is one relaxation level of the selection pipeline: it reports
// whether a question may still be offered for the current tile.
type stage func(q bank.Question) bool

func (s *Selector) pickForTile(
	minDiff, maxDiff int,
	roleOrder []bank.Role,
	usedRoles map[bank.Role]struct{},
	sessionUsed map[string]struct{},
	used UsedSet,
	selected []bank.Question,
	rng *RNG,
) (bank.Question, bool) {
	notSessionUsed := func(q bank.Question) bool {
		_, taken := sessionUsed[q.ID]
		return !taken
	}
	notCrossUsed := func(q bank.Question) bool {
		return q.Reusable || !used.Has(q.ID)
	}
	inBand := func(q bank.Question) bool {
		return q.Difficulty >= minDiff && q.Difficulty <= maxDiff
	}
	notSimilar := func(q bank.Question) bool {
		return !TooSimilar(q, selected, s.threshold)
	}

	// Role pass: first unused role in the fixed order that still has a
	// fully constrained candidate wins, and the role is marked spent.
	for _, role := range roleOrder {
		if _, taken := usedRoles[role]; taken {
			continue
		}
		candidates := s.filter(func(q bank.Question) bool {
			return q.Role == role && notSessionUsed(q) && notCrossUsed(q) && inBand(q) && notSimilar(q)
		})
		if len(candidates) > 0 {
			usedRoles[role] = struct{}{}
			return candidates[rng.Intn(len(candidates))], true
		}
	}

	// Relaxation ladder: drop the role constraint, then similarity, then
	// the difficulty band. Stops at the first non-empty level.
	relaxations := []stage{
		func(q bank.Question) bool {
			return notSessionUsed(q) && notCrossUsed(q) && inBand(q) && notSimilar(q)
		},
		func(q bank.Question) bool {
			return notSessionUsed(q) && notCrossUsed(q) && inBand(q)
		},
		notSessionUsed,
	}
	for _, keep := range relaxations {
		if candidates := s.filter(keep); len(candidates) > 0 {
			return candidates[rng.Intn(len(candidates))], true
		}
	}

	return bank.Question{}, false
}

func (s *Selector) filter(keep stage) []bank.Question {
	var out []bank.Question
	for _, q := range s.bank {
		if keep(q) {
			out = append(out, q)
		}
	}
	return out
}

// shuffleOptions returns a copy of q with its options permuted and
// CorrectIndex tracking the correct answer through every swap.
func shuffleOptions(q bank.Question, rng *RNG) bank.Question {
	options := append([]string(nil), q.Options...)
	correct := q.CorrectIndex
	rng.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
		switch correct {
		case i:
			correct = j
		case j:
			correct = i
		}
	})
	q.Options = options
	q.CorrectIndex = correct
	return q
}

// GeometricSelect is the legacy strategy: difficulty follows literal grid
// geometry (Chebyshev distance from the board center scaled into 1..5)
// instead of assignment order, with no role or similarity constraints.
// Kept as a secondary option for center-out reveal layouts; the role-aware
// Select above is the primary path.
func (s *Selector) GeometricSelect(gridSize int, used UsedSet, seed *int64) []TileAssignment {
	rng := NewClockRNG()
	if seed != nil {
		rng = NewRNG(*seed)
	}

	total := gridSize * gridSize
	center := float64(gridSize-1) / 2
	sessionUsed := make(map[string]struct{}, total)
	assignments := make([]TileAssignment, 0, total)

	for tile := 0; tile < total; tile++ {
		row := float64(tile / gridSize)
		col := float64(tile % gridSize)
		dist := math.Max(math.Abs(row-center), math.Abs(col-center))
		difficulty := 1
		if center > 0 {
			difficulty = 1 + int(math.Round(dist/center*4))
		}
		if difficulty > 5 {
			difficulty = 5
		}

		candidates := s.filter(func(q bank.Question) bool {
			if _, taken := sessionUsed[q.ID]; taken {
				return false
			}
			if !q.Reusable && used.Has(q.ID) {
				return false
			}
			return q.Difficulty == difficulty
		})
		if len(candidates) == 0 {
			candidates = s.filter(func(q bank.Question) bool {
				_, taken := sessionUsed[q.ID]
				return !taken
			})
		}
		if len(candidates) == 0 {
			continue
		}

		q := candidates[rng.Intn(len(candidates))]
		sessionUsed[q.ID] = struct{}{}
		used.Add(q.ID)
		assignments = append(assignments, TileAssignment{
			TileIndex: tile,
			Question:  shuffleOptions(q, rng),
		})
	}
	return assignments
}
