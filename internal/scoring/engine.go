package scoring

import "math"

// Config holds the scoring constants (defaults match production rules).
type Config struct {
	BaseCompletion     int           // awarded for any accepted run
	HeartPoints        int           // per heart remaining
	GridBonuses        map[int]int   // by grid size; unknown sizes score 0
	SpeedTiers         []SpeedTier   // ascending thresholds, first match wins
	StreakPointsPerDay int           // per consecutive play day
	MaxStreakBonus     int           // streak bonus cap
	MinSolveSeconds    int           // anti-cheat floor
}

// SpeedTier awards Bonus when the run finished within MaxSeconds.
type SpeedTier struct {
	MaxSeconds int
	Bonus      int
}

// DefaultConfig returns production defaults.
func DefaultConfig() Config {
	return Config{
		BaseCompletion:     100,
		HeartPoints:        15,
		GridBonuses:        map[int]int{3: 0, 4: 40, 5: 80},
		SpeedTiers:         []SpeedTier{{30, 80}, {60, 50}, {120, 25}},
		StreakPointsPerDay: 10,
		MaxStreakBonus:     50,
		MinSolveSeconds:    5,
	}
}

// RejectedSpeedBonus is the sentinel marking a run thrown out by the
// anti-cheat gate. The rest of such a breakdown is all zeros.
const RejectedSpeedBonus = -1

// Breakdown is a completed run's point composition plus the display-only
// percentage split. The percentages are rounded independently against the
// total and are not normalized to sum to 100.
type Breakdown struct {
	BaseCompletion int `json:"base_completion"`
	HeartsBonus    int `json:"hearts_bonus"`
	GridBonus      int `json:"grid_bonus"`
	SpeedBonus     int `json:"speed_bonus"`
	StreakBonus    int `json:"streak_bonus"`
	TotalScore     int `json:"total_score"`
	Accuracy       int `json:"accuracy"`
	Speed          int `json:"speed"`
	Difficulty     int `json:"difficulty"`
}

// Rejected reports whether the anti-cheat gate threw the run out.
func (b Breakdown) Rejected() bool {
	return b.SpeedBonus == RejectedSpeedBonus
}

// Engine computes server-side score breakdowns with configurable constants.
type Engine struct {
	cfg Config
}

// NewEngine creates a scoring engine with the provided config.
func NewEngine(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}

// CalculateScore converts a completed run into a point breakdown. Runs
// finishing under the anti-cheat floor come back all-zero with
// SpeedBonus = RejectedSpeedBonus: rejected, not merely low.
func (e *Engine) CalculateScore(heartsRemaining, gridSize, timeSeconds, streakDays int) Breakdown {
	if timeSeconds < e.cfg.MinSolveSeconds {
		return Breakdown{SpeedBonus: RejectedSpeedBonus}
	}

	hearts := heartsRemaining * e.cfg.HeartPoints
	grid := e.cfg.GridBonuses[gridSize]

	speed := 0
	for _, tier := range e.cfg.SpeedTiers {
		if timeSeconds <= tier.MaxSeconds {
			speed = tier.Bonus
			break
		}
	}

	streak := streakDays * e.cfg.StreakPointsPerDay
	if streak > e.cfg.MaxStreakBonus {
		streak = e.cfg.MaxStreakBonus
	}

	total := e.cfg.BaseCompletion + hearts + grid + speed + streak

	return Breakdown{
		BaseCompletion: e.cfg.BaseCompletion,
		HeartsBonus:    hearts,
		GridBonus:      grid,
		SpeedBonus:     speed,
		StreakBonus:    streak,
		TotalScore:     total,
		Accuracy:       percentOf(hearts, total),
		Speed:          percentOf(speed, total),
		Difficulty:     percentOf(grid+e.cfg.BaseCompletion, total),
	}
}

// percentOf rounds part/total to a whole percentage; negative or undefined
// results coerce to 0.
func percentOf(part, total int) int {
	if total == 0 {
		return 0
	}
	v := math.Round(float64(part) / float64(total) * 100)
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	return int(v)
}

// Validation is the outcome of the standalone submission check.
type Validation struct {
	Valid  bool   `json:"valid"`
	Reason string `json:"reason,omitempty"`
}

// ValidateScore re-checks a submission independently of CalculateScore.
// Both must agree on the minimum solve time.
func (e *Engine) ValidateScore(heartsRemaining, timeSeconds int) Validation {
	if heartsRemaining < 0 {
		return Validation{Reason: "puzzle not completed"}
	}
	if timeSeconds < e.cfg.MinSolveSeconds {
		return Validation{Reason: "suspicious completion time"}
	}
	return Validation{Valid: true}
}
