package puzzle

import (
	"fmt"
	"hash/fnv"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kurobon/gitquest/internal/engine"
	"github.com/kurobon/gitquest/internal/graph"
	"github.com/kurobon/gitquest/internal/solver"
)

// DefaultMaxAttempts bounds the placement/verify loop before generation is
// declared a fatal failure for the day.
const DefaultMaxAttempts = 50

// GenerationError is the fatal outcome of a generation run: every placement
// attempt was rejected or unsolvable. It must be surfaced operationally,
// never papered over with a default puzzle.
type GenerationError struct {
	Seed     string
	Tier     string
	Attempts int
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("puzzle generation failed for seed %q (tier %s) after %d attempts", e.Seed, e.Tier, e.Attempts)
}

// Generator produces solver-verified daily puzzles.
type Generator struct {
	Tiers       []Tier
	MaxAttempts int
	Logger      *zap.Logger
}

// NewGenerator wires a generator over the given tiers.
func NewGenerator(tiers []Tier, logger *zap.Logger) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{Tiers: tiers, MaxAttempts: DefaultMaxAttempts, Logger: logger}
}

// GenerateDaily produces the puzzle for a calendar date. The seed is derived
// from the date alone, so regenerating the same day yields the same puzzle.
func (g *Generator) GenerateDaily(date time.Time, tierName string) (*Puzzle, error) {
	day := date.Format("2006-01-02")
	p, err := g.generate(day, tierName)
	if err != nil {
		return nil, err
	}
	p.ID = "daily-" + day
	p.Date = day
	return p, nil
}

// GenerateArchive produces a puzzle from an arbitrary seed identifier, with
// a fresh unique id and no date attached.
func (g *Generator) GenerateArchive(seed, tierName string) (*Puzzle, error) {
	p, err := g.generate(seed, tierName)
	if err != nil {
		return nil, err
	}
	p.ID = uuid.NewString()
	return p, nil
}

// generate runs the placement + solver-verify loop: place targets from the
// seeded source, solve, accept only when a solution exists and its par falls
// inside the tier's band; otherwise advance the seed by the attempt counter
// and retry.
func (g *Generator) generate(seed, tierName string) (*Puzzle, error) {
	tier, ok := FindTier(g.Tiers, tierName)
	if !ok {
		return nil, fmt.Errorf("unknown tier %q", tierName)
	}
	maxAttempts := g.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}

	if capacity := len(tier.Branches) * (tier.MaxDepth - tier.MinDepth + 1); tier.Files > capacity {
		return nil, fmt.Errorf("tier %s: %d files do not fit %d distinct positions", tier.Name, tier.Files, capacity)
	}

	trunk := tier.Branches[0]
	base := seedValue(seed)

	for attempt := 0; attempt < maxAttempts; attempt++ {
		rng := rand.New(rand.NewSource(base + int64(attempt)))
		targets := g.placeTargets(rng, tier, trunk)

		initial := graph.New(trunk)
		state := engine.NewGameState(initial, targets, trunk, tier.Branches, tier.Constraints)

		sol, solvable := solver.Solve(state)
		if !solvable {
			g.Logger.Debug("candidate unsolvable",
				zap.String("seed", seed),
				zap.Int("attempt", attempt))
			continue
		}
		if sol.Par < tier.ParMin || sol.Par > tier.ParMax {
			g.Logger.Debug("candidate outside par band",
				zap.String("seed", seed),
				zap.Int("attempt", attempt),
				zap.Int("par", sol.Par))
			continue
		}

		g.Logger.Info("puzzle accepted",
			zap.String("seed", seed),
			zap.String("tier", tier.Name),
			zap.Int("attempt", attempt),
			zap.Int("par", sol.Par))

		return &Puzzle{
			Tier:         tier.Name,
			TrunkBranch:  trunk,
			BranchNames:  append([]string(nil), tier.Branches...),
			InitialGraph: initial.Serialize(),
			FileTargets:  targets,
			Constraints:  tier.Constraints,
			ParScore:     sol.Par,
			Solution:     sol.Commands,
		}, nil
	}

	return nil, &GenerationError{Seed: seed, Tier: tier.Name, Attempts: maxAttempts}
}

// placeTargets draws distinct (branch, depth) coordinates from the tier's
// range. At least one target always lands off-trunk so a merge or rebase is
// required to win.
func (g *Generator) placeTargets(rng *rand.Rand, tier Tier, trunk string) []engine.FileTarget {
	taken := make(map[string]bool)
	var targets []engine.FileTarget
	for len(targets) < tier.Files {
		branch := tier.Branches[rng.Intn(len(tier.Branches))]
		if len(targets) == tier.Files-1 && allOnTrunk(targets, trunk) {
			branch = tier.Branches[1+rng.Intn(len(tier.Branches)-1)]
		}
		depth := tier.MinDepth + rng.Intn(tier.MaxDepth-tier.MinDepth+1)
		key := fmt.Sprintf("%s@%d", branch, depth)
		if taken[key] {
			continue
		}
		taken[key] = true
		n := len(targets)
		targets = append(targets, engine.FileTarget{
			ID:     fmt.Sprintf("f%d", n),
			Name:   fmt.Sprintf("file-%d.txt", n),
			Branch: branch,
			Depth:  depth,
		})
	}
	return targets
}

func allOnTrunk(targets []engine.FileTarget, trunk string) bool {
	for _, t := range targets {
		if t.Branch != trunk {
			return false
		}
	}
	return true
}

func seedValue(seed string) int64 {
	h := fnv.New64a()
	h.Write([]byte(seed))
	return int64(h.Sum64())
}
