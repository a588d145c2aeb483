package labels

import (
	"context"
	"fmt"
	"math"
)

// State is the terminal state of one optimization.
type State int

const (
	// StateFound means a clash-free layout was found.
	StateFound State = iota
	// StateLoopLimit means the iteration ceiling was reached.
	StateLoopLimit
	// StateExhausted means every combination was tried without success.
	StateExhausted
	// StateCancelled means the context was done before a layout was found.
	StateCancelled
)

func (s State) String() string {
	switch s {
	case StateFound:
		return "found"
	case StateLoopLimit:
		return "loop_limit"
	case StateExhausted:
		return "exhausted"
	case StateCancelled:
		return "cancelled"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *State) UnmarshalText(text []byte) error {
	for st := StateFound; st <= StateCancelled; st++ {
		if st.String() == string(text) {
			*s = st
			return nil
		}
	}
	return fmt.Errorf("%w: state %q", ErrUnknownValue, text)
}

type outcome int

const (
	outcomeFound outcome = iota
	outcomeExhausted
	outcomeDeadEnd
	outcomeLoopLimit
	outcomeCancelled
)

// BestConfig is the least overlapping layout seen so far.
type BestConfig struct {
	Scale     float64
	FontSize  int
	Positions []Position
	Rows      []int
	Score     int
	Iteration int
}

// search runs one level of the depth-first search. enclosing holds the ids
// of labels owned by outer levels; this level only varies labels that clash
// and are not in it. Labels that start clashing because of this level's
// changes are handed to a nested level.
func (oc *OptimizationContext) search(ctx context.Context, enclosing map[int]bool, depth int) outcome {
	var space *Space
	mine := map[int]bool{}

	// A level that gives up hands its labels back in their seed state.
	deadEnd := func() outcome {
		if space != nil {
			oc.apply(space, space.Reset())
		}
		return outcomeDeadEnd
	}

	for {
		if ctx.Err() != nil {
			return outcomeCancelled
		}

		oc.iterations++
		total, clashing := oc.evaluate()
		if len(clashing) == 0 {
			return outcomeFound
		}
		oc.recordBest(total)
		if oc.iterations >= oc.settings.MaxIterations {
			return outcomeLoopLimit
		}

		candidates := without(clashing, enclosing)
		if len(candidates) == 0 {
			return deadEnd()
		}

		if space == nil {
			for _, id := range candidates {
				mine[id] = true
			}
			space = BuildSpace(oc.labels, candidates, oc.settings, oc.scale, depth == 0)
			oc.logger.Debug("experiment space", "depth", depth, "labels", candidates,
				"dimensions", len(space.Dimensions), "combinations", space.Combinations())
			if space.Empty() {
				return outcomeDeadEnd
			}
		}

		if newcomers := without(candidates, mine); len(newcomers) > 0 {
			res := oc.search(ctx, union(enclosing, mine), depth+1)
			if res == outcomeFound || res == outcomeLoopLimit || res == outcomeCancelled {
				return res
			}
			// The nested level gave up; try our next combination.
		}

		changed, ok := space.Advance()
		oc.apply(space, changed)
		if !ok {
			return outcomeExhausted
		}
		oc.increments++
	}
}

// evaluate places stale labels and runs the clash test on every label.
func (oc *OptimizationContext) evaluate() (int, []int) {
	for _, l := range oc.labels {
		if err := oc.calc.Place(l); err != nil {
			oc.logger.Warn("keeping previous label rect", "label", l.Text, "err", err)
		}
	}

	total := 0
	var clashing []int
	for i, l := range oc.labels {
		clash, area := oc.detector.Clash(oc.labels, i)
		l.ClashArea = area
		l.Clash = ClashClear
		if clash {
			l.Clash = ClashFound
			clashing = append(clashing, i)
		}
		total += area
	}
	return total, clashing
}

// apply pushes the current option of each changed dimension into the labels.
func (oc *OptimizationContext) apply(space *Space, changed []int) {
	for _, i := range changed {
		d := space.Dimensions[i]
		idx := space.Index(i)

		switch d.Axis {
		case AxisPosition:
			oc.labels[d.Label].SetPosition(d.Positions[idx])
		case AxisNumRows:
			oc.labels[d.Label].SetNumRows(d.Rows[idx])
		case AxisFontSize:
			oc.setScale(d.Scales[idx])
		}
	}
}

// setScale changes the global font scale. Every label is resized and its
// clash state becomes unknown.
func (oc *OptimizationContext) setScale(scale float64) {
	oc.scale = scale
	size := oc.scaledSize()
	for _, l := range oc.labels {
		l.SetFontSize(size)
		l.Clash = ClashUnknown
	}
}

func (oc *OptimizationContext) scaledSize() int {
	return max(int(math.Round(float64(oc.baseSize)*oc.scale)), 1)
}

// recordBest snapshots the current layout if it beats the best so far.
// Ties keep the earlier layout.
func (oc *OptimizationContext) recordBest(score int) {
	if oc.best != nil && score >= oc.best.Score {
		return
	}

	best := &BestConfig{
		Scale:     oc.scale,
		FontSize:  oc.scaledSize(),
		Positions: make([]Position, len(oc.labels)),
		Rows:      make([]int, len(oc.labels)),
		Score:     score,
		Iteration: oc.iterations,
	}
	for i, l := range oc.labels {
		best.Positions[i] = l.Position
		best.Rows[i] = l.NumRows
	}
	oc.best = best
}

// restoreBest re-materializes the best layout and re-runs the clash test.
// Without a best layout the current one is only re-tested.
func (oc *OptimizationContext) restoreBest() {
	if oc.best == nil {
		oc.evaluate()
		return
	}
	oc.setScale(oc.best.Scale)
	for i, l := range oc.labels {
		l.SetPosition(oc.best.Positions[i])
		l.SetNumRows(oc.best.Rows[i])
	}
	oc.evaluate()
}

// optimize runs the search from the top level and leaves the labels in the
// final layout: the clash-free one, or the best one seen.
func (oc *OptimizationContext) optimize(ctx context.Context) State {
	res := oc.search(ctx, map[int]bool{}, 0)

	var state State
	switch res {
	case outcomeFound:
		return StateFound
	case outcomeLoopLimit:
		state = StateLoopLimit
		oc.logger.Info("label layout hit the iteration limit, using best layout",
			"iterations", oc.iterations, "overlap", oc.best.Score)
	case outcomeCancelled:
		state = StateCancelled
		oc.logger.Info("label layout cancelled, using best layout", "iterations", oc.iterations)
	default:
		state = StateExhausted
		oc.logger.Debug("label layout search exhausted, using best layout", "iterations", oc.iterations)
	}

	oc.restoreBest()
	return state
}

func without(ids []int, exclude map[int]bool) []int {
	var out []int
	for _, id := range ids {
		if !exclude[id] {
			out = append(out, id)
		}
	}
	return out
}

func union(a, b map[int]bool) map[int]bool {
	out := make(map[int]bool, len(a)+len(b))
	for id := range a {
		out[id] = true
	}
	for id := range b {
		out[id] = true
	}
	return out
}
