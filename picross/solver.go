package picross

import (
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/sirupsen/logrus"
)

// Verdict is the terminal outcome of a solve.
type Verdict int

const (
	Solved Verdict = iota
	Dead
	StalledWithoutForce
)

func (v Verdict) String() string {
	switch v {
	case Solved:
		return "Solved"
	case Dead:
		return "Dead"
	case StalledWithoutForce:
		return "StalledWithoutForce"
	}
	return "?"
}

type state int

const (
	statePropagating state = iota
	stateStalled
	stateGuessing
	stateReverting
)

// Change is one cell flip, for incremental redraw.
type Change struct {
	Row   int
	Col   int
	State Cell
}

// Guess records one committed speculative placement.
type Guess struct {
	Line      LineID
	Placement int
}

type ProgressUpdate struct {
	CurrentAction string
	TotalMarked   int
	GridSize      int
}

// Options configures a Solver. Everything the engine needs arrives here;
// there is no package-level configuration.
type Options struct {
	Seed   uint64
	Force  bool // guess with backtracking when propagation stalls
	Logger *logrus.Logger
}

// Solver drives propagation rounds over a Board and falls back to
// weighted-random guessing when a round makes no progress.
type Solver struct {
	p     *Puzzle
	b     *Board
	rng   *rand.Rand
	log   *logrus.Logger
	force bool

	state      state
	checkpoint *Board // last fully-deterministic snapshot; at most one
	guessed    bool   // a guess has been committed since the checkpoint

	guesses []Guess
	changes []Change // cells flipped since the last round began

	Action   string
	Progress chan ProgressUpdate
	Watch    Stopwatch
}

// after this many distinct failed placements in one stall episode the engine
// gives up and reports Dead; redrawing an already-tried placement is free
const maxGuessDraws = 256

func NewSolver(p *Puzzle, opts Options) (*Solver, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	log := opts.Logger
	if log == nil {
		log = logrus.New()
		log.SetLevel(logrus.WarnLevel)
	}
	return &Solver{
		p:     p,
		b:     NewBoard(p.RowCount, p.ColCount),
		rng:   rand.New(rand.NewPCG(opts.Seed, opts.Seed)),
		log:   log,
		force: opts.Force,
		Watch: NewStopwatch(),
	}, nil
}

// Board exposes the current grid for rendering. Callers read it; only the
// solver writes it.
func (s *Solver) Board() *Board { return s.b }

// LastChanges lists the cells flipped since the last round began.
func (s *Solver) LastChanges() []Change { return s.changes }

// Guesses lists every committed guess, in order. Two solves with the same
// seed produce identical lists.
func (s *Solver) Guesses() []Guess { return s.guesses }

func (s *Solver) UpdateAction(a string) {
	s.Action = a
	s.SendProgress()
}

func (s *Solver) SendProgress() {
	if s.Progress == nil {
		return
	}
	s.Progress <- ProgressUpdate{s.Action, s.b.TotalMarked, s.b.Size()}
}

// Solve runs the full state machine to a terminal verdict. On Dead the
// returned error carries the offending line when a contradiction caused it.
func (s *Solver) Solve() (Verdict, error) {
	for {
		done, verdict, err := s.Step()
		if done {
			return verdict, err
		}
	}
}

// Step advances the solve by one action: one propagation round, or, once
// stalled with force enabled, one backtracking transition. done reports a
// terminal verdict; until then the verdict is meaningless.
func (s *Solver) Step() (done bool, verdict Verdict, err error) {
	switch s.state {
	case statePropagating:
		changed, solved, roundErr := s.SolveRound()
		if roundErr != nil {
			if s.guessed {
				s.log.WithField("cause", roundErr.Error()).Info("guess contradicted, reverting")
				s.state = stateReverting
				return false, 0, nil
			}
			return true, Dead, roundErr
		}
		if solved {
			return true, Solved, nil
		}
		if !changed {
			if !s.force {
				return true, StalledWithoutForce, nil
			}
			s.state = stateStalled
		}
		return false, 0, nil

	case stateStalled:
		if s.checkpoint == nil {
			s.checkpoint = s.b.Clone()
			s.log.WithField("step", s.b.Step).Info("stalled, checkpoint taken")
		}
		s.state = stateGuessing
		return false, 0, nil

	case stateGuessing:
		ok, guessErr := s.makeGuess()
		if guessErr != nil {
			if s.guessed {
				s.state = stateReverting
				return false, 0, nil
			}
			return true, Dead, guessErr
		}
		if !ok {
			return true, Dead, fmt.Errorf("no untried legal placement left to guess")
		}
		s.state = statePropagating
		return false, 0, nil

	default: // stateReverting
		s.b = s.checkpoint.Clone()
		s.guessed = false
		s.log.WithField("step", s.b.Step).Info("reverted to checkpoint")
		s.state = statePropagating
		return false, 0, nil
	}
}

// SolveRound runs one propagation round: every dirty unsolved row, then
// every dirty unsolved column. Changed cells dirty the crossing lines so the
// opposite axis picks them up, possibly within the same round.
func (s *Solver) SolveRound() (changed bool, solved bool, err error) {
	s.Watch.Start("round")
	defer s.Watch.Stop("round")
	s.b.Step++
	s.changes = s.changes[:0]

	buf := make([]Cell, max(s.b.RowCount, s.b.ColCount))
	for _, axis := range []Axis{AxisRow, AxisCol} {
		n := s.b.RowCount
		if axis == AxisCol {
			n = s.b.ColCount
		}
		for i := 0; i < n; i++ {
			id := LineID{axis, i}
			st := s.b.Status(id)
			if st.Solved || !st.Dirty {
				continue
			}
			line := buf[:s.b.LineLen(id)]
			s.b.CopyLine(id, line)
			res, lineErr := s.SolveLine(line, s.p.Hints(id), id, NoForce)
			st.Dirty = false
			if lineErr != nil {
				return false, false, lineErr
			}
			if res.Placements > 0 {
				st.Placements = res.Placements
			}
			if len(res.Changed) > 0 {
				changed = true
				s.b.WriteLine(id, line)
				s.recordChanges(id, line, res.Changed)
				s.UpdateAction(id.String())
			}
			if res.Done || !slices.Contains(line, Unknown) {
				st.Solved = true
			}
		}
	}

	s.log.WithFields(logrus.Fields{
		"step":    s.b.Step,
		"flipped": len(s.changes),
	}).Debug("round complete")
	return changed, s.allSolved(), nil
}

// recordChanges appends the flips to the round change list and dirties the
// line crossing each changed cell.
func (s *Solver) recordChanges(id LineID, line []Cell, idxs []int) {
	for _, x := range idxs {
		if id.Axis == AxisRow {
			s.changes = append(s.changes, Change{id.Index, x, line[x]})
			s.b.ColStat[x].Dirty = true
		} else {
			s.changes = append(s.changes, Change{x, id.Index, line[x]})
			s.b.RowStat[x].Dirty = true
		}
	}
}

func (s *Solver) allSolved() bool {
	for i := range s.b.RowStat {
		if !s.b.RowStat[i].Solved {
			return false
		}
	}
	for i := range s.b.ColStat {
		if !s.b.ColStat[i].Solved {
			return false
		}
	}
	return true
}

// makeGuess commits one speculative placement on a weighted-random unsolved
// line, biased toward lines with the fewest alternatives. Draws whose forced
// placement breaks a crossing line are undone and redrawn; ok is false once
// every candidate placement has been tried or the draw cap is hit.
func (s *Solver) makeGuess() (ok bool, err error) {
	s.Watch.Start("guess")
	defer s.Watch.Stop("guess")
	s.UpdateAction("Guessing")

	type candidate struct {
		id    LineID
		count uint32
	}
	var cands []candidate
	var maxCount uint32
	for _, axis := range []Axis{AxisRow, AxisCol} {
		n := s.b.RowCount
		if axis == AxisCol {
			n = s.b.ColCount
		}
		for i := 0; i < n; i++ {
			id := LineID{axis, i}
			st := s.b.Status(id)
			if st.Solved {
				continue
			}
			cands = append(cands, candidate{id, st.Placements})
			if st.Placements > maxCount {
				maxCount = st.Placements
			}
		}
	}
	if len(cands) == 0 {
		return false, nil
	}

	tried := make(map[Guess]bool)
	line := make([]Cell, max(s.b.RowCount, s.b.ColCount))
	cross := make([]Cell, max(s.b.RowCount, s.b.ColCount))
	for draws := 0; draws < maxGuessDraws && len(cands) > 0; {
		// weight lines closest to forced the heaviest; when every line ties
		// the weights are all zero and the draw is uniform
		total := 0
		for _, c := range cands {
			total += int(maxCount - c.count)
		}
		pickIdx := 0
		if total == 0 {
			pickIdx = s.rng.IntN(len(cands))
		} else {
			draw := s.rng.IntN(total)
			for i, c := range cands {
				w := int(maxCount - c.count)
				if draw < w {
					pickIdx = i
					break
				}
				draw -= w
			}
		}
		pick := cands[pickIdx]

		// the cached count may be stale; recount on a scratch copy
		cur := line[:s.b.LineLen(pick.id)]
		s.b.CopyLine(pick.id, cur)
		scratch := slices.Clone(cur)
		res, lineErr := s.SolveLine(scratch, s.p.Hints(pick.id), pick.id, NoForce)
		if lineErr != nil {
			return false, lineErr
		}
		if res.Placements == 0 {
			cands = slices.Delete(cands, pickIdx, pickIdx+1)
			continue
		}

		// walk forward from a random start to this line's first untried
		// placement; a fully tried line leaves the episode
		n := int(res.Placements)
		g := Guess{pick.id, -1}
		for i, start := 0, s.rng.IntN(n); i < n; i++ {
			if cand := (Guess{pick.id, (start + i) % n}); !tried[cand] {
				g = cand
				break
			}
		}
		if g.Placement < 0 {
			cands = slices.Delete(cands, pickIdx, pickIdx+1)
			continue
		}
		tried[g] = true
		draws++

		undo := s.b.Clone()
		forcedLine := slices.Clone(cur)
		fres, lineErr := s.SolveLine(forcedLine, s.p.Hints(pick.id), pick.id, g.Placement)
		if lineErr != nil {
			return false, lineErr
		}
		s.b.WriteLine(pick.id, forcedLine)

		legal := true
		for _, x := range fres.Changed {
			orth := LineID{AxisCol, x}
			if pick.id.Axis == AxisCol {
				orth = LineID{AxisRow, x}
			}
			c := cross[:s.b.LineLen(orth)]
			s.b.CopyLine(orth, c)
			if !IsLegal(c, s.p.Hints(orth)) {
				legal = false
				break
			}
		}
		if !legal {
			s.b = undo
			continue
		}

		st := s.b.Status(pick.id)
		st.Solved = true
		st.Dirty = false
		s.recordChanges(pick.id, forcedLine, fres.Changed)
		s.guessed = true
		s.guesses = append(s.guesses, g)
		s.log.WithFields(logrus.Fields{
			"line":      g.Line.String(),
			"placement": g.Placement,
			"of":        res.Placements,
		}).Info("guess committed")
		s.SendProgress()
		return true, nil
	}
	return false, nil
}

// CheckBlankLines audits the lines whose hint list is empty, verifying that
// no Filled cell ended up in them. Lines that do have hints are not audited
// here.
func (s *Solver) CheckBlankLines() error {
	buf := make([]Cell, max(s.b.RowCount, s.b.ColCount))
	for _, axis := range []Axis{AxisRow, AxisCol} {
		n := s.b.RowCount
		if axis == AxisCol {
			n = s.b.ColCount
		}
		for i := 0; i < n; i++ {
			id := LineID{axis, i}
			hints := s.p.Hints(id)
			if len(hints) != 0 {
				continue
			}
			line := buf[:s.b.LineLen(id)]
			s.b.CopyLine(id, line)
			if !IsLegal(line, hints) {
				return &Contradiction{Line: id, Hints: hints, Reason: "empty-hint line contains a filled cell"}
			}
		}
	}
	return nil
}
