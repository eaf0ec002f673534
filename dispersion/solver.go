package dispersion

import (
	"context"
	"fmt"
	"log/slog"
	"math"
)

// point is a candidate of the search triple; buf indexes the scratch buffer
// holding its scale vector.
type point struct {
	c   float64
	val float64
	buf int
}

// solver holds the mutable search state of one worker. The triple fields
// stay readable after a failure for CurveError context.
type solver struct {
	ev   Evaluator
	opts *Options
	ctx  context.Context
	log  *slog.Logger
	sc   *scratch

	freq, omega   float64
	bot, mid, top point
	evals, passes int
}

// reset prepares the solver for frequency f (angular frequency omega).
func (s *solver) reset(f, omega float64) {
	s.freq, s.omega = f, omega
	s.bot, s.mid, s.top = point{}, point{}, point{}
	s.evals, s.passes = 0, 0
}

// eval fills p.val and the scale buffer behind p.buf.
func (s *solver) eval(p *point) error {
	if err := s.ctx.Err(); err != nil {
		return err
	}
	v, err := s.ev.Evaluate(s.omega, p.c, s.sc.buf(p.buf))
	s.evals++
	if err != nil {
		return fmt.Errorf("evaluate c=%g: %w", p.c, err)
	}
	if !finite(v) {
		return fmt.Errorf("c=%g value=%g: %w", p.c, v, ErrNonFiniteValue)
	}
	p.val = v

	return nil
}

// solve runs bracketing then refinement for frequency f.
func (s *solver) solve(f, omega float64) (Solution, error) {
	s.reset(f, omega)
	sol := Solution{Frequency: f, Omega: s.omega}

	hit, err := s.bracket()
	if err != nil {
		return sol, err
	}
	if hit {
		sol.Velocity, sol.ExactHit = s.top.c, true
		sol.Bracket = [2]float64{s.top.c, s.top.c}
		sol.Evaluations = s.evals
		return sol, nil
	}
	sol.Bracket = [2]float64{s.bot.c, s.top.c}

	v, exact, err := s.refine()
	if err != nil {
		return sol, err
	}
	sol.Velocity, sol.ExactHit = v, exact
	sol.Evaluations, sol.Iterations = s.evals, s.passes

	return sol, nil
}

// bracket steps top = bot + Step upward from MinVelocity until the values of
// bot and top differ in sign. It reports hit when an evaluation is exactly
// zero; the root is then in s.top.
//
// Complexity: O(root/Step) evaluations.
func (s *solver) bracket() (bool, error) {
	cfg := &s.opts.Config
	s.bot = point{c: cfg.MinVelocity, buf: 0}
	if err := s.eval(&s.bot); err != nil {
		return false, err
	}
	if s.bot.val == 0 {
		s.top = s.bot
		return true, nil
	}

	s.top = point{buf: 1}
	for step := 1; ; step++ {
		if cfg.MaxSteps > 0 && step > cfg.MaxSteps {
			return false, fmt.Errorf("%w: %d steps up to c=%g", ErrNoBracket, cfg.MaxSteps, s.bot.c)
		}
		s.top.c = s.bot.c + cfg.Step
		if err := s.eval(&s.top); err != nil {
			return false, err
		}
		s.opts.OnStep(StepEvent{
			Frequency: s.freq, Step: step,
			Bot: s.bot.c, Top: s.top.c,
			BotValue: s.bot.val, TopValue: s.top.val,
		})

		if s.top.val == 0 {
			s.log.Debug("exact zero while bracketing", "freq", s.freq, "c", s.top.c)
			return true, nil
		}
		if (s.bot.val < 0) != (s.top.val < 0) {
			s.log.Debug("bracket found", "freq", s.freq, "bot", s.bot.c, "top", s.top.c, "steps", step)
			return false, nil
		}
		// carry top forward; its old bot buffer is overwritten next step
		s.bot, s.top = s.top, s.bot
	}
}

// refine runs up to Iterations quadratic passes on the bracket in s.bot,
// s.top and returns the final mid velocity. exact reports that the returned
// velocity evaluated to exactly zero.
//
// Every pass normalises mid and top into the bot scale frame, fits the
// quadratic, and replaces the triple end on the far side of the fitted root
// with the old mid. The freed buffer becomes the new mid. The last pass does
// not evaluate its new mid.
func (s *solver) refine() (float64, bool, error) {
	cfg := &s.opts.Config
	s.mid = point{c: (s.bot.c + s.top.c) / 2, buf: free(s.bot.buf, s.top.buf)}
	if err := s.eval(&s.mid); err != nil {
		return 0, false, err
	}

	for pass := 1; pass <= cfg.Iterations; pass++ {
		if s.mid.val == 0 {
			return s.mid.c, true, nil
		}
		s.passes = pass

		// Stage 1: bring mid and top into the bot frame.
		botScale := s.sc.buf(s.bot.buf)
		vb := s.bot.val
		vm := s.mid.val * RelativeScale(s.sc.buf(s.mid.buf), botScale)
		vt := s.top.val * RelativeScale(s.sc.buf(s.top.buf), botScale)

		// Stage 2: fit and select.
		q := fitQuadratic(s.bot.c, s.mid.c, s.top.c, vb, vm, vt)
		next, err := q.root(s.bot.c, s.top.c)
		if err != nil {
			return 0, false, err
		}
		s.opts.OnRefine(RefineEvent{
			Frequency: s.freq, Pass: pass,
			Bot: s.bot.c, Mid: s.mid.c, Top: s.top.c,
			BotValue: vb, MidValue: vm, TopValue: vt,
			Next: next,
		})
		s.log.Debug("refinement pass", "freq", s.freq, "pass", pass, "mid", s.mid.c, "next", next)

		// Stage 3: stopping rules.
		switch {
		case next == s.mid.c:
			if cfg.StopOnFixedPoint {
				return next, false, nil
			}
			continue // triple unchanged; later passes refit the same points
		case next == s.bot.c || next == s.top.c:
			return next, false, nil
		case cfg.Tolerance > 0 && math.Abs(next-s.mid.c) <= cfg.Tolerance*math.Abs(next):
			return next, false, nil
		}

		// Stage 4: rotate roles; the discarded end's buffer hosts the new mid.
		if next < s.mid.c {
			s.top, s.mid = s.mid, point{c: next, buf: s.top.buf}
		} else {
			s.bot, s.mid = s.mid, point{c: next, buf: s.bot.buf}
		}

		if pass == cfg.Iterations {
			break
		}
		if err := s.eval(&s.mid); err != nil {
			return 0, false, err
		}
	}

	return s.mid.c, false, nil
}
