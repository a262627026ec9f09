package drawer

import (
	"strings"
	"time"

	"github.com/vdobler/gridplot"
)

// An Animator decides when the elements drawn by one draw step appear.
type Animator interface {
	// Timing is the total time n elements need.
	Timing(n int) time.Duration

	// ElementDelay is the start of element i of n relative to the start
	// of the step.
	ElementDelay(i, n int) time.Duration
}

// Null applies all attributes at once.
type Null struct{}

func (Null) Timing(n int) time.Duration           { return 0 }
func (Null) ElementDelay(i, n int) time.Duration { return 0 }

// Defaults of a Base animator.
const (
	DefaultDuration          = 300 * time.Millisecond
	DefaultDelay             = 0
	DefaultMaxIterativeDelay = 15 * time.Millisecond
	DefaultMaxTotalDuration  = 600 * time.Millisecond
	DefaultEasing            = "exp-out"
)

// Base staggers the elements: element i starts
//
//	delay + i*iterativeDelay
//
// after the step where the iterative delay is
//
//	min(maxIterativeDelay, max(maxTotalDuration-duration, 0)/max(n-1, 1))
//
// and then animates for duration. MaxTotalDuration bounds the stagger,
// not the total time.
type Base struct {
	duration          time.Duration
	delay             time.Duration
	maxIterativeDelay time.Duration
	maxTotalDuration  time.Duration
	easing            string
}

// NewBase returns a Base animator with default settings.
func NewBase() *Base {
	return &Base{
		duration:          DefaultDuration,
		delay:             DefaultDelay,
		maxIterativeDelay: DefaultMaxIterativeDelay,
		maxTotalDuration:  DefaultMaxTotalDuration,
		easing:            DefaultEasing,
	}
}

func nonNegative(what string, d time.Duration) error {
	if d < 0 {
		return gridplot.Invalidf("drawer: %s %v must not be negative", what, d)
	}
	return nil
}

// Duration returns the animation time of one element.
func (b *Base) Duration() time.Duration { return b.duration }

// SetDuration sets the animation time of one element.
func (b *Base) SetDuration(d time.Duration) error {
	if err := nonNegative("duration", d); err != nil {
		return err
	}
	b.duration = d
	return nil
}

// Delay returns the start delay of the first element.
func (b *Base) Delay() time.Duration { return b.delay }

// SetDelay sets the start delay of the first element.
func (b *Base) SetDelay(d time.Duration) error {
	if err := nonNegative("delay", d); err != nil {
		return err
	}
	b.delay = d
	return nil
}

// MaxIterativeDelay returns the upper bound of the delay between the
// starts of two consecutive elements.
func (b *Base) MaxIterativeDelay() time.Duration { return b.maxIterativeDelay }

// SetMaxIterativeDelay sets the upper bound of the delay between the
// starts of two consecutive elements.
func (b *Base) SetMaxIterativeDelay(d time.Duration) error {
	if err := nonNegative("max iterative delay", d); err != nil {
		return err
	}
	b.maxIterativeDelay = d
	return nil
}

// MaxTotalDuration returns the time budget of the stagger.
func (b *Base) MaxTotalDuration() time.Duration { return b.maxTotalDuration }

// SetMaxTotalDuration sets the time budget of the stagger.
func (b *Base) SetMaxTotalDuration(d time.Duration) error {
	if err := nonNegative("max total duration", d); err != nil {
		return err
	}
	b.maxTotalDuration = d
	return nil
}

// Easing returns the name of the easing curve.
func (b *Base) Easing() string { return b.easing }

var easings = []string{"linear", "poly", "quad", "cubic", "sin", "exp", "circle", "elastic", "back", "bounce"}

// SetEasing sets the easing curve by name, e.g. "cubic" or "exp-out".
// The curve is recorded for renderers; timing does not depend on it.
func (b *Base) SetEasing(name string) error {
	curve := name
	for _, mode := range []string{"-in-out", "-out-in", "-in", "-out"} {
		if strings.HasSuffix(curve, mode) {
			curve = strings.TrimSuffix(curve, mode)
			break
		}
	}
	for _, e := range easings {
		if e == curve {
			b.easing = name
			return nil
		}
	}
	return gridplot.Invalidf("drawer: unknown easing %q", name)
}

// IterativeDelay returns the delay between the starts of two consecutive
// elements of n.
func (b *Base) IterativeDelay(n int) time.Duration {
	budget := max(b.maxTotalDuration-b.duration, 0)
	return min(b.maxIterativeDelay, budget/time.Duration(max(n-1, 1)))
}

// Timing implements Animator.
func (b *Base) Timing(n int) time.Duration {
	return time.Duration(n)*b.IterativeDelay(n) + b.delay + b.duration
}

// ElementDelay implements Animator.
func (b *Base) ElementDelay(i, n int) time.Duration {
	return b.delay + time.Duration(i)*b.IterativeDelay(n)
}
