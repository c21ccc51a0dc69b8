package tendency

import (
	"fmt"
	"log/slog"

	"github.com/katalvlaran/wavechain/solver"
)

// Tendency is one segment of a waveform.
//
// Timing and boundary queries are pure reads of resolved state; they never
// trigger resolution and do not require Generate to have been called.
type Tendency interface {
	Kind() Kind
	Line() int

	Start() float64
	Duration() float64
	End() float64

	StartValue() float64
	EndValue() float64
	StartDerivative() float64
	EndDerivative() float64

	// Generate returns the tendency's natural sample grid and its values.
	Generate() (times, values []float64)
	// Values evaluates the value law at arbitrary times.
	Values(times []float64) []float64
	// Derivatives evaluates the analytic derivative at arbitrary times.
	Derivatives(times []float64) []float64

	Prev() Tendency
	Next() Tendency
	SetPrevious(prev Tendency)
	SetNext(next Tendency)

	TimeError() error
	ValueError() error
	// UnknownFields lists spec fields the variant does not understand.
	UnknownFields() []string

	chain() *Base
}

// valueLaw is implemented by every variant; Base calls it whenever timing or
// a neighbour changes.
type valueLaw interface {
	// resolveValues recomputes the variant's parameters from user input,
	// timing and neighbours, returning a value error or nil.
	resolveValues() error
	// boundary reports start/end value and derivative for the resolved state.
	boundary() boundary
	// startLinks reports whether the start value and the start derivative
	// were derived from the previous tendency.
	startLinks() (value, derivative bool)
}

type boundary struct {
	startValue, endValue float64
	startDeriv, endDeriv float64
}

var timeSystem = solver.Sum3(1, 1, -1)

// Base carries the timing chain shared by all variants. Variants embed it and
// register themselves through init.
type Base struct {
	kind Kind
	line int

	userStart, userDuration, userEnd *float64
	fixedTimes                       bool
	resolved                         bool

	start, duration, end float64
	bounds               boundary

	prev, next Tendency

	timeErr, valueErr error
	unknown           []string

	law valueLaw
	env Env
}

// newBase reads the timing fields off r.
func newBase(kind Kind, r *fieldReader, env Env) Base {
	return Base{
		kind:         kind,
		line:         r.spec.Line,
		userStart:    r.float("start"),
		userDuration: r.float("duration"),
		userEnd:      r.float("end"),
		env:          env.normalized(),
	}
}

// init wires the variant and resolves it in isolation.
func (b *Base) init(law valueLaw, r *fieldReader) {
	b.law = law
	b.unknown = r.unknown()
	b.calcTimes()
	b.valueErr = law.resolveValues()
	b.bounds = law.boundary()
}

func (b *Base) chain() *Base { return b }

// Kind returns the variant.
func (b *Base) Kind() Kind { return b.kind }

// Line returns the source line of the spec.
func (b *Base) Line() int { return b.line }

// Start returns the resolved start time.
func (b *Base) Start() float64 { return b.start }

// Duration returns the resolved duration.
func (b *Base) Duration() float64 { return b.duration }

// End returns the resolved end time.
func (b *Base) End() float64 { return b.end }

// StartValue returns the value at Start.
func (b *Base) StartValue() float64 { return b.bounds.startValue }

// EndValue returns the value at End.
func (b *Base) EndValue() float64 { return b.bounds.endValue }

// StartDerivative returns the derivative at Start.
func (b *Base) StartDerivative() float64 { return b.bounds.startDeriv }

// EndDerivative returns the derivative at End.
func (b *Base) EndDerivative() float64 { return b.bounds.endDeriv }

// Prev returns the previous tendency or nil.
func (b *Base) Prev() Tendency { return b.prev }

// Next returns the next tendency or nil.
func (b *Base) Next() Tendency { return b.next }

// TimeError returns the recorded time error, if any.
func (b *Base) TimeError() error { return b.timeErr }

// ValueError returns the recorded value error, if any.
func (b *Base) ValueError() error { return b.valueErr }

// UnknownFields lists spec fields that were not consumed.
func (b *Base) UnknownFields() []string { return b.unknown }

// SetPrevious links prev and re-resolves timing and values.
func (b *Base) SetPrevious(prev Tendency) {
	b.prev = prev
	b.refreshTimes(0)
}

// SetNext links next and re-resolves values.
func (b *Base) SetNext(next Tendency) {
	b.next = next
	b.refreshValues(0)
}

// calcTimes resolves (start, duration, end) and reports whether it changed.
func (b *Base) calcTimes() bool {
	if b.fixedTimes {
		changed := !b.resolved
		b.resolved = true
		return changed
	}

	inputs := []*float64{b.userStart, b.userDuration, b.userEnd}
	known := countKnown(inputs)
	if known < 2 && inputs[0] == nil {
		inputs[0] = solver.Float(b.prevEnd())
		known++
	}
	if known < 2 && inputs[1] == nil {
		inputs[1] = solver.Float(unitDuration)
	}

	b.timeErr = nil
	x, err := solver.Solve(inputs, timeSystem, solver.WithTolerance(b.env.Tolerance))
	if err != nil {
		b.timeErr = fmt.Errorf("%w: %v", ErrTimeInconsistent, err)
		s := b.prevEnd()
		x = []float64{s, unitDuration, s + unitDuration}
	} else if x[1] <= 0 {
		b.timeErr = fmt.Errorf("%w: start %g, end %g", ErrNonPositiveDuration, x[0], x[2])
	}

	changed := !b.resolved || x[0] != b.start || x[1] != b.duration || x[2] != b.end
	b.start, b.duration, b.end = x[0], x[1], x[2]
	b.resolved = true

	return changed
}

// refreshTimes re-resolves timing, then values; a timing change moves on to
// the successor, whose default start may follow our end.
func (b *Base) refreshTimes(depth int) {
	changed := b.calcTimes()
	b.refreshValues(depth)
	if !changed || b.next == nil {
		return
	}
	if b.budgetExceeded(depth) {
		return
	}
	b.next.chain().refreshTimes(depth + 1)
}

// refreshValues re-resolves values and notifies both neighbours when the
// boundary changed.
func (b *Base) refreshValues(depth int) {
	before := b.bounds
	b.valueErr = b.law.resolveValues()
	b.bounds = b.law.boundary()
	if b.bounds == before || b.budgetExceeded(depth) {
		return
	}
	if b.prev != nil {
		b.prev.chain().refreshValues(depth + 1)
	}
	if b.next != nil {
		b.next.chain().refreshValues(depth + 1)
	}
}

func (b *Base) budgetExceeded(depth int) bool {
	if depth < maxCascadeDepth {
		return false
	}
	b.env.Logger.Warn("tendency: change cascade truncated",
		slog.String("kind", b.kind.String()),
		slog.Int("line", b.line),
		slog.Int("depth", depth))

	return true
}

func (b *Base) prevEnd() float64 {
	if b.prev == nil {
		return 0
	}

	return b.prev.End()
}

// inheritedLevel is the default level for constant-like values: the previous
// end value, else the next start value when it does not itself follow us,
// else 0.
func (b *Base) inheritedLevel() float64 {
	if b.prev != nil {
		return b.prev.EndValue()
	}

	return b.nextStartValue(0)
}

// nextStartValue returns the successor's start value, or fallback when there
// is no successor or its start value was derived from us.
func (b *Base) nextStartValue(fallback float64) float64 {
	if b.next == nil {
		return fallback
	}
	if fromPrev, _ := b.next.chain().law.startLinks(); fromPrev {
		return fallback
	}

	return b.next.StartValue()
}

// nextStartDerivative mirrors nextStartValue for derivatives.
func (b *Base) nextStartDerivative(fallback float64) float64 {
	if b.next == nil {
		return fallback
	}
	if _, fromPrev := b.next.chain().law.startLinks(); fromPrev {
		return fallback
	}

	return b.next.StartDerivative()
}

func (b *Base) prevEndValue(fallback float64) float64 {
	if b.prev == nil {
		return fallback
	}

	return b.prev.EndValue()
}

func (b *Base) prevEndDerivative(fallback float64) float64 {
	if b.prev == nil {
		return fallback
	}

	return b.prev.EndDerivative()
}

func countKnown(xs []*float64) int {
	n := 0
	for _, x := range xs {
		if x != nil {
			n++
		}
	}

	return n
}
