package scicalc

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// HistoryLimit is the number of evaluations an Engine remembers.
const HistoryLimit = 50

// HistoryEntry is one successful evaluation.
type HistoryEntry struct {
	Input  string
	Result float64
}

// Engine is a calculator session: the angle mode, display format, last
// answer, memory variables, accumulator, and history. Evaluations read the
// session and successful ones update it. It is not safe to use an Engine
// concurrently; concurrent sessions each need their own.
type Engine struct {
	id      string
	angle   AngleMode
	format  DisplayFormat
	ans     float64
	mem     Memory
	acc     float64
	history []HistoryEntry
	// second is the companion output of Rec or Pol in the last evaluation.
	second    float64
	hasSecond bool

	log     *slog.Logger
	metrics MetricsRecorder
	tracer  trace.Tracer
}

// Option is an option used when creating an engine.
type Option interface {
	engineOption()
}

type (
	angleopt  AngleMode
	formatopt DisplayFormat
	varopt    struct {
		v Var
		x float64
	}
	loggeropt  struct{ l *slog.Logger }
	metricsopt struct{ m MetricsRecorder }
	traceropt  struct{ t trace.Tracer }
)

func (angleopt) engineOption()   {}
func (formatopt) engineOption()  {}
func (varopt) engineOption()     {}
func (loggeropt) engineOption()  {}
func (metricsopt) engineOption() {}
func (traceropt) engineOption()  {}

// WithAngle sets the initial angle mode. The default is Degrees.
func WithAngle(m AngleMode) Option {
	return angleopt(m)
}

// WithFormat sets the initial display format. The default is Normal. A fixed
// precision is clamped as by Fixed.
func WithFormat(f DisplayFormat) Option {
	return formatopt(f)
}

// SetVar sets the initial value of a memory variable.
func SetVar(v Var, x float64) Option {
	return varopt{v, x}
}

// WithLogger sets the logger. By default, nothing is logged.
func WithLogger(l *slog.Logger) Option {
	return loggeropt{l}
}

// WithMetrics sets the metrics recorder. The default is NoopMetrics.
func WithMetrics(m MetricsRecorder) Option {
	return metricsopt{m}
}

// WithTracer sets the tracer used to create a span for each evaluation. By
// default, spans are not recorded.
func WithTracer(t trace.Tracer) Option {
	return traceropt{t}
}

// New creates an engine and applies options to it in order.
func New(opts ...Option) *Engine {
	e := Engine{
		id:      uuid.New().String(),
		metrics: NoopMetrics{},
		tracer:  noop.NewTracerProvider().Tracer("scicalc"),
	}
	log := slog.New(slog.DiscardHandler)
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		switch opt := opt.(type) {
		case angleopt:
			e.angle = AngleMode(opt)
		case formatopt:
			e.format = DisplayFormat(opt).normalized()
		case varopt:
			e.mem.Set(opt.v, opt.x)
		case loggeropt:
			if opt.l != nil {
				log = opt.l
			}
		case metricsopt:
			if opt.m != nil {
				e.metrics = opt.m
			}
		case traceropt:
			if opt.t != nil {
				e.tracer = opt.t
			}
		default:
			panic("scicalc: unknown option type")
		}
	}
	e.log = log.With(slog.String("session_id", e.id))
	return &e
}

// ID returns the session ID, which is attached to log records and spans.
func (e *Engine) ID() string {
	return e.id
}

// Evaluate evaluates text with the engine's angle mode, last answer, and
// memory. On success, the result becomes the last answer and is appended to
// the history. On failure, the engine is unchanged.
func (e *Engine) Evaluate(text string) (float64, error) {
	return e.EvaluateContext(context.Background(), text)
}

// EvaluateContext is like Evaluate, with ctx as the parent of the span and
// metric recordings for the evaluation. ctx does not cancel evaluation.
func (e *Engine) EvaluateContext(ctx context.Context, text string) (float64, error) {
	ctx, span := startSpan(ctx, e.tracer, e.id, text, e.angle)
	start := time.Now()
	r, err := Evaluate(text, e.angle, e.ans, e.mem)
	e.metrics.RecordEvaluation(ctx, time.Since(start), err)
	endSpan(span, err)
	if err != nil {
		e.log.Debug("evaluation failed",
			slog.String("input", text),
			slog.String("error", err.Error()),
			slog.String("kind", errorKind(err)),
		)
		return 0, err
	}
	e.ans = r.Value
	e.second, e.hasSecond = r.Second, r.HasSecond
	e.history = append(e.history, HistoryEntry{Input: text, Result: r.Value})
	if n := len(e.history) - HistoryLimit; n > 0 {
		e.history = e.history[:copy(e.history, e.history[n:])]
	}
	e.log.Debug("evaluated",
		slog.String("input", text),
		slog.Float64("result", r.Value),
		slog.String("angle", e.angle.String()),
	)
	return r.Value, nil
}

// Ans returns the last answer.
func (e *Engine) Ans() float64 {
	return e.ans
}

// Secondary returns the companion output of the last Rec or Pol in the most
// recent successful evaluation: the y component for Rec(r, θ) and the angle
// in degrees for Pol(x, y). The second result is false if that evaluation
// used neither.
func (e *Engine) Secondary() (float64, bool) {
	return e.second, e.hasSecond
}

// History returns a copy of the remembered evaluations, oldest first.
func (e *Engine) History() []HistoryEntry {
	return append([]HistoryEntry(nil), e.history...)
}

// Store sets a memory variable. Values outside the set of memory variables
// are ignored.
func (e *Engine) Store(v Var, x float64) {
	if !v.valid() {
		e.log.Warn("store to invalid memory variable", slog.Int("var", int(v)))
		return
	}
	e.mem.Set(v, x)
	e.log.Info("stored", slog.String("var", v.String()), slog.Float64("value", x))
}

// Recall returns the value of a memory variable. Variables never stored, and
// values outside the set of memory variables, are 0.
func (e *Engine) Recall(v Var) float64 {
	return e.mem.Get(v)
}

// Memory returns a snapshot of the memory variables.
func (e *Engine) Memory() Memory {
	return e.mem
}

// Accumulate adds x to the accumulator. The accumulator is separate from
// the memory variable M.
func (e *Engine) Accumulate(x float64) {
	e.acc += x
}

// Deaccumulate subtracts x from the accumulator.
func (e *Engine) Deaccumulate(x float64) {
	e.acc -= x
}

// RecallAccumulator returns the accumulator.
func (e *Engine) RecallAccumulator() float64 {
	return e.acc
}

// ClearAccumulator sets the accumulator to 0.
func (e *Engine) ClearAccumulator() {
	e.acc = 0
}

// AccumulateExpr evaluates text as Evaluate does and adds the result to the
// accumulator, or subtracts it if neg is true. The accumulator is unchanged
// if evaluation fails.
func (e *Engine) AccumulateExpr(text string, neg bool) (float64, error) {
	v, err := e.Evaluate(text)
	if err != nil {
		return 0, err
	}
	if neg {
		e.Deaccumulate(v)
	} else {
		e.Accumulate(v)
	}
	return v, nil
}

// Angle returns the angle mode.
func (e *Engine) Angle() AngleMode {
	return e.angle
}

// SetAngle sets the angle mode.
func (e *Engine) SetAngle(m AngleMode) {
	e.angle = m
	e.log.Info("angle mode changed", slog.String("angle", m.String()))
}

// CycleAngleMode advances the angle mode from Degrees to Radians to Gradians
// and back to Degrees, returning the new mode.
func (e *Engine) CycleAngleMode() AngleMode {
	e.SetAngle(e.angle.Next())
	return e.angle
}

// DisplayFormat returns the display format.
func (e *Engine) DisplayFormat() DisplayFormat {
	return e.format
}

// SetDisplayFormat sets the display format. A fixed precision is clamped as
// by Fixed.
func (e *Engine) SetDisplayFormat(f DisplayFormat) {
	e.format = f.normalized()
}

// Format renders v in the engine's display format.
func (e *Engine) Format(v float64) string {
	return Format(v, e.format)
}

// Reset returns the engine to its initial state, as if newly created with no
// state options. The session ID, logger, metrics, and tracer are kept.
func (e *Engine) Reset() {
	*e = Engine{
		id:      e.id,
		log:     e.log,
		metrics: e.metrics,
		tracer:  e.tracer,
	}
	e.log.Info("engine reset")
}
