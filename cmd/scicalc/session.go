package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/zephyrtronium/scicalc"
)

// session connects an engine to line-oriented input and output.
type session struct {
	eng  *scicalc.Engine
	out  io.Writer
	echo bool
}

// glyphs rewrites display symbols into the characters the engine reads.
var glyphs = strings.NewReplacer(
	"×10^x", "×10^",
	"−", "-",
)

// normalize prepares user input for evaluation.
func normalize(s string) string {
	return glyphs.Replace(s)
}

const help = `expressions use + - * × / ÷ ^ ! % ° ( ) , Ans π e and
  asinh acosh atanh asin acos atan sinh cosh tanh sin cos tan
  log₂ log ln sqrt cbrt abs exp nCr nPr Rec Pol
memory variables: A B C D E F X Y M
commands:
  :mode            cycle the angle mode
  :deg :rad :gra   set the angle mode
  :fmt [FORMAT]    show or set the display format (norm, sci, eng, fix0-fix9)
  :sto V           store Ans in variable V
  :rcl V           show variable V
  :m+ [EXPR]       add EXPR (default Ans) to the accumulator
  :m- [EXPR]       subtract EXPR (default Ans) from the accumulator
  :mr  :mc         show or clear the accumulator
  :eng             show Ans in engineering notation
  :second          show the second result of the last Rec or Pol
  :hist            show the history
  :reset           reset all state`

// run handles one line of input, either a colon command or an expression.
func (s *session) run(line string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return
	}
	if cmd, ok := strings.CutPrefix(line, ":"); ok {
		if err := s.command(cmd); err != nil {
			fmt.Fprintln(s.out, err)
		}
		return
	}
	s.evaluate(line)
}

func (s *session) evaluate(line string) {
	expr := normalize(line)
	if s.echo {
		s.tokens(expr)
	}
	v, err := s.eng.Evaluate(expr)
	if err != nil {
		fmt.Fprintln(s.out, scicalc.DisplayMessage(err))
		return
	}
	fmt.Fprintln(s.out, s.eng.Format(v))
}

// tokens prints the token stream of expr.
func (s *session) tokens(expr string) {
	toks, err := scicalc.Tokenize(expr, s.eng.Ans(), s.eng.Memory())
	if err != nil {
		// Evaluate reports the same error.
		return
	}
	v := make([]string, len(toks))
	for i, tok := range toks {
		v[i] = tok.String()
	}
	fmt.Fprintln(s.out, strings.Join(v, " "))
}

func (s *session) command(line string) error {
	name, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	name, arg = strings.ToLower(name), strings.TrimSpace(arg)
	switch name {
	case "help":
		fmt.Fprintln(s.out, help)
	case "mode":
		fmt.Fprintln(s.out, s.eng.CycleAngleMode())
	case "deg", "rad", "gra":
		m, err := scicalc.ParseAngleMode(name)
		if err != nil {
			return err
		}
		s.eng.SetAngle(m)
		fmt.Fprintln(s.out, m)
	case "fmt":
		if arg != "" {
			f, err := scicalc.ParseDisplayFormat(arg)
			if err != nil {
				return err
			}
			s.eng.SetDisplayFormat(f)
		}
		fmt.Fprintln(s.out, s.eng.DisplayFormat())
	case "sto":
		v, err := scicalc.ParseVar(arg)
		if err != nil {
			return err
		}
		s.eng.Store(v, s.eng.Ans())
		fmt.Fprintf(s.out, "%v = %s\n", v, s.eng.Format(s.eng.Recall(v)))
	case "rcl":
		v, err := scicalc.ParseVar(arg)
		if err != nil {
			return err
		}
		fmt.Fprintf(s.out, "%v = %s\n", v, s.eng.Format(s.eng.Recall(v)))
	case "m+", "m-":
		if arg == "" {
			arg = "Ans"
		}
		if _, err := s.eng.AccumulateExpr(normalize(arg), name == "m-"); err != nil {
			fmt.Fprintln(s.out, scicalc.DisplayMessage(err))
			return nil
		}
		fmt.Fprintf(s.out, "M = %s\n", s.eng.Format(s.eng.RecallAccumulator()))
	case "mr":
		fmt.Fprintf(s.out, "M = %s\n", s.eng.Format(s.eng.RecallAccumulator()))
	case "mc":
		s.eng.ClearAccumulator()
		fmt.Fprintln(s.out, "M = 0")
	case "eng":
		fmt.Fprintln(s.out, scicalc.Format(s.eng.Ans(), scicalc.Engineering))
	case "second":
		v, ok := s.eng.Secondary()
		if !ok {
			return errors.New("no Rec or Pol in the last evaluation")
		}
		fmt.Fprintln(s.out, s.eng.Format(v))
	case "hist":
		for _, h := range s.eng.History() {
			fmt.Fprintf(s.out, "%s = %s\n", h.Input, s.eng.Format(h.Result))
		}
	case "reset":
		s.eng.Reset()
		fmt.Fprintln(s.out, "0")
	default:
		return fmt.Errorf("unknown command %q; try :help", name)
	}
	return nil
}

// summarize writes the totals of the engine's counters.
func summarize(ctx context.Context, w io.Writer, reader *sdkmetric.ManualReader) error {
	var rm metricdata.ResourceMetrics
	if err := reader.Collect(ctx, &rm); err != nil {
		return fmt.Errorf("collect metrics: %w", err)
	}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				continue
			}
			var total int64
			for _, dp := range sum.DataPoints {
				total += dp.Value
			}
			fmt.Fprintf(w, "%s: %d\n", m.Name, total)
		}
	}
	return nil
}
