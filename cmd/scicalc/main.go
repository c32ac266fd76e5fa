package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"go.opentelemetry.io/otel"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"golang.org/x/term"

	"github.com/zephyrtronium/scicalc"
	"github.com/zephyrtronium/scicalc/config"
)

func main() {
	log.SetFlags(0)
	var (
		inname, cfgname string
		angle, format   string
		echo, verbose   bool
		tracing         bool
		given           [][2]string
	)
	addgiven := func(s string) error {
		name, value, ok := strings.Cut(s, "=")
		if !ok {
			return fmt.Errorf(`memory definitions must be "V=value", not %q`, s)
		}
		given = append(given, [2]string{strings.TrimSpace(name), strings.TrimSpace(value)})
		return nil
	}
	flag.StringVar(&inname, "in", "", "input file, one expression per line (default stdin if no args given)")
	flag.StringVar(&cfgname, "config", "", "settings file (.yaml, .yml, or .json)")
	flag.StringVar(&angle, "angle", "", "angle mode: deg, rad, or gra (overrides config)")
	flag.StringVar(&format, "fmt", "", "display format: norm, sci, eng, or fix0 to fix9 (overrides config)")
	flag.Func("given", "V=value memory variable definition (any number of times)", addgiven)
	flag.BoolVar(&echo, "echo", false, "print token streams")
	flag.BoolVar(&verbose, "v", false, "log evaluations to stderr")
	flag.BoolVar(&tracing, "trace", false, "write a span for each evaluation to stderr")
	flag.Parse()

	var settings config.Settings
	if cfgname != "" {
		s, err := config.FromFile(cfgname)
		if err != nil {
			log.Fatal(err)
		}
		settings = s
	}
	if angle != "" {
		settings.Angle = angle
	}
	if format != "" {
		settings.Format = format
	}
	if verbose {
		settings.LogLevel = "debug"
	}
	if tracing {
		settings.Trace = true
	}
	if err := define(&settings, given); err != nil {
		log.Fatal(err)
	}
	opts, err := settings.Options()
	if err != nil {
		log.Fatalf("settings: %v", err)
	}
	level, err := settings.Level()
	if err != nil {
		log.Fatalf("settings: %v", err)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	opts = append(opts, scicalc.WithLogger(logger))

	var reader *sdkmetric.ManualReader
	if settings.Metrics {
		reader = sdkmetric.NewManualReader()
		provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
		defer provider.Shutdown(context.Background())
		otel.SetMeterProvider(provider)
		opts = append(opts, scicalc.WithMetrics(scicalc.NewMetricsRecorder()))
	}
	if settings.Trace {
		tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(&spanWriter{w: os.Stderr}))
		defer tp.Shutdown(context.Background())
		opts = append(opts, scicalc.WithTracer(tp.Tracer("scicalc")))
	}

	s := &session{eng: scicalc.New(opts...), out: os.Stdout, echo: echo}
	for _, arg := range flag.Args() {
		s.run(arg)
	}
	if err := input(s, inname, flag.NArg() == 0); err != nil {
		log.Fatal(err)
	}

	if reader != nil {
		if err := summarize(context.Background(), os.Stderr, reader); err != nil {
			log.Fatal(err)
		}
	}
}

// define evaluates -given definitions in order and adds them to the memory
// in settings. Each sees the configured angle mode and every variable defined
// before it, whether by the settings file or an earlier definition.
func define(settings *config.Settings, given [][2]string) error {
	if len(given) == 0 {
		return nil
	}
	mode := scicalc.Degrees
	if settings.Angle != "" {
		m, err := scicalc.ParseAngleMode(settings.Angle)
		if err != nil {
			return fmt.Errorf("angle: %w", err)
		}
		mode = m
	}
	var mem scicalc.Memory
	for name, x := range settings.Memory {
		v, err := scicalc.ParseVar(name)
		if err != nil {
			return fmt.Errorf("memory: %w", err)
		}
		mem.Set(v, x)
	}
	for _, d := range given {
		v, err := scicalc.ParseVar(d[0])
		if err != nil {
			return fmt.Errorf("setting %s: %w", d[0], err)
		}
		r, err := scicalc.Evaluate(d[1], mode, 0, mem)
		if err != nil {
			return fmt.Errorf("setting %s: %w", d[0], err)
		}
		mem.Set(v, r.Value)
	}
	// Rebuild by canonical name so that aliases such as m and M cannot
	// disagree.
	settings.Memory = make(map[string]float64, len(scicalc.Vars))
	for _, v := range scicalc.Vars {
		settings.Memory[v.String()] = mem.Get(v)
	}
	return nil
}

// input runs the lines of the input file, or of stdin if inname is "-" or
// if std is true and inname is empty. An interactive stdin gets a line editor.
func input(s *session, inname string, std bool) error {
	switch {
	case inname != "" && inname != "-":
		f, err := os.Open(inname)
		if err != nil {
			return err
		}
		defer f.Close()
		return s.lines(f)
	case inname == "-", std:
		if term.IsTerminal(int(os.Stdin.Fd())) {
			return repl(s)
		}
		return s.lines(os.Stdin)
	}
	return nil
}

// lines runs each line of r.
func (s *session) lines(r io.Reader) error {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		s.run(sc.Text())
	}
	return sc.Err()
}

// repl runs an interactive session until EOF or interrupt.
func repl(s *session) error {
	rl, err := readline.New(prompt(s.eng))
	if err != nil {
		return err
	}
	defer rl.Close()
	s.out = rl.Stdout()
	fmt.Fprintln(s.out, `scientific calculator; ":help" lists commands`)
	for {
		rl.SetPrompt(prompt(s.eng))
		line, err := rl.Readline()
		if err != nil {
			// io.EOF or readline.ErrInterrupt both end the session.
			return nil
		}
		s.run(line)
	}
}

// prompt shows the angle mode the way a calculator display does.
func prompt(eng *scicalc.Engine) string {
	return eng.Angle().Label() + "> "
}
