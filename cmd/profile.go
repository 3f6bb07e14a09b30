// Copyright © 2024 The col authors

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime/pprof"

	"github.com/bieber/col/lang"
	"github.com/bieber/col/lang/x/profiler"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	octrace "go.opencensus.io/trace"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// profiling is the profiler installed for one run of a program.  stop must
// be called once the run completes.
type profiling struct {
	stops []func() error
}

func (p *profiling) onStop(fn func() error) {
	p.stops = append(p.stops, fn)
}

func (p *profiling) stop() error {
	var errs []error
	for i := len(p.stops) - 1; i >= 0; i-- {
		errs = append(errs, p.stops[i]())
	}
	p.stops = nil
	return errors.Join(errs...)
}

// startProfiling installs the profiler selected by flags in rt.  At most one
// of --callgrind, --trace and --cpuprofile may be given.
func startProfiling(rt *lang.Runtime, flags *pflag.FlagSet, trace string, logger *logrus.Logger) (*profiling, error) {
	callgrind, _ := flags.GetString("callgrind")
	cpuprofile, _ := flags.GetString("cpuprofile")
	n := 0
	for _, s := range []string{callgrind, trace, cpuprofile} {
		if s != "" {
			n++
		}
	}
	p := &profiling{}
	if n > 1 {
		return p, errors.New("only one of --callgrind, --trace and --cpuprofile may be used")
	}
	var err error
	switch {
	case callgrind != "":
		err = startCallgrind(p, rt, callgrind)
	case trace != "":
		// spans are logged at info level
		if !logger.IsLevelEnabled(logrus.InfoLevel) {
			logger.SetLevel(logrus.InfoLevel)
		}
		err = startTrace(p, rt, trace, logger)
	case cpuprofile != "":
		err = startCPUProfile(p, rt, cpuprofile)
	}
	if err != nil {
		_ = p.stop()
		return &profiling{}, err
	}
	return p, nil
}

func startCallgrind(p *profiling, rt *lang.Runtime, path string) error {
	prof := profiler.NewCallgrindProfiler(rt, profiler.WithDocLabeler())
	if err := prof.SetFile(path); err != nil {
		return err
	}
	// the runtime completes the profile unless main is never called
	p.onStop(func() error {
		if !prof.IsEnabled() {
			return nil
		}
		return prof.Complete()
	})
	return prof.Enable()
}

func startTrace(p *profiling, rt *lang.Runtime, kind string, logger logrus.FieldLogger) error {
	exporter := profiler.NewLogExporter(logger)
	switch kind {
	case "otel", "opentelemetry":
		tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
		otel.SetTracerProvider(tp)
		ctx, span := tp.Tracer("col").Start(context.Background(), "run")
		p.onStop(func() error {
			return tp.Shutdown(context.Background())
		})
		p.onStop(func() error {
			span.End()
			return nil
		})
		return profiler.NewOpenTelemetryAnnotator(rt, ctx, profiler.WithDocLabeler()).Enable()
	case "opencensus":
		octrace.RegisterExporter(exporter)
		octrace.ApplyConfig(octrace.Config{DefaultSampler: octrace.AlwaysSample()})
		ctx, span := octrace.StartSpan(context.Background(), "run")
		p.onStop(func() error {
			octrace.UnregisterExporter(exporter)
			return nil
		})
		p.onStop(func() error {
			span.End()
			return nil
		})
		return profiler.NewOpenCensusAnnotator(rt, ctx, profiler.WithDocLabeler()).Enable()
	}
	return fmt.Errorf("unknown trace exporter %q: use otel or opencensus", kind)
}

func startCPUProfile(p *profiling, rt *lang.Runtime, path string) error {
	f, err := os.Create(path) //#nosec G304
	if err != nil {
		return err
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		_ = f.Close()
		return err
	}
	p.onStop(func() error {
		pprof.StopCPUProfile()
		return f.Close()
	})
	return profiler.NewPprofAnnotator(rt, context.Background(), profiler.WithDocLabeler()).Enable()
}
