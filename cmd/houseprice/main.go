// houseprice fits a least squares line to square footage / price pairs and
// estimates the price of a home.
//
// Usage:
//
//	houseprice [flags]
//
// Flags:
//
//	-data        Path to the "x y" data file (default: housePrice.txt)
//	-sqft        Square footage to price; prompts interactively when omitted
//	-format      Output format: text, plain, json or markdown (default: text)
//	-pvalue      p-value method: normal or student (default: normal)
//	-html        Write an interactive fit chart to this file
//	-png         Write a static fit plot to this file
//	-log-level   debug, info, warn or error (default: warn); info adds the
//	             structured "fit completed" and "prediction made" records
//	-cpuprofile  Write a CPU profile into this directory
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/pkg/profile"
	"github.com/rs/zerolog"

	"github.com/YuminosukeSato/lsq/dataset"
	"github.com/YuminosukeSato/lsq/internal/prompt"
	"github.com/YuminosukeSato/lsq/internal/report"
	"github.com/YuminosukeSato/lsq/linear"
	"github.com/YuminosukeSato/lsq/metrics"
	"github.com/YuminosukeSato/lsq/pkg/errors"
	"github.com/YuminosukeSato/lsq/pkg/log"
)

type config struct {
	dataPath   string
	sqft       int
	format     string
	pValue     string
	htmlPath   string
	pngPath    string
	logLevel   string
	cpuProfile string
}

func parseFlags(args []string, stderr io.Writer) (config, error) {
	var cfg config
	fs := flag.NewFlagSet("houseprice", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&cfg.dataPath, "data", "housePrice.txt", "Path to the \"x y\" data file")
	fs.IntVar(&cfg.sqft, "sqft", 0, "Square footage to price; prompts when 0")
	fs.StringVar(&cfg.format, "format", "text", "Output format: text, plain, json or markdown")
	fs.StringVar(&cfg.pValue, "pvalue", "normal", "p-value method: normal or student")
	fs.StringVar(&cfg.htmlPath, "html", "", "Write an interactive fit chart to this file")
	fs.StringVar(&cfg.pngPath, "png", "", "Write a static fit plot to this file")
	fs.StringVar(&cfg.logLevel, "log-level", "warn", "debug, info, warn or error")
	fs.StringVar(&cfg.cpuProfile, "cpuprofile", "", "Write a CPU profile into this directory")
	if err := fs.Parse(args); err != nil {
		return config{}, err
	}

	switch cfg.format {
	case "text", "plain", "json", "markdown":
	default:
		return config{}, errors.Newf("unknown format %q", cfg.format)
	}
	return cfg, nil
}

func main() {
	os.Exit(realMain())
}

func realMain() int {
	cfg, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}

	if cfg.cpuProfile != "" {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(cfg.cpuProfile)).Stop()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg, os.Stdin, os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, prompt.ErrCanceled) {
			return 0
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func run(ctx context.Context, cfg config, stdin io.Reader, stdout, stderr io.Writer) error {
	if err := log.SetupLogger(stderr, cfg.logLevel); err != nil {
		return err
	}
	zl := zerolog.New(stderr).With().Timestamp().Logger().Level(zerologLevel(cfg.logLevel))
	log.EnableZerologWarnings(zl)
	defer errors.SetZerologWarnFunc(nil)

	runID := report.NewRunID()
	logger := log.GetLogger().With(log.RunIDKey, runID, log.ComponentKey, "cli")

	method, err := metrics.ParsePValueMethod(cfg.pValue)
	if err != nil {
		return err
	}

	var samples dataset.Samples
	err = errors.SafeExecute("load data", func() error {
		var err error
		samples, err = dataset.LoadFile(cfg.dataPath)
		return err
	})
	if err != nil {
		logger.Error("load failed", err, log.SourceKey, cfg.dataPath, log.ErrorCodeKey, log.ErrorInvalidInput)
		return err
	}

	ls := linear.NewLeastSquares(linear.WithPValueMethod(method), linear.WithLogger(logger))
	if err := errors.SafeExecute("fit", func() error { return ls.Fit(samples.X, samples.Y) }); err != nil {
		logger.Error("fit failed", err, log.SamplesKey, samples.Len())
		return err
	}
	if cfg.format == "plain" {
		fitted, err := ls.Stats()
		if err != nil {
			return err
		}
		if _, err := io.WriteString(stdout, fitted.Summary()); err != nil {
			return errors.WithStack(err)
		}
	}

	sqft := cfg.sqft
	if sqft == 0 {
		sqft, err = prompt.Ask(ctx, stdin, stdout, prompt.DefaultBounds)
		if err != nil {
			return err
		}
	} else if _, err := prompt.ParseBounded(strconv.Itoa(sqft), prompt.DefaultBounds); err != nil {
		return err
	}

	start := time.Now()
	price, err := ls.Predict(float64(sqft))
	if err != nil {
		return err
	}
	stats, err := ls.Stats()
	if err != nil {
		return err
	}
	logger.Info("prediction made",
		log.OperationKey, log.OperationPredict,
		log.PhaseKey, log.PhaseInference,
		log.InputKey, sqft,
		log.PredsKey, 1,
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)

	result := report.Result{RunID: runID, Input: float64(sqft), Prediction: price, Stats: stats}
	err = errors.SafeExecute("render report", func() error {
		return render(cfg, result, ls, samples, stdout)
	})
	if err != nil {
		logger.Error("render failed", err)
		return err
	}
	return nil
}

func render(cfg config, result report.Result, ls *linear.LeastSquares, samples dataset.Samples, stdout io.Writer) error {
	switch cfg.format {
	case "text":
		if _, err := fmt.Fprint(stdout, "\n"+report.Terminal(result)); err != nil {
			return errors.WithStack(err)
		}
	case "plain":
		if _, err := fmt.Fprintf(stdout, "\nPrediction = %g\n", result.Prediction); err != nil {
			return errors.WithStack(err)
		}
		if err := ls.Report(stdout); err != nil {
			return err
		}
	case "json":
		if err := report.WriteJSON(stdout, result); err != nil {
			return err
		}
	case "markdown":
		if err := report.WriteMarkdown(stdout, result); err != nil {
			return err
		}
	}

	if cfg.htmlPath != "" {
		f, err := os.Create(cfg.htmlPath)
		if err != nil {
			return errors.Wrapf(err, "create %s", cfg.htmlPath)
		}
		if err := report.WriteHTML(f, samples.X, samples.Y, ls); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return errors.WithStack(err)
		}
	}
	if cfg.pngPath != "" {
		if err := report.WritePNG(cfg.pngPath, samples.X, samples.Y, ls); err != nil {
			return err
		}
	}
	return nil
}

func zerologLevel(level string) zerolog.Level {
	l, err := zerolog.ParseLevel(level)
	if err != nil || l == zerolog.NoLevel {
		return zerolog.WarnLevel
	}
	return l
}
