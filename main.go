// hncli lists the hottest or latest Hacker News stories in a terminal.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gookit/color"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/mseshachalam/hncli/app"
	"github.com/mseshachalam/hncli/flow"
	"github.com/mseshachalam/hncli/progress"
	"github.com/mseshachalam/hncli/server"
)

const (
	exitOK         = 0
	exitFailure    = 1
	exitValidation = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// flags are the command line settings; zero values mean "not given"
type flags struct {
	config    string
	mode      string
	count     int
	format    string
	workers   int
	timeout   time.Duration
	color     string
	excerpt   bool
	archive   string
	verbose   bool
	quiet     bool
	logFormat string
	addr      string
	rate      string
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	serve := len(args) > 0 && args[0] == "serve"
	if serve {
		args = args[1:]
	}

	f, set, err := parseFlags(args, serve, stderr)
	if err != nil {
		if err == flag.ErrHelp {
			return exitOK
		}
		return exitValidation
	}

	conf, err := app.LoadConfig(f.config)
	if err != nil {
		fmt.Fprintf(stderr, "config: %v\n", err)
		return exitValidation
	}
	apply(&conf, f, set)

	setupLogger(stderr, conf.LogLevel, conf.LogFormat)

	if serve {
		return runServer(ctx, conf, stderr)
	}

	r, err := flow.Prepare(conf, time.Now())
	if err != nil {
		return report(stderr, err)
	}
	r.Presenter.Color = useColor(conf.Color, stdout)

	var p app.Progress = progress.Nop{}
	if !f.quiet && isTerminal(stderr) {
		p = progress.NewBar(stderr, "fetching", r.Presenter.Color)
	}

	b := flow.NewBringer(conf, flow.NewGateway(conf), p)
	if err := flow.Flow(ctx, b, r, stdout); err != nil {
		return report(stderr, err)
	}

	return exitOK
}

func parseFlags(args []string, serve bool, stderr io.Writer) (*flags, map[string]bool, error) {
	name := "hncli"
	if serve {
		name = "hncli serve"
	}
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)

	f := &flags{}
	fs.StringVar(&f.config, "config", "", "config file (.json, .yaml); defaults to $"+app.ConfigPathEnv)
	fs.StringVar(&f.mode, "sort", "", "sort mode: hottest or latest (default hottest)")
	fs.StringVar(&f.mode, "s", "", "shorthand for -sort")
	fs.IntVar(&f.count, "count", 0, fmt.Sprintf("number of stories, %d to %d (default %d)", app.MinCount, app.MaxCount, app.DefaultCount))
	fs.IntVar(&f.count, "c", 0, "shorthand for -count")
	fs.IntVar(&f.workers, "workers", 0, "concurrent detail fetches (default 1)")
	fs.DurationVar(&f.timeout, "timeout", 0, "per request timeout (default 10s)")
	fs.BoolVar(&f.verbose, "verbose", false, "debug logging, including skipped stories")
	fs.BoolVar(&f.verbose, "v", false, "shorthand for -verbose")
	fs.StringVar(&f.logFormat, "log-format", "", "log format: text or json")
	if serve {
		fs.StringVar(&f.addr, "addr", "", "listen address (default "+app.DefaultListenAddr+")")
		fs.StringVar(&f.rate, "rate", "", "per client rate limit (default "+app.DefaultRateLimit+")")
	} else {
		fs.StringVar(&f.format, "format", "", "output: text, table, json, rss, atom, jsonfeed, sitemap")
		fs.StringVar(&f.format, "f", "", "shorthand for -format")
		fs.StringVar(&f.color, "color", "", "color: auto, always, never")
		fs.BoolVar(&f.excerpt, "excerpt", false, "summarize text posts")
		fs.StringVar(&f.archive, "archive", "", "sqlite file to archive the run into")
		fs.BoolVar(&f.quiet, "quiet", false, "no progress bar")
		fs.BoolVar(&f.quiet, "q", false, "shorthand for -quiet")
	}

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	if fs.NArg() > 0 {
		err := errors.Errorf("unexpected argument %q", fs.Arg(0))
		fmt.Fprintln(stderr, err)
		fs.Usage()
		return nil, nil, err
	}

	set := make(map[string]bool)
	fs.Visit(func(fl *flag.Flag) {
		set[fl.Name] = true
	})

	return f, set, nil
}

// apply lays the flags that were given over conf
func apply(conf *app.Config, f *flags, set map[string]bool) {
	if set["sort"] || set["s"] {
		conf.Mode = f.mode
	}
	if set["count"] || set["c"] {
		conf.Count = f.count
	}
	if set["format"] || set["f"] {
		conf.Format = f.format
	}
	if set["workers"] {
		conf.Workers = f.workers
	}
	if set["timeout"] {
		conf.Timeout = app.Duration(f.timeout)
	}
	if set["color"] {
		conf.Color = f.color
	}
	if set["excerpt"] {
		conf.Excerpt = f.excerpt
	}
	if set["archive"] {
		conf.ArchivePath = f.archive
	}
	if f.verbose {
		conf.LogLevel = logrus.DebugLevel.String()
	}
	if set["log-format"] {
		conf.LogFormat = f.logFormat
	}
	if set["addr"] {
		conf.ListenAddr = f.addr
	}
	if set["rate"] {
		conf.RateLimit = f.rate
	}
}

func runServer(ctx context.Context, conf app.Config, stderr io.Writer) int {
	if _, err := flow.Prepare(conf, time.Now()); err != nil {
		return report(stderr, err)
	}

	srv := server.New(flow.NewGateway(conf), conf)
	h, err := srv.Handler()
	if err != nil {
		fmt.Fprintf(stderr, "validation: %v\n", err)
		return exitValidation
	}

	logrus.WithField("addr", conf.ListenAddr).Info("listening")
	if err := server.ListenAndServe(ctx, conf.ListenAddr, h); err != nil {
		logrus.WithError(err).Error("server stopped")
		return exitFailure
	}
	return exitOK
}

// report prints a fatal error and picks the exit status
func report(stderr io.Writer, err error) int {
	fmt.Fprintln(stderr, err)

	var serr *flow.StageError
	if errors.As(err, &serr) && serr.Stage == flow.StageValidation {
		return exitValidation
	}
	return exitFailure
}

func setupLogger(w io.Writer, level, format string) {
	if format == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	}
	logrus.SetOutput(w)

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logrus.SetLevel(lvl)
}

func useColor(mode string, w io.Writer) bool {
	switch mode {
	case "always":
		color.ForceColor()
		return true
	case "never":
		return false
	}
	return isTerminal(w)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
