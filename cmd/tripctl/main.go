// Command tripctl talks to a Trip Journal API from the terminal.
//
// Usage:
//
//	tripctl [global flags] <command> [flags]
//
// Commands: token, check, create, list, search, watch, import.
// Global flags default from TRIPJOURNAL_URL and TRIPJOURNAL_TOKEN.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/pkordes/tripjournal/internal/logger"
	"github.com/pkordes/tripjournal/internal/tripclient"
)

// errUsage means the command line was wrong; usage has already been printed.
var errUsage = errors.New("usage")

type app struct {
	baseURL string
	token   string
	timeout time.Duration
	tz      string
	out     io.Writer
	errOut  io.Writer
	log     *zap.Logger
}

type command struct {
	summary string
	run     func(ctx context.Context, a *app, args []string) error
}

var commands = map[string]command{
	"token":  {"mint a bearer token (needs JWT_SECRET)", runToken},
	"check":  {"check whether a slug is free", runCheck},
	"create": {"create a trip after validating it locally", runCreate},
	"list":   {"list your trips", runList},
	"search": {"search public trips by title prefix", runSearch},
	"watch":  {"stream your trips as they change", runWatch},
	"import": {"import legacy trip documents (JSON array or one per line)", runImport},
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	switch {
	case err == nil:
	case errors.Is(err, errUsage):
		os.Exit(2)
	default:
		fmt.Fprintln(os.Stderr, "tripctl:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	a := &app{out: stdout, errOut: stderr}

	fs := flag.NewFlagSet("tripctl", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&a.baseURL, "url", envOr("TRIPJOURNAL_URL", "http://localhost:8080"), "API base URL")
	fs.StringVar(&a.token, "token", os.Getenv("TRIPJOURNAL_TOKEN"), "bearer token")
	fs.DurationVar(&a.timeout, "timeout", tripclient.DefaultTimeout, "per-request timeout")
	fs.StringVar(&a.tz, "tz", "Local", "IANA zone for the day-span rule")
	verbose := fs.Bool("v", false, "log progress to stderr")
	fs.Usage = func() { usage(fs) }
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	if fs.NArg() == 0 {
		usage(fs)
		return errUsage
	}

	level := "warn"
	if *verbose {
		level = "info"
	}
	log, err := logger.New(logger.Options{Level: level, Stdout: stderr})
	if err != nil {
		return err
	}
	a.log = log

	cmd, ok := commands[fs.Arg(0)]
	if !ok {
		fmt.Fprintf(stderr, "unknown command %q\n", fs.Arg(0))
		usage(fs)
		return errUsage
	}
	return cmd.run(ctx, a, fs.Args()[1:])
}

func usage(fs *flag.FlagSet) {
	w := fs.Output()
	fmt.Fprintln(w, "usage: tripctl [flags] <command> [command flags]")
	fmt.Fprintln(w, "\ncommands:")
	for _, name := range []string{"token", "check", "create", "list", "search", "watch", "import"} {
		fmt.Fprintf(w, "  %-7s %s\n", name, commands[name].summary)
	}
	fmt.Fprintln(w, "\nflags:")
	fs.PrintDefaults()
}

func (a *app) client() *tripclient.Client {
	return tripclient.New(a.baseURL, tripclient.WithToken(a.token), tripclient.WithTimeout(a.timeout))
}

func (a *app) location() (*time.Location, error) {
	if a.tz == "" || a.tz == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(a.tz)
	if err != nil {
		return nil, fmt.Errorf("-tz: %w", err)
	}
	return loc, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
