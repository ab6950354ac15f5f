package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"git.sr.ht/~jakintosh/purse/internal/config"
	"git.sr.ht/~jakintosh/purse/internal/logging"
	"git.sr.ht/~jakintosh/purse/internal/store"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/x/term"
)

const usage = `Usage: purse [flags] [command]

Track income and expenses in a CSV ledger.

Commands:
  (none)     open the interactive shell
  add        append one transaction
  summary    print transactions and totals for a date range
  chart      print one chart for a date range
  demo       fill the ledger with sample data
  version    print build information

Flags:
`

// errUsage marks errors caused by bad arguments.
var errUsage = errors.New("usage error")

type env struct {
	cfg    *config.Config
	store  *store.Store
	logger *log.Logger
	stdout io.Writer
	stderr io.Writer
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	cfg := config.Default()
	fs := flag.NewFlagSet("purse", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprint(stderr, usage)
		fs.PrintDefaults()
	}
	cfg.RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	command := fs.Arg(0)
	rest := fs.Args()
	if len(rest) > 0 {
		rest = rest[1:]
	}

	e := &env{cfg: cfg, stdout: stdout, stderr: stderr}
	var closer io.Closer
	if command == "" {
		// the shell owns the terminal, so logs go to a file or nowhere
		e.logger = logging.Discard()
		if cfg.LogPath != "" {
			logger, c, err := logging.OpenFile(cfg.LogPath, cfg.Verbose)
			if err != nil {
				fmt.Fprintln(stderr, err)
				return 1
			}
			e.logger, closer = logger, c
		}
	} else {
		e.logger = logging.New(stderr, cfg.Verbose)
	}
	if closer != nil {
		defer closer.Close()
	}
	e.store = store.New(cfg.LedgerPath, store.WithLogger(e.logger))

	var err error
	switch command {
	case "":
		err = runShell(e)
	case "add":
		err = runAdd(e, rest)
	case "summary":
		err = runSummary(e, rest)
	case "chart":
		err = runChart(e, rest)
	case "demo":
		err = runDemo(e, rest)
	case "version":
		err = runVersion(e)
	default:
		fs.Usage()
		err = fmt.Errorf("%w: unknown command %q", errUsage, command)
	}

	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		e.logger.Error("Command failed", logging.FieldCommand, commandName(command), logging.FieldError, err)
		if errors.Is(err, errUsage) {
			return 2
		}
		return 1
	}
	return 0
}

func commandName(command string) string {
	if command == "" {
		return "shell"
	}
	return command
}

// terminalWidth reports the width of stdout, or 0 when it is not a terminal.
func terminalWidth() int {
	w, _, err := term.GetSize(os.Stdout.Fd())
	if err != nil {
		return 0
	}
	return w
}
