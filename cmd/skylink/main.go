// Command skylink converts celestial coordinates through the link helpers,
// and serves them over HTTP and gRPC.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/banshee-data/skylink/internal/monitoring"
)

var errUsage = errors.New("usage")

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, errUsage) && !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintf(os.Stderr, "skylink: %v\n", err)
		}
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		printUsage(stderr)
		return errUsage
	}

	switch cmd, rest := args[0], args[1:]; cmd {
	case "helpers":
		return cmdHelpers(rest, stdout, stderr)
	case "links":
		return cmdLinks(rest, stdout, stderr)
	case "convert":
		return cmdConvert(rest, stdout, stderr)
	case "plot":
		return cmdPlot(rest, stdout, stderr)
	case "serve":
		return cmdServe(rest, stdout, stderr)
	case "migrate":
		return cmdMigrate(rest, stdout, stderr)
	case "version":
		return cmdVersion(stdout)
	case "help", "-h", "--help":
		printUsage(stdout)
		return nil
	default:
		fmt.Fprintf(stderr, "unknown command %q\n\n", cmd)
		printUsage(stderr)
		return errUsage
	}
}

func printUsage(w io.Writer) {
	fmt.Fprint(w, `Usage: skylink <command> [flags]

Commands:
  helpers    List the available link helpers
  links      Show the links a helper creates between components
  convert    Convert coordinates with a helper
  plot       Plot coordinates before and after conversion
  serve      Run the HTTP and gRPC servers
  migrate    Manage the session database schema
  version    Print build information

Run 'skylink <command> -h' for command flags.
`)
}

func newFlagSet(name string, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	return fs
}

// setVerbose turns on debug logging when either the flag or config asks for it.
func setVerbose(flagOn, configOn bool) {
	monitoring.SetVerbose(flagOn || configOn)
}
