// Command mpd-log is a tool for viewing and analyzing MPD protocol captures.
//
// Captures are written by mpc with the -protocol-log flag, or by any program
// that sets mpd.Config.ProtocolLogger to a log.FileLogger.
//
// Usage:
//
//	mpd-log <command> [flags] <file.mlog>
//
// Commands:
//
//	view     View log file in human-readable format
//	export   Export log file to JSON or CSV format
//	filter   Filter log file and write to new file
//	stats    Show statistics about the log file
//
// Examples:
//
//	# View only raw protocol lines
//	mpd-log view --layer transport mpd.mlog
//
//	# View every status request and response
//	mpd-log view --command status mpd.mlog
//
//	# Export to CSV
//	mpd-log export --format csv -o mpd.csv mpd.mlog
//
//	# Keep one connection's idle traffic
//	mpd-log filter --conn-id abc12345 --category idle -o idle.mlog mpd.mlog
//
//	# Show statistics
//	mpd-log stats mpd.mlog
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mpdlink/mpd-go/cmd/mpd-log/commands"
)

const usage = `mpd-log - MPD Protocol Log Analyzer

Usage:
  mpd-log <command> [flags] <file.mlog>

Commands:
  view     View log file in human-readable format
  export   Export log file to JSON or CSV format
  filter   Filter log file and write to new file
  stats    Show statistics about the log file

Use "mpd-log <command> -help" for more information about a command.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "view":
		runView(args)
	case "export":
		runExport(args)
	case "filter":
		runFilter(args)
	case "stats":
		runStats(args)
	case "-h", "-help", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

// parseWithFile parses args and returns the single log file argument.
func parseWithFile(fs *flag.FlagSet, args []string) string {
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: log file path required")
		fs.Usage()
		os.Exit(1)
	}
	return fs.Arg(0)
}

func subUsage(fs *flag.FlagSet, title, synopsis string) {
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "mpd-log %s - %s\n\nUsage:\n  mpd-log %s\n\nFlags:\n", fs.Name(), title, synopsis)
		fs.PrintDefaults()
	}
}

func runView(args []string) {
	fs := flag.NewFlagSet("view", flag.ExitOnError)
	subUsage(fs, "View log file in human-readable format", "view [flags] <file.mlog>")

	layer := fs.String("layer", "", "Filter by layer (transport, protocol, client)")
	direction := fs.String("direction", "", "Filter by direction (in, out)")
	category := fs.String("category", "", "Filter by category (message, idle, state, error)")
	command := fs.String("command", "", "Filter by command name")

	path := parseWithFile(fs, args)

	filter := commands.ViewFilter{Command: *command}
	if *layer != "" {
		l, err := commands.ParseLayerFlag(*layer)
		if err != nil {
			fail(err)
		}
		filter.Layer = &l
	}
	if *direction != "" {
		d, err := commands.ParseDirectionFlag(*direction)
		if err != nil {
			fail(err)
		}
		filter.Direction = &d
	}
	if *category != "" {
		c, err := commands.ParseCategoryFlag(*category)
		if err != nil {
			fail(err)
		}
		filter.Category = &c
	}

	if err := commands.RunView(path, filter, os.Stdout); err != nil {
		fail(err)
	}
}

func runExport(args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	subUsage(fs, "Export log file to JSON or CSV format", "export [flags] <file.mlog>")

	format := fs.String("format", "jsonl", "Output format (jsonl, csv)")
	output := fs.String("o", "", "Output file (default: stdout)")

	path := parseWithFile(fs, args)

	if err := commands.RunExport(path, *format, *output); err != nil {
		fail(err)
	}
}

func runFilter(args []string) {
	fs := flag.NewFlagSet("filter", flag.ExitOnError)
	subUsage(fs, "Filter log file and write to new file", "filter [flags] <file.mlog>")

	var opts commands.FilterOptions
	fs.StringVar(&opts.Output, "o", "", "Output file (required)")
	fs.StringVar(&opts.ConnID, "conn-id", "", "Filter by connection ID")
	fs.StringVar(&opts.Command, "command", "", "Filter by command name")
	fs.StringVar(&opts.RemoteAddr, "remote", "", "Filter by server address")
	fs.StringVar(&opts.TimeStart, "time-start", "", "Filter by start time (RFC3339)")
	fs.StringVar(&opts.TimeEnd, "time-end", "", "Filter by end time (RFC3339)")
	fs.StringVar(&opts.Layer, "layer", "", "Filter by layer (transport, protocol, client)")
	fs.StringVar(&opts.Direction, "direction", "", "Filter by direction (in, out)")
	fs.StringVar(&opts.Category, "category", "", "Filter by category (message, idle, state, error)")
	fs.StringVar(&opts.Status, "status", "", "Filter command responses by outcome (ok, ack, skipped, failed)")
	fs.StringVar(&opts.Subsystem, "subsystem", "", "Filter idle events by subsystem")

	path := parseWithFile(fs, args)

	if opts.Output == "" {
		fmt.Fprintln(os.Stderr, "Error: output file (-o) required")
		fs.Usage()
		os.Exit(1)
	}

	count, err := commands.RunFilter(path, opts)
	if err != nil {
		fail(err)
	}
	fmt.Printf("Filtered %d events to %s\n", count, opts.Output)
}

func runStats(args []string) {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	subUsage(fs, "Show statistics about the log file", "stats <file.mlog>")

	path := parseWithFile(fs, args)

	if err := commands.RunStats(path, os.Stdout); err != nil {
		fail(err)
	}
}
