// Command mpd-cmdgen renders the typed command wrappers of pkg/mpd from
// the command table.
//
//	go run ./cmd/mpd-cmdgen -output pkg/mpd/commands_gen.go
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/tools/imports"

	"github.com/mpdlink/mpd-go/pkg/command"
)

func main() {
	output := flag.String("output", "", "Output path for the generated Go file")
	pkg := flag.String("package", "mpd", "Package name of the generated file")
	receiver := flag.String("receiver", "Client", "Type the wrappers are declared on")
	flag.Parse()

	if *output == "" {
		fmt.Fprintln(os.Stderr, "Usage: mpd-cmdgen -output <file> [-package <name>] [-receiver <type>]")
		flag.PrintDefaults()
		os.Exit(1)
	}

	code, err := Generate(*pkg, *receiver, command.All())
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if err := writeFormatted(*output, code); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("  generated %s\n", *output)
}

// writeFormatted formats Go source code with goimports and writes it to a file.
func writeFormatted(path string, code string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}
	formatted, err := imports.Process(path, []byte(code), nil)
	if err != nil {
		// Write unformatted so you can debug the generator output
		_ = os.WriteFile(path+".broken", []byte(code), 0o644)
		return fmt.Errorf("goimports %s: %w", filepath.Base(path), err)
	}
	return os.WriteFile(path, formatted, 0o644)
}
