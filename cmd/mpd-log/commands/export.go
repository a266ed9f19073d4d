package commands

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/mpdlink/mpd-go/pkg/log"
)

// RunExport exports the log file to the specified format.
func RunExport(path, format, output string) error {
	reader, err := log.NewReader(path)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	var w io.Writer = os.Stdout
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	switch format {
	case "jsonl":
		return exportJSONL(reader, w)
	case "csv":
		return exportCSV(reader, w)
	default:
		return fmt.Errorf("unknown format: %s (supported: jsonl, csv)", format)
	}
}

func exportJSONL(reader *log.Reader, w io.Writer) error {
	encoder := json.NewEncoder(w)
	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		if err := encoder.Encode(event); err != nil {
			return fmt.Errorf("failed to encode event: %w", err)
		}
	}
	return nil
}

var csvHeader = []string{"timestamp", "connection_id", "direction", "layer", "category", "remote_addr", "type", "command", "status", "detail"}

func exportCSV(reader *log.Reader, w io.Writer) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		if err := cw.Write(csvRow(event)); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	return cw.Error()
}

func csvRow(event log.Event) []string {
	var command, status, detail string
	switch {
	case event.Line != nil:
		detail = event.Line.Text
		if event.Line.Binary {
			detail = strconv.Itoa(event.Line.Size)
		}
	case event.Command != nil:
		command = event.Command.Name
		switch event.Command.Type {
		case log.CommandTypeRequest:
			detail = strings.Join(event.Command.Args, " ")
		default:
			status = event.Command.Status.String()
			detail = event.Command.Message
		}
	case event.StateChange != nil:
		status = event.StateChange.NewState
		detail = event.StateChange.Reason
	case event.Idle != nil:
		status = event.Idle.Type.String()
		detail = strings.Join(slices.Concat(event.Idle.Subsystems, event.Idle.Changed), ",")
	case event.Error != nil:
		detail = event.Error.Message
	}

	return []string{
		event.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z"),
		event.ConnectionID,
		event.Direction.String(),
		event.Layer.String(),
		event.Category.String(),
		event.RemoteAddr,
		strings.ToLower(eventLabel(event)),
		command,
		status,
		detail,
	}
}
