package commands

import (
	"fmt"
	"time"

	"github.com/mpdlink/mpd-go/pkg/log"
)

// FilterOptions specifies filtering criteria for the filter command.
type FilterOptions struct {
	Output     string
	ConnID     string
	Command    string
	RemoteAddr string
	TimeStart  string
	TimeEnd    string
	Layer      string
	Direction  string
	Category   string
	Status     string
	Subsystem  string
}

// Filter converts the options into a log.Filter.
func (o FilterOptions) Filter() (log.Filter, error) {
	filter := log.Filter{
		ConnectionID: o.ConnID,
		Command:      o.Command,
		RemoteAddr:   o.RemoteAddr,
		Subsystem:    o.Subsystem,
	}

	if o.TimeStart != "" {
		t, err := time.Parse(time.RFC3339, o.TimeStart)
		if err != nil {
			return filter, fmt.Errorf("invalid time-start format: %w", err)
		}
		filter.TimeStart = &t
	}
	if o.TimeEnd != "" {
		t, err := time.Parse(time.RFC3339, o.TimeEnd)
		if err != nil {
			return filter, fmt.Errorf("invalid time-end format: %w", err)
		}
		filter.TimeEnd = &t
	}
	if o.Layer != "" {
		l, err := ParseLayerFlag(o.Layer)
		if err != nil {
			return filter, err
		}
		filter.Layer = &l
	}
	if o.Direction != "" {
		d, err := ParseDirectionFlag(o.Direction)
		if err != nil {
			return filter, err
		}
		filter.Direction = &d
	}
	if o.Category != "" {
		c, err := ParseCategoryFlag(o.Category)
		if err != nil {
			return filter, err
		}
		filter.Category = &c
	}
	if o.Status != "" {
		st, err := ParseStatusFlag(o.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &st
	}
	return filter, nil
}

// RunFilter copies the events of path matching opts into opts.Output and
// returns how many were written.
func RunFilter(path string, opts FilterOptions) (int, error) {
	filter, err := opts.Filter()
	if err != nil {
		return 0, err
	}

	reader, err := log.NewFilteredReader(path, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	logger, err := log.NewFileLogger(opts.Output)
	if err != nil {
		return 0, fmt.Errorf("failed to create output logger: %w", err)
	}
	defer logger.Close()

	count := 0
	for event, err := range reader.Events() {
		if err != nil {
			return count, fmt.Errorf("failed to read event: %w", err)
		}
		logger.Log(event)
		count++
	}
	return count, nil
}
