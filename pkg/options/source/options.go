// Package source provides configuration options for the config source.
package source

import (
	"fmt"
	"time"

	"github.com/kart-io/confsource/pkg/options"
	"github.com/spf13/pflag"
)

var _ options.IOptions = (*Options)(nil)

// Options configures the watched config source.
type Options struct {
	// Path is the watched file: a JSON document or an executable.
	Path string `json:"path" mapstructure:"path"`

	// CoalesceWindow merges bursts of filesystem events into one reload.
	CoalesceWindow time.Duration `json:"coalesce-window" mapstructure:"coalesce-window"`

	// Buffer is the capacity of the update channel.
	Buffer int `json:"buffer" mapstructure:"buffer"`
}

// NewOptions creates default source options.
func NewOptions() *Options {
	return &Options{
		CoalesceWindow: time.Second,
		Buffer:         16,
	}
}

// AddFlags adds flags for source options to the specified FlagSet.
func (o *Options) AddFlags(fs *pflag.FlagSet, prefixes ...string) {
	fs.StringVar(&o.Path, options.Join(prefixes...)+"source.path", o.Path, "Path to the config file or executable to watch.")
	fs.DurationVar(&o.CoalesceWindow, options.Join(prefixes...)+"source.coalesce-window", o.CoalesceWindow, "Window for merging bursts of filesystem events into one reload.")
	fs.IntVar(&o.Buffer, options.Join(prefixes...)+"source.buffer", o.Buffer, "Capacity of the update channel.")
}

// Validate validates the source options.
func (o *Options) Validate() []error {
	if o == nil {
		return nil
	}

	var errs []error
	if o.Path == "" {
		errs = append(errs, fmt.Errorf("source.path is required"))
	}
	if o.CoalesceWindow < 0 {
		errs = append(errs, fmt.Errorf("source.coalesce-window must not be negative"))
	}
	if o.Buffer < 0 {
		errs = append(errs, fmt.Errorf("source.buffer must not be negative"))
	}
	return errs
}

// Complete completes the source options with defaults.
func (o *Options) Complete() error {
	if o.CoalesceWindow == 0 {
		o.CoalesceWindow = time.Second
	}
	return nil
}
