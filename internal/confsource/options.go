package confsource

import (
	"errors"

	logopts "github.com/kart-io/confsource/pkg/options/logger"
	sourceopts "github.com/kart-io/confsource/pkg/options/source"
	"github.com/spf13/pflag"
)

// Options holds all configuration for the confsource daemon.
type Options struct {
	Log    *logopts.Options    `json:"log" mapstructure:"log"`
	Source *sourceopts.Options `json:"source" mapstructure:"source"`
}

// NewOptions creates Options with defaults.
// Logs default to stderr: stdout carries the NDJSON update stream.
func NewOptions() *Options {
	log := logopts.NewOptions()
	log.OutputPaths = []string{"stderr"}

	return &Options{
		Log:    log,
		Source: sourceopts.NewOptions(),
	}
}

// AddFlags adds all daemon flags to the flagset.
func (o *Options) AddFlags(fs *pflag.FlagSet) {
	o.Log.AddFlags(fs)
	o.Source.AddFlags(fs)
}

// Validate validates all options.
func (o *Options) Validate() error {
	var errs []error
	if err := o.Log.Validate(); err != nil {
		errs = append(errs, err)
	}
	errs = append(errs, o.Source.Validate()...)
	return errors.Join(errs...)
}

// Complete completes all options with defaults.
func (o *Options) Complete() error {
	if err := o.Log.Complete(); err != nil {
		return err
	}
	return o.Source.Complete()
}
