package transform

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/qza7849467chensh5/reflective-bind/internal/diag"
	"github.com/qza7849467chensh5/reflective-bind/internal/hoist"
	"github.com/qza7849467chensh5/reflective-bind/internal/trace"
)

const (
	DefaultHoistedPrefix = "rbHoisted"
	DefaultHelperName    = "rbBabelBind"
	DefaultHelperModule  = "reflective-bind"
)

var ErrEmptyOption = errors.New("option must not be empty")

// Options configures one run of the transform.
type Options struct {
	// HoistedPrefix seeds the names of hoisted functions (_rbHoisted, ...).
	HoistedPrefix string
	// HelperName seeds the local name of the imported helper.
	HelperName string
	// HelperModule is the module the helper is imported from.
	HelperModule string
	// LogLevel filters the transform log; zero means off.
	LogLevel trace.Level
	// ContextFields whitelists this.<field> accesses turned into
	// parameters; nil means props and state.
	ContextFields []string
	// PropNameRegex, when set, restricts closure analysis to JSX attributes
	// whose name matches.
	PropNameRegex string
	// Reporter receives transform diagnostics; nil drops them.
	Reporter diag.Reporter
}

// DefaultOptions returns the options the transform uses when none are given.
func DefaultOptions() Options {
	return Options{
		HoistedPrefix: DefaultHoistedPrefix,
		HelperName:    DefaultHelperName,
		HelperModule:  DefaultHelperModule,
		LogLevel:      trace.LevelOff,
		ContextFields: append([]string(nil), hoist.DefaultContextFields...),
	}
}

// withDefaults fills empty fields from DefaultOptions.
func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.HoistedPrefix == "" {
		o.HoistedPrefix = d.HoistedPrefix
	}
	if o.HelperName == "" {
		o.HelperName = d.HelperName
	}
	if o.HelperModule == "" {
		o.HelperModule = d.HelperModule
	}
	if o.LogLevel == 0 {
		o.LogLevel = trace.LevelOff
	}
	return o
}

// Validate checks option values and compiles the prop name filter.
func (o Options) Validate() error {
	_, err := o.propFilter()
	return err
}

func (o Options) propFilter() (*regexp.Regexp, error) {
	for _, f := range o.ContextFields {
		if f == "" {
			return nil, fmt.Errorf("context field: %w", ErrEmptyOption)
		}
	}
	if o.PropNameRegex == "" {
		return nil, nil
	}
	re, err := regexp.Compile(o.PropNameRegex)
	if err != nil {
		return nil, fmt.Errorf("invalid prop name regex: %w", err)
	}
	return re, nil
}
