package hanji

import (
	"fmt"
	"strings"
	"time"

	"github.com/hanjilab/hanji/hwp"
)

// ExtractOptions holds configuration for document extraction.
type ExtractOptions struct {
	// Strategy acceptance bar, in runes
	minTextLength int

	// Noise ratio above which an encoding-recovery warning is emitted
	noiseThreshold float64

	// Decode limits (zero means unlimited)
	maxRecords    int
	maxDecodeTime time.Duration

	// Strategy chain, in priority order
	strategies []hwp.Strategy

	// Progress event sink; nil is silent
	logger Logger
}

// defaultOptions returns the default extraction options.
func defaultOptions() ExtractOptions {
	return ExtractOptions{
		minTextLength:  500,
		noiseThreshold: 0.01,
		maxRecords:     0,
		maxDecodeTime:  0,
		strategies:     hwp.DefaultStrategies(),
	}
}

// clone creates a deep copy of ExtractOptions.
func (o ExtractOptions) clone() ExtractOptions {
	newOpts := o

	// Deep copy strategies slice
	if o.strategies != nil {
		newOpts.strategies = make([]hwp.Strategy, len(o.strategies))
		copy(newOpts.strategies, o.strategies)
	}

	return newOpts
}

// hwpOptions maps the options onto the decoder's knobs.
func (o ExtractOptions) hwpOptions() hwp.Options {
	return hwp.Options{
		MinTextLength: o.minTextLength,
		MaxRecords:    o.maxRecords,
		MaxDecodeTime: o.maxDecodeTime,
		Logger:        o.logger,
	}
}

// canonical renders the options that influence extraction output as a
// stable string for fingerprinting. The logger is excluded: it observes the
// extraction but never changes it.
func (o ExtractOptions) canonical() string {
	names := make([]string, len(o.strategies))
	for i, s := range o.strategies {
		names[i] = s.Name()
	}
	return fmt.Sprintf("min=%d noise=%g records=%d decode=%s strategies=%s",
		o.minTextLength, o.noiseThreshold, o.maxRecords, o.maxDecodeTime,
		strings.Join(names, ","))
}
