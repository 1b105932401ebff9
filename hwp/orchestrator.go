package hwp

import (
	"errors"
	"unicode/utf8"

	"github.com/hanjilab/hanji/cfb"
)

// Logger receives the orchestrator's per-strategy progress events. Any
// structured logger adapts to it with a one-method shim.
type Logger interface {
	Debugf(format string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any) {}

// ErrAllStrategiesExhausted is returned by Extract when every strategy in
// the chain failed or produced no text at all.
var ErrAllStrategiesExhausted = errors.New("hwp: all extraction strategies exhausted")

// Orchestrator runs a strategy chain against one document and picks the
// result to keep.
type Orchestrator struct {
	strategies []Strategy
}

// NewOrchestrator builds an orchestrator over the given chain. Strategies
// run in slice order.
func NewOrchestrator(strategies []Strategy) *Orchestrator {
	return &Orchestrator{strategies: append([]Strategy(nil), strategies...)}
}

// Extract tries each strategy in order and returns the first result whose
// text clears opts.MinTextLength. When no result clears the bar, the
// longest one wins, with earlier strategies breaking ties. Strategy errors
// are absorbed; the only error that aborts the chain is a malformed
// container, which no strategy could survive.
func (o *Orchestrator) Extract(data []byte, opts Options) (*ParseResult, error) {
	log := opts.Logger
	if log == nil {
		log = nopLogger{}
	}

	if _, err := cfb.Open(data); err != nil {
		return nil, err
	}

	var best *ParseResult
	bestLen := 0
	for _, s := range o.strategies {
		if !s.CanHandle(data) {
			log.Debugf("hwp: strategy %q cannot handle input", s.Name())
			continue
		}
		res, err := s.Extract(data, opts)
		if err != nil {
			log.Debugf("hwp: strategy %q failed: %v", s.Name(), err)
			continue
		}
		if res == nil || res.Text == "" {
			log.Debugf("hwp: strategy %q produced no text", s.Name())
			continue
		}
		n := utf8.RuneCountInString(res.Text)
		if n > opts.MinTextLength {
			log.Debugf("hwp: strategy %q accepted with %d chars", s.Name(), n)
			return res, nil
		}
		log.Debugf("hwp: strategy %q below threshold with %d chars", s.Name(), n)
		if n > bestLen {
			best, bestLen = res, n
		}
	}

	if best != nil {
		return best, nil
	}
	return nil, ErrAllStrategiesExhausted
}
