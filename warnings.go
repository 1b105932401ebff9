package hanji

import (
	"fmt"
	"strings"

	"github.com/hanjilab/hanji/hwp"
	"github.com/hanjilab/hanji/hwpx"
)

// Warning codes.
const (
	// WarningEncodingRecovery means the decode dropped more noise than the
	// configured threshold allows; the text is usable but may have gaps.
	WarningEncodingRecovery = "encoding-recovery"

	// WarningTruncatedSection means at least one body section could not be
	// decoded to its end; the text covers what survived.
	WarningTruncatedSection = "truncated-section"

	// WarningFallbackStrategy means the primary decode path failed and the
	// text was recovered by a lower-fidelity strategy.
	WarningFallbackStrategy = "fallback-strategy"
)

// Warning describes a non-fatal issue encountered during extraction.
// Extraction succeeded, but the result may be imperfect.
type Warning struct {
	Code    string
	Message string
}

func (w Warning) String() string {
	return w.Code + ": " + w.Message
}

// FormatWarnings renders warnings as a single human-readable line.
func FormatWarnings(warnings []Warning) string {
	parts := make([]string, len(warnings))
	for i, w := range warnings {
		parts[i] = w.String()
	}
	return strings.Join(parts, "; ")
}

// collectWarnings derives the warnings for one extraction result.
func collectWarnings(res *hwp.ParseResult, opts ExtractOptions) []Warning {
	var warns []Warning
	if res.NoiseRatio > opts.noiseThreshold {
		warns = append(warns, Warning{
			Code: WarningEncodingRecovery,
			Message: fmt.Sprintf("dropped %.1f%% of decoded characters as noise",
				res.NoiseRatio*100),
		})
	}
	if !res.Complete {
		warns = append(warns, Warning{
			Code:    WarningTruncatedSection,
			Message: "a body section was truncated or undecodable; text may be incomplete",
		})
	}
	if res.Method != hwp.MethodDirect && res.Method != hwpx.Method {
		warns = append(warns, Warning{
			Code:    WarningFallbackStrategy,
			Message: fmt.Sprintf("text recovered by fallback strategy %q", res.Method),
		})
	}
	return warns
}
