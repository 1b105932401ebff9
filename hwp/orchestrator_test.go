package hwp

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/hanjilab/hanji/cfb"
	"github.com/hanjilab/hanji/internal/hwptest"
)

type stubStrategy struct {
	name  string
	can   bool
	res   *ParseResult
	err   error
	calls *[]string
}

func (s stubStrategy) Name() string          { return s.name }
func (s stubStrategy) CanHandle([]byte) bool { return s.can }

func (s stubStrategy) Extract([]byte, Options) (*ParseResult, error) {
	if s.calls != nil {
		*s.calls = append(*s.calls, s.name)
	}
	return s.res, s.err
}

type recordingLogger struct {
	events []string
}

func (l *recordingLogger) Debugf(format string, args ...any) {
	l.events = append(l.events, fmt.Sprintf(format, args...))
}

func textResult(s string) *ParseResult {
	return &ParseResult{Text: s, Paragraphs: []string{s}}
}

func TestOrchestratorFirstAcceptedWins(t *testing.T) {
	var calls []string
	o := NewOrchestrator([]Strategy{
		stubStrategy{name: "first", can: true, res: textResult(strings.Repeat("가", 10)), calls: &calls},
		stubStrategy{name: "second", can: true, res: textResult("나"), calls: &calls},
	})

	res, err := o.Extract(hwptest.BuildDocument("본문"), Options{MinTextLength: 5})
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if res.Text != strings.Repeat("가", 10) {
		t.Errorf("Text = %q", res.Text)
	}
	if want := []string{"first"}; !equalStrings(calls, want) {
		t.Errorf("calls = %q, want %q", calls, want)
	}
}

func TestOrchestratorAbsorbsFailures(t *testing.T) {
	var calls []string
	o := NewOrchestrator([]Strategy{
		stubStrategy{name: "failing", can: true, err: errors.New("broken"), calls: &calls},
		stubStrategy{name: "empty", can: true, res: &ParseResult{}, calls: &calls},
		stubStrategy{name: "good", can: true, res: textResult("살아남은 텍스트"), calls: &calls},
	})

	res, err := o.Extract(hwptest.BuildDocument("본문"), Options{})
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if res.Text != "살아남은 텍스트" {
		t.Errorf("Text = %q", res.Text)
	}
	if want := []string{"failing", "empty", "good"}; !equalStrings(calls, want) {
		t.Errorf("calls = %q, want %q", calls, want)
	}
}

func TestOrchestratorKeepsLongestBelowThreshold(t *testing.T) {
	// Nobody clears the bar: the longest result wins and ties go to the
	// earlier strategy.
	o := NewOrchestrator([]Strategy{
		stubStrategy{name: "short", can: true, res: textResult("가나")},
		stubStrategy{name: "longer", can: true, res: textResult("다라마")},
		stubStrategy{name: "same length", can: true, res: textResult("바사아")},
	})

	res, err := o.Extract(hwptest.BuildDocument("본문"), Options{MinTextLength: 10})
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if res.Text != "다라마" {
		t.Errorf("Text = %q, want %q", res.Text, "다라마")
	}
}

func TestOrchestratorSkipsCannotHandle(t *testing.T) {
	var calls []string
	o := NewOrchestrator([]Strategy{
		stubStrategy{name: "blind", can: false, res: textResult("보이면 안 되는 텍스트"), calls: &calls},
		stubStrategy{name: "good", can: true, res: textResult("본문"), calls: &calls},
	})

	res, err := o.Extract(hwptest.BuildDocument("본문"), Options{})
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if res.Text != "본문" {
		t.Errorf("Text = %q", res.Text)
	}
	if want := []string{"good"}; !equalStrings(calls, want) {
		t.Errorf("calls = %q, want %q", calls, want)
	}
}

func TestOrchestratorExhausted(t *testing.T) {
	o := NewOrchestrator([]Strategy{
		stubStrategy{name: "failing", can: true, err: errors.New("broken")},
		stubStrategy{name: "empty", can: true, res: &ParseResult{}},
	})

	_, err := o.Extract(hwptest.BuildDocument("본문"), Options{})
	if !errors.Is(err, ErrAllStrategiesExhausted) {
		t.Errorf("Extract() error = %v, want %v", err, ErrAllStrategiesExhausted)
	}
}

func TestOrchestratorRejectsNonContainer(t *testing.T) {
	var calls []string
	o := NewOrchestrator([]Strategy{
		stubStrategy{name: "never", can: true, res: textResult("텍스트"), calls: &calls},
	})

	_, err := o.Extract([]byte("not a compound file at all"), Options{})
	if !errors.Is(err, cfb.ErrFormat) {
		t.Errorf("Extract() error = %v, want %v", err, cfb.ErrFormat)
	}
	if len(calls) != 0 {
		t.Errorf("calls = %q, want none", calls)
	}
}

func TestOrchestratorLogsProgress(t *testing.T) {
	log := &recordingLogger{}
	o := NewOrchestrator([]Strategy{
		stubStrategy{name: "failing", can: true, err: errors.New("broken")},
		stubStrategy{name: "good", can: true, res: textResult("본문 텍스트")},
	})

	if _, err := o.Extract(hwptest.BuildDocument("본문"), Options{Logger: log}); err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	var failed, accepted bool
	for _, e := range log.events {
		if strings.Contains(e, `"failing" failed`) {
			failed = true
		}
		if strings.Contains(e, `"good" accepted`) {
			accepted = true
		}
	}
	if !failed || !accepted {
		t.Errorf("events = %q, want a failure and an acceptance entry", log.events)
	}
}

func TestOrchestratorEndToEnd(t *testing.T) {
	o := NewOrchestrator(DefaultStrategies())
	res, err := o.Extract(buildRichDocument(t), Options{})
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	if res.Method != "direct body-stream decode" {
		t.Errorf("Method = %q", res.Method)
	}
	if res.Metadata.Title != "시험 문서" {
		t.Errorf("Title = %q", res.Metadata.Title)
	}
	if len(res.Tables) != 1 {
		t.Errorf("len(Tables) = %d, want 1", len(res.Tables))
	}
	if res.Text == "" {
		t.Error("Text is empty")
	}
}

func TestOrchestratorFallsBackToSegmentScan(t *testing.T) {
	// Broken record framing starves the two record-based strategies; the
	// segment scan is the first to produce text.
	o := NewOrchestrator(DefaultStrategies())
	res, err := o.Extract(buildBrokenFramingDocument(t), Options{})
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if res.Method != "segment text scan" {
		t.Errorf("Method = %q, want %q", res.Method, "segment text scan")
	}
	if res.Text != "복구된 본문 텍스트" {
		t.Errorf("Text = %q", res.Text)
	}
}

func TestOrchestratorDistributionFallsToPreview(t *testing.T) {
	// Distribution documents obfuscate their body streams, so every
	// record-based strategy refuses them and the preview is all that is
	// left.
	data := hwptest.BuildContainer(map[string][]byte{
		"FileHeader":        hwptest.FileHeaderFlags(0x5),
		"BodyText/Section0": {0xDE, 0xAD, 0xBE, 0xEF},
		"PrvText":           hwptest.Utf16LE("배포용 문서 미리보기"),
	})

	o := NewOrchestrator(DefaultStrategies())
	res, err := o.Extract(data, Options{})
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if res.Method != "preview text" {
		t.Errorf("Method = %q, want %q", res.Method, "preview text")
	}
	if res.Text != "배포용 문서 미리보기" {
		t.Errorf("Text = %q", res.Text)
	}
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
