package text

import "testing"

// TestScriptString tests the ratio-key mapping
func TestScriptString(t *testing.T) {
	tests := []struct {
		script Script
		want   string
	}{
		{Hangul, "ko"},
		{Latin, "en"},
		{Han, "han"},
		{Kana, "ja"},
		{Other, "other"},
	}

	for _, tt := range tests {
		if got := tt.script.String(); got != tt.want {
			t.Errorf("Script(%d).String() = %q, want %q", tt.script, got, tt.want)
		}
	}
}

// TestClassifyRune tests per-script rune classification
func TestClassifyRune(t *testing.T) {
	tests := []struct {
		name string
		r    rune
		want Script
	}{
		{"hangul syllable", '한', Hangul},
		{"hangul jamo", 0x1100, Hangul},
		{"compat jamo", 'ㅎ', Hangul},
		{"uppercase", 'Q', Latin},
		{"lowercase", 'q', Latin},
		{"ideograph", '法', Han},
		{"hiragana", 'の', Kana},
		{"katakana", 'ノ', Kana},
		{"digit", '7', Other},
		{"punctuation", '!', Other},
		{"cyrillic", 'Ж', Other},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyRune(tt.r); got != tt.want {
				t.Errorf("ClassifyRune(%q) = %v, want %v", tt.r, got, tt.want)
			}
		})
	}
}

// TestScriptRatios tests ratio aggregation over mixed text
func TestScriptRatios(t *testing.T) {
	tests := []struct {
		name string
		text string
		want map[string]float64
	}{
		{
			name: "pure korean",
			text: "안녕하세요",
			want: map[string]float64{"ko": 1, "en": 0, "han": 0, "ja": 0, "other": 0},
		},
		{
			name: "pure english",
			text: "hello",
			want: map[string]float64{"ko": 0, "en": 1, "han": 0, "ja": 0, "other": 0},
		},
		{
			name: "half korean half english",
			text: "안녕하세요 hello",
			want: map[string]float64{"ko": 0.5, "en": 0.5, "han": 0, "ja": 0, "other": 0},
		},
		{
			name: "whitespace ignored",
			text: "  한\n글  ",
			want: map[string]float64{"ko": 1, "en": 0, "han": 0, "ja": 0, "other": 0},
		},
		{
			name: "digits are other",
			text: "1234",
			want: map[string]float64{"ko": 0, "en": 0, "han": 0, "ja": 0, "other": 1},
		},
		{
			name: "empty",
			text: "",
			want: map[string]float64{"ko": 0, "en": 0, "han": 0, "ja": 0, "other": 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ScriptRatios(tt.text)
			if len(got) != len(tt.want) {
				t.Fatalf("ScriptRatios returned %d keys, want %d", len(got), len(tt.want))
			}
			for key, want := range tt.want {
				gotVal, ok := got[key]
				if !ok {
					t.Errorf("missing key %q", key)
					continue
				}
				if !almostEqual(gotVal, want) {
					t.Errorf("ratio[%q] = %v, want %v", key, gotVal, want)
				}
			}
		})
	}
}

// TestDominantLanguage tests the language hint thresholds
func TestDominantLanguage(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"korean document", "대한민국의 주권은 국민에게 있다", "ko"},
		{"english document", "All power comes from the people", "en"},
		{"even mix defaults korean", "안녕하세요 hello", "ko"},
		{"numbers only", "123 456 789", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DominantLanguage(tt.text); got != tt.want {
				t.Errorf("DominantLanguage(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}
