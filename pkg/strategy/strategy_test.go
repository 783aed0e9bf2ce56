package strategy

import (
	"testing"

	"github.com/pario-ai/ragchat/pkg/models"
)

func TestFixed(t *testing.T) {
	if got := (Fixed{}).Select("anything"); got != models.StrategyHybrid {
		t.Errorf("zero Fixed should select hybrid, got %s", got)
	}
	if got := (Fixed{Strategy: models.StrategySemantic}).Select("x"); got != models.StrategySemantic {
		t.Errorf("expected semantic, got %s", got)
	}
}

func TestKeywordSelect(t *testing.T) {
	k := NewKeyword()
	tests := []struct {
		question string
		want     models.SearchStrategy
	}{
		{"Jam buka?", models.StrategyQuick},
		{"Bagaimana langkah-langkah untuk mengisi KRS semester ini?", models.StrategyAcademic},
		{"Bagaimana prosedur untuk legalisir ijazah di BAAK?", models.StrategyAdministrative},
		{"Di mana lokasi perpustakaan pusat Universitas Gunadarma?", models.StrategyFacility},
		{"What is the capital of Indonesia today?", models.StrategyHybrid},
		{"Apa itu? Kenapa begitu? Bagaimana bisa terjadi hal seperti ini?", models.StrategySmart},
	}
	for _, tt := range tests {
		if got := k.Select(tt.question); got != tt.want {
			t.Errorf("Select(%q) = %s, want %s", tt.question, got, tt.want)
		}
	}
}

func TestKeywordWordBoundaries(t *testing.T) {
	if containsWord("kolaborasi tim riset", "lab") {
		t.Error("lab should not match inside kolaborasi")
	}
	if !containsWord("jadwal lab komputer", "lab") {
		t.Error("expected lab to match")
	}
	if !containsWord("akses wi-fi kampus", "wi-fi") {
		t.Error("expected wi-fi to match")
	}
}

func TestKeywordFallback(t *testing.T) {
	k := &Keyword{Fallback: models.StrategySemantic}
	if got := k.Select("tell me something about this place please"); got != models.StrategySemantic {
		t.Errorf("expected semantic fallback, got %s", got)
	}
}

func TestNew(t *testing.T) {
	if _, ok := New(models.StrategyHybrid, false).(Fixed); !ok {
		t.Error("expected Fixed when auto-detect is off")
	}
	k, ok := New(models.StrategySemantic, true).(*Keyword)
	if !ok {
		t.Fatal("expected Keyword when auto-detect is on")
	}
	if k.Fallback != models.StrategySemantic {
		t.Errorf("expected semantic fallback, got %s", k.Fallback)
	}
}
