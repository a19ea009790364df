package ingestion

import (
	"testing"

	"github.com/carelens-ai/platform/pkg/classifier"
	"github.com/carelens-ai/platform/pkg/taxonomy"
)

func testService(t *testing.T) *Service {
	t.Helper()
	tax, err := taxonomy.Load("")
	if err != nil {
		t.Fatalf("loading default taxonomy: %v", err)
	}
	return &Service{
		classifier: classifier.New(tax),
		noteFields: []string{"note_text", "note"},
	}
}

func TestMergeFlagsAddsCategories(t *testing.T) {
	svc := testService(t)

	row := map[string]interface{}{
		"note_text":       "patient reports no stable housing and lost job last month",
		"date_of_service": "2024-01-02",
	}
	svc.mergeFlags(row)

	if row["Housing Instability"] != classifier.FlagYes {
		t.Errorf("housing flag = %v, want %q", row["Housing Instability"], classifier.FlagYes)
	}
	if row["Employment"] != classifier.FlagYes {
		t.Errorf("employment flag = %v, want %q", row["Employment"], classifier.FlagYes)
	}
}

func TestMergeFlagsDoesNotOverwrite(t *testing.T) {
	svc := testService(t)

	row := map[string]interface{}{
		"note":                "patient is homeless",
		"Homelessness":        "No",
		"unrelated_era_field": 7,
	}
	svc.mergeFlags(row)

	if row["Homelessness"] != "No" {
		t.Errorf("existing field overwritten: %v", row["Homelessness"])
	}
}

func TestMergeFlagsWithoutNoteLeavesRowAlone(t *testing.T) {
	svc := testService(t)

	row := map[string]interface{}{"segment": "Transportation"}
	svc.mergeFlags(row)

	if len(row) != 1 {
		t.Errorf("row grew without a note: %v", row)
	}
}

func TestNoteTextResolvesEraCasing(t *testing.T) {
	row := map[string]interface{}{"Note_Text": "patient is homeless"}
	if got := noteText(row, []string{"note_text"}); got != "patient is homeless" {
		t.Errorf("note text = %q", got)
	}

	if got := noteText(map[string]interface{}{"other": 1}, []string{"note_text"}); got != "" {
		t.Errorf("note text = %q, want empty", got)
	}
}

func TestClassifyNote(t *testing.T) {
	svc := testService(t)

	resp := svc.ClassifyNote("patient is homeless")
	if len(resp.Categories) == 0 {
		t.Fatal("expected at least one category")
	}
	for _, category := range resp.Categories {
		if resp.Flags[category] != classifier.FlagYes {
			t.Errorf("flag for %q = %q, want %q", category, resp.Flags[category], classifier.FlagYes)
		}
	}
	if len(resp.Flags) != len(resp.Categories) {
		t.Errorf("flags = %v, categories = %v, want aligned", resp.Flags, resp.Categories)
	}
}
