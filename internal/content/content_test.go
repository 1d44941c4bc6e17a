package content

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/palabra-app/palabra/internal/catalog"
)

// writeContentDir lays out a small content directory with one module per
// convention worth exercising.
func writeContentDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	files := map[string]string{
		"catalog.json": `[
			{"id": "greetings", "title": "Greetings", "mode": "flashcard",
			 "levels": ["a1"], "unit": 1, "prerequisites": [], "dataPath": "greetings.json"},
			{"id": "greetings-quiz", "title": "Greetings Quiz", "mode": "quiz",
			 "levels": ["a1"], "unit": 1, "prerequisites": ["greetings"], "dataPath": "quiz.json"}
		]`,
		// Legacy en/es convention, with one exact duplicate.
		"greetings.json": `[
			{"en": "hello", "es": "hola"},
			{"en": "goodbye", "es": "adios"},
			{"en": "hello", "es": "hola"}
		]`,
		"quiz.json": `[
			{"question": "hola means?", "options": ["hello", "dog"], "correct": "hello"}
		]`,
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return dir
}

func TestValidate_CleanDirectory(t *testing.T) {
	dir := writeContentDir(t)

	report, err := Validate(dir)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if !report.OK() {
		t.Errorf("expected clean report, got issues: %v", report.Issues)
	}
	if report.FilesChecked != 3 {
		t.Errorf("files checked = %d, want 3", report.FilesChecked)
	}
}

func TestValidate_SchemaViolation(t *testing.T) {
	dir := writeContentDir(t)

	// A quiz record missing its options must fail the quiz schema.
	bad := `[{"question": "hola means?", "correct": "hello"}]`
	if err := os.WriteFile(filepath.Join(dir, "quiz.json"), []byte(bad), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	report, err := Validate(dir)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if report.OK() {
		t.Fatal("expected issues for quiz file without options")
	}
	found := false
	for _, issue := range report.Issues {
		if issue.Path == "quiz.json" {
			found = true
		}
	}
	if !found {
		t.Errorf("no issue attributed to quiz.json: %v", report.Issues)
	}
}

func TestValidate_DanglingPrerequisite(t *testing.T) {
	dir := writeContentDir(t)

	cat := `[
		{"id": "a", "title": "A", "mode": "flashcard", "levels": ["a1"],
		 "unit": 1, "prerequisites": ["missing"], "dataPath": "greetings.json"}
	]`
	if err := os.WriteFile(filepath.Join(dir, "catalog.json"), []byte(cat), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	report, err := Validate(dir)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if report.OK() {
		t.Fatal("expected an issue for the dangling prerequisite")
	}
}

func TestFix_NormalizesAndBacksUp(t *testing.T) {
	dir := writeContentDir(t)

	res, err := Fix(dir)
	if err != nil {
		t.Fatalf("fix: %v", err)
	}
	if res.FilesChanged == 0 {
		t.Fatal("expected the legacy en/es file to be rewritten")
	}
	if res.DuplicatesDropped != 1 {
		t.Errorf("duplicates dropped = %d, want 1", res.DuplicatesDropped)
	}

	// Original preserved next to the rewrite.
	if _, err := os.Stat(filepath.Join(dir, "greetings.json.backup")); err != nil {
		t.Errorf("backup file missing: %v", err)
	}

	// The rewrite is canonical: front/back, duplicate gone.
	raw, err := os.ReadFile(filepath.Join(dir, "greetings.json"))
	if err != nil {
		t.Fatalf("read fixed file: %v", err)
	}
	var cards []catalog.Card
	if err := json.Unmarshal(raw, &cards); err != nil {
		t.Fatalf("decode fixed file: %v", err)
	}
	if len(cards) != 2 {
		t.Fatalf("got %d cards, want 2", len(cards))
	}
	if cards[0].Front != "hello" || cards[0].Back != "hola" {
		t.Errorf("first card = %+v", cards[0])
	}
	if strings.Contains(string(raw), `"en"`) {
		t.Error("legacy field name survived the rewrite")
	}
}

func TestFix_CanonicalFileUntouched(t *testing.T) {
	dir := writeContentDir(t)

	if _, err := Fix(dir); err != nil {
		t.Fatalf("first fix: %v", err)
	}
	res, err := Fix(dir)
	if err != nil {
		t.Fatalf("second fix: %v", err)
	}
	if res.FilesChanged != 0 {
		t.Errorf("second fix changed %d files, want 0", res.FilesChanged)
	}
}

func TestOptimize_StableFormatting(t *testing.T) {
	dir := writeContentDir(t)

	res, err := Optimize(dir)
	if err != nil {
		t.Fatalf("optimize: %v", err)
	}
	if !res.Report.OK() {
		t.Fatalf("unexpected issues: %v", res.Report.Issues)
	}
	if res.FilesChanged == 0 {
		t.Error("expected the compact test files to be reformatted")
	}

	// Field names are preserved: optimize never rewrites content.
	raw, err := os.ReadFile(filepath.Join(dir, "greetings.json"))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(raw), `"en"`) {
		t.Error("optimize must keep legacy field names")
	}

	// Second pass is a no-op.
	res, err = Optimize(dir)
	if err != nil {
		t.Fatalf("second optimize: %v", err)
	}
	if res.FilesChanged != 0 {
		t.Errorf("second optimize changed %d files, want 0", res.FilesChanged)
	}
}

func TestStatus_CountsAndProblems(t *testing.T) {
	dir := writeContentDir(t)

	// Break one data file.
	if err := os.WriteFile(filepath.Join(dir, "quiz.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	res, err := Status(dir)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if len(res.Modules) != 2 {
		t.Fatalf("got %d modules, want 2", len(res.Modules))
	}
	if res.Modules[0].ItemCount != 3 {
		t.Errorf("greetings item count = %d, want 3", res.Modules[0].ItemCount)
	}
	if res.Modules[1].Problem == "" {
		t.Error("broken quiz file should report a problem")
	}
	if res.Problems() != 1 {
		t.Errorf("problems = %d, want 1", res.Problems())
	}
}

func TestImport_CSV(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "words.csv")
	content := "front,back,example\nhola,hello,Hola amigo\nadios,goodbye,\n,missing front,\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}

	res, err := Import(path, DefaultImportConfig())
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if res.Imported != 2 || res.Skipped != 1 {
		t.Errorf("imported/skipped = %d/%d, want 2/1", res.Imported, res.Skipped)
	}
	if res.Cards[0].Front != "hola" || res.Cards[0].Example != "Hola amigo" {
		t.Errorf("first card = %+v", res.Cards[0])
	}
}

func TestImport_XLSX(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "words.xlsx")

	f := excelize.NewFile()
	rows := [][]string{
		{"front", "back", "example"},
		{"perro", "dog", "El perro ladra"},
		{"gato", "cat", ""},
	}
	for i, row := range rows {
		for j, val := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				t.Fatalf("cell name: %v", err)
			}
			if err := f.SetCellValue("Sheet1", cell, val); err != nil {
				t.Fatalf("set cell: %v", err)
			}
		}
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save xlsx: %v", err)
	}

	res, err := Import(path, DefaultImportConfig())
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if res.Imported != 2 {
		t.Errorf("imported = %d, want 2", res.Imported)
	}
	if res.Cards[0].Front != "perro" || res.Cards[0].Back != "dog" {
		t.Errorf("first card = %+v", res.Cards[0])
	}
}

func TestImport_UnsupportedExtension(t *testing.T) {
	if _, err := Import("words.txt", DefaultImportConfig()); err == nil {
		t.Fatal("expected an error for unsupported file type")
	}
}

func TestWriteCards(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.json")

	cards := []catalog.Card{{Front: "sol", Back: "sun"}}
	if err := WriteCards(path, cards); err != nil {
		t.Fatalf("write cards: %v", err)
	}

	data, err := catalog.NormalizeData(catalog.ModeFlashcard, mustRead(t, path))
	if err != nil {
		t.Fatalf("normalize written file: %v", err)
	}
	if len(data.Cards) != 1 || data.Cards[0].Front != "sol" {
		t.Errorf("round-tripped cards = %+v", data.Cards)
	}
}

func mustRead(t *testing.T, path string) []byte {
	t.Helper()
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return raw
}
