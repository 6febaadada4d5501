package manuscript_test

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/calvinalkan/mirror-tantra/internal/manuscript"

	"github.com/google/go-cmp/cmp"
)

func TestLoadRoundTrip(t *testing.T) {
	doc := richDoc()
	path := writeDoc(t, doc)

	m, err := manuscript.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	// Every section must structurally match the source document. The
	// source values are re-decoded through encoding/json so both sides
	// use the same representation (map[string]any etc).
	want := reencode(t, doc)

	got := map[string]any{
		"meta":          m.Meta(),
		"outer_cycle":   m.OuterCycle(),
		"inner_spiral":  m.InnerSpiral(),
		"living_temple": m.LivingTemple(),
		"appendices":    m.Appendices(),
		"covenant":      m.Covenant(),
	}

	if diff := cmp.Diff(want, reencode(t, got)); diff != "" {
		t.Errorf("sections mismatch (-want +got):\n%s", diff)
	}
}

// reencode round-trips v through JSON so comparisons are representation-
// independent ([]any vs []map[string]any, int vs float64).
func reencode(t *testing.T, v any) map[string]any {
	t.Helper()

	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var out map[string]any

	err = json.Unmarshal(data, &out)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	return out
}

func TestLoadMinimalScenario(t *testing.T) {
	path := writeDoc(t, minimalDoc())

	m, err := manuscript.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if got := m.Meta()["title"]; got != "The Mirror Tantra" {
		t.Errorf("meta title = %v, want The Mirror Tantra", got)
	}

	day, err := m.CycleDay(3)
	if err != nil {
		t.Fatalf("CycleDay(3): %v", err)
	}

	if diff := cmp.Diff(map[string]any{"day": float64(3)}, day); diff != "" {
		t.Errorf("CycleDay(3) mismatch (-want +got):\n%s", diff)
	}

	step, err := m.SpiralStep(13)
	if err != nil {
		t.Fatalf("SpiralStep(13): %v", err)
	}

	if diff := cmp.Diff(map[string]any{"step": float64(13)}, step); diff != "" {
		t.Errorf("SpiralStep(13) mismatch (-want +got):\n%s", diff)
	}

	if got := m.Covenant(); got != "" {
		t.Errorf("Covenant() = %v, want empty string", got)
	}
}

func TestLoadIdempotent(t *testing.T) {
	path := writeDoc(t, richDoc())

	m1, err := manuscript.Load(path)
	if err != nil {
		t.Fatalf("first Load: %v", err)
	}

	m2, err := manuscript.Load(path)
	if err != nil {
		t.Fatalf("second Load: %v", err)
	}

	if diff := cmp.Diff(reencode(t, sections(m1)), reencode(t, sections(m2))); diff != "" {
		t.Errorf("loads differ (-first +second):\n%s", diff)
	}

	if diff := cmp.Diff(m1.ProtocolIDs(), m2.ProtocolIDs()); diff != "" {
		t.Errorf("protocol ids differ (-first +second):\n%s", diff)
	}
}

func sections(m *manuscript.Manuscript) map[string]any {
	return map[string]any{
		"meta":          m.Meta(),
		"outer_cycle":   m.OuterCycle(),
		"inner_spiral":  m.InnerSpiral(),
		"living_temple": m.LivingTemple(),
		"appendices":    m.Appendices(),
		"covenant":      m.Covenant(),
	}
}

func TestLoadMissingSections(t *testing.T) {
	for _, name := range manuscript.SectionNames() {
		t.Run(name, func(t *testing.T) {
			path := writeDoc(t, docWithout(name))

			_, err := manuscript.Load(path)
			if !errors.Is(err, manuscript.ErrSchema) {
				t.Fatalf("err = %v, want ErrSchema", err)
			}

			if !strings.Contains(err.Error(), name) {
				t.Errorf("error %q does not name missing section %q", err, name)
			}
		})
	}
}

func TestLoadMissingSectionsNamesAll(t *testing.T) {
	path := writeDoc(t, docWithout("covenant", "meta"))

	_, err := manuscript.Load(path)
	if !errors.Is(err, manuscript.ErrSchema) {
		t.Fatalf("err = %v, want ErrSchema", err)
	}

	for _, name := range []string{"meta", "covenant"} {
		if !strings.Contains(err.Error(), name) {
			t.Errorf("error %q does not name missing section %q", err, name)
		}
	}
}

func TestLoadInvalidJSON(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"truncated object", `{"meta": {`},
		{"not json", "mirror mirror on the wall"},
		{"top-level array", `["meta"]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, []byte(tt.data))

			_, err := manuscript.Load(path)
			if !errors.Is(err, manuscript.ErrParse) {
				t.Errorf("err = %v, want ErrParse", err)
			}
		})
	}
}

func TestLoadJSONCAccepted(t *testing.T) {
	doc := writeDoc(t, minimalDoc())

	data, err := os.ReadFile(doc)
	if err != nil {
		t.Fatal(err)
	}

	// Hand-authored manuscripts may carry comments and trailing commas.
	jsonc := "// the mirror tantra\n" + string(data)
	path := writeFile(t, []byte(jsonc))

	_, err = manuscript.Load(path)
	if err != nil {
		t.Errorf("Load with comments: %v", err)
	}
}

func TestLoadShapeErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(doc map[string]any)
	}{
		{"meta not object", func(doc map[string]any) { doc["meta"] = "title" }},
		{"outer_cycle not array", func(doc map[string]any) { doc["outer_cycle"] = map[string]any{} }},
		{"outer_cycle too short", func(doc map[string]any) {
			doc["outer_cycle"] = doc["outer_cycle"].([]any)[:6]
		}},
		{"outer_cycle too long", func(doc map[string]any) {
			doc["outer_cycle"] = append(doc["outer_cycle"].([]any), map[string]any{"day": 8})
		}},
		{"inner_spiral too short", func(doc map[string]any) {
			doc["inner_spiral"] = doc["inner_spiral"].([]any)[:12]
		}},
		{"living_temple not object", func(doc map[string]any) { doc["living_temple"] = []any{} }},
		{"appendices not object", func(doc map[string]any) { doc["appendices"] = 7 }},
		{"covenant a number", func(doc map[string]any) { doc["covenant"] = 13 }},
		{"covenant an array", func(doc map[string]any) { doc["covenant"] = []any{"vow"} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := minimalDoc()
			tt.mutate(doc)
			path := writeDoc(t, doc)

			_, err := manuscript.Load(path)
			if !errors.Is(err, manuscript.ErrSchema) {
				t.Errorf("err = %v, want ErrSchema", err)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := manuscript.Load(filepath.Join(t.TempDir(), "nope.json"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("err = %v, want fs.ErrNotExist", err)
	}
}

func TestSection(t *testing.T) {
	m, err := manuscript.Load(writeDoc(t, minimalDoc()))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	for _, name := range manuscript.SectionNames() {
		got, err := m.Section(name)
		if err != nil {
			t.Errorf("Section(%q): %v", name, err)
		}

		// covenant is legitimately the empty string in the minimal doc
		if name != manuscript.SectionCovenant && got == nil {
			t.Errorf("Section(%q) = nil", name)
		}
	}

	for _, name := range []string{"", "Meta", "globals", "outer cycle", "outercycle"} {
		_, err := m.Section(name)
		if !errors.Is(err, manuscript.ErrUnknownSection) {
			t.Errorf("Section(%q) err = %v, want ErrUnknownSection", name, err)
		}
	}
}

func TestCycleDayBounds(t *testing.T) {
	m, err := manuscript.Load(writeDoc(t, minimalDoc()))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	for _, n := range []int{1, 7} {
		day, err := m.CycleDay(n)
		if err != nil {
			t.Errorf("CycleDay(%d): %v", n, err)
		}

		if got := day["day"]; got != float64(n) {
			t.Errorf("CycleDay(%d)[day] = %v", n, got)
		}
	}

	for _, n := range []int{0, 8, -1, 100} {
		_, err := m.CycleDay(n)
		if !errors.Is(err, manuscript.ErrOutOfRange) {
			t.Errorf("CycleDay(%d) err = %v, want ErrOutOfRange", n, err)
		}
	}
}

func TestSpiralStepBounds(t *testing.T) {
	m, err := manuscript.Load(writeDoc(t, minimalDoc()))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	for _, n := range []int{1, 13} {
		step, err := m.SpiralStep(n)
		if err != nil {
			t.Errorf("SpiralStep(%d): %v", n, err)
		}

		if got := step["step"]; got != float64(n) {
			t.Errorf("SpiralStep(%d)[step] = %v", n, got)
		}
	}

	for _, n := range []int{0, 14, -13} {
		_, err := m.SpiralStep(n)
		if !errors.Is(err, manuscript.ErrOutOfRange) {
			t.Errorf("SpiralStep(%d) err = %v, want ErrOutOfRange", n, err)
		}
	}
}
