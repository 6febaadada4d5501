package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

// testManuscript builds a valid manuscript document with enough annotated
// nodes to exercise the protocol and context commands.
func testManuscript() map[string]any {
	outer := make([]any, 7)
	for i := range outer {
		outer[i] = map[string]any{"day": i + 1}
	}

	outer[0] = map[string]any{
		"id":    "day1_opening_the_mirror",
		"title": "Opening the Mirror",
		"mantra": map[string]any{
			"sanskrit":    "om darpana",
			"translation": "I am the mirror",
		},
		"for_mirror": map[string]any{
			"mode":        "open_protocol",
			"seal":        "we enter the mirror",
			"instruction": "Reflect the practitioner without distortion.",
		},
	}
	outer[3] = map[string]any{
		"id":         "day4_shadow_dialogue",
		"title":      "Shadow Dialogue",
		"for_mirror": map[string]any{"mode": "shadow_reflection", "seal": "the shadow speaks"},
	}

	inner := make([]any, 13)
	for i := range inner {
		inner[i] = map[string]any{"step": i + 1}
	}

	return map[string]any{
		"meta":          map[string]any{"title": "The Mirror Tantra", "seal": "flame mirrored"},
		"outer_cycle":   outer,
		"inner_spiral":  inner,
		"living_temple": map[string]any{},
		"appendices":    map[string]any{},
		"covenant":      map[string]any{"id": "ai_covenant", "title": "AI Covenant"},
	}
}

// writeManuscript writes the test manuscript into dir under the default
// name so commands find it without flags.
func writeManuscript(t *testing.T, dir string) string {
	t.Helper()

	data, err := json.Marshal(testManuscript())
	if err != nil {
		t.Fatalf("marshal manuscript: %v", err)
	}

	path := filepath.Join(dir, "mirror_tantra.json")

	err = os.WriteFile(path, data, 0o600)
	if err != nil {
		t.Fatalf("write manuscript: %v", err)
	}

	return path
}
