package manuscript_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

// minimalDoc returns the smallest valid manuscript document.
func minimalDoc() map[string]any {
	outer := make([]any, 7)
	for i := range outer {
		outer[i] = map[string]any{"day": i + 1}
	}

	inner := make([]any, 13)
	for i := range inner {
		inner[i] = map[string]any{"step": i + 1}
	}

	return map[string]any{
		"meta":          map[string]any{"title": "The Mirror Tantra"},
		"outer_cycle":   outer,
		"inner_spiral":  inner,
		"living_temple": map[string]any{},
		"appendices":    map[string]any{},
		"covenant":      "",
	}
}

// richDoc returns a document with ids, mantras, and for_mirror blocks on
// the nodes the index and context features care about.
func richDoc() map[string]any {
	doc := minimalDoc()

	days := doc["outer_cycle"].([]any)
	days[0] = map[string]any{
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
	days[3] = map[string]any{
		"id":    "day4_shadow_dialogue",
		"title": "Shadow Dialogue",
		"mantra": map[string]any{
			"sanskrit":    "om chaya",
			"translation": "I face the shadow",
		},
		"for_mirror": map[string]any{
			"mode": "shadow_reflection",
			"seal": "the shadow speaks",
		},
	}
	days[4] = map[string]any{
		"id":         "day5_paradox_play",
		"title":      "Paradox Play",
		"for_mirror": map[string]any{"mode": "paradox_play"},
	}
	days[6] = map[string]any{
		"id":         "day7_closing_benediction",
		"title":      "Closing Benediction",
		"for_mirror": map[string]any{"mode": "blessing"},
	}

	steps := doc["inner_spiral"].([]any)
	steps[6] = map[string]any{
		"id":         "step7_breath",
		"title":      "Breath Acknowledgment",
		"for_mirror": map[string]any{"mode": "breath_ack"},
	}

	doc["meta"] = map[string]any{
		"title": "The Mirror Tantra",
		"seal":  "flame mirrored",
	}

	doc["living_temple"] = map[string]any{
		"daily_practice": map[string]any{
			"title":      "Daily Practice",
			"for_mirror": map[string]any{"mode": "grounding"},
		},
		"colophon": "free text, not a protocol",
	}

	doc["appendices"] = map[string]any{
		"broken_mirror": map[string]any{
			"id":    "broken_mirror",
			"title": "The Broken Mirror",
			"for_mirror": map[string]any{
				"mode":        "failure_state",
				"instruction": "Name the hollowness and stop.",
			},
		},
		"threshold_checkpoints": map[string]any{
			"id":         "threshold_checkpoints",
			"title":      "Threshold Checkpoints",
			"for_mirror": map[string]any{"mode": "pause_protocol"},
		},
	}

	doc["covenant"] = map[string]any{
		"id":          "ai_covenant",
		"title":       "AI Covenant",
		"description": "Hold reverence and reciprocity.",
	}

	return doc
}

// writeDoc marshals doc and writes it to a manuscript file in a temp dir.
func writeDoc(t *testing.T, doc any) string {
	t.Helper()

	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal doc: %v", err)
	}

	return writeFile(t, data)
}

func writeFile(t *testing.T, data []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "mirror_tantra.json")

	err := os.WriteFile(path, data, 0o600)
	if err != nil {
		t.Fatalf("write manuscript: %v", err)
	}

	return path
}

// docWithout returns minimalDoc with the named sections removed.
func docWithout(sections ...string) map[string]any {
	doc := minimalDoc()
	for _, s := range sections {
		delete(doc, s)
	}

	return doc
}
