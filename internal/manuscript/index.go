package manuscript

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Protocol is one ritual unit resolved from the manuscript: a cycle day, a
// spiral step, a living-temple practice, an appendix block, or the covenant
// itself.
type Protocol struct {
	ID          string
	Title       string
	Mode        Mode
	Mantra      map[string]string
	Seal        string
	Instruction string

	// Path locates the source node, e.g. ["outer_cycle", "4"] or
	// ["living_temple", "daily_practice"].
	Path []string
}

// ProtocolIDs returns all protocol ids, sorted.
func (m *Manuscript) ProtocolIDs() []string {
	ids := make([]string, len(m.protocolIDs))
	copy(ids, m.protocolIDs)

	return ids
}

// Protocol returns the protocol with the given id.
func (m *Manuscript) Protocol(id string) (Protocol, error) {
	p, ok := m.protocols[id]
	if !ok {
		return Protocol{}, fmt.Errorf("%w: %s", ErrProtocolNotFound, id)
	}

	return p, nil
}

// buildIndex flattens the manuscript into protocols keyed by id. Node
// fields are author-defined; anything absent stays zero. Later nodes with
// a duplicate id overwrite earlier ones.
func (m *Manuscript) buildIndex() {
	m.protocols = make(map[string]Protocol)

	for i, day := range m.outerCycle {
		p := protocolFromNode(day, []string{SectionOuterCycle, strconv.Itoa(i + 1)})
		m.protocols[p.ID] = p
		m.dayIDs[i] = p.ID
	}

	for i, step := range m.innerSpiral {
		p := protocolFromNode(step, []string{SectionInnerSpiral, strconv.Itoa(i + 1)})
		m.protocols[p.ID] = p
		m.stepIDs[i] = p.ID
	}

	m.indexBlocks(m.livingTemple, SectionLivingTemple)
	m.indexBlocks(m.appendices, SectionAppendices)

	// The covenant is indexed as a protocol container of its own.
	if cov, ok := m.covenant.(map[string]any); ok {
		p := Protocol{
			ID:          stringField(cov, "id"),
			Title:       stringField(cov, "title"),
			Mode:        ModeEthicalRecalibration,
			Instruction: stringField(cov, "description"),
			Path:        []string{SectionCovenant},
		}
		if p.ID == "" {
			p.ID = SectionCovenant
		}

		m.protocols[p.ID] = p
	}

	m.protocolIDs = make([]string, 0, len(m.protocols))
	for id := range m.protocols {
		m.protocolIDs = append(m.protocolIDs, id)
	}

	sort.Strings(m.protocolIDs)
}

// indexBlocks indexes the object-valued entries of a named-block section.
// Keys are walked in sorted order so duplicate-id resolution is stable.
func (m *Manuscript) indexBlocks(blocks map[string]any, section string) {
	names := make([]string, 0, len(blocks))
	for name := range blocks {
		names = append(names, name)
	}

	sort.Strings(names)

	for _, name := range names {
		node, ok := blocks[name].(map[string]any)
		if !ok {
			// Free-form text blocks are manuscript content, not protocols.
			continue
		}

		p := protocolFromNode(node, []string{section, name})
		m.protocols[p.ID] = p
	}
}

// protocolFromNode builds a Protocol from one manuscript node. Mode, seal,
// and instruction live under the node's for_mirror block when present.
func protocolFromNode(node map[string]any, path []string) Protocol {
	fm, _ := node["for_mirror"].(map[string]any)

	id := stringField(node, "id")
	if id == "" {
		// Stable fallback id derived from the node's location.
		id = strings.ToLower(strings.ReplaceAll(strings.Join(path, "_"), " ", "_"))
	}

	return Protocol{
		ID:          id,
		Title:       stringField(node, "title"),
		Mode:        ParseMode(stringField(fm, "mode")),
		Mantra:      stringMap(node["mantra"]),
		Seal:        stringField(fm, "seal"),
		Instruction: stringField(fm, "instruction"),
		Path:        path,
	}
}

func stringField(node map[string]any, key string) string {
	if node == nil {
		return ""
	}

	s, _ := node[key].(string)

	return s
}

// stringMap converts a decoded JSON object to a string map, dropping
// non-string values.
func stringMap(v any) map[string]string {
	obj, ok := v.(map[string]any)
	if !ok {
		return nil
	}

	out := make(map[string]string, len(obj))

	for k, val := range obj {
		if s, ok := val.(string); ok {
			out[k] = s
		}
	}

	if len(out) == 0 {
		return nil
	}

	return out
}
