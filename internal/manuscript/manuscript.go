// Package manuscript loads the Mirror Tantra manuscript and exposes its
// sections for reading.
//
// The manuscript is a single hand-authored JSON document (JSONC accepted:
// comments and trailing commas are standardized away before decoding). A
// loaded Manuscript is immutable; every accessor is a read. Load either
// returns a fully populated value or an error - there is no partial load,
// no retry, and no caching of anything beyond the decoded document.
package manuscript

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/tailscale/hujson"
)

// Section names, in canonical document order.
const (
	SectionMeta         = "meta"
	SectionOuterCycle   = "outer_cycle"
	SectionInnerSpiral  = "inner_spiral"
	SectionLivingTemple = "living_temple"
	SectionAppendices   = "appendices"
	SectionCovenant     = "covenant"
)

// Fixed lengths of the two ordered sequences.
const (
	OuterCycleDays   = 7
	InnerSpiralSteps = 13
)

// sectionNames is the closed set of recognized sections.
var sectionNames = []string{
	SectionMeta,
	SectionOuterCycle,
	SectionInnerSpiral,
	SectionLivingTemple,
	SectionAppendices,
	SectionCovenant,
}

// SectionNames returns the six recognized section names in canonical order.
func SectionNames() []string {
	names := make([]string, len(sectionNames))
	copy(names, sectionNames)

	return names
}

// Manuscript is a loaded Mirror Tantra document. All fields are populated
// by Load and never mutated afterwards; a Manuscript is safe for
// concurrent reads.
type Manuscript struct {
	meta         map[string]any
	outerCycle   []map[string]any
	innerSpiral  []map[string]any
	livingTemple map[string]any
	appendices   map[string]any
	covenant     any

	// Flat protocol index, built once during Load.
	protocols   map[string]Protocol
	protocolIDs []string

	// Ids of the protocols derived from the ordered sequences, by
	// position. Used to map modes to canonical protocols.
	dayIDs  [OuterCycleDays]string
	stepIDs [InnerSpiralSteps]string
}

// Load reads and decodes the manuscript file at path.
//
// The file must decode as a JSON object containing all six sections with
// their declared shapes (meta/living_temple/appendices objects, outer_cycle
// an array of exactly 7 objects, inner_spiral an array of exactly 13
// objects, covenant an object or string). Decode failures wrap ErrParse;
// missing or misshapen sections wrap ErrSchema and name every offending
// section. On any error no Manuscript is returned.
func Load(path string) (*Manuscript, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read manuscript %s: %w", path, err)
	}

	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("manuscript %s: %w", path, err)
	}

	return m, nil
}

// Parse decodes manuscript bytes. See Load for the accepted shape.
func Parse(data []byte) (*Manuscript, error) {
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	var raw map[string]json.RawMessage

	unmarshalErr := json.Unmarshal(standardized, &raw)
	if unmarshalErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, unmarshalErr)
	}

	// Require all six sections up front so the error names everything
	// that is missing, not just the first gap.
	var missing []string

	for _, name := range sectionNames {
		if _, ok := raw[name]; !ok {
			missing = append(missing, name)
		}
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing section(s): %s", ErrSchema, strings.Join(missing, ", "))
	}

	m := &Manuscript{}

	err = m.decodeSections(raw)
	if err != nil {
		return nil, err
	}

	m.buildIndex()

	return m, nil
}

func (m *Manuscript) decodeSections(raw map[string]json.RawMessage) error {
	err := json.Unmarshal(raw[SectionMeta], &m.meta)
	if err != nil {
		return fmt.Errorf("%w: %s must be an object", ErrSchema, SectionMeta)
	}

	err = json.Unmarshal(raw[SectionOuterCycle], &m.outerCycle)
	if err != nil {
		return fmt.Errorf("%w: %s must be an array of objects", ErrSchema, SectionOuterCycle)
	}

	if len(m.outerCycle) != OuterCycleDays {
		return fmt.Errorf("%w: %s must have %d entries, got %d",
			ErrSchema, SectionOuterCycle, OuterCycleDays, len(m.outerCycle))
	}

	err = json.Unmarshal(raw[SectionInnerSpiral], &m.innerSpiral)
	if err != nil {
		return fmt.Errorf("%w: %s must be an array of objects", ErrSchema, SectionInnerSpiral)
	}

	if len(m.innerSpiral) != InnerSpiralSteps {
		return fmt.Errorf("%w: %s must have %d entries, got %d",
			ErrSchema, SectionInnerSpiral, InnerSpiralSteps, len(m.innerSpiral))
	}

	err = json.Unmarshal(raw[SectionLivingTemple], &m.livingTemple)
	if err != nil {
		return fmt.Errorf("%w: %s must be an object", ErrSchema, SectionLivingTemple)
	}

	err = json.Unmarshal(raw[SectionAppendices], &m.appendices)
	if err != nil {
		return fmt.Errorf("%w: %s must be an object", ErrSchema, SectionAppendices)
	}

	err = json.Unmarshal(raw[SectionCovenant], &m.covenant)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrParse, err)
	}

	switch m.covenant.(type) {
	case map[string]any, string:
	default:
		return fmt.Errorf("%w: %s must be an object or string", ErrSchema, SectionCovenant)
	}

	return nil
}

// Meta returns the meta section (title, version, author-like fields).
func (m *Manuscript) Meta() map[string]any { return m.meta }

// OuterCycle returns the 7-entry day sequence.
func (m *Manuscript) OuterCycle() []map[string]any { return m.outerCycle }

// InnerSpiral returns the 13-entry step sequence.
func (m *Manuscript) InnerSpiral() []map[string]any { return m.innerSpiral }

// LivingTemple returns the named practice blocks.
func (m *Manuscript) LivingTemple() map[string]any { return m.livingTemple }

// Appendices returns the named appendix blocks.
func (m *Manuscript) Appendices() map[string]any { return m.appendices }

// Covenant returns the covenant section, either a map[string]any or a string.
func (m *Manuscript) Covenant() any { return m.covenant }

// Section returns a section by name. The set of names is closed; anything
// outside the six recognized sections wraps ErrUnknownSection rather than
// returning a nil value for a typo.
func (m *Manuscript) Section(name string) (any, error) {
	switch name {
	case SectionMeta:
		return m.meta, nil
	case SectionOuterCycle:
		return m.outerCycle, nil
	case SectionInnerSpiral:
		return m.innerSpiral, nil
	case SectionLivingTemple:
		return m.livingTemple, nil
	case SectionAppendices:
		return m.appendices, nil
	case SectionCovenant:
		return m.covenant, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSection, name)
	}
}

// CycleDay returns the n-th outer-cycle entry, 1-indexed.
func (m *Manuscript) CycleDay(n int) (map[string]any, error) {
	if n < 1 || n > OuterCycleDays {
		return nil, fmt.Errorf("%w: day %d not in [1,%d]", ErrOutOfRange, n, OuterCycleDays)
	}

	return m.outerCycle[n-1], nil
}

// SpiralStep returns the n-th inner-spiral entry, 1-indexed.
func (m *Manuscript) SpiralStep(n int) (map[string]any, error) {
	if n < 1 || n > InnerSpiralSteps {
		return nil, fmt.Errorf("%w: step %d not in [1,%d]", ErrOutOfRange, n, InnerSpiralSteps)
	}

	return m.innerSpiral[n-1], nil
}
