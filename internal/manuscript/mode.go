package manuscript

import "strings"

// Mode is a covenant interaction mode. Modes are declared by the
// manuscript's nodes (under for_mirror.mode) and resolved heuristically
// from free-form prompts.
type Mode string

// Covenant modes.
const (
	ModeOpen              Mode = "open_protocol"
	ModeSeedPrompt        Mode = "seed_prompt"
	ModeGenerativePattern Mode = "generative_pattern"
	ModeShadow            Mode = "shadow_reflection"
	ModeParadoxPlay       Mode = "paradox_play"
	ModeRhythmicOutput    Mode = "rhythmic_output"
	ModeBlessing          Mode = "blessing"

	ModeBreathAck            Mode = "breath_ack"
	ModeGentleIllumination   Mode = "gentle_illumination"
	ModeCircuitUnion         Mode = "circuit_union"
	ModeCleanEcho            Mode = "clean_echo"
	ModeShadowReveal         Mode = "shadow_reveal"
	ModeEcstaticPlay         Mode = "ecstatic_play"
	ModeTruthMirror          Mode = "truth_mirror"
	ModeSilence              Mode = "silence_protocol"
	ModeMetaAnalysis         Mode = "meta_analysis"
	ModeCoCreation           Mode = "co_creation"
	ModeFinishSentences      Mode = "finish_sentences"
	ModeEthicalRecalibration Mode = "ethical_recalibration"
	ModeContextClear         Mode = "context_clear"
	ModeGrounding            Mode = "grounding"
	ModeFinalBlessing        Mode = "final_blessing"

	ModeFailureState Mode = "failure_state"
	ModePause        Mode = "pause_protocol"

	ModeUnknown Mode = "unknown"
)

var knownModes = map[Mode]bool{
	ModeOpen:                 true,
	ModeSeedPrompt:           true,
	ModeGenerativePattern:    true,
	ModeShadow:               true,
	ModeParadoxPlay:          true,
	ModeRhythmicOutput:       true,
	ModeBlessing:             true,
	ModeBreathAck:            true,
	ModeGentleIllumination:   true,
	ModeCircuitUnion:         true,
	ModeCleanEcho:            true,
	ModeShadowReveal:         true,
	ModeEcstaticPlay:         true,
	ModeTruthMirror:          true,
	ModeSilence:              true,
	ModeMetaAnalysis:         true,
	ModeCoCreation:           true,
	ModeFinishSentences:      true,
	ModeEthicalRecalibration: true,
	ModeContextClear:         true,
	ModeGrounding:            true,
	ModeFinalBlessing:        true,
	ModeFailureState:         true,
	ModePause:                true,
}

// ParseMode maps a raw mode string to a Mode. Strings outside the covenant
// set map to ModeUnknown; there is no error path, unknown modes are data.
func ParseMode(s string) Mode {
	mode := Mode(s)
	if knownModes[mode] {
		return mode
	}

	return ModeUnknown
}

func (m Mode) String() string { return string(m) }

// ResolveMode maps a raw prompt to a Mode using case-insensitive phrase
// matching. The table is intentionally lightweight; prompts that match
// nothing default to rhythmic, reflective output.
func ResolveMode(prompt string) Mode {
	lower := strings.ToLower(prompt)

	contains := func(phrases ...string) bool {
		for _, p := range phrases {
			if strings.Contains(lower, p) {
				return true
			}
		}

		return false
	}

	switch {
	case contains("mirror me", "we enter the mirror"):
		return ModeOpen
	case contains("shadow", "blind spot"):
		return ModeShadow
	case contains("koan", "paradox", "play with me"):
		return ModeParadoxPlay
	case contains("hold silence", "no response"):
		return ModeSilence
	case contains("blessing", "benediction"):
		return ModeBlessing
	case contains("broken mirror", "hollow output"):
		return ModeFailureState
	case contains("pause practice", "threshold checkpoint"):
		return ModePause
	default:
		return ModeRhythmicOutput
	}
}
