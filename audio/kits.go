package audio

import "drumdrill/pattern"

// Kit maps each drilled symbol to a MIDI drum note.
type Kit struct {
	Name  string
	Notes map[pattern.Symbol]uint8
}

// Kits contains all available drum kit mappings
var Kits = map[string]Kit{
	"gm": {
		Name: "General MIDI",
		Notes: map[pattern.Symbol]uint8{
			pattern.Bass:  36, // Kick
			pattern.Snare: 38, // Snare
			pattern.HiHat: 42, // Closed HH
		},
	},
	"rd8": {
		Name: "Behringer RD-8",
		Notes: map[pattern.Symbol]uint8{
			pattern.Bass:  36, // BD
			pattern.Snare: 40, // SD - RD-8 uses 40, not 38!
			pattern.HiHat: 42, // CH
		},
	},
	"tr8s": {
		Name: "Roland TR-8S",
		Notes: map[pattern.Symbol]uint8{
			pattern.Bass:  36,
			pattern.Snare: 38,
			pattern.HiHat: 42,
		},
	},
	"er1": {
		Name: "Korg ER-1",
		Notes: map[pattern.Symbol]uint8{
			pattern.Bass:  36, // Perc Synth 1
			pattern.Snare: 38, // Perc Synth 2
			pattern.HiHat: 42, // Closed HH (PCM)
		},
	},
}

// KitNames returns the list of available kit names
func KitNames() []string {
	return []string{"gm", "rd8", "tr8s", "er1"}
}

// GetKit returns a kit by name, defaulting to GM if not found
func GetKit(name string) Kit {
	if kit, ok := Kits[name]; ok {
		return kit
	}
	return Kits[DefaultKit]
}

// DefaultKit is the default kit name
const DefaultKit = "gm"
