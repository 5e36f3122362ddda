package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Backend selects how hits are sounded
type Backend string

const (
	BackendMIDI    Backend = "midi"
	BackendSamples Backend = "samples"
	BackendBoth    Backend = "both" // midi and samples together
	BackendNone    Backend = "none"
)

// MaxLength bounds pattern lengths; the catalog grows as 3^n.
const MaxLength = 4

// OutputConfig defines where hits are sent
type OutputConfig struct {
	Backend    Backend `json:"backend"`
	PortName   string  `json:"portName,omitempty"`
	Channel    int     `json:"channel,omitempty"` // 1-16
	Kit        string  `json:"kit,omitempty"`
	SamplesDir string  `json:"samplesDir,omitempty"`
}

// UsesMIDI reports whether the backend opens the MIDI driver.
func (o OutputConfig) UsesMIDI() bool {
	return o.Backend == BackendMIDI || o.Backend == BackendBoth
}

// Config is the main configuration structure
type Config struct {
	Tempo           int          `json:"tempo,omitempty"`
	OnlyUnpracticed bool         `json:"onlyUnpracticed,omitempty"`
	Lengths         []int        `json:"lengths,omitempty"`
	StorePath       string       `json:"storePath,omitempty"`
	Output          OutputConfig `json:"output"`
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Tempo:   120,
		Lengths: []int{2, 3, 4},
		Output: OutputConfig{
			Backend: BackendMIDI,
			Channel: 10,
			Kit:     "gm",
		},
	}
}

// ConfigDir returns the config directory path
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "drumdrill"), nil
}

// ConfigPath returns the full path to config.json
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// DefaultStorePath returns where the practiced set lives
func DefaultStorePath() string {
	dir, err := ConfigDir()
	if err != nil {
		return "practiced.json"
	}
	return filepath.Join(dir, "practiced.json")
}

// Load reads the config from disk, or returns defaults if not found
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return DefaultConfig(), nil
	}
	return LoadFile(path)
}

// LoadFile reads the config at path. Fields missing from the file keep
// their defaults.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	cfg.fillDefaults()
	return cfg, nil
}

func (c *Config) fillDefaults() {
	def := DefaultConfig()
	if c.Tempo == 0 {
		c.Tempo = def.Tempo
	}
	c.Lengths = validLengths(c.Lengths)
	if len(c.Lengths) == 0 {
		c.Lengths = def.Lengths
	}
	if c.Output.Backend == "" {
		c.Output.Backend = def.Output.Backend
	}
	if c.Output.Channel == 0 {
		c.Output.Channel = def.Output.Channel
	}
	if c.Output.Kit == "" {
		c.Output.Kit = def.Output.Kit
	}
}

// validLengths keeps lengths in 1..MaxLength, first occurrence only.
func validLengths(lengths []int) []int {
	seen := make(map[int]bool)
	var out []int
	for _, l := range lengths {
		if l < 1 || l > MaxLength || seen[l] {
			continue
		}
		seen[l] = true
		out = append(out, l)
	}
	return out
}

// Store returns the practiced set path, defaulting under ConfigDir
func (c *Config) Store() string {
	if c.StorePath != "" {
		return c.StorePath
	}
	return DefaultStorePath()
}

// MIDIChannel returns the zero based MIDI channel
func (c *Config) MIDIChannel() uint8 {
	ch := c.Output.Channel
	if ch < 1 || ch > 16 {
		ch = 10
	}
	return uint8(ch - 1)
}

// Save writes the config to disk
func (c *Config) Save() error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return c.SaveFile(path)
}

// SaveFile writes the config to path, creating its directory
func (c *Config) SaveFile(path string) error {
	// Create directory if it doesn't exist
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
