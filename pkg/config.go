package dirdigest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-ini/ini"
)

// Config represents the dirdigest configuration
type Config struct {
	configPath string
	ini        *ini.File
}

// HashConfig represents hash algorithm configuration
type HashConfig struct {
	Algorithm string // Hash algorithm for new digests
}

// OutputConfig represents output format configuration
type OutputConfig struct {
	MinGap int    // Spaces between the path column and the digest
	Color  string // auto, always, never
}

// WalkConfig represents which files a walk includes
type WalkConfig struct {
	IncludeHidden  bool
	SkipHiddenDirs bool
	IgnoreFile     string // Optional file of regular expressions to exclude
}

// VerboseConfig represents verbosity configuration
type VerboseConfig struct {
	Level int    // Default verbose level (0=quiet, 1=basic, 2=detailed, 3=trace)
	Debug string // Default debug flags (comma-separated)
}

// PerformanceConfig represents performance-related configuration
type PerformanceConfig struct {
	HashWorkers int    // Number of concurrent hash workers (default: 4)
	HashBuffer  string // Read buffer size for hashing (default: "2MiB")
}

// AllConfig represents all configuration options
type AllConfig struct {
	Hash        *HashConfig
	Output      *OutputConfig
	Walk        *WalkConfig
	Verbose     *VerboseConfig
	Performance *PerformanceConfig
}

// DefaultConfigPath returns $XDG_CONFIG_HOME/dirdigest/config or its platform equivalent
func DefaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".dirdigest", "config")
	}
	return filepath.Join(dir, "dirdigest", "config")
}

// LoadConfig loads configuration from configPath. A missing file yields the defaults;
// nothing is written until Save is called.
func LoadConfig(configPath string) (*Config, error) {
	cfg := &Config{
		configPath: configPath,
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		cfg.ini = ini.Empty()
		if err := cfg.setDefaults(); err != nil {
			return nil, fmt.Errorf("failed to set default config: %w", err)
		}
	} else {
		iniFile, err := ini.Load(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
		cfg.ini = iniFile
	}

	return cfg, nil
}

// Path returns the file the configuration is loaded from and saved to
func (c *Config) Path() string {
	return c.configPath
}

// setDefaults sets default configuration values
func (c *Config) setDefaults() error {
	defaults := []struct {
		section string
		key     string
		value   string
	}{
		{"digest", "algorithm", DefaultHashAlgorithm},
		{"output", "min_gap", fmt.Sprintf("%d", DefaultMinGap)},
		{"output", "color", "auto"},
		{"walk", "include_hidden", "false"},
		{"walk", "skip_hidden_dirs", "false"},
		{"walk", "ignore_file", ""},
		{"verbose", "level", "0"},
		{"verbose", "debug", ""},
		{"performance", "hash_workers", fmt.Sprintf("%d", DefaultHashWorkers)},
		{"performance", "hash_buffer", DefaultHashBuffer},
	}

	for _, d := range defaults {
		section, err := c.ini.NewSection(d.section)
		if err != nil {
			return fmt.Errorf("failed to create %s section: %w", d.section, err)
		}
		if _, err := section.NewKey(d.key, d.value); err != nil {
			return fmt.Errorf("failed to set default %s.%s: %w", d.section, d.key, err)
		}
	}

	return nil
}

// GetHashConfig returns the hash configuration
func (c *Config) GetHashConfig() *HashConfig {
	hashConfig := &HashConfig{
		Algorithm: DefaultHashAlgorithm, // fallback default
	}

	if c.ini.HasSection("digest") {
		section := c.ini.Section("digest")
		if section.HasKey("algorithm") {
			hashConfig.Algorithm = section.Key("algorithm").String()
		}
	}

	return hashConfig
}

// GetOutputConfig returns the output configuration
func (c *Config) GetOutputConfig() *OutputConfig {
	outputConfig := &OutputConfig{
		MinGap: DefaultMinGap, // fallback default
		Color:  "auto",        // fallback default
	}

	if c.ini.HasSection("output") {
		section := c.ini.Section("output")
		if section.HasKey("min_gap") {
			if gap, err := section.Key("min_gap").Int(); err == nil {
				outputConfig.MinGap = gap
			}
		}
		if section.HasKey("color") {
			outputConfig.Color = section.Key("color").String()
		}
	}

	return outputConfig
}

// GetWalkConfig returns the walk configuration
func (c *Config) GetWalkConfig() *WalkConfig {
	walkConfig := &WalkConfig{}

	if c.ini.HasSection("walk") {
		section := c.ini.Section("walk")
		if section.HasKey("include_hidden") {
			if v, err := section.Key("include_hidden").Bool(); err == nil {
				walkConfig.IncludeHidden = v
			}
		}
		if section.HasKey("skip_hidden_dirs") {
			if v, err := section.Key("skip_hidden_dirs").Bool(); err == nil {
				walkConfig.SkipHiddenDirs = v
			}
		}
		if section.HasKey("ignore_file") {
			walkConfig.IgnoreFile = section.Key("ignore_file").String()
		}
	}

	return walkConfig
}

// GetVerboseConfig returns the verbose configuration
func (c *Config) GetVerboseConfig() *VerboseConfig {
	verboseConfig := &VerboseConfig{}

	if c.ini.HasSection("verbose") {
		section := c.ini.Section("verbose")
		if section.HasKey("level") {
			if level, err := section.Key("level").Int(); err == nil {
				verboseConfig.Level = level
			}
		}
		if section.HasKey("debug") {
			verboseConfig.Debug = section.Key("debug").String()
		}
	}

	return verboseConfig
}

// GetPerformanceConfig returns the performance configuration
func (c *Config) GetPerformanceConfig() *PerformanceConfig {
	performanceConfig := &PerformanceConfig{
		HashWorkers: DefaultHashWorkers, // fallback default
		HashBuffer:  DefaultHashBuffer,  // fallback default
	}

	if c.ini.HasSection("performance") {
		section := c.ini.Section("performance")
		if section.HasKey("hash_workers") {
			if workers, err := section.Key("hash_workers").Int(); err == nil {
				performanceConfig.HashWorkers = workers
			}
		}
		if section.HasKey("hash_buffer") {
			if bufferSize := section.Key("hash_buffer").String(); bufferSize != "" {
				performanceConfig.HashBuffer = bufferSize
			}
		}
	}

	return performanceConfig
}

// GetAllConfig returns all configuration options
func (c *Config) GetAllConfig() *AllConfig {
	return &AllConfig{
		Hash:        c.GetHashConfig(),
		Output:      c.GetOutputConfig(),
		Walk:        c.GetWalkConfig(),
		Verbose:     c.GetVerboseConfig(),
		Performance: c.GetPerformanceConfig(),
	}
}

// ScanOptions builds walk options from the configuration, loading the ignore file if one
// is configured
func (c *Config) ScanOptions() (ScanOptions, error) {
	if err := c.Validate(); err != nil {
		return ScanOptions{}, err
	}
	all := c.GetAllConfig()

	bufferSize, err := ParseHumanSize(all.Performance.HashBuffer)
	if err != nil {
		return ScanOptions{}, fmt.Errorf("invalid hash_buffer: %w", err)
	}

	opts := ScanOptions{
		IncludeHidden:  all.Walk.IncludeHidden,
		SkipHiddenDirs: all.Walk.SkipHiddenDirs,
		Algorithm:      all.Hash.Algorithm,
		Workers:        all.Performance.HashWorkers,
		BufferSize:     bufferSize,
	}

	if all.Walk.IgnoreFile != "" {
		matcher, err := LoadIgnoreFile(all.Walk.IgnoreFile)
		if err != nil {
			return ScanOptions{}, err
		}
		opts.Ignore = matcher
	}

	return opts, nil
}

// String renders the configuration in ini form
func (c *Config) String() string {
	var b strings.Builder
	if _, err := c.ini.WriteTo(&b); err != nil {
		return ""
	}
	return b.String()
}

// Save saves the configuration to disk, creating the parent directory if needed
func (c *Config) Save() error {
	if err := os.MkdirAll(filepath.Dir(c.configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	return c.ini.SaveTo(c.configPath)
}

// ApplyOverrides applies command-line overrides to the configuration
// Accepts strings like "algorithm:sha256", "min_gap:2", "level:2", "debug:scan"
func (c *Config) ApplyOverrides(overrides []string) error {
	for _, override := range overrides {
		parts := strings.SplitN(override, ":", 2)
		if len(parts) != 2 {
			return fmt.Errorf("invalid override format '%s', expected 'key:value'", override)
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		var section string
		switch key {
		case "algorithm":
			section = "digest"
		case "min_gap", "color":
			section = "output"
		case "include_hidden", "skip_hidden_dirs", "ignore_file":
			section = "walk"
		case "level", "debug":
			section = "verbose"
		case "hash_workers", "hash_buffer":
			section = "performance"
		default:
			return fmt.Errorf("unsupported override key '%s' (supported: algorithm, min_gap, color, include_hidden, skip_hidden_dirs, ignore_file, level, debug, hash_workers, hash_buffer)", key)
		}

		k := c.ini.Section(section).Key(key)
		k.SetValue(value)
		if err := validateKey(k); err != nil {
			return err
		}
	}

	return nil
}

// Validate checks every known key against the type and range its getter expects.
// The getters fall back to defaults on unparsable values, so callers that act on the
// configuration validate it first.
func (c *Config) Validate() error {
	for _, section := range c.ini.Sections() {
		for _, k := range section.Keys() {
			if err := validateKey(k); err != nil {
				return fmt.Errorf("[%s] %w", section.Name(), err)
			}
		}
	}
	return nil
}

// validateKey rejects a value its getter could not use. Unknown keys pass.
func validateKey(k *ini.Key) error {
	var err error
	switch k.Name() {
	case "algorithm":
		err = ValidateHashAlgorithm(k.String())
	case "color":
		err = ValidateColorMode(k.String())
	case "min_gap":
		var gap int
		if gap, err = k.Int(); err == nil {
			err = ValidateMinGap(gap)
		}
	case "include_hidden", "skip_hidden_dirs":
		_, err = k.Bool()
	case "level":
		var level int
		if level, err = k.Int(); err == nil {
			err = ValidateVerboseLevel(level)
		}
	case "hash_workers":
		var workers int
		if workers, err = k.Int(); err == nil {
			err = ValidateHashWorkers(workers)
		}
	case "hash_buffer":
		if size := k.String(); size != "" {
			_, err = ParseHumanSize(size)
		}
	}
	if err != nil {
		return fmt.Errorf("invalid %s '%s': %w", k.Name(), k.String(), err)
	}
	return nil
}

// ValidateHashAlgorithm validates that a hash algorithm is supported
func ValidateHashAlgorithm(algorithm string) error {
	if _, err := GetHashAlgorithm(algorithm); err != nil {
		return fmt.Errorf("%w (supported: %s)", err, strings.Join(HashAlgorithmNames(), ", "))
	}
	return nil
}

// ValidateColorMode validates a colour mode
func ValidateColorMode(mode string) error {
	switch strings.ToLower(mode) {
	case "auto", "always", "never":
		return nil
	default:
		return fmt.Errorf("unsupported color mode: %s (supported: auto, always, never)", mode)
	}
}

// ValidateMinGap validates the column gap of the hash list table
func ValidateMinGap(gap int) error {
	if gap < 1 {
		return fmt.Errorf("min_gap must be at least 1, got: %d", gap)
	}
	return nil
}

// ValidateVerboseLevel validates that a verbose level is valid
func ValidateVerboseLevel(level int) error {
	if level < 0 || level > 3 {
		return fmt.Errorf("invalid verbose level: %d (supported: 0-3)", level)
	}
	return nil
}

// ValidateHashWorkers validates that the hash worker count is reasonable
func ValidateHashWorkers(workers int) error {
	if workers < 1 {
		return fmt.Errorf("hash workers must be at least 1, got: %d", workers)
	}
	if workers > 64 {
		return fmt.Errorf("hash workers should not exceed 64, got: %d", workers)
	}
	return nil
}
