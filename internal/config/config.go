// Package config loads and validates the camsort configuration. Every
// setting has a default matching the reference archive layout, so the tool
// works without any config file; a YAML file can override any of them.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"camsort/internal/errors"
)

// Config is the application configuration.
type Config struct {
	Archive struct {
		Root       string   `yaml:"root"`       // Capture directory to organize
		Extensions []string `yaml:"extensions"` // Recognized media extensions
		Reserved   string   `yaml:"reserved"`   // Folder name excluded from classification scans
	} `yaml:"archive"`

	// Cameras maps raw EXIF Model strings to canonical folder names.
	// Many raw strings may map to the same folder.
	Cameras map[string]string `yaml:"cameras"`

	Metadata struct {
		Tool           string `yaml:"tool"`            // exiftool, native, or auto
		TimeoutSeconds int    `yaml:"timeout_seconds"` // Per-file exiftool timeout
	} `yaml:"metadata"`

	Settings struct {
		DryRun    bool   `yaml:"dry_run"`    // Simulate moves without touching files
		LogDir    string `yaml:"log_dir"`    // Directory for run log files
		ReportDir string `yaml:"report_dir"` // Directory for TXT summaries
	} `yaml:"settings"`

	Private struct {
		Marker string `yaml:"marker"` // Glob a folder name must match to be mirrored
		Folder string `yaml:"folder"` // Destination folder name inside the root
	} `yaml:"private"`
}

// defaultConfig returns the built-in configuration matching the reference
// archive: a CAMARAS capture root and the known camera fleet.
func defaultConfig() *Config {
	cfg := &Config{}
	cfg.Archive.Root = "CAMARAS"
	cfg.Archive.Extensions = []string{".arw", ".cr2", ".cr3", ".jpg", ".mov", ".mp4", ".mts"}
	cfg.Archive.Reserved = "PRIVATE"
	cfg.Cameras = map[string]string{
		"Canon EOS 650D":               "Canon EOS 650D",
		"Canon EOS M50m2":              "Canon EOS M50m2",
		"Canon PowerShot G9 X Mark II": "Canon Powershot G9 X Mark II",
		"Canon PowerShot SX230 HS":     "Canon PowerShot SX230 HS",
		"Canon PowerShot SX610 HS":     "Canon PowerShot SX610 HS",
		"DMC-TZ57":                     "Panasonic DCM-TZ57",
		"DV300 / DV300F / DV305F":      "Samsung DV300F",
		"Full HD Camcorder":            "Samsung HMX-H300",
		"HMX-H300":                     "Samsung HMX-H300",
		"HERO7 White":                  "Gopro Hero7 White",
		"HERO10 Black":                 "Gopro Hero10 Black",
		"HERO11 Black":                 "Gopro Hero11 Black",
		"ILCE-6000":                    "Sony ILCE-6000",
		"WB30F":                        "Samsung WB30F",
		"WB30F/WB31F/WB32F":            "Samsung WB30F",
	}
	cfg.Metadata.Tool = "auto"
	cfg.Metadata.TimeoutSeconds = 30
	cfg.Settings.LogDir = "logs"
	cfg.Settings.ReportDir = "reports"
	cfg.Private.Marker = "*(X)*"
	cfg.Private.Folder = "PRIVATE"
	return cfg
}

// New returns the default configuration.
func New() *Config {
	return defaultConfig()
}

// LoadConfig loads configuration from the default location
// (~/.config/camsort/config.yaml).
func LoadConfig() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	return LoadConfigFile(filepath.Join(home, ".config", "camsort", "config.yaml"))
}

// LoadConfigFile loads configuration from a specific file path. If the file
// doesn't exist, the defaults are returned.
func LoadConfigFile(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var loaded Config
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	// Merge: only fields actually present override the defaults.
	if loaded.Archive.Root != "" {
		cfg.Archive.Root = loaded.Archive.Root
	}
	if len(loaded.Archive.Extensions) > 0 {
		cfg.Archive.Extensions = loaded.Archive.Extensions
	}
	if loaded.Archive.Reserved != "" {
		cfg.Archive.Reserved = loaded.Archive.Reserved
	}
	if len(loaded.Cameras) > 0 {
		cfg.Cameras = loaded.Cameras
	}
	if loaded.Metadata.Tool != "" {
		cfg.Metadata.Tool = loaded.Metadata.Tool
	}
	if loaded.Metadata.TimeoutSeconds > 0 {
		cfg.Metadata.TimeoutSeconds = loaded.Metadata.TimeoutSeconds
	}
	cfg.Settings.DryRun = loaded.Settings.DryRun
	if loaded.Settings.LogDir != "" {
		cfg.Settings.LogDir = loaded.Settings.LogDir
	}
	if loaded.Settings.ReportDir != "" {
		cfg.Settings.ReportDir = loaded.Settings.ReportDir
	}
	if loaded.Private.Marker != "" {
		cfg.Private.Marker = loaded.Private.Marker
	}
	if loaded.Private.Folder != "" {
		cfg.Private.Folder = loaded.Private.Folder
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ExtensionSet returns the recognized extensions as a lowercased lookup set.
func (c *Config) ExtensionSet() map[string]bool {
	set := make(map[string]bool, len(c.Archive.Extensions))
	for _, ext := range c.Archive.Extensions {
		ext = strings.ToLower(ext)
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		set[ext] = true
	}
	return set
}

func (c *Config) validate() error {
	switch c.Metadata.Tool {
	case "auto", "exiftool", "native":
	default:
		return errors.New(errors.InvalidConfig, "",
			fmt.Sprintf("invalid metadata tool %q: must be auto, exiftool or native", c.Metadata.Tool))
	}
	if len(c.Archive.Extensions) == 0 {
		return errors.New(errors.InvalidConfig, "", "no media extensions configured")
	}
	return nil
}
