package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joshuapare/onigkit/cmd/onignames/logger"
	"github.com/joshuapare/onigkit/regex"
)

// Config holds defaults read from a TOML file. Flags override it.
//
//	syntax = "perl"
//	encoding = "utf-16le"
//	capture_group = true
//	case_fold = false
//	heap_table = false
//	log_level = "debug"
type Config struct {
	Syntax       string `toml:"syntax"`
	Encoding     string `toml:"encoding"`
	CaptureGroup bool   `toml:"capture_group"`
	CaseFold     bool   `toml:"case_fold"`
	HeapTable    bool   `toml:"heap_table"`
	LogLevel     string `toml:"log_level"`
}

// loadConfig reads path. An empty path yields the zero Config.
func loadConfig(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("couldn't read config file %q: %w", path, err)
	}
	meta, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return cfg, fmt.Errorf("invalid config file %q: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		return cfg, fmt.Errorf("config file %q: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return cfg, nil
}

// resolveOptions merges the loaded config with the global flags. String
// flags win when set; boolean flags win only when given on the command
// line, so --capture-group=false can turn off capture_group = true.
func resolveOptions() (regex.Options, error) {
	cfg := activeConfig
	if encodingName != "" {
		cfg.Encoding = encodingName
	}
	if syntaxName != "" {
		cfg.Syntax = syntaxName
	}
	overrideBool(&cfg.CaptureGroup, "capture-group", captureGroup)
	overrideBool(&cfg.CaseFold, "case-fold", caseFold)
	overrideBool(&cfg.HeapTable, "heap", heapTable)

	var err error
	opts := regex.Options{
		CaptureGroup: cfg.CaptureGroup,
		CaseFold:     cfg.CaseFold,
		HeapTable:    cfg.HeapTable,
	}
	if cfg.Encoding != "" {
		if opts.Encoding, err = regex.ParseEncoding(cfg.Encoding); err != nil {
			return regex.Options{}, err
		}
	}
	if opts.Syntax, err = regex.ParseSyntax(cfg.Syntax); err != nil {
		return regex.Options{}, err
	}
	if configPath != "" {
		logger.Debug("loaded config", "path", configPath, "syntax", opts.Syntax, "encoding", opts.Encoding)
	}
	return opts, nil
}

func overrideBool(dst *bool, flag string, v bool) {
	if rootCmd.PersistentFlags().Changed(flag) {
		*dst = v
	}
}
