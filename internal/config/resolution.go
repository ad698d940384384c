package config

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/dkoosis/spectrace/pkg/design"
	"github.com/dkoosis/spectrace/pkg/logsink"
)

// Value sources, reported by --debug-config.
const (
	SourceDefault = "default"
	SourceFile    = "file"
	SourceEnv     = "env"
	SourceCLI     = "cli"
)

// CliFlags holds values set on the command line. The *Set fields record
// whether the user passed the flag, so an explicit false still wins.
type CliFlags struct {
	ConfigFile string

	Level         string
	LevelSet      bool
	Format        string
	FormatSet     bool
	NoColor       bool
	NoColorSet    bool
	CI            bool
	CISet         bool
	Theme         string
	ThemeSet      bool
	Timestamps    bool
	TimestampsSet bool
	ShortPackages bool
	ShortSet      bool
	Humanize      bool
	HumanizeSet   bool
}

// Resolved is the final configuration after applying precedence.
type Resolved struct {
	Level         log.Level
	Format        logsink.Format
	NoColor       bool
	CI            bool
	Theme         design.Theme
	Timestamps    bool
	ShortPackages bool
	Humanize      bool

	// ConfigPath is the file that was loaded, or "".
	ConfigPath string
	// Sources maps each key to the source that set it.
	Sources map[string]string
}

// Resolve merges defaults, the config file, environment variables and flags,
// in increasing priority, and validates the result.
func Resolve(flags CliFlags) (*Resolved, error) {
	var (
		cfg  *AppConfig
		path string
		err  error
	)
	if flags.ConfigFile != "" {
		path = flags.ConfigFile
		cfg, err = LoadConfigFile(path)
	} else {
		cfg, path, err = LoadConfig()
	}
	if err != nil {
		return nil, err
	}

	base := SourceDefault
	if path != "" {
		base = SourceFile
	}
	sources := map[string]string{
		"level": base, "format": base, "no_color": base, "ci": base,
		"theme": base, "timestamps": base, "short_packages": base, "humanize": base,
	}

	// Environment.
	if v, ok := firstEnv("SPECTRACE_LOG_LEVEL", "LOG_LEVEL"); ok {
		cfg.Level, sources["level"] = v, SourceEnv
	}
	if v, ok := firstEnv("SPECTRACE_FORMAT"); ok {
		cfg.Format, sources["format"] = v, SourceEnv
	}
	if v, ok := firstEnv("SPECTRACE_THEME"); ok {
		cfg.Theme, sources["theme"] = v, SourceEnv
	}
	if b, ok := getEnvBool("SPECTRACE_NO_COLOR"); ok {
		cfg.NoColor, sources["no_color"] = b, SourceEnv
	} else if os.Getenv("NO_COLOR") != "" {
		cfg.NoColor, sources["no_color"] = true, SourceEnv
	}
	if b, ok := getEnvBool("SPECTRACE_CI"); ok {
		cfg.CI, sources["ci"] = b, SourceEnv
	} else if b, ok := getEnvBool("CI"); ok {
		cfg.CI, sources["ci"] = b, SourceEnv
	}
	if b, ok := getEnvBool("SPECTRACE_TIMESTAMPS"); ok {
		cfg.Timestamps, sources["timestamps"] = b, SourceEnv
	}

	// Flags.
	if flags.LevelSet {
		cfg.Level, sources["level"] = flags.Level, SourceCLI
	}
	if flags.FormatSet {
		cfg.Format, sources["format"] = flags.Format, SourceCLI
	}
	if flags.ThemeSet {
		cfg.Theme, sources["theme"] = flags.Theme, SourceCLI
	}
	if flags.NoColorSet {
		cfg.NoColor, sources["no_color"] = flags.NoColor, SourceCLI
	}
	if flags.CISet {
		cfg.CI, sources["ci"] = flags.CI, SourceCLI
	}
	if flags.TimestampsSet {
		cfg.Timestamps, sources["timestamps"] = flags.Timestamps, SourceCLI
	}
	if flags.ShortSet {
		cfg.ShortPackages, sources["short_packages"] = flags.ShortPackages, SourceCLI
	}
	if flags.HumanizeSet {
		cfg.Humanize, sources["humanize"] = flags.Humanize, SourceCLI
	}

	r, err := validate(cfg)
	if err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	r.ConfigPath = path
	r.Sources = sources
	return r, nil
}

func validate(cfg *AppConfig) (*Resolved, error) {
	lvl, err := logsink.ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	theme, ok := design.Themes()[strings.ToLower(cfg.Theme)]
	if !ok {
		return nil, fmt.Errorf("unknown theme %q (valid: %s)", cfg.Theme, strings.Join(themeNames(), ", "))
	}

	format := logsink.Format(strings.ToLower(cfg.Format))
	valid := false
	names := make([]string, 0, len(logsink.Formats()))
	for _, f := range logsink.Formats() {
		names = append(names, string(f))
		if f == format {
			valid = true
		}
	}
	if !valid {
		return nil, fmt.Errorf("unknown format %q (valid: %s)", cfg.Format, strings.Join(names, ", "))
	}

	return &Resolved{
		Level:  lvl,
		Format: format,
		// CI output lands in log files.
		NoColor:       cfg.NoColor || cfg.CI,
		CI:            cfg.CI,
		Theme:         theme,
		Timestamps:    cfg.Timestamps,
		ShortPackages: cfg.ShortPackages,
		Humanize:      cfg.Humanize,
	}, nil
}

// Effective returns the resolved values in config file form.
func (r *Resolved) Effective() *AppConfig {
	return &AppConfig{
		Level:         logsink.LevelName(r.Level),
		Format:        string(r.Format),
		NoColor:       r.NoColor,
		CI:            r.CI,
		Theme:         r.Theme.Name,
		Timestamps:    r.Timestamps,
		ShortPackages: r.ShortPackages,
		Humanize:      r.Humanize,
	}
}

func themeNames() []string {
	names := make([]string, 0, len(design.Themes()))
	for name := range design.Themes() {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func firstEnv(keys ...string) (string, bool) {
	for _, k := range keys {
		if v := strings.TrimSpace(os.Getenv(k)); v != "" {
			return v, true
		}
	}
	return "", false
}

// getEnvBool parses a boolean environment variable. ok is false when the
// variable is unset or not a boolean.
func getEnvBool(key string) (value, ok bool) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return false, false
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, false
	}
	return b, true
}
