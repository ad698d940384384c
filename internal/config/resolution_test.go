package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkoosis/spectrace/pkg/logsink"
)

var envKeys = []string{
	"SPECTRACE_LOG_LEVEL", "LOG_LEVEL", "SPECTRACE_FORMAT", "SPECTRACE_THEME",
	"SPECTRACE_NO_COLOR", "NO_COLOR", "SPECTRACE_CI", "CI", "SPECTRACE_TIMESTAMPS",
}

// isolate clears spectrace environment variables and moves into an empty
// directory with an empty user config home.
func isolate(t *testing.T) string {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	t.Setenv("HOME", dir)
	t.Chdir(dir)
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestResolve_Defaults(t *testing.T) {
	isolate(t)

	r, err := Resolve(CliFlags{})
	require.NoError(t, err)

	assert.Equal(t, log.InfoLevel, r.Level)
	assert.Equal(t, logsink.FormatText, r.Format)
	assert.Equal(t, "default", r.Theme.Name)
	assert.True(t, r.Humanize)
	assert.False(t, r.NoColor)
	assert.False(t, r.CI)
	assert.Empty(t, r.ConfigPath)
	assert.Equal(t, SourceDefault, r.Sources["level"])
}

func TestResolve_PriorityOrder(t *testing.T) {
	tests := []struct {
		name       string
		file       string
		env        map[string]string
		flags      CliFlags
		wantLevel  log.Level
		wantSource string
	}{
		{
			name:       "file overrides default",
			file:       "level: warn\n",
			wantLevel:  log.WarnLevel,
			wantSource: SourceFile,
		},
		{
			name:       "env overrides file",
			file:       "level: warn\n",
			env:        map[string]string{"LOG_LEVEL": "debug"},
			wantLevel:  log.DebugLevel,
			wantSource: SourceEnv,
		},
		{
			name:       "prefixed env wins over generic env",
			env:        map[string]string{"LOG_LEVEL": "debug", "SPECTRACE_LOG_LEVEL": "error"},
			wantLevel:  log.ErrorLevel,
			wantSource: SourceEnv,
		},
		{
			name:       "cli overrides env",
			env:        map[string]string{"SPECTRACE_LOG_LEVEL": "error"},
			flags:      CliFlags{Level: "trace", LevelSet: true},
			wantLevel:  logsink.TraceLevel,
			wantSource: SourceCLI,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := isolate(t)
			if tt.file != "" {
				writeFile(t, filepath.Join(dir, configFileName), tt.file)
			}
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			r, err := Resolve(tt.flags)
			require.NoError(t, err)
			assert.Equal(t, tt.wantLevel, r.Level)
			assert.Equal(t, tt.wantSource, r.Sources["level"])
		})
	}
}

func TestResolve_CIImpliesNoColor(t *testing.T) {
	isolate(t)
	t.Setenv("CI", "true")

	r, err := Resolve(CliFlags{})
	require.NoError(t, err)
	assert.True(t, r.CI)
	assert.True(t, r.NoColor)
}

func TestResolve_ExplicitFalseFlagWins(t *testing.T) {
	isolate(t)
	t.Setenv("CI", "1")

	r, err := Resolve(CliFlags{CI: false, CISet: true})
	require.NoError(t, err)
	assert.False(t, r.CI)
	assert.False(t, r.NoColor)
	assert.Equal(t, SourceCLI, r.Sources["ci"])
}

func TestResolve_NoColorConvention(t *testing.T) {
	isolate(t)
	t.Setenv("NO_COLOR", "anything")

	r, err := Resolve(CliFlags{})
	require.NoError(t, err)
	assert.True(t, r.NoColor)
}

func TestResolve_NonBooleanEnvIgnored(t *testing.T) {
	isolate(t)
	t.Setenv("SPECTRACE_TIMESTAMPS", "sometimes")

	r, err := Resolve(CliFlags{})
	require.NoError(t, err)
	assert.False(t, r.Timestamps)
	assert.Equal(t, SourceDefault, r.Sources["timestamps"])
}

func TestResolve_UserConfigDir(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "xdg", configDirName, configFileName), "theme: orca\nshort_packages: true\n")

	r, err := Resolve(CliFlags{})
	require.NoError(t, err)
	assert.Equal(t, "orca", r.Theme.Name)
	assert.True(t, r.ShortPackages)
	assert.Equal(t, filepath.Join(dir, "xdg", configDirName, configFileName), r.ConfigPath)
}

func TestResolve_LocalFileBeatsUserConfigDir(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "xdg", configDirName, configFileName), "theme: orca\n")
	writeFile(t, filepath.Join(dir, configFileName), "theme: mono\n")

	r, err := Resolve(CliFlags{})
	require.NoError(t, err)
	assert.Equal(t, "mono", r.Theme.Name)
	assert.Equal(t, configFileName, r.ConfigPath)
}

func TestResolve_ExplicitConfigFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.yaml")
	writeFile(t, path, "format: json\nhumanize: false\n")

	r, err := Resolve(CliFlags{ConfigFile: path})
	require.NoError(t, err)
	assert.Equal(t, logsink.FormatJSON, r.Format)
	assert.False(t, r.Humanize)
	assert.Equal(t, path, r.ConfigPath)
}

func TestResolve_ValidationErrors(t *testing.T) {
	tests := []struct {
		name  string
		flags CliFlags
		want  string
	}{
		{"level", CliFlags{Level: "loud", LevelSet: true}, "unknown log level"},
		{"theme", CliFlags{Theme: "neon", ThemeSet: true}, "unknown theme"},
		{"format", CliFlags{Format: "xml", FormatSet: true}, "unknown format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			_, err := Resolve(tt.flags)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "config validation failed")
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestResolve_EffectiveRoundTripsNames(t *testing.T) {
	isolate(t)

	r, err := Resolve(CliFlags{Level: "TRACE", LevelSet: true, Theme: "Orca", ThemeSet: true})
	require.NoError(t, err)

	eff := r.Effective()
	assert.Equal(t, "trace", eff.Level)
	assert.Equal(t, "orca", eff.Theme)
	assert.Equal(t, "text", eff.Format)
}

func TestResolve_HomeConfigFallback(t *testing.T) {
	dir := isolate(t)
	t.Setenv("XDG_CONFIG_HOME", "")
	path := filepath.Join(dir, ".config", configDirName, configFileName)
	writeFile(t, path, "theme: orca\n")

	r, err := Resolve(CliFlags{})
	require.NoError(t, err)
	assert.Equal(t, "orca", r.Theme.Name)
	assert.Equal(t, path, r.ConfigPath)
}

func TestResolve_XDGBeatsHomeConfig(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, ".config", configDirName, configFileName), "theme: orca\n")
	writeFile(t, filepath.Join(dir, "xdg", configDirName, configFileName), "theme: mono\n")

	r, err := Resolve(CliFlags{})
	require.NoError(t, err)
	assert.Equal(t, "mono", r.Theme.Name)
}

func TestConfigSearchPaths_Order(t *testing.T) {
	dir := isolate(t)

	paths := configSearchPaths()
	require.GreaterOrEqual(t, len(paths), 3)
	assert.Equal(t, configFileName, paths[0])
	assert.Equal(t, filepath.Join(dir, "xdg", configDirName, configFileName), paths[1])
	assert.Equal(t, filepath.Join(dir, ".config", configDirName, configFileName), paths[2])

	seen := map[string]bool{}
	for _, p := range paths {
		assert.False(t, seen[p], "duplicate search path %s", p)
		seen[p] = true
	}
}

func TestConfigSearchPaths_IgnoresRelativeXDG(t *testing.T) {
	isolate(t)
	t.Setenv("XDG_CONFIG_HOME", "relative/dir")

	for _, p := range configSearchPaths()[1:] {
		assert.True(t, filepath.IsAbs(p), p)
	}
}
