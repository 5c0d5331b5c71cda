package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pullrefresh.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	tests := []struct {
		checkValid func(*testing.T, *Config)
		name       string
		content    string
		wantErr    string
	}{
		{
			name: "minimal config gets defaults",
			content: `version: "1"
source:
  command: git log --oneline
`,
			checkValid: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "git log --oneline", cfg.Source.Command)
				assert.Equal(t, 50, cfg.Source.PageSize)
				assert.InDelta(t, 3, cfg.Refresh.Threshold, 1e-9)
				assert.True(t, cfg.Refresh.OnStart)
				assert.True(t, cfg.Footer.Enabled)
				assert.Equal(t, "dot", cfg.Animator.Spinner)
			},
		},
		{
			name: "full config",
			content: `version: "1"
source:
  command: ls -la
  page_size: 10
refresh:
  threshold: 4
  trigger: "pull >= threshold && !dragging"
  on_start: false
footer:
  enabled: false
  distance: 2
animator:
  spinner: moon
  titles:
    pulling: Pull me
    release: Let go
    loading: Fetching
    no_more: That's all
`,
			checkValid: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 10, cfg.Source.PageSize)
				assert.InDelta(t, 4, cfg.Refresh.Threshold, 1e-9)
				assert.False(t, cfg.Refresh.OnStart)
				assert.False(t, cfg.Footer.Enabled)
				assert.InDelta(t, 2, cfg.Footer.Distance, 1e-9)
				assert.Equal(t, "moon", cfg.Animator.Spinner)
				assert.Equal(t, Titles{Pulling: "Pull me", Release: "Let go", Loading: "Fetching", NoMore: "That's all"}, cfg.Animator.Titles)

				r, err := cfg.TriggerRule()
				require.NoError(t, err)
				require.NotNil(t, r)
				assert.Equal(t, "pull >= threshold && !dragging", r.String())
			},
		},
		{
			name: "missing version",
			content: `source:
  command: ls
`,
			wantErr: "missing version",
		},
		{
			name: "unsupported version",
			content: `version: "2"
source:
  command: ls
`,
			wantErr: "unsupported config version",
		},
		{
			name:    "missing command",
			content: `version: "1"`,
			wantErr: "source.command cannot be empty",
		},
		{
			name: "zero threshold",
			content: `version: "1"
source:
  command: ls
refresh:
  threshold: 0
`,
			wantErr: "refresh.threshold must be positive",
		},
		{
			name: "negative page size",
			content: `version: "1"
source:
  command: ls
  page_size: -1
`,
			wantErr: "source.page_size must be positive",
		},
		{
			name: "negative footer distance",
			content: `version: "1"
source:
  command: ls
footer:
  distance: -1
`,
			wantErr: "footer.distance cannot be negative",
		},
		{
			name: "bad trigger",
			content: `version: "1"
source:
  command: ls
refresh:
  trigger: "pull +"
`,
			wantErr: "refresh.trigger",
		},
		{
			name: "unknown spinner",
			content: `version: "1"
source:
  command: ls
animator:
  spinner: rocket
`,
			wantErr: "unknown spinner",
		},
		{
			name:    "invalid YAML",
			content: "version: [unclosed",
			wantErr: "parse config",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(writeConfig(t, tt.content))
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			tt.checkValid(t, cfg)
		})
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config")
}

func TestDefault_IsValid(t *testing.T) {
	cfg := Default("date")

	require.NoError(t, cfg.Validate())
	r, err := cfg.TriggerRule()
	require.NoError(t, err)
	assert.Nil(t, r)
}

func TestSave_RoundTripsThroughLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "pullrefresh.yaml")
	cfg := Default("uptime")
	cfg.Refresh.Trigger = "progress >= 1"
	cfg.Animator.Titles.Loading = "Working"

	require.NoError(t, cfg.Save(path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, yaml.Unmarshal(raw, &doc))
	assert.Equal(t, "1", doc["version"])

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
