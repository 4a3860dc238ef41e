package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/diillson/retail-sales-analytics-go/internal/shared/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0644))
	return p
}

func TestLoadConfigFile(t *testing.T) {
	want := &types.Config{
		BaseDir:    "/srv/retail",
		Input:      "data/raw/2024.csv",
		ReportType: []string{"pdf", "xlsx"},
		Trend:      true,
		Upload:     "s3://analytics/reports",
	}

	tests := []struct {
		name    string
		file    string
		content string
	}{
		{
			name: "toml",
			file: "config.toml",
			content: `base_dir = "/srv/retail"
input = "data/raw/2024.csv"
report_type = ["pdf", "xlsx"]
trend = true
upload = "s3://analytics/reports"
`,
		},
		{
			name: "yaml",
			file: "config.yaml",
			content: `base_dir: /srv/retail
input: data/raw/2024.csv
report_type: [pdf, xlsx]
trend: true
upload: s3://analytics/reports
`,
		},
		{
			name:    "json",
			file:    "config.json",
			content: `{"base_dir": "/srv/retail", "input": "data/raw/2024.csv", "report_type": ["pdf", "xlsx"], "trend": true, "upload": "s3://analytics/reports"}`,
		},
	}

	repo := NewConfigRepository()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := repo.LoadConfigFile(writeConfig(t, tt.file, tt.content))
			require.NoError(t, err)
			assert.Equal(t, want, cfg)
		})
	}
}

func TestLoadConfigFile_ExpandsEnv(t *testing.T) {
	t.Setenv("RETAIL_BUCKET", "team-bucket")

	cfg, err := NewConfigRepository().LoadConfigFile(writeConfig(t, "config.yml", "upload: s3://${RETAIL_BUCKET}/out\n"))
	require.NoError(t, err)
	assert.Equal(t, "s3://team-bucket/out", cfg.Upload)
}

func TestLoadConfigFile_Errors(t *testing.T) {
	repo := NewConfigRepository()

	_, err := repo.LoadConfigFile(writeConfig(t, "config.ini", "x=1"))
	assert.ErrorContains(t, err, "unsupported config file format")

	_, err = repo.LoadConfigFile(filepath.Join(t.TempDir(), "absent.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	dir := filepath.Join(t.TempDir(), "dir.json")
	require.NoError(t, os.Mkdir(dir, 0755))
	_, err = repo.LoadConfigFile(dir)
	assert.ErrorContains(t, err, "is a directory")

	_, err = repo.LoadConfigFile(writeConfig(t, "broken.json", "{"))
	assert.ErrorContains(t, err, "error parsing JSON file")
}
