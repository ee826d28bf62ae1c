package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chiu791118/daily-report-2.0/internal/models"
)

const sampleCatalog = `
entities:
  ai:
    listed:
      - name: NVIDIA
        ticker: NVDA
        aliases: ["Nvidia", "輝達"]
      - name: Microsoft
        ticker: MSFT
        aliases: ["微軟"]
    unlisted:
      - name: OpenAI
        aliases: ["Open AI"]
  semiconductor:
    listed:
      - name: TSMC
        ticker: TSM
        aliases: ["台積電", "Taiwan Semiconductor"]
key_people:
  - name: Jensen Huang
    entities: ["NVIDIA"]
    aliases: ["黃仁勳"]
institutions:
  - name: Federal Reserve
    aliases: ["Fed", "聯準會"]
`

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "entities.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleCatalog), 0644))

	cat, err := Load(path)
	require.NoError(t, err)

	assert.Len(t, cat.Entities, 2)
	assert.Len(t, cat.Entities["ai"].Listed, 2)
	assert.Len(t, cat.Entities["ai"].Unlisted, 1)
	assert.ElementsMatch(t, []string{"NVDA", "MSFT", "TSM"}, cat.Tickers())
	assert.Equal(t, "Jensen Huang", cat.KeyPeople[0].Name)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)

	var cfgErr *models.ConfigError
	assert.True(t, errors.As(err, &cfgErr))
}

func TestParseMalformed(t *testing.T) {
	_, err := Parse("entities.yaml", []byte("entities: [not: a: map"))
	require.Error(t, err)

	var cfgErr *models.ConfigError
	assert.True(t, errors.As(err, &cfgErr))
}

func TestParseValidation(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"listed company missing ticker", `
entities:
  ai:
    listed:
      - name: NVIDIA
        aliases: ["Nvidia"]
`},
		{"lowercase ticker", `
entities:
  ai:
    listed:
      - name: NVIDIA
        ticker: nvda
`},
		{"empty catalog", `{}`},
		{"company missing name", `
entities:
  ai:
    unlisted:
      - aliases: ["Open AI"]
`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse("entities.yaml", []byte(tt.yaml))
			require.Error(t, err)

			var cfgErr *models.ConfigError
			assert.True(t, errors.As(err, &cfgErr))
		})
	}
}
