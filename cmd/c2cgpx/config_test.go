package main_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/c2cgpx"
	main "github.com/fwojciec/c2cgpx/cmd/c2cgpx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLanguages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{"keeps order", []string{"en", "fr"}, []string{"en", "fr"}},
		{"reduces to base", []string{"fr-CH", "en-US"}, []string{"fr", "en"}},
		{"drops duplicates", []string{"fr", "fr-FR", "en"}, []string{"fr", "en"}},
		{"ignores blanks", []string{" it ", ""}, []string{"it"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := main.ParseLanguages(tt.in)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("rejects malformed tag", func(t *testing.T) {
		t.Parallel()

		_, err := main.ParseLanguages([]string{"fr", "123456789"})

		assert.Equal(t, c2cgpx.EINVALID, c2cgpx.ErrorCode(err))
	})

	t.Run("requires one language", func(t *testing.T) {
		t.Parallel()

		_, err := main.ParseLanguages([]string{" "})

		assert.Equal(t, c2cgpx.EINVALID, c2cgpx.ErrorCode(err))
	})
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	t.Run("missing optional file yields empty config", func(t *testing.T) {
		t.Parallel()

		cfg, err := main.LoadConfig(filepath.Join(t.TempDir(), "config.yaml"), false)

		require.NoError(t, err)
		assert.Equal(t, &main.Config{}, cfg)
	})

	t.Run("missing required file is an error", func(t *testing.T) {
		t.Parallel()

		_, err := main.LoadConfig(filepath.Join(t.TempDir(), "config.yaml"), true)

		require.Error(t, err)
	})

	t.Run("reads YAML fields", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`
languages: [it, de]
delay: 1s
concurrency: 4
user_agent: test-agent
ttl: 48h
comment_length: 200
`), 0644))

		cfg, err := main.LoadConfig(path, true)

		require.NoError(t, err)
		assert.Equal(t, []string{"it", "de"}, cfg.Languages)
		assert.Equal(t, "1s", cfg.Delay)
		assert.Equal(t, 4, cfg.Concurrency)
		assert.Equal(t, "test-agent", cfg.UserAgent)
		assert.Equal(t, "48h", cfg.TTL)
		assert.Equal(t, 200, cfg.CommentLength)
	})

	t.Run("malformed YAML is invalid", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("languages: [fr\n"), 0644))

		_, err := main.LoadConfig(path, true)

		assert.Equal(t, c2cgpx.EINVALID, c2cgpx.ErrorCode(err))
	})
}

func TestConfig_Vars(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()

		vars := (&main.Config{}).Vars()

		assert.Equal(t, "fr,en", vars["lang"])
		assert.Equal(t, "500ms", vars["delay"])
		assert.Equal(t, "2", vars["concurrency"])
		assert.Equal(t, "C2C-GPX-Exporter-User", vars["user_agent"])
		assert.Equal(t, main.DefaultCachePath(), vars["cache"])
	})

	t.Run("config overrides defaults", func(t *testing.T) {
		t.Parallel()

		vars := (&main.Config{
			Languages:   []string{"en"},
			Concurrency: 8,
			RPS:         1.5,
			Cache:       "/tmp/cache.db",
		}).Vars()

		assert.Equal(t, "en", vars["lang"])
		assert.Equal(t, "8", vars["concurrency"])
		assert.Equal(t, "1.5", vars["rps"])
		assert.Equal(t, "/tmp/cache.db", vars["cache"])
	})
}
