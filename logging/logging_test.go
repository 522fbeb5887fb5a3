package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ebiten-wrap/config"
	"ebiten-wrap/ecs"
)

func TestNewLevelAndExtraWriter(t *testing.T) {
	var buf bytes.Buffer
	logger, closer, err := New(config.LogConfig{Level: "warn"}, &buf)
	require.NoError(t, err)
	defer closer.Close()

	logger.Info().Msg("hidden")
	logger.Warn().Str("k", "v").Msg("shown")

	var line map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line))
	assert.Equal(t, "warn", line["level"])
	assert.Equal(t, "shown", line["message"])
	assert.Equal(t, "v", line["k"])
}

func TestNewBadLevel(t *testing.T) {
	_, _, err := New(config.LogConfig{Level: "loud"})
	assert.Error(t, err)
}

func TestNewFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "game.log")
	logger, closer, err := New(config.LogConfig{Level: "debug", File: path, MaxSizeMB: 1})
	require.NoError(t, err)

	logger.Debug().Msg("to file")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "to file")
}

func TestMessageLogHook(t *testing.T) {
	ml := NewMessageLog(2, zerolog.InfoLevel)
	logger := zerolog.New(nil).Hook(ml)

	logger.Debug().Msg("too quiet")
	logger.Info().Msg("one")
	logger.Warn().Msg("two")
	logger.Error().Msg("three")

	assert.Equal(t, 2, ml.Len())
	assert.Equal(t, []string{"error: three", "warn: two"}, ml.RecentMessages(5))
	assert.Equal(t, []string{"error: three"}, ml.RecentMessages(1))

	ml.Clear()
	assert.Empty(t, ml.RecentMessages(3))
}

type tag struct{}

func (*tag) Create(*ecs.World, ecs.Entity) {}
func (*tag) Update()                       {}
func (*tag) ComponentName() string         { return "tag" }

func TestWorldLogging(t *testing.T) {
	w := ecs.NewWorld()
	e := w.NewEntity("crate")
	_, err := ecs.AddComponent[tag](w, e, nil)
	require.NoError(t, err)
	w.Update()

	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	World(&logger, w, zerolog.InfoLevel)

	var line struct {
		Ticks      int `json:"ticks"`
		Entities   int `json:"entities"`
		Components []struct {
			ID    int    `json:"component_id"`
			Name  string `json:"component_name"`
			Count int    `json:"count"`
		} `json:"components"`
	}
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line))
	assert.Equal(t, 1, line.Ticks)
	assert.Equal(t, 1, line.Entities)
	require.Len(t, line.Components, 1)
	assert.Equal(t, "tag", line.Components[0].Name)
	assert.Equal(t, 1, line.Components[0].Count)

	buf.Reset()
	Entity(&logger, w, e, zerolog.InfoLevel)
	assert.Contains(t, buf.String(), `"name":"crate"`)
	assert.Contains(t, buf.String(), `"alive":true`)

	buf.Reset()
	Components(CreateSystemLogger(&logger, "render"), w, zerolog.InfoLevel)
	assert.Contains(t, buf.String(), `"system":"render"`)
	assert.Contains(t, buf.String(), `"total_components":1`)
}
