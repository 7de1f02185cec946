package config

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wricardo/blockmatch/game/engine"
)

func writeConfigFile(t *testing.T, dir, name, body string) {
	t.Helper()
	path := filepath.Join(dir, name+".json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
}

func TestNewManager(t *testing.T) {
	t.Run("valid directory", func(t *testing.T) {
		dir := t.TempDir()
		writeConfigFile(t, dir, "classic", `{"name": "classic", "description": "standard"}`)

		manager, err := NewManager(dir)
		require.NoError(t, err)
		assert.Equal(t, "classic", manager.GetDefault().Name)
	})

	t.Run("non-existent directory", func(t *testing.T) {
		_, err := NewManager("/non/existent/path")
		assert.Error(t, err)
	})

	t.Run("empty directory falls back to built-in default", func(t *testing.T) {
		manager, err := NewManager(t.TempDir())
		require.NoError(t, err)

		def := manager.GetDefault()
		require.NotNil(t, def)
		assert.Equal(t, engine.DefaultConfig(), def)
	})

	t.Run("first valid preset when classic is missing", func(t *testing.T) {
		dir := t.TempDir()
		writeConfigFile(t, dir, "alpha", `{"board_size": 6, "tile_types": 4}`)

		manager, err := NewManager(dir)
		require.NoError(t, err)
		assert.Equal(t, "alpha", manager.GetDefault().Name)
		assert.Equal(t, 6, manager.GetDefault().BoardSize)
	})
}

func TestManager_LoadConfig(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, "classic", `{"name": "classic"}`)
	writeConfigFile(t, dir, "large", `{"name": "Large", "board_size": 10, "tile_types": 6, "tile_size": 40}`)
	writeConfigFile(t, dir, "broken", `{"board_size": 2}`)
	writeConfigFile(t, dir, "garbage", `{not json`)

	manager, err := NewManager(dir)
	require.NoError(t, err)

	t.Run("load existing config", func(t *testing.T) {
		config, err := manager.LoadConfig("large")
		require.NoError(t, err)
		assert.Equal(t, "Large", config.Name)
		assert.Equal(t, 10, config.BoardSize)
		assert.Equal(t, "#$%&@*", config.Alphabet())
		assert.Equal(t, 8.0, config.FallSpeed, "unset fields keep classic values")
		assert.Equal(t, 200.0, config.OriginX)
		assert.Equal(t, 25.0, config.OriginY)
	})

	t.Run("load with .json extension", func(t *testing.T) {
		config, err := manager.LoadConfig("large.json")
		require.NoError(t, err)
		assert.Equal(t, "Large", config.Name)
	})

	t.Run("load from cache", func(t *testing.T) {
		config1, _ := manager.LoadConfig("large")
		config2, err := manager.LoadConfig("large")
		require.NoError(t, err)
		assert.Same(t, config1, config2)
	})

	t.Run("load non-existent config", func(t *testing.T) {
		_, err := manager.LoadConfig("non-existent")
		assert.ErrorIs(t, err, ErrConfigNotFound)
	})

	t.Run("load invalid config", func(t *testing.T) {
		_, err := manager.LoadConfig("broken")
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("load malformed json", func(t *testing.T) {
		_, err := manager.LoadConfig("garbage")
		assert.Error(t, err)
	})
}

func TestManager_ListConfigs(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, "classic", `{"name": "classic", "description": "standard"}`)
	writeConfigFile(t, dir, "large", `{"name": "Large", "board_size": 10, "tile_types": 6}`)
	writeConfigFile(t, dir, "broken", `{"board_size": 2}`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.json"), 0755))

	manager, err := NewManager(dir)
	require.NoError(t, err)

	configs, err := manager.ListConfigs()
	require.NoError(t, err)
	require.Len(t, configs, 2)

	assert.Equal(t, "classic", configs[0].ConfigID)
	assert.Equal(t, "classic.json", configs[0].Filename)
	assert.Equal(t, "standard", configs[0].Description)
	assert.Equal(t, "large", configs[1].ConfigID)
	assert.Equal(t, 10, configs[1].BoardSize)
	assert.Equal(t, 6, configs[1].TileTypes)
	assert.Equal(t, "#$%&@*", configs[1].Symbols)
}

func TestManager_SetDefault(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, "classic", `{"name": "classic"}`)
	writeConfigFile(t, dir, "small", `{"name": "small", "board_size": 5}`)

	manager, err := NewManager(dir)
	require.NoError(t, err)

	require.NoError(t, manager.SetDefault("small"))
	assert.Equal(t, "small", manager.GetDefault().Name)

	assert.ErrorIs(t, manager.SetDefault("missing"), ErrConfigNotFound)
	assert.Equal(t, "small", manager.GetDefault().Name)
}

func TestManager_RefreshCache(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, "classic", `{"name": "classic", "reward": 10}`)

	manager, err := NewManager(dir)
	require.NoError(t, err)
	assert.Equal(t, 10, manager.GetDefault().Reward)

	writeConfigFile(t, dir, "classic", `{"name": "classic", "reward": 25}`)
	config, _ := manager.LoadConfig("classic")
	assert.Equal(t, 10, config.Reward, "cached until refreshed")

	require.NoError(t, manager.RefreshCache())
	assert.Equal(t, 25, manager.GetDefault().Reward)
}

func TestManager_ConcurrentLoads(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, "classic", `{"name": "classic"}`)
	writeConfigFile(t, dir, "large", `{"name": "large", "board_size": 10}`)

	manager, err := NewManager(dir)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			config, err := manager.LoadConfig("large")
			assert.NoError(t, err)
			assert.Equal(t, 10, config.BoardSize)
			_, err = manager.ListConfigs()
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
}

func TestParse(t *testing.T) {
	config, err := Parse([]byte(`{"name": "custom", "origin_x": 10, "origin_y": 20, "symbols": "ABCDE"}`))
	require.NoError(t, err)
	assert.Equal(t, 10.0, config.OriginX)
	assert.Equal(t, 20.0, config.OriginY)
	assert.Equal(t, "ABCDE", config.Alphabet())
	assert.NoError(t, engine.ValidateConfig(config))
}
