package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	jsoniter "github.com/json-iterator/go"

	"github.com/wricardo/blockmatch/game/engine"
	"github.com/wricardo/blockmatch/game/service"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var (
	ErrConfigNotFound = errors.New("configuration not found")
	ErrInvalidConfig  = errors.New("invalid configuration")
)

// DefaultName is the preset used when none is requested
const DefaultName = "classic"

// Manager handles board preset loading and caching
type Manager struct {
	configDir     string
	defaultConfig *engine.Config
	configs       map[string]*engine.Config
	mu            sync.RWMutex
}

// NewManager creates a new configuration manager
func NewManager(configDir string) (*Manager, error) {
	// Ensure config directory exists
	if _, err := os.Stat(configDir); os.IsNotExist(err) {
		return nil, fmt.Errorf("config directory does not exist: %s", configDir)
	}

	m := &Manager{
		configDir: configDir,
		configs:   make(map[string]*engine.Config),
	}

	if err := m.loadDefaultConfig(); err != nil {
		return nil, fmt.Errorf("failed to load default config: %w", err)
	}

	return m, nil
}

// LoadConfig loads a preset by name. The returned config is shared; callers
// that modify it must copy first.
func (m *Manager) LoadConfig(name string) (*engine.Config, error) {
	name = strings.TrimSuffix(name, ".json")

	m.mu.RLock()
	if config, exists := m.configs[name]; exists {
		m.mu.RUnlock()
		return config, nil
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	// Double-check after acquiring write lock
	if config, exists := m.configs[name]; exists {
		return config, nil
	}

	configPath := filepath.Join(m.configDir, name+".json")
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, name)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config, err := Parse(data)
	if err != nil {
		return nil, err
	}
	if config.Name == "" {
		config.Name = name
	}
	if err := engine.ValidateConfig(config); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	m.configs[name] = config
	return config, nil
}

// Parse decodes a preset, filling unset fields from the classic defaults.
// A preset without an origin is centered in the default screen.
func Parse(data []byte) (*engine.Config, error) {
	config := engine.DefaultConfig()
	config.Name = ""
	config.Description = ""
	config.OriginX, config.OriginY = 0, 0
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if config.OriginX == 0 && config.OriginY == 0 {
		config.OriginX, config.OriginY = engine.CenteredOrigin(config.BoardSize, config.TileSize,
			engine.DefaultScreenWidth, engine.DefaultScreenHeight)
	}
	return config, nil
}

// ListConfigs returns information about all available presets
func (m *Manager) ListConfigs() ([]*service.ConfigInfo, error) {
	entries, err := os.ReadDir(m.configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read config directory: %w", err)
	}

	var configs []*service.ConfigInfo
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		name := strings.TrimSuffix(entry.Name(), ".json")
		config, err := m.LoadConfig(name)
		if err != nil {
			// Skip invalid configs
			continue
		}

		configs = append(configs, infoFor(entry.Name(), name, config))
	}

	sort.Slice(configs, func(i, j int) bool {
		return configs[i].ConfigID < configs[j].ConfigID
	})
	return configs, nil
}

// GetDefault returns the default configuration
func (m *Manager) GetDefault() *engine.Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.defaultConfig
}

// SetDefault sets the default configuration by name
func (m *Manager) SetDefault(name string) error {
	config, err := m.LoadConfig(name)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaultConfig = config
	return nil
}

// RefreshCache drops every cached preset so the next load rereads disk
func (m *Manager) RefreshCache() error {
	m.mu.Lock()
	m.configs = make(map[string]*engine.Config)
	m.mu.Unlock()

	return m.loadDefaultConfig()
}

// loadDefaultConfig loads classic.json, falling back to the first valid
// preset and finally to the built-in classic setup
func (m *Manager) loadDefaultConfig() error {
	config, err := m.LoadConfig(DefaultName)
	if err != nil {
		configs, listErr := m.ListConfigs()
		if listErr != nil || len(configs) == 0 {
			m.setDefault(engine.DefaultConfig())
			return nil
		}

		config, err = m.LoadConfig(configs[0].ConfigID)
		if err != nil {
			m.setDefault(engine.DefaultConfig())
			return nil
		}
	}

	m.setDefault(config)
	return nil
}

func (m *Manager) setDefault(config *engine.Config) {
	m.mu.Lock()
	m.defaultConfig = config
	m.mu.Unlock()
}

func infoFor(filename, id string, config *engine.Config) *service.ConfigInfo {
	return &service.ConfigInfo{
		Filename:    filename,
		ConfigID:    id,
		Name:        config.Name,
		Description: config.Description,
		BoardSize:   config.BoardSize,
		TileTypes:   config.TileTypes,
		Symbols:     config.Alphabet(),
	}
}
