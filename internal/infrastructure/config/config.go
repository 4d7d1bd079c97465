package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"teamboard/internal/common/logger"
)

const (
	defaultConfigFileName = "config.yml"
	defaultConfigDirName  = ".config/teamboard"
	defaultBoardsDirName  = "boards"
	defaultDataDirName    = ".local/share/teamboard"
	defaultDatabaseName   = "teamboard.db"
	defaultSocketName     = "teamboardd.sock"

	// ConfigPathEnv overrides the config file location
	ConfigPathEnv = "TEAMBOARD_CONFIG"
)

// Storage drivers
const (
	DriverFilesystem = "filesystem"
	DriverSQLite     = "sqlite"
)

// Config holds application configuration
type Config struct {
	Storage     StorageConfig        `yaml:"storage"`
	Daemon      DaemonConfig         `yaml:"daemon"`
	Logging     logger.LoggingConfig `yaml:"logging"`
	TUI         TUIConfig            `yaml:"tui"`
	Keybindings KeybindingsConfig    `yaml:"keybindings"`
}

// StorageConfig holds storage-related configuration
type StorageConfig struct {
	Driver       string `yaml:"driver"`
	BoardsPath   string `yaml:"boards_path"`
	DatabasePath string `yaml:"database_path"`
}

// DaemonConfig holds daemon-related configuration. When Address is set the
// daemon listens on TCP instead of the unix socket.
type DaemonConfig struct {
	SocketDir      string        `yaml:"socket_dir"`
	SocketName     string        `yaml:"socket_name"`
	Address        string        `yaml:"address,omitempty"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
}

// SocketPath returns the unix socket the daemon listens on
func (d DaemonConfig) SocketPath() string {
	return filepath.Join(d.SocketDir, d.SocketName)
}

// TUIConfig holds TUI configuration
type TUIConfig struct {
	LogPath string       `yaml:"log_path"`
	Styles  StylesConfig `yaml:"styles"`
}

// StylesConfig holds color and styling configuration
type StylesConfig struct {
	List         ListStyle      `yaml:"list"`
	FocusedList  ListStyle      `yaml:"focused_list"`
	ListTitle    TextStyle      `yaml:"list_title"`
	Card         TextStyle      `yaml:"card"`
	SelectedCard TextStyle      `yaml:"selected_card"`
	PendingCard  TextStyle      `yaml:"pending_card"`
	Help         TextStyle      `yaml:"help"`
	Status       TextStyle      `yaml:"status"`
	Error        TextStyle      `yaml:"error"`
	Priority     PriorityColors `yaml:"priority"`
}

// ListStyle represents list column styling
type ListStyle struct {
	PaddingVertical   int    `yaml:"padding_vertical"`
	PaddingHorizontal int    `yaml:"padding_horizontal"`
	BorderStyle       string `yaml:"border_style"`
	BorderColor       string `yaml:"border_color"`
}

// TextStyle represents text styling
type TextStyle struct {
	Foreground        string `yaml:"foreground,omitempty"`
	Background        string `yaml:"background,omitempty"`
	Bold              bool   `yaml:"bold,omitempty"`
	Italic            bool   `yaml:"italic,omitempty"`
	PaddingVertical   int    `yaml:"padding_vertical,omitempty"`
	PaddingHorizontal int    `yaml:"padding_horizontal,omitempty"`
	Align             string `yaml:"align,omitempty"`
}

// PriorityColors holds colors for different priority levels
type PriorityColors struct {
	Critical string `yaml:"critical"`
	High     string `yaml:"high"`
	Medium   string `yaml:"medium"`
	Low      string `yaml:"low"`
	Default  string `yaml:"default"`
}

// KeybindingsConfig holds keybinding configuration
type KeybindingsConfig struct {
	Up    []string `yaml:"up"`
	Down  []string `yaml:"down"`
	Left  []string `yaml:"left"`
	Right []string `yaml:"right"`
	Move  []string `yaml:"move"`
	// ListLeft and ListRight move the focused list
	ListLeft  []string `yaml:"list_left"`
	ListRight []string `yaml:"list_right"`
	Add       []string `yaml:"add"`
	AddList   []string `yaml:"add_list"`
	Edit      []string `yaml:"edit"`
	Delete    []string `yaml:"delete"`
	Detail    []string `yaml:"detail"`
	Refresh   []string `yaml:"refresh"`
	Quit      []string `yaml:"quit"`
}

// Loader handles loading and saving configuration
type Loader struct {
	configPath string
}

// NewLoader creates a loader for the default config path, honouring
// TEAMBOARD_CONFIG when set
func NewLoader() (*Loader, error) {
	if p := os.Getenv(ConfigPathEnv); p != "" {
		return LoadFrom(p), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}

	return &Loader{
		configPath: filepath.Join(homeDir, defaultConfigDirName, defaultConfigFileName),
	}, nil
}

// LoadFrom creates a loader for an explicit config file
func LoadFrom(path string) *Loader {
	return &Loader{configPath: path}
}

// Load loads the configuration, creating defaults if it doesn't exist.
// Fields missing from an existing file keep their default values.
func (l *Loader) Load() (*Config, error) {
	if _, err := os.Stat(l.configPath); os.IsNotExist(err) {
		return l.createDefaultConfig()
	}

	data, err := os.ReadFile(l.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config, err := Default()
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Save persists the configuration to disk
func (l *Loader) Save(config *Config) error {
	configDir := filepath.Dir(l.configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(l.configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks values that would otherwise fail later at startup
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case DriverFilesystem, DriverSQLite:
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	if c.Daemon.RequestTimeout <= 0 {
		return fmt.Errorf("daemon.request_timeout must be positive")
	}
	return nil
}

// createDefaultConfig creates and saves a default configuration
func (l *Loader) createDefaultConfig() (*Config, error) {
	config, err := Default()
	if err != nil {
		return nil, err
	}

	if err := l.Save(config); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(config.Storage.BoardsPath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create boards directory: %w", err)
	}

	return config, nil
}

// GetConfigPath returns the path to the config file
func (l *Loader) GetConfigPath() string {
	return l.configPath
}

// Default returns the built-in configuration rooted at the user's home
func Default() (*Config, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}
	dataDir := filepath.Join(homeDir, defaultDataDirName)

	return &Config{
		Storage: StorageConfig{
			Driver:       DriverFilesystem,
			BoardsPath:   filepath.Join(dataDir, defaultBoardsDirName),
			DatabasePath: filepath.Join(dataDir, defaultDatabaseName),
		},
		Daemon: DaemonConfig{
			SocketDir:      dataDir,
			SocketName:     defaultSocketName,
			RequestTimeout: 10 * time.Second,
		},
		Logging: logger.LoggingConfig{
			Level:      "info",
			Format:     "console",
			OutputPath: "stderr",
		},
		TUI: TUIConfig{
			LogPath: filepath.Join(dataDir, "tui.log"),
			Styles: StylesConfig{
				List: ListStyle{
					PaddingVertical:   1,
					PaddingHorizontal: 2,
					BorderStyle:       "rounded",
					BorderColor:       "240",
				},
				FocusedList: ListStyle{
					PaddingVertical:   1,
					PaddingHorizontal: 2,
					BorderStyle:       "rounded",
					BorderColor:       "62",
				},
				ListTitle: TextStyle{
					Foreground: "99",
					Bold:       true,
					Align:      "center",
				},
				Card: TextStyle{
					Foreground:        "252",
					PaddingHorizontal: 1,
				},
				SelectedCard: TextStyle{
					Foreground:        "230",
					Background:        "62",
					Bold:              true,
					PaddingHorizontal: 1,
				},
				PendingCard: TextStyle{
					Foreground:        "244",
					Italic:            true,
					PaddingHorizontal: 1,
				},
				Help: TextStyle{
					Foreground:        "241",
					PaddingHorizontal: 2,
				},
				Status: TextStyle{
					Foreground:        "#A8DADC",
					PaddingHorizontal: 2,
				},
				Error: TextStyle{
					Foreground:        "#FF6B6B",
					Bold:              true,
					PaddingHorizontal: 2,
				},
				Priority: PriorityColors{
					Critical: "#FF3B3B",
					High:     "#FF6B6B",
					Medium:   "#FFE66D",
					Low:      "#95E1D3",
					Default:  "#999999",
				},
			},
		},
		Keybindings: KeybindingsConfig{
			Up:        []string{"up", "k"},
			Down:      []string{"down", "j"},
			Left:      []string{"left", "h"},
			Right:     []string{"right", "l"},
			Move:      []string{"m", " "},
			ListLeft:  []string{"<"},
			ListRight: []string{">"},
			Add:       []string{"a"},
			AddList:   []string{"A"},
			Edit:      []string{"e"},
			Delete:    []string{"d"},
			Detail:    []string{"enter"},
			Refresh:   []string{"r"},
			Quit:      []string{"q", "ctrl+c"},
		},
	}, nil
}
