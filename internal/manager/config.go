package manager

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

type LogConfig struct {
	Level      string `mapstructure:"level"`
	JSON       bool   `mapstructure:"json"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

type ACPIConfig struct {
	Acpidbg string        `mapstructure:"acpidbg"`
	Install bool          `mapstructure:"install"`
	Settle  time.Duration `mapstructure:"settle"`
}

type AirplaneConfig struct {
	Method string   `mapstructure:"method"`
	Radios []string `mapstructure:"radios"`
}

type BrightnessConfig struct {
	SysfsRoot  string `mapstructure:"sysfs_root"`
	Device     string `mapstructure:"device"`
	ACPITables string `mapstructure:"acpi_tables"`
	Method     string `mapstructure:"method"`
	StartLevel string `mapstructure:"start_level"`
	UpArgs     string `mapstructure:"up_args"`
	DownArgs   string `mapstructure:"down_args"`
}

type DisplayConfig struct {
	Xrandr      string        `mapstructure:"xrandr"`
	Uinput      string        `mapstructure:"uinput"`
	Settle      time.Duration `mapstructure:"settle"`
	Interactive bool          `mapstructure:"interactive"`
}

type KeyboardConfig struct {
	Path      string        `mapstructure:"path"`
	StepDelay time.Duration `mapstructure:"step_delay"`
}

type SuspendConfig struct {
	Method      string        `mapstructure:"method"`
	Args        string        `mapstructure:"args"`
	WakeupAfter time.Duration `mapstructure:"wakeup_after"`
	Wait        time.Duration `mapstructure:"wait"`
	Kmsg        string        `mapstructure:"kmsg"`
	Interactive bool          `mapstructure:"interactive"`
}

type VolumeConfig struct {
	StartLevel int           `mapstructure:"start_level"`
	Settle     time.Duration `mapstructure:"settle"`
}

type MQTTConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	Broker      string `mapstructure:"broker"`
	ClientID    string `mapstructure:"client_id"`
	Username    string `mapstructure:"username"`
	Password    string `mapstructure:"password"`
	TopicPrefix string `mapstructure:"topic_prefix"`
	QOS         byte   `mapstructure:"qos"`
	Retained    bool   `mapstructure:"retained"`
}

type ReportConfig struct {
	Format string     `mapstructure:"format"`
	Output string     `mapstructure:"output"`
	MQTT   MQTTConfig `mapstructure:"mqtt"`
}

type MonitorConfig struct {
	PollInterval time.Duration `mapstructure:"poll_interval"`
	RestartDelay time.Duration `mapstructure:"restart_delay"`
}

// Config is the decoded hkcheck.yaml.
type Config struct {
	Log        LogConfig        `mapstructure:"log"`
	ACPI       ACPIConfig       `mapstructure:"acpi"`
	Airplane   AirplaneConfig   `mapstructure:"airplane"`
	Brightness BrightnessConfig `mapstructure:"brightness"`
	Display    DisplayConfig    `mapstructure:"display"`
	Keyboard   KeyboardConfig   `mapstructure:"keyboard_backlight"`
	Suspend    SuspendConfig    `mapstructure:"suspend"`
	Volume     VolumeConfig     `mapstructure:"volume"`
	Report     ReportConfig     `mapstructure:"report"`
	Monitor    MonitorConfig    `mapstructure:"monitor"`
}

// SetDefaults registers every key with its default. Durations are strings
// so that generated config files stay readable.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", false)
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size_mb", 5)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age_days", 7)

	v.SetDefault("acpi.acpidbg", "acpidbg")
	v.SetDefault("acpi.install", true)
	v.SetDefault("acpi.settle", "1s")

	v.SetDefault("airplane.method", "_SB.HIDD.NRBT")
	v.SetDefault("airplane.radios", []string{"wlan", "bluetooth"})

	v.SetDefault("brightness.sysfs_root", "/sys/class/backlight")
	v.SetDefault("brightness.device", "")
	v.SetDefault("brightness.acpi_tables", "/sys/firmware/acpi/tables")
	v.SetDefault("brightness.method", "")
	v.SetDefault("brightness.start_level", "max / 2")
	v.SetDefault("brightness.up_args", "1 0")
	v.SetDefault("brightness.down_args", "2 0")

	v.SetDefault("display.xrandr", "xrandr")
	v.SetDefault("display.uinput", "/dev/uinput")
	v.SetDefault("display.settle", "5s")
	v.SetDefault("display.interactive", false)

	v.SetDefault("keyboard_backlight.path", "/sys/class/leds/dell::kbd_backlight")
	v.SetDefault("keyboard_backlight.step_delay", "500ms")

	v.SetDefault("suspend.method", "_SB.BTNV")
	v.SetDefault("suspend.args", "2 0")
	v.SetDefault("suspend.wakeup_after", "60s")
	v.SetDefault("suspend.wait", "10s")
	v.SetDefault("suspend.kmsg", "/dev/kmsg")
	v.SetDefault("suspend.interactive", false)

	v.SetDefault("volume.start_level", 50)
	v.SetDefault("volume.settle", "1s")

	v.SetDefault("report.format", "text")
	v.SetDefault("report.output", "")
	v.SetDefault("report.mqtt.enabled", false)
	v.SetDefault("report.mqtt.broker", "tcp://localhost:1883")
	v.SetDefault("report.mqtt.client_id", "hkcheck")
	v.SetDefault("report.mqtt.username", "")
	v.SetDefault("report.mqtt.password", "")
	v.SetDefault("report.mqtt.topic_prefix", "hkcheck")
	v.SetDefault("report.mqtt.qos", 1)
	v.SetDefault("report.mqtt.retained", false)

	v.SetDefault("monitor.poll_interval", "100ms")
	v.SetDefault("monitor.restart_delay", "2s")
}

// DefaultConfigPath is $XDG_CONFIG_HOME/hkcheck/hkcheck.yaml.
func DefaultConfigPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(configDir, "hkcheck", "hkcheck.yaml")
}

type ConfigManager struct {
	v        *viper.Viper
	path     string
	explicit bool
}

// NewConfigManager reads path, or the default location when path is empty.
// Only an explicitly named file has to exist.
func NewConfigManager(path string) *ConfigManager {
	c := &ConfigManager{v: viper.New(), path: path, explicit: path != ""}
	if !c.explicit {
		c.path = DefaultConfigPath()
	}
	return c
}

func (c *ConfigManager) Path() string { return c.path }

func (c *ConfigManager) Load() (*Config, error) {
	v := c.v
	SetDefaults(v)

	v.SetEnvPrefix("HKCHECK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if c.path != "" {
		v.SetConfigFile(c.path)
		v.SetConfigType("yaml")

		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			missing := errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist)
			if c.explicit || !missing {
				return nil, fmt.Errorf("failed to read config: %w", err)
			}
			c.path = ""
		}
	}

	return c.decode()
}

func (c *ConfigManager) decode() (*Config, error) {
	var cfg Config
	if err := c.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &cfg, nil
}

// Watch calls onChange with the re-decoded config whenever the file changes.
// It is a no-op when no file was loaded.
func (c *ConfigManager) Watch(onChange func(*Config, error)) {
	if c.path == "" {
		return
	}
	c.v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		onChange(c.decode())
	})
	c.v.WatchConfig()
}

// DefaultSettings returns the default configuration as a nested map, ready
// to be marshalled.
func DefaultSettings() map[string]any {
	v := viper.New()
	SetDefaults(v)
	return v.AllSettings()
}
