package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/pelletier/go-toml/v2"

	"github.com/dhaniamnd/co2-reporter/internal/model"
)

// EnvPrefix 环境变量前缀，如 CO2_SERVER_PORT
const EnvPrefix = "CO2"

// FileName 默认配置文件名
const FileName = "config.toml"

// AppConfig 应用配置
type AppConfig struct {
	Server  ServerConfig  `toml:"server" envconfig:"SERVER"`
	Factors FactorsConfig `toml:"factors" envconfig:"FACTORS"`
	Logging LoggingConfig `toml:"logging" envconfig:"LOGGING"`
	Import  ImportConfig  `toml:"import" envconfig:"IMPORT"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port            int  `toml:"port" envconfig:"PORT"`
	DevMode         bool `toml:"dev_mode" envconfig:"DEV_MODE"`
	OpenBrowser     bool `toml:"open_browser" envconfig:"OPEN_BROWSER"`
	ShutdownSeconds int  `toml:"shutdown_seconds" envconfig:"SHUTDOWN_SECONDS"`
}

// FactorsConfig 初始排放因子
type FactorsConfig struct {
	ProcessEF float64 `toml:"process_ef" envconfig:"PROCESS_EF"`
	FuelEF    float64 `toml:"fuel_ef" envconfig:"FUEL_EF"`
	GridEF    float64 `toml:"grid_ef" envconfig:"GRID_EF"`
}

// LoggingConfig 日志配置
type LoggingConfig struct {
	Level  string `toml:"level" envconfig:"LEVEL"`   // debug | info | warn | error
	Format string `toml:"format" envconfig:"FORMAT"` // text | json
}

// ImportConfig 导入配置
type ImportConfig struct {
	MaxUploadMB int    `toml:"max_upload_mb" envconfig:"MAX_UPLOAD_MB"`
	Sheet       string `toml:"sheet" envconfig:"SHEET"` // 为空时读取第一个 sheet
	Append      bool   `toml:"append" envconfig:"APPEND"`
}

// LoadConfigInfo 配置加载元信息
type LoadConfigInfo struct {
	Path          string
	FileFound     bool
	PortSpecified bool
}

// DefaultConfig 默认配置
func DefaultConfig() *AppConfig {
	f := model.DefaultFactors()
	return &AppConfig{
		Server: ServerConfig{
			Port:            20262,
			DevMode:         false,
			OpenBrowser:     true,
			ShutdownSeconds: 10,
		},
		Factors: FactorsConfig{
			ProcessEF: f.ProcessEF,
			FuelEF:    f.FuelEF,
			GridEF:    f.GridEF,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Import: ImportConfig{
			MaxUploadMB: 32,
		},
	}
}

// EmissionFactors 转为模型排放因子
func (c FactorsConfig) EmissionFactors() model.EmissionFactors {
	return model.EmissionFactors{
		ProcessEF: c.ProcessEF,
		FuelEF:    c.FuelEF,
		GridEF:    c.GridEF,
	}
}

// Validate 校验配置取值
func (c *AppConfig) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	if c.Factors.ProcessEF < 0 || c.Factors.FuelEF < 0 || c.Factors.GridEF < 0 {
		return errors.New("emission factors must be non-negative")
	}
	if c.Import.MaxUploadMB <= 0 {
		return fmt.Errorf("invalid max upload size %d MB", c.Import.MaxUploadMB)
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format %q", c.Logging.Format)
	}
	return nil
}

func isPortSpecifiedInToml(data []byte) bool {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return false
	}

	serverAny, ok := raw["server"]
	if !ok {
		return false
	}

	serverMap, ok := serverAny.(map[string]any)
	if !ok {
		return false
	}

	_, ok = serverMap["port"]
	return ok
}

// GetExeDir 获取可执行文件所在目录
func GetExeDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

// DefaultPath 默认配置文件路径：可执行文件同目录下的 config.toml
func DefaultPath() string {
	exeDir, err := GetExeDir()
	if err != nil {
		// 无法获取可执行文件目录，使用当前目录
		exeDir = "."
	}
	return filepath.Join(exeDir, FileName)
}

// LoadConfigWithInfo 加载配置并返回元信息
// 优先级：默认值 < config.toml < .env / 环境变量（CO2_*）
func LoadConfigWithInfo(path string) (*AppConfig, LoadConfigInfo, error) {
	if path == "" {
		path = DefaultPath()
	}
	info := LoadConfigInfo{Path: path}
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		info.FileFound = true
		info.PortSpecified = isPortSpecifiedInToml(data)
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, info, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// 配置文件不存在，使用默认配置
	default:
		return nil, info, fmt.Errorf("failed to read %s: %w", path, err)
	}

	// .env 不覆盖已存在的环境变量，缺失时忽略
	_ = godotenv.Load()

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, info, fmt.Errorf("failed to load config from env: %w", err)
	}
	if os.Getenv(EnvPrefix+"_SERVER_PORT") != "" {
		info.PortSpecified = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, info, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, info, nil
}

// LoadConfig 加载配置
func LoadConfig(path string) (*AppConfig, error) {
	cfg, _, err := LoadConfigWithInfo(path)
	return cfg, err
}

// SaveConfig 保存配置到指定路径
func SaveConfig(cfg *AppConfig, path string) error {
	if path == "" {
		path = DefaultPath()
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
