package config

import (
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigPath 默认配置文件路径
const DefaultConfigPath = "config/config.yaml"

// Config 应用配置结构体
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Log      LogConfig      `yaml:"log"`
	Metrics  MetricsConfig  `yaml:"metrics"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port            string        `yaml:"port"`            // 服务器监听端口
	ReadTimeout     time.Duration `yaml:"readTimeout"`     // 读取超时时间
	WriteTimeout    time.Duration `yaml:"writeTimeout"`    // 写入超时时间
	IdleTimeout     time.Duration `yaml:"idleTimeout"`     // 空闲超时时间
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout"` // 优雅关闭超时时间
}

// DatabaseConfig 数据库配置
// Driver 支持 mysql / postgres / sqlite
type DatabaseConfig struct {
	Driver   string `yaml:"driver"`   // 数据库驱动类型
	DSN      string `yaml:"dsn"`      // 完整连接串（设置后忽略下面的分项）
	Host     string `yaml:"host"`     // 数据库主机地址
	Port     int    `yaml:"port"`     // 数据库端口
	Username string `yaml:"username"` // 数据库用户名
	Password string `yaml:"password"` // 数据库密码
	Database string `yaml:"database"` // 数据库名称
	Charset  string `yaml:"charset"`  // 字符集（mysql）
	SSLMode  string `yaml:"sslMode"`  // SSL模式（postgres）
	Path     string `yaml:"path"`     // 数据库文件路径（sqlite）
	MaxIdle  int    `yaml:"maxIdle"`  // 最大空闲连接数
	MaxOpen  int    `yaml:"maxOpen"`  // 最大打开连接数
	LogSQL   bool   `yaml:"logSQL"`   // 是否打印SQL
}

// LogConfig 日志配置
type LogConfig struct {
	Level      string `yaml:"level"`      // 日志级别
	Filename   string `yaml:"filename"`   // 日志文件名
	MaxSize    int    `yaml:"maxSize"`    // 单个日志文件最大大小(MB)
	MaxBackups int    `yaml:"maxBackups"` // 最大备份文件数
	MaxAge     int    `yaml:"maxAge"`     // 最大保存天数
	Compress   bool   `yaml:"compress"`   // 是否压缩
	Console    bool   `yaml:"console"`    // 是否同时输出到标准输出
}

// MetricsConfig Prometheus 指标配置
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"` // 是否暴露指标
	Path    string `yaml:"path"`    // 指标路由
}

// LoadConfig 加载配置（混合方式：YAML文件 + 环境变量）
func LoadConfig() *Config {
	return LoadConfigFrom(DefaultConfigPath)
}

// LoadConfigFrom 从指定路径加载配置，环境变量优先级更高
func LoadConfigFrom(filePath string) *Config {
	config := loadFromYAML(filePath)
	overrideWithEnvVars(config)
	return config
}

// loadFromYAML 从YAML文件加载配置
// 文件中未出现的字段保留默认值
func loadFromYAML(filePath string) *Config {
	config := getDefaultConfig()

	data, err := os.ReadFile(filePath)
	if err != nil {
		// 如果文件不存在，返回默认配置
		return config
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		// 如果解析失败，返回默认配置
		return getDefaultConfig()
	}

	return config
}

// overrideWithEnvVars 用环境变量覆盖配置，未设置或无法解析的变量被忽略
func overrideWithEnvVars(c *Config) {
	// 服务器配置，PORT 兼容旧部署，SERVER_PORT 优先
	envString(&c.Server.Port, "PORT")
	envString(&c.Server.Port, "SERVER_PORT")
	envDuration(&c.Server.ReadTimeout, "SERVER_READ_TIMEOUT")
	envDuration(&c.Server.WriteTimeout, "SERVER_WRITE_TIMEOUT")
	envDuration(&c.Server.IdleTimeout, "SERVER_IDLE_TIMEOUT")
	envDuration(&c.Server.ShutdownTimeout, "SERVER_SHUTDOWN_TIMEOUT")

	// 数据库配置
	db := &c.Database
	envString(&db.Driver, "DB_DRIVER")
	envString(&db.DSN, "DB_DSN")
	envString(&db.Host, "DB_HOST")
	envInt(&db.Port, "DB_PORT")
	envString(&db.Username, "DB_USERNAME")
	envString(&db.Password, "DB_PASSWORD")
	envString(&db.Database, "DB_DATABASE")
	envString(&db.Charset, "DB_CHARSET")
	envString(&db.SSLMode, "DB_SSL_MODE")
	envString(&db.Path, "DB_PATH")
	envInt(&db.MaxIdle, "DB_MAX_IDLE")
	envInt(&db.MaxOpen, "DB_MAX_OPEN")
	envBool(&db.LogSQL, "DB_LOG_SQL")

	// 日志配置
	envString(&c.Log.Level, "LOG_LEVEL")
	envString(&c.Log.Filename, "LOG_FILENAME")
	envInt(&c.Log.MaxSize, "LOG_MAX_SIZE")
	envInt(&c.Log.MaxBackups, "LOG_MAX_BACKUPS")
	envInt(&c.Log.MaxAge, "LOG_MAX_AGE")
	envBool(&c.Log.Console, "LOG_CONSOLE")

	// 指标配置
	envBool(&c.Metrics.Enabled, "METRICS_ENABLED")
	envString(&c.Metrics.Path, "METRICS_PATH")
}

// getDefaultConfig 获取默认配置
func getDefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            "8080",
			ReadTimeout:     30 * time.Second,
			WriteTimeout:    30 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 30 * time.Second,
		},
		Database: DatabaseConfig{
			Driver:   "mysql",
			Host:     "localhost",
			Port:     3306,
			Username: "social_user",
			Password: "",
			Database: "social_system",
			Charset:  "utf8mb4",
			SSLMode:  "disable",
			Path:     "data/social.db",
			MaxIdle:  10,
			MaxOpen:  100,
		},
		Log: LogConfig{
			Level:      "info",
			Filename:   "logs/app.log",
			MaxSize:    100,
			MaxBackups: 3,
			MaxAge:     7,
			Compress:   true,
			Console:    true,
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    "/metrics",
		},
	}
}

func envString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func envInt(dst *int, key string) {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil && v > 0 {
		*dst = v
	}
}

func envBool(dst *bool, key string) {
	if v, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		*dst = v
	}
}

func envDuration(dst *time.Duration, key string) {
	if v, err := time.ParseDuration(os.Getenv(key)); err == nil && v > 0 {
		*dst = v
	}
}
