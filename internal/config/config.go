package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config はアプリケーション全体の設定を保持する構造体
type Config struct {
	Server ServerConfig `yaml:"server"`
	Static StaticConfig `yaml:"static"`
}

// ServerConfig はHTTPサーバーの設定
type ServerConfig struct {
	Host string `yaml:"host"` // リッスンするホスト
	Port int    `yaml:"port"` // リッスンするポート番号

	// タイムアウト設定
	ReadTimeout  time.Duration `yaml:"read_timeout"`  // 読み込みタイムアウト
	WriteTimeout time.Duration `yaml:"write_timeout"` // 書き込みタイムアウト
}

// StaticConfig は静的ファイル配信の設定
type StaticConfig struct {
	Dir       string `yaml:"dir"`        // ビルド成果物のディレクトリ
	IndexFile string `yaml:"index_file"` // ディレクトリに対するインデックスファイル名
}

// ConfigurationError はビルド成果物ディレクトリが存在しない場合の致命的エラー
type ConfigurationError struct {
	Dir string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("ビルド成果物のディレクトリが見つかりません: %s", e.Dir)
}

// Load は設定を読み込む
// デフォルト値 ← 設定ファイル(任意) ← 環境変数 の順に上書きする
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host:         "0.0.0.0",
			Port:         8000,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 0, // 大きなアセットの配信用にタイムアウト無効化
		},
		Static: StaticConfig{
			Dir:       filepath.Join(executableDir(), "dist"),
			IndexFile: "index.html",
		},
	}

	// 設定ファイルがあれば読み込む
	if path := configFilePath(); path != "" {
		if err := loadFile(cfg, path); err != nil {
			return nil, fmt.Errorf("設定ファイルの読み込みに失敗: %w", err)
		}
	}

	// 環境変数で上書き
	cfg.Server.Host = getEnvOrDefault("SERVER_HOST", cfg.Server.Host)
	cfg.Server.Port = getEnvAsIntOrDefault("PORT", cfg.Server.Port)
	cfg.Static.Dir = getEnvOrDefault("DIST_DIR", cfg.Static.Dir)

	// 設定の検証
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("設定の検証に失敗: %w", err)
	}

	return cfg, nil
}

// Validate は設定の妥当性を検証する
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("無効なポート番号: %d", c.Server.Port)
	}
	if c.Static.IndexFile == "" {
		return fmt.Errorf("インデックスファイル名が設定されていません")
	}

	return nil
}

// CheckDistDir はビルド成果物ディレクトリの存在を確認する
// ソケットをバインドする前に呼び出すこと
func (c *Config) CheckDistDir() error {
	info, err := os.Stat(c.Static.Dir)
	if err != nil || !info.IsDir() {
		return &ConfigurationError{Dir: c.Static.Dir}
	}
	return nil
}

// ServerAddress はサーバーのリッスンアドレスを返す
func (c *Config) ServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// configFilePath は設定ファイルのパスを返す
// 見つからない場合は空文字列を返す
func configFilePath() string {
	if path := os.Getenv("SHITAMI_CONFIG"); path != "" {
		return path
	}
	path := filepath.Join(executableDir(), "shitami.yaml")
	if _, err := os.Stat(path); err == nil {
		return path
	}
	return ""
}

// loadFile は設定ファイルを読み込み、cfgへ上書きマージする
func loadFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// executableDir は実行バイナリの置かれているディレクトリを返す
// 作業ディレクトリには依存しない
func executableDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// getEnvOrDefault は環境変数を取得し、設定されていない場合はデフォルト値を返す
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsIntOrDefault は環境変数を整数として取得し、設定されていない場合はデフォルト値を返す
func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var intVal int
		if _, err := fmt.Sscanf(value, "%d", &intVal); err == nil {
			return intVal
		}
	}
	return defaultValue
}
