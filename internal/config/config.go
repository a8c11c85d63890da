// Package config は環境変数から設定を読み込み、アプリケーション全体で使用する設定を提供します。
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config はアプリケーションの設定を保持する構造体です。
type Config struct {
	// サーバー設定
	Port    string // HTTPサーバーのポート番号
	GinMode string // Ginの実行モード (debug, release, test)

	// セッション設定
	SessionSecret   string // セッションクッキー署名用の秘密鍵
	SessionRedisURL string // 設定されている場合はRedisをセッションストアとして使う

	// データベース設定
	MongoURI     string // MongoDB接続文字列
	DatabaseName string // 使用するデータベース名

	// CORS設定
	CORSAllowedOrigins string // CORS許可オリジン（カンマ区切り）
}

// Load は環境変数から設定を読み込みます。
// カレントディレクトリに .env ファイルが存在する場合はそこから読み込みます。
func Load() (*Config, error) {
	// .env ファイルを読み込む（存在しない場合はスキップ）
	_ = godotenv.Load(".env")

	config := &Config{
		Port:    getEnv("PORT", "3000"),
		GinMode: getEnv("GIN_MODE", "debug"),

		SessionSecret:   getEnv("SECRET", ""),
		SessionRedisURL: getEnv("SESSION_REDIS_URL", ""),

		MongoURI:     getEnv("MONGO_URI", ""),
		DatabaseName: getEnv("DB_NAME", "secrets"),

		CORSAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000"),
	}

	// 必須設定のバリデーション
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate は設定の妥当性を検証します。
// 署名鍵と接続文字列はどのモードでも必須です。
func (c *Config) Validate() error {
	if c.SessionSecret == "" {
		return fmt.Errorf("SECRET is required")
	}
	if c.MongoURI == "" {
		return fmt.Errorf("MONGO_URI is required")
	}
	return nil
}

// getEnv は環境変数を取得し、存在しない場合はデフォルト値を返します。
func getEnv(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
