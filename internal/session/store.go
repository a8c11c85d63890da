// Package session はセッションストアの生成を提供します。
// 既定では署名付きクッキーに直接セッションを保存し、
// SESSION_REDIS_URL が設定されている場合はRedisをサーバー側ストアとして使います。
package session

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"

	"github.com/yourusername/secret-keeper/internal/config"
)

// NewStore は設定に応じたセッションストアを作成します。
func NewStore(cfg *config.Config) (sessions.Store, error) {
	if cfg.SessionRedisURL != "" {
		return newRedisStore(cfg)
	}

	store := cookie.NewStore([]byte(cfg.SessionSecret))
	store.Options(defaultOptions(cfg.GinMode))
	return store, nil
}

// defaultOptions はセッションクッキーの共通属性を返します。
// MaxAge 0 はブラウザセッションの間だけ有効なクッキーを意味します。
func defaultOptions(mode string) sessions.Options {
	return sessions.Options{
		Path:     "/",
		MaxAge:   0,
		HttpOnly: true,
		Secure:   mode == gin.ReleaseMode,
		SameSite: http.SameSiteLaxMode,
	}
}
