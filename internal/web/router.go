// Package web はHTTPルーティングとページ描画を提供します。
package web

import (
	"html/template"
	"io/fs"
	"net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/yourusername/secret-keeper/internal/auth"
	"github.com/yourusername/secret-keeper/internal/config"
)

// NewRouter はルーターを組み立てます。
// ミドルウェアの順序: リクエストログ → リカバリー → セッション → CORS。
func NewRouter(cfg *config.Config, manager *auth.Manager, store sessions.Store) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(sessions.Sessions(auth.SessionCookieName, store))

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = strings.Split(cfg.CORSAllowedOrigins, ",")
	corsConfig.AllowCredentials = true
	router.Use(cors.New(corsConfig))

	router.SetHTMLTemplate(template.Must(template.ParseFS(templateFS, "templates/*.tmpl")))

	// 静的アセットは埋め込みファイルをそのまま返す
	staticRoot, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	router.StaticFS("/static", http.FS(staticRoot))
	router.GET("/favicon.ico", func(c *gin.Context) {
		c.FileFromFS("favicon.ico", http.FS(staticRoot))
	})

	router.GET("/health", handleHealth)

	router.GET("/", handleHome)
	router.GET("/register", handleRegisterPage)
	router.GET("/secrets", manager.RequireLogin(), handleSecrets)
	router.GET("/logout", manager.Logout)

	router.POST("/register", manager.Register)
	router.POST("/home", manager.Login)

	return router
}
