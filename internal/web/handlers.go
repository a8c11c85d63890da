package web

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/secret-keeper/internal/auth"
)

// handleHealth はヘルスチェックエンドポイントのハンドラーです。
func handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "secret-keeper",
		"version": "0.1.0",
	})
}

func handleHome(c *gin.Context) {
	c.HTML(http.StatusOK, "home.tmpl", nil)
}

func handleRegisterPage(c *gin.Context) {
	c.HTML(http.StatusOK, "register.tmpl", nil)
}

// handleSecrets はログイン済みユーザー本人の名前だけをテンプレートに渡します。
func handleSecrets(c *gin.Context) {
	u, ok := auth.CurrentUser(c)
	if !ok {
		c.Redirect(http.StatusFound, "/")
		return
	}
	c.HTML(http.StatusOK, "secrets.tmpl", gin.H{
		"FirstName": u.FirstName,
		"LastName":  u.LastName,
	})
}
