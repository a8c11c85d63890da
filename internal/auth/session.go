package auth

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const (
	// SessionCookieName はセッションクッキーの名前です。
	SessionCookieName = "sk_session"

	// セッションに保存するのはユーザーIDの16進表現のみ。
	// プロフィールやパスワードハッシュをクッキーに載せないため。
	sessionKeyUserID = "user_id"
)

// establishSession はセッションにユーザーIDを紐付けて保存します。
func establishSession(c *gin.Context, userID string) error {
	session := sessions.Default(c)
	session.Set(sessionKeyUserID, userID)
	return session.Save()
}

// clearSession はセッションを破棄します。既に空のセッションに対しても安全です。
func clearSession(c *gin.Context) error {
	session := sessions.Default(c)
	session.Clear()
	return session.Save()
}

// sessionUserID はセッションからユーザーIDを取り出します。
// 署名が不正なクッキーはミドルウェアの段階で空セッションになるため、
// ここでは値の有無だけを見れば足ります。
func sessionUserID(c *gin.Context) (string, bool) {
	session := sessions.Default(c)
	id, ok := session.Get(sessionKeyUserID).(string)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}
