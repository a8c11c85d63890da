// Package auth は登録・ログイン・ログアウトのハンドラーとセッション検証を提供します。
package auth

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/secret-keeper/internal/user"
)

// ContextUserKey は、ハンドラー間でログイン済みユーザーを共有するためのキーです。
const ContextUserKey = "auth.user"

// ErrInvalidCredentials はログイン失敗の理由を外部向けにまとめたエラーです。
// ユーザー不在とパスワード不一致はログにのみ区別して残します。
var ErrInvalidCredentials = errors.New("invalid credentials")

// Manager は認証処理をまとめた構造体です。
type Manager struct {
	store    UserStore
	verifier Verifier
	logger   *slog.Logger
}

// NewManager は認証マネージャーを作成します。
func NewManager(store UserStore, verifier Verifier, logger *slog.Logger) *Manager {
	return &Manager{
		store:    store,
		verifier: verifier,
		logger:   logger,
	}
}

// Register は POST /register のハンドラーです。
// ユーザーを作成し、成功したらそのままセッションを確立して /secrets へ送ります。
// 失敗の詳細は画面に出さず、ログに残して /register へ戻します。
func (m *Manager) Register(c *gin.Context) {
	profile := user.Profile{
		Username:  c.PostForm("username"),
		FirstName: c.PostForm("fName"),
		LastName:  c.PostForm("lName"),
	}

	u, err := m.store.Create(c.Request.Context(), profile, c.PostForm("password"))
	if err != nil {
		m.logger.Warn("registration failed",
			slog.String("username", profile.Username),
			slog.Any("error", err))
		c.Redirect(http.StatusFound, "/register")
		return
	}

	if err := establishSession(c, u.ID.Hex()); err != nil {
		m.logger.Error("failed to save session", slog.Any("error", err))
		c.Redirect(http.StatusFound, "/register")
		return
	}

	c.Redirect(http.StatusFound, "/secrets")
}

// Login は POST /home のハンドラーです。
// 必ず保存済みハッシュに対して資格情報を検証してからセッションを確立します。
// 失敗時はユーザー不在とパスワード不一致を区別しない同一の応答を返します
// （ユーザー名の列挙を防ぐため。詳細はサーバーログのみ）。
func (m *Manager) Login(c *gin.Context) {
	u, err := m.verify(c.Request.Context(), c.PostForm("username"), c.PostForm("password"))
	if err != nil {
		c.Redirect(http.StatusFound, "/")
		return
	}

	if err := establishSession(c, u.ID.Hex()); err != nil {
		m.logger.Error("failed to save session", slog.Any("error", err))
		c.Redirect(http.StatusFound, "/")
		return
	}

	c.Redirect(http.StatusFound, "/secrets")
}

// verify は資格情報を検証し、失敗の理由を ErrInvalidCredentials に畳み込みます。
// 本当の理由（ユーザー不在かパスワード不一致か）はここでログに残します。
func (m *Manager) verify(ctx context.Context, username, password string) (*user.User, error) {
	u, err := m.verifier.VerifyCredentials(ctx, username, password)
	if err != nil {
		m.logger.Warn("login failed",
			slog.String("username", username),
			slog.Any("reason", err))
		if errors.Is(err, user.ErrNotFound) || errors.Is(err, user.ErrWrongPassword) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	return u, nil
}

// Logout は GET /logout のハンドラーです。
// セッションの破棄は冪等で、未ログイン状態で呼んでもエラーにはなりません。
func (m *Manager) Logout(c *gin.Context) {
	if err := clearSession(c); err != nil {
		m.logger.Error("failed to clear session", slog.Any("error", err))
	}
	c.Redirect(http.StatusFound, "/")
}

// RequireLogin はセッションを検証するミドルウェアを返します。
// 未ログインの場合は / へリダイレクトし、ログイン済みの場合は
// セッションのユーザーIDからユーザーを復元してコンテキストに載せます。
func (m *Manager) RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := sessionUserID(c)
		if !ok {
			c.Redirect(http.StatusFound, "/")
			c.Abort()
			return
		}

		u, err := m.store.FindByID(c.Request.Context(), id)
		if err != nil {
			// セッションが指すユーザーが既に存在しない場合は匿名として扱う
			m.logger.Warn("session refers to unknown user",
				slog.String("user_id", id),
				slog.Any("error", err))
			_ = clearSession(c)
			c.Redirect(http.StatusFound, "/")
			c.Abort()
			return
		}

		c.Set(ContextUserKey, u)
		c.Next()
	}
}

// CurrentUser はRequireLoginが載せたユーザーをコンテキストから取り出します。
func CurrentUser(c *gin.Context) (*user.User, bool) {
	v, ok := c.Get(ContextUserKey)
	if !ok {
		return nil, false
	}
	u, ok := v.(*user.User)
	return u, ok
}
