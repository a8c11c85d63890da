package auth

import (
	"context"

	"github.com/yourusername/secret-keeper/internal/user"
)

// Verifier は資格情報の検証ストラテジーです。
// 現在はユーザー名＋パスワードの1実装のみですが、別の検証方式を
// 追加する場合もこのインターフェースの実装を差し替えるだけで済みます。
type Verifier interface {
	VerifyCredentials(ctx context.Context, username, password string) (*user.User, error)
}

// UserStore はManagerが必要とするユーザーストアの操作です。
// *user.Store がこのインターフェースと Verifier の両方を満たします。
type UserStore interface {
	Create(ctx context.Context, profile user.Profile, password string) (*user.User, error)
	FindByID(ctx context.Context, id string) (*user.User, error)
}
