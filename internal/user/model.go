// Package user はユーザードキュメントの永続化と資格情報の検証を提供します。
package user

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

var (
	// ErrDuplicateUsername は同じユーザー名が既に登録されている場合に返されます。
	ErrDuplicateUsername = errors.New("username already registered")
	// ErrNotFound は該当するユーザーが存在しない場合に返されます。
	ErrNotFound = errors.New("user not found")
	// ErrWrongPassword はパスワードが一致しない場合に返されます。
	ErrWrongPassword = errors.New("wrong password")
)

// User はusersコレクションに保存されるドキュメントです。
// PasswordHash にはbcryptハッシュのみを保持し、平文は保存しません。
type User struct {
	ID           bson.ObjectID `bson:"_id,omitempty"`
	Username     string        `bson:"username"`
	FirstName    string        `bson:"first_name"`
	LastName     string        `bson:"last_name"`
	PasswordHash string        `bson:"password_hash"`
	CreatedAt    time.Time     `bson:"created_at"`
}

// Profile は登録時に受け取るプロフィール項目です。パスワードは含みません。
type Profile struct {
	Username  string
	FirstName string
	LastName  string
}
