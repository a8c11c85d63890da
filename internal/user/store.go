package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const collectionName = "users"

// Store はMongoDBのusersコレクションに対する操作をまとめた構造体です。
type Store struct {
	users  *mongo.Collection
	logger *slog.Logger
}

// NewStore はユーザーストアを作成します。
func NewStore(db *mongo.Database, logger *slog.Logger) *Store {
	return &Store{
		users:  db.Collection(collectionName),
		logger: logger,
	}
}

// EnsureIndexes はusernameのユニークインデックスを作成します。
// 同時登録が競合しても同じユーザー名のドキュメントが二重に残らないことを
// このインデックスだけで保証します。
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create username index: %w", err)
	}
	return nil
}

// Create はパスワードをハッシュ化してユーザードキュメントを1件挿入します。
// ユーザー名が既に存在する場合は ErrDuplicateUsername を返します。
func (s *Store) Create(ctx context.Context, profile Profile, password string) (*User, error) {
	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	u := &User{
		Username:     profile.Username,
		FirstName:    profile.FirstName,
		LastName:     profile.LastName,
		PasswordHash: hash,
		CreatedAt:    time.Now(),
	}

	res, err := s.users.InsertOne(ctx, u)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicateUsername
		}
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}

	if id, ok := res.InsertedID.(bson.ObjectID); ok {
		u.ID = id
	}
	s.logger.Debug("user created", slog.String("username", u.Username), slog.String("user_id", u.ID.Hex()))
	return u, nil
}

// FindByUsername はユーザー名の完全一致でユーザーを1件取得します。
func (s *Store) FindByUsername(ctx context.Context, username string) (*User, error) {
	var u User
	err := s.users.FindOne(ctx, bson.M{"username": username}).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return &u, nil
}

// FindByID は16進表現のObjectIDでユーザーを1件取得します。
// セッションに保存したIDからユーザーを復元するために使います。
func (s *Store) FindByID(ctx context.Context, id string) (*User, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var u User
	err = s.users.FindOne(ctx, bson.M{"_id": oid}).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return &u, nil
}

// VerifyCredentials はユーザー名とパスワードの組を検証します。
// ユーザーが存在しない場合は ErrNotFound、パスワード不一致の場合は
// ErrWrongPassword を返します。呼び出し側で両者を区別して応答しないこと。
func (s *Store) VerifyCredentials(ctx context.Context, username, password string) (*User, error) {
	u, err := s.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if err := CheckPassword(u.PasswordHash, password); err != nil {
		return nil, err
	}
	return u, nil
}
