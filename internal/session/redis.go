package session

import (
	"bytes"
	"context"
	"encoding/gob"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/google/uuid"
	"github.com/gorilla/securecookie"
	gsessions "github.com/gorilla/sessions"
	"github.com/redis/go-redis/v9"

	"github.com/yourusername/secret-keeper/internal/config"
)

const (
	keyPrefix = "session:"

	// サーバー側に保持するセッションの上限。クッキー自体はブラウザセッション限りだが、
	// Redis上のエントリはこの期間で必ず失効する。
	maxSessionLifetime = 12 * time.Hour
)

// redisClient は redisStore が必要とするコマンドだけを切り出したインターフェースです。
// テストではフェイクに差し替えます。
type redisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// redisStore はセッション本体をRedisに置き、クッキーには署名付きの
// セッションIDだけを載せる sessions.Store の実装です。
type redisStore struct {
	client redisClient
	codecs []securecookie.Codec
	opts   *gsessions.Options
}

func newRedisStore(cfg *config.Config) (sessions.Store, error) {
	opt, err := redis.ParseURL(cfg.SessionRedisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid SESSION_REDIS_URL: %w", err)
	}
	return newRedisStoreWithClient(redis.NewClient(opt), []byte(cfg.SessionSecret), defaultOptions(cfg.GinMode)), nil
}

func newRedisStoreWithClient(client redisClient, secret []byte, opts sessions.Options) *redisStore {
	return &redisStore{
		client: client,
		codecs: securecookie.CodecsFromPairs(secret),
		opts:   opts.ToGorillaOptions(),
	}
}

// Options はセッションクッキーの属性を設定します。
func (s *redisStore) Options(options sessions.Options) {
	s.opts = options.ToGorillaOptions()
}

// Get はリクエスト単位のレジストリ経由でセッションを返します。
func (s *redisStore) Get(r *http.Request, name string) (*gsessions.Session, error) {
	return gsessions.GetRegistry(r).Get(s, name)
}

// New はクッキーのセッションIDからRedis上のセッションを復元します。
// クッキーが無い・署名が不正・Redisに実体が無い、のいずれも
// 新しい空セッションを返すだけでエラーにはしません。
func (s *redisStore) New(r *http.Request, name string) (*gsessions.Session, error) {
	session := gsessions.NewSession(s, name)
	opts := *s.opts
	session.Options = &opts
	session.IsNew = true

	c, err := r.Cookie(name)
	if err != nil {
		return session, nil
	}

	var id string
	if err := securecookie.DecodeMulti(name, c.Value, &id, s.codecs...); err != nil {
		return session, nil
	}

	data, err := s.client.Get(r.Context(), keyPrefix+id).Bytes()
	if err != nil {
		return session, nil
	}
	if err := deserialize(data, &session.Values); err != nil {
		return session, nil
	}

	session.ID = id
	session.IsNew = false
	return session, nil
}

// Save はセッションをRedisへ書き込み、署名したIDをクッキーとして返します。
// MaxAgeが負の場合はRedisのエントリを削除してクッキーを失効させます。
func (s *redisStore) Save(r *http.Request, w http.ResponseWriter, session *gsessions.Session) error {
	if session.Options.MaxAge < 0 {
		if session.ID != "" {
			if err := s.client.Del(r.Context(), keyPrefix+session.ID).Err(); err != nil {
				return err
			}
		}
		http.SetCookie(w, gsessions.NewCookie(session.Name(), "", session.Options))
		return nil
	}

	if session.ID == "" {
		session.ID = uuid.NewString()
	}

	data, err := serialize(session.Values)
	if err != nil {
		return err
	}
	if err := s.client.Set(r.Context(), keyPrefix+session.ID, data, maxSessionLifetime).Err(); err != nil {
		return err
	}

	encoded, err := securecookie.EncodeMulti(session.Name(), session.ID, s.codecs...)
	if err != nil {
		return err
	}
	http.SetCookie(w, gsessions.NewCookie(session.Name(), encoded, session.Options))
	return nil
}

func serialize(values map[interface{}]interface{}) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(values); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func deserialize(data []byte, values *map[interface{}]interface{}) error {
	return gob.NewDecoder(bytes.NewReader(data)).Decode(values)
}
