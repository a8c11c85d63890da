// Package logging はアプリケーション共通のロガーを初期化します。
package logging

import (
	"io"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lmittmann/tint"
)

// New は実行モードに応じた slog ロガーを生成します。
// releaseモードではJSONハンドラー、それ以外では色付きのtintハンドラーを使います。
func New(w io.Writer, mode string) *slog.Logger {
	if mode == gin.ReleaseMode {
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}))
	}

	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      slog.LevelDebug,
		TimeFormat: time.Kitchen,
	}))
}
