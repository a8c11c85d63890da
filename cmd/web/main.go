// Package main はWebサーバーのエントリーポイントです。
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/yourusername/secret-keeper/internal/auth"
	"github.com/yourusername/secret-keeper/internal/config"
	"github.com/yourusername/secret-keeper/internal/logging"
	"github.com/yourusername/secret-keeper/internal/session"
	"github.com/yourusername/secret-keeper/internal/user"
	"github.com/yourusername/secret-keeper/internal/web"
)

func main() {
	// 設定の読み込み
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := logging.New(os.Stdout, cfg.GinMode)
	gin.SetMode(cfg.GinMode)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// データベースへ接続できない状態でリスナーを開かない
	client, err := mongo.Connect(options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		logger.Error("failed to create database client", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()

	if err := client.Ping(ctx, nil); err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("connected to database", slog.String("db", cfg.DatabaseName))

	store := user.NewStore(client.Database(cfg.DatabaseName), logger)
	if err := store.EnsureIndexes(ctx); err != nil {
		logger.Error("failed to ensure indexes", slog.Any("error", err))
		os.Exit(1)
	}

	sessionStore, err := session.NewStore(cfg)
	if err != nil {
		logger.Error("failed to create session store", slog.Any("error", err))
		os.Exit(1)
	}

	manager := auth.NewManager(store, store, logger)
	router := web.NewRouter(cfg, manager, sessionStore)

	addr := ":" + cfg.Port
	logger.Info("server started", slog.String("addr", addr), slog.String("mode", cfg.GinMode))
	if err := router.Run(addr); err != nil {
		logger.Error("server exited", slog.Any("error", err))
		os.Exit(1)
	}
}
