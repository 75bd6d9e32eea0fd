package main

import (
    "context"
    "errors"
    "net/http"
    "os"
    "os/signal"
    "syscall"
    "time"

    "github.com/gin-gonic/gin"
    flag "github.com/spf13/pflag"
    "go.uber.org/zap"

    "bm25tree/internal/config"
    "bm25tree/internal/data"
    "bm25tree/internal/models"
    "bm25tree/internal/server"
    "bm25tree/pkg/utils"
)

func main() {
    logger := utils.Logger()
    defer logger.Sync()

    cfgPath := flag.StringP("config", "c", os.Getenv("BM25TREE_CONFIG"), "YAML config file")
    flag.Parse()

    cfg, err := config.Load(*cfgPath)
    if err != nil { logger.Fatal("load config", zap.Error(err)) }
    if os.Getenv("GIN_MODE") == "" { gin.SetMode(gin.ReleaseMode) }

    msgs, err := data.LoadTSV(cfg.Corpus)
    if err != nil { logger.Fatal("load corpus", zap.String("path", cfg.Corpus), zap.Error(err)) }
    texts, labels := data.Split(msgs)

    v, err := cfg.Vectorizer.Build()
    if err != nil { logger.Fatal("build vectorizer", zap.Error(err)) }
    start := time.Now()
    clf, err := models.Train(texts, labels, v, cfg.Tree.Options()...)
    if err != nil { logger.Fatal("train", zap.Error(err)) }
    if cfg.Prune > 0 { clf.Prune(cfg.Prune) }
    st := clf.Stats()
    logger.Info("classifier ready",
        zap.Int("documents", len(msgs)),
        zap.Int("features", v.NumFeatures()),
        zap.Int("nodes", st.Nodes),
        zap.Int("depth", st.Depth),
        zap.Duration("took", time.Since(start)),
    )

    r := server.New(clf, server.Options{APIKey: cfg.Server.APIKey, StaticDir: cfg.Server.StaticDir, Logger: logger})
    srv := &http.Server{Addr: ":" + cfg.Server.Port, Handler: r, ReadHeaderTimeout: 10 * time.Second}

    ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
    defer stop()
    go func() {
        logger.Info("listening", zap.String("addr", srv.Addr))
        if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
            logger.Fatal("serve", zap.Error(err))
        }
    }()
    <-ctx.Done()

    shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
    defer cancel()
    if err := srv.Shutdown(shutdown); err != nil { logger.Error("shutdown", zap.Error(err)) }
}
