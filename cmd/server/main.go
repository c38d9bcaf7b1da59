package main // Entry point package

import (
    "log"

    "github.com/joho/godotenv"
    "github.com/labstack/echo/v4"

    "github.com/iliyamo/event-directory/internal/config"
    "github.com/iliyamo/event-directory/internal/database"
    "github.com/iliyamo/event-directory/internal/handler"
    "github.com/iliyamo/event-directory/internal/middleware"
    "github.com/iliyamo/event-directory/internal/queue"
    "github.com/iliyamo/event-directory/internal/repository"
    "github.com/iliyamo/event-directory/internal/router"
)

func main() {
    // Load .env when present; real deployments set variables directly.
    _ = godotenv.Load()

    cfg := config.Load()

    db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
    if err != nil {
        log.Fatalf("database: %v", err)
    }
    defer db.Close()

    // Redis backs the rate limiter and the response cache. A nil client
    // simply turns both middlewares into pass-throughs.
    rdb := config.NewRedisClient()
    if rdb == nil {
        log.Println("redis unavailable; rate limiting and caching disabled")
    }

    users := repository.NewUserRepo(db)
    tokens := repository.NewTokenRepo(db)
    events := repository.NewEventRepo(db)
    members := repository.NewMembershipRepo(db)

    auth := handler.NewAuthHandler(cfg, users, tokens)
    evh := handler.NewEventHandler(events, members)

    e := echo.New()
    e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
    cacheMW := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

    router.RegisterRoutes(e)
    router.RegisterAuth(e, auth, cfg.JWTSecret)
    router.RegisterEvents(e, evh, cfg.JWTSecret, cacheMW)

    // The activity consumer runs for the lifetime of the process and keeps
    // reconnecting on its own; it never takes the API down.
    go func() {
        if err := queue.StartEventActivityConsumer(); err != nil {
            log.Printf("event-consumer stopped: %v", err)
        }
    }()

    addr := ":" + cfg.Port
    log.Printf("listening on %s (env=%s)", addr, cfg.Env)
    if err := e.Start(addr); err != nil {
        log.Fatal(err)
    }
}
