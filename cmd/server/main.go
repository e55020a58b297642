package main

import (
	"context"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/iliyamo/cinema-management/internal/config"
	"github.com/iliyamo/cinema-management/internal/database"
	"github.com/iliyamo/cinema-management/internal/domain"
	"github.com/iliyamo/cinema-management/internal/handler"
	"github.com/iliyamo/cinema-management/internal/logger"
	appmw "github.com/iliyamo/cinema-management/internal/middleware"
	"github.com/iliyamo/cinema-management/internal/queue"
	"github.com/iliyamo/cinema-management/internal/repository"
	"github.com/iliyamo/cinema-management/internal/router"
	"github.com/iliyamo/cinema-management/internal/service"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		logger.Log.Error("database open failed", "error", err)
		return
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.Migrate(ctx, db); err != nil {
		cancel()
		logger.Log.Error("database migration failed", "error", err)
		return
	}
	cancel()

	rdb := config.NewRedisClient()
	if rdb == nil {
		logger.Log.Warn("redis unreachable, cache and rate limiting disabled")
	}

	msgs := domain.DefaultCatalog()

	cinemaRepo := repository.NewCinemaRepo(db)
	auditoriumRepo := repository.NewAuditoriumRepo(db)
	seatRepo := repository.NewSeatRepo(db)
	movieRepo := repository.NewMovieRepo(db)
	tagRepo := repository.NewTagRepo(db)
	projectionRepo := repository.NewProjectionRepo(db)
	ticketRepo := repository.NewTicketRepo(db)
	userRepo := repository.NewUserRepo(db)
	tokenRepo := repository.NewTokenRepo(db)

	cinemaSvc := service.NewCinemaService(cinemaRepo, msgs)
	auditoriumSvc := service.NewAuditoriumService(auditoriumRepo, cinemaRepo, msgs)
	seatSvc := service.NewSeatService(seatRepo, auditoriumRepo, msgs)
	movieSvc := service.NewMovieService(movieRepo, tagRepo, projectionRepo, msgs)
	tagSvc := service.NewTagService(tagRepo, msgs)
	projectionSvc := service.NewProjectionService(projectionRepo, movieRepo, auditoriumRepo, msgs)
	ticketSvc := service.NewTicketService(ticketRepo, userRepo, projectionRepo, seatRepo, msgs)
	userSvc := service.NewUserService(userRepo, ticketRepo, msgs, cfg.BcryptCost)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(echomw.CORS())
	e.Use(appmw.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	e.Use(appmw.NewRedisCache(config.LoadCacheConfig(), rdb))

	router.Register(e, router.Handlers{
		Auth:       handler.NewAuthHandler(userSvc, tokenRepo, cfg),
		Cinema:     handler.NewCinemaHandler(cinemaSvc),
		Auditorium: handler.NewAuditoriumHandler(auditoriumSvc),
		Seat:       handler.NewSeatHandler(seatSvc),
		Movie:      handler.NewMovieHandler(movieSvc),
		Tag:        handler.NewTagHandler(tagSvc),
		Projection: handler.NewProjectionHandler(projectionSvc),
		Ticket:     handler.NewTicketHandler(ticketSvc),
		User:       handler.NewUserHandler(userSvc),
	}, cfg.JWTSecret)

	go queue.StartTicketConsumer()

	addr := ":" + cfg.Port
	logger.Log.Info("listening", "addr", addr, "env", cfg.Env)
	if err := e.Start(addr); err != nil {
		logger.Log.Error("server stopped", "error", err)
	}
}
