package main

import (
	"database/sql"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"github.com/julienschmidt/httprouter"

	"lms/internal/auth"
	"lms/internal/book"
	"lms/internal/config"
	"lms/internal/reservation"
	"lms/internal/user"
	"lms/package/client/database"
	"lms/package/logger"
)

func main() {
	_ = godotenv.Load()
	cfg := config.GetConfig()

	logger.Log.Info("Starting database")
	db := database.Init(cfg)
	defer func(db *sql.DB) {
		if err := db.Close(); err != nil {
			logger.Log.Error("Can not close database")
		}
	}(db)

	if cfg.Storage.Migrate {
		if err := database.RunMigrations(cfg); err != nil {
			logger.Log.Fatal(err)
		}
	}

	userStorage := user.NewStorage(db)
	bookStorage := book.NewStorage(db)
	reservationStorage := reservation.NewStorage(db)

	tokens := auth.NewTokenService(cfg)
	authenticator := auth.NewAuthenticator(tokens, userStorage)

	router := httprouter.New()
	auth.NewHandler(userStorage, tokens, authenticator).Register(router)
	user.NewHandler(userStorage, authenticator).Register(router)
	book.NewHandler(bookStorage, reservationStorage, authenticator).Register(router)
	reservation.NewHandler(reservationStorage, userStorage, authenticator).Register(router)

	logger.Log.Info("Starting app")
	start(router, cfg)
}

func start(router *httprouter.Router, cfg *config.Config) {
	logger.Log.Info("Starting router")
	address := fmt.Sprintf("%s:%s", cfg.Listen.BindIp, cfg.Listen.Port)
	listener, err := net.Listen("tcp", address)
	if err != nil {
		logger.Log.Fatal("Listener was not created: ", err)
	}
	logger.Log.Info("Listening ", address)

	server := &http.Server{
		Handler:      router,
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}

	if err = server.Serve(listener); err != nil {
		logger.Log.Fatal("Server stopped: ", err)
	}
}
