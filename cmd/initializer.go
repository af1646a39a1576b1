package main

import (
	"log"

	"giftmarketBack/internal/config"
	"giftmarketBack/internal/handlers"
	"giftmarketBack/internal/repositories"
	"giftmarketBack/internal/services"
	"giftmarketBack/internal/storage"
)

type application struct {
	errorLog *log.Logger
	infoLog  *log.Logger
	cfg      config.Config

	authService    *services.AuthService
	listingHandler *handlers.ListingHandler
	adminHandler   *handlers.AdminHandler
}

func initializeApp(cfg config.Config, errorLog, infoLog *log.Logger) (*application, error) {
	images, err := storage.NewImageStore(cfg.Storage)
	if err != nil {
		return nil, err
	}

	// Repositories
	listingRepo := repositories.ListingRepository{DataFile: cfg.Storage.DataFile}

	// Services
	paymentService := &services.PaymentService{}
	authService := &services.AuthService{AdminPassword: cfg.Admin.Password}
	listingService := &services.ListingService{
		ListingRepo: &listingRepo,
		Payments:    paymentService,
		Images:      images,
	}

	// Handlers
	listingHandler := &handlers.ListingHandler{
		Service:   listingService,
		Auth:      authService,
		UploadDir: cfg.Storage.UploadDir,
	}
	adminHandler := &handlers.AdminHandler{
		Auth:    authService,
		Service: listingService,
	}

	return &application{
		errorLog:       errorLog,
		infoLog:        infoLog,
		cfg:            cfg,
		authService:    authService,
		listingHandler: listingHandler,
		adminHandler:   adminHandler,
	}, nil
}
