package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/nurpe/employeehub/internal/auth"
	"github.com/nurpe/employeehub/internal/config"
	"github.com/nurpe/employeehub/internal/db"
	"github.com/nurpe/employeehub/internal/excel"
	httphandler "github.com/nurpe/employeehub/internal/http"
	"github.com/nurpe/employeehub/internal/http/middleware"
	"github.com/nurpe/employeehub/internal/logger"
	"github.com/nurpe/employeehub/internal/pdf"
	"github.com/nurpe/employeehub/internal/repository"
	"github.com/nurpe/employeehub/internal/service"
	"github.com/nurpe/employeehub/internal/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Environment)

	database, err := db.New(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}

	var sessions session.Store
	if cfg.Redis.Addr != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		client, err := session.Connect(ctx, cfg.Redis)
		cancel()
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect redis")
		}
		defer client.Close()
		sessions = session.NewRedisStore(client)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("using redis session store")
	} else {
		sessions = session.NewMemoryStore()
		log.Warn().Msg("REDIS_ADDR not set, reset sessions kept in memory")
	}

	userRepo := repository.NewUserRepository(database)
	customerRepo := repository.NewCustomerRepository(database)
	contractRepo := repository.NewContractRepository(database)
	subContractRepo := repository.NewSubContractRepository(database)
	commentRepo := repository.NewCommentRepository(database)
	profileRepo := repository.NewProfileRepository(database)
	eventRepo := repository.NewEventRepository(database)

	hasher := auth.NewHasher(cfg.Auth.BcryptCost)
	issuer := auth.NewIssuer(cfg.Auth.AccessSecret, cfg.Auth.AccessTTL)
	tokenParser := auth.NewParser(cfg.Auth.AccessSecret)

	contracts := service.NewContractService(contractRepo, customerRepo, userRepo, cfg, log)
	subcontracts := service.NewSubContractService(subContractRepo, contractRepo, userRepo, cfg, log)
	comments := service.NewCommentService(commentRepo, subContractRepo)
	calendar := service.NewCalendarService(eventRepo)

	services := httphandler.Services{
		Accounts:     service.NewAccountService(userRepo, hasher, issuer, log),
		Reset:        service.NewPasswordResetService(userRepo, profileRepo, sessions, hasher, cfg.Reset.SessionTTL, log),
		Contracts:    contracts,
		SubContracts: subcontracts,
		Comments:     comments,
		Customers:    service.NewCustomerService(customerRepo),
		Profiles:     service.NewProfileService(profileRepo, cfg.Auth.BcryptCost),
		Calendar:     calendar,
		Dashboard:    service.NewDashboardService(contracts, subcontracts, calendar, comments),
		Reports:      service.NewReportService(contractRepo, userRepo, excel.NewGenerator(), pdf.NewGenerator()),
	}

	handler := httphandler.NewHandler(services, cfg.Reset.SessionTTL, !cfg.IsDevelopment(), log)
	authMiddleware := middleware.Auth(tokenParser)
	router := httphandler.NewRouter(handler, authMiddleware, cfg.Environment, cfg.HTTP.AllowedOrigins, log)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	log.Info().Str("addr", addr).Msg("starting employeehub")

	if err := router.Run(addr); err != nil {
		log.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}
