package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/silenusdev/assistant-marketing/internal/ai"
	"github.com/silenusdev/assistant-marketing/internal/config"
	"github.com/silenusdev/assistant-marketing/internal/controller"
	"github.com/silenusdev/assistant-marketing/internal/db"
	"github.com/silenusdev/assistant-marketing/internal/events"
	"github.com/silenusdev/assistant-marketing/internal/repository"
	"github.com/silenusdev/assistant-marketing/internal/scheduler"
	"github.com/silenusdev/assistant-marketing/internal/service"
)

func main() {
	godotenv.Load()
	cfg := config.Load()

	logger, err := zap.NewProductionConfig().Build()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	database, err := db.Open(cfg)
	if err != nil {
		logger.Fatal("open database", zap.Error(err))
	}
	defer database.Close()

	client, err := ai.NewClient(cfg, logger)
	if err != nil {
		logger.Fatal("init AI client", zap.Error(err))
	}

	var publisher events.Publisher
	amqpPublisher, err := events.NewAMQPPublisher(cfg.AMQPURL)
	if err != nil {
		logger.Warn("broker unavailable, plan events disabled", zap.Error(err))
		publisher = events.NopPublisher{}
	} else {
		publisher = amqpPublisher
		defer amqpPublisher.Close()
	}

	scenarioRepo := &repository.ScenarioRepository{DB: database}
	objectifRepo := &repository.ObjectifRepository{DB: database}
	cibleRepo := &repository.CibleRepository{DB: database}
	ressourceRepo := &repository.RessourceRepository{DB: database}
	messageRepo := &repository.MessageRepository{DB: database}
	planRepo := &repository.PlanRepository{DB: database}
	configurationRepo := &repository.ConfigurationRepository{DB: database}

	scenarioService := &service.ScenarioService{
		Scenarios:  scenarioRepo,
		Objectifs:  objectifRepo,
		Cibles:     cibleRepo,
		Ressources: ressourceRepo,
		Logger:     logger,
	}
	objectifService := &service.ObjectifService{
		Scenarios: scenarioRepo,
		Objectifs: objectifRepo,
		Client:    client,
		Logger:    logger,
	}
	cibleService := &service.CibleService{
		Scenarios: scenarioRepo,
		Cibles:    cibleRepo,
		Client:    client,
		Logger:    logger,
	}
	configurationService := &service.ConfigurationService{
		Scenarios:      scenarioRepo,
		Configurations: configurationRepo,
		Objectifs:      objectifRepo,
		Cibles:         cibleRepo,
		Logger:         logger,
	}
	planService := &service.PlanService{
		Scenarios:      scenarioRepo,
		Plans:          planRepo,
		Configurations: configurationRepo,
		Client:         client,
		Publisher:      publisher,
		Logger:         logger,
	}
	chatService := &service.ChatService{
		Scenarios: scenarioRepo,
		Messages:  messageRepo,
		Client:    client,
		Logger:    logger,
		TTLDays:   cfg.PurgeTTLDays,
	}
	maintenanceService := &service.MaintenanceService{Messages: messageRepo, Logger: logger}

	sched := scheduler.New(maintenanceService, logger)
	if err := sched.Start(cfg.PurgeJobHour); err != nil {
		logger.Fatal("start scheduler", zap.Error(err))
	}
	defer sched.Stop()

	chatController := &controller.ChatController{Chat: chatService}
	scenarioController := &controller.ScenarioController{
		Scenarios: scenarioService,
		Plans:     planService,
		Objectifs: objectifService,
		Cibles:    cibleService,
	}
	objectifController := &controller.ObjectifController{Objectifs: objectifService}
	cibleController := &controller.CibleController{Cibles: cibleService}
	configurationController := &controller.ConfigurationController{
		Configurations: configurationService,
		Plans:          planService,
	}
	healthController := &controller.HealthController{DB: database}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/health", healthController.Check)

	r.Route("/api", func(r chi.Router) {
		r.Post("/chat", chatController.PostChat)
		r.Get("/chat/history/{scenario_id}", chatController.GetHistory)
		r.Get("/chat/actions/{scenario_id}", chatController.GetActions)

		r.Route("/scenarios", func(r chi.Router) {
			r.Get("/", scenarioController.List)
			r.Post("/", scenarioController.Create)
			r.Post("/batch", scenarioController.CreateBatch)
			r.Get("/{id}", scenarioController.Get)
			r.Delete("/{id}", scenarioController.Delete)
			r.Post("/{id}/objectifs", scenarioController.AddObjectif)
			r.Post("/{id}/objectifs/suggest", scenarioController.SuggestObjectifs)
			r.Post("/{id}/cibles", scenarioController.AddCible)
			r.Post("/{id}/cibles/suggest", scenarioController.SuggestCibles)
			r.Post("/{id}/ressources", scenarioController.AddRessource)
			r.Post("/{id}/plan", scenarioController.GeneratePlan)
			r.Get("/{id}/plan", scenarioController.GetPlan)
			r.Get("/{id}/export", scenarioController.Export)
			r.Get("/{id}/configurations", configurationController.ListByScenario)
			r.Post("/{id}/configurations", configurationController.Create)
		})

		r.Route("/configurations", func(r chi.Router) {
			r.Get("/{id}", configurationController.Get)
			r.Delete("/{id}", configurationController.Delete)
			r.Post("/{id}/objectifs", configurationController.AddObjectif)
			r.Delete("/{id}/objectifs/{objectif_id}", configurationController.RemoveObjectif)
			r.Post("/{id}/cibles", configurationController.AddCible)
			r.Delete("/{id}/cibles/{cible_id}", configurationController.RemoveCible)
			r.Post("/{id}/plan", configurationController.GeneratePlan)
		})

		r.Get("/objectifs", objectifController.List)
		r.Post("/objectifs", objectifController.Create)
		r.Get("/cibles", cibleController.List)
		r.Post("/cibles", cibleController.Create)
	})

	server := &http.Server{Addr: cfg.HTTPAddr, Handler: r}

	go func() {
		logger.Info("server listening", zap.String("addr", cfg.HTTPAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
}
