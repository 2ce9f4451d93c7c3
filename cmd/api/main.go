package main

import (
	"delegate/pkg/logging"
	"delegate/pkg/translator"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	dbadapter "delegate/internal/adapter/db"
	httpadapter "delegate/internal/adapter/http"
	"delegate/internal/adapter/http/handlers"
	httpmiddleware "delegate/internal/adapter/http/middleware"
	"delegate/internal/adapter/notify"
	appservice "delegate/internal/app/service"
	"delegate/internal/config"
	"delegate/internal/core/ports"
)

func main() {
	cfg := config.LoadConfig()

	logger, err := logging.NewLogger(cfg.LogFile)
	if err != nil {
		panic(err)
	}
	// Make zap available to packages that log through zap.L().
	zap.ReplaceGlobals(logger)
	defer func() {
		if err := logger.Sync(); err != nil {
			zap.L().Debug("failed to sync logger", zap.Error(err))
		}
	}()

	translator.InitTranslator(translator.Config{
		TranslationFolder:  "pkg/translator/translation",
		SupportedLanguages: []string{translator.LanguageFr, translator.LanguageEn},
	})

	db, err := dbadapter.ConnectDB(cfg)
	if err != nil {
		logger.Fatal("failed to connect to mysql", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Warn("failed to close mysql connection", zap.Error(err))
		}
	}()

	var notifier ports.Notifier = notify.NewLogNotifier()
	if cfg.NotifyWebhookURL != "" {
		notifier = notify.NewWebhookNotifier(cfg.NotifyWebhookURL)
	}

	taskRepository := dbadapter.NewTaskRepository(db)
	orgUserRepository := dbadapter.NewOrgUserRepository(db)
	noteRepository := dbadapter.NewTaskNoteRepository(db)
	auditRepository := dbadapter.NewAuditRepository(db)

	taskService := appservice.NewTaskService(taskRepository, orgUserRepository, noteRepository, auditRepository, notifier)
	orgService := appservice.NewOrgService(orgUserRepository)

	r := gin.New()
	r.Use(gin.Recovery(), httpmiddleware.GinZapMiddleware(logger))
	if len(cfg.TrustedProxies) > 0 {
		if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
			logger.Fatal("invalid trusted proxies", zap.Error(err))
		}
	}

	healthHandler := handlers.NewHealthHandler(db)
	taskHandler := handlers.NewTaskHandler(taskService)
	orgHandler := handlers.NewOrgHandler(orgService)
	httpadapter.RegisterRoutes(r, healthHandler, taskHandler, orgHandler)

	port := cfg.AppPort
	if port == "" {
		port = "8080"
	}
	addr := ":" + port
	logger.Info("starting server", zap.String("addr", addr))
	if err := r.Run(addr); err != nil {
		logger.Fatal("could not start server", zap.Error(err))
	}
}
