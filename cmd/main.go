package main

import (
  "context"
  "fmt"
  "net/http"
  "os"
  "os/signal"
  "path/filepath"
  "syscall"
  "time"

  "github.com/edusync/edusync-backend/internal/catalog"
  "github.com/edusync/edusync-backend/internal/handlers"
  "github.com/edusync/edusync-backend/internal/logger"
  "github.com/edusync/edusync-backend/internal/middleware"
  "github.com/edusync/edusync-backend/internal/repos"
  "github.com/edusync/edusync-backend/internal/server"
  "github.com/edusync/edusync-backend/internal/services"
  "github.com/edusync/edusync-backend/internal/utils"
)

func main() {
  // Logger
  logMode := os.Getenv("LOG_MODE")
  if logMode == "" {
    logMode = "development"
  }
  log, err := logger.New(logMode)
  if err != nil {
    fmt.Printf("Failed to init logger: %v\n", err)
    os.Exit(1)
  }
  defer log.Sync()

  // Env
  log.Info("Loading environment variables from main...")
  jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
  accessTokenTTL := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
  dataDir := utils.GetEnv("DATA_DIR", ".", log)
  coursesFile := utils.GetEnv("COURSES_FILE", "courses.csv", log)
  criteriaFile := utils.GetEnv("PSYCH_CRITERIA_FILE", "", log)
  staticDir := utils.GetEnv("STATIC_DIR", "static", log)

  if err := os.MkdirAll(dataDir, 0o755); err != nil {
    log.Error("Could not create data directory", "dir", dataDir, "error", err)
    os.Exit(1)
  }

  // Catalog
  courseCatalog, err := catalog.Load(coursesFile, log)
  if err != nil {
    log.Error("Could not load course catalog", "file", coursesFile, "error", err)
    os.Exit(1)
  }

  criteria, err := services.LoadCriteria(criteriaFile)
  if err != nil {
    log.Error("Could not load evaluation criteria", "file", criteriaFile, "error", err)
    os.Exit(1)
  }
  criterionColumns := services.CriterionColumns(criteria)

  // Repos
  log.Info("Setting up Repos from main...")
  userRepo := repos.NewUserRepo(repos.NewUserTable(filepath.Join(dataDir, "users.csv"), log), log)
  historyRepo := repos.NewHistoryRepo(repos.NewHistoryTable(filepath.Join(dataDir, "history.csv"), log), log)
  recommendationRepo := repos.NewRecommendationRepo(repos.NewRecommendationTable(filepath.Join(dataDir, "recommendations.csv"), log), log)
  skillChartRepo := repos.NewSkillChartRepo(repos.NewSkillChartTable(filepath.Join(dataDir, "skillcharts.csv"), log), log)
  psychEvalRepo := repos.NewPsychEvalRepo(repos.NewPsychEvalTable(filepath.Join(dataDir, "psych_eval.csv"), criterionColumns, log), criterionColumns, log)

  // Services
  log.Info("Setting up Services from main...")
  groqClient, err := services.NewGroqClient(log)
  if err != nil {
    log.Error("Could not init GroqClient", "error", err)
    os.Exit(1)
  }
  descriptionCache, err := services.NewRedisDescriptionCache(log)
  if err != nil {
    log.Warn("Redis description cache unavailable, using in-memory cache", "error", err)
    descriptionCache = services.NewMemoryDescriptionCache()
  }

  authService := services.NewAuthService(log, userRepo, jwtSecretKey, time.Duration(accessTokenTTL)*time.Second)
  historyService := services.NewHistoryService(log, userRepo, historyRepo, courseCatalog)
  courseService := services.NewCourseService(log, courseCatalog, groqClient, descriptionCache)
  advisingService := services.NewAdvisingService(log, userRepo, historyRepo, recommendationRepo, courseCatalog, groqClient)
  skillChartService := services.NewSkillChartService(log, userRepo, skillChartRepo, groqClient)
  psychEvalService := services.NewPsychEvalService(log, userRepo, psychEvalRepo, criteria, groqClient)
  chatService := services.NewChatService(log, userRepo, psychEvalRepo, historyRepo, groqClient)

  // Handlers
  log.Info("Setting up handlers from main...")
  authHandler := handlers.NewAuthHandler(authService, userRepo)
  historyHandler := handlers.NewHistoryHandler(historyService)
  courseHandler := handlers.NewCourseHandler(courseService)
  advisingHandler := handlers.NewAdvisingHandler(advisingService)
  skillChartHandler := handlers.NewSkillChartHandler(skillChartService)
  psychEvalHandler := handlers.NewPsychEvalHandler(psychEvalService)
  chatHandler := handlers.NewChatHandler(chatService)

  // Middleware
  log.Info("Setting up middleware from main...")
  authMiddleware := middleware.NewAuthMiddleware(log, authService)

  // Router
  log.Info("Setting up router from main...")
  router := server.NewRouter(server.RouterConfig{
    AuthHandler:       authHandler,
    AuthMiddleware:    authMiddleware,
    HistoryHandler:    historyHandler,
    CourseHandler:     courseHandler,
    AdvisingHandler:   advisingHandler,
    SkillChartHandler: skillChartHandler,
    PsychEvalHandler:  psychEvalHandler,
    ChatHandler:       chatHandler,
    StaticDir:         staticDir,
  })

  port := utils.GetEnv("PORT", "8080", log)
  srv := &http.Server{Addr: ":" + port, Handler: router}

  go func() {
    fmt.Printf("Server listening on :%s\n", port)
    if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
      log.Error("Server failed", "error", err)
      os.Exit(1)
    }
  }()

  quit := make(chan os.Signal, 1)
  signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
  <-quit
  log.Info("Shutting down...")

  shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
  defer cancel()
  if err := srv.Shutdown(shutdownCtx); err != nil {
    log.Warn("Shutdown did not finish cleanly", "error", err)
  }
}
