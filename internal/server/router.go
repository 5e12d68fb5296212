package server

import (
  "github.com/gin-contrib/cors"
  "github.com/gin-gonic/gin"

  "github.com/edusync/edusync-backend/internal/handlers"
  "github.com/edusync/edusync-backend/internal/middleware"
)

type RouterConfig struct {
  AuthHandler       *handlers.AuthHandler
  AuthMiddleware    *middleware.AuthMiddleware
  HistoryHandler    *handlers.HistoryHandler
  CourseHandler     *handlers.CourseHandler
  AdvisingHandler   *handlers.AdvisingHandler
  SkillChartHandler *handlers.SkillChartHandler
  PsychEvalHandler  *handlers.PsychEvalHandler
  ChatHandler       *handlers.ChatHandler
  StaticDir         string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
  router := gin.Default()

  // Cors
  router.Use(cors.New(cors.Config{
    AllowOrigins: []string{
      "http://localhost:80",
      "http://localhost:3000",
      "http://localhost:5174",
    },
    AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
    AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
    AllowCredentials: true,
  }))
  router.Use(middleware.RequestID())

  // ===============
  // || Public    ||
  // ===============
  router.GET("/healthcheck", handlers.HealthCheck)
  router.POST("/register", cfg.AuthHandler.Register)
  router.POST("/login", cfg.AuthHandler.Login)

  router.POST("/add_history", cfg.HistoryHandler.AddHistory)
  router.GET("/get_history", cfg.HistoryHandler.GetHistory)
  router.POST("/update_profile", cfg.AuthHandler.UpdateProfile)

  router.GET("/get_courses", cfg.CourseHandler.GetCourses)
  router.POST("/recommend_courses", cfg.AdvisingHandler.RecommendCourses)
  router.POST("/predict_grades", cfg.AdvisingHandler.PredictGrades)

  router.GET("/generate_skill_chart", cfg.SkillChartHandler.GenerateSkillChart)
  router.POST("/psych_eval_question", cfg.PsychEvalHandler.Question)
  router.POST("/psych_eval_rank", cfg.PsychEvalHandler.Rank)
  router.POST("/chat_with_ai", cfg.ChatHandler.Chat)

  if cfg.StaticDir != "" {
    router.StaticFile("/", cfg.StaticDir+"/dashboard.html")
  }

  // ===============
  // || Protected ||
  // ===============
  protected := router.Group("/")
  protected.Use(cfg.AuthMiddleware.RequireAuth())
  protected.GET("/profile", cfg.AuthHandler.GetMe)

  return router
}
