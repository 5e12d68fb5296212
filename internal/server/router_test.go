package server

import (
  "bytes"
  "context"
  "encoding/json"
  "net/http"
  "net/http/httptest"
  "path/filepath"
  "strings"
  "testing"
  "time"

  "github.com/gin-gonic/gin"

  "github.com/edusync/edusync-backend/internal/catalog"
  "github.com/edusync/edusync-backend/internal/handlers"
  "github.com/edusync/edusync-backend/internal/logger"
  "github.com/edusync/edusync-backend/internal/middleware"
  "github.com/edusync/edusync-backend/internal/repos"
  "github.com/edusync/edusync-backend/internal/services"
  "github.com/edusync/edusync-backend/internal/types"
)

// stubGenerator returns canned text keyed on a prompt substring, so one
// instance can serve every endpoint in a request flow.
type stubGenerator struct {
  byPromptPart map[string]string
  fallback     string
}

func (s *stubGenerator) Generate(ctx context.Context, prompt string) (string, error) {
  for part, response := range s.byPromptPart {
    if strings.Contains(prompt, part) {
      return response, nil
    }
  }
  return s.fallback, nil
}

func newTestRouter(t *testing.T, gen services.TextGenerator) *gin.Engine {
  t.Helper()
  gin.SetMode(gin.TestMode)
  log, err := logger.New("development")
  if err != nil {
    t.Fatalf("logger.New: %v", err)
  }
  dir := t.TempDir()

  userRepo := repos.NewUserRepo(repos.NewUserTable(filepath.Join(dir, "users.csv"), log), log)
  historyRepo := repos.NewHistoryRepo(repos.NewHistoryTable(filepath.Join(dir, "history.csv"), log), log)
  recommendationRepo := repos.NewRecommendationRepo(repos.NewRecommendationTable(filepath.Join(dir, "recommendations.csv"), log), log)
  skillChartRepo := repos.NewSkillChartRepo(repos.NewSkillChartTable(filepath.Join(dir, "skillcharts.csv"), log), log)
  columns := services.CriterionColumns(services.DefaultCriteria)
  psychEvalRepo := repos.NewPsychEvalRepo(repos.NewPsychEvalTable(filepath.Join(dir, "psych_eval.csv"), columns, log), columns, log)

  cat := catalog.New([]types.CourseRecord{
    {Code: "CS201", Title: "Data Structures", Discipline: "Computer Science", Semester: 3, Credits: 4, CreditsKnown: true, Mandatory: true, Hardness: "Hard"},
    {Code: "CS202", Title: "Databases", Discipline: "Computer Science", Semester: 3, Credits: 3, CreditsKnown: true},
  })

  authService := services.NewAuthService(log, userRepo, "router-test-secret", time.Hour)
  historyService := services.NewHistoryService(log, userRepo, historyRepo, cat)
  courseService := services.NewCourseService(log, cat, gen, services.NewMemoryDescriptionCache())
  advisingService := services.NewAdvisingService(log, userRepo, historyRepo, recommendationRepo, cat, gen)
  skillChartService := services.NewSkillChartService(log, userRepo, skillChartRepo, gen)
  psychEvalService := services.NewPsychEvalService(log, userRepo, psychEvalRepo, services.DefaultCriteria, gen)
  chatService := services.NewChatService(log, userRepo, psychEvalRepo, historyRepo, gen)

  return NewRouter(RouterConfig{
    AuthHandler:       handlers.NewAuthHandler(authService, userRepo),
    AuthMiddleware:    middleware.NewAuthMiddleware(log, authService),
    HistoryHandler:    handlers.NewHistoryHandler(historyService),
    CourseHandler:     handlers.NewCourseHandler(courseService),
    AdvisingHandler:   handlers.NewAdvisingHandler(advisingService),
    SkillChartHandler: handlers.NewSkillChartHandler(skillChartService),
    PsychEvalHandler:  handlers.NewPsychEvalHandler(psychEvalService),
    ChatHandler:       handlers.NewChatHandler(chatService),
  })
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
  t.Helper()
  var reader *bytes.Reader
  if body != nil {
    raw, err := json.Marshal(body)
    if err != nil {
      t.Fatalf("marshal body: %v", err)
    }
    reader = bytes.NewReader(raw)
  } else {
    reader = bytes.NewReader(nil)
  }
  req := httptest.NewRequest(method, path, reader)
  req.Header.Set("Content-Type", "application/json")
  rec := httptest.NewRecorder()
  router.ServeHTTP(rec, req)
  return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
  t.Helper()
  var parsed map[string]any
  if err := json.Unmarshal(rec.Body.Bytes(), &parsed); err != nil {
    t.Fatalf("decode response %q: %v", rec.Body.String(), err)
  }
  return parsed
}

func registerBob(t *testing.T, router *gin.Engine) {
  t.Helper()
  rec := doJSON(t, router, http.MethodPost, "/register", map[string]any{
    "username":         "bob",
    "password":         "secret",
    "name":             "Bob",
    "age":              21,
    "discipline":       "Computer Science",
    "current_semester": 3,
    "career_goal":      "Backend Engineering",
  })
  if rec.Code != http.StatusOK {
    t.Fatalf("register: status %d body %s", rec.Code, rec.Body.String())
  }
}

func TestHealthcheck(t *testing.T) {
  router := newTestRouter(t, &stubGenerator{fallback: "ok"})
  rec := doJSON(t, router, http.MethodGet, "/healthcheck", nil)
  if rec.Code != http.StatusOK || rec.Body.String() != "ok" {
    t.Fatalf("healthcheck: %d %q", rec.Code, rec.Body.String())
  }
}

func TestRegisterAndLoginFlow(t *testing.T) {
  router := newTestRouter(t, &stubGenerator{fallback: "ok"})
  registerBob(t, router)

  rec := doJSON(t, router, http.MethodPost, "/login", map[string]any{"username": "bob", "password": "secret"})
  if rec.Code != http.StatusOK {
    t.Fatalf("login: status %d body %s", rec.Code, rec.Body.String())
  }
  parsed := decodeBody(t, rec)
  if parsed["message"] != "Login successful." {
    t.Fatalf("login message: %v", parsed["message"])
  }
  token, _ := parsed["access_token"].(string)
  if token == "" {
    t.Fatalf("missing access token: %v", parsed)
  }
  user, _ := parsed["user"].(map[string]any)
  if _, leaked := user["password"]; leaked {
    t.Fatalf("password leaked in login response: %v", user)
  }

  // wrong password
  rec = doJSON(t, router, http.MethodPost, "/login", map[string]any{"username": "bob", "password": "nope"})
  if rec.Code != http.StatusUnauthorized {
    t.Fatalf("bad login: status %d", rec.Code)
  }

  // token-protected profile route
  req := httptest.NewRequest(http.MethodGet, "/profile", nil)
  req.Header.Set("Authorization", "Bearer "+token)
  authed := httptest.NewRecorder()
  router.ServeHTTP(authed, req)
  if authed.Code != http.StatusOK {
    t.Fatalf("profile: status %d body %s", authed.Code, authed.Body.String())
  }

  anon := doJSON(t, router, http.MethodGet, "/profile", nil)
  if anon.Code != http.StatusUnauthorized {
    t.Fatalf("profile without token: status %d", anon.Code)
  }
}

func TestRegisterDuplicateUsername(t *testing.T) {
  router := newTestRouter(t, &stubGenerator{fallback: "ok"})
  registerBob(t, router)

  rec := doJSON(t, router, http.MethodPost, "/register", map[string]any{
    "username": "bob", "password": "x", "name": "B", "age": 22,
    "discipline": "EE", "current_semester": 1,
  })
  if rec.Code != http.StatusBadRequest {
    t.Fatalf("duplicate register: status %d body %s", rec.Code, rec.Body.String())
  }
}

func TestHistoryRoundTripOverHTTP(t *testing.T) {
  router := newTestRouter(t, &stubGenerator{fallback: "ok"})
  registerBob(t, router)

  // semester arrives as a string, as the frontend sends it
  rec := doJSON(t, router, http.MethodPost, "/add_history", map[string]any{
    "username": "bob",
    "subject":  map[string]any{"subject_code": "CS201", "grade": 88, "attendance": "95", "semester": "3"},
  })
  if rec.Code != http.StatusOK {
    t.Fatalf("add_history: status %d body %s", rec.Code, rec.Body.String())
  }

  get := doJSON(t, router, http.MethodGet, "/get_history?username=bob", nil)
  if get.Code != http.StatusOK {
    t.Fatalf("get_history: status %d", get.Code)
  }
  var records []map[string]any
  if err := json.Unmarshal(get.Body.Bytes(), &records); err != nil {
    t.Fatalf("decode history %q: %v", get.Body.String(), err)
  }
  if len(records) != 1 || records[0]["course_title"] != "Data Structures" {
    t.Fatalf("history join wrong: %v", records)
  }
}

func TestAddHistoryUnknownUser(t *testing.T) {
  router := newTestRouter(t, &stubGenerator{fallback: "ok"})
  rec := doJSON(t, router, http.MethodPost, "/add_history", map[string]any{
    "username": "ghost",
    "subject":  map[string]any{"subject_code": "CS201", "semester": 3},
  })
  if rec.Code != http.StatusNotFound {
    t.Fatalf("expected 404, got %d body %s", rec.Code, rec.Body.String())
  }
}

func TestGetCoursesOverHTTP(t *testing.T) {
  gen := &stubGenerator{byPromptPart: map[string]string{"concise description": "Core CS material."}, fallback: "ok"}
  router := newTestRouter(t, gen)

  rec := doJSON(t, router, http.MethodGet, "/get_courses?discipline=computer&semester=3", nil)
  if rec.Code != http.StatusOK {
    t.Fatalf("get_courses: status %d", rec.Code)
  }
  var results []map[string]any
  if err := json.Unmarshal(rec.Body.Bytes(), &results); err != nil {
    t.Fatalf("decode courses %q: %v", rec.Body.String(), err)
  }
  if len(results) != 2 || results[0]["description"] != "Core CS material." {
    t.Fatalf("courses wrong: %v", results)
  }

  missing := doJSON(t, router, http.MethodGet, "/get_courses?discipline=biology&semester=1", nil)
  parsed := decodeBody(t, missing)
  if missing.Code != http.StatusOK || !strings.Contains(parsed["response"].(string), "No courses found") {
    t.Fatalf("no-match response wrong: %d %v", missing.Code, parsed)
  }

  noTerm := doJSON(t, router, http.MethodGet, "/get_courses?semester=3", nil)
  if noTerm.Code != http.StatusBadRequest {
    t.Fatalf("missing term: status %d", noTerm.Code)
  }
}

func TestRecommendAndPredictOverHTTP(t *testing.T) {
  gen := &stubGenerator{
    byPromptPart: map[string]string{
      "MANDATORY COURSES": "MANDATORY COURSES: $\nCS201 | Data Structures | core $\n",
      "Predicted Grade":   "| CS201      |      85%        |      90%        |",
    },
    fallback: "ok",
  }
  router := newTestRouter(t, gen)
  registerBob(t, router)

  rec := doJSON(t, router, http.MethodPost, "/recommend_courses", map[string]any{"username": "bob", "semester": 3})
  if rec.Code != http.StatusOK {
    t.Fatalf("recommend_courses: status %d body %s", rec.Code, rec.Body.String())
  }
  parsed := decodeBody(t, rec)
  courses, _ := parsed["courses"].([]any)
  if len(courses) != 2 {
    t.Fatalf("expected 2 courses, got %v", parsed)
  }
  if !strings.Contains(parsed["recommendation_explanation"].(string), "CS201") {
    t.Fatalf("explanation wrong: %v", parsed)
  }

  // out of the eligibility window
  early := doJSON(t, router, http.MethodPost, "/recommend_courses", map[string]any{"username": "bob", "semester": 1})
  if early.Code != http.StatusBadRequest {
    t.Fatalf("early semester: status %d", early.Code)
  }

  predict := doJSON(t, router, http.MethodPost, "/predict_grades", map[string]any{
    "username": "bob", "semester": "3", "target_grade": 90,
  })
  if predict.Code != http.StatusOK {
    t.Fatalf("predict_grades: status %d body %s", predict.Code, predict.Body.String())
  }
  predicted := decodeBody(t, predict)
  if !strings.Contains(predicted["predicted_grade_details"].(string), "CS201") {
    t.Fatalf("prediction wrong: %v", predicted)
  }
}

func TestSkillChartOverHTTP(t *testing.T) {
  gen := &stubGenerator{
    byPromptPart: map[string]string{
      "current skills": `{"Analytical Thinking": 40, "Teamwork": 50}`,
      "required skills": `{"Analytical Thinking": 90, "Teamwork": 85}`,
    },
    fallback: "ok",
  }
  router := newTestRouter(t, gen)
  registerBob(t, router)

  rec := doJSON(t, router, http.MethodGet, "/generate_skill_chart?username=bob&refresh=true", nil)
  if rec.Code != http.StatusOK {
    t.Fatalf("generate_skill_chart: status %d body %s", rec.Code, rec.Body.String())
  }
  parsed := decodeBody(t, rec)
  current, _ := parsed["current"].(map[string]any)
  required, _ := parsed["required"].(map[string]any)
  if current["Teamwork"] != float64(50) || required["Teamwork"] != float64(85) {
    t.Fatalf("skill chart wrong: %v", parsed)
  }

  missing := doJSON(t, router, http.MethodGet, "/generate_skill_chart", nil)
  if missing.Code != http.StatusBadRequest {
    t.Fatalf("missing username: status %d", missing.Code)
  }
}

func TestPsychEvalFlowOverHTTP(t *testing.T) {
  gen := &stubGenerator{
    byPromptPart: map[string]string{
      "Generate a question": "How do you handle deadlines?",
      "Rank the user":       "82",
    },
    fallback: "ok",
  }
  router := newTestRouter(t, gen)
  registerBob(t, router)

  question := doJSON(t, router, http.MethodPost, "/psych_eval_question", map[string]any{
    "username": "bob", "current_criterion": "Self-Discipline",
  })
  if question.Code != http.StatusOK {
    t.Fatalf("psych_eval_question: status %d body %s", question.Code, question.Body.String())
  }
  if decodeBody(t, question)["question"] != "How do you handle deadlines?" {
    t.Fatalf("question wrong: %s", question.Body.String())
  }

  rank := doJSON(t, router, http.MethodPost, "/psych_eval_rank", map[string]any{
    "username": "bob", "criterion": "Self-Discipline", "response": "I plan ahead",
  })
  if rank.Code != http.StatusOK {
    t.Fatalf("psych_eval_rank: status %d body %s", rank.Code, rank.Body.String())
  }
  if decodeBody(t, rank)["message"] != "Response recorded successfully." {
    t.Fatalf("rank message wrong: %s", rank.Body.String())
  }

  unknown := doJSON(t, router, http.MethodPost, "/psych_eval_question", map[string]any{
    "username": "bob", "current_criterion": "Juggling",
  })
  if unknown.Code != http.StatusBadRequest {
    t.Fatalf("unknown criterion: status %d", unknown.Code)
  }
}

func TestChatOverHTTP(t *testing.T) {
  gen := &stubGenerator{byPromptPart: map[string]string{"Student's Question": "Focus on algorithms."}, fallback: "ok"}
  router := newTestRouter(t, gen)
  registerBob(t, router)

  rec := doJSON(t, router, http.MethodPost, "/chat_with_ai", map[string]any{
    "username": "bob", "message": "What next?",
  })
  if rec.Code != http.StatusOK {
    t.Fatalf("chat_with_ai: status %d body %s", rec.Code, rec.Body.String())
  }
  if decodeBody(t, rec)["response"] != "Focus on algorithms." {
    t.Fatalf("chat response wrong: %s", rec.Body.String())
  }

  ghost := doJSON(t, router, http.MethodPost, "/chat_with_ai", map[string]any{
    "username": "ghost", "message": "hi",
  })
  if ghost.Code != http.StatusNotFound {
    t.Fatalf("unknown user: status %d", ghost.Code)
  }
}

func TestUpdateProfileOverHTTP(t *testing.T) {
  router := newTestRouter(t, &stubGenerator{fallback: "ok"})
  registerBob(t, router)

  rec := doJSON(t, router, http.MethodPost, "/update_profile", map[string]any{
    "username": "bob", "career_goal": "Data Engineering", "current_semester": "4",
  })
  if rec.Code != http.StatusOK {
    t.Fatalf("update_profile: status %d body %s", rec.Code, rec.Body.String())
  }
  parsed := decodeBody(t, rec)
  user, _ := parsed["user"].(map[string]any)
  if user["career_goal"] != "Data Engineering" || user["current_semester"] != float64(4) {
    t.Fatalf("update wrong: %v", user)
  }
  if user["name"] != "Bob" {
    t.Fatalf("omitted field mutated: %v", user)
  }
}
