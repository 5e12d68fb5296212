package handlers

import (
  "fmt"
  "net/http"
  "strconv"
  "strings"

  "github.com/gin-gonic/gin"

  "github.com/edusync/edusync-backend/internal/services"
)

type CourseHandler struct {
  courseService services.CourseService
}

func NewCourseHandler(courseService services.CourseService) *CourseHandler {
  return &CourseHandler{courseService: courseService}
}

func (ch *CourseHandler) GetCourses(c *gin.Context) {
  term := strings.TrimSpace(c.Query("discipline"))
  semesterRaw := strings.TrimSpace(c.Query("semester"))
  if term == "" || semesterRaw == "" {
    c.JSON(http.StatusBadRequest, gin.H{"error": "Please provide both search term and semester"})
    return
  }
  semester, err := strconv.Atoi(semesterRaw)
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid semester value"})
    return
  }

  results, err := ch.courseService.GetCourses(c.Request.Context(), term, semester)
  if err != nil {
    RespondError(c, err)
    return
  }
  if len(results) == 0 {
    RespondOK(c, gin.H{"response": fmt.Sprintf("No courses found for '%s' in semester %d.", term, semester)})
    return
  }
  RespondOK(c, results)
}
