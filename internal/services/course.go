package services

import (
  "context"
  "strings"

  "golang.org/x/sync/errgroup"

  "github.com/edusync/edusync-backend/internal/apperr"
  "github.com/edusync/edusync-backend/internal/catalog"
  "github.com/edusync/edusync-backend/internal/logger"
  "github.com/edusync/edusync-backend/internal/types"
)

const descriptionConcurrency = 4

// CourseResult is a catalog row plus its generated short description.
type CourseResult struct {
  types.CourseRecord
  Description string `json:"description"`
}

type CourseService interface {
  GetCourses(ctx context.Context, term string, semester int) ([]CourseResult, error)
}

type courseService struct {
  log       *logger.Logger
  catalog   *catalog.Catalog
  generator TextGenerator
  cache     DescriptionCache
}

func NewCourseService(log *logger.Logger, cat *catalog.Catalog, generator TextGenerator, cache DescriptionCache) CourseService {
  serviceLog := log.With("service", "CourseService")
  return &courseService{log: serviceLog, catalog: cat, generator: generator, cache: cache}
}

// GetCourses filters the catalog, then fans out one description request per
// course with bounded concurrency. A failed generation degrades to a
// placeholder instead of failing the request.
func (cs *courseService) GetCourses(ctx context.Context, term string, semester int) ([]CourseResult, error) {
  if term == "" {
    return nil, apperr.InvalidArgument("Please provide both search term and semester")
  }

  matched := cs.catalog.Filter(term, semester)
  results := make([]CourseResult, len(matched))

  group, groupCtx := errgroup.WithContext(ctx)
  group.SetLimit(descriptionConcurrency)
  for i, course := range matched {
    results[i] = CourseResult{CourseRecord: course}
    if results[i].Hardness == "" {
      results[i].Hardness = "N/A"
    }
    group.Go(func() error {
      results[i].Description = cs.describeCourse(groupCtx, course)
      return nil
    })
  }
  // workers never return errors; degraded descriptions are placeholders
  _ = group.Wait()
  return results, nil
}

func (cs *courseService) describeCourse(ctx context.Context, course types.CourseRecord) string {
  if cached, ok := cs.cache.Get(ctx, course.Code); ok {
    return cached
  }

  text, err := cs.generator.Generate(ctx, courseDescriptionPrompt(course.Code, course.Title))
  if err != nil {
    cs.log.Warn("Course description generation failed", "course", course.Code, "error", err)
    return "Description not available."
  }
  description := strings.TrimSpace(text)
  if runes := []rune(description); len(runes) > 80 {
    description = string(runes[:80]) + "..."
  }
  if description == "" {
    return "Description not available."
  }
  cs.cache.Set(ctx, course.Code, description)
  return description
}
