package catalog

import (
  "encoding/csv"
  "fmt"
  "os"
  "strconv"
  "strings"

  "github.com/edusync/edusync-backend/internal/logger"
  "github.com/edusync/edusync-backend/internal/types"
)

// Catalog is the static course table, loaded once at startup and never
// written by the running service. Construct it in main and inject it into
// the services that need it.
type Catalog struct {
  courses []types.CourseRecord
}

// Load reads the catalog CSV. Lines starting with '/' are comments and
// leading whitespace inside fields is tolerated. Semester and Credits parse
// permissively: an unparsable value keeps the row but excludes it from
// semester-equality matches (Semester) or renders as unknown (Credits).
func Load(path string, log *logger.Logger) (*Catalog, error) {
  f, err := os.Open(path)
  if err != nil {
    return nil, fmt.Errorf("Failed to open course catalog %s: %w", path, err)
  }
  defer f.Close()

  reader := csv.NewReader(f)
  reader.Comment = '/'
  reader.TrimLeadingSpace = true
  reader.FieldsPerRecord = -1

  rows, err := reader.ReadAll()
  if err != nil {
    return nil, fmt.Errorf("Failed to parse course catalog %s: %w", path, err)
  }
  if len(rows) == 0 {
    return nil, fmt.Errorf("Course catalog %s is empty", path)
  }

  colIndex := make(map[string]int, len(rows[0]))
  for i, col := range rows[0] {
    colIndex[strings.TrimSpace(col)] = i
  }
  for _, required := range []string{"Course Code", "Course Title", "Discipline", "Semester"} {
    if _, ok := colIndex[required]; !ok {
      return nil, fmt.Errorf("Course catalog %s is missing column %q", path, required)
    }
  }

  field := func(row []string, col string) string {
    idx, ok := colIndex[col]
    if !ok || idx >= len(row) {
      return ""
    }
    return strings.TrimSpace(row[idx])
  }

  courses := make([]types.CourseRecord, 0, len(rows)-1)
  for _, row := range rows[1:] {
    course := types.CourseRecord{
      Code:       field(row, "Course Code"),
      Title:      field(row, "Course Title"),
      Discipline: field(row, "Discipline"),
      Semester:   types.SemesterUnknown,
      Hardness:   field(row, "Hardness"),
    }
    if sem, err := strconv.Atoi(field(row, "Semester")); err == nil {
      course.Semester = sem
    }
    if credits, err := strconv.ParseFloat(field(row, "Credits"), 64); err == nil {
      course.Credits = credits
      course.CreditsKnown = true
    }
    if mandatory, err := strconv.ParseFloat(field(row, "Mandatory"), 64); err == nil && mandatory == 1 {
      course.Mandatory = true
    }
    courses = append(courses, course)
  }
  log.Info("Course catalog loaded", "path", path, "courses", len(courses))
  return &Catalog{courses: courses}, nil
}

// New builds a catalog from records directly. Used by tests and callers that
// already hold the rows.
func New(courses []types.CourseRecord) *Catalog {
  return &Catalog{courses: append([]types.CourseRecord(nil), courses...)}
}

// Filter returns the rows whose Discipline or Title contains term
// case-insensitively and whose Semester equals semester. Rows keep catalog
// file order. No match is an empty slice, not an error.
func (c *Catalog) Filter(term string, semester int) []types.CourseRecord {
  lowered := strings.ToLower(term)
  var matched []types.CourseRecord
  for _, course := range c.courses {
    if course.Semester != semester {
      continue
    }
    if strings.Contains(strings.ToLower(course.Discipline), lowered) ||
      strings.Contains(strings.ToLower(course.Title), lowered) {
      matched = append(matched, course)
    }
  }
  return matched
}

// ByCode returns the first catalog row with the given course code.
func (c *Catalog) ByCode(code string) (types.CourseRecord, bool) {
  for _, course := range c.courses {
    if course.Code == code {
      return course, true
    }
  }
  return types.CourseRecord{}, false
}

func (c *Catalog) Len() int {
  return len(c.courses)
}
