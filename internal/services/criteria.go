package services

import (
  "fmt"
  "os"
  "strings"

  "gopkg.in/yaml.v3"
)

// DefaultCriteria is the fixed psychological-evaluation criteria list. It
// defines the psych_eval.csv column set regardless of how many criteria have
// been scored for a user.
var DefaultCriteria = []string{
  "Analytical Thinking",
  "Creativity",
  "Logical Reasoning",
  "Problem-Solving",
  "Decision-Making",
  "Emotional Resilience",
  "Motivation",
  "Curiosity",
  "Attention to Detail",
  "Communication Skills",
  "Collaboration",
  "Risk-Taking",
  "Self-Discipline",
  "Learning Style Preference",
  "Adaptability",
}

// LoadCriteria reads a criteria override file of the form:
//
//	criteria:
//	  - Analytical Thinking
//	  - Creativity
//
// An empty path keeps the defaults.
func LoadCriteria(path string) ([]string, error) {
  if path == "" {
    return DefaultCriteria, nil
  }
  raw, err := os.ReadFile(path)
  if err != nil {
    return nil, fmt.Errorf("Failed to read criteria file %s: %w", path, err)
  }
  var parsed struct {
    Criteria []string `yaml:"criteria"`
  }
  if err := yaml.Unmarshal(raw, &parsed); err != nil {
    return nil, fmt.Errorf("Failed to parse criteria file %s: %w", path, err)
  }
  if len(parsed.Criteria) == 0 {
    return nil, fmt.Errorf("Criteria file %s lists no criteria", path)
  }
  return parsed.Criteria, nil
}

// CriterionColumn converts a display name to its CSV column name.
func CriterionColumn(criterion string) string {
  return strings.ReplaceAll(strings.ToLower(criterion), " ", "_")
}

// CriterionColumns maps a criteria list to CSV column names.
func CriterionColumns(criteria []string) []string {
  columns := make([]string, 0, len(criteria))
  for _, criterion := range criteria {
    columns = append(columns, CriterionColumn(criterion))
  }
  return columns
}
