package services

import (
  "os"
  "path/filepath"
  "testing"
)

func TestCriterionColumn(t *testing.T) {
  cases := []struct {
    criterion string
    want      string
  }{
    {criterion: "Analytical Thinking", want: "analytical_thinking"},
    {criterion: "Problem-Solving", want: "problem-solving"},
    {criterion: "Learning Style Preference", want: "learning_style_preference"},
  }
  for _, tc := range cases {
    if got := CriterionColumn(tc.criterion); got != tc.want {
      t.Fatalf("CriterionColumn(%q) = %q, want %q", tc.criterion, got, tc.want)
    }
  }
}

func TestLoadCriteriaEmptyPathKeepsDefaults(t *testing.T) {
  criteria, err := LoadCriteria("")
  if err != nil {
    t.Fatalf("LoadCriteria: %v", err)
  }
  if len(criteria) != len(DefaultCriteria) {
    t.Fatalf("expected %d default criteria, got %d", len(DefaultCriteria), len(criteria))
  }
}

func TestLoadCriteriaFromFile(t *testing.T) {
  path := filepath.Join(t.TempDir(), "criteria.yaml")
  content := "criteria:\n  - Analytical Thinking\n  - Grit\n"
  if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
    t.Fatalf("WriteFile: %v", err)
  }

  criteria, err := LoadCriteria(path)
  if err != nil {
    t.Fatalf("LoadCriteria: %v", err)
  }
  if len(criteria) != 2 || criteria[1] != "Grit" {
    t.Fatalf("unexpected criteria: %v", criteria)
  }
}

func TestLoadCriteriaRejectsEmptyList(t *testing.T) {
  path := filepath.Join(t.TempDir(), "criteria.yaml")
  if err := os.WriteFile(path, []byte("criteria: []\n"), 0o644); err != nil {
    t.Fatalf("WriteFile: %v", err)
  }
  if _, err := LoadCriteria(path); err == nil {
    t.Fatalf("expected error for empty criteria list")
  }
}
