package types

// Recommendation is one row of recommendations.csv. Append-only log; lookups
// take the first match for a (username, semester) pair.
type Recommendation struct {
  Username           string  `json:"username"`
  Semester           int     `json:"semester"`
  RecommendedCourses string  `json:"recommended_courses"`
}
