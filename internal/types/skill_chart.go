package types

// SkillChart is one row of skillcharts.csv. Skills holds the serialized
// current/required score mapping. At most one row per username (upsert).
type SkillChart struct {
  Username string  `json:"username"`
  Skills   string  `json:"skills"`
}
