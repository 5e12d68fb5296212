package types

// PsychEvalRow is one row of psych_eval.csv: a username plus one 0-100 score
// column per fixed evaluation criterion. Scores is keyed by the snake_case
// criterion column name; criteria not yet ranked are absent.
type PsychEvalRow struct {
  Username string            `json:"username"`
  Scores   map[string]string `json:"scores"`
}
