package types

// User is one row of users.csv. The password column holds a bcrypt hash and
// never leaves the process in a response payload.
type User struct {
  Username        string  `json:"username"`
  Password        string  `json:"-"`
  Name            string  `json:"name"`
  Age             int     `json:"age"`
  Discipline      string  `json:"discipline"`
  CurrentSemester int     `json:"current_semester"`
  CareerGoal      string  `json:"career_goal"`
}
