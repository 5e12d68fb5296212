package types

// SemesterUnknown marks a catalog row whose semester column did not parse.
// Such rows never match a semester-equality filter but stay in the catalog.
const SemesterUnknown = -1

// CourseRecord is one row of the static course catalog. Immutable for the
// process lifetime.
type CourseRecord struct {
  Code         string   `json:"course_code"`
  Title        string   `json:"course_title"`
  Discipline   string   `json:"discipline"`
  Semester     int      `json:"semester"`
  Credits      float64  `json:"credits"`
  CreditsKnown bool     `json:"-"`
  Mandatory    bool     `json:"mandatory"`
  Hardness     string   `json:"hardness"`
}
