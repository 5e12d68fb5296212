package services

import (
  "encoding/json"
  "fmt"
  "strings"

  "github.com/edusync/edusync-backend/internal/types"
)

func courseDescriptionPrompt(code, title string) string {
  return fmt.Sprintf(
    "Generate a concise description (under 80 characters) for the course: %s - %s.",
    code, title,
  )
}

func recommendationPrompt(semester int, discipline, careerGoal, coursesInfo string, predictedGrade *float64) string {
  var b strings.Builder
  fmt.Fprintf(&b, "Given the following courses available in semester %d for %s:\n", semester, discipline)
  b.WriteString(coursesInfo)
  b.WriteString("\n")
  fmt.Fprintf(&b, "The student is interested in a career in %s.\n", careerGoal)
  b.WriteString("Recommend courses ensuring total credits are between 20 and 30.\n")
  b.WriteString("Format your response exactly as follows:\n")
  b.WriteString("MANDATORY COURSES: $\n")
  b.WriteString("COURSE_CODE | COURSE_TITLE | REASON_FOR_RECOMMENDATION $\n")
  b.WriteString("\n")
  b.WriteString("OPTIONAL COURSES: $\n")
  b.WriteString("COURSE_CODE | COURSE_TITLE | REASON_FOR_RECOMMENDATION $\n")
  b.WriteString("\n")
  b.WriteString("Rules:\n")
  b.WriteString("1. Include all mandatory courses first\n")
  b.WriteString("2. Each course must be on a new line\n")
  b.WriteString("3. Use | as separator\n")
  b.WriteString("4. End each line with $\n")
  b.WriteString("5. Keep reasons brief and relevant\n")
  b.WriteString("6. No additional text or symbols\n")
  b.WriteString("7. Maintain exact section headers as shown\n")
  if predictedGrade != nil {
    fmt.Fprintf(&b, " The student's predicted grade is %g%%.", *predictedGrade)
  }
  return b.String()
}

func gradePredictionPrompt(historySummary, recommendedCourses string, semester int, targetGrade *float64) string {
  var b strings.Builder
  fmt.Fprintf(&b, "Past Academic Records:\n%s\n", historySummary)
  fmt.Fprintf(&b, "Recommended Courses for Semester %d:\n%s\n", semester, recommendedCourses)
  if targetGrade != nil {
    fmt.Fprintf(&b, "Target Grade: %g%%\n", *targetGrade)
  }
  b.WriteString("\n")
  b.WriteString("+-------------+------------------+------------------+\n")
  b.WriteString("| Course Code | Predicted Grade | Required Grade   |\n")
  b.WriteString("+-------------+------------------+------------------+\n")
  b.WriteString("Return a table in the exact format shown above, with:\n")
  b.WriteString("1. Each row following the pattern: |{code:^11}|{predicted:^16}|{required:^16}|\n")
  b.WriteString("2. Only include numeric values for grades (0-100)\n")
  b.WriteString("3. End the table with: +-------------+------------------+------------------+\n")
  b.WriteString("4. Align all values in the center of their columns\n")
  b.WriteString("5. Include % symbol after each grade value\n")
  b.WriteString("Example row: | CS101      |      85%        |      90%        |\n")
  return b.String()
}

func currentSkillsPrompt(user *types.User) string {
  var b strings.Builder
  fmt.Fprintf(&b, "Based on the student's career goal: %s and discipline: %s,\n", user.CareerGoal, user.Discipline)
  b.WriteString("generate ONLY a 5 skill JSON object assessing the student's current skills after strict evaluation.\n")
  b.WriteString("For each skill, assign the current level (0-100) as a number. Do not include any explanation or additional characters.\n")
  b.WriteString("Example (if the keys are \"Analytical Thinking\", \"Communication Skills\", \"Research Skills\", \"Teamwork\", \"Technical Writing\"):\n")
  b.WriteString("{\"Analytical Thinking\": 12, \"Communication Skills\": 34, \"Research Skills\": 55, \"Teamwork\": 43, \"Technical Writing\": 20}")
  return b.String()
}

func requiredSkillsPrompt(user *types.User, keys []string) string {
  keysJSON, _ := json.Marshal(keys)
  var b strings.Builder
  fmt.Fprintf(&b, "Based on the student's career goal: %s and discipline: %s,\n", user.CareerGoal, user.Discipline)
  fmt.Fprintf(&b, "Using exactly these keys: %s\n", string(keysJSON))
  b.WriteString("generate ONLY a 5 skill JSON object for required skills to reach the goal where each key is identical and assign the required minimum level (0-100) as a number. Do not include any explanation or additional characters.\n")
  b.WriteString("Example: {\"Analytical Thinking\": 85, \"Communication Skills\": 90, \"Research Skills\": 75, \"Teamwork\": 95, \"Technical Writing\": 80}")
  return b.String()
}

func psychQuestionPrompt(criterion string, user *types.User) string {
  return fmt.Sprintf(
    "Generate a question to evaluate the user's %s. "+
      "The user is %d years old, studying %s, and is currently in semester %d. "+
      "The question should be short and specific to their background and relevant to %s "+
      "and must not be too focused on their discipline as this is a question for psychological evaluation. "+
      "Only return the question text without any additional explanation or context.",
    criterion, user.Age, user.Discipline, user.CurrentSemester, criterion,
  )
}

func psychRankPrompt(criterion, response string) string {
  return fmt.Sprintf(
    "The user responded to the question about %s with: '%s'. "+
      "Rank the user's ability in this criterion on a scale of 1 to 100. "+
      "Only return the numeric score as a single number without any additional text or explanation.",
    criterion, response,
  )
}

func chatPrompt(user *types.User, psychScores map[string]string, history []*types.HistoryRecord, message string) string {
  psychJSON, _ := json.MarshalIndent(psychScores, "", "  ")

  var b strings.Builder
  b.WriteString("You are the EduSync AI assistant helping a student. Here's the context about the student:\n\n")
  b.WriteString("Personal Information:\n")
  fmt.Fprintf(&b, "- Age: %d\n", user.Age)
  fmt.Fprintf(&b, "- Discipline: %s\n", user.Discipline)
  fmt.Fprintf(&b, "- Current Semester: %d\n", user.CurrentSemester)
  fmt.Fprintf(&b, "- Career Goal: %s\n\n", user.CareerGoal)
  b.WriteString("Psychological Profile (out of 100):\n")
  b.Write(psychJSON)
  b.WriteString("\n\n")
  if len(history) > 0 {
    b.WriteString("Academic History:\n")
    for _, rec := range history {
      fmt.Fprintf(&b, "- %s: grade %s, attendance %s (semester %d)\n", rec.SubjectCode, rec.Grade, rec.Attendance, rec.Semester)
    }
    b.WriteString("\n")
  }
  b.WriteString("Consider the student's background, goals, and psychological profile while answering.\n")
  b.WriteString("Provide answers that are:\n")
  b.WriteString("1. Tailored to their academic level and discipline\n")
  b.WriteString("2. Aligned with their career goals\n")
  b.WriteString("3. Considerate of their psychological strengths and areas for improvement\n")
  b.WriteString("4. Encouraging and supportive\n")
  b.WriteString("5. Free of text formatters and unwanted symbols; keep answers short and precise\n")
  b.WriteString("6. Honest about the student's weaknesses\n\n")
  fmt.Fprintf(&b, "Student's Question: %s\n\n", message)
  b.WriteString("Provide a helpful, personalized response while following all the rules:")
  return b.String()
}
