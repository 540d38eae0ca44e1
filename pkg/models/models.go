package models

import "time"

// User is an account allowed to run analyses
type User struct {
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// AnalysisRecord is one row of a user's analysis history.
// Records are appended once per analyze action and never updated.
type AnalysisRecord struct {
	ID      string    `json:"id"`
	User    string    `json:"user"`
	Role    string    `json:"role"`
	JDMatch int       `json:"jd_match"` // 0-100
	Time    time.Time `json:"time"`
}

// RoleProfile is a catalog role and the skills it requires
type RoleProfile struct {
	Name   string   `json:"name" yaml:"name"`
	Skills []string `json:"skills" yaml:"skills"`
}

// RoleScore is how well a resume covers one RoleProfile
type RoleScore struct {
	Role   string   `json:"role"`
	Score  int      `json:"score"`  // 0-100
	Talent []string `json:"talent"` // catalog skills found in the resume
	Lack   []string `json:"lack"`   // catalog skills not found
}

// MatchResult compares a resume token set against a job description token set
type MatchResult struct {
	MatchedSkills []string `json:"matched_skills"`
	MissingSkills []string `json:"missing_skills"`
	MatchPercent  int      `json:"match_percent"`
	Decision      string   `json:"decision"`
}

// SkillRow is one line of the skill match table
type SkillRow struct {
	Skill    string `json:"skill"`
	InResume bool   `json:"in_resume"`
}

// Report is everything produced by a single analyze action
type Report struct {
	User        string       `json:"user"`
	Match       MatchResult  `json:"match"`
	ATSScore    int          `json:"ats_score"`
	Verdict     string       `json:"verdict"`
	TextScore   int          `json:"text_score"` // capped at 95
	BestRole    string       `json:"best_role"`
	RoleScores  []RoleScore  `json:"role_scores"`
	Suggestions []string     `json:"suggestions"`
	Tips        []string     `json:"tips"`
	SkillTable  []SkillRow   `json:"skill_table"`

	// Record is the stored history row, nil until the analysis is saved
	Record *AnalysisRecord `json:"record,omitempty"`
}

// UserStats summarizes a user's history for the dashboard
type UserStats struct {
	Total        int `json:"total"`
	AverageMatch int `json:"average_match"`
	Gap          int `json:"gap"`
}

// DayCount is the number of analyses run on one calendar day
type DayCount struct {
	Day   string `json:"day"` // YYYY-MM-DD
	Count int    `json:"count"`
}

// RoleCount is how many analyses picked a role as best fit
type RoleCount struct {
	Role  string `json:"role"`
	Count int    `json:"count"`
}

// Suggestion maps a skill keyword to a job title worth considering
type Suggestion struct {
	Keyword string `json:"keyword" yaml:"keyword"`
	Job     string `json:"job" yaml:"job"`
}
