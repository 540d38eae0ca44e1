package matcher

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/khrees2412/resumatch/pkg/models"
)

const (
	// shortResumeWords is the word count under which a resume is called short
	shortResumeWords = 150
	// maxKeywordTip caps how many missing keywords one tip lists
	maxKeywordTip = 8
)

// SkillTable lists every job description token and whether the resume has it
func SkillTable(resume, jd TokenSet) []models.SkillRow {
	rows := make([]models.SkillRow, 0, len(jd))
	for _, skill := range jd.Sorted() {
		rows = append(rows, models.SkillRow{Skill: skill, InResume: resume.Has(skill)})
	}
	return rows
}

// ImprovementTips returns rule based advice for a resume given its match
// against a job description and its ATS score.
func ImprovementTips(resumeText string, match models.MatchResult, atsScore int) []string {
	tips := []string{}

	if n := len(match.MissingSkills); n > 0 {
		missing := match.MissingSkills
		if n > maxKeywordTip {
			missing = missing[:maxKeywordTip]
		}
		tips = append(tips, fmt.Sprintf("Work these job description keywords into your resume where they apply: %s.",
			strings.Join(missing, ", ")))
	}
	if match.MatchPercent < GoodMatchThreshold {
		tips = append(tips, fmt.Sprintf("Tailor your resume to this posting: only %d%% of its keywords appear.", match.MatchPercent))
	}
	if atsScore <= 45 {
		tips = append(tips, "Use the job's own wording for skills and tools so keyword based screening picks them up.")
	}
	if len(strings.Fields(resumeText)) < shortResumeWords {
		tips = append(tips, "Your resume is short; describe projects, internships and responsibilities in more detail.")
	}
	if !strings.ContainsFunc(resumeText, unicode.IsDigit) {
		tips = append(tips, "Quantify achievements with numbers such as percentages, team sizes or time saved.")
	}

	if len(tips) == 0 {
		tips = append(tips, "Your resume covers this job description well; keep it concise and current.")
	}
	return tips
}
