// Package matcher compares resumes with job descriptions. Every function here
// is a pure function of its inputs.
package matcher

import "github.com/khrees2412/resumatch/pkg/models"

// GoodMatchThreshold is the match percentage at which a resume counts as a good match
const GoodMatchThreshold = 60

const (
	DecisionGood = "Good Match"
	DecisionPoor = "Not a Good Match"
)

// Match compares a resume token set against a job description token set.
// Matched and missing skills together make up the job description set.
func Match(resume, jd TokenSet) models.MatchResult {
	matched := resume.Intersect(jd)
	missing := jd.Difference(resume)

	percent := 0
	if len(jd) > 0 {
		percent = 100 * len(matched) / len(jd)
	}

	decision := DecisionPoor
	if percent >= GoodMatchThreshold {
		decision = DecisionGood
	}

	return models.MatchResult{
		MatchedSkills: matched.Sorted(),
		MissingSkills: missing.Sorted(),
		MatchPercent:  percent,
		Decision:      decision,
	}
}

// MatchText normalizes both texts and matches them
func MatchText(resumeText, jdText string, stop StopWords) models.MatchResult {
	return Match(ExtractSkills(resumeText, jdText, stop))
}
