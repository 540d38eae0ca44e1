package matcher

import "math"

// Verdict grades an ATS score
type Verdict string

const (
	VerdictWeak    Verdict = "Weak"
	VerdictAverage Verdict = "Average"
	VerdictStrong  Verdict = "Strong"
)

// TextScoreCeiling is the highest score ATSScoreFromText reports
const TextScoreCeiling = 95

// ATSScore derives a 0-100 score from match statistics:
// round(0.6*matchPercent + 4*matched - 3*missing), clamped.
func ATSScore(matchPercent, matchedCount, missingCount int) (int, Verdict) {
	raw := float64(matchPercent)*0.6 + float64(matchedCount)*4 - float64(missingCount)*3
	score := int(math.Round(raw))
	score = max(0, min(100, score))

	switch {
	case score > 70:
		return score, VerdictStrong
	case score > 45:
		return score, VerdictAverage
	default:
		return score, VerdictWeak
	}
}

// ATSScoreFromText is the share of job description tokens found in the resume,
// as a percentage capped at TextScoreCeiling.
func ATSScoreFromText(resumeText, jdText string, stop StopWords) int {
	resume, jd := ExtractSkills(resumeText, jdText, stop)
	if len(jd) == 0 {
		return 0
	}
	score := 100 * len(resume.Intersect(jd)) / len(jd)
	return min(score, TextScoreCeiling)
}
