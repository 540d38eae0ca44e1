package matcher

import (
	"sort"
	"strings"

	"github.com/khrees2412/resumatch/pkg/models"
)

// BestRole scores every catalog role against the resume and returns the best
// fit along with all scores, in catalog order.
//
// A role's score is the percentage of its skills present in the resume. A skill
// is present when its words appear as a contiguous phrase among the resume's
// alphabetic words, so "power bi" matches "Power BI" but not "power" alone.
// Ties go to the role listed first in the catalog.
func BestRole(resumeText string, roles []models.RoleProfile) (string, []models.RoleScore) {
	haystack := " " + strings.Join(words(resumeText), " ") + " "

	scores := make([]models.RoleScore, 0, len(roles))
	best := -1
	for i, role := range roles {
		rs := scoreRole(haystack, role)
		scores = append(scores, rs)
		if best < 0 || rs.Score > scores[best].Score {
			best = i
		}
	}
	if best < 0 {
		return "", scores
	}
	return scores[best].Role, scores
}

func scoreRole(haystack string, role models.RoleProfile) models.RoleScore {
	rs := models.RoleScore{
		Role:   role.Name,
		Talent: []string{},
		Lack:   []string{},
	}
	if len(role.Skills) == 0 {
		return rs
	}
	for _, skill := range role.Skills {
		phrase := strings.Join(words(skill), " ")
		if phrase != "" && strings.Contains(haystack, " "+phrase+" ") {
			rs.Talent = append(rs.Talent, skill)
		} else {
			rs.Lack = append(rs.Lack, skill)
		}
	}
	rs.Score = 100 * len(rs.Talent) / len(role.Skills)
	return rs
}

// SuggestJobs maps matched skills to job titles. A skill suggests a job when it
// contains the suggestion keyword. The result is sorted and deduplicated.
func SuggestJobs(matchedSkills []string, suggestions []models.Suggestion) []string {
	seen := make(map[string]bool)
	out := []string{}
	for _, skill := range matchedSkills {
		for _, s := range suggestions {
			if s.Keyword == "" || seen[s.Job] {
				continue
			}
			if strings.Contains(skill, s.Keyword) {
				seen[s.Job] = true
				out = append(out, s.Job)
			}
		}
	}
	sort.Strings(out)
	return out
}
