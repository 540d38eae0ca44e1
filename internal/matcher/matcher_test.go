package matcher

import (
	"testing"

	"github.com/khrees2412/resumatch/internal/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var stop = StopWords(catalog.Default().StopSet())

const (
	sampleResume = "Experienced Python developer skilled in SQL and machine learning"
	sampleJD     = "Looking for a Python developer with SQL and cloud experience"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"empty", "", []string{}},
		{"whitespace only", "  \t\n ", []string{}},
		{"drops short tokens", "Go is ok at C", []string{}},
		{"punctuation and digits", "Python3, SQL/NoSQL; k8s!", []string{"nosql", "python", "sql"}},
		{"duplicates collapse", "python Python PYTHON", []string{"python"}},
		{"stop words removed", "the team with their tools", []string{"team", "tools"}},
		{"non ascii discarded", "café résumé naïve", []string{"caf", "sum"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.input, stop).Sorted())
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		sampleResume,
		sampleJD,
		"C++/Go engineer -- 5 years @ ACME, loves Kubernetes & Terraform!!!",
		"",
		"ÜBER-cool data-driven analyst",
	}
	for _, in := range inputs {
		once := Normalize(in, stop)
		assert.Equal(t, once, Normalize(once.Text(), stop), "input %q", in)
	}
}

func TestExtractSkillsScenario(t *testing.T) {
	resume, jd := ExtractSkills(sampleResume, sampleJD, stop)

	for _, tok := range []string{"python", "developer", "skilled", "sql", "machine", "learning"} {
		assert.True(t, resume.Has(tok), "resume should contain %q", tok)
	}
	assert.Equal(t, []string{"cloud", "developer", "experience", "python", "sql"}, jd.Sorted())
}

func TestMatchScenario(t *testing.T) {
	result := MatchText(sampleResume, sampleJD, stop)

	assert.Equal(t, []string{"developer", "python", "sql"}, result.MatchedSkills)
	assert.Equal(t, []string{"cloud", "experience"}, result.MissingSkills)
	assert.Equal(t, 60, result.MatchPercent)
	assert.Equal(t, DecisionGood, result.Decision)
}

func TestMatchEmptyJobDescription(t *testing.T) {
	result := MatchText(sampleResume, "", stop)

	assert.Equal(t, 0, result.MatchPercent)
	assert.Empty(t, result.MatchedSkills)
	assert.Empty(t, result.MissingSkills)
	assert.Equal(t, DecisionPoor, result.Decision)
}

func TestMatchEmptyResume(t *testing.T) {
	result := Match(NewTokenSet(), NewTokenSet("python", "sql"))

	assert.Equal(t, 0, result.MatchPercent)
	assert.Empty(t, result.MatchedSkills)
	assert.Equal(t, []string{"python", "sql"}, result.MissingSkills)
}

func TestMatchPartitionsJobDescription(t *testing.T) {
	cases := []struct {
		resume TokenSet
		jd     TokenSet
	}{
		{NewTokenSet("a1", "b2", "c3"), NewTokenSet("b2", "c3", "d4")},
		{NewTokenSet(), NewTokenSet("x")},
		{NewTokenSet("x"), NewTokenSet()},
		{NewTokenSet("same", "set"), NewTokenSet("same", "set")},
	}
	for _, c := range cases {
		result := Match(c.resume, c.jd)

		union := NewTokenSet(append(append([]string{}, result.MatchedSkills...), result.MissingSkills...)...)
		assert.Equal(t, c.jd, union)
		assert.Empty(t, NewTokenSet(result.MatchedSkills...).Intersect(NewTokenSet(result.MissingSkills...)))
		assert.GreaterOrEqual(t, result.MatchPercent, 0)
		assert.LessOrEqual(t, result.MatchPercent, 100)
	}
}

func TestMatchFloorsPercent(t *testing.T) {
	result := Match(NewTokenSet("one"), NewTokenSet("one", "two", "three"))
	assert.Equal(t, 33, result.MatchPercent)
	assert.Equal(t, DecisionPoor, result.Decision)
}

func TestATSScore(t *testing.T) {
	tests := []struct {
		name         string
		matchPercent int
		matched      int
		missing      int
		wantScore    int
		wantVerdict  Verdict
	}{
		{"all zero", 0, 0, 0, 0, VerdictWeak},
		{"clamps at 100", 100, 10, 0, 100, VerdictStrong},
		{"clamps at 100 with many skills", 100, 50, 0, 100, VerdictStrong},
		{"clamps at 0", 0, 0, 5, 0, VerdictWeak},
		{"rounds up", 1, 0, 0, 1, VerdictWeak},
		{"scenario", 60, 3, 2, 42, VerdictWeak},
		{"strong boundary", 5, 17, 0, 71, VerdictStrong},
		{"seventy is average", 50, 10, 0, 70, VerdictAverage},
		{"average boundary", 10, 10, 0, 46, VerdictAverage},
		{"forty five is weak", 75, 0, 0, 45, VerdictWeak},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, verdict := ATSScore(tt.matchPercent, tt.matched, tt.missing)
			assert.Equal(t, tt.wantScore, score)
			assert.Equal(t, tt.wantVerdict, verdict)
		})
	}
}

func TestATSScoreClampsForAnyMatchedCount(t *testing.T) {
	for k := 0; k <= 40; k++ {
		score, _ := ATSScore(100, k, 0)
		assert.LessOrEqual(t, score, 100)
		if k >= 10 {
			assert.Equal(t, 100, score)
		}
	}
}

func TestATSScoreFromText(t *testing.T) {
	assert.Equal(t, 60, ATSScoreFromText(sampleResume, sampleJD, stop))
	assert.Equal(t, 95, ATSScoreFromText(sampleJD, sampleJD, stop), "identical texts stop at the ceiling")
	assert.Equal(t, 0, ATSScoreFromText(sampleResume, "", stop))
	assert.Equal(t, 0, ATSScoreFromText("", sampleJD, stop))

	texts := []string{sampleResume, sampleJD, "python", "", "python sql cloud developer experience"}
	for _, r := range texts {
		for _, j := range texts {
			assert.LessOrEqual(t, ATSScoreFromText(r, j, stop), TextScoreCeiling)
		}
	}
}

func TestSimilarity(t *testing.T) {
	scores, err := Similarity([]string{"python sql"}, "python")
	require.NoError(t, err)
	require.Len(t, scores, 1)
	assert.InDelta(t, 0.5797, scores[0], 1e-3)

	scores, err = Similarity([]string{"java spring", sampleJD, "python developer"}, sampleJD)
	require.NoError(t, err)
	require.Len(t, scores, 3)
	assert.InDelta(t, 0.0, scores[0], 1e-9)
	assert.InDelta(t, 1.0, scores[1], 1e-9)
	assert.Greater(t, scores[2], scores[0])
	assert.Less(t, scores[2], scores[1])
}

func TestSimilarityNoOp(t *testing.T) {
	scores, err := Similarity(nil, "any job")
	assert.NoError(t, err)
	assert.Empty(t, scores)

	scores, err = Similarity([]string{"a resume"}, "   ")
	assert.NoError(t, err)
	assert.Empty(t, scores)

	assert.Empty(t, RankBySimilarity([]string{}, "any job"))
	assert.Empty(t, RankBySimilarity([]string{"a resume"}, ""))
}

func TestSimilarityEmptyVocabulary(t *testing.T) {
	_, err := Similarity([]string{"a b c"}, "x y")
	assert.ErrorIs(t, err, ErrEmptyVocabulary)

	scores := RankBySimilarity([]string{"a b c"}, "x y")
	assert.NotNil(t, scores)
	assert.Empty(t, scores)
}

func TestSimilarityBlankDocument(t *testing.T) {
	scores := RankBySimilarity([]string{"", "python"}, "python")
	require.Len(t, scores, 2)
	assert.Equal(t, 0.0, scores[0])
	assert.InDelta(t, 1.0, scores[1], 1e-9)
}
