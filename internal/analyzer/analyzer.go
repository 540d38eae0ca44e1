// Package analyzer runs the matching engine end to end for one resume and one
// job description and records the outcome in the user's history.
package analyzer

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/khrees2412/resumatch/internal/catalog"
	"github.com/khrees2412/resumatch/internal/ingest"
	"github.com/khrees2412/resumatch/internal/matcher"
	"github.com/khrees2412/resumatch/pkg/models"
	"golang.org/x/sync/errgroup"
)

// maxParallelExtract bounds how many resume files Rank reads at once
const maxParallelExtract = 4

// HistoryStore is where analyses are appended
type HistoryStore interface {
	AddAnalysis(ctx context.Context, rec *models.AnalysisRecord) error
}

// Analyzer turns resume and job description text into reports
type Analyzer struct {
	store   HistoryStore
	catalog *catalog.Catalog
	stop    matcher.StopWords
	logger  *slog.Logger
	now     func() time.Time
}

// New returns an Analyzer scoring against cat and saving to store
func New(store HistoryStore, cat *catalog.Catalog, logger *slog.Logger) *Analyzer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Analyzer{
		store:   store,
		catalog: cat,
		stop:    cat.StopSet(),
		logger:  logger,
		now:     time.Now,
	}
}

// Report scores resumeText against jdText without saving anything
func (a *Analyzer) Report(resumeText, jdText string) *models.Report {
	resume, jd := matcher.ExtractSkills(resumeText, jdText, a.stop)
	match := matcher.Match(resume, jd)
	ats, verdict := matcher.ATSScore(match.MatchPercent, len(match.MatchedSkills), len(match.MissingSkills))
	best, roles := matcher.BestRole(resumeText, a.catalog.Roles)

	return &models.Report{
		Match:       match,
		ATSScore:    ats,
		Verdict:     string(verdict),
		TextScore:   matcher.ATSScoreFromText(resumeText, jdText, a.stop),
		BestRole:    best,
		RoleScores:  roles,
		Suggestions: matcher.SuggestJobs(match.MatchedSkills, a.catalog.Suggestions),
		Tips:        matcher.ImprovementTips(resumeText, match, ats),
		SkillTable:  matcher.SkillTable(resume, jd),
	}
}

// Analyze scores the resume and appends the result to user's history. When
// saving fails the report is still returned together with the error.
func (a *Analyzer) Analyze(ctx context.Context, user, resumeText, jdText string) (*models.Report, error) {
	report := a.Report(resumeText, jdText)
	report.User = user

	rec := &models.AnalysisRecord{
		User:    user,
		Role:    report.BestRole,
		JDMatch: report.TextScore,
		Time:    a.now().UTC(),
	}
	if err := a.store.AddAnalysis(ctx, rec); err != nil {
		a.logger.Error("failed to save analysis", slog.String("user", user), slog.Any("error", err))
		return report, fmt.Errorf("save analysis for %s: %w", user, err)
	}
	report.Record = rec

	a.logger.Debug("analysis saved",
		slog.String("user", user),
		slog.String("role", rec.Role),
		slog.Int("jd_match", rec.JDMatch))
	return report, nil
}

// Ranking is one resume's standing against a job description
type Ranking struct {
	File         string  `json:"file"`
	Similarity   float64 `json:"similarity"`
	MatchPercent int     `json:"match_percent"`
	Err          error   `json:"-"`
}

// Rank reads every resume file and orders them by TF-IDF similarity to the
// job description, best first. Files that cannot be read are ranked as empty
// documents and carry their error.
func (a *Analyzer) Rank(ctx context.Context, files []string, jdText string) ([]Ranking, error) {
	texts := make([]string, len(files))
	rankings := make([]Ranking, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelExtract)
	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			rankings[i].File = file
			text, err := ingest.ExtractFile(file)
			if err != nil {
				a.logger.Warn("could not read resume, ranking it as empty",
					slog.String("file", file), slog.Any("error", err))
				rankings[i].Err = err
			}
			texts[i] = text
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	scores := matcher.RankBySimilarity(texts, jdText)
	for i := range rankings {
		if i < len(scores) {
			rankings[i].Similarity = scores[i]
		}
		rankings[i].MatchPercent = matcher.MatchText(texts[i], jdText, a.stop).MatchPercent
	}

	sort.SliceStable(rankings, func(i, j int) bool {
		return rankings[i].Similarity > rankings[j].Similarity
	})
	return rankings, nil
}
