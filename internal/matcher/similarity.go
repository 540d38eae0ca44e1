package matcher

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"regexp"
	"strings"
)

var (
	ErrEmptyVocabulary = errors.New("empty vocabulary: documents contain no terms")
	ErrNumerical       = errors.New("similarity produced a non-finite value")
)

// termRe picks words of two or more word characters
var termRe = regexp.MustCompile(`\b\w\w+\b`)

func terms(doc string) []string {
	return termRe.FindAllString(strings.ToLower(doc), -1)
}

// Similarity builds a TF-IDF space over corpus plus jobDescription and returns the
// cosine similarity of each corpus document against the job description, in
// corpus order. An empty corpus or blank job description returns nil, nil.
//
// Weights are raw term counts times a smoothed idf, ln((1+n)/(1+df)) + 1,
// with every document vector L2-normalized.
func Similarity(corpus []string, jobDescription string) ([]float64, error) {
	if len(corpus) == 0 || strings.TrimSpace(jobDescription) == "" {
		return nil, nil
	}

	docs := make([]string, 0, len(corpus)+1)
	docs = append(docs, corpus...)
	docs = append(docs, jobDescription)

	vocab := make(map[string]int)
	counts := make([]map[int]float64, len(docs))
	df := []float64{}
	for i, doc := range docs {
		counts[i] = make(map[int]float64)
		for _, term := range terms(doc) {
			idx, ok := vocab[term]
			if !ok {
				idx = len(vocab)
				vocab[term] = idx
				df = append(df, 0)
			}
			if counts[i][idx] == 0 {
				df[idx]++
			}
			counts[i][idx]++
		}
	}
	if len(vocab) == 0 {
		return nil, ErrEmptyVocabulary
	}

	n := float64(len(docs))
	idf := make([]float64, len(df))
	for i, d := range df {
		idf[i] = math.Log((1+n)/(1+d)) + 1
	}

	vectors := make([]map[int]float64, len(docs))
	for i, c := range counts {
		vectors[i] = weigh(c, idf)
	}

	query := vectors[len(vectors)-1]
	scores := make([]float64, len(corpus))
	for i := range corpus {
		s := dot(vectors[i], query)
		if math.IsNaN(s) || math.IsInf(s, 0) {
			return nil, fmt.Errorf("%w: document %d", ErrNumerical, i)
		}
		scores[i] = s
	}
	return scores, nil
}

// RankBySimilarity is Similarity with failures degraded to an empty result.
// The failure is logged so it can still be told apart from "no documents".
func RankBySimilarity(corpus []string, jobDescription string) []float64 {
	scores, err := Similarity(corpus, jobDescription)
	if err != nil {
		slog.Warn("similarity failed, returning no scores",
			slog.Int("documents", len(corpus)), slog.Any("error", err))
		return []float64{}
	}
	if scores == nil {
		return []float64{}
	}
	return scores
}

// weigh applies idf to raw counts and L2-normalizes the result.
// A document without terms stays the zero vector.
func weigh(counts map[int]float64, idf []float64) map[int]float64 {
	vec := make(map[int]float64, len(counts))
	var norm float64
	for idx, tf := range counts {
		w := tf * idf[idx]
		vec[idx] = w
		norm += w * w
	}
	if norm == 0 {
		return vec
	}
	norm = math.Sqrt(norm)
	for idx := range vec {
		vec[idx] /= norm
	}
	return vec
}

func dot(a, b map[int]float64) float64 {
	if len(b) < len(a) {
		a, b = b, a
	}
	var sum float64
	for idx, w := range a {
		sum += w * b[idx]
	}
	return sum
}
