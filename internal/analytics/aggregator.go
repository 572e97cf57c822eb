// Package analytics computes aggregate summaries over the analysis history.
package analytics

import (
	"sort"

	"github.com/commentpulse/commentpulse/internal/models"
)

// SentimentUnknown buckets sentiment or priority values outside the fixed
// vocabulary. The upstream analyzer should never produce them, but a record
// that carries one must be counted, not dropped.
const SentimentUnknown = "unknown"

const highConfidenceThreshold = 0.8

// Summary covers the full history sequence.
type Summary struct {
	Total             int            `json:"total"`
	Categories        map[string]int `json:"categories"`
	Sentiments        map[string]int `json:"sentiments"`
	Aspects           map[string]int `json:"aspects"`
	Priorities        map[string]int `json:"priorities"`
	AverageConfidence float64        `json:"averageConfidence"`
	MLPowered         int            `json:"mlPowered"`
	MLAccuracy        float64        `json:"mlAccuracy"`
	ModelVersions     []string       `json:"modelVersions"`
}

// MLSummary covers only the ML-enhanced subset of the history.
type MLSummary struct {
	NoMLData           bool    `json:"noMLData,omitempty"`
	Total              int     `json:"total"`
	AverageConfidence  float64 `json:"averageConfidence"`
	HighConfidence     int     `json:"highConfidence"`
	DistinctCategories int     `json:"distinctCategories"`
	DistinctAspects    int     `json:"distinctAspects"`
}

// Summarize computes the summary statistics over history. It is pure, safe
// for concurrent use, and well-defined for an empty history (zero values,
// empty maps).
func Summarize(history []models.AnalysisRecord) Summary {
	s := Summary{
		Total:      len(history),
		Categories: make(map[string]int),
		Sentiments: make(map[string]int),
		Aspects:    make(map[string]int),
		Priorities: make(map[string]int),
	}

	versions := make(map[string]struct{})
	var confidenceSum float64

	for _, r := range history {
		s.Categories[r.PredictedCategory]++
		s.Sentiments[bucketSentiment(r.SentimentAnalysis.Bert.Sentiment)]++
		for _, aspect := range r.IdentifiedAspects {
			s.Aspects[aspect]++
		}
		s.Priorities[bucketPriority(r.StrategicRecommendation.Priority)]++

		confidenceSum += r.SentimentAnalysis.Bert.Confidence
		if r.MLEnhanced {
			s.MLPowered++
		}
		if r.ModelVersion != "" {
			versions[r.ModelVersion] = struct{}{}
		}
	}

	if s.Total > 0 {
		s.AverageConfidence = confidenceSum / float64(s.Total)
		s.MLAccuracy = float64(s.MLPowered) / float64(s.Total) * 100
	}

	s.ModelVersions = make([]string, 0, len(versions))
	for v := range versions {
		s.ModelVersions = append(s.ModelVersions, v)
	}
	sort.Strings(s.ModelVersions)

	return s
}

// MLMetrics computes statistics over the ML-enhanced records only. When the
// history has no ML-enhanced record it returns the NoMLData sentinel.
func MLMetrics(history []models.AnalysisRecord) MLSummary {
	var confidenceSum float64
	categories := make(map[string]struct{})
	aspects := make(map[string]struct{})
	out := MLSummary{}

	for _, r := range history {
		if !r.MLEnhanced {
			continue
		}
		out.Total++
		confidenceSum += r.SentimentAnalysis.Bert.Confidence
		if r.SentimentAnalysis.Bert.Confidence > highConfidenceThreshold {
			out.HighConfidence++
		}
		categories[r.PredictedCategory] = struct{}{}
		for _, a := range r.IdentifiedAspects {
			aspects[a] = struct{}{}
		}
	}

	if out.Total == 0 {
		return MLSummary{NoMLData: true}
	}

	out.AverageConfidence = confidenceSum / float64(out.Total)
	out.DistinctCategories = len(categories)
	out.DistinctAspects = len(aspects)
	return out
}

func bucketSentiment(sentiment string) string {
	switch sentiment {
	case models.SentimentPositive, models.SentimentNegative, models.SentimentNeutral:
		return sentiment
	default:
		return SentimentUnknown
	}
}

func bucketPriority(priority string) string {
	switch priority {
	case models.PriorityHigh, models.PriorityMedium, models.PriorityLow:
		return priority
	default:
		return SentimentUnknown
	}
}
