// Package models holds the data types exchanged between the history store,
// the recommendation engine, and the analytics aggregator.
package models

// Sentiment labels produced by the BERT and VADER paths.
const (
	SentimentPositive = "positive"
	SentimentNegative = "negative"
	SentimentNeutral  = "neutral"
)

// Recommendation priorities attached by the upstream analyzer.
const (
	PriorityHigh   = "High"
	PriorityMedium = "Medium"
	PriorityLow    = "Low"
)

// BertResult is the ML-based sentiment classification of a single comment.
type BertResult struct {
	Sentiment  string  `json:"sentiment"`
	Confidence float64 `json:"confidence"`
}

// VaderScores are the lexicon-based polarity scores.
type VaderScores struct {
	Positive float64 `json:"positive"`
	Neutral  float64 `json:"neutral"`
	Negative float64 `json:"negative"`
	Compound float64 `json:"compound"`
}

// VaderResult is the rule-based sentiment scoring of a single comment.
type VaderResult struct {
	Sentiment string      `json:"sentiment"`
	Scores    VaderScores `json:"scores"`
}

// SentimentAnalysis bundles both classification paths for one comment.
type SentimentAnalysis struct {
	Bert  BertResult  `json:"bert"`
	Vader VaderResult `json:"vader"`
}

// Recommendation is the strategic recommendation attached upstream before
// the record is persisted.
type Recommendation struct {
	Priority string `json:"priority"`
	Insight  string `json:"insight,omitempty"`
	Strategy string `json:"strategy,omitempty"`
	Action   string `json:"action,omitempty"`
}

// AnalysisRecord is one analyzed customer comment. ID and Timestamp are
// assigned by the history store at save time; the record is immutable after
// that.
type AnalysisRecord struct {
	ID                      string            `json:"id"`
	Timestamp               int64             `json:"timestamp"` // milliseconds since epoch
	InputText               string            `json:"input_text"`
	PredictedCategory       string            `json:"predicted_category"`
	IdentifiedAspects       []string          `json:"identified_aspects"`
	SentimentAnalysis       SentimentAnalysis `json:"sentiment_analysis"`
	StrategicRecommendation Recommendation    `json:"strategic_recommendation"`
	MLEnhanced              bool              `json:"mlEnhanced"`
	ModelVersion            string            `json:"modelVersion"`
}

// HasAspect reports whether the record mentions the given business aspect.
// Aspect membership is tested by value; order is irrelevant.
func (r AnalysisRecord) HasAspect(aspect string) bool {
	for _, a := range r.IdentifiedAspects {
		if a == aspect {
			return true
		}
	}
	return false
}

// Strategy impact levels, highest first.
const (
	ImpactCritical = "Critical"
	ImpactHigh     = "High"
	ImpactMedium   = "Medium"
	ImpactLow      = "Low"
)

// Strategy is one recommended business action produced by the rule engine.
type Strategy struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Impact      string `json:"impact"`
	Timeline    string `json:"timeline"`
	Type        string `json:"type,omitempty"`
}
