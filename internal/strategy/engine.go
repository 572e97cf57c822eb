package strategy

import (
	"strings"

	"github.com/commentpulse/commentpulse/internal/models"
)

// Rule thresholds. Tuned against the upstream classifier's score
// distribution; keep in sync with the analyzer deployment.
const (
	lowConfidenceThreshold  = 0.6
	highConfidenceThreshold = 0.9
	criticismThreshold      = 0.8
	patternConfidenceMean   = 0.85
	minHistoryForTrends     = 5
	negativeWindow          = 10
	negativeAlertCount      = 5
	mlWindow                = 20
	minMLSamplesForPattern  = 10
)

// Strategy type tags, used by consumers to group related actions.
const (
	TypeHumanReview = "human-review"
	TypeEV          = "ev"
	TypeService     = "service"
	TypeCompetitive = "competitive"
	TypePricing     = "pricing"
	TypeCrisis      = "crisis"
	TypePattern     = "ml-pattern"
	TypeMLVerified  = "ml-verified"
	TypeProactive   = "proactive"
)

// Engine is a pure rule evaluator. It performs no I/O, mutates nothing, and
// is safe for concurrent use.
type Engine struct{}

func NewEngine() *Engine {
	return &Engine{}
}

// GenerateStrategies evaluates the rule set over record and history and
// returns the matching strategies in canonical order. The order is fixed and
// append-only: no deduplication, no re-sorting. Consumers must preserve it,
// since the first entry is expected to be the first-discovered highest
// priority action. Identical inputs always yield an identical list.
func (e *Engine) GenerateStrategies(record models.AnalysisRecord, history []models.AnalysisRecord) []models.Strategy {
	var strategies []models.Strategy

	bert := record.SentimentAnalysis.Bert

	// Rule 1: low classifier confidence needs a human in the loop.
	if bert.Confidence < lowConfidenceThreshold {
		strategies = append(strategies, models.Strategy{
			Title:       "Human Review Required",
			Description: "Classifier confidence is below the reliable threshold; route this comment to a specialist for manual assessment.",
			Impact:      models.ImpactHigh,
			Timeline:    "Immediate",
			Type:        TypeHumanReview,
		})
	}

	// Rule 2: EV-related feedback.
	if record.HasAspect("EV") {
		strategies = append(strategies,
			models.Strategy{
				Title:       "EV Product Feedback Loop",
				Description: "Forward this comment to the EV product team and tag it against the current battery and charging roadmap.",
				Impact:      models.ImpactHigh,
				Timeline:    "This week",
				Type:        TypeEV,
			},
			models.Strategy{
				Title:       "EV Owner Community Engagement",
				Description: "Invite the customer into the EV owner community program to deepen advocacy and gather longitudinal feedback.",
				Impact:      models.ImpactMedium,
				Timeline:    "This month",
				Type:        TypeEV,
			},
		)
	}

	// Rule 3: service experience feedback.
	if record.HasAspect("Service") {
		strategies = append(strategies,
			models.Strategy{
				Title:       "Service Recovery Outreach",
				Description: "Have the regional service manager contact the customer and close the loop on the reported experience.",
				Impact:      models.ImpactHigh,
				Timeline:    "Within 48 hours",
				Type:        TypeService,
			},
			models.Strategy{
				Title:       "Dealership Process Audit",
				Description: "Add the referenced dealership to the next service quality audit cycle and review staff training coverage.",
				Impact:      models.ImpactMedium,
				Timeline:    "This quarter",
				Type:        TypeService,
			},
		)
	}

	// Rule 4: competitive comparisons, optionally with pricing pressure.
	if strings.Contains(record.PredictedCategory, "Comparison") || strings.Contains(record.PredictedCategory, "Competitive") {
		strategies = append(strategies, models.Strategy{
			Title:       "Competitive Intelligence Capture",
			Description: "Log the competitor mention in the market intelligence tracker and flag the compared feature set for positioning review.",
			Impact:      models.ImpactMedium,
			Timeline:    "This week",
			Type:        TypeCompetitive,
		})
		if record.HasAspect("Price") {
			strategies = append(strategies, models.Strategy{
				Title:       "Dynamic Pricing Response",
				Description: "Escalate to pricing strategy: customer is weighing price against a named competitor; evaluate financing or trim-level counters.",
				Impact:      models.ImpactHigh,
				Timeline:    "This week",
				Type:        TypePricing,
			})
		}
	}

	// Rules 5 and 6 need enough history to be meaningful.
	if len(history) > minHistoryForTrends {
		// Rule 5: negative sentiment surge in the recent window.
		recentNegative := 0
		for _, h := range recent(history, negativeWindow) {
			if h.SentimentAnalysis.Bert.Sentiment == models.SentimentNegative {
				recentNegative++
			}
		}
		if recentNegative > negativeAlertCount {
			strategies = append(strategies, models.Strategy{
				Title:       "Crisis Management Protocol",
				Description: "Majority of recent feedback is negative; activate the crisis response playbook and brief leadership with the aggregated complaints.",
				Impact:      models.ImpactCritical,
				Timeline:    "Immediate",
				Type:        TypeCrisis,
			})
		}

		// Rule 6: sustained high-confidence ML signal.
		var mlConfidenceSum float64
		mlCount := 0
		for _, h := range recent(history, mlWindow) {
			if h.MLEnhanced {
				mlConfidenceSum += h.SentimentAnalysis.Bert.Confidence
				mlCount++
			}
		}
		if mlCount > minMLSamplesForPattern && mlConfidenceSum/float64(mlCount) > patternConfidenceMean {
			strategies = append(strategies, models.Strategy{
				Title:       "High-Confidence Pattern Detected",
				Description: "The ML path is classifying recent feedback with consistently high confidence; its category trends are reliable enough to drive planning.",
				Impact:      models.ImpactMedium,
				Timeline:    "This month",
				Type:        TypePattern,
			})
		}
	}

	// Rule 7: individual high-confidence classification.
	if bert.Confidence > highConfidenceThreshold {
		strategies = append(strategies, models.Strategy{
			Title:       "ML-Verified Action",
			Description: "Classification confidence is high enough to act on without review; execute the recommended action directly.",
			Impact:      models.ImpactHigh,
			Timeline:    "Immediate",
			Type:        TypeMLVerified,
		})
	}

	// Rule 8: confident criticism gets a bounded response window.
	if strings.Contains(record.PredictedCategory, "Criticism") && bert.Confidence > criticismThreshold {
		strategies = append(strategies, models.Strategy{
			Title:       "Proactive Issue Resolution",
			Description: "Confirmed criticism with high confidence; open a case, reach out to the customer, and track resolution against the response SLA.",
			Impact:      models.ImpactCritical,
			Timeline:    "Within 4 hours",
			Type:        TypeProactive,
		})
	}

	return strategies
}

// recent returns the n most-recent entries. History is stored
// most-recent-first, so this is a prefix.
func recent(history []models.AnalysisRecord, n int) []models.AnalysisRecord {
	if len(history) < n {
		return history
	}
	return history[:n]
}
