// Package results holds presentation helpers for analysis results.
package results

// Confidence indicator classes.
const (
	ConfidenceHigh   = "confidence-indicator confidence-high"
	ConfidenceMedium = "confidence-indicator confidence-medium"
	ConfidenceLow    = "confidence-indicator confidence-low"
)

// IndicatorSelector matches the elements whose class reflects confidence.
const IndicatorSelector = ".confidence-indicator"

// ConfidenceClass maps a score in [0,1] to an indicator class list.
func ConfidenceClass(confidence float64) string {
	switch {
	case confidence > 0.8:
		return ConfidenceHigh
	case confidence > 0.6:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}
