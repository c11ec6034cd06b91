package models

// Report constants
const (
	// RecentSessionLimit is the number of sessions listed in the recent history block
	RecentSessionLimit = 3

	// MinInbodyRecordsForTrend is the minimum number of measurements needed for a trend
	MinInbodyRecordsForTrend = 2

	// UnspecifiedBodyPart labels exercises that carry no body part
	UnspecifiedBodyPart = "unspecified"

	// DefaultCompletionModel is the upstream model used when none is configured
	DefaultCompletionModel = "gpt-5.1-mini"
)

// TrendVerdict classifies a body-composition change
type TrendVerdict string

const (
	TrendPositive TrendVerdict = "positive"
	TrendCaution  TrendVerdict = "caution"
	TrendNeutral  TrendVerdict = "neutral"
)

// ClassifyTrend applies the muscle/fat rule to a pair of deltas
func ClassifyTrend(muscleDelta, fatDelta float64) TrendVerdict {
	switch {
	case muscleDelta > 0 && fatDelta < 0:
		return TrendPositive
	case muscleDelta < 0 && fatDelta > 0:
		return TrendCaution
	default:
		return TrendNeutral
	}
}
