package explorer

import (
	"strconv"
	"strings"
)

// Bucket is the display classification of a single score cell.
type Bucket string

const (
	BucketGood     Bucket = "good"     // score >= 80
	BucketFair     Bucket = "fair"     // 60 <= score < 80
	BucketPoor     Bucket = "poor"     // score < 60
	BucketMissing  Bucket = "missing"  // empty or no codeable character
	BucketBaseline Bucket = "baseline" // non-numeric reference label
)

// Color returns the hex fill used wherever this bucket is rendered.
func (b Bucket) Color() string {
	switch b {
	case BucketGood:
		return "#7ED957"
	case BucketFair:
		return "#FFDE59"
	case BucketPoor:
		return "#EA3423"
	case BucketBaseline:
		return "#FFFFFF"
	default:
		return "#C8C8C8"
	}
}

// Classify buckets a raw score cell. Applied identically wherever scores
// are rendered, at both ad level and portfolio level.
func Classify(raw string) Bucket {
	value := strings.TrimSpace(raw)
	if value == "" || containsNoCodeable(value) {
		return BucketMissing
	}

	score, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return BucketBaseline
	}

	switch {
	case score >= 80:
		return BucketGood
	case score >= 60:
		return BucketFair
	default:
		return BucketPoor
	}
}

// containsNoCodeable matches the scoring team's "no codeable character"
// annotation, which appears with both spellings in historical data.
func containsNoCodeable(value string) bool {
	lower := strings.ToLower(value)
	return strings.Contains(lower, "no codeable character") ||
		strings.Contains(lower, "no codable character")
}
