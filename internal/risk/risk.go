// Package risk classifies an impact analysis into a risk level and
// synthesizes a rule-based recommendation list.
package risk

import (
	"fmt"
	"sort"
	"strings"
)

// Level is the overall risk band of an impact analysis.
type Level string

const (
	LevelLow      Level = "LOW"
	LevelMedium   Level = "MEDIUM"
	LevelHigh     Level = "HIGH"
	LevelCritical Level = "CRITICAL"
)

const highRiskThreshold = 0.7

// HighRiskAreas returns the ids of scores exceeding the high-risk
// threshold (0.7), sorted in ascending order.
func HighRiskAreas(scores map[string]float64) []string {
	var areas []string
	for id, score := range scores {
		if score > highRiskThreshold {
			areas = append(areas, id)
		}
	}
	sort.Strings(areas)
	return areas
}

// MaxScore returns the maximum score in scores, or 0 if scores is empty.
func MaxScore(scores map[string]float64) float64 {
	max := 0.0
	for _, score := range scores {
		if score > max {
			max = score
		}
	}
	return max
}

// Classify maps (highRiskCount, maxScore) to a risk Level. Conditions are
// evaluated top to bottom; the first match wins.
func Classify(highRiskCount int, maxScore float64) Level {
	switch {
	case highRiskCount >= 5:
		return LevelCritical
	case highRiskCount >= 3 || maxScore > 0.85:
		return LevelHigh
	case highRiskCount >= 1 || maxScore > 0.65:
		return LevelMedium
	default:
		return LevelLow
	}
}

// Recommend builds the ordered recommendation list for an analysis.
// Ordering is observable and fixed:
// 1. Risk-band lines (CRITICAL/HIGH/MEDIUM — mutually exclusive).
// 2. Large-blast-radius line, if impactedCount > 20.
// 3. High-criticality-focus line, if highRiskCount > 0.
// 4. Database-migration line, if any changed file path mentions "database".
// 5. API-compatibility line, if any changed file path mentions "api".
// 6. Security-review line, if any changed file path mentions "auth" or
// "security".
func Recommend(level Level, impactedCount, highRiskCount int, changedFiles []string) []string {
	var recs []string

	switch level {
	case LevelCritical:
		recs = append(recs,
			"URGENT: Extensive impact detected. Recommend staged rollout with feature flags",
			"Implement enhanced monitoring and alerting",
			"Consider rolling back plan if issues detected")
	case LevelHigh:
		recs = append(recs,
			"High impact detected. Plan comprehensive testing",
			"Deploy with caution, monitor all affected endpoints")
	case LevelMedium:
		recs = append(recs, "Standard testing procedures recommended")
	}

	if impactedCount > 20 {
		recs = append(recs, fmt.Sprintf("Large blast radius (%d components). Execute thorough integration tests", impactedCount))
	}

	if highRiskCount > 0 {
		recs = append(recs, fmt.Sprintf("Focus testing on %d high-criticality components", highRiskCount))
	}

	if containsAny(changedFiles, "database") {
		recs = append(recs, "Database schema changes detected. Verify migration strategy")
	}
	if containsAny(changedFiles, "api") {
		recs = append(recs, "API changes detected. Verify backward compatibility")
	}
	if containsAny(changedFiles, "auth", "security") {
		recs = append(recs, "Security-related changes. Perform security review")
	}

	return recs
}

func containsAny(files []string, substrings ...string) bool {
	for _, f := range files {
		lower := strings.ToLower(f)
		for _, s := range substrings {
			if strings.Contains(lower, s) {
				return true
			}
		}
	}
	return false
}

// AffectedServices returns the sorted, deduplicated set of second path
// segments of every impacted node id whose first segment is "services".
// Symbol node ids ("path::name") are split on their path prefix before
// segmenting.
func AffectedServices(impacted []string) []string {
	set := make(map[string]bool)
	for _, id := range impacted {
		path := id
		if idx := strings.Index(id, "::"); idx >= 0 {
			path = id[:idx]
		}
		parts := strings.Split(path, "/")
		if len(parts) >= 2 && parts[0] == "services" {
			set[parts[1]] = true
		}
	}
	out := make([]string, 0, len(set))
	for s := range set {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
