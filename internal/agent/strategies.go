package agent

import (
	"sort"
	"strings"
)

var copingStrategies = map[string][]string{
	"anxiety": {
		"Practice deep breathing: 4-7-8 technique (inhale 4, hold 7, exhale 8)",
		"Try progressive muscle relaxation",
		"Use grounding techniques (5-4-3-2-1 method)",
		"Limit caffeine intake",
		"Regular physical exercise",
	},
	"depression": {
		"Establish a daily routine",
		"Get regular exercise, even short walks",
		"Maintain social connections",
		"Practice self-compassion",
		"Set small, achievable goals",
	},
	"stress": {
		"Practice mindfulness meditation",
		"Take regular breaks",
		"Prioritize and organize tasks",
		"Engage in hobbies you enjoy",
		"Ensure adequate sleep",
	},
	"general": {
		"Regular sleep schedule",
		"Healthy diet and hydration",
		"Physical activity",
		"Social connections",
		"Mindfulness and relaxation techniques",
	},
}

// CopingStrategies returns strategies for a concern. Unknown concerns fall
// back to the general list.
func CopingStrategies(issueType string) []string {
	if s, ok := copingStrategies[normalizeIssue(issueType)]; ok {
		return s
	}
	return copingStrategies["general"]
}

func normalizeIssue(issueType string) string {
	return strings.ToLower(strings.TrimSpace(issueType))
}

// IssueTypes lists the concerns with dedicated strategy lists, sorted.
func IssueTypes() []string {
	types := make([]string, 0, len(copingStrategies))
	for k := range copingStrategies {
		types = append(types, k)
	}
	sort.Strings(types)
	return types
}
