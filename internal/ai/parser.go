package ai

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

var thinkTagRegex = regexp.MustCompile(`(?s)<think>.*?</think>`)

// StripThinkTags removes DeepSeek R1 reasoning tags from the response.
func StripThinkTags(text string) string {
	return strings.TrimSpace(thinkTagRegex.ReplaceAllString(text, ""))
}

// ParseDecisions parses an AI response into normalized decisions. Handles
// JSON arrays, single objects, markdown code fences and JSON embedded in
// prose. Actions are uppercased, confidence is clamped to 0..100 and
// decisions without a pair are dropped.
func ParseDecisions(text string) ([]Decision, error) {
	cleaned := StripThinkTags(text)

	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	if cleaned == "" || cleaned == "[]" {
		return nil, nil
	}

	if decisions, ok := decodeDecisions(cleaned); ok {
		return normalizeDecisions(decisions), nil
	}

	// Fall back to the JSON fragment embedded in surrounding prose
	if frag, ok := extractFragment(cleaned, '[', ']'); ok {
		if decisions, ok := decodeDecisions(frag); ok {
			return normalizeDecisions(decisions), nil
		}
	}
	if frag, ok := extractFragment(cleaned, '{', '}'); ok {
		if decisions, ok := decodeDecisions(frag); ok {
			return normalizeDecisions(decisions), nil
		}
	}

	return nil, fmt.Errorf("failed to parse AI response as JSON: %.200s", cleaned)
}

func decodeDecisions(text string) ([]Decision, bool) {
	var decisions []Decision
	if err := json.Unmarshal([]byte(text), &decisions); err == nil {
		return decisions, true
	}

	var single Decision
	if err := json.Unmarshal([]byte(text), &single); err == nil {
		return []Decision{single}, true
	}
	return nil, false
}

func extractFragment(text string, opening, closing byte) (string, bool) {
	start := strings.IndexByte(text, opening)
	end := strings.LastIndexByte(text, closing)
	if start < 0 || end <= start {
		return "", false
	}
	return text[start : end+1], true
}

// normalizeDecisions maps model output onto the dispatcher's contract:
// uppercase actions, trimmed pair names, confidence within 0..100. Entries
// with no pair are dropped since nothing downstream can act on them.
func normalizeDecisions(decisions []Decision) []Decision {
	out := make([]Decision, 0, len(decisions))
	for _, d := range decisions {
		d.Action = strings.ToUpper(strings.TrimSpace(d.Action))
		d.Pair = strings.TrimSpace(d.Pair)
		if d.Pair == "" || d.Action == "" {
			continue
		}
		if d.Confidence < 0 {
			d.Confidence = 0
		}
		if d.Confidence > 100 {
			d.Confidence = 100
		}
		out = append(out, d)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
