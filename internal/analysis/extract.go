package analysis

import (
	"encoding/json"
	"errors"
	"log"
	"strings"

	"github.com/jonathan/board-panel/internal/advisory"
	"github.com/jonathan/board-panel/internal/types"
)

// Extraction thresholds, matched to the advisor output contract.
const (
	// minSuggestionLength filters list lines that are too short to be a
	// real suggestion.
	minSuggestionLength = 20
	// minLineSuggestions is the minimum qualifying lines for the
	// line-heuristic path to be trusted.
	minLineSuggestions = 3
	// maxFallbackSuggestions caps recovered lists at the expected count.
	maxFallbackSuggestions = 5
)

// lineMarkers are the leading characters stripped from list lines.
const lineMarkers = "0123456789.-•) "

// ExtractSuggestions recovers a suggestion set from one advisor's output.
// It is a total function: it tries each recovery path in order and returns
// an empty set when all of them fail, never an error. Path attempts are
// logged per category for diagnostics.
func ExtractSuggestions(out *advisory.TaskOutput, category types.AdvisoryCategory) types.SuggestionSet {
	if out == nil {
		log.Printf("extract %s: no task output, returning empty set", category)
		return types.SuggestionSet{}
	}

	// Path 1: pre-validated structured payload.
	if out.Structured != nil {
		if set := types.SuggestionSet(out.Structured.Suggestions).Clean(); len(set) > 0 {
			log.Printf("extract %s: %d suggestions via structured payload", category, len(set))
			return set
		}
	}

	if out.Raw != "" {
		// Path 2: JSON object embedded in the raw text.
		if set, ok := extractEmbeddedJSON(out.Raw, category); ok {
			return set
		}

		// Path 4: numbered/bulleted list lines.
		if set, ok := extractFromLines(out.Raw); ok {
			log.Printf("extract %s: %d suggestions via text list", category, len(set))
			return set
		}
	}

	// Path 5: alternate free-form output field.
	if out.Output != "" {
		var payload advisory.SuggestionPayload
		if err := json.Unmarshal([]byte(out.Output), &payload); err == nil {
			if set := types.SuggestionSet(payload.Suggestions).Clean(); len(set) > 0 {
				log.Printf("extract %s: %d suggestions via output field", category, len(set))
				return set
			}
		}
	}

	log.Printf("extract %s: could not extract suggestions, returning empty set", category)
	return types.SuggestionSet{}
}

// extractEmbeddedJSON locates the outermost {...} in raw text and pulls the
// suggestions list out of it, attempting a truncation repair when the
// substring does not parse (path 3). Output cut off mid-stream has no
// closing brace at all; everything from the opening brace onward is taken
// so the repair path still sees it.
func extractEmbeddedJSON(raw string, category types.AdvisoryCategory) (types.SuggestionSet, bool) {
	start := strings.Index(raw, "{")
	if start < 0 {
		return nil, false
	}

	jsonStr := raw[start:]
	if end := strings.LastIndex(raw, "}"); end > start {
		jsonStr = raw[start : end+1]
	}

	var payload advisory.SuggestionPayload
	err := json.Unmarshal([]byte(jsonStr), &payload)
	if err == nil {
		if set := types.SuggestionSet(payload.Suggestions).Clean(); len(set) > 0 {
			log.Printf("extract %s: %d suggestions from embedded JSON", category, len(set))
			return set, true
		}
		return nil, false
	}

	// Repair path: truncate at the reported parse offset and close the
	// open brackets. Best effort only; nested structures can defeat the
	// naive bracket counting, in which case the line heuristics below
	// take over.
	var syntaxErr *json.SyntaxError
	if !errors.As(err, &syntaxErr) {
		return nil, false
	}

	offset := int(syntaxErr.Offset)
	if offset > len(jsonStr) {
		offset = len(jsonStr)
	}
	truncated := jsonStr[:offset]

	if strings.Count(truncated, "[") > strings.Count(truncated, "]") {
		truncated += `"]}`
	} else if strings.Count(truncated, "{") > strings.Count(truncated, "}") {
		truncated += "}"
	}

	var repaired advisory.SuggestionPayload
	if err := json.Unmarshal([]byte(truncated), &repaired); err != nil {
		log.Printf("extract %s: JSON repair failed at offset %d: %v", category, offset, err)
		return nil, false
	}

	if set := types.SuggestionSet(repaired.Suggestions).Clean(); len(set) > 0 {
		log.Printf("extract %s: recovered %d suggestions from truncated JSON", category, len(set))
		return set, true
	}
	return nil, false
}

// extractFromLines keeps raw-text lines that look like list entries: they
// start with a digit, dash, or bullet and, after stripping the marker, are
// long enough to be a real suggestion. The path only succeeds with at least
// minLineSuggestions qualifying lines and caps the result.
func extractFromLines(raw string) (types.SuggestionSet, bool) {
	var suggestions types.SuggestionSet
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || !isListLine(line) {
			continue
		}
		cleaned := strings.TrimSpace(strings.TrimLeft(line, lineMarkers))
		if len(cleaned) > minSuggestionLength {
			suggestions = append(suggestions, cleaned)
		}
	}

	if len(suggestions) < minLineSuggestions {
		return nil, false
	}
	if len(suggestions) > maxFallbackSuggestions {
		suggestions = suggestions[:maxFallbackSuggestions]
	}
	return suggestions, true
}

func isListLine(line string) bool {
	r := []rune(line)[0]
	return (r >= '0' && r <= '9') || r == '-' || r == '•'
}
