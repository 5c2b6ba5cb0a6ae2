package utils

import (
	"encoding/json"
	"fmt"
	"strings"

	jsonrepair "github.com/RealAlexandreAI/json-repair"
	hjson "github.com/hjson/hjson-go/v4"
)

// RepairJSON attempts to fix common JSON errors from LLM outputs.
// Uses github.com/RealAlexandreAI/json-repair for intelligent repair:
// missing quotes around keys, single quotes, unclosed arrays/objects,
// trailing commas, comments, markdown code blocks.
func RepairJSON(malformedJSON string) (string, error) {
	repaired, err := jsonrepair.RepairJSON(malformedJSON)
	if err != nil {
		return "", fmt.Errorf("JSON_REPAIR_FAILED: %v", err)
	}
	return repaired, nil
}

// ParseHJSON parses Human-friendly JSON (Hjson) and returns standard JSON.
// Hjson tolerates comments, unquoted keys/strings and optional commas,
// which makes it the most lenient fallback for LLM output.
func ParseHJSON(hjsonData string) (string, error) {
	var result interface{}
	if err := hjson.Unmarshal([]byte(hjsonData), &result); err != nil {
		return "", fmt.Errorf("HJSON_PARSE_ERROR: %v", err)
	}

	jsonBytes, err := json.Marshal(result)
	if err != nil {
		return "", fmt.Errorf("JSON_MARSHAL_ERROR: %v", err)
	}

	return string(jsonBytes), nil
}

// ExtractJSONBlock strips conversational filler around a JSON payload:
// markdown code fences and any text before the first '{'/'[' or after the
// last '}'/']'. Returns the input unchanged when no bracket is found.
func ExtractJSONBlock(text string) string {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```") {
		lines := strings.Split(text, "\n")
		kept := lines[:0]
		for _, line := range lines {
			if strings.HasPrefix(strings.TrimSpace(line), "```") {
				continue
			}
			kept = append(kept, line)
		}
		text = strings.Join(kept, "\n")
	}

	startArr := strings.Index(text, "[")
	startObj := strings.Index(text, "{")
	start := startObj
	if startObj == -1 || (startArr != -1 && startArr < startObj) {
		start = startArr
	}
	if start == -1 {
		return text
	}

	var end int
	if text[start] == '[' {
		end = strings.LastIndex(text, "]") + 1
	} else {
		end = strings.LastIndex(text, "}") + 1
	}
	if end <= start {
		return text
	}
	return text[start:end]
}

// SmartParse tries multiple parsing strategies to decode LLM output into
// schema. Order of attempts:
// 1. Standard JSON parse
// 2. Bracket extraction (strip prose/fences) + standard parse
// 3. JSON repair
// 4. Hjson parse (most lenient)
func SmartParse(input string, schema interface{}) error {
	if err := json.Unmarshal([]byte(input), schema); err == nil {
		return nil
	}

	block := ExtractJSONBlock(input)
	if err := json.Unmarshal([]byte(block), schema); err == nil {
		return nil
	}

	if repaired, err := RepairJSON(block); err == nil {
		if err := json.Unmarshal([]byte(repaired), schema); err == nil {
			return nil
		}
	}

	if hjsonResult, err := ParseHJSON(block); err == nil {
		if err := json.Unmarshal([]byte(hjsonResult), schema); err == nil {
			return nil
		}
	}

	return fmt.Errorf("SMART_PARSE_FAILED: all parsing strategies failed for input")
}
