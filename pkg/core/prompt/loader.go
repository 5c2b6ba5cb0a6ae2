package prompt

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LoadFromDirectory loads all prompts from a directory structure.
// Expected structure:
//
//	baseDir/
//	  prompts/
//	    ingestion/
//	      document.json
//	    analysis/
//	      tax.json
func LoadFromDirectory(baseDir string) error {
	registry := Get()

	promptDir := filepath.Join(baseDir, "prompts")
	if _, err := os.Stat(promptDir); os.IsNotExist(err) {
		return fmt.Errorf("prompts directory not found: %s", promptDir)
	}

	return filepath.Walk(promptDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() || filepath.Ext(path) != ".json" {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}

		var pt PromptTemplate
		if err := json.Unmarshal(data, &pt); err != nil {
			return fmt.Errorf("failed to parse %s: %w", path, err)
		}

		// Auto-generate ID from path if not specified
		// e.g. "prompts/analysis/tax.json" -> "analysis.tax"
		if pt.ID == "" {
			relPath, _ := filepath.Rel(promptDir, path)
			relPath = strings.TrimSuffix(relPath, ".json")
			pt.ID = strings.ReplaceAll(relPath, string(filepath.Separator), ".")
		}
		if pt.Category == "" {
			if parts := strings.Split(pt.ID, "."); len(parts) > 1 {
				pt.Category = parts[0]
			} else {
				pt.Category = "default"
			}
		}

		if err := registry.Register(&pt); err != nil {
			return fmt.Errorf("failed to register %s: %w", pt.ID, err)
		}

		return nil
	})
}
