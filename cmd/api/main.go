package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"soldi_persi/pkg/api/analysis"
	"soldi_persi/pkg/api/config"
	"soldi_persi/pkg/core/agent"
	"soldi_persi/pkg/core/prompt"
	"soldi_persi/pkg/core/store"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

var agentMgr *agent.Manager

func main() {
	// Load environment variables
	godotenv.Load()

	// Initialize Prompt Library
	// Determine resources path (relative to executable or working directory)
	resourcesPath := "resources"
	if _, err := os.Stat(resourcesPath); os.IsNotExist(err) {
		// Try from executable directory
		exePath, _ := os.Executable()
		resourcesPath = filepath.Join(filepath.Dir(exePath), "resources")
	}
	if err := prompt.LoadFromDirectory(resourcesPath); err != nil {
		fmt.Printf("[WARNING] Failed to load prompt library: %v\n", err)
		fmt.Println("  Falling back to hardcoded prompts")
	} else {
		fmt.Printf("[PROMPT] Loaded %d prompts from %s\n", prompt.Get().Count(), resourcesPath)
	}

	// Initialize manager from config
	configData, _ := os.ReadFile("config/models.yaml")
	var agentCfg agent.Config
	yaml.Unmarshal(configData, &agentCfg)
	agentMgr = agent.NewManager(agentCfg)

	// Report persistence: Postgres when configured, in-memory otherwise
	if os.Getenv("DATABASE_URL") != "" {
		if err := store.InitDB(context.Background()); err != nil {
			fmt.Printf("[WARNING] Database init failed, using in-memory store: %v\n", err)
		}
	}

	// Config endpoints
	configHandler := config.NewHandler(agentMgr)
	http.HandleFunc("/api/config", configHandler.HandleConfig)
	http.HandleFunc("/api/config/switch", configHandler.HandleSwitch)

	// Analysis endpoints
	analysis.InitHandler(agentMgr)
	http.HandleFunc("/api/analyze", analysis.HandleAnalyze)
	http.HandleFunc("/api/extract", analysis.HandleExtract)
	http.HandleFunc("/api/report/", analysis.HandleReport)
	http.HandleFunc("/api/health", analysis.HandleHealth)

	fmt.Println("API server starting on :8080...")
	fmt.Println("  - GET  /api/config")
	fmt.Println("  - POST /api/config/switch")
	fmt.Println("  - POST /api/analyze   (full pipeline: extract + analyze)")
	fmt.Println("  - POST /api/extract   (extraction only)")
	fmt.Println("  - GET  /api/report/{id}")
	fmt.Println("  - GET  /api/report/{id}/summary  (markdown)")
	fmt.Println("  - GET  /api/health")

	if err := http.ListenAndServe(":8080", nil); err != nil {
		fmt.Printf("[FATAL] Server failed to start: %v\n", err)
		os.Exit(1)
	}
}
