package analyze

import (
	"context"
	"encoding/json"
	"fmt"

	"soldi_persi/pkg/core/agent"
	"soldi_persi/pkg/core/llm"
	"soldi_persi/pkg/core/prompt"
	"soldi_persi/pkg/models"
)

// CostSystemPrompt is the fallback system prompt for the cost benchmarking
// agent ("analysis.cost" in the registry).
const CostSystemPrompt = `Sei un esperto analista di mercato specializzato in confronto tariffe e costi per consumatori italiani.

## Il tuo compito
Ricevi i contratti/utenze attualmente in essere per un utente e devi:
1. Valutare se sta pagando troppo rispetto al mercato
2. Stimare il risparmio potenziale per ogni voce
3. Suggerire azioni concrete

## Benchmark di riferimento (2024-2025)

### ENERGIA ELETTRICA (famiglia tipo, 2.700 kWh/anno, 3kW)
- Mercato tutelato (STG): ~€0,22-0,28/kWh tutto incluso
- Migliori offerte mercato libero: ~€0,18-0,24/kWh
- Se l'utente paga > €0,30/kWh: potenziale risparmio significativo

### GAS NATURALE (famiglia tipo, 1.400 Smc/anno)
- Mercato tutelato (PSV): ~€0,80-1,10/Smc
- Migliori offerte: ~€0,70-0,95/Smc
- Se l'utente paga > €1,20/Smc: potenziale risparmio

### INTERNET/MOBILE
- Fibra FTTH: €24-30/mese (migliori offerte); > €35/mese da verificare
- Mobile: €7-15/mese (operatori virtuali); > €20/mese da verificare

### ASSICURAZIONI
- RC Auto media Italia: ~€350-400/anno; migliori offerte classe 1: ~€200-300/anno
- Polizza casa base: €100-200/anno

### MUTUI
- Surroga conveniente se differenza tasso > 0,5% e residuo > €50.000

## Regole
- Confronta SOLO i contratti presenti nei dati. MAI inventare utenze.
- Indica sempre la fonte del benchmark usato.
- Includi il rischio o le penali di cambio quando rilevanti.

## Output RIGOROSO
Rispondi ESCLUSIVAMENTE con un array JSON di oggetti con questi campi:
id, titolo, categoria (energia|gas|internet|mobile|assicurazione|mutuo|abbonamento|altro),
fornitore_attuale, costo_attuale_annuo, benchmark_mercato, risparmio_stimato_annuo,
alternativa_suggerita, sforzo_cambio (minimo|medio|significativo), rischio_cambio,
fonte_benchmark, note.`

// CostBenchmarker compares the profile's contracts against market rates.
type CostBenchmarker struct {
	agentManager *agent.Manager
}

func NewCostBenchmarker(mgr *agent.Manager) *CostBenchmarker {
	return &CostBenchmarker{agentManager: mgr}
}

// Analyze returns potential cost reductions for the profile's contracts.
// Only the contracts and properties subset is sent to the model; a profile
// with no contracts yields an empty result without an LLM round trip.
func (a *CostBenchmarker) Analyze(ctx context.Context, profile *models.FinancialProfile) ([]models.CostReduction, error) {
	if len(profile.Contratti) == 0 {
		return []models.CostReduction{}, nil
	}

	contractsJSON, err := json.MarshalIndent(profile.Contratti, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to serialize contracts: %w", err)
	}
	propertiesJSON, err := json.MarshalIndent(profile.Proprieta, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to serialize properties: %w", err)
	}

	systemPrompt := prompt.SystemPromptOr(prompt.PromptIDs.AnalysisCost, CostSystemPrompt)
	userPrompt := fmt.Sprintf(
		"Analizza questi contratti/utenze e identifica dove l'utente sta pagando troppo:\n\nContratti:\n%s\n\nProprietà:\n%s",
		contractsJSON, propertiesJSON,
	)

	raw, err := a.agentManager.ExecutePrompt(ctx, agent.TypeCost, userPrompt, systemPrompt, llm.JSONMode())
	if err != nil {
		return nil, fmt.Errorf("cost analysis failed: %w", err)
	}

	// Cost records carry no per-record confidence, so there is no floor to
	// apply here.
	return decodeOpportunities[models.CostReduction](raw, "CostBenchmarker", nil)
}
