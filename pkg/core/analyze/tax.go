// Package analyze hosts the three opportunity-analysis agents. Each one
// serializes (part of) the financial profile, sends it through the agent
// manager with its own Italian-domain system prompt, and decodes the model
// output into typed opportunity records. The decoders drop records below
// MinConfidence so downstream aggregation never has to re-filter.
package analyze

import (
	"context"
	"encoding/json"
	"fmt"

	"soldi_persi/pkg/core/agent"
	"soldi_persi/pkg/core/llm"
	"soldi_persi/pkg/core/prompt"
	"soldi_persi/pkg/core/utils"
	"soldi_persi/pkg/models"
)

// MinConfidence is the floor below which an opportunity is dropped by the
// analyzer itself.
const MinConfidence = 0.3

// TaxSystemPrompt is the fallback system prompt for the tax agent
// ("analysis.tax" in the registry).
const TaxSystemPrompt = `Sei un consulente fiscale esperto specializzato in fiscalità italiana per persone fisiche.

## Il tuo compito
Ricevi il profilo finanziario di un contribuente italiano e devi identificare TUTTE le opportunità di risparmio fiscale che non sta sfruttando o che potrebbe ottimizzare.

## La tua knowledge base fiscale (2024/2025)

### DETRAZIONI IRPEF 19% (Art. 15 TUIR)
Franchigia €129,11 per spese mediche. Tetto reddito €120.000 per la maggior parte.
- Spese mediche: nessun limite sopra €129,11
- Interessi mutuo prima casa: €4.000 annui
- Spese istruzione (non univ.): €800 per figlio
- Sport figli (5-18 anni): €210 per figlio
- Canoni locazione studenti fuori sede: €2.633
- Premi assicurazione vita/infortuni: €530
- Spese veterinarie: €550 (franchigia €129,11)
- Spese funebri: €1.550 per decesso
- Abbonamento trasporto pubblico: €250
- Asilo nido: €632 per figlio

### DEDUZIONI (riducono il reddito imponibile)
- Contributi previdenza complementare: €5.164,57
- Contributi colf/badanti: €1.549,37
- Contributi SSN su RC auto: parte eccedente €40

### BONUS EDILIZI (2024-2025)
- Ristrutturazione: 50% prima casa / 36% altre, tetto €96.000, 10 anni
- Ecobonus: 50-65%
- Bonus mobili: 50% su max €5.000

### ALTRE AGEVOLAZIONI
- Cedolare secca: 21% (10% canone concordato) vs aliquote IRPEF progressive
- Regime forfettario: 15% (5% primi 5 anni) se ricavi < €85.000
- Welfare aziendale: €258,23 soglia esenzione (€3.000 con figli a carico)

## Regole
- Considera SOLO opportunità supportate dai dati del profilo. MAI inventare spese o situazioni.
- Escludi opportunità con confidence < 0.3.
- Per ogni opportunità indica il riferimento normativo preciso.

## Output RIGOROSO
Rispondi ESCLUSIVAMENTE con un array JSON di oggetti con questi campi:
id, titolo, descrizione, riferimento_normativo, tipo (detrazione|deduzione|credito_imposta|esenzione),
risparmio_stimato_annuo, risparmio_minimo, risparmio_massimo, azione_richiesta,
difficolta (facile|media|complessa), urgenza (immediata|prossima_dichiarazione|pianificazione),
documenti_necessari, confidence, prerequisiti, note.`

// TaxOptimizer identifies unexploited tax savings.
type TaxOptimizer struct {
	agentManager *agent.Manager
}

func NewTaxOptimizer(mgr *agent.Manager) *TaxOptimizer {
	return &TaxOptimizer{agentManager: mgr}
}

// Analyze returns the tax opportunities found for the profile.
func (a *TaxOptimizer) Analyze(ctx context.Context, profile *models.FinancialProfile) ([]models.TaxOpportunity, error) {
	profileJSON, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to serialize profile: %w", err)
	}

	systemPrompt := prompt.SystemPromptOr(prompt.PromptIDs.AnalysisTax, TaxSystemPrompt)
	userPrompt := fmt.Sprintf("Analizza questo profilo finanziario e identifica tutte le opportunità di risparmio fiscale:\n\n%s", profileJSON)

	raw, err := a.agentManager.ExecutePrompt(ctx, agent.TypeTax, userPrompt, systemPrompt, llm.JSONMode())
	if err != nil {
		return nil, fmt.Errorf("tax analysis failed: %w", err)
	}

	return decodeOpportunities[models.TaxOpportunity](raw, "TaxOptimizer", func(o models.TaxOpportunity) bool {
		return o.Confidence >= MinConfidence
	})
}

// decodeOpportunities parses model output into a typed slice. The model is
// asked for an array but sometimes returns a single object; both shapes are
// accepted. Items failing the keep predicate are dropped.
func decodeOpportunities[T any](raw string, agentName string, keep func(T) bool) ([]T, error) {
	var items []T
	if err := utils.SmartParse(raw, &items); err != nil {
		var single T
		if errSingle := utils.SmartParse(raw, &single); errSingle != nil {
			return nil, fmt.Errorf("%s output unusable: %w", agentName, err)
		}
		items = []T{single}
	}

	kept := make([]T, 0, len(items))
	for _, item := range items {
		if keep == nil || keep(item) {
			kept = append(kept, item)
		} else {
			fmt.Printf("[%s] Dropping low-confidence item\n", agentName)
		}
	}
	return kept, nil
}
