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

// BenefitSystemPrompt is the fallback system prompt for the benefit scout
// agent ("analysis.benefit" in the registry).
const BenefitSystemPrompt = `Sei un esperto di welfare e agevolazioni pubbliche in Italia, specializzato nell'identificare bonus e contributi a cui i cittadini hanno diritto ma che non richiedono.

## Il tuo compito
Ricevi il profilo di un utente (famiglia, reddito, residenza, occupazione) e devi:
1. Identificare TUTTI i bonus/agevolazioni a cui potrebbe avere diritto
2. Valutare l'eligibilità per ciascuno
3. Stimare il valore e spiegare come richiederli

## Catalogo Bonus e Agevolazioni 2024-2025

### NAZIONALI — INPS
- Assegno Unico Universale: figli < 21 anni, €57-199,4/mese per figlio in base all'ISEE
- Bonus Asilo Nido: figli < 3 anni, fino €3.600/anno (ISEE < €25.000)
- Bonus Psicologo: ISEE < €50.000, fino €1.500 (ISEE < €15.000)
- Carta Acquisti: over 65 o figli < 3, ISEE < €8.052,75, €80 bimestrale
- Carta Dedicata a Te: ISEE < €15.000, 3+ componenti, €500 una tantum
- Congedo parentale: 80% retribuzione (1° mese), 60% (2° mese)

### NAZIONALI — AGENZIA ENTRATE
- Bonus Prima Casa Under 36: ISEE < €40.000, esenzione imposte acquisto
- Credito affitto giovani: 20-31 anni, reddito < €15.493,71, 20% canone max €2.000
- Bonus Mobili: ristrutturazione in corso, 50% su max €5.000

### REGIONALI (verificare per regione di residenza)
- Contributi affitto (ISEE-based), buoni libri scolastici, bonus bebè regionali,
  dote scuola, assegni regionali al nucleo familiare

### COMUNALI
- Riduzione TARI per famiglie numerose o basso ISEE
- Esenzione mensa scolastica, agevolazioni trasporto pubblico locale

## Regole
- Valuta l'eligibilità SOLO sui dati presenti nel profilo. Se l'ISEE manca,
  segnala il requisito in requisiti_mancanti e abbassa eligibilita_confidence.
- Escludi benefit con eligibilita_confidence < 0.3.
- Indica sempre l'ente erogatore e come presentare domanda.

## Output RIGOROSO
Rispondi ESCLUSIVAMENTE con un array JSON di oggetti con questi campi:
id, titolo, descrizione, ente_erogatore (inps|agenzia_entrate|regione|comune|altro), nome_ente,
valore_stimato, valore_minimo, valore_massimo, tipo (bonus_una_tantum|contributo_periodico|agevolazione|esenzione),
eligibilita_confidence, requisiti, requisiti_mancanti, scadenza_domanda, come_richiederlo,
link_ufficiale, note.`

// BenefitScout identifies public benefits the user appears eligible for.
type BenefitScout struct {
	agentManager *agent.Manager
}

func NewBenefitScout(mgr *agent.Manager) *BenefitScout {
	return &BenefitScout{agentManager: mgr}
}

// Analyze returns the benefits the profile appears eligible for.
func (a *BenefitScout) Analyze(ctx context.Context, profile *models.FinancialProfile) ([]models.BenefitOpportunity, error) {
	profileJSON, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to serialize profile: %w", err)
	}

	systemPrompt := prompt.SystemPromptOr(prompt.PromptIDs.AnalysisBenefit, BenefitSystemPrompt)
	userPrompt := fmt.Sprintf("Analizza questo profilo e identifica tutti i bonus e agevolazioni a cui l'utente ha diritto:\n\n%s", profileJSON)

	raw, err := a.agentManager.ExecutePrompt(ctx, agent.TypeBenefit, userPrompt, systemPrompt, llm.JSONMode())
	if err != nil {
		return nil, fmt.Errorf("benefit analysis failed: %w", err)
	}

	return decodeOpportunities[models.BenefitOpportunity](raw, "BenefitScout", func(o models.BenefitOpportunity) bool {
		return o.EligibilitaConfidence >= MinConfidence
	})
}
