package models

// Difficulty tags for TaxOpportunity.Difficolta.
const (
	DifficoltaFacile    = "facile"
	DifficoltaMedia     = "media"
	DifficoltaComplessa = "complessa"
)

// Switch-effort tags for CostReduction.SforzoCambio.
const (
	SforzoMinimo        = "minimo"
	SforzoMedio         = "medio"
	SforzoSignificativo = "significativo"
)

// Urgency tags.
const (
	UrgenzaImmediata             = "immediata"
	UrgenzaProssimaDichiarazione = "prossima_dichiarazione"
	UrgenzaPianificazione        = "pianificazione"
)

// TaxOpportunity is one unexploited tax saving identified by the tax agent.
type TaxOpportunity struct {
	ID                    string   `json:"id"`
	Titolo                string   `json:"titolo"`
	Descrizione           string   `json:"descrizione"`
	RiferimentoNormativo  string   `json:"riferimento_normativo"` // e.g. "Art. 15 TUIR, comma 1, lett. c"
	Tipo                  string   `json:"tipo"`                  // detrazione|deduzione|credito_imposta|esenzione
	RisparmioStimatoAnnuo float64  `json:"risparmio_stimato_annuo"`
	RisparmioMinimo       float64  `json:"risparmio_minimo"`
	RisparmioMassimo      float64  `json:"risparmio_massimo"`
	AzioneRichiesta       string   `json:"azione_richiesta"`
	Difficolta            string   `json:"difficolta"` // facile|media|complessa
	Urgenza               string   `json:"urgenza"`
	DocumentiNecessari    []string `json:"documenti_necessari"`
	Confidence            float64  `json:"confidence"` // 0-1
	Prerequisiti          []string `json:"prerequisiti,omitempty"`
	Note                  string   `json:"note,omitempty"`
}

// CostReduction is one over-market cost found by the benchmarking agent.
// Cost records carry no per-record confidence or min/max band: market
// benchmarks are not individually banded, so the report builder synthesizes
// a band from the point estimate.
type CostReduction struct {
	ID                    string  `json:"id"`
	Titolo                string  `json:"titolo"`
	Categoria             string  `json:"categoria"` // energia|gas|internet|mobile|assicurazione|mutuo|abbonamento|altro
	FornitoreAttuale      string  `json:"fornitore_attuale"`
	CostoAttualeAnnuo     float64 `json:"costo_attuale_annuo"`
	BenchmarkMercato      float64 `json:"benchmark_mercato"`
	RisparmioStimatoAnnuo float64 `json:"risparmio_stimato_annuo"`
	AlternativaSuggerita  string  `json:"alternativa_suggerita,omitempty"`
	SforzoCambio          string  `json:"sforzo_cambio"` // minimo|medio|significativo
	RischioCambio         string  `json:"rischio_cambio,omitempty"`
	FonteBenchmark        string  `json:"fonte_benchmark"`
	Note                  string  `json:"note,omitempty"`
}

// BenefitOpportunity is one public benefit the user appears eligible for.
type BenefitOpportunity struct {
	ID                    string   `json:"id"`
	Titolo                string   `json:"titolo"`
	Descrizione           string   `json:"descrizione"`
	EnteErogatore         string   `json:"ente_erogatore"` // inps|agenzia_entrate|regione|comune|altro
	NomeEnte              string   `json:"nome_ente"`
	ValoreStimato         float64  `json:"valore_stimato"`
	ValoreMinimo          float64  `json:"valore_minimo"`
	ValoreMassimo         float64  `json:"valore_massimo"`
	Tipo                  string   `json:"tipo"`                   // bonus_una_tantum|contributo_periodico|agevolazione|esenzione
	EligibilitaConfidence float64  `json:"eligibilita_confidence"` // 0-1
	Requisiti             []string `json:"requisiti"`
	RequisitiMancanti     []string `json:"requisiti_mancanti,omitempty"`
	ScadenzaDomanda       string   `json:"scadenza_domanda,omitempty"` // ISO date
	ComeRichiederlo       string   `json:"come_richiederlo"`
	LinkUfficiale         string   `json:"link_ufficiale,omitempty"`
	Note                  string   `json:"note,omitempty"`
}
