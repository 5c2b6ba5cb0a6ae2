// Package models defines the shared data structures of the Soldi Persi
// pipeline: the financial profile assembled from document extractions,
// the opportunity records produced by the analysis agents, and the final
// report returned to the user.
package models

// Relation kinds for FamilyMember.Relazione.
const (
	RelazioneConiuge  = "coniuge"
	RelazioneFiglio   = "figlio"
	RelazioneGenitore = "genitore"
	RelazioneAltro    = "altro"
)

// Document types recognized by the ingestion agent.
const (
	DocCU               = "cu"
	DocBustaPaga        = "busta_paga"
	DocBollettaEnergia  = "bolletta_energia"
	DocBollettaGas      = "bolletta_gas"
	DocPolizza          = "polizza"
	DocContrattoMutuo   = "contratto_mutuo"
	DocISEE             = "isee"
	Doc730              = "730"
	DocModelloRedditi   = "modello_redditi"
	DocContrattoAffitto = "contratto_affitto"
	DocAltro            = "altro"
	DocNonRiconosciuto  = "non_riconosciuto"
)

// PersonalInfo holds the identity of the contributor.
type PersonalInfo struct {
	Nome            string `json:"nome"`
	Cognome         string `json:"cognome"`
	CodiceFiscale   string `json:"codice_fiscale,omitempty"`
	DataNascita     string `json:"data_nascita,omitempty"` // ISO date
	ComuneResidenza string `json:"comune_residenza,omitempty"`
	Provincia       string `json:"provincia,omitempty"`
	Regione         string `json:"regione,omitempty"`
}

// FamilyMember is one member of the household.
// PercentualeCarico is either 50 or 100.
type FamilyMember struct {
	Relazione         string `json:"relazione"` // coniuge|figlio|genitore|altro
	Nome              string `json:"nome,omitempty"`
	DataNascita       string `json:"data_nascita,omitempty"`
	ACarico           bool   `json:"a_carico"`
	Disabilita        bool   `json:"disabilita"`
	PercentualeCarico int    `json:"percentuale_carico"`
}

// EmploymentInfo describes the contributor's employment situation.
type EmploymentInfo struct {
	Tipo         string  `json:"tipo"` // dipendente|autonomo|partita_iva|pensionato|disoccupato
	DatoreLavoro string  `json:"datore_lavoro,omitempty"`
	RALAnnua     float64 `json:"ral_annua,omitempty"` // Reddito Annuo Lordo
	RedditoNetto float64 `json:"reddito_netto,omitempty"`
	CCNL         string  `json:"ccnl,omitempty"` // e.g. "Metalmeccanico"
	Livello      string  `json:"livello,omitempty"`
}

// IncomeSource is one source of yearly income.
type IncomeSource struct {
	Tipo              string  `json:"tipo"` // lavoro_dipendente|lavoro_autonomo|affitto|capitale|diversi|pensione
	ImportoAnnuoLordo float64 `json:"importo_annuo_lordo"`
	Ritenute          float64 `json:"ritenute"`
}

// Expense is a declarable/deductible yearly expense.
type Expense struct {
	Categoria    string  `json:"categoria"`
	ImportoAnnuo float64 `json:"importo_annuo"`
	GiaDetratta  bool    `json:"gia_detratta"` // already present in the tax return
	Descrizione  string  `json:"descrizione,omitempty"`
}

// Contract kinds.
const (
	ContrattoEnergia           = "energia"
	ContrattoGas               = "gas"
	ContrattoInternet          = "internet"
	ContrattoMobile            = "mobile"
	ContrattoAssicurazioneAuto = "assicurazione_auto"
	ContrattoAssicurazioneCasa = "assicurazione_casa"
	ContrattoAssicurazioneVita = "assicurazione_vita"
	ContrattoMutuo             = "mutuo"
	ContrattoAffitto           = "affitto"
	ContrattoPayTV             = "pay_tv"
	ContrattoAbbonamento       = "abbonamento"
	ContrattoAltro             = "altro"
)

// DetailValue is one value of a contract detail map. Extraction output is
// loosely typed, so details are restricted to a closed set of scalar kinds
// rather than arbitrary JSON; anything else is dropped during normalization.
type DetailValue struct {
	Str  string  `json:"str,omitempty"`
	Num  float64 `json:"num,omitempty"`
	Bool bool    `json:"bool,omitempty"`
	Kind string  `json:"kind"` // "string" | "number" | "bool"
}

// StringDetail builds a string-kind detail value.
func StringDetail(s string) DetailValue { return DetailValue{Str: s, Kind: "string"} }

// NumberDetail builds a number-kind detail value.
func NumberDetail(n float64) DetailValue { return DetailValue{Num: n, Kind: "number"} }

// BoolDetail builds a bool-kind detail value.
func BoolDetail(b bool) DetailValue { return DetailValue{Bool: b, Kind: "bool"} }

// Contract is one utility/financial agreement (bolletta, polizza, mutuo, ...).
type Contract struct {
	Tipo         string                 `json:"tipo"`
	Fornitore    string                 `json:"fornitore"`
	CostoMensile float64                `json:"costo_mensile,omitempty"`
	CostoAnnuo   float64                `json:"costo_annuo,omitempty"`
	DataScadenza string                 `json:"data_scadenza,omitempty"`
	Dettagli     map[string]DetailValue `json:"dettagli,omitempty"` // kWh, Gbps, massimale, ...
}

// PropertyOwned is one owned real-estate property.
type PropertyOwned struct {
	Tipo             string  `json:"tipo"` // abitazione_principale|seconda_casa|terreno|commerciale
	Comune           string  `json:"comune,omitempty"`
	RenditaCatastale float64 `json:"rendita_catastale,omitempty"`
	AnnoAcquisto     int     `json:"anno_acquisto,omitempty"`
	MutuoResiduo     float64 `json:"mutuo_residuo,omitempty"`
}

// FinancialProfile is the canonical aggregate describing one individual's
// financial situation, built by folding document extractions plus optional
// user-supplied overrides. It is read-only once handed to the analyzers.
type FinancialProfile struct {
	PersonalInfo        PersonalInfo    `json:"personal_info"`
	Famiglia            []FamilyMember  `json:"famiglia"`
	Employment          *EmploymentInfo `json:"employment,omitempty"`
	Redditi             []IncomeSource  `json:"redditi"`
	Spese               []Expense       `json:"spese"`
	Contratti           []Contract      `json:"contratti"`
	Proprieta           []PropertyOwned `json:"proprieta"`
	ISEE                *float64        `json:"isee,omitempty"`
	AnnoRiferimento     int             `json:"anno_riferimento"`
	DocumentiAnalizzati []string        `json:"documenti_analizzati"`
	DatiMancanti        []string        `json:"dati_mancanti"`
	ConfidenceScore     float64         `json:"confidence_score"` // mean of contributing extraction confidences
}

// DocumentExtraction is the structured output of the ingestion agent for a
// single document. DatiEstratti is the raw per-type field bag; its shape
// depends on TipoDocumento and is interpreted by the normalizer.
type DocumentExtraction struct {
	Filename      string                 `json:"filename"`
	TipoDocumento string                 `json:"tipo_documento"`
	DatiEstratti  map[string]interface{} `json:"dati_estratti"`
	Confidence    float64                `json:"confidence"`
	Warnings      []string               `json:"warnings,omitempty"`
	DatiMancanti  []string               `json:"dati_mancanti,omitempty"`
}

// ExtraInfo carries optional user-supplied overrides applied after the
// document fold. Overrides fill gaps; they never remove extracted data.
type ExtraInfo struct {
	ComuneResidenza string   `json:"comune_residenza,omitempty"`
	Provincia       string   `json:"provincia,omitempty"`
	Regione         string   `json:"regione,omitempty"`
	ISEE            *float64 `json:"isee,omitempty"`
	NFigli          int      `json:"n_figli,omitempty"`
}
