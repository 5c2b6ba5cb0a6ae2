package models

import "time"

// ReportSection groups one opportunity collection with its computed total.
// Items holds exactly one of the three variant slices.
type ReportSection struct {
	Titolo          string      `json:"titolo"`
	Items           interface{} `json:"items"`
	TotaleRisparmio float64     `json:"totale_risparmio"`
}

// PrioritizedAction is one top-N action. The internal priority score used
// for ranking is computed during report assembly and never serialized.
type PrioritizedAction struct {
	Titolo    string  `json:"titolo"`
	Risparmio float64 `json:"risparmio"`
	Azione    string  `json:"azione"`
	Urgenza   string  `json:"urgenza"`
}

// FinalReport is the terminal artifact of one analysis request. Built once,
// never mutated.
type FinalReport struct {
	ReportID           string    `json:"report_id"`
	DataGenerazione    time.Time `json:"data_generazione"`
	AnnoRiferimento    int       `json:"anno_riferimento"`
	ProfiloCompletezza float64   `json:"profilo_completezza"` // profile confidence, 0-1

	OpportunitaFiscali ReportSection `json:"opportunita_fiscali"`
	RiduzioniCosto     ReportSection `json:"riduzioni_costo"`
	BenefitDisponibili ReportSection `json:"benefit_disponibili"`

	RisparmioTotaleStimato float64 `json:"risparmio_totale_stimato"`
	RisparmioMinimo        float64 `json:"risparmio_minimo"`
	RisparmioMassimo       float64 `json:"risparmio_massimo"`

	AzioniPrioritarie []PrioritizedAction `json:"azioni_prioritarie"`

	DocumentiAnalizzati []string `json:"documenti_analizzati"`
	Limitazioni         []string `json:"limitazioni"`
	Disclaimer          string   `json:"disclaimer"`

	ScoreSaluteFinanziaria  int    `json:"score_salute_finanziaria"` // 0-100
	ConfrontoMediaNazionale string `json:"confronto_media_nazionale,omitempty"`
}
