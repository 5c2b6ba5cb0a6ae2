// Offline demo: builds a realistic sample profile (Mario Rossi, Padova),
// runs the analysis pipeline with canned agent results, and prints the
// resulting report. No API key or network access required.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"soldi_persi/pkg/core/pipeline"
	"soldi_persi/pkg/core/report"
	"soldi_persi/pkg/models"
)

func logStep(step string, details string) {
	fmt.Printf("\n[STEP] %s\n", step)
	fmt.Println("---------------------------------------------------------")
	fmt.Println(details)
	fmt.Println("---------------------------------------------------------")
}

func main() {
	logStep("0. Initialization", "Starting Soldi Persi offline demo (Mario Rossi, Padova)...")

	profile := demoProfile()
	fmt.Printf("Profilo: %s %s\n", profile.PersonalInfo.Nome, profile.PersonalInfo.Cognome)
	fmt.Printf("RAL: EUR %.0f\n", profile.Employment.RALAnnua)
	fmt.Printf("ISEE: EUR %.0f\n", *profile.ISEE)
	fmt.Printf("Famiglia: %d componenti\n", len(profile.Famiglia))
	fmt.Printf("Contratti: %d\n", len(profile.Contratti))

	logStep("1. Analysis", "Running the three analysis branches (canned results)...")

	orchestrator := pipeline.NewOrchestrator(
		cannedTaxAnalyzer{},
		cannedCostAnalyzer{},
		cannedBenefitAnalyzer{},
	)

	finalReport, err := orchestrator.Analyze(context.Background(), profile)
	if err != nil {
		fmt.Printf("[FATAL] Analysis failed: %v\n", err)
		os.Exit(1)
	}

	logStep("2. Report", report.RenderMarkdown(finalReport))

	reportJSON, err := json.MarshalIndent(finalReport, "", "  ")
	if err != nil {
		fmt.Printf("[FATAL] Failed to serialize report: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile("report_demo.json", reportJSON, 0644); err != nil {
		fmt.Printf("[FATAL] Failed to write report: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("\nReport JSON salvato in: report_demo.json")
}

func demoProfile() *models.FinancialProfile {
	isee := 25000.0
	return &models.FinancialProfile{
		PersonalInfo: models.PersonalInfo{
			Nome:            "Mario",
			Cognome:         "Rossi",
			CodiceFiscale:   "RSSMRA89A01G224K",
			DataNascita:     "1989-01-01",
			ComuneResidenza: "Padova",
			Provincia:       "PD",
			Regione:         "Veneto",
		},
		Famiglia: []models.FamilyMember{
			{Relazione: models.RelazioneConiuge, Nome: "Laura", DataNascita: "1990-05-15", ACarico: true, PercentualeCarico: 100},
			{Relazione: models.RelazioneFiglio, Nome: "Sofia", DataNascita: "2021-03-10", ACarico: true, PercentualeCarico: 100},
			{Relazione: models.RelazioneFiglio, Nome: "Luca", DataNascita: "2017-09-22", ACarico: true, PercentualeCarico: 100},
		},
		Employment: &models.EmploymentInfo{
			Tipo:         "dipendente",
			DatoreLavoro: "TechnoSteel S.r.l.",
			RALAnnua:     35000.0,
			RedditoNetto: 26000.0,
			CCNL:         "Metalmeccanico",
			Livello:      "C3",
		},
		Redditi: []models.IncomeSource{
			{Tipo: "lavoro_dipendente", ImportoAnnuoLordo: 35000.0, Ritenute: 7500.0},
		},
		Spese: []models.Expense{
			{Categoria: "interessi_mutuo", ImportoAnnuo: 3200.0, GiaDetratta: true, Descrizione: "Interessi mutuo prima casa"},
			{Categoria: "mediche", ImportoAnnuo: 800.0, GiaDetratta: false, Descrizione: "Visite specialistiche e farmaci"},
		},
		Contratti: []models.Contract{
			{
				Tipo: models.ContrattoEnergia, Fornitore: "Enel Energia", CostoMensile: 85.0, CostoAnnuo: 1020.0,
				Dettagli: map[string]models.DetailValue{
					"consumo_kwh_anno": models.NumberDetail(2700),
					"potenza_kw":       models.NumberDetail(3.0),
					"tipo":             models.StringDetail("mercato_libero"),
				},
			},
			{
				Tipo: models.ContrattoGas, Fornitore: "Enel Energia", CostoMensile: 120.0, CostoAnnuo: 1440.0,
				Dettagli: map[string]models.DetailValue{
					"consumo_smc_anno": models.NumberDetail(1400),
				},
			},
			{
				Tipo: models.ContrattoAssicurazioneAuto, Fornitore: "UnipolSai", CostoAnnuo: 450.0,
				Dettagli: map[string]models.DetailValue{
					"classe_merito": models.StringDetail("1"),
					"tipo":          models.StringDetail("RC Auto base"),
				},
			},
			{
				Tipo: models.ContrattoMutuo, Fornitore: "Intesa Sanpaolo", CostoMensile: 700.0,
				Dettagli: map[string]models.DetailValue{
					"importo_originario": models.NumberDetail(150000),
					"debito_residuo":     models.NumberDetail(120000),
					"tasso_tipo":         models.StringDetail("fisso"),
					"tasso_attuale":      models.NumberDetail(3.8),
					"durata_anni":        models.NumberDetail(25),
					"anno_stipula":       models.NumberDetail(2020),
				},
			},
		},
		Proprieta: []models.PropertyOwned{
			{Tipo: "abitazione_principale", Comune: "Padova", AnnoAcquisto: 2020, MutuoResiduo: 120000.0},
		},
		ISEE:                &isee,
		AnnoRiferimento:     2024,
		DocumentiAnalizzati: []string{"CU_2024_demo.pdf", "busta_paga_demo.pdf"},
		DatiMancanti:        []string{},
		ConfidenceScore:     0.85,
	}
}

// Canned analyzers return realistic fixed results so the demo runs without
// an LLM.

type cannedTaxAnalyzer struct{}

func (cannedTaxAnalyzer) Analyze(ctx context.Context, profile *models.FinancialProfile) ([]models.TaxOpportunity, error) {
	return []models.TaxOpportunity{
		{
			ID:                    "detrazione-spese-mediche",
			Titolo:                "Detrazione spese mediche non dichiarate",
			Descrizione:           "EUR 800 di spese mediche non risultano detratte: il 19% oltre la franchigia di EUR 129,11 è recuperabile.",
			RiferimentoNormativo:  "Art. 15 TUIR, comma 1, lett. c",
			Tipo:                  "detrazione",
			RisparmioStimatoAnnuo: 127.0,
			RisparmioMinimo:       100.0,
			RisparmioMassimo:      152.0,
			AzioneRichiesta:       "Inserisci le spese mediche nella prossima dichiarazione dei redditi",
			Difficolta:            models.DifficoltaFacile,
			Urgenza:               models.UrgenzaProssimaDichiarazione,
			DocumentiNecessari:    []string{"Scontrini farmacia", "Fatture visite specialistiche"},
			Confidence:            0.9,
		},
	}, nil
}

type cannedCostAnalyzer struct{}

func (cannedCostAnalyzer) Analyze(ctx context.Context, profile *models.FinancialProfile) ([]models.CostReduction, error) {
	return []models.CostReduction{
		{
			ID:                    "gas-sopra-benchmark",
			Titolo:                "Bolletta gas sopra la media di mercato",
			Categoria:             "gas",
			FornitoreAttuale:      "Enel Energia",
			CostoAttualeAnnuo:     1440.0,
			BenchmarkMercato:      1150.0,
			RisparmioStimatoAnnuo: 290.0,
			AlternativaSuggerita:  "Confronta le offerte gas sul Portale Offerte ARERA",
			SforzoCambio:          models.SforzoMinimo,
			FonteBenchmark:        "ARERA, consumo 1400 smc/anno",
		},
		{
			ID:                    "surroga-mutuo",
			Titolo:                "Surroga mutuo a tasso più basso",
			Categoria:             "mutuo",
			FornitoreAttuale:      "Intesa Sanpaolo",
			CostoAttualeAnnuo:     8400.0,
			BenchmarkMercato:      7900.0,
			RisparmioStimatoAnnuo: 500.0,
			AlternativaSuggerita:  "Richiedi preventivi di surroga: il tasso fisso al 3,8% è sopra le offerte attuali",
			SforzoCambio:          models.SforzoSignificativo,
			FonteBenchmark:        "Rilevazione tassi mutui Q4 2024",
		},
	}, nil
}

type cannedBenefitAnalyzer struct{}

func (cannedBenefitAnalyzer) Analyze(ctx context.Context, profile *models.FinancialProfile) ([]models.BenefitOpportunity, error) {
	return []models.BenefitOpportunity{
		{
			ID:                    "assegno-unico",
			Titolo:                "Assegno Unico Universale",
			Descrizione:           "Con 2 figli a carico e ISEE 25.000 spettano circa EUR 145/mese per figlio.",
			EnteErogatore:         "inps",
			NomeEnte:              "INPS",
			ValoreStimato:         3480.0,
			ValoreMinimo:          2800.0,
			ValoreMassimo:         4200.0,
			Tipo:                  "contributo_periodico",
			EligibilitaConfidence: 0.95,
			Requisiti:             []string{"Figli a carico under 21", "ISEE in corso di validità"},
			ComeRichiederlo:       "Domanda online sul sito INPS o tramite patronato",
			LinkUfficiale:         "https://www.inps.it/it/it/dettaglio-scheda.schede-servizio-strumento.schede-servizi.assegno-unico-e-universale-per-i-figli-a-carico-55984.assegno-unico-e-universale-per-i-figli-a-carico.html",
		},
	}, nil
}
