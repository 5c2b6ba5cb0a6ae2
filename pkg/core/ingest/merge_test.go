package ingest

import (
	"testing"
	"time"

	"soldi_persi/pkg/models"
)

func TestMergeExtractions_EmptyInput(t *testing.T) {
	profile := MergeExtractions(nil, nil)

	if profile == nil {
		t.Fatal("expected a profile, got nil")
	}
	if profile.PersonalInfo.Nome != "" {
		t.Errorf("expected empty name, got %q", profile.PersonalInfo.Nome)
	}
	if profile.ConfidenceScore != 0.0 {
		t.Errorf("expected confidence 0.0, got %f", profile.ConfidenceScore)
	}
	if len(profile.DocumentiAnalizzati) != 0 {
		t.Errorf("expected no documents, got %v", profile.DocumentiAnalizzati)
	}

	// All four missing-data checks fire for an empty merge.
	expected := []string{MancanteNome, MancanteOccupazione, MancanteISEE, MancanteRedditi}
	if len(profile.DatiMancanti) != len(expected) {
		t.Fatalf("expected %d missing-data entries, got %v", len(expected), profile.DatiMancanti)
	}
	for i, want := range expected {
		if profile.DatiMancanti[i] != want {
			t.Errorf("missing-data[%d]: expected %q, got %q", i, want, profile.DatiMancanti[i])
		}
	}

	if profile.AnnoRiferimento != time.Now().Year()-1 {
		t.Errorf("expected reference year %d, got %d", time.Now().Year()-1, profile.AnnoRiferimento)
	}
}

func TestMergeExtractions_SingleCU(t *testing.T) {
	results := []models.DocumentExtraction{
		{
			Filename:      "cu_2024.pdf",
			TipoDocumento: models.DocCU,
			Confidence:    0.9,
			DatiEstratti: map[string]interface{}{
				"percipiente": map[string]interface{}{
					"nome":    "Mario",
					"cognome": "Rossi",
				},
				"redditi_lavoro_dipendente": 35000.0,
				"ritenute_irpef":            7500.0,
			},
		},
	}

	profile := MergeExtractions(results, nil)

	if profile.PersonalInfo.Nome != "Mario" || profile.PersonalInfo.Cognome != "Rossi" {
		t.Errorf("unexpected identity: %+v", profile.PersonalInfo)
	}
	if len(profile.Redditi) != 1 {
		t.Fatalf("expected 1 income source, got %d", len(profile.Redditi))
	}
	income := profile.Redditi[0]
	if income.Tipo != "lavoro_dipendente" || income.ImportoAnnuoLordo != 35000.0 || income.Ritenute != 7500.0 {
		t.Errorf("unexpected income source: %+v", income)
	}
	if profile.ConfidenceScore != 0.9 {
		t.Errorf("expected confidence 0.9, got %f", profile.ConfidenceScore)
	}

	// Name and income present; employment and ISEE still missing.
	for _, d := range profile.DatiMancanti {
		if d == MancanteNome || d == MancanteRedditi {
			t.Errorf("unexpected missing-data entry %q", d)
		}
	}
}

func TestMergeExtractions_ZeroIncomeCU(t *testing.T) {
	results := []models.DocumentExtraction{
		{
			Filename:      "cu_vuota.pdf",
			TipoDocumento: models.DocCU,
			Confidence:    0.8,
			DatiEstratti: map[string]interface{}{
				"redditi_lavoro_dipendente": 0.0,
			},
		},
	}

	profile := MergeExtractions(results, nil)

	if len(profile.Redditi) != 0 {
		t.Errorf("zero income must not create a source, got %+v", profile.Redditi)
	}
}

func TestMergeExtractions_IdentityFirstWins(t *testing.T) {
	results := []models.DocumentExtraction{
		{
			Filename:      "cu_2024.pdf",
			TipoDocumento: models.DocCU,
			Confidence:    0.9,
			DatiEstratti: map[string]interface{}{
				"percipiente": map[string]interface{}{"nome": "Mario", "cognome": "Rossi"},
			},
		},
		{
			Filename:      "busta_paga.pdf",
			TipoDocumento: models.DocBustaPaga,
			Confidence:    0.7,
			DatiEstratti: map[string]interface{}{
				"dipendente":    map[string]interface{}{"nome": "Maria", "cognome": "Verdi", "codice_fiscale": "VRDMRA90A41G224X"},
				"datore_lavoro": "TechnoSteel S.r.l.",
			},
		},
	}

	profile := MergeExtractions(results, nil)

	if profile.PersonalInfo.Nome != "Mario" || profile.PersonalInfo.Cognome != "Rossi" {
		t.Errorf("identity must be first-wins, got %+v", profile.PersonalInfo)
	}
	// Gaps still fill from later documents.
	if profile.PersonalInfo.CodiceFiscale != "VRDMRA90A41G224X" {
		t.Errorf("codice fiscale gap should fill from second document, got %q", profile.PersonalInfo.CodiceFiscale)
	}
	if profile.ConfidenceScore != 0.8 {
		t.Errorf("expected mean confidence 0.8, got %f", profile.ConfidenceScore)
	}
}

func TestMergeExtractions_EmploymentInitializedOnce(t *testing.T) {
	results := []models.DocumentExtraction{
		{
			Filename:      "busta_gennaio.pdf",
			TipoDocumento: models.DocBustaPaga,
			Confidence:    0.9,
			DatiEstratti: map[string]interface{}{
				"datore_lavoro": "TechnoSteel S.r.l.",
				"ral_annua":     35000.0,
			},
		},
		{
			Filename:      "busta_febbraio.pdf",
			TipoDocumento: models.DocBustaPaga,
			Confidence:    0.9,
			DatiEstratti: map[string]interface{}{
				"datore_lavoro": "Altra Azienda S.p.A.",
				"ral_annua":     99999.0,
			},
		},
	}

	profile := MergeExtractions(results, nil)

	if profile.Employment == nil {
		t.Fatal("expected employment to be set")
	}
	if profile.Employment.DatoreLavoro != "TechnoSteel S.r.l." {
		t.Errorf("employment must come from the first payslip, got %q", profile.Employment.DatoreLavoro)
	}
	if profile.Employment.RALAnnua != 35000.0 {
		t.Errorf("expected RAL 35000, got %f", profile.Employment.RALAnnua)
	}
}

func TestMergeExtractions_ContractsAppend(t *testing.T) {
	results := []models.DocumentExtraction{
		{
			Filename:      "bolletta_1.pdf",
			TipoDocumento: models.DocBollettaEnergia,
			Confidence:    0.8,
			DatiEstratti:  map[string]interface{}{"fornitore": "Enel Energia", "costo_totale": 85.0},
		},
		{
			Filename:      "bolletta_2.pdf",
			TipoDocumento: models.DocBollettaEnergia,
			Confidence:    0.8,
			DatiEstratti:  map[string]interface{}{"fornitore": "Enel Energia", "costo_totale": 92.0},
		},
	}

	profile := MergeExtractions(results, nil)

	// Same supplier twice is still two contracts: lists never deduplicate.
	if len(profile.Contratti) != 2 {
		t.Fatalf("expected 2 contracts, got %d", len(profile.Contratti))
	}
}

func TestMergeExtractions_Overrides(t *testing.T) {
	isee := 25000.0
	extra := &models.ExtraInfo{
		ComuneResidenza: "Padova",
		Provincia:       "PD",
		Regione:         "Veneto",
		ISEE:            &isee,
		NFigli:          2,
	}

	results := []models.DocumentExtraction{
		{
			Filename:      "cu_2024.pdf",
			TipoDocumento: models.DocCU,
			Confidence:    0.9,
			DatiEstratti: map[string]interface{}{
				"familiari_carico": []interface{}{
					map[string]interface{}{"relazione": "figlio", "percentuale": 50.0},
				},
			},
		},
	}

	profile := MergeExtractions(results, extra)

	if profile.PersonalInfo.ComuneResidenza != "Padova" || profile.PersonalInfo.Regione != "Veneto" {
		t.Errorf("residence overrides not applied: %+v", profile.PersonalInfo)
	}
	if profile.ISEE == nil || *profile.ISEE != 25000.0 {
		t.Errorf("ISEE override not applied: %v", profile.ISEE)
	}

	figli := 0
	for _, f := range profile.Famiglia {
		if f.Relazione == models.RelazioneFiglio {
			figli++
		}
	}
	if figli != 2 {
		t.Errorf("expected 2 figli after top-up, got %d", figli)
	}
	// The extracted member keeps its percentage; only the synthetic one
	// defaults to 100.
	if profile.Famiglia[0].PercentualeCarico != 50 {
		t.Errorf("extracted member must keep percentuale 50, got %d", profile.Famiglia[0].PercentualeCarico)
	}
}

func TestMergeExtractions_NFigliNeverRemoves(t *testing.T) {
	extra := &models.ExtraInfo{NFigli: 1}

	results := []models.DocumentExtraction{
		{
			Filename:      "cu_2024.pdf",
			TipoDocumento: models.DocCU,
			Confidence:    0.9,
			DatiEstratti: map[string]interface{}{
				"familiari_carico": []interface{}{
					map[string]interface{}{"relazione": "figlio"},
					map[string]interface{}{"relazione": "figlio"},
					map[string]interface{}{"relazione": "figlio"},
				},
			},
		},
	}

	profile := MergeExtractions(results, extra)

	if len(profile.Famiglia) != 3 {
		t.Errorf("NFigli lower than extracted count must not remove members, got %d", len(profile.Famiglia))
	}
}

func TestMergeExtractions_UnknownTypeContributesNothing(t *testing.T) {
	results := []models.DocumentExtraction{
		{
			Filename:      "foto_gatto.jpg",
			TipoDocumento: models.DocNonRiconosciuto,
			Confidence:    0.1,
			DatiEstratti:  map[string]interface{}{"qualcosa": "irrilevante"},
		},
	}

	profile := MergeExtractions(results, nil)

	if len(profile.Contratti)+len(profile.Redditi)+len(profile.Famiglia)+len(profile.Spese) != 0 {
		t.Error("unrecognized documents must not contribute profile data")
	}
	// The document still counts toward the ledger and the confidence mean.
	if len(profile.DocumentiAnalizzati) != 1 {
		t.Errorf("expected 1 analyzed document, got %d", len(profile.DocumentiAnalizzati))
	}
	if profile.ConfidenceScore != 0.1 {
		t.Errorf("expected confidence 0.1, got %f", profile.ConfidenceScore)
	}
}
