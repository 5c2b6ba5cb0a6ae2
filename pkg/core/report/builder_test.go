package report

import (
	"testing"

	"soldi_persi/pkg/models"
)

func baseProfile() *models.FinancialProfile {
	return &models.FinancialProfile{
		PersonalInfo: models.PersonalInfo{Nome: "Mario", Cognome: "Rossi"},
		Employment: &models.EmploymentInfo{
			Tipo:         "dipendente",
			RALAnnua:     35000.0,
			RedditoNetto: 26000.0,
		},
		AnnoRiferimento:     2024,
		ConfidenceScore:     0.85,
		DocumentiAnalizzati: []string{"cu_2024.pdf"},
		DatiMancanti:        []string{},
	}
}

func TestBuild_Totals(t *testing.T) {
	taxOpps := []models.TaxOpportunity{
		{Titolo: "Detrazione mediche", RisparmioStimatoAnnuo: 127.0, RisparmioMinimo: 100.0, RisparmioMassimo: 152.0, Confidence: 0.9},
		{Titolo: "Bonus ristrutturazione", RisparmioStimatoAnnuo: 500.0, RisparmioMinimo: 400.0, RisparmioMassimo: 600.0, Confidence: 0.7},
	}
	costOpps := []models.CostReduction{
		{Titolo: "Gas sopra benchmark", RisparmioStimatoAnnuo: 290.0},
	}
	benefits := []models.BenefitOpportunity{
		{Titolo: "Assegno Unico", ValoreStimato: 3480.0, ValoreMinimo: 2800.0, ValoreMassimo: 4200.0, EligibilitaConfidence: 0.95},
	}

	r := Build(baseProfile(), taxOpps, costOpps, benefits, nil)

	if got := r.OpportunitaFiscali.TotaleRisparmio; got != 627.0 {
		t.Errorf("tax section total: expected 627, got %f", got)
	}
	if got := r.RiduzioniCosto.TotaleRisparmio; got != 290.0 {
		t.Errorf("cost section total: expected 290, got %f", got)
	}
	if got := r.BenefitDisponibili.TotaleRisparmio; got != 3480.0 {
		t.Errorf("benefit section total: expected 3480, got %f", got)
	}

	// Grand total is exactly the sum of the three section totals.
	wantTotal := 627.0 + 290.0 + 3480.0
	if r.RisparmioTotaleStimato != wantTotal {
		t.Errorf("grand total: expected %f, got %f", wantTotal, r.RisparmioTotaleStimato)
	}

	// Cost records have no band: min/max synthesized as ±30%.
	wantMin := 100.0 + 400.0 + 290.0*0.7 + 2800.0
	wantMax := 152.0 + 600.0 + 290.0*1.3 + 4200.0
	if r.RisparmioMinimo != wantMin {
		t.Errorf("grand min: expected %f, got %f", wantMin, r.RisparmioMinimo)
	}
	if r.RisparmioMassimo != wantMax {
		t.Errorf("grand max: expected %f, got %f", wantMax, r.RisparmioMassimo)
	}

	if r.ReportID == "" {
		t.Error("expected a generated report id")
	}
	if r.Disclaimer != Disclaimer {
		t.Error("disclaimer missing")
	}
	if r.AnnoRiferimento != 2024 {
		t.Errorf("expected anno 2024, got %d", r.AnnoRiferimento)
	}
	if r.ProfiloCompletezza != 0.85 {
		t.Errorf("expected completezza 0.85, got %f", r.ProfiloCompletezza)
	}
}

func TestBuild_PrioritizedOrdering(t *testing.T) {
	// (2500, eligibility 1.0) benefit vs (890, 0.9, facile) tax vs
	// (960, medio) cost: scores 2500, 801, 672.
	taxOpps := []models.TaxOpportunity{
		{Titolo: "Tax", RisparmioStimatoAnnuo: 890.0, Confidence: 0.9, Difficolta: models.DifficoltaFacile, AzioneRichiesta: "Dichiara"},
	}
	costOpps := []models.CostReduction{
		{Titolo: "Cost", RisparmioStimatoAnnuo: 960.0, SforzoCambio: models.SforzoMedio},
	}
	benefits := []models.BenefitOpportunity{
		{Titolo: "Benefit", ValoreStimato: 2500.0, EligibilitaConfidence: 1.0, ComeRichiederlo: "Domanda INPS"},
	}

	r := Build(baseProfile(), taxOpps, costOpps, benefits, nil)

	if len(r.AzioniPrioritarie) != 3 {
		t.Fatalf("expected 3 actions, got %d", len(r.AzioniPrioritarie))
	}
	wantOrder := []string{"Benefit", "Tax", "Cost"}
	for i, want := range wantOrder {
		if r.AzioniPrioritarie[i].Titolo != want {
			t.Errorf("action[%d]: expected %q, got %q", i, want, r.AzioniPrioritarie[i].Titolo)
		}
	}
}

func TestBuild_PrioritizedTieBreakIsInputOrder(t *testing.T) {
	// Identical scores: tax comes before cost, cost before benefit.
	taxOpps := []models.TaxOpportunity{
		{Titolo: "Tax", RisparmioStimatoAnnuo: 100.0, Confidence: 1.0, Difficolta: models.DifficoltaFacile},
	}
	costOpps := []models.CostReduction{
		{Titolo: "Cost", RisparmioStimatoAnnuo: 100.0, SforzoCambio: models.SforzoMinimo},
	}
	benefits := []models.BenefitOpportunity{
		{Titolo: "Benefit", ValoreStimato: 100.0, EligibilitaConfidence: 1.0},
	}

	r := Build(baseProfile(), taxOpps, costOpps, benefits, nil)

	wantOrder := []string{"Tax", "Cost", "Benefit"}
	for i, want := range wantOrder {
		if r.AzioniPrioritarie[i].Titolo != want {
			t.Errorf("action[%d]: expected %q, got %q", i, want, r.AzioniPrioritarie[i].Titolo)
		}
	}
}

func TestBuild_UnknownEffortTagDefaults(t *testing.T) {
	taxOpps := []models.TaxOpportunity{
		{Titolo: "A", RisparmioStimatoAnnuo: 1000.0, Confidence: 1.0, Difficolta: "impossibile"},
		{Titolo: "B", RisparmioStimatoAnnuo: 1000.0, Confidence: 1.0, Difficolta: models.DifficoltaMedia},
	}

	r := Build(baseProfile(), taxOpps, nil, nil, nil)

	// Unknown difficulty scores like "media" (0.7): tie broken by input order.
	if r.AzioniPrioritarie[0].Titolo != "A" || r.AzioniPrioritarie[1].Titolo != "B" {
		t.Errorf("unexpected order: %+v", r.AzioniPrioritarie)
	}
}

func TestBuild_TopNCap(t *testing.T) {
	var taxOpps []models.TaxOpportunity
	for i := 0; i < 5; i++ {
		taxOpps = append(taxOpps, models.TaxOpportunity{
			Titolo:                "Opp",
			RisparmioStimatoAnnuo: float64(100 * (i + 1)),
			Confidence:            0.9,
			Difficolta:            models.DifficoltaFacile,
		})
	}

	r := Build(baseProfile(), taxOpps, nil, nil, nil)

	if len(r.AzioniPrioritarie) != 3 {
		t.Errorf("expected at most 3 actions, got %d", len(r.AzioniPrioritarie))
	}
	if r.AzioniPrioritarie[0].Risparmio != 500.0 {
		t.Errorf("expected highest saving first, got %f", r.AzioniPrioritarie[0].Risparmio)
	}

	r = Build(baseProfile(), taxOpps[:2], nil, nil, nil)
	if len(r.AzioniPrioritarie) != 2 {
		t.Errorf("expected 2 actions for 2 opportunities, got %d", len(r.AzioniPrioritarie))
	}
}

func TestBuild_CostActionDefaults(t *testing.T) {
	costOpps := []models.CostReduction{
		{Titolo: "Gas", RisparmioStimatoAnnuo: 300.0, SforzoCambio: models.SforzoMinimo},
	}

	r := Build(baseProfile(), nil, costOpps, nil, nil)

	a := r.AzioniPrioritarie[0]
	if a.Azione != "Confronta offerte sul mercato" {
		t.Errorf("expected default action, got %q", a.Azione)
	}
	if a.Urgenza != models.UrgenzaImmediata {
		t.Errorf("cost actions are always immediate, got %q", a.Urgenza)
	}
}

func TestBuild_BenefitUrgency(t *testing.T) {
	benefits := []models.BenefitOpportunity{
		{Titolo: "Con scadenza", ValoreStimato: 500.0, EligibilitaConfidence: 0.9, ScadenzaDomanda: "2025-03-31"},
		{Titolo: "Senza scadenza", ValoreStimato: 400.0, EligibilitaConfidence: 0.9},
	}

	r := Build(baseProfile(), nil, nil, benefits, nil)

	if r.AzioniPrioritarie[0].Urgenza != models.UrgenzaImmediata {
		t.Errorf("deadline benefit must be immediate, got %q", r.AzioniPrioritarie[0].Urgenza)
	}
	if r.AzioniPrioritarie[1].Urgenza != models.UrgenzaPianificazione {
		t.Errorf("open-ended benefit is pianificazione, got %q", r.AzioniPrioritarie[1].Urgenza)
	}
}

func TestHealthScore(t *testing.T) {
	tests := []struct {
		name    string
		profile *models.FinancialProfile
		savings float64
		want    int
	}{
		{
			name:    "net income present",
			profile: baseProfile(), // netto 26000
			savings: 2600.0,        // 10% lost -> 90
			want:    90,
		},
		{
			name: "falls back to 70% of RAL",
			profile: &models.FinancialProfile{
				Employment: &models.EmploymentInfo{RALAnnua: 30000.0},
			},
			savings: 2100.0, // net 21000, 10% -> 90
			want:    90,
		},
		{
			name:    "no employment defaults to midpoint",
			profile: &models.FinancialProfile{},
			savings: 5000.0,
			want:    50,
		},
		{
			name:    "clamped at zero",
			profile: baseProfile(),
			savings: 52000.0, // 200% of net
			want:    0,
		},
		{
			name:    "no savings is a perfect score",
			profile: baseProfile(),
			savings: 0.0,
			want:    100,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := healthScore(tc.profile, tc.savings); got != tc.want {
				t.Errorf("expected %d, got %d", tc.want, got)
			}
		})
	}
}

func TestBuild_EmptyLists(t *testing.T) {
	profile := &models.FinancialProfile{DatiMancanti: []string{}}
	r := Build(profile, nil, nil, nil, nil)

	if r.RisparmioTotaleStimato != 0 || r.RisparmioMinimo != 0 || r.RisparmioMassimo != 0 {
		t.Errorf("empty lists must yield zero totals: %+v", r)
	}
	if len(r.AzioniPrioritarie) != 0 {
		t.Errorf("expected no actions, got %d", len(r.AzioniPrioritarie))
	}
	if r.ScoreSaluteFinanziaria != 50 {
		t.Errorf("no income info defaults to 50, got %d", r.ScoreSaluteFinanziaria)
	}
}

func TestBuild_Limitations(t *testing.T) {
	profile := baseProfile()
	profile.DatiMancanti = []string{"ISEE", "Fonti di reddito"}

	r := Build(profile, nil, nil, nil, []string{"Analisi costi non disponibile: timeout"})

	want := []string{
		"Analisi costi non disponibile: timeout",
		"Dato mancante: ISEE",
		"Dato mancante: Fonti di reddito",
	}
	if len(r.Limitazioni) != len(want) {
		t.Fatalf("expected %d limitations, got %v", len(want), r.Limitazioni)
	}
	for i, w := range want {
		if r.Limitazioni[i] != w {
			t.Errorf("limitation[%d]: expected %q, got %q", i, w, r.Limitazioni[i])
		}
	}
}

func TestBuild_Deterministic(t *testing.T) {
	taxOpps := []models.TaxOpportunity{
		{Titolo: "Tax", RisparmioStimatoAnnuo: 890.0, RisparmioMinimo: 700.0, RisparmioMassimo: 1000.0, Confidence: 0.9, Difficolta: models.DifficoltaFacile},
	}
	benefits := []models.BenefitOpportunity{
		{Titolo: "Benefit", ValoreStimato: 2500.0, EligibilitaConfidence: 1.0},
	}

	first := Build(baseProfile(), taxOpps, nil, benefits, nil)
	second := Build(baseProfile(), taxOpps, nil, benefits, nil)

	if first.RisparmioTotaleStimato != second.RisparmioTotaleStimato ||
		first.RisparmioMinimo != second.RisparmioMinimo ||
		first.RisparmioMassimo != second.RisparmioMassimo {
		t.Error("totals must be deterministic")
	}
	if len(first.AzioniPrioritarie) != len(second.AzioniPrioritarie) {
		t.Fatal("action counts differ")
	}
	for i := range first.AzioniPrioritarie {
		if first.AzioniPrioritarie[i] != second.AzioniPrioritarie[i] {
			t.Errorf("action[%d] differs: %+v vs %+v", i, first.AzioniPrioritarie[i], second.AzioniPrioritarie[i])
		}
	}
	if first.ReportID == second.ReportID {
		t.Error("report ids must be unique per build")
	}
}
