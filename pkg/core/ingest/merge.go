package ingest

import (
	"time"

	"soldi_persi/pkg/models"
)

// Missing-data diagnostics, appended by the merge checks. They are part of
// the report contract (the builder prefixes them as limitations), so the
// exact strings are fixed.
const (
	MancanteNome        = "Nome del contribuente"
	MancanteOccupazione = "Informazioni occupazionali"
	MancanteISEE        = "ISEE"
	MancanteRedditi     = "Fonti di reddito"
)

// MergeExtractions folds per-document extraction results, in input order,
// into a single FinancialProfile and applies optional user overrides.
//
// Rules:
//   - identity fields are first-wins; employment is initialized by the first
//     busta paga and never overridden by later ones
//   - list sub-entities (famiglia, redditi, spese, contratti, proprieta)
//     strictly append
//   - overrides fill residence/ISEE and top up "figlio" members to NFigli;
//     they never remove extracted data
//   - ConfidenceScore is the arithmetic mean of per-document confidences,
//     0.0 for an empty input: a zero-document merge is a valid minimal
//     profile, not an error
//   - the four missing-data checks run unconditionally and only ever append
func MergeExtractions(results []models.DocumentExtraction, extra *models.ExtraInfo) *models.FinancialProfile {
	acc := &profileAccumulator{}

	documenti := []string{}
	confidences := make([]float64, 0, len(results))

	for _, result := range results {
		documenti = append(documenti, result.Filename)
		confidences = append(confidences, result.Confidence)
		acc.applyExtraction(result)
	}

	if extra != nil {
		applyOverrides(acc, extra)
	}

	avgConfidence := 0.0
	if len(confidences) > 0 {
		sum := 0.0
		for _, c := range confidences {
			sum += c
		}
		avgConfidence = sum / float64(len(confidences))
	}

	datiMancanti := []string{}
	if acc.personalInfo.Nome == "" {
		datiMancanti = append(datiMancanti, MancanteNome)
	}
	if acc.employment == nil {
		datiMancanti = append(datiMancanti, MancanteOccupazione)
	}
	if acc.isee == nil {
		datiMancanti = append(datiMancanti, MancanteISEE)
	}
	if len(acc.redditi) == 0 {
		datiMancanti = append(datiMancanti, MancanteRedditi)
	}

	return &models.FinancialProfile{
		PersonalInfo:        acc.personalInfo,
		Famiglia:            acc.famiglia,
		Employment:          acc.employment,
		Redditi:             acc.redditi,
		Spese:               acc.spese,
		Contratti:           acc.contratti,
		Proprieta:           acc.proprieta,
		ISEE:                acc.isee,
		AnnoRiferimento:     time.Now().Year() - 1,
		DocumentiAnalizzati: documenti,
		DatiMancanti:        datiMancanti,
		ConfidenceScore:     avgConfidence,
	}
}

// applyOverrides applies user-supplied extra info after the document fold.
// Residence fields and ISEE take the user's value; NFigli only tops up the
// "figlio" members already extracted, never removes any.
func applyOverrides(acc *profileAccumulator, extra *models.ExtraInfo) {
	if extra.ComuneResidenza != "" {
		acc.personalInfo.ComuneResidenza = extra.ComuneResidenza
	}
	if extra.Regione != "" {
		acc.personalInfo.Regione = extra.Regione
	}
	if extra.Provincia != "" {
		acc.personalInfo.Provincia = extra.Provincia
	}
	if extra.ISEE != nil {
		v := *extra.ISEE
		acc.isee = &v
	}
	if extra.NFigli > 0 {
		existing := 0
		for _, f := range acc.famiglia {
			if f.Relazione == models.RelazioneFiglio {
				existing++
			}
		}
		for i := existing; i < extra.NFigli; i++ {
			acc.famiglia = append(acc.famiglia, models.FamilyMember{
				Relazione:         models.RelazioneFiglio,
				ACarico:           true,
				PercentualeCarico: 100,
			})
		}
	}
}
