// Package report assembles the final analysis report from the three
// opportunity lists and the financial profile: section totals, savings band,
// financial health score, prioritized actions and limitations.
package report

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"

	"soldi_persi/pkg/models"
)

// Disclaimer closes every report.
const Disclaimer = "Questo report è generato automaticamente e ha valore puramente informativo. " +
	"Le stime di risparmio sono indicative e basate su dati di mercato generali. " +
	"Si consiglia di verificare le opportunità identificate con un professionista abilitato " +
	"(commercialista, consulente finanziario) prima di intraprendere azioni. " +
	"Soldi Persi non è un CAF né un intermediario finanziario."

// Cost records carry no band, so one is synthesized around the estimate.
const (
	costBandLow  = 0.7
	costBandHigh = 1.3
)

// maxPrioritizedActions caps the ranked action list.
const maxPrioritizedActions = 3

// Effort multipliers used when ranking actions.
var (
	taxEffortFactor = map[string]float64{
		models.DifficoltaFacile:    1.0,
		models.DifficoltaMedia:     0.7,
		models.DifficoltaComplessa: 0.4,
	}
	costEffortFactor = map[string]float64{
		models.SforzoMinimo:        1.0,
		models.SforzoMedio:         0.7,
		models.SforzoSignificativo: 0.4,
	}
)

const defaultEffortFactor = 0.7

// scoredAction pairs an action with its ranking score. The score never leaves
// this package.
type scoredAction struct {
	action models.PrioritizedAction
	score  float64
}

// Build assembles the immutable final report. Inputs are never mutated;
// extraLimitations carries upstream degradation notes (failed analysis
// branches) and is appended before the profile's missing-data entries.
func Build(profile *models.FinancialProfile, taxOpps []models.TaxOpportunity, costOpps []models.CostReduction, benefits []models.BenefitOpportunity, extraLimitations []string) *models.FinalReport {
	taxTotal, taxMin, taxMax := taxTotals(taxOpps)
	costTotal, costMin, costMax := costTotals(costOpps)
	benefitTotal, benefitMin, benefitMax := benefitTotals(benefits)

	limitations := make([]string, 0, len(extraLimitations)+len(profile.DatiMancanti))
	limitations = append(limitations, extraLimitations...)
	for _, d := range profile.DatiMancanti {
		limitations = append(limitations, fmt.Sprintf("Dato mancante: %s", d))
	}

	return &models.FinalReport{
		ReportID:           uuid.New().String(),
		DataGenerazione:    time.Now(),
		AnnoRiferimento:    profile.AnnoRiferimento,
		ProfiloCompletezza: profile.ConfidenceScore,

		OpportunitaFiscali: models.ReportSection{
			Titolo:          "Opportunità Fiscali",
			Items:           taxOpps,
			TotaleRisparmio: taxTotal,
		},
		RiduzioniCosto: models.ReportSection{
			Titolo:          "Riduzioni di Costo",
			Items:           costOpps,
			TotaleRisparmio: costTotal,
		},
		BenefitDisponibili: models.ReportSection{
			Titolo:          "Bonus e Agevolazioni Disponibili",
			Items:           benefits,
			TotaleRisparmio: benefitTotal,
		},

		RisparmioTotaleStimato: taxTotal + costTotal + benefitTotal,
		RisparmioMinimo:        taxMin + costMin + benefitMin,
		RisparmioMassimo:       taxMax + costMax + benefitMax,

		AzioniPrioritarie: prioritizeActions(taxOpps, costOpps, benefits),

		DocumentiAnalizzati:    profile.DocumentiAnalizzati,
		Limitazioni:            limitations,
		Disclaimer:             Disclaimer,
		ScoreSaluteFinanziaria: healthScore(profile, taxTotal+costTotal+benefitTotal),
	}
}

func taxTotals(opps []models.TaxOpportunity) (total, min, max float64) {
	for _, o := range opps {
		total += o.RisparmioStimatoAnnuo
		min += o.RisparmioMinimo
		max += o.RisparmioMassimo
	}
	return total, min, max
}

func costTotals(opps []models.CostReduction) (total, min, max float64) {
	for _, o := range opps {
		total += o.RisparmioStimatoAnnuo
		min += o.RisparmioStimatoAnnuo * costBandLow
		max += o.RisparmioStimatoAnnuo * costBandHigh
	}
	return total, min, max
}

func benefitTotals(opps []models.BenefitOpportunity) (total, min, max float64) {
	for _, o := range opps {
		total += o.ValoreStimato
		min += o.ValoreMinimo
		max += o.ValoreMassimo
	}
	return total, min, max
}

// prioritizeActions ranks every opportunity by expected value discounted for
// confidence and effort, keeping the top entries. Within equal scores the
// original order (tax, then cost, then benefit) is preserved.
func prioritizeActions(taxOpps []models.TaxOpportunity, costOpps []models.CostReduction, benefits []models.BenefitOpportunity) []models.PrioritizedAction {
	scored := make([]scoredAction, 0, len(taxOpps)+len(costOpps)+len(benefits))

	for _, o := range taxOpps {
		factor, ok := taxEffortFactor[o.Difficolta]
		if !ok {
			factor = defaultEffortFactor
		}
		scored = append(scored, scoredAction{
			action: models.PrioritizedAction{
				Titolo:    o.Titolo,
				Risparmio: o.RisparmioStimatoAnnuo,
				Azione:    o.AzioneRichiesta,
				Urgenza:   o.Urgenza,
			},
			score: o.RisparmioStimatoAnnuo * o.Confidence * factor,
		})
	}

	for _, o := range costOpps {
		factor, ok := costEffortFactor[o.SforzoCambio]
		if !ok {
			factor = defaultEffortFactor
		}
		azione := o.AlternativaSuggerita
		if azione == "" {
			azione = "Confronta offerte sul mercato"
		}
		scored = append(scored, scoredAction{
			action: models.PrioritizedAction{
				Titolo:    o.Titolo,
				Risparmio: o.RisparmioStimatoAnnuo,
				Azione:    azione,
				Urgenza:   models.UrgenzaImmediata,
			},
			score: o.RisparmioStimatoAnnuo * factor,
		})
	}

	for _, o := range benefits {
		urgenza := models.UrgenzaPianificazione
		if o.ScadenzaDomanda != "" {
			urgenza = models.UrgenzaImmediata
		}
		scored = append(scored, scoredAction{
			action: models.PrioritizedAction{
				Titolo:    o.Titolo,
				Risparmio: o.ValoreStimato,
				Azione:    o.ComeRichiederlo,
				Urgenza:   urgenza,
			},
			score: o.ValoreStimato * o.EligibilitaConfidence,
		})
	}

	sort.SliceStable(scored, func(i, j int) bool { return scored[i].score > scored[j].score })

	n := len(scored)
	if n > maxPrioritizedActions {
		n = maxPrioritizedActions
	}
	actions := make([]models.PrioritizedAction, 0, n)
	for _, s := range scored[:n] {
		actions = append(actions, s.action)
	}
	return actions
}

// healthScore rates the overall situation 0-100 as the share of net income
// NOT left on the table. With no usable income figure it returns the neutral
// midpoint 50.
func healthScore(profile *models.FinancialProfile, totalSavings float64) int {
	var netIncome float64
	if profile.Employment != nil {
		if profile.Employment.RedditoNetto > 0 {
			netIncome = profile.Employment.RedditoNetto
		} else if profile.Employment.RALAnnua > 0 {
			netIncome = profile.Employment.RALAnnua * 0.7
		}
	}
	if netIncome <= 0 {
		return 50
	}

	score := int(math.Round(100 - totalSavings/netIncome*100))
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
