// Package pipeline coordinates the per-request analysis flow: it fans the
// merged profile out to the three analysis agents concurrently, collects
// their results, and assembles the final report. A failed branch degrades to
// an empty opportunity list plus a limitation note; it never aborts the
// request.
package pipeline

import (
	"context"
	"fmt"
	"sync"

	"soldi_persi/pkg/core/report"
	"soldi_persi/pkg/models"
)

// TaxAnalyzer finds unexploited tax savings.
type TaxAnalyzer interface {
	Analyze(ctx context.Context, profile *models.FinancialProfile) ([]models.TaxOpportunity, error)
}

// CostAnalyzer benchmarks recurring contracts against market prices.
type CostAnalyzer interface {
	Analyze(ctx context.Context, profile *models.FinancialProfile) ([]models.CostReduction, error)
}

// BenefitAnalyzer scouts public benefits the user appears eligible for.
type BenefitAnalyzer interface {
	Analyze(ctx context.Context, profile *models.FinancialProfile) ([]models.BenefitOpportunity, error)
}

// Orchestrator runs the three analysis branches and builds the report.
type Orchestrator struct {
	Tax     TaxAnalyzer
	Cost    CostAnalyzer
	Benefit BenefitAnalyzer
}

func NewOrchestrator(tax TaxAnalyzer, cost CostAnalyzer, benefit BenefitAnalyzer) *Orchestrator {
	return &Orchestrator{Tax: tax, Cost: cost, Benefit: benefit}
}

// Analyze fans out the three branches concurrently and always returns a
// report: branch failures degrade to empty lists plus a limitation note, in
// fixed branch order regardless of completion order.
func (o *Orchestrator) Analyze(ctx context.Context, profile *models.FinancialProfile) (*models.FinalReport, error) {
	var (
		wg sync.WaitGroup

		taxOpps  []models.TaxOpportunity
		costOpps []models.CostReduction
		benefits []models.BenefitOpportunity

		taxErr, costErr, benefitErr error
	)

	wg.Add(3)

	go func() {
		defer wg.Done()
		taxOpps, taxErr = o.Tax.Analyze(ctx, profile)
	}()

	go func() {
		defer wg.Done()
		costOpps, costErr = o.Cost.Analyze(ctx, profile)
	}()

	go func() {
		defer wg.Done()
		benefits, benefitErr = o.Benefit.Analyze(ctx, profile)
	}()

	wg.Wait()

	var limitations []string
	if taxErr != nil {
		fmt.Printf("[PIPELINE] Tax analysis failed: %v\n", taxErr)
		taxOpps = []models.TaxOpportunity{}
		limitations = append(limitations, fmt.Sprintf("Analisi fiscale non disponibile: %v", taxErr))
	}
	if costErr != nil {
		fmt.Printf("[PIPELINE] Cost analysis failed: %v\n", costErr)
		costOpps = []models.CostReduction{}
		limitations = append(limitations, fmt.Sprintf("Analisi costi non disponibile: %v", costErr))
	}
	if benefitErr != nil {
		fmt.Printf("[PIPELINE] Benefit analysis failed: %v\n", benefitErr)
		benefits = []models.BenefitOpportunity{}
		limitations = append(limitations, fmt.Sprintf("Analisi benefit non disponibile: %v", benefitErr))
	}

	return report.Build(profile, taxOpps, costOpps, benefits, limitations), nil
}
