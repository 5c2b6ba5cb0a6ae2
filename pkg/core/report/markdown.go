package report

import (
	"encoding/json"
	"fmt"
	"strings"

	"soldi_persi/pkg/core/utils"
	"soldi_persi/pkg/models"
)

// sectionItems recovers the typed item slice from a report section. Freshly
// built reports carry the slice directly; a report decoded from JSON (the
// database read path) carries []interface{} instead, so fall back to a
// re-decode through json.
func sectionItems[T any](items interface{}) []T {
	if typed, ok := items.([]T); ok {
		return typed
	}
	if items == nil {
		return nil
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return nil
	}
	var out []T
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil
	}
	return out
}

// RenderMarkdown produces a human-readable markdown summary of the report.
func RenderMarkdown(r *models.FinalReport) string {
	var b strings.Builder

	b.WriteString("# Report Soldi Persi\n\n")
	fmt.Fprintf(&b, "Generato il %s — anno di riferimento %d\n\n", r.DataGenerazione.Format("02/01/2006"), r.AnnoRiferimento)
	fmt.Fprintf(&b, "**Risparmio totale stimato: €%.2f/anno** (min €%.2f — max €%.2f)\n\n",
		r.RisparmioTotaleStimato, r.RisparmioMinimo, r.RisparmioMassimo)
	fmt.Fprintf(&b, "Score salute finanziaria: **%d/100** — completezza profilo %.0f%%\n\n",
		r.ScoreSaluteFinanziaria, r.ProfiloCompletezza*100)

	writeTaxSection(&b, r.OpportunitaFiscali)
	writeCostSection(&b, r.RiduzioniCosto)
	writeBenefitSection(&b, r.BenefitDisponibili)

	if len(r.AzioniPrioritarie) > 0 {
		b.WriteString("## Azioni Prioritarie\n\n")
		for i, a := range r.AzioniPrioritarie {
			fmt.Fprintf(&b, "%d. **%s** (€%.2f, urgenza: %s)\n   %s\n", i+1, a.Titolo, a.Risparmio, a.Urgenza, a.Azione)
		}
		b.WriteString("\n")
	}

	if len(r.Limitazioni) > 0 {
		b.WriteString("## Limitazioni\n\n")
		for _, l := range r.Limitazioni {
			fmt.Fprintf(&b, "- %s\n", l)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "---\n\n*%s*\n", r.Disclaimer)

	return utils.CleanMarkdown(b.String())
}

// RenderHTML converts the markdown summary to HTML for browser delivery.
func RenderHTML(r *models.FinalReport) (string, error) {
	md := RenderMarkdown(r)
	if !utils.ValidateMarkdown(md) {
		return "", fmt.Errorf("summary for report %s is not renderable markdown", r.ReportID)
	}
	return utils.MarkdownToHTML(md)
}

func writeTaxSection(b *strings.Builder, s models.ReportSection) {
	opps := sectionItems[models.TaxOpportunity](s.Items)
	fmt.Fprintf(b, "## %s — €%.2f/anno\n\n", s.Titolo, s.TotaleRisparmio)
	if len(opps) == 0 {
		b.WriteString("Nessuna opportunità identificata.\n\n")
		return
	}
	for _, o := range opps {
		fmt.Fprintf(b, "- **%s**: €%.2f/anno (difficoltà: %s)\n  %s\n", o.Titolo, o.RisparmioStimatoAnnuo, o.Difficolta, o.Descrizione)
		if o.RiferimentoNormativo != "" {
			fmt.Fprintf(b, "  _%s_\n", o.RiferimentoNormativo)
		}
	}
	b.WriteString("\n")
}

func writeCostSection(b *strings.Builder, s models.ReportSection) {
	opps := sectionItems[models.CostReduction](s.Items)
	fmt.Fprintf(b, "## %s — €%.2f/anno\n\n", s.Titolo, s.TotaleRisparmio)
	if len(opps) == 0 {
		b.WriteString("Nessuna riduzione identificata.\n\n")
		return
	}
	for _, o := range opps {
		fmt.Fprintf(b, "- **%s** (%s): €%.2f/anno — attuale €%.2f, benchmark €%.2f\n",
			o.Titolo, o.Categoria, o.RisparmioStimatoAnnuo, o.CostoAttualeAnnuo, o.BenchmarkMercato)
		if o.AlternativaSuggerita != "" {
			fmt.Fprintf(b, "  Alternativa: %s\n", o.AlternativaSuggerita)
		}
	}
	b.WriteString("\n")
}

func writeBenefitSection(b *strings.Builder, s models.ReportSection) {
	opps := sectionItems[models.BenefitOpportunity](s.Items)
	fmt.Fprintf(b, "## %s — €%.2f\n\n", s.Titolo, s.TotaleRisparmio)
	if len(opps) == 0 {
		b.WriteString("Nessun benefit identificato.\n\n")
		return
	}
	for _, o := range opps {
		fmt.Fprintf(b, "- **%s** (%s): €%.2f\n  %s\n", o.Titolo, o.NomeEnte, o.ValoreStimato, o.ComeRichiederlo)
		if o.ScadenzaDomanda != "" {
			fmt.Fprintf(b, "  Scadenza domanda: %s\n", o.ScadenzaDomanda)
		}
	}
	b.WriteString("\n")
}
