// Package ingest turns raw financial documents into a single
// FinancialProfile: the ingestion agent classifies and extracts each
// document via the LLM, the normalizer maps each typed extraction onto
// profile sub-entities, and the merger folds everything together.
package ingest

import (
	"soldi_persi/pkg/models"
)

// profileAccumulator is the mutable state built up while folding
// extractions. Identity fields are first-wins; employment is initialized
// once; all slices strictly append.
type profileAccumulator struct {
	personalInfo models.PersonalInfo
	employment   *models.EmploymentInfo
	famiglia     []models.FamilyMember
	redditi      []models.IncomeSource
	spese        []models.Expense
	contratti    []models.Contract
	proprieta    []models.PropertyOwned
	isee         *float64
}

// applyExtraction routes one typed extraction to the sub-entity mergers.
// Unknown document types contribute nothing. Extraction data is never
// invented: fields that are absent or of the wrong shape are dropped.
func (acc *profileAccumulator) applyExtraction(result models.DocumentExtraction) {
	data := result.DatiEstratti

	switch result.TipoDocumento {
	case models.DocCU:
		acc.mergeCU(data)
	case models.DocBustaPaga:
		acc.mergeBustaPaga(data)
	case models.DocBollettaEnergia, models.DocBollettaGas:
		acc.mergeBolletta(data, result.TipoDocumento)
	case models.DocPolizza:
		acc.mergePolizza(data)
	case models.DocContrattoMutuo:
		acc.mergeMutuo(data)
	case models.DocISEE:
		if v, ok := getFloat(data, "valore_isee"); ok {
			acc.isee = &v
		} else if v, ok := getFloat(data, "isee"); ok {
			acc.isee = &v
		}
	case models.DocContrattoAffitto:
		acc.mergeAffitto(data)
	}
}

// mergeCU handles a Certificazione Unica: identity, dependent family
// members and the employee income source.
func (acc *profileAccumulator) mergeCU(data map[string]interface{}) {
	percipiente := getMap(data, "percipiente")
	acc.setIdentity(percipiente)
	if v, ok := getString(percipiente, "comune_residenza"); ok && acc.personalInfo.ComuneResidenza == "" {
		acc.personalInfo.ComuneResidenza = v
	}
	if v, ok := getString(percipiente, "provincia"); ok && acc.personalInfo.Provincia == "" {
		acc.personalInfo.Provincia = v
	}

	if reddito, ok := getFloat(data, "redditi_lavoro_dipendente"); ok && reddito != 0 {
		ritenute, _ := getFloat(data, "ritenute_irpef")
		acc.redditi = append(acc.redditi, models.IncomeSource{
			Tipo:              "lavoro_dipendente",
			ImportoAnnuoLordo: reddito,
			Ritenute:          ritenute,
		})
	}

	for _, raw := range getSlice(data, "familiari_carico") {
		fam, ok := raw.(map[string]interface{})
		if !ok {
			continue
		}
		relazione, ok := getString(fam, "relazione")
		if !ok || relazione == "" {
			continue
		}
		percentuale := 100
		if p, ok := getFloat(fam, "percentuale"); ok && (int(p) == 50 || int(p) == 100) {
			percentuale = int(p)
		}
		acc.famiglia = append(acc.famiglia, models.FamilyMember{
			Relazione:         relazione,
			ACarico:           true,
			PercentualeCarico: percentuale,
		})
	}
}

// mergeBustaPaga fills identity gaps and initializes employment once.
// Later payslips never override employment details already set: the first
// successfully parsed document of a kind is authoritative.
func (acc *profileAccumulator) mergeBustaPaga(data map[string]interface{}) {
	dip := getMap(data, "dipendente")
	acc.setIdentity(dip)

	if acc.employment != nil || len(data) == 0 {
		return
	}
	emp := &models.EmploymentInfo{Tipo: "dipendente"}
	if v, ok := getString(data, "datore_lavoro"); ok {
		emp.DatoreLavoro = v
	}
	if v, ok := getFloat(data, "ral_annua"); ok {
		emp.RALAnnua = v
	}
	if v, ok := getFloat(data, "reddito_netto"); ok {
		emp.RedditoNetto = v
	}
	if v, ok := getString(data, "ccnl"); ok {
		emp.CCNL = v
	}
	if v, ok := getString(data, "livello"); ok {
		emp.Livello = v
	}
	acc.employment = emp
}

// mergeBolletta appends an energy or gas contract; every extracted field
// that is not one of the structured ones lands in the detail map.
func (acc *profileAccumulator) mergeBolletta(data map[string]interface{}, tipoDocumento string) {
	tipo := models.ContrattoEnergia
	if tipoDocumento == models.DocBollettaGas {
		tipo = models.ContrattoGas
	}
	fornitore, ok := getString(data, "fornitore")
	if !ok || fornitore == "" {
		fornitore = "Sconosciuto"
	}
	costo, _ := getFloat(data, "costo_totale")

	acc.contratti = append(acc.contratti, models.Contract{
		Tipo:         tipo,
		Fornitore:    fornitore,
		CostoMensile: costo,
		Dettagli:     detailMap(data, "fornitore", "costo_totale", "tipo_contratto"),
	})
}

// mergePolizza appends an insurance contract.
func (acc *profileAccumulator) mergePolizza(data map[string]interface{}) {
	tipoMap := map[string]string{
		"auto": models.ContrattoAssicurazioneAuto,
		"casa": models.ContrattoAssicurazioneCasa,
		"vita": models.ContrattoAssicurazioneVita,
	}
	rawTipo, _ := getString(data, "tipo")
	tipo, ok := tipoMap[rawTipo]
	if !ok {
		tipo = models.ContrattoAssicurazioneAuto
	}

	fornitore, ok := getString(data, "compagnia")
	if !ok || fornitore == "" {
		fornitore = "Sconosciuto"
	}
	premio, _ := getFloat(data, "premio_annuo")
	scadenza, _ := getString(data, "scadenza")

	acc.contratti = append(acc.contratti, models.Contract{
		Tipo:         tipo,
		Fornitore:    fornitore,
		CostoAnnuo:   premio,
		DataScadenza: scadenza,
		Dettagli:     detailMap(data, "compagnia", "premio_annuo", "scadenza", "tipo"),
	})
}

// mergeMutuo appends a mortgage contract plus the mortgaged property.
func (acc *profileAccumulator) mergeMutuo(data map[string]interface{}) {
	istituto, ok := getString(data, "istituto")
	if !ok || istituto == "" {
		istituto = "Sconosciuto"
	}
	rata, _ := getFloat(data, "rata_mensile")

	acc.contratti = append(acc.contratti, models.Contract{
		Tipo:         models.ContrattoMutuo,
		Fornitore:    istituto,
		CostoMensile: rata,
		Dettagli:     detailMap(data, "istituto", "rata_mensile"),
	})

	tipoMap := map[string]string{
		"prima_casa":   "abitazione_principale",
		"seconda_casa": "seconda_casa",
	}
	rawTipo, _ := getString(data, "tipo")
	tipoProp, ok := tipoMap[rawTipo]
	if !ok {
		tipoProp = "abitazione_principale"
	}
	residuo, _ := getFloat(data, "debito_residuo")
	acc.proprieta = append(acc.proprieta, models.PropertyOwned{
		Tipo:         tipoProp,
		MutuoResiduo: residuo,
	})
}

// mergeAffitto appends a rent contract plus the matching yearly expense.
func (acc *profileAccumulator) mergeAffitto(data map[string]interface{}) {
	canone, ok := getFloat(data, "canone_mensile")
	if !ok {
		canone, _ = getFloat(data, "canone")
	}
	proprietario, okP := getString(data, "proprietario")
	if !okP || proprietario == "" {
		proprietario = "Privato"
	}

	acc.contratti = append(acc.contratti, models.Contract{
		Tipo:         models.ContrattoAffitto,
		Fornitore:    proprietario,
		CostoMensile: canone,
	})

	if canone != 0 {
		acc.spese = append(acc.spese, models.Expense{
			Categoria:    "affitto_abitazione",
			ImportoAnnuo: canone * 12,
		})
	}
}

// setIdentity applies first-wins identity fields from a person sub-object.
func (acc *profileAccumulator) setIdentity(person map[string]interface{}) {
	if v, ok := getString(person, "nome"); ok && acc.personalInfo.Nome == "" {
		acc.personalInfo.Nome = v
	}
	if v, ok := getString(person, "cognome"); ok && acc.personalInfo.Cognome == "" {
		acc.personalInfo.Cognome = v
	}
	if v, ok := getString(person, "codice_fiscale"); ok && acc.personalInfo.CodiceFiscale == "" {
		acc.personalInfo.CodiceFiscale = v
	}
}

// --- loosely-typed field accessors ---

func getString(data map[string]interface{}, key string) (string, bool) {
	if data == nil {
		return "", false
	}
	v, ok := data[key].(string)
	return v, ok && v != ""
}

func getFloat(data map[string]interface{}, key string) (float64, bool) {
	if data == nil {
		return 0, false
	}
	switch v := data[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	}
	return 0, false
}

func getMap(data map[string]interface{}, key string) map[string]interface{} {
	if data == nil {
		return nil
	}
	v, _ := data[key].(map[string]interface{})
	return v
}

func getSlice(data map[string]interface{}, key string) []interface{} {
	if data == nil {
		return nil
	}
	v, _ := data[key].([]interface{})
	return v
}

// detailMap copies the leftover scalar fields of an extraction bag into a
// typed detail map, skipping the named structured keys. Non-scalar values
// (nested objects, arrays) are dropped, keeping the merge behavior
// well-defined for arbitrary extraction output.
func detailMap(data map[string]interface{}, exclude ...string) map[string]models.DetailValue {
	skip := make(map[string]bool, len(exclude))
	for _, k := range exclude {
		skip[k] = true
	}

	details := make(map[string]models.DetailValue)
	for k, raw := range data {
		if skip[k] {
			continue
		}
		switch v := raw.(type) {
		case string:
			details[k] = models.StringDetail(v)
		case float64:
			details[k] = models.NumberDetail(v)
		case bool:
			details[k] = models.BoolDetail(v)
		}
	}
	if len(details) == 0 {
		return nil
	}
	return details
}
