package redact

// Report accumulates what was removed during one sanitization run.
// It is mutated by the redaction passes and read-only once handed to
// the caller.
type Report struct {
	EntitiesRedacted int      `json:"entities_redacted"`
	PeopleRedacted   int      `json:"people_redacted"`
	AmountsRedacted  int      `json:"amounts_redacted"`
	EmailsRedacted   int      `json:"emails_redacted"`
	DatesRedacted    int      `json:"dates_redacted"`
	TotalRedactions  int      `json:"total_redactions"`
	Details          []string `json:"details"`
}

func (r *Report) addEntity(detail string) {
	r.EntitiesRedacted++
	r.TotalRedactions++
	r.Details = append(r.Details, detail)
}

func (r *Report) addPerson(detail string) {
	r.PeopleRedacted++
	r.TotalRedactions++
	r.Details = append(r.Details, detail)
}

func (r *Report) addAmount(detail string) {
	r.AmountsRedacted++
	r.TotalRedactions++
	r.Details = append(r.Details, detail)
}

func (r *Report) addEmail(detail string) {
	r.EmailsRedacted++
	r.TotalRedactions++
	r.Details = append(r.Details, detail)
}

func (r *Report) addDate(detail string) {
	r.DatesRedacted++
	r.TotalRedactions++
	r.Details = append(r.Details, detail)
}
