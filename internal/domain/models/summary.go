package models

// ReviewSummary es el resumen generado por IA sobre los detalles locales de una PR.
type ReviewSummary struct {
	Overview   string   `json:"overview"`
	KeyChanges []string `json:"key_changes,omitempty"`
	Risks      []string `json:"risks,omitempty"`
}
