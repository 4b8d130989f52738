package models

// ResourceTypePullRequestDetails es el único tipo de recurso que hoy dispara
// un re-fetch dirigido. El esquema queda abierto para futuros tipos.
const ResourceTypePullRequestDetails = "pull-request-details"

// ResourceUpdate es la notificación que el proceso de sincronización envía al
// lado de presentación cuando cambió un recurso. No garantiza orden ni
// deduplicación: el consumidor tiene que ser idempotente.
type ResourceUpdate struct {
	Type       string `json:"type"`
	ResourceID string `json:"resource_id"`
}
