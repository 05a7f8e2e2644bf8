package models

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

// CatalogResponse lists the selectable field values the wizard offers.
type CatalogResponse struct {
	ContentTypes []ContentType `json:"content_types"`
	Countries    []string      `json:"countries"`
}
