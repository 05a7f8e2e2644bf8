package models

// SeenBeforeRequest answers the "has this asset been here before?" branch
// at the start of the wizard.
type SeenBeforeRequest struct {
	SeenAssetBefore bool   `json:"seen_asset_before"`
	AssetName       string `json:"asset_name"`
}

// IdentityStepRequest carries the non-file fields of the identity step.
// The creative brief itself arrives as a multipart file part named
// "creative_brief", mutually exclusive with CreativeBriefURL.
type IdentityStepRequest struct {
	Name             string   `form:"name"`
	Brand            string   `form:"brand"`
	Product          string   `form:"product"`
	CountriesAiring  []string `form:"countries_airing"`
	PointOfContact   string   `form:"point_of_contact"`
	CreativeBriefURL string   `form:"creative_brief_url"`
}

// ChecklistStepRequest carries free-text answers for one checklist step.
type ChecklistStepRequest struct {
	Notes []string `json:"notes"`
}

// UploadStepRequest carries the non-file fields of the final upload step.
// Asset files arrive as multipart parts named "assets", mutually exclusive
// with AssetURL.
type UploadStepRequest struct {
	ContentType string `form:"content_type"`
	Version     int    `form:"version"`
	Notes       string `form:"notes"`
	AssetURL    string `form:"asset_url"`
}
