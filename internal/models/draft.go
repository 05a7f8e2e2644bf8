package models

// ContentType identifies what stage of production an asset is in.
type ContentType string

const (
	ContentTypeScript     ContentType = "Script"
	ContentTypeStoryboard ContentType = "Storyboard"
	ContentTypeAnimatic   ContentType = "Animatic"
	ContentTypeRoughCut   ContentType = "Rough Cut"
	ContentTypeFinalCut   ContentType = "Final Cut"
	ContentTypeVideo      ContentType = "Video"
)

// ContentTypes returns the ordered list of valid content types.
func ContentTypes() []ContentType {
	return []ContentType{
		ContentTypeScript,
		ContentTypeStoryboard,
		ContentTypeAnimatic,
		ContentTypeRoughCut,
		ContentTypeFinalCut,
		ContentTypeVideo,
	}
}

// Valid reports whether c is one of the known content types.
func (c ContentType) Valid() bool {
	for _, known := range ContentTypes() {
		if c == known {
			return true
		}
	}
	return false
}

// AssetDraft is an in-progress submission. It lives in per-user session
// state while the user walks through the wizard and is only persisted as
// an AssetTrackerRow at the final step.
type AssetDraft struct {
	SeenAssetBefore bool     `json:"seen_asset_before"`
	Name            string   `json:"name"`
	Brand           string   `json:"brand"`
	Product         string   `json:"product"`
	CountriesAiring []string `json:"countries_airing"`
	PointOfContact  string   `json:"point_of_contact"`

	// CreativeBriefFilename holds either the blob key of an uploaded
	// creative brief or an external URL to one, never both.
	CreativeBriefFilename string `json:"creative_brief_filename"`

	// AssetFilename holds either the blob key(s) of the uploaded asset
	// file(s) (comma-separated when multiple) or an external URL.
	AssetFilename string `json:"asset_filename"`
	FileUploaded  bool   `json:"file_uploaded_to_s3"`

	ContentType ContentType `json:"content_type"`
	Version     int         `json:"version"`

	MarketingNotes [4]string `json:"marketing_notes"`
	AgencyNotes    [5]string `json:"agency_creative_notes"`
	ReviewNotes    [5]string `json:"creative_review_notes"`
	Notes          string    `json:"notes"`
}

// NewAssetDraft returns an empty draft with the version floor applied.
func NewAssetDraft() AssetDraft {
	return AssetDraft{
		CountriesAiring: []string{},
		Version:         1,
	}
}
