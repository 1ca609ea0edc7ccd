package models

import "strings"

// Banner is a storefront hero banner; ImageID points into the file store
type Banner struct {
	ID       string `json:"id" bson:"id,omitempty"`
	Title    string `json:"title" bson:"title"`
	Subtitle string `json:"subtitle" bson:"subtitle"`
	ImageID  string `json:"imageId" bson:"imageId"`
}

func (b *Banner) Normalize() error {
	b.Title = strings.TrimSpace(b.Title)
	b.Subtitle = strings.TrimSpace(b.Subtitle)
	return nil
}

// BannerView is a banner with its resolved preview URL
type BannerView struct {
	Banner
	ImageURL string `json:"imageUrl"`
}

// BannerPage is one page of a cursor-paginated banner listing
type BannerPage struct {
	Banners    []BannerView `json:"banners"`
	NextCursor string       `json:"nextCursor,omitempty"`
	HasMore    bool         `json:"hasMore"`
}

// BannerRequest is sent as multipart form data; the image is a file part
type BannerRequest struct {
	Title    string `form:"title" validate:"required"`
	Subtitle string `form:"subtitle" validate:"required"`
}
