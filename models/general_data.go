package models

// Image slots of the general data document
const (
	ImageSlotLogo      = "logo"
	ImageSlotLogin     = "loginImage"
	ImageSlotWholesale = "wholesaleImage"
	ImageSlotContact   = "contactImage"
	ImageSlotPolicy    = "policyImage"
)

// ImageSlots lists every general data field that holds a file id
var ImageSlots = []string{ImageSlotLogo, ImageSlotLogin, ImageSlotWholesale, ImageSlotContact, ImageSlotPolicy}

// GeneralData holds site-wide branding: logo, social links, terms and the
// images used on the login, wholesale, contact and policy pages.
type GeneralData struct {
	ID             string `json:"id" bson:"id,omitempty"`
	Logo           string `json:"logo" bson:"logo"`
	Facebook       string `json:"facebook" bson:"facebook"`
	Twitter        string `json:"twitter" bson:"twitter"`
	Instagram      string `json:"instagram" bson:"instagram"`
	Linkedin       string `json:"linkedin" bson:"linkedin"`
	Terms          string `json:"terms" bson:"terms"`
	LoginImage     string `json:"loginImage" bson:"loginImage"`
	WholesaleImage string `json:"wholesaleImage" bson:"wholesaleImage"`
	ContactImage   string `json:"contactImage" bson:"contactImage"`
	PolicyImage    string `json:"policyImage" bson:"policyImage"`
}

func (g *GeneralData) Normalize() error {
	return nil
}

// DefaultGeneralData is written when the store holds no general data yet
func DefaultGeneralData() GeneralData {
	return GeneralData{
		Logo:      "",
		Facebook:  "https://www.facebook.com",
		Twitter:   "https://www.twitter.com",
		Instagram: "https://www.instagram.com",
		Linkedin:  "https://www.linkedin.com",
		Terms:     "<p>Default Terms and Conditions.</p>",
	}
}

// ImageID returns the file id held by a slot
func (g GeneralData) ImageID(slot string) string {
	switch slot {
	case ImageSlotLogo:
		return g.Logo
	case ImageSlotLogin:
		return g.LoginImage
	case ImageSlotWholesale:
		return g.WholesaleImage
	case ImageSlotContact:
		return g.ContactImage
	case ImageSlotPolicy:
		return g.PolicyImage
	}
	return ""
}

// GeneralDataView is general data with download URLs per image slot
type GeneralDataView struct {
	GeneralData
	ImageURLs map[string]string `json:"imageUrls"`
}

type GeneralDataLinksRequest struct {
	Facebook  string `json:"facebook" validate:"omitempty,url"`
	Twitter   string `json:"twitter" validate:"omitempty,url"`
	Instagram string `json:"instagram" validate:"omitempty,url"`
	Linkedin  string `json:"linkedin" validate:"omitempty,url"`
	Terms     string `json:"terms"`
}
