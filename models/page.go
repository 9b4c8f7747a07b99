package models

// CatalogPage is one page of the exported PDF catalog. Pages are built
// fresh for every export and discarded once the document is produced.
type CatalogPage struct {
	PageNumber     int       `json:"pageNumber"`
	SectionTitle   string    `json:"sectionTitle"`
	AccentColor    string    `json:"accentColor"`
	Products       []Product `json:"products"`
	IsOfferSection bool      `json:"isOfferSection"`
}
