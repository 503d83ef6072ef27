package domain

import (
	"time"
)

// Catalog section constants.
const (
	SectionElectronics = "electronics"
	SectionFurniture   = "furniture"
	SectionKitchen     = "kitchen"
)

// Product represents a catalog entry.
type Product struct {
	ID          string    `json:"id"`
	Section     string    `json:"section"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Description *string   `json:"description,omitempty"`
	Category    string    `json:"category"`
	SubType     *string   `json:"sub_type,omitempty"`
	Brand       *string   `json:"brand,omitempty"`
	ModelNo     *string   `json:"model_no,omitempty"`
	Material    *string   `json:"material,omitempty"`
	Dimensions  *string   `json:"dimensions,omitempty"`
	Color       *string   `json:"color,omitempty"`
	Price       int64     `json:"price"`
	Images      []string  `json:"images"`
	SpecValue   *float64  `json:"spec_value,omitempty"`
	SpecUnit    *string   `json:"spec_unit,omitempty"`
	Available   bool      `json:"availability"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ValidSections returns every section products can belong to.
func ValidSections() []string {
	return []string{SectionElectronics, SectionFurniture, SectionKitchen}
}

// StorefrontSections returns the sections with a public catalog route.
// The kitchen section is managed through the admin panel only.
func StorefrontSections() []string {
	return []string{SectionElectronics, SectionFurniture}
}

// IsValidSection checks whether the given section string is a known section.
func IsValidSection(section string) bool {
	for _, s := range ValidSections() {
		if s == section {
			return true
		}
	}
	return false
}

// IsStorefrontSection checks whether the section has a public catalog route.
func IsStorefrontSection(section string) bool {
	for _, s := range StorefrontSections() {
		if s == section {
			return true
		}
	}
	return false
}
