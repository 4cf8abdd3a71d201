// internal/domain/models/winetypes.go
package models

import "strings"

// Canonical wine region identifiers stored in Wine.Region.
//
// The catalog uses a fixed region list plus the "Other" catch-all; anything
// outside this list is rejected at the route layer.
const (
	RegionNapaValley        = "Napa Valley"
	RegionSonoma            = "Sonoma"
	RegionWillametteValley  = "Willamette Valley"
	RegionColumbiaValley    = "Columbia Valley"
	RegionPasoRobles        = "Paso Robles"
	RegionBordeaux          = "Bordeaux"
	RegionBurgundy          = "Burgundy"
	RegionTuscany           = "Tuscany"
	RegionRioja             = "Rioja"
	RegionMendoza           = "Mendoza"
	RegionBarossaValley     = "Barossa Valley"
	RegionOther             = "Other"
)

// Regions is the full set of allowed region identifiers.
var Regions = []string{
	RegionNapaValley,
	RegionSonoma,
	RegionWillametteValley,
	RegionColumbiaValley,
	RegionPasoRobles,
	RegionBordeaux,
	RegionBurgundy,
	RegionTuscany,
	RegionRioja,
	RegionMendoza,
	RegionBarossaValley,
	RegionOther,
}

// IsValidRegion reports whether r (trimmed, case-insensitive) is an allowed
// region identifier.
func IsValidRegion(r string) bool {
	r = strings.TrimSpace(r)
	for _, v := range Regions {
		if strings.EqualFold(r, v) {
			return true
		}
	}
	return false
}

// CanonicalRegion returns the canonical spelling for r, or r unchanged when
// it is not a known region.
func CanonicalRegion(r string) string {
	r = strings.TrimSpace(r)
	for _, v := range Regions {
		if strings.EqualFold(r, v) {
			return v
		}
	}
	return r
}

// Canonical wine type identifiers stored in Wine.Type.
const (
	WineTypeRed       = "red"
	WineTypeWhite     = "white"
	WineTypeSparkling = "sparkling"
	WineTypeRose      = "rosé"
	WineTypeDessert   = "dessert"
	WineTypeFortified = "fortified"
)

// WineTypes is the full set of allowed wine type identifiers.
var WineTypes = []string{
	WineTypeRed,
	WineTypeWhite,
	WineTypeSparkling,
	WineTypeRose,
	WineTypeDessert,
	WineTypeFortified,
}

// IsValidWineType reports whether t (trimmed, lowercased) is an allowed
// wine type. "rose" is accepted as an ASCII spelling of "rosé".
func IsValidWineType(t string) bool {
	t = strings.ToLower(strings.TrimSpace(t))
	if t == "rose" {
		return true
	}
	for _, v := range WineTypes {
		if t == v {
			return true
		}
	}
	return false
}

// CanonicalWineType normalizes t to its stored form.
func CanonicalWineType(t string) string {
	t = strings.ToLower(strings.TrimSpace(t))
	if t == "rose" {
		return WineTypeRose
	}
	return t
}
