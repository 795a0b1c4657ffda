package transport

// HouseCategories are the house-like listing categories.
var HouseCategories = []string{
	"CHALET",
	"RUSTICO",
	"FARM_HOUSE",
	"BUNGALOW",
	"SINGLE_HOUSE",
	"ENGADINE_HOUSE",
	"BIFAMILIAR_HOUSE",
	"VILLA",
}

// FlatCategories are the flat-like listing categories.
var FlatCategories = []string{
	"APARTMENT",
	"MAISONETTE",
	"DUPLEX",
	"ATTIC_FLAT",
	"ROOF_FLAT",
	"STUDIO",
	"SINGLE_ROOM",
	"TERRACE_FLAT",
	"BACHELOR_FLAT",
	"LOFT",
	"ATTIC",
	"FURNISHED_FLAT",
}

// DefaultCategories returns a fresh copy of HouseCategories followed by FlatCategories.
func DefaultCategories() []string {
	out := make([]string, 0, len(HouseCategories)+len(FlatCategories))
	out = append(out, HouseCategories...)
	return append(out, FlatCategories...)
}
