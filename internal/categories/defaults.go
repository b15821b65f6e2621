package categories

import "github.com/cleared-dev/tally/internal/model"

// DefaultTable returns the built-in code table used when a project has no
// categories.csv.
func DefaultTable() []model.Category {
	return []model.Category{
		{Code: "F", Name: "Food"},
		{Code: "Tng", Name: "Transport"},
		{Code: "Shp", Name: "Shopping"},
		{Code: "Passport", Name: "Passport"},
		{Code: "Mbl", Name: "Mobile"},
		{Code: "Coffee", Name: "Coffee"},
		{Code: "Sim", Name: "SIM"},
		{Code: "H", Name: "Health"},
	}
}
