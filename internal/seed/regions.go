package seed

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Region mirrors the regions reference table for deployments that do
// not run the SQL migration set.
type Region struct {
	Code      string `gorm:"primaryKey;type:text"`
	Name      string `gorm:"type:text;not null"`
	SortOrder int    `gorm:"column:sort_order;not null;default:0"`
}

// TableName sets the database table name.
func (Region) TableName() string { return "regions" }

// EnsureRegions seeds the NZ region vocabulary. Existing rows are
// left untouched.
func EnsureRegions(db *gorm.DB) error {
	regions := []Region{
		{Code: "northland", Name: "Northland", SortOrder: 1},
		{Code: "auckland", Name: "Auckland", SortOrder: 2},
		{Code: "waikato", Name: "Waikato", SortOrder: 3},
		{Code: "bay-of-plenty", Name: "Bay of Plenty", SortOrder: 4},
		{Code: "gisborne", Name: "Gisborne", SortOrder: 5},
		{Code: "hawkes-bay", Name: "Hawke's Bay", SortOrder: 6},
		{Code: "taranaki", Name: "Taranaki", SortOrder: 7},
		{Code: "manawatu-whanganui", Name: "Manawatū-Whanganui", SortOrder: 8},
		{Code: "wellington", Name: "Wellington", SortOrder: 9},
		{Code: "tasman", Name: "Tasman", SortOrder: 10},
		{Code: "nelson", Name: "Nelson", SortOrder: 11},
		{Code: "marlborough", Name: "Marlborough", SortOrder: 12},
		{Code: "west-coast", Name: "West Coast", SortOrder: 13},
		{Code: "canterbury", Name: "Canterbury", SortOrder: 14},
		{Code: "otago", Name: "Otago", SortOrder: 15},
		{Code: "southland", Name: "Southland", SortOrder: 16},
	}

	return db.Clauses(clause.OnConflict{DoNothing: true}).Create(&regions).Error
}
