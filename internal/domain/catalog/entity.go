package catalog

// Ingredient is a catalog entry. Rows referenced by a recipe cannot be
// deleted; the link table restricts it.
type Ingredient struct {
	ID              int64  `json:"id" gorm:"primaryKey"`
	Name            string `json:"name" gorm:"size:200;not null;uniqueIndex"`
	MeasurementUnit string `json:"measurement_unit" gorm:"size:200;not null"`
}

func (Ingredient) TableName() string {
	return "ingredients"
}

type Tag struct {
	ID    int64  `json:"id" gorm:"primaryKey"`
	Name  string `json:"name" gorm:"size:200;not null"`
	Color string `json:"color" gorm:"size:7;not null"`
	Slug  string `json:"slug" gorm:"size:200;not null;uniqueIndex"`
}

func (Tag) TableName() string {
	return "tags"
}
