package models

type Category struct {
	ID   int    `gorm:"primaryKey" json:"id"`
	Type string `gorm:"type:text;not null" json:"type"`
}

func (Category) TableName() string { return "categories" }

func (c Category) Format() map[string]any {
	return map[string]any{
		"id":   c.ID,
		"type": c.Type,
	}
}

// CategoryMap keys each category type by its id, the shape the web client
// renders its category list from.
func CategoryMap(categories []Category) map[int]string {
	m := make(map[int]string, len(categories))
	for _, c := range categories {
		m[c.ID] = c.Type
	}
	return m
}
