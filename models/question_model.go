package models

type Question struct {
	ID         int    `gorm:"primaryKey" json:"id"`
	Question   string `gorm:"type:text;not null" json:"question"`
	Answer     string `gorm:"type:text;not null" json:"answer"`
	Category   int    `gorm:"not null;index" json:"category"`
	Difficulty int    `gorm:"not null" json:"difficulty"`
}

func (Question) TableName() string { return "questions" }

func (q Question) Format() map[string]any {
	return map[string]any{
		"id":         q.ID,
		"question":   q.Question,
		"answer":     q.Answer,
		"category":   q.Category,
		"difficulty": q.Difficulty,
	}
}

func FormatQuestions(questions []Question) []map[string]any {
	out := make([]map[string]any, 0, len(questions))
	for _, q := range questions {
		out = append(out, q.Format())
	}
	return out
}

// DistinctCategories returns the category ids present in questions, in order
// of first appearance.
func DistinctCategories(questions []Question) []int {
	seen := make(map[int]struct{})
	out := make([]int, 0)
	for _, q := range questions {
		if _, ok := seen[q.Category]; ok {
			continue
		}
		seen[q.Category] = struct{}{}
		out = append(out, q.Category)
	}
	return out
}
