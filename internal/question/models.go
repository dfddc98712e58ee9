package question

// Topic buckets questions by subject matter.
type Topic string

const (
	TopicHistory    Topic = "history"
	TopicGovernment Topic = "government"
	TopicCulture    Topic = "culture"
	TopicGeography  Topic = "geography"
	TopicOther      Topic = "other"
)

// Category buckets questions by study source.
type Category string

const (
	CategoryBookBased  Category = "book_based"
	CategoryGeneral    Category = "general"
	CategoryHardest    Category = "hardest"
	CategoryCheatsheet Category = "cheatsheet"
	CategoryCommon     Category = "common"
)

// Topics lists every valid topic key, in display order.
func Topics() []Topic {
	return []Topic{TopicHistory, TopicGovernment, TopicCulture, TopicGeography, TopicOther}
}

// Categories lists every valid category key.
func Categories() []Category {
	return []Category{CategoryBookBased, CategoryGeneral, CategoryHardest, CategoryCheatsheet, CategoryCommon}
}

func ValidTopic(s string) bool {
	for _, t := range Topics() {
		if string(t) == s {
			return true
		}
	}
	return false
}

func ValidCategory(s string) bool {
	for _, c := range Categories() {
		if string(c) == s {
			return true
		}
	}
	return false
}

// Question is a single trivia record. The quiz core treats it as
// immutable; only the import path writes new rows.
type Question struct {
	ID          string   `json:"id"`
	Text        string   `json:"text"`
	Answer      string   `json:"answer"`
	Topic       Topic    `json:"topic"`
	Category    Category `json:"category"`
	Subcategory string   `json:"subcategory,omitempty"`
}
