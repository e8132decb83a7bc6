package schema

// CoreChoiceTable represents the 'core.choice' table
type CoreChoiceTable struct {
	Table         string
	ID            string
	ChapterID     string
	Text          string
	NextChapterID string
	OrderNumber   string
	CreatedAt     string
}

// CoreChoice is the schema definition for core.choice
var CoreChoice = CoreChoiceTable{
	Table:         "core.choice",
	ID:            "id",
	ChapterID:     "chapterid",
	Text:          "choicetext",
	NextChapterID: "nextchapterid",
	OrderNumber:   "ordernumber",
	CreatedAt:     "createdat",
}

func (t CoreChoiceTable) Columns() []string {
	return []string{
		t.ID, t.ChapterID, t.Text, t.NextChapterID, t.OrderNumber, t.CreatedAt,
	}
}
