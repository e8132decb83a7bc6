package schema

// CoreChapterTable represents the 'core.chapter' table
type CoreChapterTable struct {
	Table     string
	ID        string
	StoryID   string
	Number    string
	Title     string
	Content   string
	IsEnding  string
	CreatedAt string
}

// CoreChapter is the schema definition for core.chapter
var CoreChapter = CoreChapterTable{
	Table:     "core.chapter",
	ID:        "id",
	StoryID:   "storyid",
	Number:    "chapternumber",
	Title:     "title",
	Content:   "content",
	IsEnding:  "isending",
	CreatedAt: "createdat",
}

func (t CoreChapterTable) Columns() []string {
	return []string{
		t.ID, t.StoryID, t.Number, t.Title, t.Content, t.IsEnding, t.CreatedAt,
	}
}
