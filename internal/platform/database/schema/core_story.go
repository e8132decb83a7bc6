package schema

// CoreStoryTable represents the 'core.story' table
type CoreStoryTable struct {
	Table       string
	ID          string
	Title       string
	Description string
	CoverColor  string
	CoverImage  string
	Genre       string
	Status      string
	CreatedAt   string
	UpdatedAt   string
}

// CoreStory is the schema definition for core.story
var CoreStory = CoreStoryTable{
	Table:       "core.story",
	ID:          "id",
	Title:       "title",
	Description: "description",
	CoverColor:  "covercolor",
	CoverImage:  "coverimage",
	Genre:       "genre",
	Status:      "status",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
}

func (t CoreStoryTable) Columns() []string {
	return []string{
		t.ID, t.Title, t.Description, t.CoverColor, t.CoverImage,
		t.Genre, t.Status, t.CreatedAt, t.UpdatedAt,
	}
}
