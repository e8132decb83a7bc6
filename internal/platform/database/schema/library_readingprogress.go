package schema

// LibraryReadingProgressTable represents the 'library.readingprogress' table
type LibraryReadingProgressTable struct {
	Table            string
	SessionID        string
	StoryID          string
	CurrentChapterID string
	LastReadAt       string
}

// LibraryReadingProgress is the schema definition for library.readingprogress
var LibraryReadingProgress = LibraryReadingProgressTable{
	Table:            "library.readingprogress",
	SessionID:        "sessionid",
	StoryID:          "storyid",
	CurrentChapterID: "currentchapterid",
	LastReadAt:       "lastreadat",
}

func (t LibraryReadingProgressTable) Columns() []string {
	return []string{
		t.SessionID, t.StoryID, t.CurrentChapterID, t.LastReadAt,
	}
}
