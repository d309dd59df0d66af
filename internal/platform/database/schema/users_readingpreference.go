package schema

// UserPreferenceTable represents the 'users.readingpreference' table
type UserPreferenceTable struct {
	Table       string
	UserID      string
	Theme       string
	FontFamily  string
	FontSize    string
	LineSpacing string
	PageWidth   string
	UpdatedAt   string
}

// UserPreferences is the schema definition for users.readingpreference
var UserPreferences = UserPreferenceTable{
	Table:       "users.readingpreference",
	UserID:      "userid",
	Theme:       "theme",
	FontFamily:  "fontfamily",
	FontSize:    "fontsize",
	LineSpacing: "linespacing",
	PageWidth:   "pagewidth",
	UpdatedAt:   "updatedat",
}

// Columns returns all standard column names
func (t UserPreferenceTable) Columns() []string {
	return []string{
		t.UserID, t.Theme, t.FontFamily, t.FontSize, t.LineSpacing, t.PageWidth, t.UpdatedAt,
	}
}
