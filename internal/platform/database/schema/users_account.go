package schema

// UsersAccountTable represents the 'users.account' table
type UsersAccountTable struct {
	Table        string
	ID           string
	Username     string
	PasswordHash string
	CreatedAt    string
}

// UsersAccount is the schema definition for users.account
var UsersAccount = UsersAccountTable{
	Table:        "users.account",
	ID:           "id",
	Username:     "username",
	PasswordHash: "passwordhash",
	CreatedAt:    "createdat",
}

func (t UsersAccountTable) Columns() []string {
	return []string{
		t.ID, t.Username, t.PasswordHash, t.CreatedAt,
	}
}
