package types

type User struct {
	ID        string `json:"id" bson:"_id,omitempty"`
	Username  string `json:"username" bson:"username"`
	Password  string `json:"-" bson:"password"`
	CreateAt  int64  `json:"created_at" bson:"created_at"`
	UpdateAt  int64  `json:"updated_at" bson:"updated_at"`
	LastLogin int64  `json:"last_login" bson:"last_login"`
}

// SessionState is the persisted shape of one user's session: the loaded
// documents in insertion order, the enabled id set and the chat history.
// The combined context is never persisted; it is recomputed on restore.
type SessionState struct {
	Username  string      `json:"username" bson:"username"`
	Documents []Document  `json:"documents" bson:"documents"`
	Enabled   []string    `json:"enabled" bson:"enabled"`
	History   []ChatEntry `json:"history" bson:"history"`
	UpdateAt  int64       `json:"updated_at" bson:"updated_at"`
}
