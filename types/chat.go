package types

// ChatEntry is one answered question in a user's history.
type ChatEntry struct {
	ID               string `json:"id" bson:"id"`
	Question         string `json:"question" bson:"question"`
	Answer           string `json:"answer" bson:"answer"`
	EnabledFileCount int    `json:"enabled_file_count" bson:"enabled_file_count"`
	CreatedAt        int64  `json:"created_at" bson:"created_at"`
}

type AskRequest struct {
	Question string `json:"question"`
}

type AskResponse struct {
	Answer           string `json:"answer"`
	EnabledFileCount int    `json:"enabled_file_count"`
}
