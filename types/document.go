package types

// Document is one ingested unit of text. A file whose extracted text
// exceeds the large-file threshold is split at ingest time into several
// virtual part documents that share an Origin.
type Document struct {
	ID          string         `json:"id" bson:"id"`
	DisplayName string         `json:"display_name" bson:"display_name"`
	Text        string         `json:"text" bson:"text"`
	Origin      DocumentOrigin `json:"origin,omitempty" bson:"origin,omitempty"`
}

// DocumentOrigin links a virtual part document back to its source file.
// Source is empty for documents that were not split.
type DocumentOrigin struct {
	Source     string `json:"source,omitempty" bson:"source,omitempty"`
	Part       int    `json:"part,omitempty" bson:"part,omitempty"`
	TotalParts int    `json:"total_parts,omitempty" bson:"total_parts,omitempty"`
}

// DocumentInfo is the listing shape served to clients.
type DocumentInfo struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Enabled     bool   `json:"enabled"`
}

// BatchResult reports a multi-file load. A failed file never aborts its
// siblings, so Loaded may be less than Total.
type BatchResult struct {
	Loaded int      `json:"loaded"`
	Total  int      `json:"total"`
	IDs    []string `json:"ids,omitempty"`
	Errors []string `json:"errors,omitempty"`
}
