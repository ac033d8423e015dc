package qdrant

// CreateCollectionRequest defines the schema for creating a collection.
type CreateCollectionRequest struct {
	Name    string       `json:"-"` // Collection name (in URL)
	Vectors VectorConfig `json:"vectors"`
}

// VectorConfig defines vector dimension and distance metric.
type VectorConfig struct {
	Size     int    `json:"size"`
	Distance string `json:"distance"` // "Cosine", "Euclid", "Dot"
}

// CollectionInfo is the subset of GET /collections/{name} the service reads.
type CollectionInfo struct {
	Status      string `json:"status"`
	PointsCount int    `json:"points_count"`
}

// PayloadIndexRequest creates an index on a payload field.
type PayloadIndexRequest struct {
	FieldName   string `json:"field_name"`
	FieldSchema string `json:"field_schema"` // "keyword", "integer", ...
}

// Point represents a vector with payload.
// Qdrant requires ID to be a UUID string or uint64.
type Point struct {
	ID      interface{}            `json:"id"`
	Vector  []float32              `json:"vector"`
	Payload map[string]interface{} `json:"payload"`
}

// UpsertPointsRequest is the request to insert/update points.
type UpsertPointsRequest struct {
	Points []Point `json:"points"`
}

// Filter is a Qdrant boolean filter. Only "must" clauses are used here.
type Filter struct {
	Must []Condition `json:"must,omitempty"`
}

// Condition matches a payload key against an exact value.
type Condition struct {
	Key   string     `json:"key"`
	Match MatchValue `json:"match"`
}

// MatchValue is the exact-match clause of a Condition.
type MatchValue struct {
	Value interface{} `json:"value"`
}

// MatchKeyword builds an exact-match condition on key.
func MatchKeyword(key string, value interface{}) Condition {
	return Condition{Key: key, Match: MatchValue{Value: value}}
}

// SearchRequest is the request for semantic search.
type SearchRequest struct {
	Vector      []float32 `json:"vector"`
	Limit       int       `json:"limit"`
	WithPayload bool      `json:"with_payload"`
	WithVector  bool      `json:"with_vector"`
	Filter      *Filter   `json:"filter,omitempty"`
}

// SearchResponse contains search results.
type SearchResponse struct {
	Result []ScoredPoint `json:"result"`
}

// ScoredPoint is a search result with similarity score.
type ScoredPoint struct {
	ID      interface{}            `json:"id"`
	Score   float64                `json:"score"`
	Payload map[string]interface{} `json:"payload"`
	Vector  []float32              `json:"vector,omitempty"`
}

type collectionResponse struct {
	Result CollectionInfo `json:"result"`
}
