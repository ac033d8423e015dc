package model

// Role tags a conversation turn.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one message in a conversation.
type Turn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Source is a cleaned web page excerpt used for citation.
type Source struct {
	URL  string `json:"url"`
	Text string `json:"text"`
}

// Match is a recalled memory record, most similar first.
type Match struct {
	ID       string
	Score    float32
	Vector   []float32
	Metadata map[string]interface{}
}

// Content returns the content metadata field when it is a string.
func (m Match) Content() (string, bool) {
	v, ok := m.Metadata["content"]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}
