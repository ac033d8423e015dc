package model

// PlanKind tags a SearchPlan variant.
type PlanKind int

const (
	PlanAnswerDirectly PlanKind = iota
	PlanSearch
)

func (k PlanKind) String() string {
	if k == PlanSearch {
		return "search"
	}
	return "direct"
}

// SearchPlan is either AnswerDirectly(text) or Search(phrase), never both.
// Construct it through AnswerDirectly or Search.
type SearchPlan struct {
	kind  PlanKind
	value string
}

func AnswerDirectly(text string) SearchPlan {
	return SearchPlan{kind: PlanAnswerDirectly, value: text}
}

func Search(phrase string) SearchPlan {
	return SearchPlan{kind: PlanSearch, value: phrase}
}

func (p SearchPlan) Kind() PlanKind { return p.kind }

// Text returns the echoed query of an AnswerDirectly plan.
func (p SearchPlan) Text() (string, bool) {
	return p.value, p.kind == PlanAnswerDirectly
}

// Phrase returns the search phrase of a Search plan.
func (p SearchPlan) Phrase() (string, bool) {
	return p.value, p.kind == PlanSearch
}
