package models

import "strings"

type Todo struct {
	Meta      `bson:",inline"`
	Title     string `bson:"title" json:"title"`
	Completed bool   `bson:"completed" json:"completed"`
	Category  string `bson:"category" json:"category"`
}

func (t *Todo) Normalize() {
	t.Title = strings.TrimSpace(t.Title)
	t.Category = strings.TrimSpace(t.Category)
}

func (t *Todo) Validate() error {
	if t.Title == "" {
		return requiredField("title", "Please provide a todo title")
	}
	return nil
}

type TodoPatch struct {
	Title     *string `json:"title"`
	Completed *bool   `json:"completed"`
	Category  *string `json:"category"`
}

func (p *TodoPatch) Apply(t *Todo) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
	if p.Category != nil {
		t.Category = *p.Category
	}
}
