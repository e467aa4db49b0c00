package contract

import (
	"encoding/json"
	"strings"
)

const (
	MaxNoteTitleLength   = 120
	MaxNoteContentLength = 10000
	MaxNoteTags          = 50
	MaxNoteTagLength     = 40
)

// TagList accepts either a JSON array of strings or a single comma
// separated string, like "work, ideas".
type TagList []string

func (t *TagList) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*t = nil
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err == nil {
		*t = strings.Split(raw, ",")
		return nil
	}

	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return err
	}
	*t = list
	return nil
}

type NoteResponse struct {
	ID        string   `json:"id"`
	Owner     string   `json:"owner"`
	Title     string   `json:"title"`
	Content   string   `json:"content"`
	Tags      []string `json:"tags"`
	Color     string   `json:"color"`
	IsPinned  bool     `json:"isPinned"`
	CreatedAt string   `json:"createdAt"`
	UpdatedAt string   `json:"updatedAt"`
}

type CreateNoteRequest struct {
	Title   string  `json:"title" validate:"max=120"`
	Content string  `json:"content" validate:"required_without=Title,max=10000"`
	Tags    TagList `json:"tags" validate:"max=50,dive,max=40"`
	Color   string  `json:"color" validate:"omitempty,hexcolor"`
}

// UpdateNoteRequest lists every field an owner is allowed to change. Anything
// else in the body, such as "owner" or "id", is dropped while binding.
type UpdateNoteRequest struct {
	Title    *string `json:"title" validate:"omitempty,max=120"`
	Content  *string `json:"content" validate:"omitempty,max=10000"`
	Tags     TagList `json:"tags" validate:"omitempty,max=50,dive,max=40"`
	Color    *string `json:"color" validate:"omitempty,hexcolor"`
	IsPinned *bool   `json:"isPinned"`
}

type DeleteNoteResponse struct {
	Message string `json:"message"`
}
