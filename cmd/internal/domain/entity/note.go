package entity

const (
	DefaultNoteTitle = "Untitled"
	DefaultNoteColor = "#111827"
)

type Note struct {
	ID        string   `gorm:"primaryKey;autoIncrement:false"`
	OwnerID   int64    `gorm:"not null;index"` // References: users(id)
	Title     string   `gorm:"not null"`
	Content   string   `gorm:"not null"`
	Tags      []string `gorm:"not null;serializer:json"`
	Color     string   `gorm:"not null"`
	IsPinned  bool     `gorm:"not null;default:false"`
	CreatedAt int64    `gorm:"not null;autoCreateTime:false"`
	UpdatedAt int64    `gorm:"not null;autoUpdateTime:false"`
}

// NoteFields is the allow-list of columns an owner may change on a note.
// A nil field is left untouched.
type NoteFields struct {
	Title    *string
	Content  *string
	Tags     []string
	Color    *string
	IsPinned *bool
}

// IsEmpty reports whether no field is set.
func (f *NoteFields) IsEmpty() bool {
	return f.Title == nil && f.Content == nil && f.Tags == nil &&
		f.Color == nil && f.IsPinned == nil
}
