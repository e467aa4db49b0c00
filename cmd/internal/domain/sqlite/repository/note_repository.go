package repository

import (
	"context"
	"errors"
	"stickynotes/cmd/internal/domain/entity"
	"stickynotes/cmd/internal/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrEmptyOwner = errors.New("note repository: owner cannot be empty")

// DefaultNoteRepository scopes every lookup by both note ID and owner, a note
// owned by someone else is indistinguishable from a missing one.
type DefaultNoteRepository struct {
	db  *gorm.DB
	now func() int64
}

func NewNoteRepository(db *gorm.DB) *DefaultNoteRepository {
	return &DefaultNoteRepository{db: db, now: utils.NowUTC}
}

// Insert assigns the ID and timestamps of note and persists it.
func (d *DefaultNoteRepository) Insert(ctx context.Context, note *entity.Note) (*entity.Note, error) {
	if note.OwnerID == 0 {
		return nil, ErrEmptyOwner
	}

	now := d.now()
	note.ID = uuid.NewString()
	note.CreatedAt = now
	note.UpdatedAt = now
	if note.Tags == nil {
		note.Tags = []string{}
	}

	if err := d.db.WithContext(ctx).Create(note).Error; err != nil {
		return nil, err
	}
	return note, nil
}

func (d *DefaultNoteRepository) FindByOwner(ctx context.Context, ownerID int64) ([]*entity.Note, error) {
	notes := make([]*entity.Note, 0)
	err := d.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&notes).Error
	if err != nil {
		return nil, err
	}
	return notes, nil
}

func (d *DefaultNoteRepository) FindOne(ctx context.Context, id string, ownerID int64) (*entity.Note, error) {
	var note entity.Note
	err := d.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		First(&note).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &note, nil
}

// Update applies fields to the note matching id and ownerID and returns the
// stored result, or nil if nothing matched. ID, owner and CreatedAt are never
// written.
func (d *DefaultNoteRepository) Update(ctx context.Context, id string, ownerID int64, fields *entity.NoteFields) (*entity.Note, error) {
	var note entity.Note
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("id = ? AND owner_id = ?", id, ownerID).First(&note).Error
		if err != nil {
			return err
		}

		applyFields(&note, fields)
		note.UpdatedAt = max(d.now(), note.UpdatedAt+1)
		return tx.Model(&note).
			Select("title", "content", "tags", "color", "is_pinned", "updated_at").
			Updates(&note).Error
	})

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &note, nil
}

// Delete removes the note matching id and ownerID. It reports false when
// there was nothing to remove.
func (d *DefaultNoteRepository) Delete(ctx context.Context, id string, ownerID int64) (bool, error) {
	result := d.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Delete(&entity.Note{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func applyFields(note *entity.Note, fields *entity.NoteFields) {
	if fields == nil {
		return
	}

	if fields.Title != nil {
		note.Title = *fields.Title
	}
	if fields.Content != nil {
		note.Content = *fields.Content
	}
	if fields.Tags != nil {
		note.Tags = fields.Tags
	}
	if fields.Color != nil {
		note.Color = *fields.Color
	}
	if fields.IsPinned != nil {
		note.IsPinned = *fields.IsPinned
	}
}
