package service

import (
	"context"
	"stickynotes/cmd/internal/contract"
	"stickynotes/cmd/internal/domain/entity"
	"stickynotes/cmd/internal/utils"
	"stickynotes/cmd/internal/utils/apierror"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"
)

// NoteRepository is the persistence boundary for notes. Every method is
// scoped by owner, a note owned by somebody else is reported as missing.
type NoteRepository interface {
	Insert(ctx context.Context, note *entity.Note) (*entity.Note, error)
	FindByOwner(ctx context.Context, ownerID int64) ([]*entity.Note, error)
	FindOne(ctx context.Context, id string, ownerID int64) (*entity.Note, error)
	Update(ctx context.Context, id string, ownerID int64, fields *entity.NoteFields) (*entity.Note, error)
	Delete(ctx context.Context, id string, ownerID int64) (bool, error)
}

type DefaultNoteService struct {
	NoteRepo NoteRepository
	Validate *validator.Validate
}

func NewNoteService(noteRepo NoteRepository, validate *validator.Validate) *DefaultNoteService {
	return &DefaultNoteService{
		NoteRepo: noteRepo,
		Validate: validate,
	}
}

func (n *DefaultNoteService) GetNotes(ctx context.Context, ownerID int64) ([]*contract.NoteResponse, apierror.ErrorResponse) {
	notes, err := n.NoteRepo.FindByOwner(ctx, ownerID)
	if err != nil {
		log.Errorf("failed to fetch notes of owner %d: %v", ownerID, err)
		return nil, apierror.InternalServerError
	}

	resp := make([]*contract.NoteResponse, len(notes))
	for i, note := range notes {
		resp[i] = toNoteResponse(note)
	}
	return resp, nil
}

func (n *DefaultNoteService) GetNote(ctx context.Context, ownerID int64, noteID string) (*contract.NoteResponse, apierror.ErrorResponse) {
	note, err := n.NoteRepo.FindOne(ctx, noteID, ownerID)
	if err != nil {
		log.Errorf("failed to fetch note %s: %v", noteID, err)
		return nil, apierror.InternalServerError
	}

	if note == nil {
		return nil, apierror.NoteNotFoundError
	}
	return toNoteResponse(note), nil
}

func (n *DefaultNoteService) CreateNote(ctx context.Context, ownerID int64, req *contract.CreateNoteRequest) (*contract.NoteResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	req.Tags = NormalizeTags(req.Tags)
	req.Color = orDefault(req.Color, entity.DefaultNoteColor)
	if valerr := n.Validate.Struct(req); valerr != nil {
		return nil, validationError(valerr)
	}

	note := &entity.Note{
		OwnerID:  ownerID,
		Title:    orDefault(req.Title, entity.DefaultNoteTitle),
		Content:  req.Content,
		Tags:     req.Tags,
		Color:    req.Color,
		IsPinned: false,
	}

	created, err := n.NoteRepo.Insert(ctx, note)
	if err != nil {
		log.Errorf("failed to save note: %v", err)
		return nil, apierror.InternalServerError
	}
	return toNoteResponse(created), nil
}

// UpdateNote applies the allow-listed fields of req to the note. The owner is
// always the resolved caller, never something taken from the body.
func (n *DefaultNoteService) UpdateNote(ctx context.Context, ownerID int64, noteID string, req *contract.UpdateNoteRequest) (*contract.NoteResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	normalizeUpdate(req)
	if valerr := n.Validate.Struct(req); valerr != nil {
		return nil, validationError(valerr)
	}

	fields := &entity.NoteFields{
		Title:    req.Title,
		Content:  req.Content,
		Tags:     req.Tags,
		Color:    req.Color,
		IsPinned: req.IsPinned,
	}
	if fields.IsEmpty() {
		return nil, apierror.EmptyUpdateError
	}

	note, err := n.NoteRepo.Update(ctx, noteID, ownerID, fields)
	if err != nil {
		log.Errorf("failed to update note %s: %v", noteID, err)
		return nil, apierror.InternalServerError
	}

	if note == nil {
		return nil, apierror.NoteNotFoundError
	}
	return toNoteResponse(note), nil
}

func (n *DefaultNoteService) DeleteNote(ctx context.Context, ownerID int64, noteID string) apierror.ErrorResponse {
	deleted, err := n.NoteRepo.Delete(ctx, noteID, ownerID)
	if err != nil {
		log.Errorf("failed to delete note %s: %v", noteID, err)
		return apierror.InternalServerError
	}

	if !deleted {
		return apierror.NoteNotFoundError
	}
	return nil
}

// NormalizeTags trims every tag and drops the empty ones. A single entry
// holding commas is split first, so "a, ,b,,c " becomes [a b c].
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		for _, part := range strings.Split(tag, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// normalizeUpdate applies the same defaults as creation to the fields
// present in req.
func normalizeUpdate(req *contract.UpdateNoteRequest) {
	if req.Tags != nil {
		req.Tags = NormalizeTags(req.Tags)
	}
	if req.Title != nil && *req.Title == "" {
		req.Title = ptrTo(entity.DefaultNoteTitle)
	}
	if req.Color != nil && *req.Color == "" {
		req.Color = ptrTo(entity.DefaultNoteColor)
	}
}

func toNoteResponse(note *entity.Note) *contract.NoteResponse {
	tags := note.Tags
	if tags == nil {
		tags = []string{}
	}

	return &contract.NoteResponse{
		ID:        note.ID,
		Owner:     strconv.FormatInt(note.OwnerID, 10),
		Title:     note.Title,
		Content:   note.Content,
		Tags:      tags,
		Color:     note.Color,
		IsPinned:  note.IsPinned,
		CreatedAt: utils.FormatEpoch(note.CreatedAt),
		UpdatedAt: utils.FormatEpoch(note.UpdatedAt),
	}
}

func ptrTo(s string) *string {
	return &s
}

func orDefault(val, fallback string) string {
	if val == "" {
		return fallback
	}
	return val
}

func validationError(err error) apierror.ErrorResponse {
	if structured := apierror.FromValidationError(err); structured != nil {
		return structured
	}

	log.Errorf("unexpected validation failure: %v", err)
	return apierror.InternalServerError
}
