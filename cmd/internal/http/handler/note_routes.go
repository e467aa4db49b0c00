package handler

import (
	"context"
	"net/http"
	"stickynotes/cmd/internal/contract"
	"stickynotes/cmd/internal/service/view"
	"stickynotes/cmd/internal/utils"
	"stickynotes/cmd/internal/utils/apierror"
	"strings"

	"github.com/labstack/echo/v4"
)

// NoteService takes the owner explicitly on every call, so nothing in it
// depends on the request that resolved it.
type NoteService interface {
	GetNotes(ctx context.Context, ownerID int64) ([]*contract.NoteResponse, apierror.ErrorResponse)
	GetNote(ctx context.Context, ownerID int64, noteID string) (*contract.NoteResponse, apierror.ErrorResponse)
	CreateNote(ctx context.Context, ownerID int64, req *contract.CreateNoteRequest) (*contract.NoteResponse, apierror.ErrorResponse)
	UpdateNote(ctx context.Context, ownerID int64, noteID string, req *contract.UpdateNoteRequest) (*contract.NoteResponse, apierror.ErrorResponse)
	DeleteNote(ctx context.Context, ownerID int64, noteID string) apierror.ErrorResponse
}

type DefaultNoteRoute struct {
	NoteService NoteService
}

func NewNoteDefault(noteService NoteService) *DefaultNoteRoute {
	return &DefaultNoteRoute{NoteService: noteService}
}

// GetNotes lists the caller's notes. Optional query parameters shape the
// list for the board: sort=pinned, tag=<tag> and q=<text>.
func (n *DefaultNoteRoute) GetNotes(c echo.Context) error {
	identity, cerr := utils.GetIdentityFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	notes, apierr := n.NoteService.GetNotes(c.Request().Context(), identity.OwnerID)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	notes = view.FilterByTag(notes, strings.TrimSpace(c.QueryParam("tag")))
	notes = view.Search(notes, c.QueryParam("q"))
	if c.QueryParam("sort") == "pinned" {
		notes = view.SortPinnedFirst(notes)
	}
	return c.JSON(http.StatusOK, notes)
}

func (n *DefaultNoteRoute) GetTags(c echo.Context) error {
	identity, cerr := utils.GetIdentityFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	notes, apierr := n.NoteService.GetNotes(c.Request().Context(), identity.OwnerID)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{"tags": view.TagSet(notes)}
	return c.JSON(http.StatusOK, &resp)
}

func (n *DefaultNoteRoute) GetNote(c echo.Context) error {
	identity, cerr := utils.GetIdentityFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	id, perr := noteIDParam(c)
	if perr != nil {
		return c.JSON(perr.Code(), perr)
	}

	note, apierr := n.NoteService.GetNote(c.Request().Context(), identity.OwnerID, id)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, note)
}

func (n *DefaultNoteRoute) CreateNote(c echo.Context) error {
	identity, cerr := utils.GetIdentityFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	var req contract.CreateNoteRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	note, apierr := n.NoteService.CreateNote(c.Request().Context(), identity.OwnerID, &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusCreated, note)
}

func (n *DefaultNoteRoute) UpdateNote(c echo.Context) error {
	identity, cerr := utils.GetIdentityFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	id, perr := noteIDParam(c)
	if perr != nil {
		return c.JSON(perr.Code(), perr)
	}

	var req contract.UpdateNoteRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	note, apierr := n.NoteService.UpdateNote(c.Request().Context(), identity.OwnerID, id, &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, note)
}

func (n *DefaultNoteRoute) DeleteNote(c echo.Context) error {
	identity, cerr := utils.GetIdentityFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	id, perr := noteIDParam(c)
	if perr != nil {
		return c.JSON(perr.Code(), perr)
	}

	apierr := n.NoteService.DeleteNote(c.Request().Context(), identity.OwnerID, id)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, &contract.DeleteNoteResponse{Message: "Note deleted"})
}

func noteIDParam(c echo.Context) (string, apierror.ErrorResponse) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		return "", apierror.NewInvalidParamTypeError("id", "string")
	}
	return id, nil
}
