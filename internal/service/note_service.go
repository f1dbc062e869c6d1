package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	apperrors "notely/internal/errors"
	"notely/internal/model"
	"notely/internal/repository"
	"notely/internal/storage"
)

// SortAscending selects oldest-first listing; any other sort value lists newest first.
const SortAscending = "asc"

// NoteInput carries the fields of a create or update request.
// A nil Image, Audio or IsFavorite leaves that field untouched.
type NoteInput struct {
	Title      string
	Content    string
	UserID     string
	IsFavorite *bool
	Image      *Upload
	Audio      *Upload
}

// ListQuery selects the notes returned by List.
type ListQuery struct {
	UserID       string
	FavoriteOnly bool
	Sort         string
}

// NoteService manages notes and the lifecycle of their attachments.
// actorID is the authenticated caller; every operation refuses to touch
// notes owned by someone else.
type NoteService interface {
	Create(ctx context.Context, actorID string, in NoteInput) (*model.Note, error)
	Update(ctx context.Context, actorID, noteID string, in NoteInput) (*model.Note, error)
	Delete(ctx context.Context, actorID, noteID string) error
	List(ctx context.Context, actorID string, q ListQuery) ([]model.Note, error)
	ToggleFavorite(ctx context.Context, actorID, ownerID, noteID string) (*model.Note, error)
	AttachImage(ctx context.Context, actorID, noteID string, file *Upload) (*model.Note, error)
	AttachAudio(ctx context.Context, actorID, noteID string, file *Upload) (*model.Note, error)
}

type noteService struct {
	repo  repository.NoteRepository
	store ObjectStore
	log   *zap.SugaredLogger
	now   func() time.Time
}

// NewNoteService creates a new note service.
func NewNoteService(repo repository.NoteRepository, store ObjectStore, log *zap.SugaredLogger) NoteService {
	return &noteService{
		repo:  repo,
		store: store,
		log:   log,
		now:   time.Now,
	}
}

// slotUpload is one attachment uploaded during a request.
type slotUpload struct {
	newURL string
	oldURL *string
}

// Create validates the input, uploads any attachments and persists the note.
func (s *noteService) Create(ctx context.Context, actorID string, in NoteInput) (*model.Note, error) {
	if err := validateNoteInput(in); err != nil {
		return nil, err
	}
	if err := authorize(actorID, in.UserID); err != nil {
		return nil, err
	}

	note := &model.Note{
		Title:   in.Title,
		Content: in.Content,
		UserID:  in.UserID,
	}
	if in.IsFavorite != nil {
		note.IsFavorite = *in.IsFavorite
	}

	uploads, err := s.uploadSlots(ctx, note, in.Image, in.Audio)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, note); err != nil {
		s.discard(ctx, uploads)
		return nil, fmt.Errorf("create note: %w", err)
	}
	return note, nil
}

// Update overwrites title and content, and the favorite flag and
// attachments only when supplied. New objects are uploaded and committed
// before the replaced ones are removed from the store.
func (s *noteService) Update(ctx context.Context, actorID, noteID string, in NoteInput) (*model.Note, error) {
	if err := validateNoteInput(in); err != nil {
		return nil, err
	}
	if err := authorize(actorID, in.UserID); err != nil {
		return nil, err
	}

	note, err := s.load(ctx, actorID, noteID)
	if err != nil {
		return nil, err
	}

	uploads, err := s.uploadSlots(ctx, note, in.Image, in.Audio)
	if err != nil {
		return nil, err
	}

	note.Title = in.Title
	note.Content = in.Content
	if in.IsFavorite != nil {
		note.IsFavorite = *in.IsFavorite
	}
	if err := s.repo.Update(ctx, note); err != nil {
		s.discard(ctx, uploads)
		return nil, fmt.Errorf("update note: %w", err)
	}

	s.releaseReplaced(ctx, uploads)
	return note, nil
}

// Delete removes the note's objects from the store, then the note itself.
func (s *noteService) Delete(ctx context.Context, actorID, noteID string) error {
	note, err := s.load(ctx, actorID, noteID)
	if err != nil {
		return err
	}

	if note.ImageURL != nil {
		s.store.Delete(ctx, *note.ImageURL)
	}
	if note.AudioURL != nil {
		s.store.Delete(ctx, *note.AudioURL)
	}

	if err := s.repo.Delete(ctx, noteID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrNoteNotFound
		}
		return fmt.Errorf("delete note: %w", err)
	}
	return nil
}

// List returns the owner's notes sorted by creation time.
func (s *noteService) List(ctx context.Context, actorID string, q ListQuery) ([]model.Note, error) {
	if q.UserID == "" {
		return nil, apperrors.NewValidationError("user_id", "user_id is required")
	}
	if err := authorize(actorID, q.UserID); err != nil {
		return nil, err
	}

	notes, err := s.repo.List(ctx, repository.NoteFilter{
		UserID:       q.UserID,
		FavoriteOnly: q.FavoriteOnly,
		Ascending:    q.Sort == SortAscending,
	})
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	return notes, nil
}

// ToggleFavorite flips the favorite flag and returns the updated note.
func (s *noteService) ToggleFavorite(ctx context.Context, actorID, ownerID, noteID string) (*model.Note, error) {
	if err := authorize(actorID, ownerID); err != nil {
		return nil, err
	}

	note, err := s.repo.FindByIDAndOwner(ctx, noteID, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNoteNotFound
		}
		return nil, fmt.Errorf("find note: %w", err)
	}

	note.IsFavorite = !note.IsFavorite
	if err := s.repo.Update(ctx, note); err != nil {
		return nil, fmt.Errorf("update note: %w", err)
	}
	return note, nil
}

// AttachImage replaces only the image slot of an existing note.
func (s *noteService) AttachImage(ctx context.Context, actorID, noteID string, file *Upload) (*model.Note, error) {
	if file == nil {
		return nil, apperrors.NewValidationError("noteImage", "noteImage file is required")
	}
	return s.attach(ctx, actorID, noteID, file, nil)
}

// AttachAudio replaces only the audio slot of an existing note.
func (s *noteService) AttachAudio(ctx context.Context, actorID, noteID string, file *Upload) (*model.Note, error) {
	if file == nil {
		return nil, apperrors.NewValidationError("noteAudio", "noteAudio file is required")
	}
	return s.attach(ctx, actorID, noteID, nil, file)
}

func (s *noteService) attach(ctx context.Context, actorID, noteID string, image, audio *Upload) (*model.Note, error) {
	note, err := s.load(ctx, actorID, noteID)
	if err != nil {
		return nil, err
	}

	uploads, err := s.uploadSlots(ctx, note, image, audio)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, note); err != nil {
		s.discard(ctx, uploads)
		return nil, fmt.Errorf("update note: %w", err)
	}

	s.releaseReplaced(ctx, uploads)
	return note, nil
}

// load fetches a note the actor owns.
func (s *noteService) load(ctx context.Context, actorID, noteID string) (*model.Note, error) {
	note, err := s.repo.FindByID(ctx, noteID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNoteNotFound
		}
		return nil, fmt.Errorf("find note: %w", err)
	}
	if err := authorize(actorID, note.UserID); err != nil {
		return nil, err
	}
	return note, nil
}

// uploadSlots puts the supplied files and points the note's slots at them.
// If any upload fails, objects already uploaded in this call are discarded
// and the note is left unchanged.
func (s *noteService) uploadSlots(ctx context.Context, note *model.Note, image, audio *Upload) ([]slotUpload, error) {
	var uploads []slotUpload
	now := s.now()

	if image != nil {
		ct := image.MediaType()
		url, err := s.store.Put(ctx, storage.PrefixImages, imageFileName(now, ct), image.Data, ct)
		if err != nil {
			return nil, fmt.Errorf("upload image: %w", err)
		}
		uploads = append(uploads, slotUpload{newURL: url, oldURL: note.ImageURL})
	}

	if audio != nil {
		url, err := s.store.Put(ctx, storage.PrefixAudio, audioFileName(now), audio.Data, audio.MediaType())
		if err != nil {
			s.discard(ctx, uploads)
			return nil, fmt.Errorf("upload audio: %w", err)
		}
		uploads = append(uploads, slotUpload{newURL: url, oldURL: note.AudioURL})
	}

	// Assign only once every upload succeeded.
	i := 0
	if image != nil {
		note.ImageURL = &uploads[i].newURL
		i++
	}
	if audio != nil {
		note.AudioURL = &uploads[i].newURL
	}
	return uploads, nil
}

// releaseReplaced removes the objects superseded by uploads.
func (s *noteService) releaseReplaced(ctx context.Context, uploads []slotUpload) {
	for _, u := range uploads {
		if u.oldURL != nil && *u.oldURL != "" && *u.oldURL != u.newURL {
			s.store.Delete(ctx, *u.oldURL)
		}
	}
}

// discard removes objects uploaded for a request that then failed.
func (s *noteService) discard(ctx context.Context, uploads []slotUpload) {
	for _, u := range uploads {
		s.log.Warnw("discarding uploaded attachment", "url", u.newURL)
		s.store.Delete(ctx, u.newURL)
	}
}

func validateNoteInput(in NoteInput) error {
	switch {
	case in.Title == "":
		return apperrors.NewValidationError("title", "Title, content, and user_id are required")
	case in.Content == "":
		return apperrors.NewValidationError("content", "Title, content, and user_id are required")
	case in.UserID == "":
		return apperrors.NewValidationError("user_id", "Title, content, and user_id are required")
	}
	return nil
}

// authorize rejects actors acting on another user's data.
func authorize(actorID, ownerID string) error {
	if actorID == "" || actorID != ownerID {
		return apperrors.ErrForbidden
	}
	return nil
}
