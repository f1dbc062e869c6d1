package repository

import (
	"context"

	"gorm.io/gorm"

	"notely/internal/model"
)

// NoteFilter narrows a note listing to one owner.
type NoteFilter struct {
	UserID       string
	FavoriteOnly bool
	Ascending    bool
}

// NoteRepository defines note persistence operations.
type NoteRepository interface {
	Create(ctx context.Context, note *model.Note) error
	FindByID(ctx context.Context, id string) (*model.Note, error)
	FindByIDAndOwner(ctx context.Context, id, userID string) (*model.Note, error)
	Update(ctx context.Context, note *model.Note) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter NoteFilter) ([]model.Note, error)
}

type noteRepository struct {
	db *gorm.DB
}

// NewNoteRepository creates a new note repository.
func NewNoteRepository(db *gorm.DB) NoteRepository {
	return &noteRepository{db: db}
}

// Create creates a new note.
func (r *noteRepository) Create(ctx context.Context, note *model.Note) error {
	return r.db.WithContext(ctx).Create(note).Error
}

// FindByID finds a note by ID.
func (r *noteRepository) FindByID(ctx context.Context, id string) (*model.Note, error) {
	var note model.Note
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&note).Error; err != nil {
		return nil, err
	}
	return &note, nil
}

// FindByIDAndOwner finds a note by ID that belongs to userID.
func (r *noteRepository) FindByIDAndOwner(ctx context.Context, id, userID string) (*model.Note, error) {
	var note model.Note
	if err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&note).Error; err != nil {
		return nil, err
	}
	return &note, nil
}

// Update writes the mutable fields of a note. CreatedAt and owner are never rewritten.
func (r *noteRepository) Update(ctx context.Context, note *model.Note) error {
	return r.db.WithContext(ctx).Model(note).
		Select("title", "content", "image_url", "audio_url", "is_favorite").
		Updates(note).Error
}

// Delete removes a note, returning gorm.ErrRecordNotFound when it does not exist.
func (r *noteRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Note{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// List returns a user's notes ordered by creation time.
func (r *noteRepository) List(ctx context.Context, filter NoteFilter) ([]model.Note, error) {
	order := "created_at DESC"
	if filter.Ascending {
		order = "created_at ASC"
	}

	q := r.db.WithContext(ctx).Where("user_id = ?", filter.UserID)
	if filter.FavoriteOnly {
		q = q.Where("is_favorite = ?", true)
	}

	notes := make([]model.Note, 0)
	if err := q.Order(order).Find(&notes).Error; err != nil {
		return nil, err
	}
	return notes, nil
}
