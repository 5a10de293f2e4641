package service

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/readmate/readmate/internal/metrics"
	"github.com/readmate/readmate/internal/model"
	"github.com/readmate/readmate/internal/repository"
	"github.com/readmate/readmate/internal/validation"
)

var (
	ErrInvalidBookStatus = errors.New("invalid book status")
	ErrNoteNotFound      = errors.New("note not found")
)

// PageDeltaRecorder receives every change of a book's current page.
type PageDeltaRecorder interface {
	RecordPageDelta(oldPage, newPage int) error
}

type BookService struct {
	mu      sync.Mutex
	repo    repository.BookRepository
	goals   PageDeltaRecorder
	metrics metrics.Recorder
	now     func() time.Time
}

func NewBookService(
	repo repository.BookRepository,
	goals PageDeltaRecorder,
	recorder metrics.Recorder,
	now func() time.Time,
) *BookService {
	if now == nil {
		now = time.Now
	}
	return &BookService{
		repo:    repo,
		goals:   goals,
		metrics: recorder,
		now:     now,
	}
}

type CreateBookParams struct {
	Title      string
	Author     string
	TotalPages int
	CoverURL   string
	StartDate  string
}

func (s *BookService) Create(params CreateBookParams) (*model.Book, error) {
	params.Title = strings.TrimSpace(params.Title)
	params.Author = strings.TrimSpace(params.Author)
	params.CoverURL = strings.TrimSpace(params.CoverURL)

	for _, err := range []error{
		validation.ValidateTitle(params.Title),
		validation.ValidateAuthor(params.Author),
		validation.ValidateTotalPages(params.TotalPages),
		validation.ValidateCoverURL(params.CoverURL),
		validation.ValidateStartDate(params.StartDate),
	} {
		if err != nil {
			return nil, err
		}
	}

	book := &model.Book{
		ID:          uuid.New().String(),
		Title:       params.Title,
		Author:      params.Author,
		TotalPages:  params.TotalPages,
		CoverURL:    params.CoverURL,
		StartDate:   params.StartDate,
		CurrentPage: 0,
		Status:      model.BookStatusReading,
		Notes:       []model.Note{},
		CreatedAt:   s.now(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.repo.Create(book)
	if err != nil {
		return nil, fmt.Errorf("failed to create book: %w", err)
	}

	slog.Info("book added", "book_id", book.ID, "total_pages", book.TotalPages)
	return book, nil
}

func (s *BookService) ByID(bookID string) (*model.Book, error) {
	return s.repo.ByID(bookID)
}

func (s *BookService) Books() ([]*model.Book, error) {
	return s.repo.Books()
}

// UpdateProgress moves the book to page, clamped to [0, TotalPages].
// The page change reaches the goals before the book itself is saved; if
// that fails the book is left unchanged.
func (s *BookService) UpdateProgress(bookID string, page int) (*model.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	book, err := s.repo.ByID(bookID)
	if err != nil {
		return nil, err
	}

	previous := book.CurrentPage
	page = validation.Clamp(page, 0, book.TotalPages)
	if page == previous {
		return book, nil
	}

	err = s.goals.RecordPageDelta(previous, page)
	if err != nil {
		return nil, fmt.Errorf("failed to record reading progress: %w", err)
	}

	book.CurrentPage = page
	err = s.repo.Update(book)
	if err != nil {
		return nil, err
	}

	s.metrics.RecordBookProgress(bookID)
	slog.Debug("book progress updated", "book_id", bookID, "from", previous, "to", page)

	return book, nil
}

func (s *BookService) UpdateStatus(bookID, status string) (*model.Book, error) {
	if !model.ValidBookStatus(status) {
		return nil, ErrInvalidBookStatus
	}

	return s.mutate(bookID, func(book *model.Book) error {
		book.Status = status
		return nil
	})
}

func (s *BookService) AddNote(bookID, content string) (*model.Book, error) {
	content = strings.TrimSpace(content)

	err := validation.ValidateNote(content)
	if err != nil {
		return nil, err
	}

	return s.mutate(bookID, func(book *model.Book) error {
		now := s.now()
		book.Notes = append(book.Notes, model.Note{
			ID:        uuid.New().String(),
			Content:   content,
			CreatedAt: now,
			UpdatedAt: now,
		})
		return nil
	})
}

func (s *BookService) EditNote(bookID, noteID, content string) (*model.Book, error) {
	content = strings.TrimSpace(content)

	err := validation.ValidateNote(content)
	if err != nil {
		return nil, err
	}

	return s.mutate(bookID, func(book *model.Book) error {
		for i := range book.Notes {
			if book.Notes[i].ID == noteID {
				book.Notes[i].Content = content
				book.Notes[i].UpdatedAt = s.now()
				return nil
			}
		}
		return ErrNoteNotFound
	})
}

func (s *BookService) DeleteNote(bookID, noteID string) (*model.Book, error) {
	return s.mutate(bookID, func(book *model.Book) error {
		for i := range book.Notes {
			if book.Notes[i].ID == noteID {
				book.Notes = append(book.Notes[:i], book.Notes[i+1:]...)
				return nil
			}
		}
		return ErrNoteNotFound
	})
}

// mutate loads a book, applies fn and saves it. Nothing is written when fn fails.
func (s *BookService) mutate(bookID string, fn func(book *model.Book) error) (*model.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	book, err := s.repo.ByID(bookID)
	if err != nil {
		return nil, err
	}

	err = fn(book)
	if err != nil {
		return nil, err
	}

	err = s.repo.Update(book)
	if err != nil {
		return nil, err
	}

	return book, nil
}
