package repository

import (
	"errors"
	"fmt"

	"github.com/readmate/readmate/internal/model"
	"github.com/readmate/readmate/internal/store"
)

// booksKey holds the library, newest first.
const booksKey = "readmate_books"

var (
	ErrBookNotFound = errors.New("book not found")
)

type BookRepository interface {
	Create(book *model.Book) error
	ByID(bookID string) (*model.Book, error)
	Books() ([]*model.Book, error)
	Update(book *model.Book) error
}

type bookRepository struct {
	store store.Store
}

func NewBookRepository(s store.Store) BookRepository {
	return &bookRepository{store: s}
}

func (r *bookRepository) load() ([]*model.Book, error) {
	var books []*model.Book
	_, err := r.store.Get(booksKey, &books)
	if err != nil {
		return nil, fmt.Errorf("failed to load books: %w", err)
	}
	return books, nil
}

func (r *bookRepository) Create(book *model.Book) error {
	books, err := r.load()
	if err != nil {
		return err
	}

	books = append([]*model.Book{book}, books...)
	return r.store.Set(booksKey, books)
}

func (r *bookRepository) ByID(bookID string) (*model.Book, error) {
	books, err := r.load()
	if err != nil {
		return nil, err
	}

	for _, b := range books {
		if b.ID == bookID {
			return b, nil
		}
	}

	return nil, ErrBookNotFound
}

func (r *bookRepository) Books() ([]*model.Book, error) {
	books, err := r.load()
	if err != nil {
		return nil, err
	}
	if books == nil {
		books = []*model.Book{}
	}
	return books, nil
}

// Update replaces the stored book with the same ID.
func (r *bookRepository) Update(book *model.Book) error {
	books, err := r.load()
	if err != nil {
		return err
	}

	for i, b := range books {
		if b.ID == book.ID {
			books[i] = book
			return r.store.Set(booksKey, books)
		}
	}

	return ErrBookNotFound
}
