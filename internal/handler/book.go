package handler

import (
	"html/template"
	"log/slog"
	"net/http"

	"github.com/readmate/readmate/internal/events"
	"github.com/readmate/readmate/internal/markdown"
	"github.com/readmate/readmate/internal/model"
	"github.com/readmate/readmate/internal/service"
	"github.com/readmate/readmate/internal/ui"
	"github.com/readmate/readmate/internal/ui/pages"
	"github.com/readmate/readmate/internal/validation"
)

type BookHandler struct {
	bookService *service.BookService
	parser      *markdown.Parser
	broker      *events.Broker
}

func NewBookHandler(bookService *service.BookService, parser *markdown.Parser, broker *events.Broker) *BookHandler {
	return &BookHandler{
		bookService: bookService,
		parser:      parser,
		broker:      broker,
	}
}

func (h *BookHandler) BooksPage(w http.ResponseWriter, r *http.Request) {
	books, err := h.bookService.Books()
	if err != nil {
		slog.Error("failed to get books", "error", err)
		http.Error(w, "Failed to load books", http.StatusInternalServerError)
		return
	}

	ui.Render(w, r, pages.Books(pages.BooksData{
		Base:  pages.NewBase(r.Context(), "My Books"),
		Books: books,
	}))
}

func (h *BookHandler) NewBookPage(w http.ResponseWriter, r *http.Request) {
	ui.Render(w, r, pages.BookNew(pages.BookFormData{
		Base: pages.NewBase(r.Context(), "Add a book"),
	}))
}

func (h *BookHandler) Create(w http.ResponseWriter, r *http.Request) {
	form := pages.BookForm{
		Title:      r.FormValue("title"),
		Author:     r.FormValue("author"),
		TotalPages: r.FormValue("total_pages"),
		CoverURL:   r.FormValue("cover_url"),
		StartDate:  r.FormValue("start_date"),
	}

	book, err := h.bookService.Create(service.CreateBookParams{
		Title:      form.Title,
		Author:     form.Author,
		TotalPages: validation.CoerceInt(form.TotalPages),
		CoverURL:   form.CoverURL,
		StartDate:  form.StartDate,
	})
	if statusFor(err) == http.StatusBadRequest {
		ui.RenderStatus(w, r, http.StatusBadRequest, pages.BookNew(pages.BookFormData{
			Base:  pages.NewBase(r.Context(), "Add a book"),
			Form:  form,
			Error: err.Error(),
		}))
		return
	}
	if err != nil {
		writeError(w, err, "Failed to add book")
		return
	}

	h.broker.Publish(events.Event{Type: events.TypeBookUpdated, BookID: book.ID})
	http.Redirect(w, r, "/books/"+book.ID, http.StatusSeeOther)
}

func (h *BookHandler) BookPage(w http.ResponseWriter, r *http.Request) {
	bookID := r.PathValue("id")

	book, err := h.bookService.ByID(bookID)
	if statusFor(err) == http.StatusNotFound {
		ui.RenderStatus(w, r, http.StatusNotFound, pages.NotFound(pages.NewBase(r.Context(), "Not found")))
		return
	}
	if err != nil {
		writeError(w, err, "Failed to load book", "book_id", bookID)
		return
	}

	h.renderBook(w, r, http.StatusOK, book, "")
}

func (h *BookHandler) UpdateProgress(w http.ResponseWriter, r *http.Request) {
	bookID := r.PathValue("id")
	page := validation.CoerceInt(r.FormValue("page"))

	book, err := h.bookService.UpdateProgress(bookID, page)
	if err != nil {
		writeError(w, err, "Failed to update progress", "book_id", bookID)
		return
	}

	h.broker.Publish(events.Event{Type: events.TypeBookProgress, BookID: book.ID})
	http.Redirect(w, r, "/books/"+book.ID, http.StatusSeeOther)
}

func (h *BookHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	bookID := r.PathValue("id")

	book, err := h.bookService.UpdateStatus(bookID, r.FormValue("status"))
	if err != nil {
		writeError(w, err, "Failed to update status", "book_id", bookID)
		return
	}

	h.broker.Publish(events.Event{Type: events.TypeBookUpdated, BookID: book.ID})
	http.Redirect(w, r, "/books/"+book.ID, http.StatusSeeOther)
}

func (h *BookHandler) AddNote(w http.ResponseWriter, r *http.Request) {
	bookID := r.PathValue("id")
	h.noteAction(w, r, bookID, func() (*model.Book, error) {
		return h.bookService.AddNote(bookID, r.FormValue("content"))
	})
}

func (h *BookHandler) EditNote(w http.ResponseWriter, r *http.Request) {
	bookID := r.PathValue("id")
	h.noteAction(w, r, bookID, func() (*model.Book, error) {
		return h.bookService.EditNote(bookID, r.PathValue("noteID"), r.FormValue("content"))
	})
}

func (h *BookHandler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	bookID := r.PathValue("id")
	h.noteAction(w, r, bookID, func() (*model.Book, error) {
		return h.bookService.DeleteNote(bookID, r.PathValue("noteID"))
	})
}

// noteAction runs a note mutation. Invalid content re-renders the book page
// with the message instead of redirecting.
func (h *BookHandler) noteAction(w http.ResponseWriter, r *http.Request, bookID string, fn func() (*model.Book, error)) {
	book, err := fn()
	if statusFor(err) == http.StatusBadRequest {
		current, loadErr := h.bookService.ByID(bookID)
		if loadErr != nil {
			writeError(w, loadErr, "Failed to load book", "book_id", bookID)
			return
		}
		h.renderBook(w, r, http.StatusBadRequest, current, err.Error())
		return
	}
	if err != nil {
		writeError(w, err, "Failed to save note", "book_id", bookID)
		return
	}

	h.broker.Publish(events.Event{Type: events.TypeBookUpdated, BookID: book.ID})
	http.Redirect(w, r, "/books/"+book.ID, http.StatusSeeOther)
}

func (h *BookHandler) renderBook(w http.ResponseWriter, r *http.Request, status int, book *model.Book, errMsg string) {
	notes := make([]pages.NoteView, 0, len(book.Notes))
	for _, n := range book.Notes {
		rendered, err := h.parser.Note(n.Content)
		if err != nil {
			slog.Warn("failed to render note", "error", err, "book_id", book.ID, "note_id", n.ID)
			rendered = markdown.Rendered{HTML: template.HTML(template.HTMLEscapeString(n.Content))}
		}
		notes = append(notes, pages.NoteView{Note: n, Rendered: rendered})
	}

	base := pages.NewBase(r.Context(), book.Title)
	base.Live = true

	ui.RenderStatus(w, r, status, pages.Book(pages.BookData{
		Base:  base,
		Book:  book,
		Notes: notes,
		Error: errMsg,
	}))
}
