package model

import (
	"time"
)

const (
	BookStatusReading   = "reading"
	BookStatusCompleted = "completed"
	BookStatusDropped   = "dropped"
)

type Book struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Author      string    `json:"author"`
	TotalPages  int       `json:"totalPages"`
	CoverURL    string    `json:"coverUrl"`
	StartDate   string    `json:"startDate,omitempty"`
	CurrentPage int       `json:"currentPage"`
	Status      string    `json:"status"`
	Notes       []Note    `json:"notes"`
	CreatedAt   time.Time `json:"createdAt"`
}

type Note struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Percent returns reading progress rounded to a whole percent.
func (b *Book) Percent() int {
	if b.TotalPages <= 0 {
		return 0
	}
	return int(float64(b.CurrentPage)/float64(b.TotalPages)*100 + 0.5)
}

func ValidBookStatus(s string) bool {
	switch s {
	case BookStatusReading, BookStatusCompleted, BookStatusDropped:
		return true
	}
	return false
}
