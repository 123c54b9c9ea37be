package domain

import "time"

// Article is a candidate or stored library record. Empty strings and the zero
// time stand for absent values.
type Article struct {
	Title        string
	Body         string
	Author       string
	CreationDate time.Time
}

// NewArticle builds an article from its four fields.
func NewArticle(title, body, author string, created time.Time) Article {
	return Article{
		Title:        title,
		Body:         body,
		Author:       author,
		CreationDate: created,
	}
}

// Valid reports whether title, body and author are all present.
func (a Article) Valid() bool {
	return a.Title != "" && a.Body != "" && a.Author != ""
}

// HasDate reports whether the creation date is set.
func (a Article) HasDate() bool {
	return !a.CreationDate.IsZero()
}

// Year returns the calendar year of the creation date.
func (a Article) Year() int {
	return a.CreationDate.Year()
}

// WithCreationDate returns a copy carrying the given date.
func (a Article) WithCreationDate(day time.Time) Article {
	a.CreationDate = day
	return a
}

// Equal compares all fields; dates are compared as instants.
func (a Article) Equal(other Article) bool {
	return a.Title == other.Title &&
		a.Body == other.Body &&
		a.Author == other.Author &&
		a.CreationDate.Equal(other.CreationDate)
}

// Date truncates t to midnight of its calendar day in loc.
func Date(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}
