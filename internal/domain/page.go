package domain

import (
	"errors"
	"math"
	"strconv"
)

// QuestionsPerPage is the fixed page size for question listings
const QuestionsPerPage = 10

// MaxPage is the last page whose offset fits in an int
const MaxPage = math.MaxInt/QuestionsPerPage + 1

// Page is a 1-based page of a question listing
type Page struct {
	Number int
}

// FirstPage is the page returned when none is requested
var FirstPage = Page{Number: 1}

// ParsePage reads the page query parameter. Missing or malformed values
// select the first page; numbers too large for an int select a page past
// any listing.
func ParsePage(raw string) Page {
	n, err := strconv.Atoi(raw)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return Page{Number: n}
		}
		return FirstPage
	}
	return Page{Number: n}
}

// Valid reports whether the page can hold any rows
func (p Page) Valid() bool {
	return p.Number >= 1 && p.Number <= MaxPage
}

// Limit returns the maximum number of rows on a page
func (p Page) Limit() int {
	return QuestionsPerPage
}

// Offset returns the number of rows preceding the page
func (p Page) Offset() int {
	if !p.Valid() {
		return 0
	}
	return (p.Number - 1) * QuestionsPerPage
}
