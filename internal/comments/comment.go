package comments

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/2beens/flexly/internal/users"
)

const MaxTextLength = 1000

var (
	ErrCommentNotFound = errors.New("comment not found")
	ErrNotAuthor       = errors.New("not the author of the comment")
	ErrEmptyText       = errors.New("comment text is required")
	ErrTextTooLong     = errors.New("comment text too long")
)

type Comment struct {
	ID         string        `json:"id"`
	AnalysisID string        `json:"analysisId"`
	UserID     string        `json:"userId"`
	Text       string        `json:"text"`
	CreatedAt  time.Time     `json:"createdAt"`
	Author     users.Summary `json:"author"`
}

// NormalizeText trims the text and checks its length in characters.
func NormalizeText(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrEmptyText
	}
	if utf8.RuneCountInString(text) > MaxTextLength {
		return "", ErrTextTooLong
	}
	return text, nil
}
