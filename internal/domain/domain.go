package domain

import "strings"

// Article is a fetched page reduced to its readable parts.
type Article struct {
	URL   string
	Title string
	Text  string
}

// Document is the whitespace-split word sequence of an article's text.
// It is built once and never mutated afterwards.
type Document struct {
	words []string
}

func NewDocument(text string) Document {
	return Document{words: strings.Fields(text)}
}

func (d Document) Words() []string {
	return d.words
}

func (d Document) Len() int {
	return len(d.words)
}

// Text joins the word sequence back into a single string.
func (d Document) Text() string {
	return strings.Join(d.words, " ")
}
