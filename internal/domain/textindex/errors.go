package textindex

import "errors"

// Sentinel kinds for index construction errors.
var (
	ErrNoDocuments     = errors.New("no documents to fit")
	ErrEmptyVocabulary = errors.New("empty vocabulary; documents contain only stop words")
)
