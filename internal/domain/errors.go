package domain

import "errors"

// Domain errors.
var (
	ErrEmptyText             = errors.New("text is empty")
	ErrUnsupportedLanguage   = errors.New("language is not supported")
	ErrTooManyTargets        = errors.New("too many target languages")
	ErrNoIdentification      = errors.New("language could not be identified")
	ErrAllTranslationsFailed = errors.New("all translations failed")
)

// SourceAuto asks the translation provider to detect the source language itself.
const SourceAuto = "auto"
