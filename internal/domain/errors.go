package domain

import "errors"

var (
	ErrNotFound            = errors.New("resource not found")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file exceeds maximum allowed size")
	ErrUploadFailed        = errors.New("file upload to storage failed")
	ErrUnknownShop         = errors.New("no price rule set for shop")
	ErrEmptyVocabulary     = errors.New("vocabulary is empty")
	ErrInvalidDateRange    = errors.New("valid_from is after valid_to")
	ErrDuplicateUser       = errors.New("preferences already exist for this user")
)
