package handlers

import (
	"strings"
	"unicode/utf8"

	"broadcasthub/internal/models"
)

// Validation limits for group and message fields.
const (
	maxNameLen     = 200
	maxDescLen     = 1_000
	maxTemplateLen = 10_000
	maxContentLen  = 10_000
	maxCaptionLen  = 1_000
)

// validateGroup checks broadcast group inputs and returns the first
// problem found.
func validateGroup(name, template string) error {
	if strings.TrimSpace(name) == "" {
		return &models.ValidationError{Field: "name", Reason: "name is required"}
	}
	if utf8.RuneCountInString(name) > maxNameLen {
		return &models.ValidationError{Field: "name", Reason: "name is too long (max 200 characters)"}
	}
	if strings.TrimSpace(template) == "" {
		return &models.ValidationError{Field: "template", Reason: "message template is required"}
	}
	if utf8.RuneCountInString(template) > maxTemplateLen {
		return &models.ValidationError{Field: "template", Reason: "message template is too long (max 10,000 characters)"}
	}
	return nil
}

// validateMessageLengths bounds the free-text message fields. Semantic
// checks (required content for text, known media type) live in the
// dispatcher.
func validateMessageLengths(content, caption string) error {
	if utf8.RuneCountInString(content) > maxContentLen {
		return &models.ValidationError{Field: "content", Reason: "content is too long (max 10,000 characters)"}
	}
	if utf8.RuneCountInString(caption) > maxCaptionLen {
		return &models.ValidationError{Field: "media_caption", Reason: "caption is too long (max 1,000 characters)"}
	}
	return nil
}
