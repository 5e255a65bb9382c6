package validators

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/MKhiriev/miniforum/models"
)

// Field names accepted by [PostValidator].
const (
	FieldPostID = "post_id"
	FieldText   = "text"
)

// MaxPostLength is the longest post text, counted in characters after
// trimming.
const MaxPostLength = 255

// PostValidator checks forum post requests.
type PostValidator struct{}

// NewPostValidator returns a [Validator] for post requests.
func NewPostValidator() Validator {
	return &PostValidator{}
}

// Validate dispatches on the dynamic type of obj. Value and pointer forms of
// models.MakePostRequest, models.EditPostRequest and models.DeletePostRequest
// are accepted.
func (v *PostValidator) Validate(_ context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.MakePostRequest:
		return v.validate(0, value.Text, withDefault(fields, FieldText)...)
	case *models.MakePostRequest:
		return v.validate(0, value.Text, withDefault(fields, FieldText)...)

	case models.EditPostRequest:
		return v.validate(value.PostID, value.Text, withDefault(fields, FieldPostID, FieldText)...)
	case *models.EditPostRequest:
		return v.validate(value.PostID, value.Text, withDefault(fields, FieldPostID, FieldText)...)

	case models.DeletePostRequest:
		return v.validate(value.PostID, "", withDefault(fields, FieldPostID)...)
	case *models.DeletePostRequest:
		return v.validate(value.PostID, "", withDefault(fields, FieldPostID)...)

	default:
		return ErrUnsupportedType
	}
}

func (v *PostValidator) validate(postID int64, text string, fields ...string) error {
	for _, f := range fields {
		switch f {
		case FieldPostID:
			if postID <= 0 {
				return ErrInvalidPostID
			}
		case FieldText:
			if !IsValidPostText(text) {
				return ErrInvalidPostText
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// IsValidPostText reports whether text, once trimmed, is 1..255 characters.
func IsValidPostText(text string) bool {
	trimmed := strings.TrimSpace(text)
	n := utf8.RuneCountInString(trimmed)
	return n > 0 && n <= MaxPostLength
}

func withDefault(fields []string, defaults ...string) []string {
	if len(fields) == 0 {
		return defaults
	}
	return fields
}
