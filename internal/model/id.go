package model

import "github.com/google/uuid"

// TokenID identifies a placed token. IDs are never reused.
type TokenID string

// TemplateID identifies a token template in the catalog.
type TemplateID string

// AnimationID is the opaque handle returned when an animation is scheduled.
type AnimationID string

// NewTokenID generates a fresh token identifier.
func NewTokenID() TokenID {
	return TokenID(uuid.NewString())
}

// NewTemplateID generates a fresh template identifier.
func NewTemplateID() TemplateID {
	return TemplateID(uuid.NewString())
}

// NewAnimationID generates a fresh animation handle.
func NewAnimationID() AnimationID {
	return AnimationID(uuid.NewString())
}
