package domain

import (
	"errors"
	"time"
)

var ErrCaseNotFound = errors.New("case not found")

// Case is a support case created by an admin and optionally assigned to a user.
type Case struct {
	ID             string    `json:"id" bson:"_id,omitempty"`
	Title          string    `json:"title" bson:"title"`
	Description    string    `json:"description,omitempty" bson:"description,omitempty"`
	AssignedUserID string    `json:"assigned_user_id,omitempty" bson:"assigned_user_id,omitempty"`
	IsDeleted      bool      `json:"-" bson:"is_deleted"`
	CreatedAt      time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" bson:"updated_at"`
}
