package models

import (
	"time"
)

// User is the profile stored at users/{uid}; every ledger collection hangs off it.
type User struct {
	UID            string    `firestore:"uid" json:"uid"`
	Email          string    `firestore:"email" json:"email,omitempty"`
	FirstName      string    `firestore:"firstName" json:"firstName"`
	LastName       string    `firestore:"lastName" json:"lastName"`
	SignInProvider string    `firestore:"signInProvider" json:"signInProvider"` // "anonymous", "google.com", ...
	CreatedAt      time.Time `firestore:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time `firestore:"updatedAt" json:"updatedAt"`
}
