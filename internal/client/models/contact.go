// Package models holds the records exchanged with the contacts service.
package models

// ContactRecord is one entry of the contact list. Identity key is ID.
type ContactRecord struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

// ContactInput carries the user-editable fields for create and update.
type ContactInput struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}
