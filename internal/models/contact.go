package models

// Contact is a phone-book entry owned by exactly one user.
// (Phone, UserID) is unique: a user cannot store the same number twice.
type Contact struct {
	ID int64

	// Name is the display name, non-empty.
	Name string

	// Phone is exactly 11 decimal digits.
	Phone string

	// GroupID references one of the owner's groups; 0 means ungrouped.
	GroupID int64

	UserID int64

	// CreatedAt is the Unix timestamp when the contact was created.
	CreatedAt int64
}
