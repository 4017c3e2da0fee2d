package models

// DefaultGroupName is the group auto-created for every new user.
const DefaultGroupName = "Ungrouped"

// Group is a named contact group owned by exactly one user.
// (GroupName, UserID) is unique: a user cannot have two groups with the same name.
type Group struct {
	ID        int64
	GroupName string
	UserID    int64
}
