// Package models defines the core domain models for the contact book.
//
// Three models mirror the three database tables:
//   - User: a registered account
//   - Group: a named contact group owned by one user
//   - Contact: a phone-book entry owned by one user
//
// Ownership is strict: every Group and Contact belongs to exactly one User,
// and all queries are scoped by the owning user id. Relationships use plain
// id fields instead of pointers to avoid circular references.
package models
