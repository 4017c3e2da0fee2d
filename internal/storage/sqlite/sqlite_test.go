package sqlite

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mmzou/contactbook/internal/errs"
	"github.com/mmzou/contactbook/internal/models"
	"github.com/mmzou/contactbook/internal/storage"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "contactbook-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return store
}

func mustCreateUser(t *testing.T, store *SQLiteStore, username string) *models.User {
	t.Helper()

	user := &models.User{
		Username:     username,
		PasswordHash: "x",
		CreatedAt:    time.Now().Unix(),
	}
	if err := store.CreateUser(context.Background(), user, models.DefaultGroupName); err != nil {
		t.Fatalf("CreateUser(%s) failed: %v", username, err)
	}
	return user
}

func TestUsers(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("CreateUser assigns ID and creates default group", func(t *testing.T) {
		user := mustCreateUser(t, store, "alice")
		if user.ID == 0 {
			t.Error("Expected user ID to be assigned")
		}

		groups, err := store.ListGroups(ctx, user.ID)
		if err != nil {
			t.Fatalf("ListGroups failed: %v", err)
		}
		if len(groups) != 1 {
			t.Fatalf("Expected 1 group, got %d", len(groups))
		}
		if groups[0].GroupName != models.DefaultGroupName {
			t.Errorf("Default group name: got %q, want %q", groups[0].GroupName, models.DefaultGroupName)
		}
	})

	t.Run("duplicate username is a conflict", func(t *testing.T) {
		mustCreateUser(t, store, "bob")

		dup := &models.User{Username: "bob", PasswordHash: "y", CreatedAt: time.Now().Unix()}
		err := store.CreateUser(ctx, dup, models.DefaultGroupName)
		if !errors.Is(err, errs.ErrAlreadyExists) {
			t.Fatalf("Expected ErrAlreadyExists, got %v", err)
		}

		var count int
		if err := store.db.QueryRow("SELECT COUNT(1) FROM users WHERE username = ?", "bob").Scan(&count); err != nil {
			t.Fatalf("count query failed: %v", err)
		}
		if count != 1 {
			t.Errorf("Expected exactly 1 user row for bob, got %d", count)
		}
	})

	t.Run("failed default group insert rolls back the user row", func(t *testing.T) {
		user := &models.User{Username: "carol", PasswordHash: "z", CreatedAt: time.Now().Unix()}
		// Empty group name violates the CHECK constraint on the second insert.
		if err := store.CreateUser(ctx, user, ""); err == nil {
			t.Fatal("Expected CreateUser to fail with empty default group")
		}

		got, err := store.GetUserByUsername(ctx, "carol")
		if err != nil {
			t.Fatalf("GetUserByUsername failed: %v", err)
		}
		if got != nil {
			t.Error("Expected no user row to persist after rollback")
		}
	})

	t.Run("GetUserByUsername returns nil for missing user", func(t *testing.T) {
		got, err := store.GetUserByUsername(ctx, "nobody")
		if err != nil {
			t.Fatalf("GetUserByUsername failed: %v", err)
		}
		if got != nil {
			t.Errorf("Expected nil, got %+v", got)
		}
	})

	t.Run("GetUserByID round trip", func(t *testing.T) {
		user := mustCreateUser(t, store, "dave")

		got, err := store.GetUserByID(ctx, user.ID)
		if err != nil {
			t.Fatalf("GetUserByID failed: %v", err)
		}
		if got == nil || got.Username != "dave" {
			t.Errorf("GetUserByID: got %+v, want username dave", got)
		}
	})

	t.Run("multiple users without email are allowed", func(t *testing.T) {
		// Empty email is stored as NULL, so the unique index must not collide.
		mustCreateUser(t, store, "noemail1")
		mustCreateUser(t, store, "noemail2")
	})
}

func TestGroups(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	alice := mustCreateUser(t, store, "alice")
	bob := mustCreateUser(t, store, "bob")

	t.Run("CreateGroup assigns ID", func(t *testing.T) {
		group := &models.Group{GroupName: "Friends", UserID: alice.ID}
		if err := store.CreateGroup(ctx, group); err != nil {
			t.Fatalf("CreateGroup failed: %v", err)
		}
		if group.ID == 0 {
			t.Error("Expected group ID to be assigned")
		}
	})

	t.Run("duplicate name for same user is a conflict", func(t *testing.T) {
		err := store.CreateGroup(ctx, &models.Group{GroupName: "Friends", UserID: alice.ID})
		if !errors.Is(err, errs.ErrAlreadyExists) {
			t.Fatalf("Expected ErrAlreadyExists, got %v", err)
		}
	})

	t.Run("same name for different user is allowed", func(t *testing.T) {
		if err := store.CreateGroup(ctx, &models.Group{GroupName: "Friends", UserID: bob.ID}); err != nil {
			t.Fatalf("CreateGroup failed: %v", err)
		}
	})

	t.Run("ListGroups is scoped to the owner", func(t *testing.T) {
		groups, err := store.ListGroups(ctx, alice.ID)
		if err != nil {
			t.Fatalf("ListGroups failed: %v", err)
		}
		// Default group + Friends.
		if len(groups) != 2 {
			t.Errorf("Expected 2 groups for alice, got %d", len(groups))
		}
		for _, g := range groups {
			if g.UserID != alice.ID {
				t.Errorf("Group %d owned by %d, want %d", g.ID, g.UserID, alice.ID)
			}
		}
	})

	t.Run("GroupExists checks ownership", func(t *testing.T) {
		groups, err := store.ListGroups(ctx, alice.ID)
		if err != nil {
			t.Fatalf("ListGroups failed: %v", err)
		}

		ok, err := store.GroupExists(ctx, alice.ID, groups[0].ID)
		if err != nil || !ok {
			t.Errorf("GroupExists(owner) = %v, %v; want true, nil", ok, err)
		}

		ok, err = store.GroupExists(ctx, bob.ID, groups[0].ID)
		if err != nil {
			t.Fatalf("GroupExists failed: %v", err)
		}
		if ok {
			t.Error("Expected GroupExists to be false for a non-owner")
		}
	})
}

func TestContacts(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	alice := mustCreateUser(t, store, "alice")
	bob := mustCreateUser(t, store, "bob")

	addContact := func(t *testing.T, userID int64, name, phone string, groupID int64) *models.Contact {
		t.Helper()
		c := &models.Contact{
			Name: name, Phone: phone, GroupID: groupID,
			UserID: userID, CreatedAt: time.Now().Unix(),
		}
		if err := store.CreateContact(ctx, c); err != nil {
			t.Fatalf("CreateContact(%s) failed: %v", phone, err)
		}
		return c
	}

	t.Run("create and list", func(t *testing.T) {
		addContact(t, alice.ID, "Bob", "13800000000", 1)

		contacts, err := store.ListContacts(ctx, alice.ID, storage.ContactFilter{})
		if err != nil {
			t.Fatalf("ListContacts failed: %v", err)
		}
		if len(contacts) != 1 {
			t.Fatalf("Expected 1 contact, got %d", len(contacts))
		}
		c := contacts[0]
		if c.Name != "Bob" || c.Phone != "13800000000" || c.GroupID != 1 {
			t.Errorf("Unexpected contact: %+v", c)
		}
	})

	t.Run("duplicate phone for same user is a conflict", func(t *testing.T) {
		err := store.CreateContact(ctx, &models.Contact{
			Name: "Bob2", Phone: "13800000000", UserID: alice.ID, CreatedAt: time.Now().Unix(),
		})
		if !errors.Is(err, errs.ErrAlreadyExists) {
			t.Fatalf("Expected ErrAlreadyExists, got %v", err)
		}

		contacts, _ := store.ListContacts(ctx, alice.ID, storage.ContactFilter{})
		if len(contacts) != 1 {
			t.Errorf("Contact count changed after conflict: got %d, want 1", len(contacts))
		}
	})

	t.Run("same phone for different user is allowed", func(t *testing.T) {
		addContact(t, bob.ID, "Alice", "13800000000", 0)
	})

	t.Run("update replaces fields", func(t *testing.T) {
		addContact(t, alice.ID, "Carol", "13911111111", 0)

		err := store.UpdateContact(ctx, alice.ID, "13911111111",
			&models.Contact{Name: "Caroline", Phone: "13922222222", GroupID: 1})
		if err != nil {
			t.Fatalf("UpdateContact failed: %v", err)
		}

		contacts, err := store.ListContacts(ctx, alice.ID, storage.ContactFilter{Keyword: "Caroline"})
		if err != nil {
			t.Fatalf("ListContacts failed: %v", err)
		}
		if len(contacts) != 1 {
			t.Fatalf("Expected 1 contact, got %d", len(contacts))
		}
		if contacts[0].Phone != "13922222222" || contacts[0].GroupID != 1 {
			t.Errorf("Update not applied: %+v", contacts[0])
		}
	})

	t.Run("update of missing phone reports not found", func(t *testing.T) {
		err := store.UpdateContact(ctx, alice.ID, "10000000000",
			&models.Contact{Name: "Ghost", Phone: "10000000001"})
		if !errors.Is(err, errs.ErrNotFound) {
			t.Fatalf("Expected ErrNotFound, got %v", err)
		}
	})

	t.Run("update to an existing phone is a conflict", func(t *testing.T) {
		err := store.UpdateContact(ctx, alice.ID, "13922222222",
			&models.Contact{Name: "Caroline", Phone: "13800000000"})
		if !errors.Is(err, errs.ErrAlreadyExists) {
			t.Fatalf("Expected ErrAlreadyExists, got %v", err)
		}
	})

	t.Run("delete removes exactly one row", func(t *testing.T) {
		addContact(t, alice.ID, "Temp", "13733333333", 0)

		before, _ := store.ListContacts(ctx, alice.ID, storage.ContactFilter{})
		if err := store.DeleteContact(ctx, alice.ID, "13733333333"); err != nil {
			t.Fatalf("DeleteContact failed: %v", err)
		}
		after, _ := store.ListContacts(ctx, alice.ID, storage.ContactFilter{})
		if len(after) != len(before)-1 {
			t.Errorf("Expected %d contacts after delete, got %d", len(before)-1, len(after))
		}

		err := store.DeleteContact(ctx, alice.ID, "13733333333")
		if !errors.Is(err, errs.ErrNotFound) {
			t.Fatalf("Second delete: expected ErrNotFound, got %v", err)
		}
	})

	t.Run("delete is scoped to the owner", func(t *testing.T) {
		err := store.DeleteContact(ctx, bob.ID, "13922222222")
		if !errors.Is(err, errs.ErrNotFound) {
			t.Fatalf("Expected ErrNotFound for another user's phone, got %v", err)
		}
	})
}

func TestContactFilters(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	alice := mustCreateUser(t, store, "alice")

	seed := []models.Contact{
		{Name: "Bob", Phone: "13800000000", GroupID: 1},
		{Name: "Carol 138", Phone: "15500000000", GroupID: 2},
		{Name: "Dave", Phone: "15511111111", GroupID: 2},
	}
	for i := range seed {
		seed[i].UserID = alice.ID
		seed[i].CreatedAt = time.Now().Unix()
		if err := store.CreateContact(ctx, &seed[i]); err != nil {
			t.Fatalf("seed contact %d: %v", i, err)
		}
	}

	list := func(t *testing.T, f storage.ContactFilter) []models.Contact {
		t.Helper()
		contacts, err := store.ListContacts(ctx, alice.ID, f)
		if err != nil {
			t.Fatalf("ListContacts(%+v) failed: %v", f, err)
		}
		return contacts
	}

	t.Run("keyword matches name or phone", func(t *testing.T) {
		got := list(t, storage.ContactFilter{Keyword: "138"})
		if len(got) != 2 {
			t.Fatalf("keyword 138: expected 2 contacts, got %d", len(got))
		}
		for _, c := range got {
			if c.Phone != "13800000000" && c.Name != "Carol 138" {
				t.Errorf("Unexpected match: %+v", c)
			}
		}
	})

	t.Run("group filter", func(t *testing.T) {
		got := list(t, storage.ContactFilter{GroupID: 2})
		if len(got) != 2 {
			t.Fatalf("group 2: expected 2 contacts, got %d", len(got))
		}
	})

	t.Run("keyword and group combine with AND", func(t *testing.T) {
		got := list(t, storage.ContactFilter{Keyword: "138", GroupID: 2})
		if len(got) != 1 {
			t.Fatalf("combined: expected 1 contact, got %d", len(got))
		}
		if got[0].Name != "Carol 138" {
			t.Errorf("combined: got %+v, want Carol 138", got[0])
		}
	})

	t.Run("zero group id means all groups", func(t *testing.T) {
		got := list(t, storage.ContactFilter{GroupID: 0})
		if len(got) != 3 {
			t.Fatalf("expected 3 contacts, got %d", len(got))
		}
	})
}
