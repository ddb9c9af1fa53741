package database

import (
	"context"
	"errors"
	"testing"

	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedCandidate(name, email string) Candidate {
	return Candidate{
		Name:   name,
		Email:  email,
		Mobile: "123",
		Skills: datatypes.JSON([]byte(`["Java","Python"]`)),
		Status: "Available",
	}
}

func TestCandidateStore_CreateAssignsSequentialIDs(t *testing.T) {
	ctx := context.Background()
	store := NewCandidateStore(newTestDB(t))

	first, err := store.Create(ctx, seedCandidate("A", "a@example.com"))
	if err != nil {
		t.Fatalf("create first: %v", err)
	}
	second, err := store.Create(ctx, seedCandidate("B", "b@example.com"))
	if err != nil {
		t.Fatalf("create second: %v", err)
	}

	if first.ID != 1 || second.ID != 2 {
		t.Fatalf("expected ids 1 and 2, got %d and %d", first.ID, second.ID)
	}
}

func TestCandidateStore_CreateReusesMaxAfterDelete(t *testing.T) {
	ctx := context.Background()
	store := NewCandidateStore(newTestDB(t))

	if _, err := store.Create(ctx, seedCandidate("A", "a@example.com")); err != nil {
		t.Fatalf("create: %v", err)
	}
	second, err := store.Create(ctx, seedCandidate("B", "b@example.com"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := store.Delete(ctx, second.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	third, err := store.Create(ctx, seedCandidate("C", "c@example.com"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if third.ID != 2 {
		t.Fatalf("expected max+1 to reuse id 2, got %d", third.ID)
	}
}

func TestCandidateStore_ListAllDescendingWithDecodedSkills(t *testing.T) {
	ctx := context.Background()
	store := NewCandidateStore(newTestDB(t))

	if _, err := store.Create(ctx, seedCandidate("A", "a@example.com")); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := store.Create(ctx, seedCandidate("B", "b@example.com")); err != nil {
		t.Fatalf("create: %v", err)
	}

	candidates, err := store.ListAll(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(candidates) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(candidates))
	}
	if candidates[0].ID != 2 || candidates[1].ID != 1 {
		t.Fatalf("expected id-descending order, got %d then %d", candidates[0].ID, candidates[1].ID)
	}
	if len(candidates[0].Skills) != 2 || candidates[0].Skills[0] != "Java" {
		t.Fatalf("expected decoded skills, got %v", candidates[0].Skills)
	}
}

func TestCandidateStore_UpdateMergesAllowlistedFields(t *testing.T) {
	ctx := context.Background()
	store := NewCandidateStore(newTestDB(t))

	created, err := store.Create(ctx, seedCandidate("A", "a@example.com"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := store.Update(ctx, created.ID, map[string]any{
		"name":      "Renamed",
		"skills":    []string{"Go"},
		"id":        99,
		"createdAt": "1999-01-01",
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	if updated.Name != "Renamed" {
		t.Fatalf("expected merged name, got %q", updated.Name)
	}
	if len(updated.Skills) != 1 || updated.Skills[0] != "Go" {
		t.Fatalf("expected replaced skills, got %v", updated.Skills)
	}
	if updated.ID != created.ID {
		t.Fatalf("id must be immutable, got %d", updated.ID)
	}
	if updated.CreatedAt != created.CreatedAt {
		t.Fatalf("createdAt must be immutable, got %q", updated.CreatedAt)
	}
	if updated.Email != "a@example.com" {
		t.Fatalf("untouched field changed, got %q", updated.Email)
	}
}

func TestCandidateStore_UpdateMissingReturnsNotFound(t *testing.T) {
	ctx := context.Background()
	store := NewCandidateStore(newTestDB(t))

	if _, err := store.Update(ctx, 42, map[string]any{"name": "X"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCandidateStore_DeleteReportsExistence(t *testing.T) {
	ctx := context.Background()
	store := NewCandidateStore(newTestDB(t))

	created, err := store.Create(ctx, seedCandidate("A", "a@example.com"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	existed, err := store.Delete(ctx, created.ID)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if !existed {
		t.Fatal("expected delete of existing candidate to report true")
	}

	existed, err = store.Delete(ctx, created.ID)
	if err != nil {
		t.Fatalf("second delete: %v", err)
	}
	if existed {
		t.Fatal("expected delete of missing candidate to report false")
	}
}

func TestCandidateStore_EmailExists(t *testing.T) {
	ctx := context.Background()
	store := NewCandidateStore(newTestDB(t))

	if _, err := store.Create(ctx, seedCandidate("A", "a@example.com")); err != nil {
		t.Fatalf("create: %v", err)
	}

	exists, err := store.EmailExists(ctx, "a@example.com")
	if err != nil {
		t.Fatalf("email exists: %v", err)
	}
	if !exists {
		t.Fatal("expected existing email to be reported")
	}

	exists, err = store.EmailExists(ctx, "other@example.com")
	if err != nil {
		t.Fatalf("email exists: %v", err)
	}
	if exists {
		t.Fatal("expected unknown email to be absent")
	}
}

func TestDemandStore_ListAllOrdersByCreatedDateDescending(t *testing.T) {
	ctx := context.Background()
	store := NewDemandStore(newTestDB(t))

	older := Demand{ClientName: "Old", CreatedDate: "2025-01-01", Status: "Active"}
	newer := Demand{ClientName: "New", CreatedDate: "2025-06-01", Status: "Active"}
	if _, err := store.Create(ctx, older); err != nil {
		t.Fatalf("create older: %v", err)
	}
	if _, err := store.Create(ctx, newer); err != nil {
		t.Fatalf("create newer: %v", err)
	}

	demands, err := store.ListAll(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(demands) != 2 {
		t.Fatalf("expected 2 demands, got %d", len(demands))
	}
	if demands[0].ClientName != "New" {
		t.Fatalf("expected newest demand first, got %q", demands[0].ClientName)
	}
}

func TestDemandStore_UpdateReencodesSkillArrays(t *testing.T) {
	ctx := context.Background()
	store := NewDemandStore(newTestDB(t))

	created, err := store.Create(ctx, Demand{
		ClientName:   "Acme",
		CreatedDate:  "2025-01-01",
		PrimarySkill: datatypes.JSON([]byte(`["Java"]`)),
		Status:       "Active",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := store.Update(ctx, created.ID, map[string]any{
		"primarySkill": []string{"Go", "Rust"},
		"status":       "Inactive",
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	if len(updated.PrimarySkill) != 2 || updated.PrimarySkill[0] != "Go" {
		t.Fatalf("expected re-encoded skills, got %v", updated.PrimarySkill)
	}
	if updated.Status != "Inactive" {
		t.Fatalf("expected updated status, got %q", updated.Status)
	}
}

func TestUserStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewUserStore(newTestDB(t))

	created, err := store.Create(ctx, User{Username: "alice", PasswordHash: "hash", Role: "HR"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Username != "alice" || created.Role != "HR" {
		t.Fatalf("unexpected view: %+v", created)
	}

	exists, err := store.Exists(ctx, "alice")
	if err != nil {
		t.Fatalf("exists: %v", err)
	}
	if !exists {
		t.Fatal("expected alice to exist")
	}

	updated, err := store.UpdateRole(ctx, "alice", "Admin")
	if err != nil {
		t.Fatalf("update role: %v", err)
	}
	if updated.Role != "Admin" {
		t.Fatalf("expected Admin role, got %q", updated.Role)
	}

	row, err := store.GetByUsername(ctx, "alice")
	if err != nil {
		t.Fatalf("get by username: %v", err)
	}
	if row.PasswordHash != "hash" {
		t.Fatalf("expected stored hash for login checks, got %q", row.PasswordHash)
	}

	existed, err := store.Delete(ctx, "alice")
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if !existed {
		t.Fatal("expected delete to report existence")
	}
	if _, err := store.GetByUsername(ctx, "alice"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}
