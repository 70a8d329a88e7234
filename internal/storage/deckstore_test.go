package storage

import (
	"context"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/mastanley13/MTGDeck-sub000/internal/deck"
)

// setupTestDB creates a migrated temporary database.
func setupTestDB(t *testing.T) *DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")

	config := DefaultConfig(dbPath)
	config.AutoMigrate = true
	db, err := Open(config)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestDeckStoreSaveAndGet(t *testing.T) {
	store := NewDeckStore(setupTestDB(t), zap.NewNop())
	ctx := context.Background()

	rec, err := store.Save(ctx, "user-1", "", sampleDeck())
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if rec.ID == "" {
		t.Fatal("save should assign an id")
	}
	if rec.Name != "Atraxa Superfriends" {
		t.Errorf("name = %q", rec.Name)
	}
	if rec.PayloadChars != len(rec.Payload) {
		t.Errorf("payload_chars = %d, len(payload) = %d", rec.PayloadChars, len(rec.Payload))
	}

	got, err := store.Get(ctx, rec.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got == nil || got.Payload != rec.Payload {
		t.Errorf("round trip mismatch: %+v", got)
	}

	decoded, err := DecodeDeck(got.Payload)
	if err != nil {
		t.Fatalf("DecodeDeck: %v", err)
	}
	if decoded.CommanderID != "atraxa-id" || len(decoded.Entries) != 3 {
		t.Errorf("decoded deck = %+v", decoded)
	}
}

func TestDeckStoreSaveUpdatesExisting(t *testing.T) {
	store := NewDeckStore(setupTestDB(t), nil)
	ctx := context.Background()

	rec, err := store.Save(ctx, "user-1", "", sampleDeck())
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	renamed := sampleDeck()
	renamed.Name = "Renamed"
	updated, err := store.Save(ctx, "user-1", rec.ID, renamed)
	if err != nil {
		t.Fatalf("Save update: %v", err)
	}
	if updated.ID != rec.ID {
		t.Errorf("update changed id: %q -> %q", rec.ID, updated.ID)
	}
	if updated.Name != "Renamed" {
		t.Errorf("name = %q, want Renamed", updated.Name)
	}

	records, err := store.ListForUser(ctx, "user-1")
	if err != nil {
		t.Fatalf("ListForUser: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("records = %d, want 1 (upsert, not insert)", len(records))
	}
}

func TestDeckStoreSaveRejectsOversizedDeck(t *testing.T) {
	store := NewDeckStore(setupTestDB(t), nil)

	huge := sampleDeck()
	for i := 0; i < MaxPayloadChars/10; i++ {
		huge.Description += "padding.."
	}

	if _, err := store.Save(context.Background(), "user-1", "", huge); err == nil {
		t.Fatal("oversized deck must not be saved")
	}

	records, err := store.ListForUser(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("ListForUser: %v", err)
	}
	if len(records) != 0 {
		t.Error("failed save must leave no record behind")
	}
}

func TestDeckStoreListForUserIsScoped(t *testing.T) {
	store := NewDeckStore(setupTestDB(t), nil)
	ctx := context.Background()

	if _, err := store.Save(ctx, "alice", "", sampleDeck()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := store.Save(ctx, "alice", "", sampleDeck()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := store.Save(ctx, "bob", "", sampleDeck()); err != nil {
		t.Fatalf("Save: %v", err)
	}

	records, err := store.ListForUser(ctx, "alice")
	if err != nil {
		t.Fatalf("ListForUser: %v", err)
	}
	if len(records) != 2 {
		t.Errorf("alice records = %d, want 2", len(records))
	}
}

func TestDeckStoreDelete(t *testing.T) {
	store := NewDeckStore(setupTestDB(t), nil)
	ctx := context.Background()

	rec, err := store.Save(ctx, "user-1", "", sampleDeck())
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := store.Delete(ctx, rec.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	got, err := store.Get(ctx, rec.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != nil {
		t.Error("deleted deck still present")
	}

	// Deleting again is a no-op.
	if err := store.Delete(ctx, rec.ID); err != nil {
		t.Errorf("second delete errored: %v", err)
	}
}

func TestCardCache(t *testing.T) {
	cache := NewCardCache(setupTestDB(t))
	ctx := context.Background()

	card := deck.Card{
		ID:            "sol-ring",
		Name:          "Sol Ring",
		TypeLine:      "Artifact",
		ColorIdentity: []string{},
		Legalities:    map[string]string{"commander": "legal"},
	}
	if err := cache.Put(ctx, card); err != nil {
		t.Fatalf("Put: %v", err)
	}

	byID, err := cache.GetByID(ctx, "sol-ring")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if byID == nil || byID.Card.Name != "Sol Ring" {
		t.Fatalf("GetByID = %+v", byID)
	}
	if byID.UpdatedAt.IsZero() {
		t.Error("cache timestamp missing")
	}

	byName, err := cache.GetByName(ctx, "SOL RING")
	if err != nil {
		t.Fatalf("GetByName: %v", err)
	}
	if byName == nil || byName.Card.ID != "sol-ring" {
		t.Errorf("case-insensitive lookup failed: %+v", byName)
	}

	missing, err := cache.GetByID(ctx, "nope")
	if err != nil {
		t.Fatalf("GetByID missing: %v", err)
	}
	if missing != nil {
		t.Errorf("missing card should be nil, got %+v", missing)
	}

	count, err := cache.Count(ctx)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}
}

func TestCardCachePutRequiresID(t *testing.T) {
	cache := NewCardCache(setupTestDB(t))
	if err := cache.Put(context.Background(), deck.Card{Name: "No ID"}); err == nil {
		t.Error("card without id must be rejected")
	}
}
