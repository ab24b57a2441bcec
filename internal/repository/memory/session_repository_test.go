package memory

import (
	"testing"
	"time"

	"genegpt-be/pkg/store"
)

func TestSessionRepositoryRoundTrip(t *testing.T) {
	repo := NewSessionRepository(1 * time.Hour)

	session := store.NewSession("s1")
	session.TopicGene = "BRCA1"
	repo.Save(session)

	got, found := repo.Get("s1")
	if !found {
		t.Fatal("Get after Save should find the session")
	}
	if got.TopicGene != "BRCA1" {
		t.Errorf("TopicGene = %q, want BRCA1", got.TopicGene)
	}
	if got.UpdatedAt.IsZero() {
		t.Error("Save should stamp UpdatedAt")
	}
}

func TestSessionRepositoryMiss(t *testing.T) {
	repo := NewSessionRepository(1 * time.Hour)

	if _, found := repo.Get("missing"); found {
		t.Error("Get on unknown id should miss")
	}
}

func TestSessionRepositoryDelete(t *testing.T) {
	repo := NewSessionRepository(1 * time.Hour)
	repo.Save(store.NewSession("s1"))

	repo.Delete("s1")

	if _, found := repo.Get("s1"); found {
		t.Error("Get after Delete should miss")
	}
}

func TestSessionRepositoryTTLExpiry(t *testing.T) {
	repo := NewSessionRepository(10 * time.Millisecond)
	repo.Save(store.NewSession("s1"))

	time.Sleep(30 * time.Millisecond)

	if _, found := repo.Get("s1"); found {
		t.Error("session should expire after its TTL")
	}
}
