package session

import (
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/wricardo/checkers/game/engine"
	"github.com/wricardo/checkers/game/service"
)

func TestManager_Create(t *testing.T) {
	manager := NewManager(nil)

	tests := []struct {
		name    string
		id      string
		wantErr error
	}{
		{"explicit id", "game-1", nil},
		{"generated id", "", nil},
		{"duplicate id", "game-1", ErrSessionAlreadyExists},
		{"duplicate id different case", "GAME-1", ErrSessionAlreadyExists},
		{"id with spaces", "bad id", ErrInvalidSessionID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session, err := manager.Create(tt.id, engine.NewEngine())
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Expected error %v, got %v", tt.wantErr, err)
			}
			if tt.wantErr != nil {
				return
			}
			if session.ID == "" {
				t.Error("Expected session ID to be set")
			}
			if session.CreatedAt.IsZero() || session.LastAccessedAt.IsZero() {
				t.Error("Expected timestamps to be set")
			}
		})
	}

	if _, err := manager.Create("nil-engine", nil); err == nil {
		t.Error("Expected error for nil engine")
	}
}

func TestManager_Get(t *testing.T) {
	manager := NewManager(nil)
	created, _ := manager.Create("Mixed-Case", engine.NewEngine())

	t.Run("exact id", func(t *testing.T) {
		got, err := manager.Get("Mixed-Case")
		if err != nil || got != created {
			t.Errorf("Expected created session, got %v (err %v)", got, err)
		}
	})

	t.Run("case-insensitive", func(t *testing.T) {
		got, err := manager.Get("mixed-case")
		if err != nil || got != created {
			t.Errorf("Expected created session, got %v (err %v)", got, err)
		}
	})

	t.Run("missing", func(t *testing.T) {
		if _, err := manager.Get("nope"); !errors.Is(err, ErrSessionNotFound) {
			t.Errorf("Expected ErrSessionNotFound, got %v", err)
		}
	})
}

func TestManager_Delete(t *testing.T) {
	manager := NewManager(nil)
	manager.Create("delete-me", engine.NewEngine())

	if err := manager.Delete("DELETE-ME"); err != nil {
		t.Fatalf("Failed to delete session: %v", err)
	}
	if _, err := manager.Get("delete-me"); !errors.Is(err, ErrSessionNotFound) {
		t.Error("Expected session to be deleted")
	}
	if err := manager.Delete("delete-me"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Expected ErrSessionNotFound on second delete, got %v", err)
	}
}

func TestManager_List(t *testing.T) {
	manager := NewManager(nil)

	first, _ := manager.Create("first", engine.NewEngine())
	second, _ := manager.Create("second", engine.NewEngine())
	third, _ := manager.Create("third", engine.NewEngine())

	// Force a deterministic creation order
	base := time.Now()
	first.CreatedAt = base.Add(-3 * time.Minute)
	second.CreatedAt = base.Add(-2 * time.Minute)
	third.CreatedAt = base.Add(-1 * time.Minute)

	sessions := manager.List()
	if len(sessions) != 3 {
		t.Fatalf("Expected 3 sessions, got %d", len(sessions))
	}
	for i, want := range []string{"first", "second", "third"} {
		if sessions[i].ID != want {
			t.Errorf("Position %d: expected %s, got %s", i, want, sessions[i].ID)
		}
	}
	if manager.Count() != 3 {
		t.Errorf("Expected count 3, got %d", manager.Count())
	}
}

func TestManager_CleanupExpired(t *testing.T) {
	manager := NewManager(nil)

	// Create sessions with different last access times
	active, _ := manager.Create("active", engine.NewEngine())
	expired, _ := manager.Create("expired", engine.NewEngine())

	// Simulate expired session
	expired.LastAccessedAt = time.Now().Add(-2 * time.Hour)
	active.LastAccessedAt = time.Now()

	// Clean up sessions older than 1 hour
	deleted := manager.CleanupExpiredSessions(1 * time.Hour)
	if deleted != 1 {
		t.Errorf("Expected 1 session to be deleted, got %d", deleted)
	}

	if _, err := manager.Get("expired"); !errors.Is(err, ErrSessionNotFound) {
		t.Error("Expected expired session to be deleted")
	}
	if _, err := manager.Get("active"); err != nil {
		t.Error("Expected active session to still exist")
	}
}

func TestManager_UpdateLastAccessed(t *testing.T) {
	manager := NewManager(nil)

	session, _ := manager.Create("access-test", engine.NewEngine())
	originalTime := session.LastAccessed()

	// Wait a bit to ensure time difference
	time.Sleep(10 * time.Millisecond)

	if err := manager.UpdateLastAccessed("access-test"); err != nil {
		t.Fatalf("Failed to update last accessed: %v", err)
	}
	if !session.LastAccessed().After(originalTime) {
		t.Error("Expected LastAccessedAt to be updated")
	}

	if err := manager.UpdateLastAccessed("missing"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Expected ErrSessionNotFound, got %v", err)
	}
}

func TestManager_SessionIDGeneration(t *testing.T) {
	manager := NewManager(nil)
	generatedIDs := make(map[string]bool)

	for i := 0; i < 50; i++ {
		session, err := manager.Create("", engine.NewEngine())
		if err != nil {
			t.Fatalf("Failed to create session: %v", err)
		}
		if generatedIDs[session.ID] {
			t.Errorf("Duplicate session ID generated: %s", session.ID)
		}
		generatedIDs[session.ID] = true

		if _, err := uuid.Parse(session.ID); err != nil {
			t.Errorf("Expected UUID session ID, got %q: %v", session.ID, err)
		}
	}
}

func TestManager_SessionIsolation(t *testing.T) {
	manager := NewManager(nil)

	session1, _ := manager.Create("iso-1", engine.NewEngine())
	session2, _ := manager.Create("iso-2", engine.NewEngine())

	var err error
	session1.Update(func(eng *engine.GameEngine) {
		_, err = eng.MovePiece(engine.NewMove(2, 2, 3, 3))
	})
	if err != nil {
		t.Fatalf("Move failed: %v", err)
	}

	session2.View(func(eng *engine.GameEngine) {
		if eng.CurrentTurn() != engine.Black {
			t.Error("Session 2 should not be affected by session 1 moves")
		}
		if p, _ := eng.GetPiece(engine.Coordinate{X: 3, Y: 3}); p != nil {
			t.Error("Sessions should have independent boards")
		}
	})
}

func TestManager_ConcurrentAccess(t *testing.T) {
	manager := NewManager(nil)

	var wg sync.WaitGroup
	errs := make(chan error, 100)

	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			session, err := manager.Create("", engine.NewEngine())
			if err != nil {
				errs <- err
				return
			}
			if _, err := manager.Get(strings.ToUpper(session.ID)); err != nil {
				errs <- err
				return
			}
			if err := manager.UpdateLastAccessed(session.ID); err != nil {
				errs <- err
			}
			_ = manager.List()
		}()
	}

	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("Unexpected error during concurrent access: %v", err)
	}
	if manager.Count() != 100 {
		t.Errorf("Expected 100 sessions, got %d", manager.Count())
	}
}

func TestManager_WithGameService(t *testing.T) {
	manager := NewManager(nil)
	var _ service.SessionManager = manager

	svc := service.NewGameService(manager, nil)
	info, err := svc.CreateGame(t.Context(), nil)
	if err != nil {
		t.Fatalf("CreateGame failed: %v", err)
	}
	if _, err := uuid.Parse(info.ID); err != nil {
		t.Errorf("Expected UUID game ID, got %q", info.ID)
	}

	if err := svc.DeleteGame(t.Context(), info.ID); err != nil {
		t.Fatalf("DeleteGame failed: %v", err)
	}
	if _, err := svc.GetGame(t.Context(), info.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Expected ErrSessionNotFound through the service, got %v", err)
	}
}
