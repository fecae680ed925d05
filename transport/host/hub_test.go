package host

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/wricardo/checkers/game/engine"
)

func startHub(t *testing.T) *Hub {
	t.Helper()
	hub := NewHub(nil)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)
	return hub
}

func receive(t *testing.T, sub *Subscription) Notification {
	t.Helper()
	select {
	case n, ok := <-sub.C:
		if !ok {
			t.Fatal("Subscription closed unexpectedly")
		}
		return n
	case <-time.After(time.Second):
		t.Fatal("Timed out waiting for notification")
	}
	return Notification{}
}

func TestNewHub(t *testing.T) {
	hub := NewHub(nil)

	if hub == nil {
		t.Fatal("NewHub() returned nil")
	}
	if hub.games == nil {
		t.Error("Hub games map is nil")
	}
	if hub.broadcast == nil || hub.register == nil || hub.unregister == nil {
		t.Error("Hub channels are not initialised")
	}
}

func TestHub_SubscribeAndPublish(t *testing.T) {
	hub := startHub(t)

	game1 := hub.Subscribe("game-1", 8)
	game2 := hub.Subscribe("game-2", 8)
	all := hub.Subscribe(AllGames, 8)

	if n := hub.Subscribers("game-1"); n != 1 {
		t.Errorf("Expected 1 subscriber for game-1, got %d", n)
	}

	notifier := hub.Notifier("game-1")
	notifier.NotifyPieceMoved(2, 2, 3, 3)
	notifier.NotifyPieceCrowned(3, 7)

	want := []Notification{
		{GameID: "game-1", Event: EventPieceMoved, From: engine.Coordinate{X: 2, Y: 2}, To: engine.Coordinate{X: 3, Y: 3}},
		{GameID: "game-1", Event: EventPieceCrowned, From: engine.Coordinate{X: 3, Y: 7}, To: engine.Coordinate{X: 3, Y: 7}},
	}
	for _, sub := range []*Subscription{game1, all} {
		got := []Notification{receive(t, sub), receive(t, sub)}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("Notifications mismatch (-want +got):\n%s", diff)
		}
	}

	select {
	case n := <-game2.C:
		t.Errorf("game-2 subscriber received %v", n)
	default:
	}
}

func TestHub_Unsubscribe(t *testing.T) {
	hub := startHub(t)

	sub := hub.Subscribe("game-1", 1)
	hub.Unsubscribe(sub)
	hub.Unsubscribe(sub) // second call is a no-op

	if _, ok := <-sub.C; ok {
		t.Error("Expected channel to be closed")
	}
	if n := hub.Subscribers("game-1"); n != 0 {
		t.Errorf("Expected no subscribers, got %d", n)
	}
}

func TestHub_DropsSlowSubscriber(t *testing.T) {
	hub := startHub(t)

	slow := hub.Subscribe("game-1", 1)
	fast := hub.Subscribe("game-1", 8)

	for i := 0; i < 3; i++ {
		hub.Publish(Notification{GameID: "game-1", Event: EventPieceMoved})
	}

	// The slow subscriber keeps its buffered notification, then sees the close
	if _, ok := <-slow.C; !ok {
		t.Fatal("Expected the buffered notification first")
	}
	if _, ok := <-slow.C; ok {
		t.Error("Expected slow subscriber to be dropped")
	}

	for i := 0; i < 3; i++ {
		receive(t, fast)
	}
	if n := hub.Subscribers("game-1"); n != 1 {
		t.Errorf("Expected 1 remaining subscriber, got %d", n)
	}
}

func TestHub_StopClosesSubscriptions(t *testing.T) {
	hub := NewHub(nil)
	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(stopped)
	}()

	sub := hub.Subscribe("game-1", 1)
	cancel()
	<-stopped

	if _, ok := <-sub.C; ok {
		t.Error("Expected subscription to be closed when the hub stops")
	}

	// Calls after shutdown return instead of blocking
	hub.Publish(Notification{GameID: "game-1"})
	late := hub.Subscribe("game-1", 1)
	if _, ok := <-late.C; ok {
		t.Error("Expected late subscription to be closed")
	}
	if hub.Subscribers("game-1") != 0 {
		t.Error("Expected no subscribers after shutdown")
	}
}

func TestHub_BridgeIntegration(t *testing.T) {
	hub := startHub(t)
	b := newTestBridge(t, nil, nil)
	b.notifier = hub.Notifier(b.GameID())

	sub := hub.Subscribe(b.GameID(), 4)
	if got := b.MovePiece(2, 2, 3, 3); got != MoveSucceeded {
		t.Fatalf("Expected success, got %d", got)
	}

	n := receive(t, sub)
	if n.String() != "moved 2,2 -> 3,3" {
		t.Errorf("Unexpected notification %q", n.String())
	}
}

func TestNotification_String(t *testing.T) {
	n := Notification{Event: EventPieceCrowned, To: engine.Coordinate{X: 5, Y: 7}}
	if n.String() != "crowned 5,7" {
		t.Errorf("Expected crowned 5,7, got %q", n.String())
	}
}
