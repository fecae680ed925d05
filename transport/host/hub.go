package host

import (
	"context"
	"fmt"

	"github.com/inconshreveable/log15/v3"

	"github.com/wricardo/checkers/game/engine"
)

// Notification event names
const (
	EventPieceMoved   = "piece_moved"
	EventPieceCrowned = "piece_crowned"
)

// AllGames subscribes to notifications from every game
const AllGames = ""

// Notification is one host notification tagged with its game
type Notification struct {
	GameID string            `json:"game_id"`
	Event  string            `json:"event"`
	From   engine.Coordinate `json:"from"`
	To     engine.Coordinate `json:"to"`
}

// String renders the notification the way the shell prints it
func (n Notification) String() string {
	if n.Event == EventPieceCrowned {
		return fmt.Sprintf("crowned %s", n.To)
	}
	return fmt.Sprintf("moved %s -> %s", n.From, n.To)
}

// Subscription receives notifications on C until it is unsubscribed or
// dropped for falling behind, at which point C is closed.
type Subscription struct {
	C <-chan Notification

	gameID string
	send   chan Notification
}

// Hub fans notifications out to subscribers in-process
type Hub struct {
	// Registered subscriptions by game ID, AllGames included
	games map[string]map[*Subscription]bool

	broadcast  chan Notification
	register   chan *Subscription
	unregister chan *Subscription
	count      chan countRequest
	done       chan struct{}

	log log15.Logger
}

type countRequest struct {
	gameID string
	reply  chan int
}

// NewHub creates a hub; call Run to start delivering
func NewHub(logger log15.Logger) *Hub {
	if logger == nil {
		logger = log15.New()
		logger.SetHandler(log15.DiscardHandler())
	}
	return &Hub{
		games:      make(map[string]map[*Subscription]bool),
		broadcast:  make(chan Notification),
		register:   make(chan *Subscription),
		unregister: make(chan *Subscription),
		count:      make(chan countRequest),
		done:       make(chan struct{}),
		log:        logger.New("component", "hub"),
	}
}

// Run starts the hub's event loop and returns when ctx is done.
// Remaining subscriptions are closed on exit and later calls become no-ops.
func (h *Hub) Run(ctx context.Context) {
	defer func() {
		h.closeAll()
		close(h.done)
	}()
	for {
		select {
		case <-ctx.Done():
			return

		case sub := <-h.register:
			h.registerSubscription(sub)

		case sub := <-h.unregister:
			h.unregisterSubscription(sub)

		case n := <-h.broadcast:
			h.deliver(n)

		case req := <-h.count:
			req.reply <- len(h.games[req.gameID])
		}
	}
}

// Subscribe registers a subscription for gameID, or every game with AllGames.
// buffer is the number of notifications held for a slow reader.
func (h *Hub) Subscribe(gameID string, buffer int) *Subscription {
	if buffer < 1 {
		buffer = 1
	}
	ch := make(chan Notification, buffer)
	sub := &Subscription{C: ch, gameID: gameID, send: ch}
	select {
	case h.register <- sub:
	case <-h.done:
		close(ch)
	}
	return sub
}

// Unsubscribe removes sub and closes its channel. Safe to call twice.
func (h *Hub) Unsubscribe(sub *Subscription) {
	select {
	case h.unregister <- sub:
	case <-h.done:
	}
}

// Subscribers returns the number of subscriptions registered for gameID
func (h *Hub) Subscribers(gameID string) int {
	reply := make(chan int, 1)
	select {
	case h.count <- countRequest{gameID: gameID, reply: reply}:
		return <-reply
	case <-h.done:
		return 0
	}
}

// Publish hands n to the event loop
func (h *Hub) Publish(n Notification) {
	select {
	case h.broadcast <- n:
	case <-h.done:
	}
}

// Notifier returns a Notifier publishing the notifications of gameID
func (h *Hub) Notifier(gameID string) Notifier {
	return NotifierFuncs{
		PieceMoved: func(fx, fy, tx, ty int32) {
			h.Publish(Notification{
				GameID: gameID,
				Event:  EventPieceMoved,
				From:   engine.Coordinate{X: int(fx), Y: int(fy)},
				To:     engine.Coordinate{X: int(tx), Y: int(ty)},
			})
		},
		PieceCrowned: func(x, y int32) {
			at := engine.Coordinate{X: int(x), Y: int(y)}
			h.Publish(Notification{GameID: gameID, Event: EventPieceCrowned, From: at, To: at})
		},
	}
}

func (h *Hub) registerSubscription(sub *Subscription) {
	if h.games[sub.gameID] == nil {
		h.games[sub.gameID] = make(map[*Subscription]bool)
	}
	h.games[sub.gameID][sub] = true

	h.log.Debug("subscriber registered", "game", sub.gameID, "total", len(h.games[sub.gameID]))
}

func (h *Hub) unregisterSubscription(sub *Subscription) {
	subs, ok := h.games[sub.gameID]
	if !ok || !subs[sub] {
		return
	}
	delete(subs, sub)
	close(sub.send)

	// Clean up empty games
	if len(subs) == 0 {
		delete(h.games, sub.gameID)
	}

	h.log.Debug("subscriber unregistered", "game", sub.gameID, "remaining", len(subs))
}

func (h *Hub) deliver(n Notification) {
	h.sendTo(h.games[n.GameID], n)
	if n.GameID != AllGames {
		h.sendTo(h.games[AllGames], n)
	}
}

func (h *Hub) sendTo(subs map[*Subscription]bool, n Notification) {
	for sub := range subs {
		select {
		case sub.send <- n:
		default:
			// Subscriber's buffer is full, drop it
			h.log.Warn("dropping slow subscriber", "game", sub.gameID)
			h.unregisterSubscription(sub)
		}
	}
}

func (h *Hub) closeAll() {
	for _, subs := range h.games {
		for sub := range subs {
			h.unregisterSubscription(sub)
		}
	}
}
