package notifications

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"github.com/quocnhat02092003/thread-app/internal/observability"

	"github.com/gofiber/websocket/v2"
)

const maxPostsPerClient = 64

// PostHub fans realtime post events out to the connections watching each
// post. Connections are tracked per socket rather than per user because the
// post channel accepts anonymous viewers.
type PostHub struct {
	mu sync.RWMutex
	// clients maps each connection to the set of posts it watches.
	clients map[*Client]map[uint]struct{}
	// groups maps each post to its watching connections.
	groups     map[uint]map[*Client]struct{}
	totalConns int
}

// NewPostHub creates a new PostHub instance.
func NewPostHub() *PostHub {
	return &PostHub{
		clients: make(map[*Client]map[uint]struct{}),
		groups:  make(map[uint]map[*Client]struct{}),
	}
}

// Name returns a human-readable identifier for this hub.
func (h *PostHub) Name() string { return "post hub" }

// postHubMessage is the envelope for client -> server control messages.
type postHubMessage struct {
	Type   string `json:"type"`
	PostID uint   `json:"postId"`
}

// Register a connection. userID may be zero for anonymous viewers.
func (h *PostHub) Register(userID uint, conn *websocket.Conn) (*Client, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.totalConns >= maxTotalConns {
		return nil, errServerConnLimit
	}

	client := NewClient(h, conn, userID)
	client.IncomingHandler = h.handleIncoming
	h.clients[client] = make(map[uint]struct{})
	h.totalConns++
	observability.WebSocketConnectionsTotal.WithLabelValues(h.Name()).Inc()

	return client, nil
}

// UnregisterClient removes a client and all of its post subscriptions.
func (h *PostHub) UnregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	posts, ok := h.clients[client]
	if !ok {
		return
	}
	for postID := range posts {
		h.leaveLocked(client, postID)
	}
	delete(h.clients, client)
	h.totalConns--
	observability.WebSocketConnectionsTotal.WithLabelValues(h.Name()).Dec()
}

// handleIncoming processes join_post / leave_post control messages.
func (h *PostHub) handleIncoming(client *Client, raw []byte) {
	var msg postHubMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		log.Printf("post hub: malformed message from user %d: %v", client.UserID, err)
		return
	}
	if msg.PostID == 0 {
		return
	}

	switch msg.Type {
	case "join_post":
		h.Join(client, msg.PostID)
	case "leave_post":
		h.Leave(client, msg.PostID)
	default:
		log.Printf("post hub: unknown message type %q from user %d", msg.Type, client.UserID)
	}
}

// Join subscribes a connection to a post's events.
func (h *PostHub) Join(client *Client, postID uint) {
	h.mu.Lock()
	defer h.mu.Unlock()

	posts, ok := h.clients[client]
	if !ok {
		return
	}
	if len(posts) >= maxPostsPerClient {
		if _, already := posts[postID]; !already {
			return
		}
	}
	posts[postID] = struct{}{}

	group, ok := h.groups[postID]
	if !ok {
		group = make(map[*Client]struct{})
		h.groups[postID] = group
	}
	group[client] = struct{}{}
	observability.WebSocketEventsTotal.WithLabelValues(h.Name(), "join_post").Inc()
}

// Leave unsubscribes a connection from a post's events.
func (h *PostHub) Leave(client *Client, postID uint) {
	h.mu.Lock()
	defer h.mu.Unlock()

	posts, ok := h.clients[client]
	if !ok {
		return
	}
	delete(posts, postID)
	h.leaveLocked(client, postID)
	observability.WebSocketEventsTotal.WithLabelValues(h.Name(), "leave_post").Inc()
}

func (h *PostHub) leaveLocked(client *Client, postID uint) {
	group, ok := h.groups[postID]
	if !ok {
		return
	}
	delete(group, client)
	if len(group) == 0 {
		delete(h.groups, postID)
	}
}

// BroadcastPost sends message to every connection watching postID.
func (h *PostHub) BroadcastPost(postID uint, message string) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if group, ok := h.groups[postID]; ok {
		data := []byte(message)
		for c := range group {
			c.TrySend(data)
		}
	}
}

// WatcherCount reports how many connections currently watch a post.
func (h *PostHub) WatcherCount(postID uint) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.groups[postID])
}

// StartWiring connects the Notifier to this hub: it subscribes to the post
// channels and forwards messages to the watching connections.
func (h *PostHub) StartWiring(ctx context.Context, n *Notifier) error {
	return n.StartPostSubscriber(ctx, func(channel, payload string) {
		postID, err := ParsePostChannel(channel)
		if err != nil {
			log.Printf("post hub: %v", err)
			return
		}
		h.BroadcastPost(postID, payload)
	})
}

// Shutdown gracefully closes all websocket connections.
func (h *PostHub) Shutdown(_ context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.clients {
		if client.Conn == nil {
			continue
		}
		if err := client.Conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "Server shutting down")); err != nil {
			log.Printf("failed to write close message for user %d: %v", client.UserID, err)
		}
		if err := client.Conn.Close(); err != nil {
			log.Printf("failed to close websocket for user %d: %v", client.UserID, err)
		}
	}
	h.clients = make(map[*Client]map[uint]struct{})
	h.groups = make(map[uint]map[*Client]struct{})
	h.totalConns = 0

	return nil
}
