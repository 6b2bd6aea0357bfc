package websocket

import (
	"encoding/json"
	"sync"

	"github.com/rs/zerolog"

	"github.com/keiji0711/final-final/internal/app/models"
)

// Hub maintains the set of connected dashboard clients and fans attendance
// updates out to all of them. There is a single feed; every client sees every
// update.
type Hub struct {
	// Registered clients
	clients map[*Client]bool

	// Outbound attendance updates awaiting fan-out
	broadcast chan *models.AttendanceUpdate

	// Register requests from the clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client

	// Mutex for concurrent access to clients map
	mu sync.RWMutex

	// Logger for Hub operations
	logger zerolog.Logger
}

// NewHub creates a new Hub instance
func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		broadcast:  make(chan *models.AttendanceUpdate, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
		logger:     logger,
	}
}

// Run starts the hub, handling client registrations and broadcasts
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case update := <-h.broadcast:
			h.broadcastUpdate(update)
		}
	}
}

// PublishAttendance queues an attendance update for fan-out. The send is
// non-blocking; when the broadcast buffer is full the update is dropped, a
// scan must never wait on slow dashboards.
func (h *Hub) PublishAttendance(update *models.AttendanceUpdate) {
	select {
	case h.broadcast <- update:
	default:
		h.logger.Warn().
			Str("usn", update.USN).
			Int64("eventID", update.EventID).
			Msg("Broadcast buffer full, dropped attendance update")
	}
}

// registerClient registers a new client to the hub
func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[client] = true

	h.logger.Info().
		Int64("userID", client.userID).
		Str("addr", client.conn.RemoteAddr().String()).
		Msg("Dashboard client registered")
}

// unregisterClient unregisters a client from the hub
func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)

		h.logger.Info().
			Int64("userID", client.userID).
			Str("addr", client.conn.RemoteAddr().String()).
			Msg("Dashboard client unregistered")
	}
}

// broadcastUpdate serializes an update once and sends it to every client
func (h *Hub) broadcastUpdate(update *models.AttendanceUpdate) {
	data, err := json.Marshal(update)
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("usn", update.USN).
			Msg("Failed to marshal attendance update")
		return
	}

	h.mu.RLock()
	stale := make([]*Client, 0)
	for client := range h.clients {
		select {
		case client.send <- data:
		default:
			// Client's send buffer is full, they are slow or disconnected.
			// Drop the connection rather than block the feed.
			stale = append(stale, client)
		}
	}
	clientCount := len(h.clients)
	h.mu.RUnlock()

	for _, client := range stale {
		h.unregisterClient(client)
	}

	h.logger.Debug().
		Int("clientCount", clientCount).
		Str("usn", update.USN).
		Msg("Attendance update broadcasted")
}

// ClientCount returns the number of connected dashboard clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
