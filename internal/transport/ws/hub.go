package ws

import (
	"encoding/json"
	"log"
	"sync"
)

// Message is the WebSocket envelope format. Type carries the timeline
// event type name of the change being announced.
type Message struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Hub manages the landlord feed connections
type Hub struct {
	// landlordID -> connection (a reconnect replaces the old one)
	conns map[string]*Connection

	mu sync.RWMutex

	register   chan *Connection
	unregister chan *Connection
	broadcast  chan *BroadcastMessage
}

// Connection represents a landlord's WebSocket connection
type Connection struct {
	LandlordID string
	Send       chan []byte
	Hub        *Hub
}

// BroadcastMessage is a message addressed to one landlord's feed
type BroadcastMessage struct {
	LandlordID string
	Message    *Message
}

// NewHub creates a new WebSocket hub
func NewHub() *Hub {
	h := &Hub{
		conns:      make(map[string]*Connection),
		register:   make(chan *Connection),
		unregister: make(chan *Connection),
		broadcast:  make(chan *BroadcastMessage, 256),
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	for {
		select {
		case conn := <-h.register:
			h.mu.Lock()
			if old, ok := h.conns[conn.LandlordID]; ok {
				close(old.Send)
			}
			h.conns[conn.LandlordID] = conn
			h.mu.Unlock()
			log.Printf("Landlord %s connected to feed", conn.LandlordID)

		case conn := <-h.unregister:
			h.mu.Lock()
			if existing, ok := h.conns[conn.LandlordID]; ok && existing == conn {
				delete(h.conns, conn.LandlordID)
				close(conn.Send)
				log.Printf("Landlord %s disconnected from feed", conn.LandlordID)
			}
			h.mu.Unlock()

		case msg := <-h.broadcast:
			h.mu.RLock()
			if conn, ok := h.conns[msg.LandlordID]; ok {
				data, _ := json.Marshal(msg.Message)
				select {
				case conn.Send <- data:
				default:
					// Drop message if buffer full
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Register adds a connection
func (h *Hub) Register(conn *Connection) {
	h.register <- conn
}

// Unregister removes a connection
func (h *Hub) Unregister(conn *Connection) {
	h.unregister <- conn
}

// BroadcastToLandlord sends a feed message to one landlord (implements
// service.Broadcaster)
func (h *Hub) BroadcastToLandlord(landlordID string, msgType string, payload interface{}) {
	data, _ := json.Marshal(payload)
	h.broadcast <- &BroadcastMessage{
		LandlordID: landlordID,
		Message: &Message{
			Type:    msgType,
			Payload: data,
		},
	}
}
