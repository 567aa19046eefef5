package service

// Broadcaster interface for WebSocket broadcasting (avoids import cycle)
type Broadcaster interface {
	BroadcastToLandlord(landlordID string, msgType string, payload interface{})
}
