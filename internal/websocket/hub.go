package websocket

import "github.com/rs/zerolog/log"

// boardMessage is a payload addressed to one board's subscribers.
type boardMessage struct {
	boardID string
	data    []byte
}

// Hub maintains the set of active clients and broadcasts activity to
// them. Clients subscribe to a single board; events for that board are
// fanned out to its subscribers only. The client and subscription maps
// are owned exclusively by the Run goroutine; all mutation and fan-out
// requests arrive through channels.
type Hub struct {
	// Registered clients.
	clients map[*Client]bool

	// Inbound messages for global broadcast.
	Broadcast chan []byte

	// Register requests from the clients.
	Register chan *Client

	// Unregister requests from clients.
	Unregister chan *Client

	// Inbound messages addressed to a single board.
	broadcastTo chan boardMessage

	// A map of board IDs to the set of clients subscribed to them.
	subscriptions map[string]map[*Client]bool
}

// NewHub creates a new Hub.
func NewHub() *Hub {
	return &Hub{
		Broadcast:     make(chan []byte),
		Register:      make(chan *Client),
		Unregister:    make(chan *Client),
		broadcastTo:   make(chan boardMessage),
		clients:       make(map[*Client]bool),
		subscriptions: make(map[string]map[*Client]bool),
	}
}

// Run starts the Hub's message processing loop.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.clients[client] = true
			log.Info().Int("total_clients", len(h.clients)).Msg("Client connected")
			if client.BoardID != "" {
				h.addSubscription(client, client.BoardID)
			}
		case client := <-h.Unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
				h.removeSubscription(client)
				log.Info().Int("total_clients", len(h.clients)).Msg("Client disconnected")
			}
		case message := <-h.Broadcast:
			for client := range h.clients {
				select {
				case client.Send <- message:
				default:
					close(client.Send)
					delete(h.clients, client)
					h.removeSubscription(client)
				}
			}
		case msg := <-h.broadcastTo:
			h.sendToBoard(msg.boardID, msg.data)
		}
	}
}

// BroadcastTo sends a message to all clients subscribed to a board. It
// is safe to call from any goroutine; delivery happens on the Run loop.
func (h *Hub) BroadcastTo(boardID string, message []byte) {
	h.broadcastTo <- boardMessage{boardID: boardID, data: message}
}

// BroadcastAll sends a message to every connected client.
func (h *Hub) BroadcastAll(message []byte) {
	h.Broadcast <- message
}

// sendToBoard fans a message out to a board's subscribers. Only called
// from the Run goroutine.
func (h *Hub) sendToBoard(boardID string, message []byte) {
	if subs, ok := h.subscriptions[boardID]; ok {
		for client := range subs {
			select {
			case client.Send <- message:
			default:
				close(client.Send)
				delete(h.clients, client)
				delete(h.subscriptions[boardID], client)
			}
		}
	}
}

func (h *Hub) addSubscription(client *Client, boardID string) {
	if h.subscriptions[boardID] == nil {
		h.subscriptions[boardID] = make(map[*Client]bool)
	}
	h.subscriptions[boardID][client] = true
}

func (h *Hub) removeSubscription(client *Client) {
	for boardID, subs := range h.subscriptions {
		if _, ok := subs[client]; ok {
			delete(subs, client)
			if len(subs) == 0 {
				delete(h.subscriptions, boardID)
			}
		}
	}
}
