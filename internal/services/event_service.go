package services

import (
	"database/sql"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/isdelr/taskboard-be/internal/models"
	"github.com/isdelr/taskboard-be/internal/websocket"
)

// EventServiceProvider defines the interface for event services.
type EventServiceProvider interface {
	CreateEvent(eventType, message string, boardID *string) error
	GetRecentEvents(limit int) ([]models.Event, error)
	GetEventsForBoard(boardID string, limit int) ([]models.Event, error)
}

// Broadcaster pushes messages to live websocket clients, either the
// subscribers of one board or everyone. The hub implements it; tests
// use a no-op.
type Broadcaster interface {
	BroadcastTo(boardID string, message []byte)
	BroadcastAll(message []byte)
}

// EventService records board activity and fans it out to live
// subscribers. Event recording is best-effort for callers: a failed
// broadcast never fails the mutation that produced it.
type EventService struct {
	db  *sql.DB
	hub Broadcaster
}

// NewEventService creates a new EventService.
func NewEventService(db *sql.DB, hub Broadcaster) *EventService {
	return &EventService{db: db, hub: hub}
}

// CreateEvent logs a new event to the database and broadcasts it to
// subscribers of the board, if any.
func (s *EventService) CreateEvent(eventType, message string, boardID *string) error {
	event := models.Event{
		ID:      uuid.New().String(),
		Type:    eventType,
		Message: message,
		BoardID: boardID,
	}

	_, err := s.db.Exec("INSERT INTO events (id, type, message, board_id) VALUES (?, ?, ?, ?)",
		event.ID, event.Type, event.Message, event.BoardID)
	if err != nil {
		return err
	}

	if s.hub != nil {
		payload, err := json.Marshal(websocket.Message{Action: event.Type, Payload: event})
		if err != nil {
			log.Error().Err(err).Str("event_id", event.ID).Msg("Failed to encode event for broadcast")
			return nil
		}
		if boardID != nil {
			s.hub.BroadcastTo(*boardID, payload)
		} else {
			// Events not tied to a board (e.g. board.delete) go to everyone.
			s.hub.BroadcastAll(payload)
		}
	}
	return nil
}

// GetRecentEvents retrieves the most recent events across all boards.
func (s *EventService) GetRecentEvents(limit int) ([]models.Event, error) {
	return s.query("SELECT id, type, message, board_id, created_at FROM events ORDER BY created_at DESC LIMIT ?", limit)
}

// GetEventsForBoard retrieves the most recent events of one board.
func (s *EventService) GetEventsForBoard(boardID string, limit int) ([]models.Event, error) {
	return s.query("SELECT id, type, message, board_id, created_at FROM events WHERE board_id = ? ORDER BY created_at DESC LIMIT ?", boardID, limit)
}

func (s *EventService) query(stmt string, args ...any) ([]models.Event, error) {
	rows, err := s.db.Query(stmt, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []models.Event
	for rows.Next() {
		var event models.Event
		if err := rows.Scan(&event.ID, &event.Type, &event.Message, &event.BoardID, &event.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, rows.Err()
}
