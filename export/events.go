package export

import (
	"encoding/json"
	"time"
)

type EventType string

const (
	EventKeypress EventType = "keypress"
	EventClick    EventType = "click"
	EventChange   EventType = "change"
)

type Coords struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Event is one entry of the interaction log. Field order is stable and
// serialization is lossless: a record serialized then parsed reproduces
// identical field values.
type Event struct {
	Timestamp int64     `json:"timestamp"` // milliseconds since epoch
	Type      EventType `json:"type"`
	Value     string    `json:"value,omitempty"` // change: new text value
	Key       string    `json:"key,omitempty"`   // keypress: key identifier
	Coords    *Coords   `json:"coords,omitempty"`
}

// EventLog records keypress, click and change events in order. It is
// only touched from the UI event loop.
type EventLog struct {
	events []Event
}

func NewEventLog() *EventLog {
	return &EventLog{}
}

func (l *EventLog) Keypress(key string) {
	l.events = append(l.events, Event{
		Timestamp: time.Now().UnixMilli(),
		Type:      EventKeypress,
		Key:       key,
	})
}

func (l *EventLog) Click(x, y int) {
	l.events = append(l.events, Event{
		Timestamp: time.Now().UnixMilli(),
		Type:      EventClick,
		Coords:    &Coords{X: x, Y: y},
	})
}

func (l *EventLog) Change(value string) {
	l.events = append(l.events, Event{
		Timestamp: time.Now().UnixMilli(),
		Type:      EventChange,
		Value:     value,
	})
}

func (l *EventLog) Events() []Event {
	out := make([]Event, len(l.events))
	copy(out, l.events)
	return out
}

func (l *EventLog) Len() int {
	return len(l.events)
}

// MarshalIndent serializes the log as a readable JSON array.
func (l *EventLog) MarshalIndent() ([]byte, error) {
	if l.events == nil {
		return json.MarshalIndent([]Event{}, "", "  ")
	}
	return json.MarshalIndent(l.events, "", "  ")
}

// ParseEvents is the inverse of MarshalIndent.
func ParseEvents(data []byte) ([]Event, error) {
	var events []Event
	if err := json.Unmarshal(data, &events); err != nil {
		return nil, err
	}
	return events, nil
}
