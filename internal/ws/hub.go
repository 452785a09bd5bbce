// Package ws delivers server push: support-chat messages and request status
// changes. Clients subscribe to named channels ("chat:<id>", "user:<id>");
// the hub owns all connection state on a single goroutine, so no locks.
package ws

import (
	"encoding/json"
	"log"
)

type Event struct {
	Channel string `json:"channel"`
	Event   string `json:"event"`
	Payload any    `json:"payload"`
}

type envelope struct {
	channel string
	data    []byte
}

type Hub struct {
	// clients by subscribed channel
	channels map[string]map[*Client]bool

	publish    chan envelope
	register   chan *Client
	unregister chan *Client
}

func NewHub() *Hub {
	return &Hub{
		channels:   make(map[string]map[*Client]bool),
		publish:    make(chan envelope, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			for _, ch := range client.subscriptions {
				if h.channels[ch] == nil {
					h.channels[ch] = make(map[*Client]bool)
				}
				h.channels[ch][client] = true
			}
		case client := <-h.unregister:
			h.drop(client)
		case msg := <-h.publish:
			for client := range h.channels[msg.channel] {
				select {
				case client.send <- msg.data:
				default:
					// Slow consumer; drop the connection rather than block
					// every other subscriber.
					h.drop(client)
				}
			}
		}
	}
}

func (h *Hub) drop(client *Client) {
	subscribed := false
	for _, ch := range client.subscriptions {
		if clients, ok := h.channels[ch]; ok && clients[client] {
			delete(clients, client)
			subscribed = true
			if len(clients) == 0 {
				delete(h.channels, ch)
			}
		}
	}
	if subscribed {
		close(client.send)
	}
}

// Publish marshals an event and fans it out to a channel's subscribers.
// Safe to call from any goroutine.
func (h *Hub) Publish(channel, event string, payload any) {
	data, err := json.Marshal(Event{Channel: channel, Event: event, Payload: payload})
	if err != nil {
		log.Printf("ws: failed to marshal event %q: %v", event, err)
		return
	}
	h.publish <- envelope{channel: channel, data: data}
}

// ChatChannel is the channel both chat participants subscribe to.
func ChatChannel(chatID string) string { return "chat:" + chatID }

// UserChannel carries per-user events such as request status updates.
func UserChannel(userID string) string { return "user:" + userID }
