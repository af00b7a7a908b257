package internal

import (
	"sync"

	"github.com/gorilla/websocket"
)

// Client is one live websocket connection. A client is created per
// connection, not per user: the same display name reconnecting gets a
// fresh Client and rooms swap their stored handle on re-join.
type Client struct {
	ID       string          `json:"id"`
	Username string          `json:"username"`
	Conn     *websocket.Conn `json:"-"`

	// Mu serializes writes; gorilla/websocket allows only one concurrent
	// writer per connection.
	Mu sync.Mutex `json:"-"`
}

func (c *Client) SafeWriteJSON(v any) error {
	c.Mu.Lock()
	defer c.Mu.Unlock()
	return c.Conn.WriteJSON(v)
}
