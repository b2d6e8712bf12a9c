package realtime

import "github.com/gofiber/websocket/v2"

// DisplayHub - registry koneksi layar display ruang tunggu.
type DisplayHub struct {
	Register   chan *websocket.Conn
	Unregister chan *websocket.Conn
	Broadcast  chan []byte
	Clients    map[*websocket.Conn]bool
}

func NewDisplayHub() *DisplayHub {
	return &DisplayHub{
		Register:   make(chan *websocket.Conn),
		Unregister: make(chan *websocket.Conn),
		Broadcast:  make(chan []byte),
		Clients:    make(map[*websocket.Conn]bool),
	}
}

func (h *DisplayHub) Run() {
	for {
		select {
		case c := <-h.Register:
			h.Clients[c] = true
		case c := <-h.Unregister:
			delete(h.Clients, c)
			c.Close()
		case msg := <-h.Broadcast:
			for c := range h.Clients {
				c.WriteMessage(websocket.TextMessage, msg)
			}
		}
	}
}
