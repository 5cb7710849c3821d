package websocket

import (
	"log"
	"sync"

	"github.com/google/uuid"
)

// session is the live state of one deck being presented: who is connected
// and which slide the presenter is on. Late joiners get the current
// position replayed on register.
type session struct {
	clients  map[*Client]bool
	position int
}

type slideCommand struct {
	client   *Client
	position int
}

// Hub coordinates presentation sessions, keyed by deck id. All session
// state is owned by the Run goroutine; handlers reach it through channels.
type Hub struct {
	sessions   map[uuid.UUID]*session
	register   chan *Client
	unregister chan *Client
	setSlide   chan *slideCommand
	stop       chan struct{}
	done       chan struct{} // closed when Run() exits
	stopped    bool
	mu         sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		sessions:   make(map[uuid.UUID]*session),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		setSlide:   make(chan *slideCommand),
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
	}
}

func (h *Hub) Run() {
	defer close(h.done)

	for {
		select {
		case <-h.stop:
			for _, sess := range h.sessions {
				for client := range sess.clients {
					client.Close()
				}
			}
			h.sessions = make(map[uuid.UUID]*session)
			return

		case client := <-h.register:
			sess, ok := h.sessions[client.deckID]
			if !ok {
				sess = &session{clients: make(map[*Client]bool)}
				h.sessions[client.deckID] = sess
			}
			sess.clients[client] = true
			client.send <- mustMarshal(MessageTypeSlideChanged, SlideChangedPayload{Position: sess.position})
			h.broadcast(sess, mustMarshal(MessageTypeViewerCount, ViewerCountPayload{Count: len(sess.clients)}))

		case client := <-h.unregister:
			sess, ok := h.sessions[client.deckID]
			if !ok {
				continue
			}
			if _, ok := sess.clients[client]; ok {
				delete(sess.clients, client)
				client.Close()
			}
			if len(sess.clients) == 0 {
				delete(h.sessions, client.deckID)
				continue
			}
			h.broadcast(sess, mustMarshal(MessageTypeViewerCount, ViewerCountPayload{Count: len(sess.clients)}))

		case cmd := <-h.setSlide:
			sess, ok := h.sessions[cmd.client.deckID]
			if !ok {
				continue
			}
			if cmd.position < 0 {
				continue
			}
			sess.position = cmd.position
			h.broadcast(sess, mustMarshal(MessageTypeSlideChanged, SlideChangedPayload{Position: cmd.position}))
		}
	}
}

// broadcast sends to every client in the session, dropping the ones whose
// send buffers are full rather than blocking the hub.
func (h *Hub) broadcast(sess *session, data []byte) {
	for client := range sess.clients {
		select {
		case client.send <- data:
		default:
			log.Printf("ERROR [websocket.Hub] dropping slow client for deck %s", client.deckID)
			delete(sess.clients, client)
			client.Close()
		}
	}
}

func (h *Hub) Register(client *Client) {
	h.mu.Lock()
	stopped := h.stopped
	h.mu.Unlock()
	if stopped {
		client.Close()
		return
	}
	h.register <- client
}

// Stop shuts the hub down and waits for Run to exit.
func (h *Hub) Stop() {
	h.mu.Lock()
	if h.stopped {
		h.mu.Unlock()
		return
	}
	h.stopped = true
	h.mu.Unlock()

	close(h.stop)
	<-h.done
}
