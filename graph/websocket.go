package graph

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/juju/errors"

	"github.com/ZamarianPatrick/mygarden-backend/display"
	"github.com/ZamarianPatrick/mygarden-backend/graph/model"
)

const (
	socketSendBuffer = 16
	socketWriteWait  = 10 * time.Second
)

var websocketUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// socketSurface is a display surface rendered by a websocket client.
type socketSurface struct {
	id   string
	conn *websocket.Conn
	send chan model.SurfaceEvent
	done chan struct{}

	mu     sync.Mutex
	size   display.Size
	single *display.SingleView
	grid   *display.GridView
	rows   []display.Row
}

func newSocketSurface(id string, conn *websocket.Conn, size display.Size) *socketSurface {
	return &socketSurface{
		id:   id,
		conn: conn,
		size: size,
		send: make(chan model.SurfaceEvent, socketSendBuffer),
		done: make(chan struct{}),
	}
}

func (s *socketSurface) ID() string {
	return s.id
}

func (s *socketSurface) Size() display.Size {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.size
}

func (s *socketSurface) PushSingle(view display.SingleView) error {
	s.mu.Lock()
	s.single, s.grid, s.rows = &view, nil, nil
	s.mu.Unlock()
	return s.push(model.SurfaceEvent{Type: "single", Single: &view})
}

func (s *socketSurface) PushGrid(view display.GridView) error {
	s.mu.Lock()
	s.single, s.grid, s.rows = nil, &view, nil
	s.mu.Unlock()
	return s.push(model.SurfaceEvent{Type: "grid", Grid: &view})
}

func (s *socketSurface) InvalidateGridData() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.grid == nil {
		return errors.NotValidf("rows without a grid on surface %q", s.id)
	}
	s.rows = display.Snapshot(s.grid.Rows)
	return s.push(model.SurfaceEvent{Type: "rows", Rows: s.rows})
}

// allows reports whether intent is one the surface currently offers: a tap
// target of the single view it shows, or the item tap of a row it lists.
func (s *socketSurface) allows(intent display.Intent) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch {
	case s.single != nil:
		if s.single.OnWaterTap != nil && intent == *s.single.OnWaterTap {
			return true
		}
		return intent == s.single.OnImageTap
	case s.grid != nil:
		if intent.Kind != s.grid.ItemTap {
			return false
		}
		for _, row := range s.rows {
			if row.PlantID == intent.PlantID {
				return true
			}
		}
	}
	return false
}

func (s *socketSurface) push(event model.SurfaceEvent) error {
	select {
	case <-s.done:
		return display.ErrSurfaceGone
	default:
	}
	select {
	case s.send <- event:
		return nil
	default:
		return errors.Errorf("surface %q is not keeping up", s.id)
	}
}

func (s *socketSurface) resize(width, height int) {
	s.mu.Lock()
	s.size = display.Size{Width: width, Height: height}
	s.mu.Unlock()
}

func (s *socketSurface) writeLoop() {
	for {
		select {
		case event := <-s.send:
			_ = s.conn.SetWriteDeadline(time.Now().Add(socketWriteWait))
			if err := s.conn.WriteJSON(event); err != nil {
				logger.Debugf("surface %q write: %v", s.id, err)
				_ = s.conn.Close()
				return
			}
		case <-s.done:
			_ = s.conn.WriteControl(websocket.CloseMessage, []byte{}, time.Now().Add(socketWriteWait))
			return
		}
	}
}

// readLoop handles client messages until the connection drops.
func (s *socketSurface) readLoop(queue Queue, activator display.Activator) {
	defer func() {
		close(s.done)
		queue.EnqueueSurfaceDestroyed(s.id)
		_ = s.conn.Close()
	}()
	for {
		var msg model.SurfaceMessage
		if err := s.conn.ReadJSON(&msg); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Debugf("surface %q read: %v", s.id, err)
			}
			return
		}
		switch msg.Type {
		case "resize":
			s.resize(msg.Width, msg.Height)
			queue.EnqueueSurfaceResized(s.id)
		case "tap":
			switch {
			case msg.Intent == nil:
			case s.allows(*msg.Intent):
				activator.Activate(*msg.Intent)
			default:
				logger.Debugf("surface %q tapped %v %d, which it does not show", s.id, msg.Intent.Kind, msg.Intent.PlantID)
			}
		default:
			logger.Debugf("surface %q sent unknown message %q", s.id, msg.Type)
		}
	}
}

func (r *Resolver) surfaceSocket(c *gin.Context) {
	width, _ := strconv.Atoi(c.Query("width"))
	height, _ := strconv.Atoi(c.Query("height"))

	conn, err := websocketUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Errorf("problem initiating websocket: %v", err)
		return
	}
	id, err := uuid.NewUUID()
	if err != nil {
		logger.Errorf("surface id: %v", err)
		_ = conn.Close()
		return
	}

	s := newSocketSurface(id.String(), conn, display.Size{Width: width, Height: height})
	logger.Infof("ws surface %s connected", s.id)
	go s.writeLoop()

	queue := r.controller.Queue()
	queue.EnqueueSurfaceCreated(s)
	s.readLoop(queue, r.controller.Activator())
	logger.Infof("ws surface %s closed", s.id)
}
