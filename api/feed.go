package api

import (
	"net/http"
	"sync"
	"time"

	"github.com/ClipFinance/oft-client/transfer"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 54 * time.Second
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// feedMessage is the frame pushed to feed clients.
type feedMessage struct {
	Type      string         `json:"type"`
	Data      transfer.Event `json:"data"`
	Timestamp int64          `json:"timestamp"`
}

// feedClient pushes workflow events to one websocket connection.
type feedClient struct {
	conn   *websocket.Conn
	events <-chan transfer.Event
	cancel func()
	logger *logrus.Logger

	done      chan struct{}
	closeOnce sync.Once
}

func (s *Server) feed(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.logger.WithError(err).Warn("Failed to upgrade websocket connection")
		return
	}

	events, cancel := s.deps.Workflow.Subscribe()
	client := &feedClient{
		conn:   conn,
		events: events,
		cancel: cancel,
		logger: s.logger,
		done:   make(chan struct{}),
	}

	go client.readPump()
	client.writePump(s.deps.Workflow.Snapshot())
}

// writePump sends the initial snapshot, then every event and periodic pings.
func (c *feedClient) writePump(initial transfer.Event) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.close()
	}()

	if err := c.write(initial); err != nil {
		return
	}

	for {
		select {
		case <-c.done:
			return
		case event, ok := <-c.events:
			if !ok {
				c.conn.SetWriteDeadline(time.Now().Add(writeWait))
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.write(event); err != nil {
				c.logger.WithError(err).Debug("Failed to write feed event")
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump discards client frames and detects the connection closing.
func (c *feedClient) readPump() {
	defer c.close()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseNoStatusReceived) {
				c.logger.WithError(err).Warn("Unexpected feed close")
			}
			return
		}
	}
}

func (c *feedClient) write(event transfer.Event) error {
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteJSON(feedMessage{
		Type:      "state",
		Data:      event,
		Timestamp: time.Now().UnixMilli(),
	})
}

func (c *feedClient) close() {
	c.closeOnce.Do(func() {
		close(c.done)
		c.cancel()
		c.conn.Close()
	})
}
