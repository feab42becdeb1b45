package stream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/jrbassindale1/roomclimate/internal/log"
	"github.com/jrbassindale1/roomclimate/internal/sim"
	"github.com/jrbassindale1/roomclimate/pkg/config"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Config holds the WebSocket listener settings.
type Config struct {
	ListenAddr string `yaml:"listen_addr,omitempty" json:"listenAddr"`
	Port       int    `yaml:"port,omitempty" json:"port"`
}

// Controller serves the WebSocket endpoint and relays scenario edits into
// the simulation service.
type Controller struct {
	ctx     context.Context
	wg      *sync.WaitGroup
	service *sim.Service
	hub     *Hub
	Server  http.Server
	logger  *zap.SugaredLogger
}

// NewController creates the stream controller and registers its bridge as
// the service callback.
func NewController(ctx context.Context, wg *sync.WaitGroup, service *sim.Service, cfg Config, logger *zap.SugaredLogger) (*Controller, error) {
	if service == nil {
		return nil, fmt.Errorf("stream controller requires a simulation service")
	}

	if cfg.ListenAddr == "" {
		cfg.ListenAddr = "0.0.0.0"
	}
	if cfg.Port == 0 {
		logger.Info("stream.port not provided; defaulting to 8081")
		cfg.Port = 8081
	}

	ctrl := &Controller{
		ctx:     ctx,
		wg:      wg,
		service: service,
		hub:     NewHub(),
		logger:  logger,
	}
	service.SetCallback(NewBridge(ctrl.hub))

	router := http.NewServeMux()
	router.HandleFunc("/ws", ctrl.serveWS)

	ctrl.Server.Addr = fmt.Sprintf("%v:%v", cfg.ListenAddr, cfg.Port)
	ctrl.Server.Handler = router
	ctrl.Server.ReadHeaderTimeout = 10 * time.Second

	return ctrl, nil
}

// StartController starts the WebSocket server
func (c *Controller) StartController() error {
	log.Info("Starting stream controller...")
	c.wg.Add(1)

	go func() {
		defer c.wg.Done()
		if err := c.Server.ListenAndServe(); err != http.ErrServerClosed {
			log.Errorf("stream server error: %v", err)
		}
	}()

	go func() {
		<-c.ctx.Done()
		log.Info("Shutting down the stream server...")
		c.Server.Shutdown(context.Background())
	}()

	return nil
}

// Hub exposes the hub for tests and for broadcasting outside the bridge.
func (c *Controller) Hub() *Hub {
	return c.hub
}

func (c *Controller) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Errorf("WebSocket upgrade error: %v", err)
		return
	}

	client := &Client{
		hub:  c.hub,
		conn: conn,
		send: make(chan []byte, 256),
	}

	c.hub.Register(client)
	go client.writePump()

	c.sendScenario(client)
	c.readPump(client)
}

// sendScenario pushes the current scenario to a newly connected client.
func (c *Controller) sendScenario(client *Client) {
	msg, err := NewEnvelope(TypeScenario, ScenarioPayload{Scenario: c.service.Scenario()})
	if err != nil {
		log.Errorf("marshaling scenario: %v", err)
		return
	}
	select {
	case client.send <- msg:
	default:
	}
}

func (c *Controller) readPump(client *Client) {
	defer func() {
		c.hub.Unregister(client)
		client.conn.Close()
	}()

	for {
		_, msg, err := client.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Errorf("WebSocket read error: %v", err)
			}
			return
		}
		c.handleMessage(client, msg)
	}
}

func (c *Controller) handleMessage(client *Client, msg []byte) {
	var env Envelope
	if err := json.Unmarshal(msg, &env); err != nil {
		c.sendError(client, "invalid message: "+err.Error())
		return
	}

	switch env.Type {
	case TypeScenarioSet:
		var p ScenarioPayload
		p.Scenario = config.DefaultScenario()
		if err := json.Unmarshal(env.Payload, &p); err != nil {
			c.sendError(client, "invalid scenario payload: "+err.Error())
			return
		}
		c.service.SetScenario(p.Scenario)
		// Recompute in the background; the bridge broadcasts the result.
		go c.service.Annual()

	default:
		c.sendError(client, "unknown message type: "+env.Type)
	}
}

func (c *Controller) sendError(client *Client, msg string) {
	env, err := NewEnvelope(TypeError, map[string]string{"error": msg})
	if err != nil {
		return
	}
	select {
	case client.send <- env:
	default:
	}
}
