package room

import (
	"fmt"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"headsupholdem-server/pkg/protocol"
)

// Client is a player (or spectator) connected to a match via websocket
type Client struct {
	// Conn is the underlying websocket connection
	Conn *websocket.Conn

	// send is a channel for sending messages to the client
	send chan interface{}

	// Close is a channel for closing the client
	Close chan string

	// CloseError contains the reason why the connection was closed
	CloseError error

	croupier *Croupier

	PlayerID  int64
	Name      string
	MatchUUID string
}

// NewClient returns a new client object
func NewClient(conn *websocket.Conn, playerID int64, name, matchUUID string) *Client {
	return &Client{
		Conn:      conn,
		send:      make(chan interface{}, 256),
		Close:     make(chan string),
		PlayerID:  playerID,
		Name:      name,
		MatchUUID: matchUUID,
	}
}

// Send sends a message to the web client. Returns false if the client's
// buffer is full; the message is dropped rather than blocking a run loop.
func (c *Client) Send(msg interface{}) bool {
	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

// SendChan returns a read-only channel of outgoing messages
func (c *Client) SendChan() <-chan interface{} {
	return c.send
}

// String returns a traceable identifier for the player and match
func (c *Client) String() string {
	return fmt.Sprintf("%d:%s", c.PlayerID, c.MatchUUID)
}

// ReceivedMessage is called when the server receives a message from a connected client
func (c *Client) ReceivedMessage(msg *protocol.PayloadIn) {
	if c.croupier == nil {
		logrus.WithField("msg", msg).Warn("received message, but croupier not found")
		return
	}

	c.croupier.ReceivedMessage(c, msg)
}
