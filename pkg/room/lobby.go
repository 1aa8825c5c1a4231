package room

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"headsupholdem-server/pkg/holdem"
	"headsupholdem-server/pkg/settlement"
)

const defaultBotDelay = time.Millisecond * 1500

// Lobby is responsible for creating matches and dispatching connected clients
// to their croupiers
type Lobby struct {
	lock      sync.RWMutex
	croupiers map[string]*Croupier

	settler  settlement.Settler
	botDelay time.Duration

	connect    chan *Client
	disconnect chan *Client
}

// NewLobby returns a new lobby. A nil settler falls back to the logging
// implementation; a zero botDelay falls back to the default thinking time.
func NewLobby(settler settlement.Settler, botDelay time.Duration) *Lobby {
	if settler == nil {
		settler = settlement.LogSettler{}
	}

	if botDelay <= 0 {
		botDelay = defaultBotDelay
	}

	return &Lobby{
		croupiers:  make(map[string]*Croupier),
		settler:    settler,
		botDelay:   botDelay,
		connect:    make(chan *Client, 256),
		disconnect: make(chan *Client, 256),
	}
}

// StartShift starts the lobby run loop
func (l *Lobby) StartShift() {
	go l.runLoop()
}

func (l *Lobby) runLoop() {
	for {
		select {
		case client := <-l.connect:
			logrus.WithField("client", client.String()).Debug("client connected")

			croupier, err := l.Croupier(client.MatchUUID)
			if err != nil {
				logrus.WithField("uuid", client.MatchUUID).Warn("match not found")
				client.Send(newErrorResponse("", err))
				continue
			}

			croupier.AddClient(client)
		case client := <-l.disconnect:
			logrus.WithField("client", client.String()).Debug("client disconnected")

			croupier, err := l.Croupier(client.MatchUUID)
			if err != nil {
				continue
			}

			if croupier.RemoveClient(client) {
				croupier.EndShift()

				l.lock.Lock()
				delete(l.croupiers, client.MatchUUID)
				l.lock.Unlock()
			}
		}
	}
}

// CreateMatch creates a new match hosted by the given player and returns its
// UUID. With seatCPU the second seat is filled by the CPU policy; otherwise it
// stays open for the next player who connects.
func (l *Lobby) CreateMatch(hostID int64, hostName string, seatCPU bool, opts holdem.Options) (string, error) {
	if err := opts.Validate(); err != nil {
		return "", err
	}

	matchUUID := uuid.New().String()
	croupier := NewCroupier(l, matchUUID, holdem.Seat{ID: hostID, Name: hostName}, seatCPU, opts, l.settler, l.botDelay)

	l.lock.Lock()
	l.croupiers[matchUUID] = croupier
	l.lock.Unlock()

	croupier.StartShift()

	logrus.WithFields(logrus.Fields{
		"uuid":    matchUUID,
		"host":    hostID,
		"seatCPU": seatCPU,
	}).Info("match created")

	return matchUUID, nil
}

// Croupier returns the croupier for the given match UUID
func (l *Lobby) Croupier(matchUUID string) (*Croupier, error) {
	l.lock.RLock()
	defer l.lock.RUnlock()

	croupier, ok := l.croupiers[matchUUID]
	if !ok {
		return nil, holdem.ErrGameNotFound
	}

	return croupier, nil
}

// ClientConnected is called when a client connects to the server
func (l *Lobby) ClientConnected(client *Client) {
	l.connect <- client
}

// ClientDisconnected is called when a client disconnects from the server
func (l *Lobby) ClientDisconnected(client *Client) {
	l.disconnect <- client
}
