package room

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"headsupholdem-server/internal/util"
	"headsupholdem-server/pkg/holdem"
	"headsupholdem-server/pkg/holdem/bot"
	"headsupholdem-server/pkg/protocol"
	"headsupholdem-server/pkg/settlement"
)

type state int

const (
	stateClientEvent state = iota
	stateGameEvent
)

const settleTimeout = time.Second * 5

// cpuSeatID is the reserved player id for the CPU opponent
const cpuSeatID int64 = -1

// Croupier runs a single heads-up match. All game mutation happens on its run
// loop goroutine, so the engine itself never needs a lock.
type Croupier struct {
	lobby *Lobby

	uuid    string
	options holdem.Options
	seats   []holdem.Seat
	game    *holdem.Game
	policy  *bot.Policy
	settler settlement.Settler

	clients map[*Client]bool
	lock    sync.RWMutex

	logMessages []*protocol.LogMessage

	execInRunLoop chan func()
	stateChanged  chan state
	close         chan bool

	botDelay time.Duration

	// generation invalidates scheduled CPU turns once the match has moved on.
	// Only touched from the run loop.
	generation  int
	sessionOpen bool
}

// NewCroupier creates a croupier for a new match. The host takes the first
// seat; a CPU opponent fills the second seat immediately, otherwise it stays
// open until another player connects.
// This is called from a blocking state, so it needs to return quickly.
func NewCroupier(lobby *Lobby, matchUUID string, host holdem.Seat, seatCPU bool, opts holdem.Options, settler settlement.Settler, botDelay time.Duration) *Croupier {
	seats := []holdem.Seat{host}
	if seatCPU {
		seats = append(seats, holdem.Seat{ID: cpuSeatID, Name: util.GetRandomName(), IsAI: true})
	}

	return &Croupier{
		lobby:         lobby,
		uuid:          matchUUID,
		options:       opts,
		seats:         seats,
		policy:        bot.New(nil),
		settler:       settler,
		clients:       make(map[*Client]bool),
		execInRunLoop: make(chan func(), 256),
		stateChanged:  make(chan state, 256),
		close:         make(chan bool),
		botDelay:      botDelay,
	}
}

// UUID returns the match identifier
func (c *Croupier) UUID() string {
	return c.uuid
}

// Clients returns a slice of connected (at the time) clients
func (c *Croupier) Clients() []*Client {
	c.lock.RLock()
	defer c.lock.RUnlock()

	clients := make([]*Client, 0, len(c.clients))
	for client := range c.clients {
		clients = append(clients, client)
	}

	return clients
}

// StartShift starts the run loop
func (c *Croupier) StartShift() {
	go c.runLoop()
}

func (c *Croupier) runLoop() {
	log := logrus.WithField("uuid", c.uuid)

	log.Debug("creating croupier run loop")
	for {
		// a nil game means a nil channel, which never fires
		var logChan <-chan []*protocol.LogMessage
		if c.game != nil {
			logChan = c.game.LogChan()
		}

		select {
		case s := <-c.stateChanged:
			switch s {
			case stateClientEvent:
				c.sendClientState()
			case stateGameEvent:
				c.sendGameData()
			}
		case messages := <-logChan:
			c.addLogMessages(messages)
		case fn := <-c.execInRunLoop:
			fn()
		case <-c.close:
			log.Debug("terminating croupier run loop")
			return
		}
	}
}

// AddClient adds a client. A connecting player claims the open seat if there
// is one; everyone else spectates.
// This method must return quickly.
func (c *Croupier) AddClient(client *Client) {
	c.lock.Lock()
	client.croupier = c
	c.clients[client] = true
	c.lock.Unlock()

	c.execInRunLoop <- func() {
		c.claimSeat(client)
		c.sendClientState()

		if len(c.logMessages) > 0 {
			client.Send(&protocol.Response{
				Key:  "logs",
				Data: c.logMessages,
			})
		}

		if c.game != nil {
			client.Send(&protocol.Response{
				Key:  "game",
				Data: c.game.Snapshot(client.PlayerID),
			})
		}
	}
}

// RemoveClient removes a client
// This method must return quickly.
func (c *Croupier) RemoveClient(client *Client) (lastClient bool) {
	c.lock.Lock()
	delete(c.clients, client)
	nClients := len(c.clients)
	c.lock.Unlock()

	if nClients > 0 {
		c.stateChanged <- stateClientEvent
		return false
	}

	return true
}

// EndShift is called when the croupier is no longer needed
func (c *Croupier) EndShift() {
	close(c.close)
}

// NOTE: must only be called from the run loop
func (c *Croupier) claimSeat(client *Client) {
	if c.game != nil || len(c.seats) >= 2 || client.PlayerID <= 0 {
		return
	}

	for _, seat := range c.seats {
		if seat.ID == client.PlayerID {
			return
		}
	}

	c.seats = append(c.seats, holdem.Seat{ID: client.PlayerID, Name: client.Name})
}

func (c *Croupier) isSeated(playerID int64) bool {
	for _, seat := range c.seats {
		if seat.ID == playerID {
			return true
		}
	}

	return false
}

type clientStateSeat struct {
	PlayerID    int64  `json:"playerId"`
	Name        string `json:"name"`
	IsAI        bool   `json:"isAI"`
	IsConnected bool   `json:"isConnected"`
}

// NOTE: must only be called from the run loop
func (c *Croupier) sendClientState() {
	connected := make(map[int64]bool)
	for _, client := range c.Clients() {
		connected[client.PlayerID] = true
	}

	seats := make([]*clientStateSeat, len(c.seats))
	for i, seat := range c.seats {
		seats[i] = &clientStateSeat{
			PlayerID:    seat.ID,
			Name:        seat.Name,
			IsAI:        seat.IsAI,
			IsConnected: seat.IsAI || connected[seat.ID],
		}
	}

	for _, client := range c.Clients() {
		client.Send(&protocol.Response{
			Key:  "clientState",
			Data: seats,
		})
	}
}

// NOTE: must only be called from the run loop
func (c *Croupier) sendGameData() {
	if c.game == nil {
		return
	}

	for _, client := range c.Clients() {
		client.Send(&protocol.Response{
			Key:  "game",
			Data: c.game.Snapshot(client.PlayerID),
		})
	}
}

// ReceivedMessage is called when a client sends a message to the server
func (c *Croupier) ReceivedMessage(client *Client, msg *protocol.PayloadIn) {
	switch msg.Action {
	case "startHand":
		c.execInRunLoop <- func() {
			if err := c.startHand(client); err != nil {
				client.Send(newErrorResponse(msg.Context, err))
				return
			}

			client.Send(protocol.OK(msg.Context))
			c.afterGameEvent()
		}
	case "check", "bet", "fold":
		actionType, err := holdem.ActionTypeFromString(msg.Action)
		if err != nil {
			client.Send(newErrorResponse(msg.Context, err))
			return
		}

		amount, _ := msg.AdditionalData.GetInt("amount")

		c.execInRunLoop <- func() {
			if c.game == nil {
				client.Send(newErrorResponse(msg.Context, errors.New("no hand in progress")))
				return
			}

			if err := c.game.Apply(client.PlayerID, holdem.Action{Type: actionType, Amount: amount}); err != nil {
				client.Send(newErrorResponse(msg.Context, err))
				return
			}

			client.Send(protocol.OK(msg.Context))
			c.afterGameEvent()
		}
	case "state":
		c.execInRunLoop <- func() {
			if c.game == nil {
				client.Send(newErrorResponse(msg.Context, errors.New("no hand in progress")))
				return
			}

			client.Send(&protocol.Response{
				Key:     "game",
				Data:    c.game.Snapshot(client.PlayerID),
				Context: msg.Context,
			})
		}
	default:
		logrus.WithField("msg", msg).Warn("unknown message")
		client.Send(newErrorResponse(msg.Context, fmt.Errorf("unknown action: %s", msg.Action)))
	}
}

// NOTE: must only be called from the run loop
func (c *Croupier) startHand(client *Client) error {
	if !c.isSeated(client.PlayerID) {
		return errors.New("only seated players may start a hand")
	}

	if c.game == nil {
		if len(c.seats) < 2 {
			return errors.New("waiting for an opponent")
		}

		game, err := holdem.NewGame(c.seats, c.options)
		if err != nil {
			return err
		}

		c.game = game
		c.openSession()
	}

	if c.game.Phase() == holdem.PhaseShowdown {
		c.game.AdvancePhase()
	}

	return c.game.StartHand()
}

// afterGameEvent runs after every successful game mutation: it bumps the CPU
// turn generation, broadcasts the new state, settles a finished hand, and
// schedules the CPU's next decision.
// NOTE: must only be called from the run loop
func (c *Croupier) afterGameEvent() {
	c.generation++
	c.stateChanged <- stateGameEvent

	if c.game.Phase() == holdem.PhaseShowdown && c.game.Result() != nil {
		c.settle()
	}

	c.maybeScheduleCPUTurn()
}

// maybeScheduleCPUTurn schedules a CPU decision after the configured thinking
// delay. The decision is discarded if the match state moved on before the
// timer fired.
// NOTE: must only be called from the run loop
func (c *Croupier) maybeScheduleCPUTurn() {
	if c.game == nil {
		return
	}

	player := c.game.ActivePlayer()
	if player == nil || !player.IsAI() {
		return
	}

	generation := c.generation
	playerID := player.ID()

	time.AfterFunc(c.botDelay, func() {
		c.execInRunLoop <- func() {
			if c.game == nil || c.generation != generation {
				return
			}

			action := c.policy.Decide(c.game.Snapshot(playerID), playerID)
			if err := c.game.Apply(playerID, action); err != nil {
				logrus.WithError(err).WithFields(logrus.Fields{
					"uuid":   c.uuid,
					"action": action.String(),
				}).Error("could not apply CPU action")
				return
			}

			c.afterGameEvent()
		}
	})
}

// NOTE: must only be called from the run loop
func (c *Croupier) openSession() {
	if c.sessionOpen {
		return
	}

	c.sessionOpen = true

	participants := make([]settlement.Participant, 0, len(c.seats))
	for _, seat := range c.seats {
		participants = append(participants, settlement.Participant{
			PlayerID: seat.ID,
			Name:     seat.Name,
			BuyIn:    c.options.StartingChips,
		})
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), settleTimeout)
		defer cancel()

		if err := c.settler.OpenSession(ctx, c.uuid, participants); err != nil {
			logrus.WithError(err).WithField("uuid", c.uuid).Warn("could not open settlement session")
		}
	}()
}

// settle reports the post-hand chip counts. Failures are warnings only; they
// never block or roll back the match.
// NOTE: must only be called from the run loop
func (c *Croupier) settle() {
	allocations := make([]settlement.Allocation, 0, len(c.game.Players()))
	for _, p := range c.game.Players() {
		allocations = append(allocations, settlement.Allocation{
			PlayerID: p.ID(),
			Chips:    p.Chips(),
		})
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), settleTimeout)
		defer cancel()

		if err := c.settler.Settle(ctx, c.uuid, allocations); err != nil {
			logrus.WithError(err).WithField("uuid", c.uuid).Warn("could not settle hand")
		}
	}()
}
