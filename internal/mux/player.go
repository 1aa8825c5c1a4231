package mux

import (
	"errors"
	"net/http"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"headsupholdem-server/internal/jwt"
)

const maxDisplayNameLength = 40

// Player is a registered player identity. Identities live for the lifetime of
// the process; there is no account store behind them.
type Player struct {
	ID          int64  `json:"id"`
	DisplayName string `json:"displayName"`
}

var errPlayerNotRegistered = errors.New("player is not registered")

type playerRegistry struct {
	lock   sync.RWMutex
	nextID int64
	byID   map[int64]*Player
}

func newPlayerRegistry() *playerRegistry {
	return &playerRegistry{
		byID: make(map[int64]*Player),
	}
}

func (p *playerRegistry) create(displayName string) *Player {
	p.lock.Lock()
	defer p.lock.Unlock()

	p.nextID++
	player := &Player{
		ID:          p.nextID,
		DisplayName: displayName,
	}

	p.byID[player.ID] = player
	return player
}

func (p *playerRegistry) get(id int64) (*Player, error) {
	p.lock.RLock()
	defer p.lock.RUnlock()

	player, ok := p.byID[id]
	if !ok {
		return nil, errPlayerNotRegistered
	}

	return player, nil
}

type postPlayerPayload struct {
	DisplayName string `json:"displayName"`
}

type postPlayerResponse struct {
	Player *Player `json:"player"`
	JWT    string  `json:"jwt"`
}

func (m *Mux) postPlayer() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload postPlayerPayload
		if !decodeRequest(w, r, &payload) {
			return
		}

		displayName := strings.TrimSpace(payload.DisplayName)
		if displayName == "" {
			writeJSONError(w, http.StatusBadRequest, errors.New("display name is required"))
			return
		}

		if len(displayName) > maxDisplayNameLength {
			writeJSONError(w, http.StatusBadRequest, errors.New("display name is too long"))
			return
		}

		player := m.players.create(displayName)

		signedJWT, err := jwt.Sign(player.ID)
		if err != nil {
			logrus.WithError(err).Error("could not sign JWT")
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		writeJSON(w, http.StatusCreated, postPlayerResponse{
			Player: player,
			JWT:    signedJWT,
		})
	}
}
