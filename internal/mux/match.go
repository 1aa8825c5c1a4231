package mux

import (
	"net/http"

	"headsupholdem-server/internal/config"
	"headsupholdem-server/pkg/holdem"
	"headsupholdem-server/pkg/room"
)

type postMatchPayload struct {
	// SeatCPU fills the second seat with the CPU policy instead of waiting
	// for another player
	SeatCPU bool `json:"seatCPU"`
}

type matchResponse struct {
	UUID string `json:"uuid"`
}

func gameOptions() holdem.Options {
	game := config.Instance().Game
	return holdem.Options{
		StartingChips: game.StartingChips,
		SmallBlind:    game.SmallBlind,
		BigBlind:      game.BigBlind,
		BurnCard:      game.BurnCard,
		Rebuy:         game.Rebuy,
	}
}

func (m *Mux) postMatch() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload postMatchPayload
		if !decodeRequest(w, r, &payload) {
			return
		}

		player := r.Context().Value(ctxPlayerKey).(*Player)

		matchUUID, err := m.lobby.CreateMatch(player.ID, player.DisplayName, payload.SeatCPU, gameOptions())
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err)
			return
		}

		writeJSON(w, http.StatusCreated, matchResponse{UUID: matchUUID})
	}
}

func (m *Mux) getMatchUUID() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		croupier := r.Context().Value(ctxCroupierKey).(*room.Croupier)
		writeJSON(w, http.StatusOK, matchResponse{UUID: croupier.UUID()})
	}
}
