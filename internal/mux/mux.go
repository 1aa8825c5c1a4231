package mux

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	gmux "github.com/gorilla/mux"

	"headsupholdem-server/internal/config"
	"headsupholdem-server/internal/jwt"
	"headsupholdem-server/pkg/room"
)

type ctxKey int

const (
	ctxPlayerKey ctxKey = iota
	ctxCroupierKey
)

// Mux handles HTTP requests
type Mux struct {
	*gmux.Router
	version string
	lobby   *room.Lobby
	players *playerRegistry

	// store for testing purposes
	authRouter *gmux.Router
}

// NewMux returns a new HTTP mux
func NewMux(version string) *Mux {
	lobby := room.NewLobby(nil, time.Millisecond*time.Duration(config.Instance().Game.BotDelayMS))
	lobby.StartShift()

	this := &Mux{
		Router:  gmux.NewRouter(),
		version: version,
		lobby:   lobby,
		players: newPlayerRegistry(),
	}

	this.authRouter = this.Router.NewRoute().Subrouter()
	this.authRouter.Use(this.authMiddleware)

	// unauthorized endpoints
	{
		r := this.Router
		r.Methods(http.MethodGet).Path("/health").Handler(this.getHealth())
		r.Methods(http.MethodPost).Path("/player").Handler(this.postPlayer())
	}

	// requires bearer authorization
	{
		r := this.authRouter

		r.Methods(http.MethodPost).Path("/match").Handler(this.postMatch())

		mr := r.PathPrefix("/match/{uuid:(?i)[a-f0-9]{8}(?:-[a-f0-9]{4}){3}-[a-f0-9]{12}}").Subrouter()
		mr.Use(this.matchMiddleware)

		mr.Methods(http.MethodGet).Path("").Handler(this.getMatchUUID())
		mr.Methods(http.MethodGet).Path("/ws").Handler(this.getMatchUUIDWS())
	}

	return this
}

func (m *Mux) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.FormValue("access_token")
		if token == "" {
			authHeader := strings.Split(r.Header.Get("Authorization"), " ")
			if len(authHeader) != 2 || strings.ToLower(authHeader[0]) != "bearer" {
				writeJSONError(w, http.StatusUnauthorized, nil)
				return
			}

			token = authHeader[1]
		}

		id, err := jwt.ValidPlayerID(token)
		if err != nil {
			writeJSONError(w, http.StatusUnauthorized, nil)
			return
		}

		player, err := m.players.get(id)
		if err != nil {
			writeJSONError(w, http.StatusUnauthorized, nil)
			return
		}

		newCtx := context.WithValue(r.Context(), ctxPlayerKey, player)
		w.Header().Set("HeadsUpHoldem-PlayerID", strconv.FormatInt(player.ID, 10))
		next.ServeHTTP(w, r.WithContext(newCtx))
	})
}

// matchMiddleware requires authMiddleware to execute first
func (m *Mux) matchMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		croupier, err := m.lobby.Croupier(gmux.Vars(r)["uuid"])
		if err != nil {
			writeJSONError(w, http.StatusNotFound, nil)
			return
		}

		newCtx := context.WithValue(r.Context(), ctxCroupierKey, croupier)
		next.ServeHTTP(w, r.WithContext(newCtx))
	})
}
