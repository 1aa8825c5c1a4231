// Command local plays a heads-up match against the CPU policy in the
// terminal, without running a server.
package main

import (
	"flag"
	"strconv"
	"strings"
	"time"

	"github.com/pterm/pterm"

	"headsupholdem-server/internal/util"
	"headsupholdem-server/pkg/holdem"
	"headsupholdem-server/pkg/holdem/bot"
	"headsupholdem-server/pkg/protocol"
)

const humanID int64 = 1
const cpuID int64 = 2

var chips = flag.Int("chips", 1000, "starting chips")
var smallBlind = flag.Int("small-blind", 10, "the small blind")
var bigBlind = flag.Int("big-blind", 20, "the big blind")
var thinkTime = flag.Duration("think-time", time.Second, "how long the CPU pretends to think")

func main() {
	flag.Parse()

	name, _ := pterm.DefaultInteractiveTextInput.WithDefaultText("Enter your name").WithDefaultValue("You").Show()
	pterm.Println()

	opts := holdem.Options{
		StartingChips: *chips,
		SmallBlind:    *smallBlind,
		BigBlind:      *bigBlind,
		Rebuy:         true,
	}

	seats := []holdem.Seat{
		{ID: humanID, Name: strings.TrimSpace(name)},
		{ID: cpuID, Name: util.GetRandomName(), IsAI: true},
	}

	game, err := holdem.NewGame(seats, opts)
	if err != nil {
		pterm.Error.Println(err)
		return
	}

	pterm.Info.Printfln("You are playing against %s", pterm.LightCyan(seats[1].Name))

	policy := bot.New(nil)

	for {
		if err := game.StartHand(); err != nil {
			pterm.Error.Println(err)
			return
		}

		printLogs(game)
		playHand(game, policy)
		printWinner(game)

		confirm, _ := pterm.DefaultInteractiveConfirm.
			WithDefaultText("Play another hand?").
			WithDefaultValue(true).
			Show()
		if !confirm {
			break
		}

		game.AdvancePhase()
	}

	pterm.Println("Thank you for playing...")
}

func playHand(game *holdem.Game, policy *bot.Policy) {
	for game.Phase().IsBetting() {
		player := game.ActivePlayer()
		if player == nil {
			return
		}

		if player.IsAI() {
			spinner, _ := pterm.DefaultSpinner.Start(pterm.Sprintf("%s is thinking...", pterm.LightCyan(player.Name())))
			time.Sleep(*thinkTime)

			action := policy.Decide(game.Snapshot(player.ID()), player.ID())
			if err := game.Apply(player.ID(), action); err != nil {
				spinner.Fail(err.Error())
				return
			}

			spinner.Success(pterm.Sprintf("%s decided to %s", player.Name(), action))
		} else {
			printState(game)

			action := promptAction(game)
			if err := game.Apply(humanID, action); err != nil {
				pterm.Error.Println(err)
				continue
			}
		}

		printLogs(game)
	}
}

func promptAction(game *holdem.Game) holdem.Action {
	snapshot := game.Snapshot(humanID)

	var me *holdem.PlayerSnapshot
	for _, ps := range snapshot.Players {
		if ps.ID == humanID {
			me = ps
			break
		}
	}

	toCall := snapshot.HighBet - me.RoundBet

	var options []string
	if toCall > 0 {
		if toCall > me.Chips {
			toCall = me.Chips
		}

		options = []string{pterm.Sprintf("Call %d", toCall), "Raise", "Fold"}
	} else {
		options = []string{"Check", "Bet", "Fold"}
	}

	for {
		selected, _ := pterm.DefaultInteractiveSelect.
			WithDefaultText("Select your action").
			WithOptions(options).
			Show()

		switch {
		case selected == "Check":
			return holdem.Check()
		case selected == "Fold":
			return holdem.Fold()
		case strings.HasPrefix(selected, "Call"):
			return holdem.Bet(toCall)
		default: // Bet or Raise
			amountStr, _ := pterm.DefaultInteractiveTextInput.
				WithDefaultText("Enter the amount").
				Show()

			amount, err := strconv.Atoi(strings.TrimSpace(amountStr))
			if err != nil {
				pterm.Error.Println("could not parse the amount")
				continue
			}

			if selected == "Raise" {
				amount += toCall
			}

			return holdem.Bet(amount)
		}
	}
}

func printLogs(game *holdem.Game) {
	for {
		select {
		case messages := <-game.LogChan():
			for _, msg := range messages {
				pterm.Info.Println(formatLogMessage(game, msg))
			}
		default:
			return
		}
	}
}

func formatLogMessage(game *holdem.Game, msg *protocol.LogMessage) string {
	text := msg.Message
	for _, id := range msg.PlayerIDs {
		if player := game.Player(id); player != nil {
			text = strings.Replace(text, "{}", pterm.LightCyan(player.Name()), 1)
		}
	}

	return text
}
