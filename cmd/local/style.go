package main

import (
	"github.com/pterm/pterm"

	"headsupholdem-server/pkg/holdem"
)

// printState renders the table from the human player's point of view
func printState(game *holdem.Game) {
	snapshot := game.Snapshot(humanID)

	var opponents []pterm.Panel
	var mainPlayer pterm.Panel
	for _, ps := range snapshot.Players {
		if ps.ID == humanID {
			mainPlayer = pterm.Panel{Data: playerBox(ps, true)}
		} else {
			opponents = append(opponents, pterm.Panel{Data: playerBox(ps, false)})
		}
	}

	board := pterm.Panel{Data: boardBox(snapshot)}

	_ = pterm.DefaultPanel.WithPanels([][]pterm.Panel{
		opponents,
		{board},
		{mainPlayer},
	}).Render()
}

func playerBox(ps *holdem.PlayerSnapshot, main bool) string {
	hpadding := 4
	if main {
		hpadding = 10
	}

	pbox := pterm.DefaultBox.WithLeftPadding(hpadding).WithRightPadding(hpadding).WithTopPadding(1).WithBottomPadding(1)

	status := pterm.LightGreen("Active")
	switch {
	case ps.Folded:
		status = pterm.LightRed("Folded")
	case ps.AllIn:
		status = pterm.LightYellow("All-In")
	}

	title := ps.Name
	if ps.IsDealer {
		title += " (button)"
	}

	hand := "🂠 🂠"
	if len(ps.Hand) > 0 {
		hand = pterm.BgGreen.Sprint(ps.Hand.String())
		if ps.HandLabel != "" {
			hand += " " + pterm.Gray(ps.HandLabel)
		}
	}

	return pbox.WithTitle(title).WithTitleTopLeft().Sprintf("%s\nBet: %d\nChips: %d\n%s", status, ps.Bet, ps.Chips, hand)
}

func boardBox(snapshot *holdem.Snapshot) string {
	board := snapshot.Community.String()
	if board == "" {
		board = "no cards yet"
	}

	return pterm.BgGreen.Sprintf("\n %s | Pot: %d | %s \n", board, snapshot.Pot, snapshot.Phase)
}

func printWinner(game *holdem.Game) {
	result := game.Result()
	if result == nil {
		return
	}

	winner := game.Player(result.WinnerID)
	if winner == nil {
		return
	}

	text := pterm.Sprintfln("%s won %d (%s)", pterm.LightCyan(winner.Name()), result.AmountWon, result.Reason)
	if result.WinningHandLabel != "" {
		text += pterm.Sprintfln("Winning hand: %s", result.WinningHandLabel)
	}

	if result.Split {
		text += pterm.Sprintfln("The pot was split")
	}

	pbox := pterm.DefaultBox.WithLeftPadding(4).WithRightPadding(4).WithTopPadding(1).WithBottomPadding(1)
	pterm.Println(pbox.WithTitle(pterm.LightGreen("|SHOWDOWN|")).WithTitleTopCenter().Sprint(text))
}
