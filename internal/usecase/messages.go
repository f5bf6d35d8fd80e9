package usecase

import (
	"fmt"

	"github.com/rocketscienceinc/connectfour-backend/internal/entity"
)

const (
	msgEnterNickname    = "enter nickname:"
	msgMatchmaking      = "matchmaking"
	msgColumnPrompt     = "which column do you want to place (0-6)"
	msgInvalidPlacement = "invalid placement"
	msgInvalidInput     = "invalid input"
	msgPeerDisconnected = "peer disconnected"
	msgDraw             = "draw!"
)

func msgMatchedAgainst(nickname string) string {
	return "matched against: " + nickname
}

func msgYouAre(player entity.Player) string {
	return "you are player:" + player.String()
}

func msgPlacement(player entity.Player, column int) string {
	return fmt.Sprintf("player:%s placement:%d", player, column)
}

func msgWinner(player entity.Player) string {
	return "winner! player:" + player.String()
}
