package discord

import "github.com/bwmarrin/discordgo"

var Commands = []*discordgo.ApplicationCommand{
	{
		Name:        "alerts",
		Description: "Toggle the alerts role for yourself",
	},
}

// commandKind: set cerrado de comandos; lo que no reconocemos cae en unknown.
type commandKind int

const (
	cmdUnknown commandKind = iota
	cmdAlerts
)

func commandFor(name string) commandKind {
	switch name {
	case "alerts":
		return cmdAlerts
	default:
		return cmdUnknown
	}
}
