package ui

import (
	"strings"

	"github.com/sahilm/fuzzy"
)

// SlashCommand is an entry in the command palette shown when the input
// starts with "/".
type SlashCommand struct {
	Name        string
	Description string
}

var slashCommands = []SlashCommand{
	{"/help", "Show available commands"},
	{"/clear", "Clear the conversation"},
	{"/copy", "Copy the last reply to the clipboard"},
	{"/settings", "Show your shop settings"},
	{"/dashboard", "Show your business summary"},
	{"/sessions", "List saved conversations"},
	{"/search", "Search past conversations"},
	{"/new", "Start a new conversation"},
	{"/quit", "Exit"},
}

// FilterCommands fuzzy-matches the typed prefix against the palette. An
// empty query returns every command.
func FilterCommands(query string) []SlashCommand {
	query = strings.TrimPrefix(query, "/")
	if query == "" {
		return slashCommands
	}

	targets := make([]string, len(slashCommands))
	for i, c := range slashCommands {
		targets[i] = strings.TrimPrefix(c.Name, "/")
	}

	matches := fuzzy.Find(query, targets)
	result := make([]SlashCommand, len(matches))
	for i, match := range matches {
		result[i] = slashCommands[match.Index]
	}
	return result
}
