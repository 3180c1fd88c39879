package command

import "strings"

// ParseResult holds the parsed command token and arguments from one chat
// message.
type ParseResult struct {
	// Command is the first word of the input, lowercased.
	Command string
	// Args are the remaining words after the command.
	Args []string
	// RawArgs is the trimmed text after the command, preserving interior
	// spacing for multi-word player and game names.
	RawArgs string
}

// Parse splits a chat message into a command token and arguments.
//
// Postcondition: Returns a ParseResult; Command is empty for blank input.
func Parse(text string) ParseResult {
	text = strings.TrimSpace(text)
	if text == "" {
		return ParseResult{}
	}

	cmd, rest, found := strings.Cut(text, " ")
	if !found {
		return ParseResult{Command: strings.ToLower(cmd)}
	}

	rest = strings.TrimSpace(rest)
	var args []string
	if rest != "" {
		args = strings.Fields(rest)
	}

	return ParseResult{
		Command: strings.ToLower(cmd),
		Args:    args,
		RawArgs: rest,
	}
}
