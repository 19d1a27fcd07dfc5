package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

// promptPassword asks for the command api password interactively. Only
// called when stdin is a terminal.
func promptPassword(command *cobra.Command, username string) (string, error) {
	var password string
	field := huh.NewInput().
		Title(fmt.Sprintf("Password for %s", username)).
		Prompt("> ").
		EchoMode(huh.EchoModePassword).
		Value(&password).
		Validate(func(input string) error {
			if strings.TrimSpace(input) == "" {
				return errors.New("password required")
			}
			return nil
		})

	form := huh.NewForm(huh.NewGroup(field)).
		WithShowHelp(false).
		WithInput(command.InOrStdin()).
		WithOutput(command.ErrOrStderr())
	if err := form.Run(); err != nil {
		return "", err
	}
	return password, nil
}
