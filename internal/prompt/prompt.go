// Package prompt asks the user for settings the sortedlist command was not
// given, when it runs interactively.
package prompt

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/amp-labs/amp-sortedlist/internal/config"
	"github.com/manifoldco/promptui"
	"golang.org/x/text/language"
)

var errEmpty = errors.New("you must enter something")

var orderChoices = []string{ //nolint:gochecknoglobals
	string(config.OrderLexical),
	string(config.OrderNatural),
	string(config.OrderNumeric),
	string(config.OrderCollate),
}

// SelectOrder asks which ordering to sort by and returns it in the form
// config.ParseOrder accepts. Picking collate asks for a language as well.
func SelectOrder() (string, error) {
	sel := &promptui.Select{
		Label:    "Sort order",
		Items:    orderChoices,
		Searcher: searcher(orderChoices),
		Stdin:    os.Stdin,
		Stdout:   os.Stdout,
	}

	_, value, err := sel.Run()
	if err != nil {
		return "", err
	}

	if value != string(config.OrderCollate) {
		return value, nil
	}

	prompt := promptui.Prompt{
		Label:    "Language (BCP 47)",
		Default:  "en",
		Validate: validateLanguage,
		Stdin:    os.Stdin,
		Stdout:   os.Stdout,
	}

	tag, err := prompt.Run()
	if err != nil {
		return "", err
	}

	return value + ":" + strings.TrimSpace(tag), nil
}

// Confirm asks a yes/no question. Answering no is not an error.
func Confirm(label string) (bool, error) {
	prompt := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
		Stdin:     os.Stdin,
		Stdout:    os.Stdout,
	}

	if _, err := prompt.Run(); err != nil {
		if errors.Is(err, promptui.ErrAbort) {
			return false, nil
		}

		return false, err
	}

	return true, nil
}

func searcher(items []string) func(string, int) bool {
	return func(input string, index int) bool {
		if len(input) == 0 {
			return false
		}

		return strings.HasPrefix(items[index], strings.ToLower(input))
	}
}

func validateLanguage(input string) error {
	input = strings.TrimSpace(input)
	if len(input) == 0 {
		return errEmpty
	}

	if _, err := language.Parse(input); err != nil {
		return fmt.Errorf("invalid language: %w", err)
	}

	return nil
}
