// Package interactive provides terminal user interface components
package interactive

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/AlecAivazis/survey/v2"
)

// MenuOption represents a menu item with its associated action
type MenuOption struct {
	Name        string
	Description string
	Action      func() error
}

var (
	// ErrExit is returned when the user chooses to exit
	ErrExit = errors.New("exit")
	// ErrInvalidSelection is returned when an invalid menu option is selected
	ErrInvalidSelection = errors.New("invalid selection")
	// ErrNoChoices is returned when there is nothing to pick from
	ErrNoChoices = errors.New("nothing to choose from")
)

const exitChoice = "Exit"

// ShowMainMenu displays the main menu and handles user selection
func ShowMainMenu(options []MenuOption) error {
	choices := make([]string, 0, len(options)+1)
	optionMap := make(map[string]MenuOption)

	for _, opt := range options {
		choice := fmt.Sprintf("%s - %s", opt.Name, opt.Description)
		choices = append(choices, choice)
		optionMap[choice] = opt
	}

	choices = append(choices, exitChoice)

	var selected string
	prompt := &survey.Select{
		Message: "What would you like to do?",
		Options: choices,
	}

	if err := survey.AskOne(prompt, &selected); err != nil {
		return ErrExit
	}

	if selected == exitChoice {
		return ErrExit
	}

	if option, ok := optionMap[selected]; ok {
		return option.Action()
	}

	return ErrInvalidSelection
}

// SelectFile asks the user to pick one of paths, shown by base name.
func SelectFile(message string, paths []string) (string, error) {
	if len(paths) == 0 {
		return "", ErrNoChoices
	}

	choices := make([]string, 0, len(paths))
	byChoice := make(map[string]string, len(paths))

	for _, path := range paths {
		choice := filepath.Base(path)
		if _, taken := byChoice[choice]; taken {
			choice = path
		}
		choices = append(choices, choice)
		byChoice[choice] = path
	}

	var selected string
	prompt := &survey.Select{
		Message: message,
		Options: choices,
	}

	if err := survey.AskOne(prompt, &selected); err != nil {
		return "", ErrExit
	}

	path, ok := byChoice[selected]
	if !ok {
		return "", ErrInvalidSelection
	}

	return path, nil
}

// Input asks for a free-form value.
func Input(message, defaultValue string) string {
	value := defaultValue
	prompt := &survey.Input{
		Message: message,
		Default: defaultValue,
	}
	_ = survey.AskOne(prompt, &value)
	return value
}

// PauseForEnter waits for the user to press Enter
func PauseForEnter() {
	fmt.Println("\nPress Enter to continue...")
	_, _ = fmt.Scanln()
}
