package cli

import (
	"errors"
	"os"

	"github.com/manifoldco/promptui"
)

// PromptConfirm asks a yes/no question on the terminal. Answering no (or
// anything but yes) returns false without an error.
func PromptConfirm(label string) (bool, error) {
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

// PromptLine reads one line of input after showing label. An empty line is
// allowed. promptui.ErrInterrupt and promptui.ErrEOF are returned as is so
// a REPL can tell Ctrl-C and Ctrl-D apart from real failures.
func PromptLine(label string) (string, error) {
	prompt := promptui.Prompt{
		Label:  label,
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
	}

	return prompt.Run()
}
