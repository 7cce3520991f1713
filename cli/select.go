package cli

import (
	"strings"

	"github.com/amp-labs/flatset/flatset"
	"github.com/manifoldco/promptui"
)

const doneItem = "[Done]"

// MultiSelect lets the user pick any number of choices, one at a time, from
// a sorted menu. Picking "[Done]" ends the selection. The picks are returned
// in the order they appear in choices.
func MultiSelect(label string, choices ...string) ([]string, error) {
	if len(choices) == 0 {
		return nil, nil
	}

	remaining := flatset.Of(choices...)
	picked := flatset.New[string]()

	for !remaining.Empty() {
		items := append([]string{doneItem}, remaining.Entries()...)

		sel := &promptui.Select{
			Label: label,
			Items: items,
			Searcher: func(input string, index int) bool {
				return index != 0 && input != "" && strings.HasPrefix(items[index], input)
			},
		}

		idx, value, err := sel.Run()
		if err != nil {
			return nil, err
		}

		if idx == 0 {
			break
		}

		if _, err := picked.Add(value); err != nil {
			return nil, err
		}

		remaining.Remove(value)
	}

	return pickedInOrder(choices, picked), nil
}

func pickedInOrder(choices []string, picked *flatset.FlatSet[string]) []string {
	var out []string

	for _, c := range choices {
		if picked.Contains(c) {
			out = append(out, c)
		}
	}

	return out
}
