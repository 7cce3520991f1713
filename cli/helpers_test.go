package cli

import "github.com/amp-labs/flatset/flatset"

func flatsetOf(values ...string) *flatset.FlatSet[string] {
	return flatset.Of(values...)
}
