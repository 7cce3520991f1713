package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBanner(t *testing.T) {
	t.Parallel()

	t.Run("centers text", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "╒════╕\n│ hi │\n└────┘", Banner("hi", 6, AlignCenter))
	})

	t.Run("left and right alignment", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "╒═════╕\n│hi   │\n└─────┘", Banner("hi", 7, AlignLeft))
		assert.Equal(t, "╒═════╕\n│   hi│\n└─────┘", Banner("hi", 7, AlignRight))
	})

	t.Run("one row per line", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "╒══╕\n│ab│\n│cd│\n└──┘", Banner("ab\r\ncd", 4, AlignLeft))
	})

	t.Run("long lines are truncated", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "╒════╕\n│abc…│\n└────┘", Banner("abcdefgh", 6, AlignLeft))
		assert.Equal(t, "╒═══╕\n│éè…│\n└───┘", Banner("éèêë", 5, AlignCenter))
	})

	t.Run("invalid width or alignment", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, Banner("hi", 0, AlignLeft))
		assert.Empty(t, Banner("hi", 6, 42))
	})
}

func TestSummary(t *testing.T) {
	t.Parallel()

	t.Run("labels left and values right", func(t *testing.T) {
		t.Parallel()

		got := Summary("set", []Field{{Label: "size", Value: "3"}, {Label: "order", Value: "semver"}}, 16)
		assert.Equal(t, strings.Join([]string{
			"╒══════════════╕",
			"│     set      │",
			"├──────────────┤",
			"│size         3│",
			"│order   semver│",
			"└──────────────┘",
		}, "\n"), got)
	})

	t.Run("no rule without fields", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "╒══╕\n│ok│\n└──┘", Summary("ok", nil, 4))
	})

	t.Run("values win over labels", func(t *testing.T) {
		t.Parallel()

		got := Summary("t", []Field{{Label: "label", Value: "1"}, {Label: "x", Value: "long value"}}, 8)
		assert.Equal(t, "╒══════╕\n│  t   │\n├──────┤\n│lab… 1│\n│long …│\n└──────┘", got)
	})
}

func TestSuppressBanners(t *testing.T) { //nolint:paralleltest
	SuppressBanners(true)
	defer SuppressBanners(false)

	assert.Equal(t, "plain\n", Banner("plain", 20, AlignCenter))
	assert.Equal(t, "set\nsize: 3\n", Summary("set", []Field{{Label: "size", Value: "3"}}, 20))
}

func TestPickedInOrder(t *testing.T) {
	t.Parallel()

	choices := []string{"pear", "apple", "fig", "apple"}
	picked := flatsetOf("fig", "pear")

	assert.Equal(t, []string{"pear", "fig"}, pickedInOrder(choices, picked))
	assert.Nil(t, pickedInOrder(choices, flatsetOf()))
}
