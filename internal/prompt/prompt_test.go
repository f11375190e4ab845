package prompt

import (
	"testing"

	"github.com/amp-labs/amp-sortedlist/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderChoicesParse(t *testing.T) {
	t.Parallel()

	for _, choice := range orderChoices {
		if choice == string(config.OrderCollate) {
			_, err := config.ParseOrder(choice + ":en")
			require.NoError(t, err)

			continue
		}

		_, err := config.ParseOrder(choice)
		require.NoError(t, err, choice)
	}
}

func TestSearcher(t *testing.T) {
	t.Parallel()

	search := searcher(orderChoices)

	assert.True(t, search("na", 1))
	assert.True(t, search("NU", 2))
	assert.False(t, search("na", 0))
	assert.False(t, search("", 0))
}

func TestValidateLanguage(t *testing.T) {
	t.Parallel()

	require.NoError(t, validateLanguage("de"))
	require.NoError(t, validateLanguage(" sv-SE "))
	require.ErrorIs(t, validateLanguage("  "), errEmpty)
	require.Error(t, validateLanguage("not a tag"))
}
