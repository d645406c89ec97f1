package textutil_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"docqa/internal/textutil"
)

func TestTokens(t *testing.T) {
	t.Run("Should lower-case and split on non-letters", func(t *testing.T) {
		assert.Equal(t, []string{"paris", "is", "the", "capital"},
			textutil.Tokens("Paris, IS the: capital!"))
	})
	t.Run("Should keep apostrophes inside words", func(t *testing.T) {
		assert.Equal(t, []string{"don't", "it’s"}, textutil.Tokens("Don't it’s"))
	})
	t.Run("Should handle accented letters", func(t *testing.T) {
		assert.Equal(t, []string{"café", "münchen"}, textutil.Tokens("café München"))
	})
	t.Run("Should return nothing for text without letters", func(t *testing.T) {
		assert.Empty(t, textutil.Tokens("123 456 ..."))
	})
}

func TestIsStopword(t *testing.T) {
	t.Run("Should flag function words and pass content words", func(t *testing.T) {
		assert.True(t, textutil.IsStopword("the"))
		assert.True(t, textutil.IsStopword("and"))
		assert.False(t, textutil.IsStopword("paris"))
		assert.False(t, textutil.IsStopword("rivers"))
	})
}
