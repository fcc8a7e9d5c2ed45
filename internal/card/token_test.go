package card_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viktorhino/wowkards-mvp/internal/card"
)

func TestNewEditToken(t *testing.T) {
	t.Run("is 64 hex characters", func(t *testing.T) {
		token := card.NewEditToken()

		assert.Len(t, token, 64)
		assert.Regexp(t, "^[0-9a-f]+$", token)
	})

	t.Run("tokens differ across calls", func(t *testing.T) {
		assert.NotEqual(t, card.NewEditToken(), card.NewEditToken())
	})
}
