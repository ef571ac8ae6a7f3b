package correspondent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTelegramCorrespondentNameUniqueOnlyWhileActive(t *testing.T) {
	class, where, fields := parseIndex(t, &TelegramCorrespondent{}, "idx_telegram_correspondents_active_name")

	assert.Equal(t, "UNIQUE", class)
	assert.Equal(t, "is_active", where)
	assert.Equal(t, 1, fields)
}
