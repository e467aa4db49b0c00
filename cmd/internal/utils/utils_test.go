package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sanitizeTarget struct {
	Name     string
	Nickname *string
	Missing  *string
	Tags     []string
	Count    int
	hidden   string
}

func TestSanitize(t *testing.T) {
	nickname := "  ana "
	target := &sanitizeTarget{
		Name:     "  Ana\n",
		Nickname: &nickname,
		Tags:     []string{" a ", "b "},
		Count:    3,
		hidden:   " keep ",
	}

	Sanitize(target)

	assert.Equal(t, "Ana", target.Name)
	assert.Equal(t, "ana", *target.Nickname)
	assert.Nil(t, target.Missing)
	assert.Equal(t, []string{"a", "b"}, target.Tags)
	assert.Equal(t, 3, target.Count)
	assert.Equal(t, " keep ", target.hidden)
}

func TestSanitizePanicsOnNonPointer(t *testing.T) {
	assert.Panics(t, func() { Sanitize(sanitizeTarget{}) })
}

func TestFormatEpoch(t *testing.T) {
	assert.Equal(t, "2023-11-14T22:13:20.000Z", FormatEpoch(1_700_000_000_000))
	assert.Equal(t, "2023-11-14T22:13:20.001Z", FormatEpoch(1_700_000_000_001))
}
