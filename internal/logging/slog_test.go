package logging

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErr(t *testing.T) {
	t.Run("nil error yields omitted group", func(t *testing.T) {
		attr := Err(nil)
		assert.Equal(t, slog.KindGroup, attr.Value.Kind())
		assert.Empty(t, attr.Value.Group())
	})

	t.Run("non-nil error yields string attribute", func(t *testing.T) {
		attr := Err(errors.New("boom"))
		assert.Equal(t, KeyError, attr.Key)
		assert.Equal(t, "boom", attr.Value.String())
	})
}

func TestSanitizeToken(t *testing.T) {
	assert.Equal(t, "<empty>", SanitizeToken(""))
	assert.Equal(t, "[token:6 chars]", SanitizeToken("secret"))
}

func TestAttributeConstructors(t *testing.T) {
	assert.Equal(t, KeyOperation, Operation("parse").Key)
	assert.Equal(t, "parse", Operation("parse").Value.String())
	assert.Equal(t, KeyStatus, Status(StatusSuccess).Key)
	assert.Equal(t, StatusSuccess, Status(StatusSuccess).Value.String())
}
