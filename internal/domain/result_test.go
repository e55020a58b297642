package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResultSuccess(t *testing.T) {
	res := OK("payload")
	assert.True(t, res.IsSuccessful())
	assert.Equal(t, "payload", res.Model())
	assert.Empty(t, res.ErrorMessage())
	assert.Equal(t, KindNone, res.Kind())
}

func TestResultFailureCarriesKindAndMessage(t *testing.T) {
	res := NotFound[int]("missing")
	assert.False(t, res.IsSuccessful())
	assert.Zero(t, res.Model())
	assert.Equal(t, "missing", res.ErrorMessage())
	assert.Equal(t, KindNotFound, res.Kind())
}

func TestResultFailureNeverHasEmptyMessage(t *testing.T) {
	res := Fail[int](KindConflict, "")
	assert.False(t, res.IsSuccessful())
	assert.NotEmpty(t, res.ErrorMessage())
}

func TestResultFailureNeverHasKindNone(t *testing.T) {
	res := Fail[int](KindNone, "boom")
	assert.Equal(t, KindInvalid, res.Kind())
}

func TestCatalogFallsBackToKey(t *testing.T) {
	c := DefaultCatalog()
	assert.Equal(t, "cinema not found", c.Get(MsgCinemaNotFound))
	assert.Equal(t, "no.such.key", c.Get(MessageKey("no.such.key")))

	c.Override(MsgCinemaNotFound, "kino nicht gefunden")
	assert.Equal(t, "kino nicht gefunden", c.Get(MsgCinemaNotFound))
}
