package main

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-ddd-event-management/internal/domain/entity"
)

func TestHandle(t *testing.T) {
	logger, hook := test.NewNullLogger()

	require.NoError(t, handle([]byte(`{"type":"event.created","event_id":1,"event":{"id":1,"name":"Launch","date":"2025-01-01","location":"HQ","description":null},"occurred_at":"2025-01-01T00:00:00Z"}`), logger))
	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.InfoLevel, entry.Level)
	assert.Equal(t, entity.EventCreated, entry.Data["type"])
	assert.Equal(t, "Launch", entry.Data["name"])

	require.NoError(t, handle([]byte(`{"type":"event.deleted","event_id":1,"event":null,"occurred_at":"2025-01-01T00:00:00Z"}`), logger))
	assert.Equal(t, int64(1), hook.LastEntry().Data["event_id"])
	assert.Len(t, hook.AllEntries(), 2)
}

func TestHandle_Rejects(t *testing.T) {
	logger, hook := test.NewNullLogger()

	for _, body := range []string{
		`not json`,
		`{"type":"event.renamed","event_id":1}`,
		`{"type":"event.updated","event_id":1,"event":null}`,
	} {
		assert.Error(t, handle([]byte(body), logger), body)
	}
	assert.Empty(t, hook.AllEntries())
}
