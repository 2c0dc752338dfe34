package telemetry

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStart_Disabled(t *testing.T) {
	agent, err := Start(false, "", "")
	require.NoError(t, err)
	assert.False(t, agent.Enabled())

	txn := agent.StartTransaction("render")
	assert.Nil(t, txn)

	// everything must be safe to call without an agent
	seg := txn.StartSegment("doc.yaml")
	seg.End()
	RecordDocument(txn, "doc.yaml", 2, errors.New("failed"))
	txn.NewGoroutine().End()
	txn.End()
	agent.Shutdown(time.Second)

	var nilAgent *Agent
	assert.False(t, nilAgent.Enabled())
	assert.Nil(t, nilAgent.StartTransaction("render"))
	nilAgent.Shutdown(time.Second)
}

func TestStart_InvalidConfig(t *testing.T) {
	_, err := Start(true, "pyexpr", "too-short")
	assert.Error(t, err)
}
