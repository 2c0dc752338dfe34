// Package telemetry reports pyexpr runs to New Relic. Every function is safe to
// call on a disabled agent, in which case nothing is recorded.
package telemetry

import (
	"fmt"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"
	log "github.com/sirupsen/logrus"
)

const connectTimeout = 5 * time.Second

// Agent wraps a New Relic application. The zero value and nil are disabled agents.
type Agent struct {
	app *newrelic.Application
}

// Start creates an agent. A disabled agent is returned when enabled is false.
func Start(enabled bool, appName, licenseKey string) (*Agent, error) {
	if !enabled {
		return &Agent{}, nil
	}

	app, err := newrelic.NewApplication(
		newrelic.ConfigAppName(appName),
		newrelic.ConfigLicense(licenseKey),
		newrelic.ConfigEnabled(true),
	)
	if err != nil {
		return nil, fmt.Errorf("error starting telemetry agent: %w", err)
	}

	if err := app.WaitForConnection(connectTimeout); err != nil {
		log.WithFields(log.Fields{"error": err}).Warn("pyexpr::telemetry::Start; agent not connected, data may be lost")
	}
	return &Agent{app: app}, nil
}

// Enabled reports whether the agent records anything.
func (a *Agent) Enabled() bool {
	return a != nil && a.app != nil
}

// StartTransaction starts a transaction for one command. The returned
// transaction is nil for disabled agents; its methods are nil safe.
func (a *Agent) StartTransaction(name string) *newrelic.Transaction {
	if !a.Enabled() {
		return nil
	}
	return a.app.StartTransaction(name)
}

// Shutdown flushes pending data.
func (a *Agent) Shutdown(timeout time.Duration) {
	if !a.Enabled() {
		return
	}
	a.app.Shutdown(timeout)
}

// RecordDocument adds the outcome of processing one document to txn.
func RecordDocument(txn *newrelic.Transaction, path string, entries int, err error) {
	if txn == nil {
		return
	}
	txn.AddAttribute("document", path)
	txn.AddAttribute("entries", entries)
	if err != nil {
		txn.NoticeError(err)
	}
}
