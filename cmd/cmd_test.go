package cmd

import (
	"bytes"
	"errors"
	"io"
	"testing"
	"time"

	"energy-dashboard/core/config"
	"energy-dashboard/core/period"
	"energy-dashboard/core/publisher"
	"energy-dashboard/core/publisher/mocks"
	"energy-dashboard/feature/fuel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// TestResolveRange tests explicit ranges, the rolling default and half-given flags.
func TestResolveRange(t *testing.T) {
	rng, err := resolveRange("2025-01-01", "2025-01-31", 30, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, "2025-01-01..2025-01-31", rng.String())

	rng, err = resolveRange("", "", 7, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, 7, rng.Days())
	assert.Equal(t, period.Day(time.Now(), time.UTC), rng.End)

	_, err = resolveRange("2025-01-01", "", 30, time.UTC)
	assert.Error(t, err)

	_, err = resolveRange("2025-02-01", "2025-01-01", 30, time.UTC)
	assert.Error(t, err)
}

// TestPrintReport tests the three output formats.
func TestPrintReport(t *testing.T) {
	v := map[string]float64{"total_cost": 939}
	text := func(w io.Writer) { _, _ = io.WriteString(w, "summary\n") }

	var buf bytes.Buffer
	require.NoError(t, printReport(&buf, formatText, v, text))
	assert.Equal(t, "summary\n", buf.String())

	buf.Reset()
	require.NoError(t, printReport(&buf, formatJSON, v, text))
	assert.JSONEq(t, `{"total_cost": 939}`, buf.String())

	buf.Reset()
	require.NoError(t, printReport(&buf, formatYAML, v, text))
	assert.YAMLEq(t, "total_cost: 939\n", buf.String())

	assert.Error(t, printReport(&buf, "xml", v, text))
}

func withPublisher(t *testing.T, fn func(publisher.Config) (publisher.Publisher, error)) {
	t.Helper()
	orig := newPublisher
	newPublisher = fn
	t.Cleanup(func() { newPublisher = orig })
}

// TestPublish tests that stats are published and the connection closed.
func TestPublish(t *testing.T) {
	pub := new(mocks.Publisher)
	stats := fuel.Stats{TotalLiters: 45, TotalCost: 939}
	pub.On("Publish", "fuel/stats", stats).Return(nil)
	pub.On("Close").Return()
	withPublisher(t, func(publisher.Config) (publisher.Publisher, error) { return pub, nil })

	a := &app{cfg: &config.Config{}, logger: zap.NewNop()}
	require.NoError(t, a.publish("fuel/stats", stats))
	pub.AssertExpectations(t)
}

// TestPublish_Disabled tests that --publish without a broker is a usage error.
func TestPublish_Disabled(t *testing.T) {
	a := &app{cfg: &config.Config{}, logger: zap.NewNop()}
	err := a.publish("fuel/stats", fuel.Stats{})
	assert.ErrorContains(t, err, "mqtt.enabled")
}

// TestPublish_Error tests that broker failures are wrapped with the topic.
func TestPublish_Error(t *testing.T) {
	pub := new(mocks.Publisher)
	pub.On("Publish", "solar/stats", mock.Anything).Return(errors.New("not connected"))
	pub.On("Close").Return()
	withPublisher(t, func(publisher.Config) (publisher.Publisher, error) { return pub, nil })

	a := &app{cfg: &config.Config{}, logger: zap.NewNop()}
	err := a.publish("solar/stats", map[string]float64{"total_generation_kwh": 10})
	assert.ErrorContains(t, err, "failed to publish solar/stats")
	pub.AssertCalled(t, "Close")
}
