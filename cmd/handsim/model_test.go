package main

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Carmen-Shannon/oxy-hands/common"
	"github.com/Carmen-Shannon/oxy-hands/config"
	"github.com/Carmen-Shannon/oxy-hands/engine/interaction"
)

func newTestModel(t *testing.T) model {
	t.Helper()
	cfg := config.Default()
	cfg.Pose.BlendRate = 0
	cfg.Interaction.Attach = false
	s, err := newSim(cfg, zap.NewNop())
	require.NoError(t, err)
	return newModel(s, 20*time.Millisecond)
}

func press(t *testing.T, m model, keys ...string) model {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyMsg
		if k == "tab" {
			msg = tea.KeyMsg{Type: tea.KeyTab}
		} else {
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		next, _ := m.Update(msg)
		m = next.(model)
	}
	return m
}

func frames(m model, n int) model {
	for i := 0; i < n; i++ {
		next, _ := m.Update(frameMsg(time.Now()))
		m = next.(model)
	}
	return m
}

func TestGripHoldsTheMug(t *testing.T) {
	m := newTestModel(t)
	mug := m.sim.items[0].x

	m = frames(press(t, m, "m"), 2)
	assert.Equal(t, interaction.StateHovering, mug.State())
	assert.Contains(t, m.status, "mug entered right reach")

	m = frames(press(t, m, "g", "c"), 3)
	assert.Equal(t, interaction.StateSelected, mug.State())
	g := m.sim.hand(common.HandRight).hand.Graph()
	assert.Equal(t, float32(0.6), g.FingerWeight(common.FingerThumb), "the handle limits the thumb")
	assert.Equal(t, float32(0.8), g.FingerWeight(common.FingerIndex))

	m = frames(press(t, m, "g"), 2)
	assert.Equal(t, interaction.StateHovering, mug.State())
	assert.Equal(t, float32(1), g.FingerWeight(common.FingerThumb))
	assert.NotEmpty(t, m.events)
	assert.LessOrEqual(t, len(m.events), maxEventLines)
}

func TestRemoteSwitchesToPointPose(t *testing.T) {
	m := newTestModel(t)
	m = frames(press(t, m, "r"), 2)
	m = frames(press(t, m, "g"), 2)

	g := m.sim.hand(common.HandRight).hand.Graph()
	assert.Equal(t, 1, g.PoseIndex())
	assert.Contains(t, m.View(), "holding remote")
}

func TestBallIgnoresTheRightHand(t *testing.T) {
	m := newTestModel(t)
	ball := m.sim.items[3].x

	m = frames(press(t, m, "b"), 2)
	assert.Equal(t, interaction.StateNone, ball.State())

	m = frames(press(t, m, "tab", "b"), 2)
	assert.Equal(t, common.HandLeft, m.active)
	assert.Equal(t, interaction.StateHovering, ball.State())
}

func TestCurlKeysWrap(t *testing.T) {
	m := newTestModel(t)
	in := m.sim.eng.Input()

	m = press(t, m, "2", "2")
	assert.Equal(t, float32(0.5), in.FingerCurl(common.HandRight, common.FingerIndex))
	m = press(t, m, "2", "2", "2")
	assert.Equal(t, float32(0), in.FingerCurl(common.HandRight, common.FingerIndex))
	_ = press(t, m, "c", "o")
	assert.Equal(t, float32(0), in.FingerCurl(common.HandRight, common.FingerPinky))
}

func TestQuitKey(t *testing.T) {
	m := newTestModel(t)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
