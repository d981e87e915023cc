package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Carmen-Shannon/oxy-hands/common"
)

func TestSetButtonQueuesEdgesOnce(t *testing.T) {
	m := NewManager()
	var got []common.ButtonState
	m.Subscribe(common.HandLeft, common.ButtonGrip, func(s common.ButtonState) {
		got = append(got, s)
	})

	m.SetButton(common.HandLeft, common.ButtonGrip, common.ButtonDown)
	m.SetButton(common.HandLeft, common.ButtonGrip, common.ButtonDown)
	m.SetButton(common.HandLeft, common.ButtonGrip, common.ButtonUp)
	m.SetButton(common.HandLeft, common.ButtonGrip, common.ButtonUp)
	assert.Equal(t, 2, m.Pending())
	assert.Empty(t, got, "edges are only delivered by Dispatch")

	assert.Equal(t, 2, m.Dispatch())
	assert.Equal(t, []common.ButtonState{common.ButtonDown, common.ButtonUp}, got)
	assert.Equal(t, 0, m.Dispatch())
	assert.Len(t, got, 2)
}

func TestEdgesAreRoutedByHandAndButton(t *testing.T) {
	m := NewManager()
	var left, rightTrigger int
	m.Subscribe(common.HandLeft, common.ButtonGrip, func(common.ButtonState) { left++ })
	m.Subscribe(common.HandRight, common.ButtonTrigger, func(common.ButtonState) { rightTrigger++ })

	m.SetButton(common.HandRight, common.ButtonGrip, common.ButtonDown)
	m.SetButton(common.HandRight, common.ButtonTrigger, common.ButtonDown)
	m.Dispatch()

	assert.Equal(t, 0, left)
	assert.Equal(t, 1, rightTrigger)
	assert.Equal(t, common.ButtonDown, m.Button(common.HandRight, common.ButtonGrip))
	assert.Equal(t, common.ButtonUp, m.Button(common.HandLeft, common.ButtonGrip))
}

func TestUnsubscribeDuringDispatch(t *testing.T) {
	m := NewManager()
	var second int
	var unsubSecond func()
	m.Subscribe(common.HandLeft, common.ButtonGrip, func(common.ButtonState) {
		unsubSecond()
	})
	unsubSecond = m.Subscribe(common.HandLeft, common.ButtonGrip, func(common.ButtonState) {
		second++
	})

	m.SetButton(common.HandLeft, common.ButtonGrip, common.ButtonDown)
	m.SetButton(common.HandLeft, common.ButtonGrip, common.ButtonUp)
	m.Dispatch()
	assert.Equal(t, 0, second)

	// a second call is harmless
	unsubSecond()
}

func TestEdgesRecordedByListenersWaitForNextDispatch(t *testing.T) {
	m := NewManager()
	var triggers int
	m.Subscribe(common.HandLeft, common.ButtonGrip, func(common.ButtonState) {
		m.SetButton(common.HandLeft, common.ButtonTrigger, common.ButtonDown)
	})
	m.Subscribe(common.HandLeft, common.ButtonTrigger, func(common.ButtonState) { triggers++ })

	m.SetButton(common.HandLeft, common.ButtonGrip, common.ButtonDown)
	assert.Equal(t, 1, m.Dispatch())
	assert.Equal(t, 0, triggers)
	assert.Equal(t, 1, m.Pending())
	m.Dispatch()
	assert.Equal(t, 1, triggers)
}

func TestListenerPanicIsContained(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	m := NewManager(WithLogger(zap.New(core)))
	var after int
	m.Subscribe(common.HandRight, common.ButtonGrip, func(common.ButtonState) { panic("boom") })
	m.Subscribe(common.HandRight, common.ButtonGrip, func(common.ButtonState) { after++ })

	m.SetButton(common.HandRight, common.ButtonGrip, common.ButtonDown)
	require.NotPanics(t, func() { m.Dispatch() })
	assert.Equal(t, 1, after)
	require.Equal(t, 1, logs.FilterMessage("input listener failed").Len())
	assert.Equal(t, "right", logs.All()[0].ContextMap()["hand"])
}

func TestFingerCurls(t *testing.T) {
	m := NewManager()
	m.SetFingerCurl(common.HandLeft, common.FingerIndex, 1.5)
	m.SetFingerCurl(common.HandLeft, common.FingerRing, -1)
	m.SetFingerCurl(common.HandLeft, common.FingerMiddle, 0.25)
	m.SetFingerCurl(common.HandLeft, common.Finger(9), 1)

	assert.Equal(t, float32(1), m.FingerCurl(common.HandLeft, common.FingerIndex))
	assert.Equal(t, float32(0), m.FingerCurl(common.HandLeft, common.FingerRing))
	assert.Equal(t, [common.FingerCount]float32{0, 1, 0.25, 0, 0}, m.FingerCurls(common.HandLeft))
	assert.Equal(t, [common.FingerCount]float32{}, m.FingerCurls(common.HandRight))
	assert.Equal(t, float32(0), m.FingerCurl(common.Handedness(7), common.FingerIndex))
}
