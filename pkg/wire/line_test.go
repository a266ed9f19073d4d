package wire

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLine(t *testing.T) {
	tests := []struct {
		text  string
		kind  LineKind
		key   string
		value string
	}{
		{"OK", LineSuccess, "", ""},
		{"list_OK", LineListOK, "", ""},
		{"volume: 50", LinePair, "volume", "50"},
		{"Title: a: b", LinePair, "Title", "a: b"},
		{"empty: ", LinePair, "empty", ""},
		{"0:file: a.mp3", LineText, "", ""},
		{"garbage", LineText, "", ""},
		{"OK MPD 0.23.5", LineText, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			line := ParseLine(tt.text)
			assert.Equal(t, tt.kind, line.Kind)
			assert.Equal(t, tt.key, line.Key)
			assert.Equal(t, tt.value, line.Value)
			assert.Equal(t, tt.text, line.Text)
		})
	}
}

func TestParseLineAck(t *testing.T) {
	line := ParseLine("ACK [50@2] {play} No such song")
	require.Equal(t, LineAck, line.Kind)
	require.NotNil(t, line.Ack)
	assert.Equal(t, AckNoExist, line.Ack.Code)
	assert.Equal(t, 2, line.Ack.Offset)
	assert.Equal(t, "play", line.Ack.Command)
	assert.Equal(t, "No such song", line.Ack.Message)
	assert.True(t, line.IsTerminator())
}

func TestParseLineAckLenient(t *testing.T) {
	tests := []string{
		"ACK something odd",
		"ACK [x@0] {play} bad code",
		"ACK [5@0] no braces",
		"ACK [5] {play} no offset",
	}

	for _, text := range tests {
		line := ParseLine(text)
		require.Equal(t, LineAck, line.Kind, text)
		assert.Equal(t, AckCode(0), line.Ack.Code, text)
		assert.Equal(t, text[len(AckPrefix):], line.Ack.Message, text)
	}
}

func TestAckErrorIs(t *testing.T) {
	var err error = &AckError{Code: AckPermission, Command: "add", Message: "you don't have permission"}

	assert.True(t, errors.Is(err, &AckError{Code: AckPermission}))
	assert.True(t, errors.Is(err, &AckError{}))
	assert.False(t, errors.Is(err, &AckError{Code: AckNoExist}))

	var ack *AckError
	require.True(t, errors.As(err, &ack))
	assert.Equal(t, "mpd: [4@0] {add} you don't have permission", ack.Error())
}

func TestAckCodeString(t *testing.T) {
	assert.Equal(t, "NO_EXIST", AckNoExist.String())
	assert.Equal(t, "EXIST", AckExist.String())
	assert.Equal(t, "ACK_99", AckCode(99).String())
}

func TestParseHello(t *testing.T) {
	v, ok := ParseHello("OK MPD 0.23.5")
	assert.True(t, ok)
	assert.Equal(t, "0.23.5", v)

	_, ok = ParseHello("OK")
	assert.False(t, ok)
	_, ok = ParseHello("HELLO 1")
	assert.False(t, ok)
}
