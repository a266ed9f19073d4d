package mpd

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpdlink/mpd-go/pkg/mpdtest"
	"github.com/mpdlink/mpd-go/pkg/response"
	"github.com/mpdlink/mpd-go/pkg/transport"
	"github.com/mpdlink/mpd-go/pkg/wire"
)

func dialSession(t *testing.T, srv *mpdtest.Server) *Session {
	t.Helper()
	s, err := DialSession(context.Background(), srv.Addr(), transport.ClientConfig{ReadTimeout: 5 * time.Second}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSessionExecute(t *testing.T) {
	srv := mpdtest.NewServer(t, mpdtest.WithVersion("0.23.5"))
	srv.Expect("status").Reply("volume: 50", "state: play", "Repeat: 0").OK()
	srv.Expect(`play "3"`).OK()
	srv.Expect(`find "artist" "Nina \"Q\" Simone"`).
		Reply("file: a.flac", "Title: A", "file: b.flac", "Title: B").OK()

	s := dialSession(t, srv)
	ctx := context.Background()
	assert.Equal(t, "0.23.5", s.Version())

	v, err := s.Execute(ctx, "status")
	require.NoError(t, err)
	assert.Equal(t, response.KindObject, v.Kind)
	assert.Equal(t, "50", v.Record.Value("volume"))
	assert.Equal(t, "0", v.Record.Value("repeat"))

	_, err = s.Execute(ctx, "play", 3)
	require.NoError(t, err)

	v, err = s.Execute(ctx, "find", "artist", `Nina "Q" Simone`)
	require.NoError(t, err)
	require.Len(t, v.Records, 2)
	assert.Equal(t, "b.flac", v.Records[1].Value("file"))
	assert.Equal(t, "B", v.Records[1].Value("title"))
}

func TestSessionRejectsLineBreakArgument(t *testing.T) {
	srv := mpdtest.NewServer(t)
	srv.Expect("ping").OK()

	s := dialSession(t, srv)
	ctx := context.Background()

	_, err := s.Execute(ctx, "find", "a\nclear")
	assert.ErrorIs(t, err, wire.ErrBadArgument)
	assert.False(t, IsFatal(err))
	assert.NoError(t, s.Err())

	_, err = s.Execute(ctx, "ping")
	require.NoError(t, err)
	assert.Equal(t, []string{"ping"}, srv.Received())
}

func TestSessionAckKeepsSessionUsable(t *testing.T) {
	srv := mpdtest.NewServer(t)
	srv.Expect(`play "99"`).Ack(wire.AckArgument, 0, "play", "Bad song index")
	srv.Expect("ping").OK()

	s := dialSession(t, srv)
	ctx := context.Background()

	_, err := s.Execute(ctx, "play", 99)
	ack, ok := AsCommandError(err)
	require.True(t, ok, "got %v", err)
	assert.Equal(t, wire.AckArgument, ack.Code)
	assert.Equal(t, "play", ack.Command)
	assert.Equal(t, "Bad song index", ack.Message)
	assert.False(t, IsFatal(err))

	_, err = s.Execute(ctx, "ping")
	require.NoError(t, err)
	assert.NoError(t, s.Err())
}

func TestSessionLocalErrors(t *testing.T) {
	srv := mpdtest.NewServer(t)
	s := dialSession(t, srv)
	ctx := context.Background()

	tests := []struct {
		name string
		cmd  string
		args []any
		want error
	}{
		{"unknown", "frobnicate", nil, ErrUnknownCommand},
		{"too many args", "status", []any{"x"}, ErrBadArguments},
		{"too few args", "seek", []any{1}, ErrBadArguments},
		{"reserved", "noidle", nil, ErrReserved},
		{"binary", "albumart", []any{"x"}, ErrBadArguments},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.Send(ctx, tt.cmd, tt.args...)
			assert.ErrorIs(t, err, tt.want)
		})
	}
	assert.Empty(t, srv.Received())
}

func TestSessionSendFetch(t *testing.T) {
	srv := mpdtest.NewServer(t)
	srv.Expect("currentsong").Reply("file: x.mp3").OK()

	s := dialSession(t, srv)
	ctx := context.Background()

	_, err := s.Fetch(ctx)
	assert.ErrorIs(t, err, ErrPending)

	require.NoError(t, s.Send(ctx, "currentsong"))
	assert.ErrorIs(t, s.Send(ctx, "status"), ErrPending)
	_, err = s.BeginCommandList(ctx)
	assert.ErrorIs(t, err, ErrPending)

	v, err := s.Fetch(ctx)
	require.NoError(t, err)
	assert.Equal(t, "x.mp3", v.Record.Value("file"))
}

func TestSessionIterate(t *testing.T) {
	srv := mpdtest.NewServer(t)
	srv.Expect("listallinfo").
		Reply("directory: music", "file: music/a.mp3", "Title: A", "file: music/b.mp3").OK()
	srv.Expect("ping").OK()

	s := dialSession(t, srv)
	ctx := context.Background()

	it, err := s.Iterate(ctx, "listallinfo")
	require.NoError(t, err)

	require.True(t, it.Next())
	assert.Equal(t, "music", it.Record().Value("directory"))

	assert.ErrorIs(t, s.Send(ctx, "ping"), ErrIterating)
	_, err = s.Fetch(ctx)
	assert.ErrorIs(t, err, ErrIterating)

	var files []string
	files = append(files, it.Record().Value("file"))
	for it.Next() {
		files = append(files, it.Record().Value("file"))
	}
	require.NoError(t, it.Err())
	assert.Equal(t, []string{"", "music/a.mp3", "music/b.mp3"}, files)
	assert.False(t, it.Next())

	_, err = s.Execute(ctx, "ping")
	require.NoError(t, err)
}

func TestSessionIterateCloseDrains(t *testing.T) {
	srv := mpdtest.NewServer(t)
	srv.Expect("playlistinfo").Reply("file: a", "file: b", "file: c").OK()
	srv.Expect("ping").OK()

	s := dialSession(t, srv)
	ctx := context.Background()

	it, err := s.Iterate(ctx, "playlistinfo")
	require.NoError(t, err)
	require.True(t, it.Next())
	require.NoError(t, it.Close())

	_, err = s.Execute(ctx, "ping")
	require.NoError(t, err)
}

func TestSessionIterateRejectsNonStreams(t *testing.T) {
	srv := mpdtest.NewServer(t)
	s := dialSession(t, srv)

	_, err := s.Iterate(context.Background(), "status")
	assert.ErrorIs(t, err, ErrNotIterable)
}

func TestSessionProtocolErrorIsFatal(t *testing.T) {
	srv := mpdtest.NewServer(t)
	srv.Expect("status").Reply("no separator here").OK()

	s := dialSession(t, srv)
	ctx := context.Background()

	_, err := s.Execute(ctx, "status")
	assert.ErrorIs(t, err, ErrProtocol)
	assert.True(t, IsFatal(err))
	assert.ErrorIs(t, s.Err(), ErrProtocol)

	_, err = s.Execute(ctx, "ping")
	assert.ErrorIs(t, err, ErrProtocol)
}

func TestSessionDisconnect(t *testing.T) {
	srv := mpdtest.NewServer(t)
	srv.Expect("status").Reply("volume: 1").CloseAfter()

	s := dialSession(t, srv)
	_, err := s.Execute(context.Background(), "status")
	assert.ErrorIs(t, err, ErrConnection)
}

func TestSessionIdle(t *testing.T) {
	srv := mpdtest.NewServer(t)
	trigger := make(chan struct{})
	srv.Expect(`idle "player" "mixer"`).Idle(trigger, "player")

	s := dialSession(t, srv)
	ctx := context.Background()

	require.NoError(t, s.SendIdle(ctx, "player", "mixer"))
	assert.True(t, s.Idling())
	assert.ErrorIs(t, s.Send(ctx, "status"), ErrIdling)

	close(trigger)
	changed, err := s.FetchIdle(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"player"}, changed)
	assert.False(t, s.Idling())
}

func TestSessionNoIdle(t *testing.T) {
	srv := mpdtest.NewServer(t)
	srv.Expect("idle").Idle(nil, "database")
	srv.Expect("ping").OK()

	s := dialSession(t, srv)
	ctx := context.Background()

	assert.ErrorIs(t, s.NoIdle(), ErrNotIdling)
	require.NoError(t, s.SendIdle(ctx))

	result := make(chan []string, 1)
	go func() {
		changed, _ := s.FetchIdle(ctx)
		result <- changed
	}()

	require.NoError(t, s.NoIdle())
	require.NoError(t, s.NoIdle(), "second noidle is a no-op")

	select {
	case changed := <-result:
		assert.Empty(t, changed)
	case <-time.After(5 * time.Second):
		t.Fatal("idle did not end")
	}

	_, err := s.Execute(ctx, "ping")
	require.NoError(t, err)
	assert.Equal(t, []string{"idle", "noidle", "ping"}, srv.Received())
}

func TestSessionFetchContextCancel(t *testing.T) {
	srv := mpdtest.NewServer(t)
	hold := make(chan struct{})
	defer close(hold)
	srv.Expect("status").Hold(hold).OK()

	s := dialSession(t, srv)
	require.NoError(t, s.Send(context.Background(), "status"))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := s.Fetch(ctx)
	assert.ErrorIs(t, err, ErrConnection)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestSessionClose(t *testing.T) {
	srv := mpdtest.NewServer(t)
	s := dialSession(t, srv)

	require.NoError(t, s.Close())
	assert.ErrorIs(t, s.Send(context.Background(), "ping"), ErrClosed)
	assert.True(t, srv.WaitRemaining(0, time.Second))

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) && len(srv.Received()) == 0 {
		time.Sleep(5 * time.Millisecond)
	}
	assert.Equal(t, []string{"close"}, srv.Received())
}

func TestCommandListPartialFailure(t *testing.T) {
	srv := mpdtest.NewServer(t)
	srv.ExpectCommandList(`add "a.mp3"`, `add "b.mp3"`, `add "missing.mp3"`, `add "c.mp3"`, "play").
		ListOK().
		ListOK().
		Ack(wire.AckNoExist, 2, "add", "No such song")
	srv.Expect("ping").OK()

	s := dialSession(t, srv)
	ctx := context.Background()

	cl, err := s.BeginCommandList(ctx)
	require.NoError(t, err)
	for _, uri := range []string{"a.mp3", "b.mp3", "missing.mp3", "c.mp3"} {
		require.NoError(t, cl.Add("add", uri))
	}
	require.NoError(t, cl.Add("play"))
	assert.Equal(t, 5, cl.Len())

	results, err := cl.End(ctx)
	ack, ok := AsCommandError(err)
	require.True(t, ok, "got %v", err)
	assert.Equal(t, wire.AckNoExist, ack.Code)
	assert.Equal(t, 2, ack.Offset)

	require.Len(t, results, 5)
	assert.NoError(t, results[0].Err)
	assert.NoError(t, results[1].Err)
	assert.Same(t, ack, results[2].Err)
	for _, i := range []int{3, 4} {
		assert.ErrorIs(t, results[i].Err, ErrEarlierCommandFailed)
		assert.ErrorIs(t, results[i].Err, ErrCommandList)
		_, isAck := AsCommandError(results[i].Err)
		assert.False(t, isAck)
	}
	assert.NotSame(t, results[3].Err, results[4].Err)
	assert.Equal(t, "play", results[4].Command.Name)

	_, err = s.Execute(ctx, "ping")
	require.NoError(t, err)
}

func TestCommandListResults(t *testing.T) {
	srv := mpdtest.NewServer(t)
	srv.ExpectCommandList("status", `find "album" "X"`, "clear").
		Reply("volume: 10").ListOK().
		Reply("file: 1.mp3", "file: 2.mp3").ListOK().
		ListOK().
		OK()

	s := dialSession(t, srv)
	ctx := context.Background()

	cl, err := s.BeginCommandList(ctx)
	require.NoError(t, err)
	require.NoError(t, cl.Add("status"))
	require.NoError(t, cl.Add("find", "album", "X"))
	require.NoError(t, cl.Add("clear"))

	results, err := cl.End(ctx)
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, "10", results[0].Value.Record.Value("volume"))
	assert.Len(t, results[1].Value.Records, 2)
	assert.Equal(t, response.KindNothing, results[2].Value.Kind)
}

func TestCommandListMisuse(t *testing.T) {
	srv := mpdtest.NewServer(t)
	srv.ExpectCommandList().OK()

	s := dialSession(t, srv)
	ctx := context.Background()

	cl, err := s.BeginCommandList(ctx)
	require.NoError(t, err)

	_, err = s.BeginCommandList(ctx)
	assert.ErrorIs(t, err, ErrCommandList)
	assert.ErrorIs(t, s.Send(ctx, "ping"), ErrCommandList)
	assert.ErrorIs(t, cl.Add("idle"), ErrCommandList)
	assert.ErrorIs(t, cl.Add("kill"), ErrCommandList)
	assert.ErrorIs(t, cl.Add("albumart", "x"), ErrCommandList)
	assert.ErrorIs(t, cl.Add("bogus"), ErrUnknownCommand)

	results, err := cl.End(ctx)
	require.NoError(t, err)
	assert.Empty(t, results)

	_, err = cl.End(ctx)
	assert.ErrorIs(t, err, ErrCommandList)
	assert.ErrorIs(t, cl.Add("ping"), ErrCommandList)
}

func binaryPayload(n int) []byte {
	data := make([]byte, n)
	for i := range data {
		data[i] = byte(i * 7)
	}
	return data
}

func TestReadBinaryReassembly(t *testing.T) {
	data := binaryPayload(17384)

	srv := mpdtest.NewServer(t)
	srv.Expect(`albumart "song.flac" "0"`).Reply("size: 17384").Binary(data[:8192]).OK()
	srv.Expect(`albumart "song.flac" "8192"`).Reply("size: 17384").Binary(data[8192:16384]).OK()
	srv.Expect(`albumart "song.flac" "16384"`).Reply("size: 17384").Binary(data[16384:]).OK()

	s := dialSession(t, srv)
	b, err := s.ReadBinary(context.Background(), "albumart", "song.flac")
	require.NoError(t, err)

	assert.True(t, b.HasBinary)
	assert.Equal(t, 17384, b.Size())
	assert.True(t, bytes.Equal(data, b.Data))
	assert.Equal(t, "17384", b.Metadata.Value("size"))
}

func TestReadBinaryWithoutSize(t *testing.T) {
	data := binaryPayload(300)

	srv := mpdtest.NewServer(t)
	srv.Expect(`readpicture "a.mp3" "0"`).Reply("type: image/png").Binary(data).OK()

	s := dialSession(t, srv)
	b, err := s.ReadBinary(context.Background(), "readpicture", "a.mp3")
	require.NoError(t, err)
	assert.Equal(t, data, b.Data)
	assert.Equal(t, "image/png", b.Metadata.Value("type"))
}

func TestReadBinaryNoAttachment(t *testing.T) {
	srv := mpdtest.NewServer(t)
	srv.Expect(`readpicture "a.mp3" "0"`).OK()

	s := dialSession(t, srv)
	b, err := s.ReadBinary(context.Background(), "readpicture", "a.mp3")
	require.NoError(t, err)
	assert.False(t, b.HasBinary)
	assert.Empty(t, b.Data)
	assert.True(t, b.Metadata.Empty())
}

func TestReadBinaryFailures(t *testing.T) {
	data := binaryPayload(200)

	tests := []struct {
		name   string
		script func(srv *mpdtest.Server)
	}{
		{
			name: "metadata changed",
			script: func(srv *mpdtest.Server) {
				srv.Expect(`readpicture "a" "0"`).Reply("size: 200", "type: image/png").Binary(data[:100]).OK()
				srv.Expect(`readpicture "a" "100"`).Reply("size: 200", "type: image/jpeg").Binary(data[100:]).OK()
			},
		},
		{
			name: "binary vanished",
			script: func(srv *mpdtest.Server) {
				srv.Expect(`readpicture "a" "0"`).Reply("size: 200").Binary(data[:100]).OK()
				srv.Expect(`readpicture "a" "100"`).Reply("size: 200").OK()
			},
		},
		{
			name: "size exceeded",
			script: func(srv *mpdtest.Server) {
				srv.Expect(`readpicture "a" "0"`).Reply("size: 150").Binary(data[:100]).OK()
				srv.Expect(`readpicture "a" "100"`).Reply("size: 150").Binary(data[100:]).OK()
			},
		},
		{
			name: "chunk beyond announced size",
			script: func(srv *mpdtest.Server) {
				srv.Expect(`readpicture "a" "0"`).Reply("size: 10", "binary: 4611686018427387904").OK()
			},
		},
		{
			name: "chunk beyond transport limit",
			script: func(srv *mpdtest.Server) {
				srv.Expect(`readpicture "a" "0"`).Reply("binary: 4611686018427387904").OK()
			},
		},
		{
			name: "bad size",
			script: func(srv *mpdtest.Server) {
				srv.Expect(`readpicture "a" "0"`).Reply("size: lots").Binary(data[:100]).OK()
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := mpdtest.NewServer(t)
			tt.script(srv)

			s := dialSession(t, srv)
			_, err := s.ReadBinary(context.Background(), "readpicture", "a")
			assert.ErrorIs(t, err, ErrProtocol)
			assert.Error(t, s.Err())
		})
	}
}

func TestReadBinaryAck(t *testing.T) {
	srv := mpdtest.NewServer(t)
	srv.Expect(`albumart "x" "0"`).Ack(wire.AckNoExist, 0, "albumart", "No file exists")
	srv.Expect("ping").OK()

	s := dialSession(t, srv)
	ctx := context.Background()

	_, err := s.ReadBinary(ctx, "albumart", "x")
	assert.ErrorIs(t, err, &wire.AckError{Code: wire.AckNoExist})

	_, err = s.ReadBinary(ctx, "status", "x")
	assert.True(t, errors.Is(err, ErrBadArguments))

	_, err = s.ReadBinary(ctx, "albumart", "x\nping")
	assert.ErrorIs(t, err, wire.ErrBadArgument)

	_, err = s.Execute(ctx, "ping")
	require.NoError(t, err)
}
