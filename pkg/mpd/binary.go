package mpd

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/mpdlink/mpd-go/pkg/command"
	"github.com/mpdlink/mpd-go/pkg/log"
	"github.com/mpdlink/mpd-go/pkg/response"
	"github.com/mpdlink/mpd-go/pkg/wire"
)

// SizeKey announces the total length of a chunked binary transfer.
const SizeKey = "size"

// ReadBinary runs a binary command such as albumart or readpicture for one
// resource and reassembles its chunks.
//
// The command is repeated with an increasing offset until the announced
// size is reached. Metadata of later chunks must match the first chunk.
// A response without size and binary fields yields the metadata alone,
// with HasBinary false. The size field stays in the returned metadata.
//
// A chunk longer than the bytes still missing, or than the transport's
// MaxBinarySize, is a protocol error and is not read.
func (s *Session) ReadBinary(ctx context.Context, name, resource string) (*response.Binary, error) {
	spec, err := command.Validate(name, 1)
	if err != nil {
		return nil, err
	}
	if !spec.Binary() {
		return nil, fmt.Errorf("%w: %s is not a binary command", ErrBadArguments, spec.Name)
	}
	if err := wire.CheckArg(wire.String(resource)); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	if err := s.ready(); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	req := &request{spec: spec, cmd: wire.NewCommand(spec.Name, wire.String(resource)), sent: time.Now()}
	s.pending = req
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.pending = nil
		s.mu.Unlock()
	}()

	return s.transfer(ctx, req, resource)
}

func (s *Session) transfer(ctx context.Context, req *request, resource string) (*response.Binary, error) {
	var (
		out   *response.Binary
		total int
	)
	for {
		offset := 0
		if out != nil {
			offset = len(out.Data)
		}
		chunk := &request{
			spec: req.spec,
			cmd:  wire.NewCommand(req.spec.Name, wire.String(resource), wire.Int(offset)),
			sent: time.Now(),
		}
		if err := s.write(chunk.cmd, nil); err != nil {
			return nil, err
		}
		blk, err := s.readBlock(ctx, true, func(lines []wire.Line) int {
			if out != nil {
				return total - len(out.Data)
			}
			return announcedSize(lines)
		})
		if err != nil {
			s.logResponse(chunk, log.CommandStatusFailed, err, nil)
			return nil, err
		}

		switch blk.end.Kind {
		case wire.LineAck:
			s.logResponse(chunk, log.CommandStatusAck, blk.end.Ack, nil)
			return nil, blk.end.Ack
		case wire.LineSuccess:
		default:
			return nil, s.protocolError(chunk, "unexpected %q", blk.end.Text)
		}

		meta, err := response.ParseObject(blk.lines)
		if err != nil {
			s.logResponse(chunk, log.CommandStatusFailed, err, nil)
			return nil, s.fail(err)
		}

		if out == nil {
			out = &response.Binary{Metadata: meta, Data: blk.data, HasBinary: blk.hasBinary}
			if len(blk.data) == 0 {
				s.logResponse(chunk, log.CommandStatusOK, nil, nil)
				return out, nil
			}
			total = len(blk.data)
			if v, ok := meta.Get(SizeKey); ok {
				total, err = strconv.Atoi(v)
				if err != nil || total < 0 {
					return nil, s.protocolError(chunk, "size %q unsuitable for binary transfer", v)
				}
			}
		} else {
			if !sameMetadata(out.Metadata, meta) {
				return nil, s.protocolError(chunk, "metadata changed during transfer")
			}
			if !blk.hasBinary {
				return nil, s.protocolError(chunk, "binary field vanished during transfer")
			}
			if len(blk.data) == 0 {
				return nil, s.protocolError(chunk, "empty chunk at offset %d of %d", offset, total)
			}
			out.Data = append(out.Data, blk.data...)
		}
		s.logResponse(chunk, log.CommandStatusOK, nil, nil)

		switch {
		case len(out.Data) > total:
			return nil, s.protocolError(chunk, "received %d bytes, announced size is %d", len(out.Data), total)
		case len(out.Data) == total:
			return out, nil
		}
	}
}

// announcedSize returns the size field among lines, or -1.
func announcedSize(lines []wire.Line) int {
	for _, l := range lines {
		if l.Kind != wire.LinePair || l.Key != SizeKey {
			continue
		}
		if n, err := strconv.Atoi(l.Value); err == nil && n >= 0 {
			return n
		}
	}
	return -1
}

// sameMetadata compares chunk metadata, ignoring the size field.
func sameMetadata(a, b response.Record) bool {
	a, b = a.Clone(), b.Clone()
	a.Delete(SizeKey)
	b.Delete(SizeKey)
	return a.Equal(b)
}
