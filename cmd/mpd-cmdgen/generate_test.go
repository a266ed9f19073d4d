package main

import (
	"go/parser"
	"go/token"
	"strings"
	"testing"

	"github.com/mpdlink/mpd-go/pkg/command"
	"github.com/mpdlink/mpd-go/pkg/response"
)

func sampleSpecs() []command.Spec {
	return []command.Spec{
		{Name: "status", Method: "Status", Kind: response.KindObject},
		{Name: "play", Method: "Play", Kind: response.KindNothing, MaxArgs: 1},
		{Name: "find", Method: "Find", Kind: response.KindObjects, MinArgs: 1, MaxArgs: command.Unbounded},
		{Name: "list", Method: "List", Kind: response.KindGroups, MinArgs: 1, MaxArgs: command.Unbounded},
		{Name: "getvol", Method: "GetVol", Kind: response.KindItem},
		{Name: "commands", Method: "Commands", Kind: response.KindList},
		{Name: "albumart", Method: "AlbumArt", Kind: response.KindBinary, MinArgs: 1, MaxArgs: 1, NoList: true},
		{Name: "idle", Method: "Idle", Kind: response.KindList, Internal: true},
	}
}

func TestGenerateWrappers(t *testing.T) {
	output, err := Generate("mpd", "Client", sampleSpecs())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	mustContain(t, output, Header)
	mustContain(t, output, "package mpd")
	mustContain(t, output, "func (c *Client) Status(ctx context.Context, args ...any) (response.Record, error)")
	mustContain(t, output, "func (c *Client) Play(ctx context.Context, args ...any) error")
	mustContain(t, output, "func (c *Client) Find(ctx context.Context, args ...any) ([]response.Record, error)")
	mustContain(t, output, "func (c *Client) List(ctx context.Context, args ...any) ([]response.Record, error)")
	mustContain(t, output, "func (c *Client) GetVol(ctx context.Context, args ...any) (string, bool, error)")
	mustContain(t, output, "func (c *Client) Commands(ctx context.Context, args ...any) ([]string, error)")
	mustContain(t, output, "func (c *Client) AlbumArt(ctx context.Context, resource string) (*response.Binary, error)")
	mustContain(t, output, `c.ReadBinary(ctx, "albumart", resource)`)
	mustContain(t, output, `c.Execute(ctx, "status", args...)`)
}

func TestGenerateSkipsInternal(t *testing.T) {
	output, err := Generate("mpd", "Client", sampleSpecs())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if strings.Contains(output, ") Idle(") {
		t.Error("internal command idle must not get a wrapper")
	}
}

func TestGenerateParses(t *testing.T) {
	output, err := Generate("mpd", "Client", command.All())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if _, err := parser.ParseFile(token.NewFileSet(), "commands_gen.go", output, parser.AllErrors); err != nil {
		t.Fatalf("generated code does not parse: %v", err)
	}
}

func TestGenerateReceiver(t *testing.T) {
	output, err := Generate("mpd", "Session", sampleSpecs()[:1])
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	mustContain(t, output, "func (s *Session) Status(")
}

func TestResultShapeRejectsUnknownKind(t *testing.T) {
	if _, _, err := resultShape(response.Kind(255)); err == nil {
		t.Error("expected error for unknown kind")
	}
}

func mustContain(t *testing.T, output, want string) {
	t.Helper()
	if !strings.Contains(output, want) {
		t.Errorf("output missing %q", want)
	}
}
