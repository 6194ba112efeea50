package command

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/gestasai/academy-tutor/internal/core"
)

type stubCommand struct {
	name   string
	result string
	err    error

	gotArgs []string
}

func (c *stubCommand) Name() string        { return c.name }
func (c *stubCommand) Description() string { return "stub" }
func (c *stubCommand) Execute(ctx context.Context, sessionID string, args []string) (string, error) {
	c.gotArgs = args
	return c.result, c.err
}

func TestRouter_PlainTextFallsThrough(t *testing.T) {
	t.Parallel()
	r := New(nil)

	for _, input := range []string{"¿quién es el zorro?", "", "hola /model"} {
		if out, handled := r.Execute(context.Background(), "s1", input); handled {
			t.Errorf("Execute(%q) handled = true, out %q", input, out)
		}
	}
}

func TestRouter_DispatchesWithArgs(t *testing.T) {
	t.Parallel()
	cmd := &stubCommand{name: "lesson", result: "ok"}
	r := New([]core.Command{cmd})

	out, handled := r.Execute(context.Background(), "s1", "/lesson lesson-1")
	if !handled || out != "ok" {
		t.Fatalf("Execute = %q, %v", out, handled)
	}
	if len(cmd.gotArgs) != 1 || cmd.gotArgs[0] != "lesson-1" {
		t.Errorf("args = %v", cmd.gotArgs)
	}
}

func TestRouter_UnknownCommand(t *testing.T) {
	t.Parallel()
	r := New(nil)

	out, handled := r.Execute(context.Background(), "s1", "/frobnicate")
	if !handled {
		t.Fatal("unknown commands are still handled")
	}
	if !strings.Contains(out, "/frobnicate") {
		t.Errorf("out = %q", out)
	}
}

func TestRouter_CommandErrorRendered(t *testing.T) {
	t.Parallel()
	cmd := &stubCommand{name: "model", err: errors.New("boom")}
	r := New([]core.Command{cmd})

	out, handled := r.Execute(context.Background(), "s1", "/model x")
	if !handled || !strings.Contains(out, "boom") {
		t.Errorf("Execute = %q, %v", out, handled)
	}
}

func TestRouter_BareSlash(t *testing.T) {
	t.Parallel()
	r := New(nil)

	if out, handled := r.Execute(context.Background(), "s1", "/"); !handled || !strings.Contains(out, "Unknown") {
		t.Errorf("Execute(\"/\") = %q, %v", out, handled)
	}
}
