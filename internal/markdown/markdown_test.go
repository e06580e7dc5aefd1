package markdown

import (
	"strings"
	"testing"
)

type panicRenderer struct{}

func (panicRenderer) Render(string) (string, error) {
	panic("boom")
}

func TestSafeRender_RecoversFromRendererPanic(t *testing.T) {
	const renderWidth = 20

	rendererMu.Lock()
	prev, hadPrev := renderers[renderWidth]
	renderers[renderWidth] = panicRenderer{}
	rendererMu.Unlock()

	defer func() {
		rendererMu.Lock()
		if hadPrev {
			renderers[renderWidth] = prev
		} else {
			delete(renderers, renderWidth)
		}
		rendererMu.Unlock()
	}()

	out := SafeRender(renderWidth, 0, []byte("hello\n"))
	if string(out) != "hello" {
		t.Fatalf("expected fallback to original markdown, got %q", string(out))
	}
}

func TestRenderEmptyInput(t *testing.T) {
	if out := Render(40, 0, []byte("  \n\n")); out != nil {
		t.Fatalf("expected nil for blank input, got %q", string(out))
	}
}

func TestRenderIndentsOutput(t *testing.T) {
	out := string(Render(40, 2, []byte("Buy **milk**")))
	if out == "" {
		t.Fatal("expected rendered output")
	}
	for _, line := range strings.Split(out, "\n") {
		if !strings.HasPrefix(line, "  ") {
			t.Fatalf("expected indented line, got %q", line)
		}
	}
	if !strings.Contains(out, "milk") {
		t.Fatalf("expected content in output, got %q", out)
	}
}

func TestPlain(t *testing.T) {
	if !Plain("Call mom") {
		t.Fatal("expected plain text")
	}
	if Plain("Read *Dune*") {
		t.Fatal("expected emphasis to count as markdown")
	}
}
