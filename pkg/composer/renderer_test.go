package composer_test

import (
	"errors"
	"io"
	"testing"

	"github.com/goliatone/go-lodgedoc/pkg/composer"
	"github.com/goliatone/go-lodgedoc/pkg/testsupport"
)

type recordingRenderer struct {
	name string
	data map[string]any
	err  error
}

func (r *recordingRenderer) RenderTemplate(name string, data any, out ...io.Writer) (string, error) {
	r.name = name
	r.data, _ = data.(map[string]any)
	if r.err != nil {
		return "", r.err
	}
	for _, w := range out {
		_, _ = io.WriteString(w, "page")
	}
	return "page", nil
}

func TestCompose_InjectedRendererReceivesPageData(t *testing.T) {
	renderer := &recordingRenderer{}
	c := composer.New(composer.WithTemplateRenderer(renderer))

	res, err := c.Compose(testsupport.Context(), balaustreRequest())
	if err != nil {
		t.Fatalf("compose: %v", err)
	}
	if res.HTML != "page" {
		t.Fatalf("expected renderer output, got %q", res.HTML)
	}
	if renderer.name != composer.DocumentTemplate {
		t.Fatalf("expected %q template, got %q", composer.DocumentTemplate, renderer.name)
	}
	if renderer.data["kind"] != "balaustre" {
		t.Fatalf("unexpected kind %v", renderer.data["kind"])
	}
	if renderer.data["css"] != res.CSS {
		t.Fatalf("page data css differs from result css")
	}

	regions, ok := renderer.data["regions"].([]map[string]any)
	if !ok || len(regions) == 0 {
		t.Fatalf("expected regions in page data, got %#v", renderer.data["regions"])
	}
	found := false
	for _, r := range regions {
		if r["name"] == "content" {
			found = true
		}
	}
	if !found {
		t.Fatalf("content region missing from page data: %#v", regions)
	}
}

func TestCompose_RendererErrorIsWrapped(t *testing.T) {
	boom := errors.New("layout exploded")
	c := composer.New(composer.WithTemplateRenderer(&recordingRenderer{err: boom}))

	if _, err := c.Compose(testsupport.Context(), balaustreRequest()); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped renderer error, got %v", err)
	}
}
