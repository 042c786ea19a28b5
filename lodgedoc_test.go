package lodgedoc_test

import (
	"context"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goliatone/go-lodgedoc"
)

func TestComposeHTML_UnsavedKindUsesSkeleton(t *testing.T) {
	kind, err := lodgedoc.ParseKind("edital")
	if err != nil {
		t.Fatalf("parse kind: %v", err)
	}

	res, err := lodgedoc.Compose(context.Background(), kind, lodgedoc.DocumentSettings{}, lodgedoc.Context{})
	if err != nil {
		t.Fatalf("compose: %v", err)
	}
	if !strings.Contains(res.HTML, `data-kind="edital"`) {
		t.Fatalf("expected edital page, got:\n%s", res.HTML)
	}
	if len(res.Unresolved) == 0 {
		t.Fatalf("expected skeleton slots to be unresolved with an empty context")
	}
}

func TestRegenerate_FillsSlots(t *testing.T) {
	kind, _ := lodgedoc.ParseKind("convite")
	keys := kind.SlotKeys()
	if len(keys) == 0 {
		t.Fatalf("convite skeleton has no slots")
	}

	out, err := lodgedoc.Regenerate(kind, lodgedoc.Fields{keys[0]: "Valor fixo"})
	if err != nil {
		t.Fatalf("regenerate: %v", err)
	}
	if !strings.Contains(out, "Valor fixo") {
		t.Fatalf("expected field value in output, got %s", out)
	}
}

func TestEmbeddedTemplatesAndOpenAPI(t *testing.T) {
	if _, err := fs.Stat(lodgedoc.EmbeddedTemplates(), "document.tpl"); err != nil {
		t.Fatalf("document template missing: %v", err)
	}
	if !strings.Contains(string(lodgedoc.OpenAPI()), "openapi: 3.0.3") {
		t.Fatalf("unexpected contract header")
	}
}

func TestHandlerServesKinds(t *testing.T) {
	rec := httptest.NewRecorder()
	lodgedoc.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/lodgedoc/kinds", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}
