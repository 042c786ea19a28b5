package catalog_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-lodgedoc/pkg/catalog"
	"github.com/goliatone/go-lodgedoc/pkg/doctype"
)

func TestEmbeddedCatalogsCoverSkeletonSlots(t *testing.T) {
	provider := catalog.Default()
	for _, kind := range doctype.All() {
		groups, err := provider.Catalog(context.Background(), kind.String())
		if err != nil {
			t.Fatalf("%s: %v", kind, err)
		}
		contains := catalog.Contains(groups)
		for _, key := range kind.SlotKeys() {
			if !contains(key) {
				t.Fatalf("%s: skeleton slot %q missing from catalog", kind, key)
			}
		}
	}
}

func TestStaticProvider_UnknownKind(t *testing.T) {
	_, err := catalog.Default().Catalog(context.Background(), "ata")
	if !errors.Is(err, catalog.ErrCatalogUnavailable) || !errors.Is(err, doctype.ErrUnknownKind) {
		t.Fatalf("expected unavailable unknown kind, got %v", err)
	}
}

func TestLoadFS_RejectsDuplicateKeys(t *testing.T) {
	fsys := fstest.MapFS{
		"edital.yaml": {Data: []byte(`
kind: edital
groups:
  - id: a
    variables:
      - key: NomeLoja
  - id: b
    variables:
      - key: NomeLoja
`)},
	}
	if _, err := catalog.LoadFS(fsys); err == nil {
		t.Fatalf("expected duplicate key error")
	}
}

func TestLoadFS_JSONAndDefaults(t *testing.T) {
	fsys := fstest.MapFS{
		"convite.json": {Data: []byte(`{"kind":"Convite","groups":[{"id":"g","variables":[{"key":"Evento"}]}]}`)},
		"README.md":    {Data: []byte("ignored")},
	}
	store, err := catalog.LoadFS(fsys)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	groups, ok := store.Groups("convite")
	if !ok {
		t.Fatalf("expected convite catalog")
	}
	want := []catalog.Group{{ID: "g", Label: "g", Variables: []catalog.Entry{{Key: "Evento", Label: "Evento"}}}}
	if diff := cmp.Diff(want, groups); diff != "" {
		t.Fatalf("groups mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"convite"}, store.Kinds()); diff != "" {
		t.Fatalf("kinds mismatch (-want +got):\n%s", diff)
	}
}

func TestLookupAndKeys(t *testing.T) {
	groups := []catalog.Group{
		{ID: "loja", Variables: []catalog.Entry{{Key: "NomeLoja", Label: "Nome"}}},
		{ID: "cargos", Variables: []catalog.Entry{{Key: "Veneravel", Label: "VM"}, {Key: "Orador"}}},
	}
	entry, group, ok := catalog.Lookup(groups, "Veneravel")
	if !ok || group != "cargos" || entry.Label != "VM" {
		t.Fatalf("unexpected lookup %+v %q %v", entry, group, ok)
	}
	if tok := entry.Token(group); tok.Group != "cargos" || tok.Key != "Veneravel" {
		t.Fatalf("unexpected token %+v", tok)
	}
	if diff := cmp.Diff([]string{"NomeLoja", "Veneravel", "Orador"}, catalog.Keys(groups)); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}
}

func TestHTTPProvider(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Api-Key") != "secret" {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		switch r.URL.Path {
		case "/catalog/edital":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"groups":[{"id":"loja","label":"Loja","variables":[{"key":"NomeLoja","label":"Nome da Loja"}]}]}`))
		case "/catalog/convite":
			_, _ = w.Write([]byte(`{"groups":`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	provider := catalog.NewHTTPProvider(srv.URL+"/catalog/", catalog.WithHeader("X-Api-Key", "secret"))

	groups, err := provider.Catalog(context.Background(), "edital")
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	if len(groups) != 1 || groups[0].Variables[0].Key != "NomeLoja" {
		t.Fatalf("unexpected groups %+v", groups)
	}

	for _, kind := range []string{"convite", "certificado"} {
		if _, err := provider.Catalog(context.Background(), kind); !errors.Is(err, catalog.ErrCatalogUnavailable) {
			t.Fatalf("%s: expected ErrCatalogUnavailable, got %v", kind, err)
		}
	}
}

func TestTracker_DiscardsStaleResponses(t *testing.T) {
	tracker := catalog.NewTracker()
	first := tracker.Begin("balaustre")
	second := tracker.Begin("edital")

	if tracker.Commit(first, []catalog.Group{{ID: "old"}}, nil) {
		t.Fatalf("expected stale commit to be discarded")
	}
	if !tracker.State().Loading {
		t.Fatalf("expected tracker still loading")
	}
	if !tracker.Commit(second, []catalog.Group{{ID: "new"}}, nil) {
		t.Fatalf("expected latest commit to apply")
	}
	state := tracker.State()
	if state.Kind != "edital" || len(state.Groups) != 1 || state.Groups[0].ID != "new" {
		t.Fatalf("unexpected state %+v", state)
	}
}

func TestTracker_CommitClassifiesErrors(t *testing.T) {
	tracker := catalog.NewTracker()
	ticket := tracker.Begin("edital")
	tracker.Commit(ticket, nil, errors.New("boom"))
	if err := tracker.State().Err; !errors.Is(err, catalog.ErrCatalogUnavailable) {
		t.Fatalf("expected ErrCatalogUnavailable, got %v", err)
	}
}

func TestTracker_FetchCancelsSuperseded(t *testing.T) {
	tracker := catalog.NewTracker()
	started := make(chan struct{})
	cancelled := make(chan error, 1)

	slow := catalog.ProviderFunc(func(ctx context.Context, kind string) ([]catalog.Group, error) {
		close(started)
		<-ctx.Done()
		cancelled <- ctx.Err()
		return nil, ctx.Err()
	})

	done := make(chan bool, 1)
	go func() {
		_, applied := tracker.Fetch(context.Background(), slow, "balaustre")
		done <- applied
	}()
	<-started

	state, applied := tracker.Fetch(context.Background(), catalog.Default(), "edital")
	if !applied || state.Kind != "edital" || state.Err != nil {
		t.Fatalf("unexpected state %+v applied=%v", state, applied)
	}
	if err := <-cancelled; !errors.Is(err, context.Canceled) {
		t.Fatalf("expected superseded request cancelled, got %v", err)
	}
	if <-done {
		t.Fatalf("expected superseded result discarded")
	}
	if tracker.State().Kind != "edital" {
		t.Fatalf("expected edital to remain current")
	}
}
