package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-lodgedoc/internal/apispec"
	"github.com/goliatone/go-lodgedoc/pkg/composer"
	"github.com/goliatone/go-lodgedoc/pkg/doctype"
	"github.com/goliatone/go-lodgedoc/pkg/httpapi"
	"github.com/goliatone/go-lodgedoc/pkg/prompt"
	"github.com/goliatone/go-lodgedoc/pkg/regenerate"
	"github.com/goliatone/go-lodgedoc/pkg/style"
	"github.com/goliatone/go-lodgedoc/pkg/token"
)

var kindsCmd = &cobra.Command{
	Use:   "kinds",
	Short: "List the document kinds",
	Run: func(cmd *cobra.Command, args []string) {
		for _, k := range doctype.All() {
			fmt.Printf("%-12s %s\n", k.String(), k.Definition().Title)
		}
	},
}

var catalogCmd = &cobra.Command{
	Use:   "catalog [kind]",
	Short: "Print the variables available to a document kind",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		kind, err := parseKind(args[0])
		if err != nil {
			log.Fatalf("%v", err)
		}
		cfg, _, err := loadConfig()
		if err != nil {
			log.Fatalf("%v", err)
		}
		provider, err := newCatalog(cfg)
		if err != nil {
			log.Fatalf("Failed to load catalog: %v", err)
		}

		groups, err := provider.Catalog(cmd.Context(), kind.String())
		if err != nil {
			log.Fatalf("Failed to fetch catalog: %v", err)
		}
		for _, g := range groups {
			fmt.Printf("%s\n", g.Label)
			for _, e := range g.Variables {
				fmt.Printf("  %-32s %s\n", token.PlainText(e.Key), e.Label)
			}
		}
	},
}

var (
	composeSettings string
	composeContext  string
	composeOutput   string
)

var composeCmd = &cobra.Command{
	Use:   "compose [kind]",
	Short: "Compose a document to HTML from stored settings and a JSON context",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		kind, err := parseKind(args[0])
		if err != nil {
			log.Fatalf("%v", err)
		}
		cfg, logger, err := loadConfig()
		if err != nil {
			log.Fatalf("%v", err)
		}
		if composeSettings == "" {
			composeSettings = cfg.Settings.Path
		}
		settings, err := readSettings(composeSettings)
		if err != nil {
			log.Fatalf("Failed to read settings: %v", err)
		}
		data, err := readContext(composeContext)
		if err != nil {
			log.Fatalf("Failed to read context: %v", err)
		}
		c, err := newComposer(cfg, logger)
		if err != nil {
			log.Fatalf("Failed to build composer: %v", err)
		}

		doc := documentSettings(settings, kind)
		res, err := c.Compose(cmd.Context(), composer.Request{
			Kind:      kind,
			Styles:    doc.Styles,
			Templates: doc.Templates(),
			Context:   data,
		})
		if err != nil {
			log.Fatalf("Failed to compose: %v", err)
		}
		for _, w := range res.Warnings {
			logger.Warn("compose", "warning", w.Error())
		}
		if len(res.Unresolved) > 0 {
			logger.Info("unresolved variables", "keys", strings.Join(res.Unresolved, ", "))
		}

		if composeOutput == "" {
			fmt.Println(res.HTML)
			return
		}
		if err := os.WriteFile(composeOutput, []byte(res.HTML), 0o644); err != nil {
			log.Fatalf("Failed to write output: %v", err)
		}
		fmt.Printf("Document written to %s\n", composeOutput)
	},
}

var (
	regenerateYes      bool
	regenerateSettings string
)

var regenerateCmd = &cobra.Command{
	Use:   "regenerate [kind]",
	Short: "Rebuild a content template from field values",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		driver := prompt.NewSurveyDriver()

		var kind doctype.Kind
		var err error
		if len(args) == 1 {
			kind, err = parseKind(args[0])
		} else {
			kind, err = prompt.SelectKind(ctx, driver)
		}
		if err != nil {
			log.Fatalf("%v", err)
		}
		cfg, _, err := loadConfig()
		if err != nil {
			log.Fatalf("%v", err)
		}
		if regenerateSettings == "" {
			regenerateSettings = cfg.Settings.Path
		}
		settings, err := readSettings(regenerateSettings)
		if err != nil {
			log.Fatalf("Failed to read settings: %v", err)
		}

		fields, err := prompt.CollectFields(ctx, driver, kind, nil)
		if err != nil {
			log.Fatalf("Failed to collect fields: %v", err)
		}

		doc := documentSettings(settings, kind)
		session := regenerate.Session{Saved: doc.ContentTemplate, Current: doc.ContentTemplate}
		var confirm regenerate.Confirmer = prompt.Confirmer(driver)
		if regenerateYes {
			confirm = regenerate.Always(true)
		}
		content, err := session.Apply(ctx, kind, fields, confirm)
		switch {
		case errors.Is(err, regenerate.ErrCancelled), errors.Is(err, prompt.ErrAborted):
			fmt.Println("Regeneration cancelled")
			return
		case err != nil:
			log.Fatalf("Failed to regenerate: %v", err)
		}

		doc.ContentTemplate = content
		if settings == nil {
			settings = style.Settings{}
		}
		settings[kind.String()] = doc
		if err := writeSettings(regenerateSettings, settings); err != nil {
			log.Fatalf("Failed to save settings: %v", err)
		}
		fmt.Printf("Content template of %s saved to %s\n", kind, regenerateSettings)
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the lodgedoc HTTP API",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, logger, err := loadConfig()
		if err != nil {
			log.Fatalf("%v", err)
		}
		contract, err := apispec.Load(cmd.Context())
		if err != nil {
			log.Fatalf("Invalid API contract: %v", err)
		}
		provider, err := newCatalog(cfg)
		if err != nil {
			log.Fatalf("Failed to load catalog: %v", err)
		}
		c, err := newComposer(cfg, logger)
		if err != nil {
			log.Fatalf("Failed to build composer: %v", err)
		}
		settings, err := readSettings(cfg.Settings.Path)
		if err != nil {
			log.Fatalf("Failed to read settings: %v", err)
		}
		store := style.NewStore(settings)

		handler := httpapi.Handler(
			httpapi.WithBasePath(cfg.Server.BasePath),
			httpapi.WithCatalog(provider),
			httpapi.WithSettings(store),
			httpapi.WithBridge(newBridge(cfg, c, logger)),
			httpapi.WithGuard(bearerGuard(cfg.Server.Token)),
			httpapi.WithLogger(logger),
		)
		srv := &http.Server{
			Addr:              cfg.Server.Addr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		go func() {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Error("shutdown", "error", err)
			}
		}()

		logger.Info("serving lodgedoc", "addr", cfg.Server.Addr, "base_path", cfg.Server.BasePath, "operations", len(apispec.Routes(contract)))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
		if err := writeSettings(cfg.Settings.Path, store.Snapshot()); err != nil {
			log.Fatalf("Failed to save settings: %v", err)
		}
		logger.Info("settings saved", "path", cfg.Settings.Path)
	},
}

func readContext(path string) (composer.Context, error) {
	if path == "" {
		return composer.Context{}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec := json.NewDecoder(f)
	dec.UseNumber()
	var data composer.Context
	if err := dec.Decode(&data); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return data, nil
}

func init() {
	composeCmd.Flags().StringVarP(&composeSettings, "settings", "s", "", "Settings JSON file (defaults to the configured path)")
	composeCmd.Flags().StringVarP(&composeContext, "context", "x", "", "JSON file with the document data context")
	composeCmd.Flags().StringVarP(&composeOutput, "output", "o", "", "Output HTML file (stdout if empty)")

	regenerateCmd.Flags().BoolVarP(&regenerateYes, "yes", "y", false, "Replace the content template without asking")
	regenerateCmd.Flags().StringVarP(&regenerateSettings, "settings", "s", "", "Settings JSON file (defaults to the configured path)")
}
