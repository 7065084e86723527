// Command matcherd runs the matcher engine as a long-lived daemon: it
// compiles a processing tree from a YAML file, serves it over a Unix
// domain socket, a TCP listener, and a webhook HTTP listener, audits
// every processed event to Postgres, and dispatches matched actions to
// the stub executors.
package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"github.com/corvidsec/matchengine/compiler"
	dconfig "github.com/corvidsec/matchengine/config"
	"github.com/corvidsec/matchengine/event"
	"github.com/corvidsec/matchengine/internal/config"
	"github.com/corvidsec/matchengine/internal/executor"
	"github.com/corvidsec/matchengine/internal/ingest"
	"github.com/corvidsec/matchengine/internal/store"
	"github.com/corvidsec/matchengine/internal/transport"
	"github.com/corvidsec/matchengine/tree"
)

func main() {
	cfg, err := config.Load(os.Getenv("MATCHERD_CONFIG"))
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	root, err := loadTree(cfg.TreePath)
	if err != nil {
		log.Fatalf("load tree %s: %v", cfg.TreePath, err)
	}

	db, err := sql.Open("postgres", cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)
	if err := db.Ping(); err != nil {
		log.Fatalf("ping db: %v", err)
	}

	audit := store.New(db)
	if err := audit.InitSchema(context.Background()); err != nil {
		log.Fatalf("init schema: %v", err)
	}

	dispatcher := executor.NewDispatcher()
	server := transport.NewServer(root, audit, dispatcher)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	webhook := ingest.NewWebhookCollector(func(ev event.Event) {
		server.Process(ctx, ev)
	})
	webhookSrv := &http.Server{Addr: cfg.WebhookAddr, Handler: webhook}

	errs := make(chan error, 3)
	go func() {
		log.Printf("matcherd listening on unix:%s", cfg.UDSPath)
		errs <- server.ServeUDS(ctx, cfg.UDSPath)
	}()
	go func() {
		log.Printf("matcherd listening on tcp:%s", cfg.TCPAddr)
		errs <- server.ServeTCP(ctx, cfg.TCPAddr)
	}()
	go func() {
		log.Printf("matcherd listening on webhook:%s", cfg.WebhookAddr)
		if err := webhookSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errs <- err
		}
	}()
	go func() {
		<-ctx.Done()
		_ = webhookSrv.Close()
	}()

	select {
	case <-ctx.Done():
		log.Printf("matcherd shutting down: %v", ctx.Err())
	case err := <-errs:
		if err != nil && ctx.Err() == nil {
			log.Fatalf("listener failed: %v", err)
		}
	}
}

// loadTree compiles the processing tree at path. A missing file starts
// matcherd with an empty ruleset rather than failing outright, so the
// daemon can come up before its first tree is pushed.
func loadTree(path string) (*tree.Node, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			empty := tree.NewRulesetNode(tree.RulesetNode{Name: "empty"})
			return &empty, nil
		}
		return nil, err
	}
	dto, err := dconfig.LoadYAML(b)
	if err != nil {
		return nil, err
	}
	root, err := compiler.Compile(dto)
	if err != nil {
		return nil, err
	}
	return &root, nil
}
