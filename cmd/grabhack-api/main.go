// README: Entry point; loads config, wires module services, starts HTTP server.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/AdityaBS04/GrabHackProper-sub001/internal/ai"
	"github.com/AdityaBS04/GrabHackProper-sub001/internal/config"
	httptransport "github.com/AdityaBS04/GrabHackProper-sub001/internal/http"
	"github.com/AdityaBS04/GrabHackProper-sub001/internal/infra"
	"github.com/AdityaBS04/GrabHackProper-sub001/internal/maps"
	"github.com/AdityaBS04/GrabHackProper-sub001/internal/modules/complaint"
	"github.com/AdityaBS04/GrabHackProper-sub001/internal/modules/credibility"
	"github.com/AdityaBS04/GrabHackProper-sub001/internal/modules/evidence"
	"github.com/AdityaBS04/GrabHackProper-sub001/internal/modules/gate"
	"github.com/AdityaBS04/GrabHackProper-sub001/internal/modules/order"
	"github.com/AdityaBS04/GrabHackProper-sub001/internal/modules/resolution"
	"github.com/AdityaBS04/GrabHackProper-sub001/internal/modules/session"
	"github.com/AdityaBS04/GrabHackProper-sub001/internal/modules/updates"
	"github.com/AdityaBS04/GrabHackProper-sub001/internal/modules/user"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
	if err != nil {
		log.Fatal(err)
	}
	defer dbPool.Close()

	redisClient := infra.NewRedis(cfg.Redis.Addr)

	var llm ai.LLMProvider
	if cfg.AI.GeminiKey != "" {
		llm, err = ai.NewGeminiProvider(ctx, cfg.AI.GeminiKey)
		if err != nil {
			log.Fatalf("gemini init: %v", err)
		}
	} else {
		log.Print("GEMINI_API_KEY not set; resolutions fall back to template responses")
	}

	navigator, err := maps.NewNavigator(cfg.Maps.APIKey)
	if err != nil {
		log.Fatalf("maps init: %v", err)
	}

	orderStore := order.NewStore(dbPool)
	userStore := user.NewStore(dbPool)
	sessionStore := session.NewStore(redisClient, cfg.Session.TTL)

	credibilityStore := credibility.NewStore(dbPool)
	credibilitySvc := credibility.NewService(credibilityStore, cfg.Value)

	gateSvc := gate.NewService(orderStore)
	evidenceSvc := evidence.NewService(llm)
	engine := resolution.NewEngine(cfg.Policy)

	complaintStore := complaint.NewStore(dbPool)
	complaintSvc := complaint.NewService(complaint.Deps{
		Gate:     gateSvc,
		Scorer:   credibilitySvc,
		Evidence: evidenceSvc,
		Engine:   engine,
		Store:    complaintStore,
		Orders:   orderStore,
		Sessions: sessionStore,
		Nav:      navigator,
		LLM:      llm,
	})

	updateStore := updates.NewStore(dbPool)
	updateSvc := updates.NewService(updateStore, orderStore, cfg.Spam)

	handler := httptransport.NewServer(httptransport.ServerDeps{
		Complaints:    complaintSvc,
		Updates:       updateSvc,
		Notifications: updateSvc,
		Orders:        orderStore,
		Sessions:      sessionStore,
		Users:         userStore,
	})

	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: handler.Routes()}

	go func() {
		<-ctx.Done()
		_ = server.Shutdown(context.Background())
	}()

	log.Printf("grabhack-api listening on %s", cfg.HTTP.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}
