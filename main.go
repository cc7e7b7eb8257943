package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"

	"saborify/api"
	"saborify/appstate"
	"saborify/auth"
	"saborify/config"
	"saborify/favorites"
	"saborify/home"
	"saborify/hub"
	"saborify/ingredients"
	"saborify/kv"
	"saborify/metrics"
	"saborify/middleware"
	"saborify/mq"
	"saborify/printout"
	"saborify/profile"
	"saborify/ratelim"
	"saborify/recipes"
	"saborify/reviews"
	"saborify/routes"
)

// securityHeaders applies a set of recommended HTTP security headers.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// XSS, content sniffing, framing
		w.Header().Set("X-XSS-Protection", "1; mode=block")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Content-Security-Policy", "frame-ancestors 'none'")
		// HSTS (must be on HTTPS)
		w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains; preload")
		w.Header().Set("Referrer-Policy", "no-referrer")
		w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate, private")
		next.ServeHTTP(w, r)
	})
}

// loggingMiddleware logs each request method, path, remote address, and duration.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s from %s – %v", r.Method, r.RequestURI, r.RemoteAddr, time.Since(start))
	})
}

// Index is a simple health check handler.
func Index(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	fmt.Fprint(w, "200")
}

// refreshOn keeps the shared collections in step with mutations made
// through other instances. Handlers here already refreshed synchronously
// for their own events.
func refreshOn(state *appstate.Store, emitter *mq.Emitter) mq.Handler {
	return func(_ context.Context, ev mq.Index) {
		if emitter.Local(ev) {
			return
		}
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()

			var err error
			switch ev.EntityType {
			case "recipe", "review":
				err = state.RefreshRecipes(ctx)
			case "ingredient":
				err = state.RefreshIngredients(ctx)
			default:
				return
			}
			if err != nil {
				log.Printf("[refresh] %s %s %s: %v", ev.Method, ev.EntityType, ev.EntityId, err)
			}
		}()
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
		defer rdb.Close()
	}

	store, closeStore, err := kv.Open(ctx, kv.Options{
		Backend:  cfg.KVBackend,
		FileDir:  cfg.KVFileDir,
		Redis:    rdb,
		MongoURI: cfg.MongoURI,
		MongoDB:  cfg.MongoDB,
	})
	if err != nil {
		log.Fatalf("❌ kv store (%s): %v", cfg.KVBackend, err)
	}
	log.Printf("kv store: %s", cfg.KVBackend)

	collector := metrics.New()
	client := api.New(cfg.APIBaseURL,
		api.WithHTTPClient(&http.Client{Timeout: 30 * time.Second, Transport: collector.Transport(nil)}),
		api.WithMaxImageWidth(cfg.UploadMaxWidth),
	)

	// initialize event hub
	eventHub := hub.NewHub(cfg.PublicURL)
	go eventHub.Run()

	state := appstate.New(client)
	state.Subscribe(func(ev appstate.Event) { eventHub.Publish(ev) })
	if err := state.Init(ctx); err != nil {
		log.Printf("⚠️ initial load incomplete: %v", err)
	}

	emitter := mq.NewEmitter(rdb)
	emitter.Handle(refreshOn(state, emitter))
	emitter.Handle(func(_ context.Context, ev mq.Index) { eventHub.Publish(ev) })
	go emitter.Run(ctx)

	rateLimiter := ratelim.NewRateLimiter(cfg.RateLimitPerMinute)
	janitorStop := make(chan struct{})
	go rateLimiter.Janitor(time.Minute, janitorStop)

	clients := middleware.NewClients([]byte(cfg.JWTSecret), store, strings.HasPrefix(cfg.PublicURL, "https://"))
	printer := printout.New(cfg.PublicURL)

	router := httprouter.New()
	router.GET("/health", Index)
	routes.RoutesWrapper(router, routes.Handlers{
		Clients:     clients,
		Home:        home.NewHandler(state),
		Recipes:     recipes.NewHandler(client, state, clients, emitter, printer),
		Ingredients: ingredients.NewHandler(client, state, clients, emitter),
		Reviews:     reviews.NewHandler(client, state, clients, emitter),
		Auth:        auth.NewHandler(client, clients),
		Profile:     profile.NewHandler(client, clients),
		Favorites:   favorites.NewHandler(clients, printer),
		Hub:         eventHub,
		Metrics:     collector,
	}, rateLimiter)

	// apply middleware: CORS → security headers → logging → router
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{cfg.PublicURL},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler(router)

	handler := loggingMiddleware(securityHeaders(middleware.RecoverMiddleware(corsHandler)))

	server := &http.Server{
		Addr:              cfg.Port,
		Handler:           handler,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
	}

	// on shutdown: stop the hub, drop shared state, release storage
	server.RegisterOnShutdown(func() {
		log.Println("🛑 Shutting down event hub...")
		eventHub.Stop()
		close(janitorStop)
		state.Close()
	})

	go func() {
		log.Printf("🚀 Server listening on %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ ListenAndServe error: %v", err)
		}
	}()

	<-ctx.Done()

	log.Println("🛑 Shutdown signal received; shutting down gracefully...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("❌ Graceful shutdown failed: %v", err)
	}
	if err := closeStore(shutdownCtx); err != nil {
		log.Printf("❌ close kv store: %v", err)
	}

	log.Println("✅ Server stopped cleanly")
}
