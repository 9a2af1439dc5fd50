package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/matst80/car-finder/pkg/cache"
	"github.com/matst80/car-finder/pkg/common"
	"github.com/matst80/car-finder/pkg/inquiry"
	"github.com/matst80/car-finder/pkg/listings"
	"github.com/matst80/car-finder/pkg/server"
	"github.com/matst80/car-finder/pkg/storefront"
	"github.com/matst80/car-finder/pkg/tracking"
)

var enableProfiling = flag.Bool("profiling", false, "enable profiling endpoints")
var listenAddress = flag.String("listen", ":8080", "storefront api address")
var debugAddress = flag.String("debug", ":8081", "health, metrics and pprof address")

var country = "se"
var apiUrl = "http://localhost:8000/api"
var rabbitUrl = os.Getenv("RABBIT_URL")
var redisUrl = os.Getenv("REDIS_URL")
var redisPassword = os.Getenv("REDIS_PASSWORD")

func init() {
	if c, ok := os.LookupEnv("COUNTRY"); ok {
		country = c
	}
	if u, ok := os.LookupEnv("API_URL"); ok {
		apiUrl = u
	}
}

func envInt(name string, fallback int) int {
	if v, err := strconv.Atoi(os.Getenv(name)); err == nil && v > 0 {
		return v
	}
	return fallback
}

func envFloat(name string, fallback float64) float64 {
	if v, err := strconv.ParseFloat(os.Getenv(name), 64); err == nil && v > 0 {
		return v
	}
	return fallback
}

func main() {
	flag.Parse()

	client := listings.NewClient(apiUrl, nil)
	loader := storefront.NewVocabularyLoader(client)

	limiter := inquiry.NewLimiter(envFloat("INQUIRY_RPS", 0.2), envInt("INQUIRY_BURST", 3), 10*time.Minute)
	done := make(chan struct{})
	go limiter.RunCleanup(time.Minute, done)

	ws := server.NewWebServer(client, loader, inquiry.NewService(client, limiter))
	ws.PageSize = envInt("PAGE_SIZE", ws.PageSize)

	hooks := []common.ShutdownHook{func(ctx context.Context) error {
		close(done)
		return nil
	}}

	var remote cache.Store
	if redisUrl != "" {
		redisStore := cache.NewRedisStore(redisUrl, redisPassword, 0)
		if err := redisStore.Ping(context.Background()); err != nil {
			log.Printf("Redis unavailable, using local cache only: %v", err)
		} else {
			log.Printf("Cache distribution enabled, url: %s", redisUrl)
			remote = redisStore
			hooks = append(hooks, func(ctx context.Context) error {
				return redisStore.Close()
			})
		}
	}
	ws.Cache = cache.NewCache(remote, 10*time.Second)
	loader.WithCache(ws.Cache, time.Hour)

	if rabbitUrl != "" {
		trk, err := tracking.NewRabbitTracking(rabbitUrl, country)
		if err != nil {
			log.Printf("Failed to connect to rabbitmq for tracking: %v", err)
		} else {
			ws.Tracking = trk
			hooks = append(hooks, func(ctx context.Context) error {
				return trk.Close()
			})
		}
		if conn, err := connectVocabularyChanges(rabbitUrl, loader); err != nil {
			log.Printf("Failed to listen for vocabulary changes: %v", err)
		} else {
			hooks = append(hooks, func(ctx context.Context) error {
				return conn.Close()
			})
		}
	}

	go func() {
		if _, err := loader.Load(context.Background()); err != nil {
			log.Printf("Failed to preload vocabulary: %v", err)
		}
	}()

	cfg := common.LoadTimeoutConfig(common.TimeoutConfig{
		ReadHeader: 5 * time.Second,
		Read:       15 * time.Second,
		Write:      30 * time.Second,
		Idle:       60 * time.Second,
		Shutdown:   10 * time.Second,
		Hook:       5 * time.Second,
	})
	srv := common.NewServerWithTimeouts(&http.Server{Addr: *listenAddress, Handler: ws.ClientHandler()}, cfg)
	debug := &http.Server{Addr: *debugAddress, Handler: server.DebugHandler(*enableProfiling)}

	log.Printf("Storefront for %s using %s", country, apiUrl)
	common.RunServerWithShutdown(srv, "storefront", cfg.Shutdown, cfg.Hook, []*http.Server{debug}, hooks...)
}
