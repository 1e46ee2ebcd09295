package main

import (
	"flag"
	"log"
	"net/http"
	"net/http/pprof"
	"os"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/webgrowth/facetfilter/pkg/content"
	"github.com/webgrowth/facetfilter/pkg/messaging"
	"github.com/webgrowth/facetfilter/pkg/server"
	"github.com/webgrowth/facetfilter/pkg/storage"
	"github.com/webgrowth/facetfilter/pkg/types"
)

var (
	listenAddress   = flag.String("listen", getEnv("LISTEN_ADDRESS", ":8080"), "address for the api server")
	debugAddress    = flag.String("debug-listen", getEnv("DEBUG_ADDRESS", ":8081"), "address for health and metrics")
	dataFolder      = flag.String("data", getEnv("DATA_FOLDER", "data"), "folder for persisted facets and documents")
	enableProfiling = flag.Bool("profile", false, "expose pprof handlers on the debug server")
)

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	flag.Parse()

	disk := storage.NewDiskStorage(*dataFolder)
	if err := os.MkdirAll(*dataFolder, 0755); err != nil {
		log.Fatalf("create data folder: %v", err)
	}

	var repo types.FacetRepository
	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr != "" {
		log.Printf("Using redis facet repository at %s", redisAddr)
		repo = storage.NewRedisFacetRepository(redisAddr, os.Getenv("REDIS_PASSWORD"), 0)
	} else {
		diskRepo, err := storage.NewDiskFacetRepository(disk)
		if err != nil {
			log.Fatalf("open facet repository: %v", err)
		}
		repo = diskRepo
	}

	idx := content.NewIndex()
	var docs []*content.Document
	if err := disk.LoadDocuments(&docs); err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Failed to load documents: %v", err)
		}
	} else {
		for _, doc := range docs {
			idx.Upsert(doc)
		}
		log.Printf("Loaded %d documents", idx.Len())
	}

	srv := server.NewWebServer(repo, idx, disk)

	if auth, err := server.NewGoogleAuth(); err != nil {
		log.Printf("Using mock auth: %v", err)
	} else {
		srv.Auth = auth
	}

	rabbitUrl := os.Getenv("RABBIT_URL")
	if rabbitUrl != "" {
		rabbitConfig := messaging.RabbitConfig{
			Url:    rabbitUrl,
			VHost:  os.Getenv("RABBIT_VHOST"),
			Prefix: getEnv("RABBIT_PREFIX", "facetfilter"),
		}
		publisher, err := messaging.NewFacetPublisher(rabbitConfig)
		if err != nil {
			log.Printf("Failed to connect to RabbitMQ, changes stay local: %v", err)
		} else {
			srv.Publisher = publisher
			listener := &messaging.FacetListener{
				OnFacetSaved: func(def *types.FacetDefinition) error {
					return repo.Save(def)
				},
				OnFacetDeleted: func(id int64) error {
					return repo.Delete(id)
				},
				OnSettingsChanged: func(settings *types.Settings) error {
					srv.SetSettings(*settings)
					return nil
				},
			}
			if err := listener.Connect(rabbitConfig); err != nil {
				log.Printf("Failed to start change listener: %v", err)
			}
		}
	}

	go func() {
		mux := http.NewServeMux()
		mux.Handle("/admin/", http.StripPrefix("/admin", srv.AdminHandler()))
		mux.Handle("/api/", http.StripPrefix("/api", srv.ClientHandler()))

		log.Printf("Starting server %v", *listenAddress)
		log.Fatal(http.ListenAndServe(*listenAddress, mux))
	}()

	debugMux := http.NewServeMux()
	debugMux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	debugMux.Handle("/metrics", promhttp.Handler())

	if *enableProfiling {
		log.Println("Profiling enabled")
		debugMux.HandleFunc("/debug/pprof/", pprof.Index)
		debugMux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
		debugMux.HandleFunc("/debug/pprof/profile", pprof.Profile)
		debugMux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
		debugMux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	}
	log.Printf("Starting debug server %v", *debugAddress)
	log.Fatal(http.ListenAndServe(*debugAddress, debugMux))
}
