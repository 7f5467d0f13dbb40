package cmd

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/kardianos/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"evnex-cli/internal/client"
	"evnex-cli/internal/config"
	"evnex-cli/internal/exporter"
)

// Variables to hold flag values
var (
	expPort          string
	expScrapeTimeout time.Duration
	serviceAction    string // "install", "uninstall", "start", "stop"
)

// --- SERVICE WRAPPER ---

// program implements the kardianos/service interface
type program struct {
	exit   chan struct{}
	server *http.Server
	api    *client.Evnex
}

func (p *program) Start(s service.Service) error {
	// Start should not block. Do the actual work async.
	p.exit = make(chan struct{})
	go p.run()
	return nil
}

func (p *program) run() {
	// 1. Initial Login
	log.Println("Attempting initial login...")
	if _, err := p.api.Login(context.Background()); err != nil {
		log.Printf("Fatal: Initial login failed: %v", err)
		// Exit so the service manager attempts a restart.
		os.Exit(1)
	}
	log.Println("Initial login successful.")

	// 2. Setup Prometheus
	registry := prometheus.NewRegistry()
	registry.MustRegister(exporter.NewCollector(p.api, expScrapeTimeout, slog.Default()))

	p.server = &http.Server{
		Addr:              fmt.Sprintf(":%s", expPort),
		Handler:           newExporterRouter(registry),
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Printf("Evnex Exporter listening on %s", p.server.Addr)

	// Blocking call to listen
	if err := p.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Printf("HTTP Server error: %v", err)
	}
}

func (p *program) Stop(s service.Service) error {
	// Stop should not block. Signal the app to stop.
	log.Println("Stopping service...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if p.server != nil {
		if err := p.server.Shutdown(ctx); err != nil {
			log.Printf("Server forced to shutdown: %v", err)
		}
	}
	close(p.exit)
	return nil
}

func newExporterRouter(registry *prometheus.Registry) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{
		ErrorLog: log.Default(),
	}))
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return r
}

// serviceEnv carries the resolved client settings into the installed
// service, which does not see this shell's flags or environment.
func serviceEnv(cfg client.Config) map[string]string {
	return map[string]string{
		"EVNEX_CLIENT_USERNAME": cfg.Username,
		"EVNEX_CLIENT_PASSWORD": cfg.Password,
		"EVNEX_BASE_URL":        cfg.BaseURL,
		"EVNEX_AUTH_URL":        cfg.AuthURL,
		"EVNEX_CLIENT_ID":       cfg.ClientID,
		"EVNEX_TIMEOUT":         cfg.RequestTimeout.String(),
	}
}

// --- COMMAND ---

var exporterCmd = &cobra.Command{
	Use:   "exporter",
	Short: "Start Prometheus Exporter service",
	Long: `Starts a long-running HTTP server that exposes Evnex charge point metrics.
Can be installed as a system service.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Setup Client Config
		cfg, err := config.ClientConfig(slog.Default())
		if err != nil {
			log.Fatal(err)
		}
		api, err := client.New(cfg)
		if err != nil {
			log.Fatal(err)
		}

		// 2. Define Service Configuration
		svcConfig := &service.Config{
			Name:        "evnex-exporter",
			DisplayName: "Evnex Prometheus Exporter",
			Description: "Exposes Evnex charge point metrics to Prometheus",
			// Arguments passed to the binary when run as a service
			Arguments: []string{
				"exporter",
				"--port", expPort,
				"--scrape-timeout", expScrapeTimeout.String(),
			},
			// Credentials go through the environment, not the command line
			EnvVars: serviceEnv(cfg),
		}
		if cfgFile != "" {
			svcConfig.Arguments = append(svcConfig.Arguments, "--config", cfgFile)
		}

		prg := &program{api: api}
		s, err := service.New(prg, svcConfig)
		if err != nil {
			log.Fatal(err)
		}

		// 3. Handle Service Control Actions (Install, Start, Stop, Uninstall)
		if serviceAction != "" {
			if serviceAction == "install" && viper.GetString(config.KeyPassword) == "" {
				log.Fatal("Error: You must provide credentials to install the service.")
			}

			err = service.Control(s, serviceAction)
			if err != nil {
				log.Fatalf("Failed to %s service: %v", serviceAction, err)
			}
			fmt.Printf("Service action '%s' completed successfully.\n", serviceAction)
			return
		}

		// 4. Run the Service (Blocking)
		// This happens when the Service Manager starts the binary, OR when run interactively without flags
		logger, err := s.Logger(nil)
		if err != nil {
			log.Fatal(err)
		}

		if err = s.Run(); err != nil {
			logger.Error(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(exporterCmd)

	exporterCmd.Flags().StringVar(&expPort, "port", "9100", "Port to listen on")
	exporterCmd.Flags().DurationVar(&expScrapeTimeout, "scrape-timeout", 2*time.Minute, "Upper bound for one scrape of all charge points")
	exporterCmd.Flags().StringVar(&serviceAction, "service", "", "Service action: install, uninstall, start, stop")
}
