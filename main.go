package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nstehr/holonet/holonet-core/agent"
	"github.com/nstehr/holonet/holonet-core/config"
	"github.com/nstehr/holonet/holonet-core/ipc"
	"github.com/nstehr/holonet/holonet-core/journal"
	"github.com/nstehr/holonet/holonet-core/model"
)

const banner = `
██╗  ██╗ ██████╗ ██╗      ██████╗ ███╗   ██╗███████╗████████╗
██║  ██║██╔═══██╗██║     ██╔═══██╗████╗  ██║██╔════╝╚══██╔══╝
███████║██║   ██║██║     ██║   ██║██╔██╗ ██║█████╗     ██║
██╔══██║██║   ██║██║     ██║   ██║██║╚██╗██║██╔══╝     ██║
██║  ██║╚██████╔╝███████╗╚██████╔╝██║ ╚████║███████╗   ██║
╚═╝  ╚═╝ ╚═════╝ ╚══════╝ ╚═════╝ ╚═╝  ╚═══╝╚══════╝   ╚═╝

Plan-Driven Card Game Intelligence`

// server holds what every game instance shares. All of it is read-only
// except the journal, which serializes its own writes.
type server struct {
	cfg     config.Config
	catalog *model.Catalog
	store   journal.Store
}

func main() {
	configPath := flag.String("config", "holonet.json", "tuning document")
	catalogPath := flag.String("catalog", "cards.json", "card catalog (JSON array)")
	socketPath := flag.String("socket", "/tmp/holonet.sock", "unix socket to serve game sessions on")
	wsAddr := flag.String("ws", "", "address to serve websocket sessions on, e.g. :8787")
	journalPath := flag.String("journal", "", "sqlite decision journal; empty disables it")
	debug := flag.Bool("debug", false, "log every scored candidate")
	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	fmt.Println(banner)

	slog.Info("starting holonet")

	srv, err := newServer(*configPath, *catalogPath, *journalPath)
	if err != nil {
		slog.Error("startup failed", "error", err)
		os.Exit(1)
	}
	defer srv.store.Close()

	// Unix sockets leave behind a file on unclean shutdown; remove it so we can rebind.
	if err := os.RemoveAll(*socketPath); err != nil {
		slog.Error("failed to clean up socket", "path", *socketPath, "error", err)
		os.Exit(1)
	}

	listener, err := net.Listen("unix", *socketPath)
	if err != nil {
		slog.Error("failed to listen on socket", "path", *socketPath, "error", err)
		os.Exit(1)
	}
	defer listener.Close()
	defer os.Remove(*socketPath)

	slog.Info("listening on domain socket", "path", *socketPath)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		for {
			conn, err := listener.Accept()
			if err != nil {
				select {
				case <-ctx.Done():
					return
				default:
					slog.Error("failed to accept connection", "error", err)
					continue
				}
			}
			slog.Info("new connection accepted")
			go srv.serve(ipc.NewStreamFramer(conn))
		}
	}()

	var httpSrv *http.Server
	if *wsAddr != "" {
		mux := http.NewServeMux()
		mux.HandleFunc("/session", srv.handleWebSocket)
		httpSrv = &http.Server{Addr: *wsAddr, Handler: mux, ReadHeaderTimeout: 10 * time.Second}
		go func() {
			slog.Info("listening for websocket sessions", "addr", *wsAddr)
			if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				slog.Error("websocket listener failed", "error", err)
				stop()
			}
		}()
	}

	<-ctx.Done()
	slog.Info("shutting down")
	if httpSrv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpSrv.Shutdown(shutdownCtx)
	}
}

func newServer(configPath, catalogPath, journalPath string) (*server, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	catalog, err := model.LoadCatalogFile(catalogPath)
	if errors.Is(err, os.ErrNotExist) {
		slog.Warn("card catalog not found, every card will be unknown", "path", catalogPath)
		catalog, err = model.NewCatalog(), nil
	}
	if err != nil {
		return nil, err
	}
	slog.Info("card catalog loaded", "cards", catalog.Count())

	var store journal.Store = journal.Nop{}
	if journalPath != "" {
		sqlite, err := journal.OpenSQLite(journalPath)
		if err != nil {
			return nil, err
		}
		store = sqlite
		slog.Info("decision journal enabled", "path", journalPath)
	}
	return &server{cfg: cfg, catalog: catalog, store: store}, nil
}

func (s *server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	framer, err := ipc.Upgrade(w, r)
	if err != nil {
		slog.Error("websocket upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}
	slog.Info("new websocket session", "remote", framer.RemoteAddr())
	s.serve(framer)
}

// serve runs one game instance until its connection closes.
func (s *server) serve(framer ipc.Framer) {
	c := ipc.NewConnection(framer, nil)
	a, err := agent.New(c, s.catalog, s.cfg, s.store)
	if err != nil {
		slog.Error("failed to start game instance", "error", err)
		_ = framer.Close()
		return
	}
	c.RegisterHandler(ipc.TypeHello, a.HandleHello)
	c.RegisterHandler(ipc.TypeDecision, a.HandleDecision)
	c.RegisterHandler(ipc.TypeOutcome, a.HandleOutcome)
	c.ReadLoop()
	slog.Info("game instance finished", "instance", a.InstanceID, "player", a.Player)
}
