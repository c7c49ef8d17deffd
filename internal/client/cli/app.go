package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/smpn3pacet/pustaka/internal/client/client"
	"github.com/smpn3pacet/pustaka/internal/client/config"
	"github.com/smpn3pacet/pustaka/internal/client/services"
	"github.com/smpn3pacet/pustaka/internal/logging"

	_ "modernc.org/sqlite"
)

// Mode reflects endpoint reachability as probed by the online status watcher.
// It is a connectivity indicator for the prompt; sync state is reported
// separately by the item service.
type Mode string

const (
	ModeOnline  Mode = "online"
	ModeOffline Mode = "offline"
)

// App wires the configuration, the local store, the remote client and the
// item service together behind the REPL.
type App struct {
	config *config.Config
	items  services.ItemService
	api    client.Client
	log    logging.Logger
	reader *bufio.Reader
	repos  *client.Repositories

	modeMu sync.Mutex
	mode   Mode
}

func NewApp(c *config.Config, log logging.Logger) (*App, error) {
	ctx := context.Background()

	repos, err := client.InitDatabase(ctx, c.DatabaseDSN)
	if err != nil {
		log.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	apiClient := client.NewHTTPClient(c.EndpointURL)

	is := services.NewItemService(apiClient, repos.Items, log, services.Options{
		AdminSecret:    c.AdminSecret,
		ProvisionalTTL: c.ProvisionalTTL,
		RefetchDelay:   c.RefetchDelay,
		MaxImageWidth:  c.MaxImageWidth,
		JpegQuality:    c.JpegQuality,
	})

	return &App{
		config: c,
		items:  is,
		api:    apiClient,
		log:    log,
		reader: bufio.NewReader(os.Stdin),
		repos:  repos,
		mode:   ModeOnline,
	}, nil
}

func (a *App) setMode(mode Mode) {
	a.modeMu.Lock()
	defer a.modeMu.Unlock()
	if a.mode != mode {
		a.mode = mode
		a.log.Info(context.Background(), "connectivity changed", "mode", mode)
	}
}

func (a *App) getMode() Mode {
	a.modeMu.Lock()
	defer a.modeMu.Unlock()
	return a.mode
}

// Run performs an initial refresh, starts the background loops and hands
// control to the REPL until the user exits or ctx is cancelled.
func (a *App) Run(ctx context.Context) {
	defer a.repos.DB.Close()

	ictx, cancel := context.WithTimeout(ctx, 30*time.Second)
	if err := a.items.Refresh(ictx); err != nil {
		a.log.Warn(ctx, "initial refresh failed, serving local data", "error", err)
	}
	cancel()

	go a.StartBackgroundRefresh(ctx, a.config.RefreshInterval)
	go a.StartOnlineStatusWatcher(ctx, a.config.PingInterval)

	printlnFn("Pustaka CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, func() string {
		return fmt.Sprintf("%s, %s", a.items.Status(), a.getMode())
	}, scanner)
}

// StartBackgroundRefresh periodically fetches and reconciles the remote
// collection until ctx is cancelled. Failures are already reflected in the
// service status, so they are not logged again here.
func (a *App) StartBackgroundRefresh(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			_ = a.items.Refresh(rctx)
			cancel()

		case <-ctx.Done():
			return
		}
	}
}

// StartOnlineStatusWatcher probes endpoint reachability on a fixed interval
// and keeps the connectivity mode shown in the prompt current.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			pctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			err := a.api.Ping(pctx)
			cancel()

			if err != nil {
				a.setMode(ModeOffline)
			} else {
				a.setMode(ModeOnline)
			}

		case <-ctx.Done():
			return
		}
	}
}
