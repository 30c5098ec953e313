package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	auditinadapter "helmwatch/internal/modules/audit/adapter/in"
	auditoutadapter "helmwatch/internal/modules/audit/adapter/out"
	auditservice "helmwatch/internal/modules/audit/service"
	auditusecase "helmwatch/internal/modules/audit/usecase"
	connectivityinadapter "helmwatch/internal/modules/connectivity/adapter/in"
	connectivityoutadapter "helmwatch/internal/modules/connectivity/adapter/out"
	connectivityout "helmwatch/internal/modules/connectivity/port/out"
	connectivityservice "helmwatch/internal/modules/connectivity/service"
	connectivityusecase "helmwatch/internal/modules/connectivity/usecase"
	crewinadapter "helmwatch/internal/modules/crew/adapter/in"
	crewoutadapter "helmwatch/internal/modules/crew/adapter/out"
	crewdomain "helmwatch/internal/modules/crew/domain"
	crewservice "helmwatch/internal/modules/crew/service"
	crewusecase "helmwatch/internal/modules/crew/usecase"
	positioninadapter "helmwatch/internal/modules/position/adapter/in"
	positionoutadapter "helmwatch/internal/modules/position/adapter/out"
	positiondomain "helmwatch/internal/modules/position/domain"
	positionservice "helmwatch/internal/modules/position/service"
	positionusecase "helmwatch/internal/modules/position/usecase"
	presenceinadapter "helmwatch/internal/modules/presence/adapter/in"
	presenceservice "helmwatch/internal/modules/presence/service"
	presenceusecase "helmwatch/internal/modules/presence/usecase"
	safetyinadapter "helmwatch/internal/modules/safety/adapter/in"
	safetyservice "helmwatch/internal/modules/safety/service"
	safetyusecase "helmwatch/internal/modules/safety/usecase"
	sessioninadapter "helmwatch/internal/modules/session/adapter/in"
	sessionoutadapter "helmwatch/internal/modules/session/adapter/out"
	sessionservice "helmwatch/internal/modules/session/service"
	sessionusecase "helmwatch/internal/modules/session/usecase"
	telemetryinadapter "helmwatch/internal/modules/telemetry/adapter/in"
	telemetryoutadapter "helmwatch/internal/modules/telemetry/adapter/out"
	telemetryservice "helmwatch/internal/modules/telemetry/service"
	telemetryusecase "helmwatch/internal/modules/telemetry/usecase"
	"helmwatch/internal/platform/clock"
	"helmwatch/internal/platform/config"
	"helmwatch/internal/platform/id"
	"helmwatch/internal/platform/logging"
	"helmwatch/internal/platform/notify"
	"helmwatch/internal/platform/sqlite"
	"helmwatch/internal/platform/tx"
)

const (
	// SimulatedProbe selects the random-latency probe instead of a TCP dial.
	SimulatedProbe = "simulated"

	minimumVoyage = 15 * time.Minute
	toastDepth    = 32
)

// App holds the inbound adapters the CLI, the dashboard and the status
// server drive.
type App struct {
	AuditCLI        auditinadapter.CLIHandler
	TelemetryCLI    telemetryinadapter.CLIHandler
	TelemetryTUI    telemetryinadapter.TUIHandler
	ConnectivityCLI connectivityinadapter.CLIHandler
	CrewCLI         crewinadapter.CLIHandler
	SafetyCLI       safetyinadapter.CLIHandler
	SessionCLI      sessioninadapter.CLIHandler
	PresenceTUI     presenceinadapter.TUIHandler
	PositionCLI     positioninadapter.CLIHandler
	Toasts          <-chan notify.Notification
}

// Options tweak engine construction. The zero value is the production
// setup.
type Options struct {
	Clock  clock.Clock
	Logger *slog.Logger
	Link   connectivityinadapter.LinkSensor
	Probe  connectivityout.Probe
}

// Engine owns every component and its timers. Attach starts the
// background cadences, Detach cancels them, Close releases storage.
type Engine struct {
	App

	Settings config.Settings

	logger      *slog.Logger
	logFile     *os.File
	db          *sql.DB
	journal     *auditservice.Journal
	recorder    *telemetryservice.Recorder
	monitor     *connectivityservice.Monitor
	linkWatcher *connectivityinadapter.LinkWatcher
	simulator   *crewservice.Simulator
	session     *sessionservice.SessionClock
	watchdog    *presenceservice.Watchdog
	simulate    bool
}

func New(cfg config.Config, opts Options) (*Engine, error) {
	settings, err := config.LoadSettings(cfg.SettingsPath)
	if err != nil {
		return nil, err
	}
	e := &Engine{Settings: settings, simulate: settings.Simulation.Enabled}
	clk := opts.Clock
	if clk == nil {
		clk = clock.SystemClock{}
	}
	e.logger = opts.Logger
	if e.logger == nil {
		f, err := openLogFile(cfg.LogPath)
		if err != nil {
			return nil, err
		}
		e.logFile = f
		e.logger = logging.New(f, settings.LogLevel, "text")
	}
	ids := id.UUID{}
	ctx := context.Background()

	e.db, err = sqlite.Open(cfg.DBPath)
	if err != nil {
		e.closeLog()
		return nil, err
	}
	if err := e.wire(ctx, cfg, settings, clk, ids, opts); err != nil {
		_ = e.Close()
		return nil, err
	}
	return e, nil
}

func (e *Engine) wire(ctx context.Context, cfg config.Config, settings config.Settings, clk clock.Clock, ids id.Generator, opts Options) error {
	auditStore, err := auditoutadapter.NewSQLiteAuditStore(e.db)
	if err != nil {
		return fmt.Errorf("new audit store: %w", err)
	}
	e.journal = auditservice.NewJournal(auditStore, ids, clk, e.logger.With("component", "audit"), 0)

	toasts := notify.NewChannel(toastDepth)
	notifier := notify.Fanout{notify.NewLogNotifier(e.logger.With("component", "notify")), toasts}

	flagStore := telemetryoutadapter.NewSettingsFlagStore(cfg.SettingsPath)
	e.recorder = telemetryservice.NewRecorder(
		clk,
		ids,
		telemetryoutadapter.NewCBORLogStore(cfg.TelemetryPath),
		telemetryoutadapter.NewRuntimeEnvironment(),
		notifier,
		e.logger.With("component", "telemetry"),
	)
	if settings.DeveloperMode {
		if err := e.recorder.Restore(ctx); err != nil {
			e.logger.Warn("restore telemetry buffer", "error", err)
		}
	}
	telemetryUC := telemetryusecase.NewInteractor(e.recorder, flagStore)

	probe := opts.Probe
	if probe == nil {
		probe = newProbe(settings.ProbeAddress)
	}
	e.monitor = connectivityservice.NewMonitor(clk, probe, e.journal, e.recorder, notifier, e.logger.With("component", "connectivity"), connectivityservice.Options{
		Heartbeat:    settings.HeartbeatInterval,
		LagThreshold: settings.LagThreshold,
	})
	connectivityUC := connectivityusecase.NewInteractor(e.monitor)
	link := opts.Link
	if link == nil {
		link = connectivityinadapter.InterfaceSensor
	}
	e.linkWatcher = connectivityinadapter.NewLinkWatcher(connectivityUC, link, clk, connectivityinadapter.DefaultLinkPoll)

	rosterStore, err := crewoutadapter.NewSQLiteRosterStore(e.db)
	if err != nil {
		return fmt.Errorf("new roster store: %w", err)
	}
	roster, err := crewservice.NewRoster(clk, rosterStore, e.journal, e.recorder, notifier, e.logger.With("component", "crew"), seedCrew(settings))
	if err != nil {
		return fmt.Errorf("new roster: %w", err)
	}
	if err := roster.Restore(ctx); err != nil {
		e.logger.Warn("restore roster", "error", err)
	}
	e.simulator = crewservice.NewSimulator(roster, rand.New(rand.NewSource(clk.Now().UnixNano())), clk, settings.Simulation.Interval, settings.Simulation.Chance)
	crewUC := crewusecase.NewInteractor(roster)

	sessionStore, err := sessionoutadapter.NewSQLiteSessionStore(e.db)
	if err != nil {
		return fmt.Errorf("new session store: %w", err)
	}
	logbook := sessionoutadapter.NewLogbookSummarySink(cfg.LogbookDir)
	e.session = sessionservice.NewSessionClock(
		clk,
		ids,
		sessionStore,
		tx.NewSQLManager(e.db),
		sessionservice.Hooks{
			Summary:       logbook,
			MorningReview: sessionoutadapter.NewUnsignedReview(sessionStore, notifier),
			StopGate:      sessionoutadapter.NewMinDurationGate(minimumVoyage),
		},
		e.recorder,
		notifier,
		e.logger.With("component", "session"),
		sessionservice.Options{
			HourlyRate:    settings.HourlyRate,
			ShiftDuration: time.Duration(settings.ShiftDurationHours * float64(time.Hour)),
		},
	)

	e.watchdog = presenceservice.NewWatchdog(clk, roster, e.session, e.recorder, e.logger.With("component", "presence"), presenceservice.Options{
		TabAway:       settings.DriftTabAway,
		IdleThreshold: settings.IdleThreshold,
		IdleCheck:     settings.IdleCheckInterval,
	})

	throttler := safetyservice.NewThrottler(clk, e.journal, e.recorder, notifier, settings.SafetyWindow, settings.SafetyLimit)

	fallback := settings.FallbackLocation
	resolver := positionservice.NewResolver(
		clk,
		positionoutadapter.NewEnvLocator(positionoutadapter.NewSettingsLocator(settings.Location)),
		e.recorder,
		fallback.Label,
		positiondomain.Coordinates{Latitude: fallback.Latitude, Longitude: fallback.Longitude},
		positionservice.DefaultTimeout,
	)

	e.App = App{
		AuditCLI:        auditinadapter.NewCLIHandler(auditusecase.NewInteractor(auditStore)),
		TelemetryCLI:    telemetryinadapter.NewCLIHandler(telemetryUC),
		TelemetryTUI:    telemetryinadapter.NewTUIHandler(telemetryUC),
		ConnectivityCLI: connectivityinadapter.NewCLIHandler(connectivityUC),
		CrewCLI:         crewinadapter.NewCLIHandler(crewUC),
		SafetyCLI:       safetyinadapter.NewCLIHandler(safetyusecase.NewInteractor(throttler, crewUC)),
		SessionCLI:      sessioninadapter.NewCLIHandler(sessionusecase.NewInteractor(e.session, logbook)),
		PresenceTUI:     presenceinadapter.NewTUIHandler(presenceusecase.NewInteractor(e.watchdog)),
		PositionCLI:     positioninadapter.NewCLIHandler(positionusecase.NewInteractor(resolver)),
		Toasts:          toasts.C(),
	}
	return nil
}

// Attach starts every background cadence: session tick, connectivity
// heartbeat, link polling, idle checks and the crew simulation.
func (e *Engine) Attach(ctx context.Context) error {
	if err := e.session.Attach(ctx); err != nil {
		return err
	}
	e.monitor.Attach(ctx)
	e.linkWatcher.Attach(ctx)
	e.watchdog.Attach(ctx)
	if e.simulate {
		e.simulator.Attach(ctx)
	}
	e.recorder.Info("engine", "engine attached", map[string]any{"simulation": e.simulate})
	return nil
}

// Detach cancels every timer. It is safe to call more than once.
func (e *Engine) Detach() {
	e.simulator.Detach()
	e.watchdog.Detach()
	e.linkWatcher.Detach()
	e.monitor.Detach()
	e.session.Detach()
	e.recorder.StopHeartbeat()
}

// Close detaches, drains the audit journal and closes storage.
func (e *Engine) Close() error {
	if e.session != nil {
		e.Detach()
	}
	if e.journal != nil {
		e.journal.Close()
	}
	var err error
	if e.db != nil {
		err = e.db.Close()
	}
	e.closeLog()
	return err
}

func (e *Engine) Logger() *slog.Logger {
	return e.logger
}

func (e *Engine) closeLog() {
	if e.logFile != nil {
		_ = e.logFile.Close()
		e.logFile = nil
	}
}

func newProbe(address string) connectivityout.Probe {
	if strings.EqualFold(strings.TrimSpace(address), SimulatedProbe) {
		return connectivityoutadapter.NewSimulatedProbe(rand.New(rand.NewSource(time.Now().UnixNano())), 20*time.Millisecond, 1500*time.Millisecond, 0.05)
	}
	return connectivityoutadapter.NewTCPProbe(address)
}

// seedCrew puts the operator first; the simulated hands join only when
// the simulation is enabled.
func seedCrew(settings config.Settings) []crewdomain.Member {
	op := settings.Operator
	crew := []crewdomain.Member{{ID: op.ID, Name: op.Name, Role: op.Role, Kind: crewdomain.KindOperator}}
	if !settings.Simulation.Enabled {
		return crew
	}
	return append(crew,
		crewdomain.Member{ID: "mate", Name: "First Mate", Role: "Mate", Kind: crewdomain.KindSimulated},
		crewdomain.Member{ID: "navigator", Name: "Navigator", Role: "Navigator", Kind: crewdomain.KindSimulated},
		crewdomain.Member{ID: "bosun", Name: "Bosun", Role: "Boatswain", Kind: crewdomain.KindSimulated},
	)
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}
