package launch

import (
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/getlantern/systray"

	"main/analyzer"
	"main/engine"
	"main/entity"
	"main/manager"
	"main/observer"
	"main/query"
	"main/web"
)

func StartProgramme() {
	systray.Run(onReady, onExit)
}

func onReady() {
	icon, err := os.ReadFile("./icon.ico")
	if err == nil {
		systray.SetIcon(icon)
	}

	systray.SetTitle("FocusShield")
	systray.SetTooltip("No active session")

	go mainProgram()

	mOpenWeb := systray.AddMenuItem("Open Web UI", "Open http://localhost:8080 in the browser")
	mEnd := systray.AddMenuItem("End session", "End the current focus session")
	mQuit := systray.AddMenuItem("Quit", "Quit the application")

	go func() {
		for {
			select {
			case <-mOpenWeb.ClickedCh:
				_ = exec.Command("rundll32", "url.dll,FileProtocolHandler", "http://localhost:8080").Start()
			case <-mEnd.ClickedCh:
				if app != nil {
					if err := app.EndSession(); err != nil {
						log.Println("end session:", err)
					}
				}
			case <-mQuit.ClickedCh:
				systray.Quit()
				return
			}
		}
	}()
}

func onExit() {
	if app != nil {
		app.shutdown()
	}
	os.Exit(0)
}

var app *App

func mainProgram() {
	db, err := query.InitDatabase()
	if err != nil {
		log.Fatal(err)
	}

	a, err := NewApp(db, nil, nil, nil)
	if err != nil {
		log.Fatal(err)
	}
	app = a

	web.StartServer(a.db, a.lists, a.prefs, a.analyzer, a)

	// Restart observers for whatever was running before the process died.
	a.Recover()
}

// App wires the engine together and owns the observer lifecycle. It is
// the web package's session controller.
type App struct {
	db       *query.Database
	lists    *manager.ListManager
	prefs    *manager.Prefs
	analyzer *analyzer.Analyzer
	engine   *engine.Engine

	enforcePoll *observer.PollObserver
	collectPoll *observer.PollObserver
	eventObs    *observer.EventObserver
	unlock      *observer.UnlockWatcher
}

// NewApp builds the full wiring. dispatcher, winSrc and unlockSrc are the
// optional platform collaborators; nil means the capability is absent and
// the poll observer carries enforcement alone.
func NewApp(db *query.Database, dispatcher engine.Dispatcher, winSrc observer.WindowChangeSource, unlockSrc observer.UnlockSource) (*App, error) {
	lists, err := manager.NewListManager(db.DB)
	if err != nil {
		return nil, fmt.Errorf("NewApp: %w", err)
	}
	prefs := manager.NewPrefs(db)
	an := analyzer.New(db)

	selfApp := filepath.Base(os.Args[0])
	eng := engine.New(db, lists, prefs, an, dispatcher, selfApp)
	eng.SetStatusFunc(func(remaining int64) {
		systray.SetTooltip(fmt.Sprintf("Focus session: %02d:%02d remaining", remaining/60, remaining%60))
	})

	source := observer.NewProcessSource()
	recorder := observer.NewRecorder(db, selfApp)
	enforcePipe := observer.NewEnforcementPipeline(recorder, eng)
	collectPipe := observer.NewCollectionPipeline(recorder)

	a := &App{
		db:          db,
		lists:       lists,
		prefs:       prefs,
		analyzer:    an,
		engine:      eng,
		enforcePoll: observer.NewEnforcementPollObserver(source, enforcePipe),
		collectPoll: observer.NewCollectionPollObserver(source, collectPipe, db),
	}
	// Natural expiry ends the loop without EndSession; clear the session
	// display there too.
	a.enforcePoll.SetOnStop(func() {
		systray.SetTooltip("No active session")
	})
	if winSrc != nil {
		a.eventObs = observer.NewEventObserver(winSrc, enforcePipe)
	}
	if unlockSrc != nil {
		a.unlock = observer.NewUnlockWatcher(unlockSrc, source, db, selfApp)
		if err := a.unlock.Start(); err != nil {
			log.Println("unlock watcher:", err)
		}
	}
	return a, nil
}

// StartSession persists a new session (overwriting any existing one) and
// starts the enforcement observers.
func (a *App) StartSession(blockedApps []string, durationMinutes int) (entity.FocusSession, error) {
	session := entity.NewFocusSession(blockedApps, durationMinutes, time.Now())
	if err := a.db.SaveSession(session); err != nil {
		return entity.FocusSession{}, fmt.Errorf("StartSession: %w", err)
	}
	a.startEnforcement()
	return session, nil
}

// EndSession clears the session and stops enforcement, flushing dwell.
func (a *App) EndSession() error {
	if err := a.db.ClearSession(); err != nil {
		return fmt.Errorf("EndSession: %w", err)
	}
	a.stopEnforcement()
	systray.SetTooltip("No active session")
	return nil
}

func (a *App) QueryRemaining() (int64, bool) {
	now := time.Now()
	session := a.db.GetActiveSession(now)
	if session == nil {
		return 0, false
	}
	return session.RemainingSeconds(now), true
}

func (a *App) StartCollector() error {
	if err := a.prefs.SetCollectorActive(true); err != nil {
		return err
	}
	a.collectPoll.Start()
	return nil
}

func (a *App) StopCollector() error {
	if err := a.prefs.SetCollectorActive(false); err != nil {
		return err
	}
	a.collectPoll.Stop()
	return nil
}

func (a *App) CollectorActive() bool {
	return a.collectPoll.Running()
}

// Recover re-derives observer state from durable storage after a process
// restart or device reboot. Nothing in memory is required for resumption.
func (a *App) Recover() {
	if a.db.GetActiveSession(time.Now()) != nil {
		log.Println("recovering active focus session")
		a.startEnforcement()
	}
	if a.prefs.CollectorActive() {
		log.Println("recovering baseline collection")
		a.collectPoll.Start()
	}
}

func (a *App) startEnforcement() {
	a.enforcePoll.Start()
	if a.eventObs != nil {
		if err := a.eventObs.Start(); err != nil {
			// Capability not granted: the poll observer alone suffices.
			log.Println("event observer unavailable:", err)
		}
	}
}

func (a *App) stopEnforcement() {
	a.enforcePoll.Stop()
	if a.eventObs != nil {
		a.eventObs.Stop()
	}
}

func (a *App) shutdown() {
	a.stopEnforcement()
	a.collectPoll.Stop()
	if a.unlock != nil {
		a.unlock.Stop()
	}
}
