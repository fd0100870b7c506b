package web

import (
	"embed"
	"encoding/json"
	"log"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"main/analyzer"
	"main/engine"
	"main/entity"
	"main/manager"
	"main/observer"
	"main/query"
)

//go:embed static/*
var staticFS embed.FS

// Controller is the session control surface the server drives. Implemented
// by the launch wiring, which also owns observer lifecycle.
type Controller interface {
	StartSession(blockedApps []string, durationMinutes int) (entity.FocusSession, error)
	EndSession() error
	QueryRemaining() (seconds int64, active bool)
	StartCollector() error
	StopCollector() error
	CollectorActive() bool
}

type Server struct {
	db       *query.Database
	lm       *manager.ListManager
	prefs    *manager.Prefs
	analyzer *analyzer.Analyzer
	control  Controller
}

func NewServer(db *query.Database, lm *manager.ListManager, prefs *manager.Prefs, an *analyzer.Analyzer, control Controller) *Server {
	return &Server{db: db, lm: lm, prefs: prefs, analyzer: an, control: control}
}

func (s *Server) Mux() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/", s.handleIndex)
	mux.Handle("/static/", http.FileServer(http.FS(staticFS)))

	mux.HandleFunc("/api/session/start", s.handleSessionStart)
	mux.HandleFunc("/api/session/end", s.handleSessionEnd)
	mux.HandleFunc("/api/session/remaining", s.handleSessionRemaining)
	mux.HandleFunc("/api/collector", s.handleCollector)
	mux.HandleFunc("/api/distracting", s.handleDistracting)
	mux.HandleFunc("/api/undistracting", s.handleUndistracting)
	mux.HandleFunc("/api/muted", s.handleMuted)
	mux.HandleFunc("/api/unmuted", s.handleUnmuted)
	mux.HandleFunc("/api/settings", s.handleSettings)
	mux.HandleFunc("/api/summary", s.handleSummary)
	mux.HandleFunc("/api/hourly", s.handleHourly)
	mux.HandleFunc("/api/baseline", s.handleBaseline)
	mux.HandleFunc("/api/classify", s.handleClassify)
	mux.HandleFunc("/api/prune", s.handlePrune)

	return mux
}

func StartServer(db *query.Database, lm *manager.ListManager, prefs *manager.Prefs, an *analyzer.Analyzer, control Controller) {
	s := NewServer(db, lm, prefs, an, control)

	go func() {
		// Bind explicitly to localhost so the control surface stays local.
		addr := "127.0.0.1:8080"
		log.Printf("Web UI available at http://%v\n", addr)
		if err := http.ListenAndServe(addr, s.Mux()); err != nil {
			log.Println("web server error:", err)
		}
	}()
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	data, _ := staticFS.ReadFile("static/index.html")
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(data)
}

func (s *Server) handleSessionStart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost { http.Error(w, "method not allowed", http.StatusMethodNotAllowed); return }
	type req struct {
		BlockedApps     []string `json:"blocked_apps"`
		DurationMinutes int      `json:"duration_minutes"`
	}
	var body req
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil { http.Error(w, "bad request", http.StatusBadRequest); return }
	apps := make([]string, 0, len(body.BlockedApps))
	for _, a := range body.BlockedApps {
		if a = strings.TrimSpace(a); a != "" { apps = append(apps, a) }
	}
	if len(apps) == 0 { http.Error(w, "blocked_apps empty", http.StatusBadRequest); return }
	if body.DurationMinutes <= 0 { http.Error(w, "duration_minutes must be positive", http.StatusBadRequest); return }
	session, err := s.control.StartSession(apps, body.DurationMinutes)
	if err != nil { http.Error(w, err.Error(), http.StatusInternalServerError); return }
	writeJSON(w, map[string]any{
		"status":            "ok",
		"blocked_apps":      session.BlockedPackages,
		"end_time":          session.EndTime().Format(time.RFC3339),
		"remaining_seconds": session.RemainingSeconds(time.Now()),
	})
}

func (s *Server) handleSessionEnd(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost { http.Error(w, "method not allowed", http.StatusMethodNotAllowed); return }
	if err := s.control.EndSession(); err != nil { http.Error(w, err.Error(), http.StatusInternalServerError); return }
	writeJSON(w, map[string]string{"status": "ok"})
}

func (s *Server) handleSessionRemaining(w http.ResponseWriter, r *http.Request) {
	seconds, active := s.control.QueryRemaining()
	writeJSON(w, map[string]any{"active": active, "remaining_seconds": seconds})
}

func (s *Server) handleCollector(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		writeJSON(w, map[string]any{"active": s.control.CollectorActive()})
		return
	}
	if r.Method != http.MethodPost { http.Error(w, "method not allowed", http.StatusMethodNotAllowed); return }
	type req struct{ Enabled bool `json:"enabled"` }
	var body req
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil { http.Error(w, "bad request", http.StatusBadRequest); return }
	var err error
	if body.Enabled { err = s.control.StartCollector() } else { err = s.control.StopCollector() }
	if err != nil { http.Error(w, err.Error(), http.StatusInternalServerError); return }
	writeJSON(w, map[string]string{"status": "ok"})
}

func (s *Server) handleDistracting(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		names, err := s.db.GetAllDistracting()
		if err != nil { http.Error(w, err.Error(), http.StatusInternalServerError); return }
		sort.Strings(names)
		writeJSON(w, names)
		return
	}
	if r.Method != http.MethodPost { http.Error(w, "method not allowed", http.StatusMethodNotAllowed); return }
	type req struct{ Name string `json:"name"` }
	var body req
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil { http.Error(w, "bad request", http.StatusBadRequest); return }
	name := strings.TrimSpace(body.Name)
	if name == "" { http.Error(w, "name empty", http.StatusBadRequest); return }
	if err := s.lm.AddDistracting(name); err != nil { http.Error(w, err.Error(), http.StatusInternalServerError); return }
	writeJSON(w, map[string]string{"status": "ok"})
}

func (s *Server) handleUndistracting(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost { http.Error(w, "method not allowed", http.StatusMethodNotAllowed); return }
	type req struct{ Name string `json:"name"` }
	var body req
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil { http.Error(w, "bad request", http.StatusBadRequest); return }
	name := strings.TrimSpace(body.Name)
	if name == "" { http.Error(w, "name empty", http.StatusBadRequest); return }
	if err := s.lm.RemoveDistracting(name); err != nil { http.Error(w, err.Error(), http.StatusInternalServerError); return }
	writeJSON(w, map[string]string{"status": "ok"})
}

func (s *Server) handleMuted(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		names := s.lm.MutedList()
		sort.Strings(names)
		writeJSON(w, names)
		return
	}
	if r.Method != http.MethodPost { http.Error(w, "method not allowed", http.StatusMethodNotAllowed); return }
	type req struct{ Name string `json:"name"` }
	var body req
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil { http.Error(w, "bad request", http.StatusBadRequest); return }
	name := strings.TrimSpace(body.Name)
	if name == "" { http.Error(w, "name empty", http.StatusBadRequest); return }
	if err := s.lm.MuteApp(name); err != nil { http.Error(w, err.Error(), http.StatusInternalServerError); return }
	writeJSON(w, map[string]string{"status": "ok"})
}

func (s *Server) handleUnmuted(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost { http.Error(w, "method not allowed", http.StatusMethodNotAllowed); return }
	type req struct{ Name string `json:"name"` }
	var body req
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil { http.Error(w, "bad request", http.StatusBadRequest); return }
	name := strings.TrimSpace(body.Name)
	if name == "" { http.Error(w, "name empty", http.StatusBadRequest); return }
	if err := s.lm.UnmuteApp(name); err != nil { http.Error(w, err.Error(), http.StatusInternalServerError); return }
	writeJSON(w, map[string]string{"status": "ok"})
}

func (s *Server) handleSettings(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		writeJSON(w, map[string]any{
			"psychological_mode":  s.prefs.PsychologicalMode(),
			"grayscale":           s.prefs.GrayscaleMode(),
			"reduced_sensitivity": s.prefs.ReducedSensitivity(),
			"soft_delay_seconds":  engine.SoftDelaySeconds,
		})
		return
	}
	if r.Method != http.MethodPost { http.Error(w, "method not allowed", http.StatusMethodNotAllowed); return }
	type req struct {
		PsychologicalMode  *bool `json:"psychological_mode"`
		Grayscale          *bool `json:"grayscale"`
		ReducedSensitivity *bool `json:"reduced_sensitivity"`
	}
	var body req
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil { http.Error(w, "bad request", http.StatusBadRequest); return }
	if body.PsychologicalMode != nil {
		if err := s.prefs.SetPsychologicalMode(*body.PsychologicalMode); err != nil { http.Error(w, err.Error(), http.StatusInternalServerError); return }
	}
	if body.Grayscale != nil {
		if err := s.prefs.SetGrayscaleMode(*body.Grayscale); err != nil { http.Error(w, err.Error(), http.StatusInternalServerError); return }
	}
	if body.ReducedSensitivity != nil {
		if err := s.prefs.SetReducedSensitivity(*body.ReducedSensitivity); err != nil { http.Error(w, err.Error(), http.StatusInternalServerError); return }
	}
	writeJSON(w, map[string]string{"status": "ok"})
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	days := queryDays(r, 7)
	items, err := s.db.GetSummarySince(days, time.Now())
	if err != nil { http.Error(w, err.Error(), http.StatusInternalServerError); return }
	counts, err := s.db.GetEventCountsSince(days, time.Now())
	if err != nil { http.Error(w, err.Error(), http.StatusInternalServerError); return }
	writeJSON(w, map[string]any{"days": days, "items": items, "event_counts": counts})
}

func (s *Server) handleHourly(w http.ResponseWriter, r *http.Request) {
	days := queryDays(r, 7)
	rows, err := s.db.GetHourlyHistogram(days, time.Now())
	if err != nil { http.Error(w, err.Error(), http.StatusInternalServerError); return }
	writeJSON(w, map[string]any{"days": days, "buckets": rows})
}

func (s *Server) handleBaseline(w http.ResponseWriter, r *http.Request) {
	days := queryDays(r, analyzer.DefaultBaselineDays)
	now := time.Now()
	profile, err := s.analyzer.BuildBaseline(days, now)
	if err != nil { http.Error(w, err.Error(), http.StatusInternalServerError); return }
	writeJSON(w, map[string]any{
		"days_analyzed":   profile.DaysAnalyzed,
		"work_hour_apps":  sortedKeys(profile.WorkHourApps),
		"evening_apps":    sortedKeys(profile.EveningApps),
		"enough_baseline": s.analyzer.HasEnoughBaseline(now),
	})
}

// handleClassify lets the UI probe the classifier for a given app/hour.
func (s *Server) handleClassify(w http.ResponseWriter, r *http.Request) {
	app := strings.TrimSpace(r.URL.Query().Get("app"))
	if app == "" { http.Error(w, "missing app", http.StatusBadRequest); return }
	now := time.Now()
	hour := now.Hour()
	if h := r.URL.Query().Get("hour"); h != "" {
		v, err := strconv.Atoi(h)
		if err != nil || v < 0 || v > 23 { http.Error(w, "bad hour", http.StatusBadRequest); return }
		hour = v
	}
	pattern := s.analyzer.IsDistractionLoop(app, hour, s.lm.DistractingSet(), "", now)
	writeJSON(w, map[string]any{"app": app, "hour": hour, "pattern": pattern})
}

func (s *Server) handlePrune(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost { http.Error(w, "method not allowed", http.StatusMethodNotAllowed); return }
	if err := s.db.PruneOldData(observer.RetentionDays, time.Now()); err != nil { http.Error(w, err.Error(), http.StatusInternalServerError); return }
	writeJSON(w, map[string]string{"status": "ok"})
}

func queryDays(r *http.Request, fallback int) int {
	if d := r.URL.Query().Get("days"); d != "" {
		if v, err := strconv.Atoi(d); err == nil && v > 0 {
			return v
		}
	}
	return fallback
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.Encode(v)
}
