// Command server exposes the simulator over HTTP. Teams are dealt from
// the player pool per request; nothing is persisted between calls.
package main

import (
	"encoding/json"
	"errors"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/tbontb/cricket-sim/internal/cricket"
	"github.com/tbontb/cricket-sim/internal/report"
	"github.com/tbontb/cricket-sim/internal/roster"
	"github.com/tbontb/cricket-sim/internal/rules"
)

type config struct {
	Port        string        `env:"PORT" envDefault:"8080"`
	PlayersFile string        `env:"PLAYERS_FILE" envDefault:"json/TBONTB_players_summary.json"`
	RulesDir    string        `env:"RULES_DIR" envDefault:"rules"`
	RulesPoll   time.Duration `env:"RULES_POLL" envDefault:"10s"`
	MaxTrials   int           `env:"MAX_TRIALS" envDefault:"2000"`
}

type server struct {
	cfg    config
	pool   *roster.Pool
	loader *rules.Loader
	log    *slog.Logger
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	var cfg config
	if err := env.Parse(&cfg); err != nil {
		logger.Error("config", "err", err)
		os.Exit(1)
	}

	pool, err := roster.Load(cfg.PlayersFile)
	if err != nil {
		logger.Error("load players", "file", cfg.PlayersFile, "err", err)
		os.Exit(1)
	}

	s := &server{
		cfg:    cfg,
		pool:   pool,
		loader: rules.NewLoader(cfg.RulesDir),
		log:    logger,
	}

	// rule files can be edited while the server runs
	watcher := rules.NewWatcher(cfg.RulesDir, cfg.RulesPoll, func(path string) {
		logger.Info("rules changed, cache cleared", "path", path)
		s.loader.Invalidate()
	})
	watcher.Start()
	defer watcher.Stop()

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Get("/healthz", s.handleHealth)
	r.Get("/simulate", s.handleSimulate)
	r.Get("/batch", s.handleBatch)

	logger.Info("listening", "port", cfg.Port, "players", pool.Size())
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		logger.Error("server", "err", err)
		os.Exit(1)
	}
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"players": s.pool.Size(),
	})
}

// GET /simulate?format=LMS&style=matchup&variant=&seed=42&output=BALL_BY_BALL
//
// seed is optional; a random one is drawn and echoed back so any match can
// be replayed exactly.
func (s *server) handleSimulate(w http.ResponseWriter, r *http.Request) {
	cfg, params, ok := s.resolveRules(w, r)
	if !ok {
		return
	}

	seed, err := parseSeed(r)
	if err != nil {
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}

	mode := r.URL.Query().Get("output")
	if mode == "" {
		mode = report.ModeScorecardOnly
	}
	opts, err := report.OptionsForMode(mode)
	if err != nil {
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}

	teamA, teamB, err := roster.DemoTeams(s.pool, cfg.TeamSize, cricket.NewSeededRNG(seed^0xD5))
	if err != nil {
		writeErr(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	m, err := cricket.PlaySeededMatch(teamA, teamB, cfg, params, seed, opts)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.log.Info("simulated match", "seed", seed, "style", cfg.Style, "result", m.Result.Text)
	writeJSON(w, http.StatusOK, report.BuildExport(m))
}

// GET /batch?trials=100&format=LMS&seed=1
func (s *server) handleBatch(w http.ResponseWriter, r *http.Request) {
	cfg, params, ok := s.resolveRules(w, r)
	if !ok {
		return
	}

	trials := 100
	if raw := r.URL.Query().Get("trials"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeErr(w, http.StatusBadRequest, "invalid trials")
			return
		}
		trials = n
	}
	if trials > s.cfg.MaxTrials {
		writeErr(w, http.StatusBadRequest, "trials exceeds limit "+strconv.Itoa(s.cfg.MaxTrials))
		return
	}

	seed, err := parseSeed(r)
	if err != nil {
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}

	teamA, teamB, err := roster.DemoTeams(s.pool, cfg.TeamSize, cricket.NewSeededRNG(seed^0xD5))
	if err != nil {
		writeErr(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	start := time.Now()
	res, err := cricket.RunBatch(teamA, teamB, cfg, params, cricket.BatchParams{
		Trials:    trials,
		BaseSeed:  seed,
		Alternate: true,
	})
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.log.Info("ran batch", "trials", trials, "seed", seed, "elapsed", time.Since(start))
	writeJSON(w, http.StatusOK, map[string]any{
		"seed":   seed,
		"team_a": teamA.Name,
		"team_b": teamB.Name,
		"batch":  res,
	})
}

// resolveRules reads format/variant/style from the query and produces a
// validated config. Writes the error response itself on failure.
func (s *server) resolveRules(w http.ResponseWriter, r *http.Request) (cricket.MatchConfig, cricket.ModelParams, bool) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "LMS"
	}
	cfg, params, err := s.loader.Resolve(format, r.URL.Query().Get("variant"))
	if err != nil {
		writeErr(w, http.StatusBadRequest, err.Error())
		return cricket.MatchConfig{}, cricket.ModelParams{}, false
	}
	if style := r.URL.Query().Get("style"); style != "" {
		cfg.Style = style
		if err := cfg.Validate(); err != nil {
			writeErr(w, http.StatusBadRequest, err.Error())
			return cricket.MatchConfig{}, cricket.ModelParams{}, false
		}
	}
	return cfg, params, true
}

func parseSeed(r *http.Request) (uint64, error) {
	raw := r.URL.Query().Get("seed")
	if raw == "" {
		return rand.Uint64(), nil
	}
	seed, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, errors.New("invalid seed")
	}
	return seed, nil
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"err": msg})
}
