package rules

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/tbontb/cricket-sim/internal/cricket"
)

// Paths helper for default/format/variant rule files.
type Paths struct {
	BaseDir string // base directory, e.g. /opt/app/rules
}

func (p Paths) DefaultPath() string {
	return filepath.Join(p.BaseDir, "default.yaml")
}
func (p Paths) FormatPath(format string) string {
	return filepath.Join(p.BaseDir, strings.ToLower(format)+".yaml")
}
func (p Paths) VariantPath(format, variant string) string {
	return filepath.Join(p.BaseDir, strings.ToLower(format), "variants", variant+".yaml")
}

// Loader reads YAML rule files and merges default -> format -> variant.
// Every file is optional; the built-in format presets always apply first.
type Loader struct {
	paths Paths

	mu    sync.RWMutex
	cache map[string]RawRules // key: "format" or "format/variant"
}

func NewLoader(baseDir string) *Loader {
	return &Loader{
		paths: Paths{BaseDir: baseDir},
		cache: make(map[string]RawRules),
	}
}

// LoadMerged loads and merges default -> format -> variant (variant
// optional). It returns the merged RawRules without resolving them.
func (l *Loader) LoadMerged(format, variant string) (RawRules, error) {
	key := format
	if variant != "" {
		key = format + "/" + variant
	}
	l.mu.RLock()
	if raw, ok := l.cache[key]; ok {
		l.mu.RUnlock()
		return raw, nil
	}
	l.mu.RUnlock()

	defRules, err := readYAML(l.paths.DefaultPath())
	if err != nil {
		return RawRules{}, fmt.Errorf("read default rules: %w", err)
	}
	fmtRules, err := readYAML(l.paths.FormatPath(format))
	if err != nil {
		return RawRules{}, fmt.Errorf("read %s rules: %w", format, err)
	}
	var varRules RawRules
	if variant != "" {
		if varRules, err = readYAML(l.paths.VariantPath(format, variant)); err != nil {
			return RawRules{}, fmt.Errorf("read %s/%s rules: %w", format, variant, err)
		}
	}

	merged := mergeRaw(mergeRaw(defRules, fmtRules), varRules)

	l.mu.Lock()
	l.cache[key] = merged
	l.mu.Unlock()
	return merged, nil
}

// Invalidate clears the cache. Call after the watcher reports a change.
func (l *Loader) Invalidate() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cache = make(map[string]RawRules)
}

// Resolve merges rule files over the built-in preset for the format and
// produces a validated MatchConfig plus ModelParams.
func (l *Loader) Resolve(format, variant string) (cricket.MatchConfig, cricket.ModelParams, error) {
	cfg, err := cricket.ConfigForType(format)
	if err != nil {
		return cricket.MatchConfig{}, cricket.ModelParams{}, err
	}
	params := cricket.DefaultModelParams()

	raw, err := l.LoadMerged(format, variant)
	if err != nil {
		return cricket.MatchConfig{}, cricket.ModelParams{}, err
	}
	if err := ValidateRaw(raw); err != nil {
		return cricket.MatchConfig{}, cricket.ModelParams{}, err
	}

	applyMatch(&cfg, raw.Match)
	applyModel(&params, raw.Model)

	if err := cfg.Validate(); err != nil {
		return cricket.MatchConfig{}, cricket.ModelParams{}, err
	}
	return cfg, params, nil
}

// readYAML loads one rules file. Missing files return zero rules, no error.
func readYAML(path string) (RawRules, error) {
	var raw RawRules
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return RawRules{}, nil
		}
		return RawRules{}, err
	}
	if err := yaml.Unmarshal(b, &raw); err != nil {
		return RawRules{}, err
	}
	return raw, nil
}

// mergeRaw deep-merges: 'b' overrides 'a' where set.
func mergeRaw(a, b RawRules) RawRules {
	out := a

	if b.Version != "" {
		out.Version = b.Version
	}
	if b.Notes != "" {
		out.Notes = b.Notes
	}

	out.Match = mergeMatch(out.Match, b.Match)

	switch {
	case out.Model == nil && b.Model != nil:
		c := *b.Model
		out.Model = &c
	case out.Model != nil && b.Model != nil:
		m := mergeModel(*out.Model, *b.Model)
		out.Model = &m
	}
	return out
}

func mergeMatch(a, b MatchCfg) MatchCfg {
	if b.BallsPerOver != nil {
		a.BallsPerOver = b.BallsPerOver
	}
	if b.BallsPerInnings != nil {
		a.BallsPerInnings = b.BallsPerInnings
	}
	if b.TeamSize != nil {
		a.TeamSize = b.TeamSize
	}
	if b.RetirementThreshold != nil {
		a.RetirementThreshold = b.RetirementThreshold
	}
	if b.PenaltyProb != nil {
		a.PenaltyProb = b.PenaltyProb
	}
	if b.FreeHits != nil {
		a.FreeHits = b.FreeHits
	}
	if b.LastBatterStands != nil {
		a.LastBatterStands = b.LastBatterStands
	}
	if b.MaxBowlers != nil {
		a.MaxBowlers = b.MaxBowlers
	}
	if b.Style != "" {
		a.Style = b.Style
	}
	if b.Mindset != "" {
		a.Mindset = b.Mindset
	}
	return a
}

func mergeModel(a, b ModelCfg) ModelCfg {
	if b.NeutralBatSkill != nil {
		a.NeutralBatSkill = b.NeutralBatSkill
	}
	if b.DefaultWPB != nil {
		a.DefaultWPB = b.DefaultWPB
	}
	if b.WicketBase != nil {
		a.WicketBase = b.WicketBase
	}
	if b.WicketBowlWt != nil {
		a.WicketBowlWt = b.WicketBowlWt
	}
	if b.WicketBatWt != nil {
		a.WicketBatWt = b.WicketBatWt
	}
	if b.WicketFloor != nil {
		a.WicketFloor = b.WicketFloor
	}
	if b.WicketCeil != nil {
		a.WicketCeil = b.WicketCeil
	}
	if b.FourFloor != nil {
		a.FourFloor = b.FourFloor
	}
	if b.SixFloor != nil {
		a.SixFloor = b.SixFloor
	}
	if b.FourScale != nil {
		a.FourScale = b.FourScale
	}
	if b.SixScale != nil {
		a.SixScale = b.SixScale
	}
	if b.BaseSplit != nil {
		a.BaseSplit = b.BaseSplit
	}
	if b.MatchupFloor != nil {
		a.MatchupFloor = b.MatchupFloor
	}
	if b.MatchupCeil != nil {
		a.MatchupCeil = b.MatchupCeil
	}
	if b.PressureCap != nil {
		a.PressureCap = b.PressureCap
	}
	return a
}

func applyMatch(cfg *cricket.MatchConfig, m MatchCfg) {
	if m.BallsPerOver != nil {
		cfg.BallsPerOver = *m.BallsPerOver
	}
	if m.BallsPerInnings != nil {
		cfg.BallsPerInnings = *m.BallsPerInnings
	}
	if m.TeamSize != nil {
		cfg.TeamSize = *m.TeamSize
	}
	if m.RetirementThreshold != nil {
		cfg.RetirementThreshold = *m.RetirementThreshold
	}
	if m.PenaltyProb != nil {
		cfg.PenaltyProb = *m.PenaltyProb
	}
	if m.FreeHits != nil {
		cfg.FreeHits = *m.FreeHits
	}
	if m.LastBatterStands != nil {
		cfg.LastBatterStands = *m.LastBatterStands
	}
	if m.MaxBowlers != nil {
		cfg.MaxBowlers = *m.MaxBowlers
	}
	if m.Style != "" {
		cfg.Style = m.Style
	}
	if m.Mindset != "" {
		cfg.Mindset = m.Mindset
	}
}

func applyModel(params *cricket.ModelParams, m *ModelCfg) {
	if m == nil {
		return
	}
	if m.NeutralBatSkill != nil {
		params.NeutralBatSkill = *m.NeutralBatSkill
	}
	if m.DefaultWPB != nil {
		params.DefaultWPB = *m.DefaultWPB
	}
	if m.WicketBase != nil {
		params.WicketBase = *m.WicketBase
	}
	if m.WicketBowlWt != nil {
		params.WicketBowlWeight = *m.WicketBowlWt
	}
	if m.WicketBatWt != nil {
		params.WicketBatWeight = *m.WicketBatWt
	}
	if m.WicketFloor != nil {
		params.WicketFloor = *m.WicketFloor
	}
	if m.WicketCeil != nil {
		params.WicketCeil = *m.WicketCeil
	}
	if m.FourFloor != nil {
		params.FourFloor = *m.FourFloor
	}
	if m.SixFloor != nil {
		params.SixFloor = *m.SixFloor
	}
	if m.FourScale != nil {
		params.FourScale = *m.FourScale
	}
	if m.SixScale != nil {
		params.SixScale = *m.SixScale
	}
	if m.BaseSplit != nil {
		params.BaseSplit = *m.BaseSplit
	}
	if m.MatchupFloor != nil {
		params.MatchupFloor = *m.MatchupFloor
	}
	if m.MatchupCeil != nil {
		params.MatchupCeil = *m.MatchupCeil
	}
	if m.PressureCap != nil {
		params.PressureCap = *m.PressureCap
	}
}
