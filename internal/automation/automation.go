// Package automation runs scripted sequences of headless sorting runs.
package automation

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/san-kum/sortviz/internal/config"
	"github.com/san-kum/sortviz/internal/driver"
	"github.com/san-kum/sortviz/internal/pacing"
	"github.com/san-kum/sortviz/internal/session"
	"github.com/san-kum/sortviz/internal/storage"
	"gopkg.in/yaml.v3"
)

// Scenario defines a scripted run sequence
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep is a single run in a scenario. Values take precedence over
// Preset.
type ScenarioStep struct {
	Algorithm string `yaml:"algorithm"`
	Values    []int  `yaml:"values"`
	Preset    string `yaml:"preset"`
	Speed     int    `yaml:"speed"`
	Save      bool   `yaml:"save"`
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	return &scenario, nil
}

type Runner struct {
	Curve  pacing.Curve
	Store  *storage.Store
	Logger *slog.Logger
}

// StepResult is the outcome of one scenario step. RunID is empty unless
// the step was saved.
type StepResult struct {
	Result *driver.Result
	RunID  string
}

// Run executes all steps in order and stops at the first failure.
func (r *Runner) Run(ctx context.Context, scenario *Scenario) ([]StepResult, error) {
	logger := r.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		logger.Info("scenario step", "scenario", scenario.Name, "step", i+1, "of", len(scenario.Steps), "algorithm", step.Algorithm)

		res, runID, err := r.runStep(ctx, step, logger)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
		results = append(results, StepResult{Result: res, RunID: runID})
	}

	return results, nil
}

func (r *Runner) runStep(ctx context.Context, step ScenarioStep, logger *slog.Logger) (*driver.Result, string, error) {
	algo, err := session.ParseAlgorithm(step.Algorithm)
	if err != nil {
		return nil, "", err
	}

	values := step.Values
	if len(values) == 0 {
		values = config.GetPreset(step.Preset)
		if values == nil {
			return nil, "", fmt.Errorf("no values and unknown preset %q", step.Preset)
		}
	}

	rec := storage.NewRecorder()
	d, err := driver.Setup(rec, r.Curve, nil, driver.WithLogger(logger))
	if err != nil {
		return nil, "", err
	}
	sess := d.Session()
	if err := sess.SetSequence(values); err != nil {
		return nil, "", err
	}
	if step.Speed != 0 {
		sess.SetSpeed(step.Speed)
	}
	if err := sess.SetAlgorithm(algo); err != nil {
		return nil, "", err
	}

	res, err := d.Run(ctx)
	if err != nil {
		return res, "", err
	}

	if !step.Save || r.Store == nil {
		return res, "", nil
	}
	if err := r.Store.Init(); err != nil {
		return res, "", err
	}
	runID, err := r.Store.Save(storage.FromResult(res, sess.Speed()), rec.Steps())
	return res, runID, err
}
