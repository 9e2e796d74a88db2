package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"ocean-predict/internal/domain"
	"ocean-predict/internal/inference"
	"ocean-predict/internal/scoring"
)

const (
	colorGreen = "\033[32m"
	colorRed   = "\033[31m"
	colorCyan  = "\033[36m"
	colorReset = "\033[0m"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Run canned texts and compare the dominant trait with the expected one",
	Long:  "Runs a fixed set of texts through the lexicon engine and, when HF_API_TOKEN is set, through the inference provider too, reporting how often the dominant trait matches.",
	Args:  cobra.NoArgs,
	RunE:  runCheck,
}

var checkProvider bool

func init() {
	checkCmd.Flags().BoolVar(&checkProvider, "provider", true, "Also query the inference provider when HF_API_TOKEN is set")

	rootCmd.AddCommand(checkCmd)
}

// Scenario es un texto con el rasgo que deberia dominar.
type Scenario struct {
	Name     string
	Text     string
	Expected domain.Trait
}

var scenarios = []Scenario{
	{
		Name:     "planner",
		Text:     "I always plan my week carefully. I organize my tasks, keep a schedule and finish every project on time. Being prepared and responsible matters to me.",
		Expected: domain.Conscientiousness,
	},
	{
		Name:     "party",
		Text:     "We love meeting new people! Parties with friends are the best, we talk and laugh together all night. Social events give us so much energy!",
		Expected: domain.Extraversion,
	},
	{
		Name:     "worrier",
		Text:     "I worry constantly and feel anxious about everything. Stress keeps me awake, I feel nervous and sad, and I never stop thinking that something will go wrong.",
		Expected: domain.Neuroticism,
	},
	{
		Name:     "dreamer",
		Text:     "Philosophy and abstract theories fascinate me. I imagine new ideas, explore art and creative concepts, and I am curious about everything unconventional.",
		Expected: domain.Openness,
	},
	{
		Name:     "helper",
		Text:     "Helping others makes me happy. I try to be kind, patient and understanding, and I care deeply about the people around me. Thank you for trusting me.",
		Expected: domain.Agreeableness,
	},
}

// checkEnv usa los nombres de config.Config sin exigir DATABASE_URL.
type checkEnv struct {
	HFAPIToken string   `env:"HF_API_TOKEN"`
	HFBaseURL  string   `env:"HF_BASE_URL" envDefault:"https://router.huggingface.co"`
	HFModelID  string   `env:"HF_MODEL_ID" envDefault:"Minej/bert-base-personality"`
	Fallbacks  []string `env:"HF_FALLBACK_MODEL_IDS" envSeparator:","`
	TimeoutSec int      `env:"INFERENCE_TIMEOUT_SECONDS" envDefault:"30"`
}

type checkResult struct {
	Scenario string
	Method   string
	Label    string
	Hit      bool
	Err      error
}

func runCheck(cmd *cobra.Command, _ []string) error {
	var cfg checkEnv
	if err := env.Parse(&cfg); err != nil {
		return err
	}

	var provider inference.Provider
	if checkProvider && cfg.HFAPIToken != "" {
		timeout := time.Duration(cfg.TimeoutSec) * time.Second
		providers := []inference.Provider{inference.NewHTTPClient(cfg.HFBaseURL, cfg.HFAPIToken, cfg.HFModelID, timeout, zap.NewNop())}
		for _, model := range cfg.Fallbacks {
			providers = append(providers, inference.NewHTTPClient(cfg.HFBaseURL, cfg.HFAPIToken, model, timeout, zap.NewNop()))
		}
		provider = inference.NewFallbackProvider(zap.NewNop(), providers...)
	}

	results := runScenarios(cmd.Context(), scoring.NewEngine(), provider, scenarios)
	printResults(cmd.OutOrStdout(), results)
	return nil
}

// runScenarios puntua cada escenario con el lexico y, si hay provider, con el
// modelo mejorado por los ajustes de umbral.
func runScenarios(ctx context.Context, engine *scoring.Engine, provider inference.Provider, list []Scenario) []checkResult {
	if ctx == nil {
		ctx = context.Background()
	}
	var results []checkResult
	for _, sc := range list {
		scores, err := engine.ScoreText(sc.Text, 0)
		results = append(results, newCheckResult(sc, domain.MethodTextLexicon, scores, err))

		if provider == nil {
			continue
		}
		base, err := provider.Predict(ctx, sc.Text)
		if err == nil {
			scores, err = engine.EnhanceText(sc.Text, base)
		}
		results = append(results, newCheckResult(sc, domain.MethodTextAnalysis, scores, err))
	}
	return results
}

func newCheckResult(sc Scenario, method string, scores domain.TraitVector, err error) checkResult {
	if err != nil {
		return checkResult{Scenario: sc.Name, Method: method, Err: err}
	}
	label := scoring.DominantTrait(scores)
	return checkResult{
		Scenario: sc.Name,
		Method:   method,
		Label:    label.Name(),
		Hit:      label == sc.Expected,
	}
}

func printResults(w io.Writer, results []checkResult) {
	hits := make(map[string]int)
	totals := make(map[string]int)
	for _, r := range results {
		totals[r.Method]++
		switch {
		case r.Err != nil:
			fmt.Fprintf(w, "%s[%s]%s %s: %serror%s %v\n", colorCyan, r.Scenario, colorReset, r.Method, colorRed, colorReset, r.Err)
		case r.Hit:
			hits[r.Method]++
			fmt.Fprintf(w, "%s[%s]%s %s: %s%s%s\n", colorCyan, r.Scenario, colorReset, r.Method, colorGreen, r.Label, colorReset)
		default:
			fmt.Fprintf(w, "%s[%s]%s %s: %s%s%s\n", colorCyan, r.Scenario, colorReset, r.Method, colorRed, r.Label, colorReset)
		}
	}

	fmt.Fprintln(w, "==== Aciertos ====")
	for _, method := range []string{domain.MethodTextLexicon, domain.MethodTextAnalysis} {
		if totals[method] == 0 {
			continue
		}
		fmt.Fprintf(w, "%s: %d/%d\n", method, hits[method], totals[method])
	}
}
