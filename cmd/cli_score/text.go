package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"ocean-predict/internal/domain"
	"ocean-predict/internal/scoring"
)

const (
	variantWeighted  = "weighted"
	variantThreshold = "threshold"
)

var textCmd = &cobra.Command{
	Use:   "text <text|->",
	Short: "Score free text with the lexicon engine",
	Long:  "Scores free text with the lexicon feature extractor. Pass - to read the text from stdin.",
	Args:  cobra.ExactArgs(1),
	RunE:  runText,
}

var (
	textMinWords int
	textVariant  string
)

func init() {
	textCmd.Flags().IntVar(&textMinWords, "min-words", 0, "Minimum word count (0 disables the check)")
	textCmd.Flags().StringVar(&textVariant, "variant", variantWeighted, "Scoring strategy: weighted|threshold")

	rootCmd.AddCommand(textCmd)
}

type textOutput struct {
	domain.PredictionResult
	Method    string `json:"method"`
	Variant   string `json:"variant"`
	WordCount int    `json:"word_count"`
}

func runText(cmd *cobra.Command, args []string) error {
	text := args[0]
	if text == "-" {
		raw, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
		text = string(raw)
	}

	out, err := scoreText(text, textVariant, textMinWords)
	if err != nil {
		return err
	}
	return writeJSON(cmd.OutOrStdout(), out)
}

func scoreText(text, variant string, minWords int) (textOutput, error) {
	var strategy scoring.Strategy
	switch variant {
	case variantWeighted:
		strategy = scoring.WeightedStrategy{}
	case variantThreshold:
		strategy = scoring.NewPlaceholderThreshold()
	default:
		return textOutput{}, fmt.Errorf("unknown variant %q (want %s or %s)", variant, variantWeighted, variantThreshold)
	}

	engine := scoring.NewEngine(scoring.WithStrategy(strategy))
	scores, err := engine.ScoreText(text, minWords)
	if err != nil {
		return textOutput{}, err
	}
	return textOutput{
		PredictionResult: scoring.NewResult(scores),
		Method:           domain.MethodTextLexicon,
		Variant:          variant,
		WordCount:        scoring.CountWords(scoring.TruncateText(text, scoring.MaxTextRunes)),
	}, nil
}

