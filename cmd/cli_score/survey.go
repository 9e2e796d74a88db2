package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"ocean-predict/internal/domain"
	"ocean-predict/internal/scoring"
)

var surveyCmd = &cobra.Command{
	Use:   "survey <responses>",
	Short: "Score 50 comma-separated Likert answers",
	Long:  "Scores a full survey given as 50 comma-separated answers between 1 and 5.",
	Args:  cobra.ExactArgs(1),
	RunE:  runSurvey,
}

var surveyKeying string

func init() {
	surveyCmd.Flags().StringVar(&surveyKeying, "keying", scoring.KeyingRoundRobin, "Item keying: round_robin|ipip50")

	rootCmd.AddCommand(surveyCmd)
}

type surveyOutput struct {
	domain.PredictionResult
	Method string `json:"method"`
	Keying string `json:"keying"`
}

func runSurvey(cmd *cobra.Command, args []string) error {
	responses, err := parseResponses(args[0])
	if err != nil {
		return err
	}
	out, err := scoreSurvey(responses, surveyKeying)
	if err != nil {
		return err
	}
	return writeJSON(cmd.OutOrStdout(), out)
}

// parseResponses acepta valores separados por comas o espacios.
func parseResponses(raw string) ([]int, error) {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
	responses := make([]int, 0, len(fields))
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("response %d: %q is not an integer", i+1, f)
		}
		responses = append(responses, v)
	}
	return responses, nil
}

func scoreSurvey(responses []int, keying string) (surveyOutput, error) {
	items, err := scoring.SurveyItemsFor(keying)
	if err != nil {
		return surveyOutput{}, err
	}
	engine := scoring.NewEngine(scoring.WithSurveyItems(items))
	scores, err := engine.ScoreSurvey(responses)
	if err != nil {
		return surveyOutput{}, err
	}
	if keying == "" {
		keying = scoring.KeyingRoundRobin
	}
	return surveyOutput{
		PredictionResult: scoring.NewResult(scores),
		Method:           domain.MethodSurvey,
		Keying:           keying,
	}, nil
}
