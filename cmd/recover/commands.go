package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"alcyxob/fitness-ai/internal/recovery"

	"github.com/spf13/cobra"
)

type recoverOptions struct {
	muscles     []string
	equipment   []string
	exclude     []string
	recent      []string
	duration    int
	goal        string
	keepWarmups bool
	compact     bool
}

func (o *recoverOptions) pipeline() *recovery.Pipeline {
	policy := recovery.DefaultWarmupPolicy()
	policy.Enabled = !o.keepWarmups
	return recovery.NewPipeline(recovery.WithWarmupPolicy(policy))
}

func (o *recoverOptions) context() recovery.Context {
	return recovery.Context{
		TargetMuscleGroups:       o.muscles,
		AvailableEquipment:       o.equipment,
		ExcludeNames:             o.exclude,
		RequestedDurationMinutes: o.duration,
		RecentWorkoutNames:       o.recent,
		Goal:                     o.goal,
	}
}

func newExerciseCmd(opts *recoverOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "exercise [file]",
		Short: "Recover a single exercise",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			res, err := opts.pipeline().RecoverExercise(raw)
			if err != nil {
				return err
			}
			return opts.print(cmd, struct {
				NotFound bool              `json:"notFound"`
				Strategy recovery.Strategy `json:"strategy,omitempty"`
				Exercise any               `json:"exercise,omitempty"`
			}{res.NotFound, res.Strategy, exerciseOrNil(res)})
		},
	}
}

func newListCmd(opts *recoverOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list [file]",
		Short: "Recover a list of exercises, as used for variations",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			exercises, strategy, err := opts.pipeline().RecoverExerciseList(raw)
			if err != nil {
				return err
			}
			return opts.print(cmd, map[string]any{"strategy": strategy, "exercises": exercises})
		},
	}
}

func newAlternativesCmd(opts *recoverOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "alternatives [file]",
		Short: "Recover replacement suggestions, falling back when none are valid",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			res := opts.pipeline().RecoverAlternatives(raw, opts.context())
			return opts.print(cmd, map[string]any{
				"strategy":     res.Strategy,
				"fallbackUsed": res.FallbackUsed,
				"parseError":   res.ParseError,
				"rejected":     res.Rejected,
				"alternatives": res.Alternatives,
			})
		},
	}
}

func newWorkoutCmd(opts *recoverOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "workout [file]",
		Short: "Recover a workout, falling back to a template when needed",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			res := opts.pipeline().RecoverWorkout(raw, opts.context())
			return opts.print(cmd, map[string]any{
				"strategy":         res.Strategy,
				"fallbackUsed":     res.FallbackUsed,
				"parseError":       res.ParseError,
				"validationErrors": res.ValidationErrors,
				"workout":          res.Workout,
			})
		},
	}
}

// readInput reads the named file, or stdin when no file or "-" is given.
func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		b, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(b), nil
	}
	b, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("read %s: %w", args[0], err)
	}
	return string(b), nil
}

func (o *recoverOptions) print(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	if !o.compact {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}

func exerciseOrNil(res recovery.ExerciseResult) any {
	if res.NotFound {
		return nil
	}
	return res.Exercise
}
