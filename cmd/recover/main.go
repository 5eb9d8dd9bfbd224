// Command recover runs the model-output recovery pipeline over a saved reply,
// which is handy for replaying replies archived by the server.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error: "+err.Error())
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &recoverOptions{}
	root := &cobra.Command{
		Use:   "recover",
		Short: "Recover exercises and workouts from raw model replies",
		Long: `recover reads a raw model reply from a file or stdin, runs it through the
recovery pipeline and prints the result as JSON.

Examples:
  recover exercise reply.txt
  recover workout --muscles Chest,Triceps --duration 45 reply.txt
  aws s3 cp s3://bucket/raw-responses/workout/2024-05-01/x.txt - | recover workout`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.StringSliceVar(&opts.muscles, "muscles", nil, "Target muscle groups")
	flags.StringSliceVar(&opts.equipment, "equipment", nil, "Available equipment")
	flags.StringSliceVar(&opts.exclude, "exclude", nil, "Exercise names to exclude")
	flags.StringSliceVar(&opts.recent, "recent", nil, "Recent workout names, used by the fallback template choice")
	flags.IntVar(&opts.duration, "duration", 0, "Requested workout duration in minutes")
	flags.StringVar(&opts.goal, "goal", "", "Workout goal")
	flags.BoolVar(&opts.keepWarmups, "keep-warmups", false, "Keep warm-up sections and exercises")
	flags.BoolVar(&opts.compact, "compact", false, "Print compact JSON")

	root.AddCommand(
		newExerciseCmd(opts),
		newListCmd(opts),
		newAlternativesCmd(opts),
		newWorkoutCmd(opts),
	)
	return root
}
