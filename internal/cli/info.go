package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mverstraete/mp4merge/pkg/probe"
)

// NewInfoCommand creates the info command
func NewInfoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info FILE...",
		Short: "Show MP4 container metadata",
		Long: `Parse each file's MP4 box structure and show its duration, codec,
dimensions and size. Inputs that do not share a codec and dimensions
will not produce a playable file when merged.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runInfo,
	}
}

func runInfo(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "FILE\tDURATION\tCODEC\tRESOLUTION\tSIZE")

	var failed int
	for _, path := range args {
		info, err := probe.File(path)
		if err != nil {
			fmt.Fprintf(w, "%s\t-\t-\t-\t-\n", path)
			fmt.Fprintf(os.Stderr, "mp4merge: %s: %v\n", path, err)
			failed++
			continue
		}

		resolution := "-"
		if info.Width > 0 && info.Height > 0 {
			resolution = fmt.Sprintf("%dx%d", info.Width, info.Height)
		}

		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			info.Name,
			probe.FormatDuration(info.Duration),
			info.Codec,
			resolution,
			probe.FormatSize(info.Size),
		)
	}

	if err := w.Flush(); err != nil {
		return err
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files could not be parsed", failed, len(args))
	}
	return nil
}
