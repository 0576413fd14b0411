package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/askonen/zoomview/pkg/observability"
)

// hitRecorder flags whether the most recent probe was served from cache.
// The probe command resolves sources one at a time, so a single flag is
// enough.
type hitRecorder struct {
	observability.NoopCacheHooks
	hit bool
}

func (r *hitRecorder) OnCacheHit(context.Context, string)  { r.hit = true }
func (r *hitRecorder) OnCacheMiss(context.Context, string) { r.hit = false }

// probeCommand creates the probe command for inspecting image dimensions.
func (c *CLI) probeCommand() *cobra.Command {
	var noCache bool

	cmd := &cobra.Command{
		Use:   "probe <url-or-path>...",
		Short: "Resolve the natural dimensions of images",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prober, err := c.newProber(cmd.Context(), noCache)
			if err != nil {
				return err
			}

			recorder := &hitRecorder{}
			observability.SetCacheHooks(recorder)
			defer observability.Reset()

			prog := newProgress(loggerFromContext(cmd.Context()))
			spinner := newSpinnerWithContext(cmd.Context(), "Probing images")
			spinner.Start()

			failures := 0
			for _, src := range args {
				size, err := prober.NaturalSize(cmd.Context(), src)
				if err != nil {
					spinner.Stop()
					printError("%s", err)
					failures++
					spinner = newSpinnerWithContext(cmd.Context(), "Probing images")
					spinner.Start()
					continue
				}
				spinner.Stop()
				printDimensions(src, size.Width, size.Height, recorder.hit)
				spinner = newSpinnerWithContext(cmd.Context(), "Probing images")
				spinner.Start()
			}
			spinner.Stop()

			if spinner.Cancelled() {
				return cmd.Context().Err()
			}
			prog.done(fmt.Sprintf("Probed %d images", len(args)-failures))
			if failures > 0 {
				printWarning("%d of %d sources failed", failures, len(args))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the dimension cache")
	return cmd
}
