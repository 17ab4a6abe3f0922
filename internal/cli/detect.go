package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ironsheep/image-unshred/internal/unshred"
)

type detectOutput struct {
	Input  string `json:"input"`
	Width  int    `json:"image_width"`
	Strips int    `json:"strips"`
	*unshred.Detection
}

// NewDetectCommand creates the "detect" command.
func NewDetectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "detect <image>",
		Short: "Report the detected strip width of a shredded image",
		Long: `Scan the boundaries between adjacent columns and report the strip width
the unshredder would use, with the boundary statistics behind the choice.

Exits with status 3 when no boundary qualifies and the default width does
not divide the image width.`,
		Args: usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			img, err := loadImage(args[0])
			if err != nil {
				return err
			}
			b := img.Bounds()
			if b.Dx() <= 0 || b.Dy() <= 0 {
				return reconstructionError("cannot detect strip width",
					fmt.Errorf("%w: %dx%d", unshred.ErrInvalidDimensions, b.Dx(), b.Dy()))
			}

			raster := unshred.NewRaster(img)
			det, err := unshred.DetectWidth(raster, cfg.DetectOptions())
			if err != nil {
				return reconstructionError("cannot detect strip width", err)
			}
			if det.Fallback {
				debugf("%s", det.Reason)
			}

			out := detectOutput{
				Input:     args[0],
				Width:     raster.Width(),
				Strips:    raster.Width() / det.Width,
				Detection: det,
			}
			if jsonOutput {
				return writeJSON(cmd.OutOrStdout(), out)
			}

			w := cmd.OutOrStdout()
			if det.Fallback {
				fmt.Fprintf(w, "Strip width: %dpx (default, no boundary detected)\n", det.Width)
			} else {
				fmt.Fprintf(w, "Strip width: %dpx (boundary %d at threshold %.2f)\n", det.Width, det.Boundary, det.Threshold)
			}
			fmt.Fprintf(w, "Strips:      %d\n", out.Strips)
			fmt.Fprintf(w, "Distances:   min %.2f, max %.2f, mean %.2f\n", det.Min, det.Max, det.Mean)
			return nil
		},
	}
}
