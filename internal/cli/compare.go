package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ironsheep/image-unshred/internal/imaging"
)

// NewCompareCommand creates the "compare" command.
func NewCompareCommand() *cobra.Command {
	var stripWidth int

	cmd := &cobra.Command{
		Use:   "compare <a> <b>",
		Short: "Compare two images pixel by pixel",
		Long: `Compare two images of the same size pixel by pixel.

With --strip-width the comparison also reports whether b is a with its
strips in exactly reversed order, which is how an unshredded image can
legitimately differ from its original.`,
		Args: usageArgs(cobra.ExactArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadImage(args[0])
			if err != nil {
				return err
			}
			b, err := loadImage(args[1])
			if err != nil {
				return err
			}

			var res *imaging.CompareResult
			if stripWidth > 0 {
				res, err = imaging.CompareStrips(a, b, stripWidth)
			} else {
				res, err = imaging.Compare(a, b)
			}
			if err != nil {
				return WrapCLIError(ExitUsageError, "cannot compare images", err)
			}

			if jsonOutput {
				return writeJSON(cmd.OutOrStdout(), res)
			}
			w := cmd.OutOrStdout()
			switch {
			case res.Identical:
				fmt.Fprintln(w, "Identical")
			case res.Mirrored:
				fmt.Fprintln(w, "Mirrored (strip order reversed)")
			default:
				fmt.Fprintf(w, "Different: %d of %d pixels\n", res.PixelsDifferent, res.TotalPixels)
			}
			fmt.Fprintf(w, "Similarity: %.4f\n", res.SimilarityScore)
			return nil
		},
	}

	cmd.Flags().IntVarP(&stripWidth, "strip-width", "w", 0, "Also check for a reversed strip order")

	return cmd
}
