package cli

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"circprog/internal/preview"
	"circprog/internal/spinner"
	"circprog/internal/table"
)

func (a *app) newFrameCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "frame",
		Short: "Print the indicator at a moment of its animation",
		Long: "Print the indicator as it looks a given time after it was started.\n" +
			"The animation is simulated, so the command returns immediately.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}

			opts := preview.Options{
				Elapsed:   a.v.GetDuration("elapsed"),
				StopAfter: a.v.GetDuration("stop-after"),
				Cols:      a.v.GetInt("cols"),
				Rows:      a.v.GetInt("rows"),
			}
			if p := a.v.GetInt("progress"); p >= 0 {
				opts.Progress = &p
			}

			res, err := preview.Simulate(cfg, opts)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if a.v.GetBool("json") {
				data, err := json.MarshalIndent(res.Summarize(), "", "  ")
				if err != nil {
					return fmt.Errorf("failed to encode frame: %w", err)
				}
				fmt.Fprintln(out, string(data))
				return nil
			}

			mode, err := spinner.ParseColorMode(a.v.GetString("color"))
			if err != nil {
				return err
			}
			r := spinner.NewRenderer(out, mode)
			fmt.Fprintln(out, res.Canvas.Styled(r))
			if a.v.GetBool("ops") {
				fmt.Fprintln(out)
				fmt.Fprintln(out, opsTable(res.Summarize()).Render(r))
			}
			return nil
		},
	}

	cmd.Flags().Duration("elapsed", 0, "Time since start of the captured frame")
	cmd.Flags().Duration("stop-after", 0, "Stop the indicator this long after start")
	cmd.Flags().Int("progress", -1, "Progress percentage for determinate mode (-1 to leave unset)")
	cmd.Flags().Int("cols", preview.DefaultCols, "Canvas width in characters")
	cmd.Flags().Int("rows", preview.DefaultRows, "Canvas height in characters")
	cmd.Flags().Bool("ops", false, "Also list the draw operations of the frame")
	cmd.Flags().Bool("json", false, "Print the frame state and draw operations as JSON")
	cmd.Flags().String("color", string(spinner.ColorAuto), "Color output: auto, always or never")
	return cmd
}

// opsTable lists the draw operations of a frame.
func opsTable(s preview.Summary) *table.Table {
	t := table.New(
		table.Column{Header: "op"},
		table.Column{Header: "x", Align: table.AlignRight},
		table.Column{Header: "y", Align: table.AlignRight},
		table.Column{Header: "radius", Align: table.AlignRight},
		table.Column{Header: "start", Align: table.AlignRight},
		table.Column{Header: "sweep", Align: table.AlignRight},
		table.Column{Header: "width", Align: table.AlignRight},
		table.Column{Header: "color"},
	)
	for _, op := range s.Ops {
		t.AddRow(op.Kind, num(op.X), num(op.Y), num(op.Radius), num(op.Start), num(op.Sweep), num(op.Width), op.Color)
	}
	return t
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
