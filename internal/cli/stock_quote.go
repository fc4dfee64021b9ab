package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
)

func newStockQuoteCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stock-quote",
		Short: "Investor relations stock quote display settings",
	}
	cmd.AddCommand(newStockQuoteShowCmd(app))
	cmd.AddCommand(newStockQuoteSetCmd(app))
	return cmd
}

func newStockQuoteShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the current settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sections, err := app.connect(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			ctrl := sections.StockQuote
			loadErr := ctrl.Load(cmd.Context())
			state := ctrl.State()
			writeFlash(cmd.ErrOrStderr(), state.Notice, "", state.Error)
			if loadErr != nil {
				return loadErr
			}

			if app.Format == "json" {
				return writeOut(cmd, app, map[string]any{"item": state.Value, "demo": state.Demo})
			}

			v := state.Value
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintf(tw, "symbol\t%s\n", v.Symbol)
			fmt.Fprintf(tw, "exchange\t%s\n", v.Exchange)
			fmt.Fprintf(tw, "currency\t%s\n", v.Currency)
			fmt.Fprintf(tw, "refreshSeconds\t%d\n", v.RefreshSeconds)
			fmt.Fprintf(tw, "showChart\t%t\n", v.ShowChart)
			fmt.Fprintf(tw, "showVolume\t%t\n", v.ShowVolume)
			fmt.Fprintf(tw, "isActive\t%t\n", v.IsActive)
			return tw.Flush()
		},
	}
}

func newStockQuoteSetCmd(app *App) *cobra.Command {
	var data, file string

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change settings; omitted fields keep their value",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := readPayload(cmd, data, file)
			if err != nil {
				return writeErr(cmd, err)
			}

			sections, err := app.connect(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			ctrl := sections.StockQuote
			if err := ctrl.Load(cmd.Context()); err != nil {
				state := ctrl.State()
				writeFlash(cmd.ErrOrStderr(), state.Notice, "", state.Error)
				return err
			}

			value := ctrl.Value()
			if err := json.Unmarshal(payload, &value); err != nil {
				return writeErr(cmd, eris.Wrap(err, "parse settings"))
			}

			saveErr := ctrl.Save(cmd.Context(), value)
			state := ctrl.State()
			writeFlash(cmd.ErrOrStderr(), state.Notice, state.Success, state.Error)
			return saveErr
		},
	}

	cmd.Flags().StringVar(&data, "data", "", "Settings as JSON")
	cmd.Flags().StringVarP(&file, "file", "f", "", "Read JSON from a file (- for stdin)")
	return cmd
}
