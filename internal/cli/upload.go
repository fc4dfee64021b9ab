package cli

import (
	"fmt"
	"strings"

	"github.com/sectioncms/internal/upload"
	"github.com/spf13/cobra"
)

func newUploadCmd(app *App) *cobra.Command {
	kinds := make([]string, 0, len(upload.Kinds()))
	for _, kind := range upload.Kinds() {
		kinds = append(kinds, string(kind))
	}

	return &cobra.Command{
		Use:       "upload <" + strings.Join(kinds, "|") + "> <file>",
		Short:     "Upload an image or PDF and print its absolute URL",
		Args:      cobra.ExactArgs(2),
		ValidArgs: kinds,
		RunE: func(cmd *cobra.Command, args []string) error {
			kind := upload.Kind(strings.TrimSpace(args[0]))
			if _, err := upload.ConstraintFor(kind); err != nil {
				return writeErr(cmd, err)
			}

			if _, err := app.connect(cmd.Context()); err != nil {
				return writeErr(cmd, err)
			}

			result, err := app.client.UploadFile(cmd.Context(), kind, args[1])
			if err != nil {
				return writeErr(cmd, err)
			}

			if app.Format == "json" {
				return writeOut(cmd, app, map[string]any{
					"success": true,
					"url":     result.URL,
					"width":   result.Width,
					"height":  result.Height,
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), result.URL)
			return nil
		},
	}
}
