package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/sectioncms/internal/resource"
	"github.com/spf13/cobra"
)

// sectionEntry 是可在命令行中管理的条目
type sectionEntry[T any] interface {
	*T
	resource.Entry
	DisplayName() string
}

type sectionCommand[T any, P sectionEntry[T]] struct {
	use   string
	short string
	pick  func(*resource.Sections) *resource.Controller[T, P]
}

func pickHeroBanners(s *resource.Sections) *resource.HeroBannerController { return s.HeroBanners }
func pickCoreValues(s *resource.Sections) *resource.CoreValueController   { return s.CoreValues }
func pickLeadership(s *resource.Sections) *resource.LeadershipController  { return s.Leadership }
func pickStatBlocks(s *resource.Sections) *resource.StatBlockController   { return s.StatBlocks }
func pickCommittees(s *resource.Sections) *resource.CommitteeController   { return s.Committees }
func pickRegulations(s *resource.Sections) *resource.RegulationController { return s.Regulations }

func newSectionCmd[T any, P sectionEntry[T]](app *App, spec sectionCommand[T, P]) *cobra.Command {
	cmd := &cobra.Command{
		Use:   spec.use,
		Short: spec.short,
	}
	cmd.AddCommand(newSectionListCmd(app, spec))
	cmd.AddCommand(newSectionCreateCmd(app, spec))
	cmd.AddCommand(newSectionEditCmd(app, spec))
	cmd.AddCommand(newSectionToggleCmd(app, spec))
	cmd.AddCommand(newSectionMoveCmd(app, spec))
	cmd.AddCommand(newSectionSetOrderCmd(app, spec))
	cmd.AddCommand(newSectionReorderCmd(app, spec))
	cmd.AddCommand(newSectionDeleteCmd(app, spec))
	return cmd
}

// loadSection 连接并加载列表，加载失败时输出错误提示
func loadSection[T any, P sectionEntry[T]](cmd *cobra.Command, app *App, spec sectionCommand[T, P]) (*resource.Controller[T, P], error) {
	sections, err := app.connect(cmd.Context())
	if err != nil {
		return nil, writeErr(cmd, err)
	}
	ctrl := spec.pick(sections)
	if err := ctrl.Load(cmd.Context()); err != nil {
		state := ctrl.State()
		writeFlash(cmd.ErrOrStderr(), state.Notice, "", state.Error)
		return nil, err
	}
	return ctrl, nil
}

// finish 输出变更后的提示，失败时返回原始错误
func finish[T any, P sectionEntry[T]](cmd *cobra.Command, ctrl *resource.Controller[T, P], err error) error {
	state := ctrl.State()
	writeFlash(cmd.ErrOrStderr(), state.Notice, state.Success, state.Error)
	return err
}

func newSectionListCmd[T any, P sectionEntry[T]](app *App, spec sectionCommand[T, P]) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List " + spec.use,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, err := loadSection(cmd, app, spec)
			if err != nil {
				return err
			}
			state := ctrl.State()
			writeFlash(cmd.ErrOrStderr(), state.Notice, "", "")

			if app.Format == "json" {
				return writeOut(cmd, app, map[string]any{"items": state.Items, "demo": state.Demo})
			}
			return writeTable[T, P](cmd.OutOrStdout(), state.Items)
		},
	}
}

func newSectionCreateCmd[T any, P sectionEntry[T]](app *App, spec sectionCommand[T, P]) *cobra.Command {
	var data, file string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an entry from JSON (--data or --file)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := readPayload(cmd, data, file)
			if err != nil {
				return writeErr(cmd, err)
			}
			var item T
			if err := json.Unmarshal(payload, &item); err != nil {
				return writeErr(cmd, eris.Wrap(err, "parse entry"))
			}

			ctrl, err := loadSection(cmd, app, spec)
			if err != nil {
				return err
			}

			keys := payloadKeys(payload)
			if !keys["isActive"] {
				P(&item).SetActive(true)
			}
			if !keys["order"] {
				P(&item).SetOrder(nextOrder[T, P](ctrl.Items()))
			}

			return finish(cmd, ctrl, ctrl.Create(cmd.Context(), item))
		},
	}

	cmd.Flags().StringVar(&data, "data", "", "Entry as JSON")
	cmd.Flags().StringVarP(&file, "file", "f", "", "Read entry JSON from a file (- for stdin)")
	return cmd
}

func newSectionEditCmd[T any, P sectionEntry[T]](app *App, spec sectionCommand[T, P]) *cobra.Command {
	var data, file string

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change fields of an entry; omitted fields keep their value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			payload, err := readPayload(cmd, data, file)
			if err != nil {
				return writeErr(cmd, err)
			}

			ctrl, err := loadSection(cmd, app, spec)
			if err != nil {
				return err
			}
			item, ok := ctrl.Find(id)
			if !ok {
				return writeErr(cmd, fmt.Errorf("%s %d not found", spec.use, id))
			}
			if err := json.Unmarshal(payload, &item); err != nil {
				return writeErr(cmd, eris.Wrap(err, "parse entry"))
			}
			if P(&item).Key() != id {
				return writeErr(cmd, fmt.Errorf("entry id cannot be changed"))
			}

			return finish(cmd, ctrl, ctrl.Update(cmd.Context(), item))
		},
	}

	cmd.Flags().StringVar(&data, "data", "", "Fields to change as JSON")
	cmd.Flags().StringVarP(&file, "file", "f", "", "Read JSON from a file (- for stdin)")
	return cmd
}

func newSectionToggleCmd[T any, P sectionEntry[T]](app *App, spec sectionCommand[T, P]) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <id>",
		Short: "Activate or deactivate an entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			ctrl, err := loadSection(cmd, app, spec)
			if err != nil {
				return err
			}
			return finish(cmd, ctrl, ctrl.ToggleActive(cmd.Context(), id))
		},
	}
}

func newSectionMoveCmd[T any, P sectionEntry[T]](app *App, spec sectionCommand[T, P]) *cobra.Command {
	return &cobra.Command{
		Use:       "move <id> <up|down>",
		Short:     "Move an entry one position up or down",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{"up", "down"},
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			direction := strings.ToLower(strings.TrimSpace(args[1]))
			if direction != "up" && direction != "down" {
				return writeErr(cmd, fmt.Errorf("direction must be up or down, got %q", args[1]))
			}

			ctrl, err := loadSection(cmd, app, spec)
			if err != nil {
				return err
			}
			if direction == "up" {
				return finish(cmd, ctrl, ctrl.MoveUp(cmd.Context(), id))
			}
			return finish(cmd, ctrl, ctrl.MoveDown(cmd.Context(), id))
		},
	}
}

func newSectionSetOrderCmd[T any, P sectionEntry[T]](app *App, spec sectionCommand[T, P]) *cobra.Command {
	return &cobra.Command{
		Use:   "set-order <id> <order>",
		Short: "Set the numeric order of an entry (negative values become 0)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			order, err := strconv.Atoi(strings.TrimSpace(args[1]))
			if err != nil {
				return writeErr(cmd, fmt.Errorf("invalid order %q", args[1]))
			}

			ctrl, err := loadSection(cmd, app, spec)
			if err != nil {
				return err
			}
			return finish(cmd, ctrl, ctrl.SetOrder(cmd.Context(), id, order))
		},
	}
}

func newSectionReorderCmd[T any, P sectionEntry[T]](app *App, spec sectionCommand[T, P]) *cobra.Command {
	return &cobra.Command{
		Use:   "reorder <id>...",
		Short: "Save a complete ordering, first id gets order 0",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids := make([]uint, 0, len(args))
			for _, arg := range args {
				id, err := parseID(arg)
				if err != nil {
					return writeErr(cmd, err)
				}
				ids = append(ids, id)
			}

			ctrl, err := loadSection(cmd, app, spec)
			if err != nil {
				return err
			}
			return finish(cmd, ctrl, ctrl.Reorder(cmd.Context(), ids))
		},
	}
}

func newSectionDeleteCmd[T any, P sectionEntry[T]](app *App, spec sectionCommand[T, P]) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an entry after confirmation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}

			ctrl, err := loadSection(cmd, app, spec)
			if err != nil {
				return err
			}
			item, ok := ctrl.Find(id)
			if !ok {
				return writeErr(cmd, fmt.Errorf("%s %d not found", spec.use, id))
			}

			if !yes {
				question := fmt.Sprintf("Delete %q (#%d)?", P(&item).DisplayName(), id)
				if !confirm(cmd.InOrStdin(), cmd.ErrOrStderr(), question) {
					fmt.Fprintln(cmd.ErrOrStderr(), "cancelled")
					return nil
				}
			}
			return finish(cmd, ctrl, ctrl.Delete(cmd.Context(), id))
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

func writeTable[T any, P sectionEntry[T]](w io.Writer, items []T) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tORDER\tACTIVE\tNAME")
	for i := range items {
		entry := P(&items[i])
		active := "no"
		if entry.Active() {
			active = "yes"
		}
		fmt.Fprintf(tw, "%d\t%d\t%s\t%s\n", entry.Key(), entry.OrderValue(), active, entry.DisplayName())
	}
	return tw.Flush()
}

func nextOrder[T any, P sectionEntry[T]](items []T) int {
	next := 0
	for i := range items {
		if order := P(&items[i]).OrderValue(); order >= next {
			next = order + 1
		}
	}
	return next
}

func readPayload(cmd *cobra.Command, data, file string) ([]byte, error) {
	switch {
	case strings.TrimSpace(data) != "" && file != "":
		return nil, fmt.Errorf("use either --data or --file, not both")
	case strings.TrimSpace(data) != "":
		return []byte(data), nil
	case file == "-":
		return io.ReadAll(cmd.InOrStdin())
	case file != "":
		raw, err := os.ReadFile(file)
		if err != nil {
			return nil, eris.Wrapf(err, "read %s", file)
		}
		return raw, nil
	default:
		return nil, fmt.Errorf("entry JSON is required (--data or --file)")
	}
}

func payloadKeys(payload []byte) map[string]bool {
	var fields map[string]json.RawMessage
	keys := make(map[string]bool)
	if err := json.Unmarshal(payload, &fields); err != nil {
		return keys
	}
	for key := range fields {
		keys[key] = true
	}
	return keys
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 32)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return uint(id), nil
}

func confirm(in io.Reader, out io.Writer, question string) bool {
	fmt.Fprintf(out, "%s [y/N]: ", question)
	line, _ := bufio.NewReader(in).ReadString('\n')
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
