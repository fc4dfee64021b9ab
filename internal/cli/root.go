// Package cli 实现 cmsctl 命令行：登录内容 API，对各内容区块执行列表、增删改、排序与上传。
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/sectioncms/internal/cmsclient"
	"github.com/sectioncms/internal/config"
	"github.com/sectioncms/internal/content"
	"github.com/sectioncms/internal/logging"
	"github.com/sectioncms/internal/resource"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// App 保存命令行的全局参数与懒加载的客户端
type App struct {
	Config     config.ClientConfig
	Format     string
	PrettyJSON bool
	LogLevel   string

	logger   *logrus.Logger
	client   *cmsclient.Client
	sections *resource.Sections
}

// NewRootCmd 构造 cmsctl 根命令
func NewRootCmd(cfg config.ClientConfig) *cobra.Command {
	app := &App{Config: cfg}

	cmd := &cobra.Command{
		Use:          "cmsctl",
		Short:        "Manage website content sections through the CMS API",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # List the core values shown on the about page
  cmsctl core-values list

  # Add a stat block, then move it up one position
  cmsctl stat-blocks create --data '{"label":"Countries","value":"12"}'
  cmsctl stat-blocks move 3 up

  # Upload a regulation PDF and reference it
  cmsctl upload pdf/sast-regulations ./rules.pdf
`),
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		logger, err := logging.NewLogger(app.LogLevel)
		if err != nil {
			return writeErr(cmd, err)
		}
		logger.SetOutput(cmd.ErrOrStderr())
		app.logger = logger
		return nil
	}

	cmd.PersistentFlags().StringVar(&app.Config.APIBaseURL, "api-url", cfg.APIBaseURL, "CMS API base URL (CMS_API_URL)")
	cmd.PersistentFlags().StringVar(&app.Config.Username, "username", cfg.Username, "Login user (CMS_USERNAME)")
	cmd.PersistentFlags().StringVar(&app.Config.Password, "password", cfg.Password, "Login password (CMS_PASSWORD)")
	cmd.PersistentFlags().BoolVar(&app.Config.DemoMode, "demo", cfg.DemoMode, "Show demo content when the backend is unreachable (CMS_DEMO_MODE)")
	cmd.PersistentFlags().StringVar(&app.Format, "format", "table", "Output format (table|json)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().StringVar(&app.LogLevel, "log-level", "warn", "Log level for diagnostics written to stderr")

	cmd.AddCommand(newHealthCmd(app))
	cmd.AddCommand(newSectionCmd(app, sectionCommand[content.HeroBanner, *content.HeroBanner]{
		use: "hero-banners", short: "Home page hero banners", pick: pickHeroBanners,
	}))
	cmd.AddCommand(newSectionCmd(app, sectionCommand[content.CoreValue, *content.CoreValue]{
		use: "core-values", short: "About page core values", pick: pickCoreValues,
	}))
	cmd.AddCommand(newSectionCmd(app, sectionCommand[content.LeadershipBio, *content.LeadershipBio]{
		use: "leadership", short: "About page leadership bios", pick: pickLeadership,
	}))
	cmd.AddCommand(newSectionCmd(app, sectionCommand[content.StatBlock, *content.StatBlock]{
		use: "stat-blocks", short: "Investor relations stat blocks", pick: pickStatBlocks,
	}))
	cmd.AddCommand(newSectionCmd(app, sectionCommand[content.Committee, *content.Committee]{
		use: "committees", short: "Board committees and their members", pick: pickCommittees,
	}))
	cmd.AddCommand(newSectionCmd(app, sectionCommand[content.Regulation, *content.Regulation]{
		use: "regulations", short: "Regulation PDFs", pick: pickRegulations,
	}))
	cmd.AddCommand(newStockQuoteCmd(app))
	cmd.AddCommand(newUploadCmd(app))

	return cmd
}

// connect 创建客户端并登录；后端不可达时不报错，交给控制器决定是否进入示例模式
func (app *App) connect(ctx context.Context) (*resource.Sections, error) {
	if app.sections != nil {
		return app.sections, nil
	}

	client, err := cmsclient.New(app.Config, app.logger)
	if err != nil {
		return nil, err
	}

	if app.Config.Username != "" {
		if err := client.Login(ctx, app.Config.Username, app.Config.Password); err != nil {
			if !errors.Is(err, cmsclient.ErrBackendUnavailable) {
				return nil, eris.Wrap(err, "login")
			}
			app.logger.WithError(err).Warn("login skipped, backend unavailable")
		}
	}

	app.client = client
	app.sections = resource.NewSections(client, app.Config, app.logger)
	return app.sections, nil
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	if app.PrettyJSON {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}

// writeFlash 把控制器中的提示写到 stderr，保持 stdout 只有数据
func writeFlash(w io.Writer, notice, success, failure string) {
	if notice != "" {
		fmt.Fprintln(w, "notice:", notice)
	}
	if success != "" {
		fmt.Fprintln(w, success)
	}
	if failure != "" {
		fmt.Fprintln(w, "error:", failure)
	}
}

func newHealthCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the CMS API is reachable",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := cmsclient.New(app.Config, app.logger)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := client.Health(cmd.Context()); err != nil {
				return writeErr(cmd, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ok")
			return nil
		},
	}
}
