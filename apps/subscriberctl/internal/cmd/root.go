// Package cmd はsubscriberctlのサブコマンドを定義する。
package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/oyaguma3/open5gs-subscriber-admin/apps/subscriberctl/internal/client"
	"github.com/oyaguma3/open5gs-subscriber-admin/apps/subscriberctl/internal/config"
	"github.com/oyaguma3/open5gs-subscriber-admin/pkg/logging"
	"github.com/spf13/cobra"
)

const appName = "subscriberctl"

// errReported は詳細を出力済みで、終了コードのみ返すエラー。
var errReported = errors.New("errors reported")

// app はサブコマンド間で共有する状態。
type app struct {
	cfg    *config.Config
	out    io.Writer
	errOut io.Writer

	apiURL    string
	timeout   time.Duration
	adminUser string
}

// NewRootCmd はルートコマンドを生成する。
func NewRootCmd(out, errOut io.Writer) *cobra.Command {
	a := &app{out: out, errOut: errOut}

	root := &cobra.Command{
		Use:           appName,
		Short:         "Validate and manage open5gs subscriber documents",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)

	flags := root.PersistentFlags()
	flags.StringVar(&a.apiURL, "api-url", "", "subscriber-api base URL (env "+config.EnvPrefix+"_API_URL)")
	flags.DurationVar(&a.timeout, "timeout", 0, "API request timeout")
	flags.StringVar(&a.adminUser, "admin", "", "operator name recorded in the audit log")

	root.AddCommand(
		newValidateCmd(a),
		newSchemaCmd(a),
		newTemplateCmd(a),
		newOPcCmd(a),
		newApplyCmd(a),
		newGetCmd(a),
		newDeleteCmd(a),
		newListCmd(a),
		newExportCmd(a),
	)
	return root
}

// Execute はコマンドを実行し、終了コードを返す。
func Execute() int {
	root := NewRootCmd(os.Stdout, os.Stderr)
	if err := root.Execute(); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		return 1
	}
	return 0
}

// init は環境変数の設定を読み込み、フラグ指定で上書きする。
func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("api-url") {
		cfg.APIURL = a.apiURL
	}
	if flags.Changed("timeout") {
		cfg.Timeout = a.timeout
	}
	if flags.Changed("admin") {
		cfg.AdminUser = a.adminUser
	}
	a.cfg = cfg

	handler := slog.NewJSONHandler(a.errOut, &slog.HandlerOptions{
		Level: logging.ParseLevel(cfg.LogLevel),
	})
	slog.SetDefault(slog.New(handler).With("app", appName))
	return nil
}

func (a *app) client() *client.Client {
	return client.New(client.Options{
		BaseURL:   a.cfg.APIURL,
		Timeout:   a.cfg.Timeout,
		AdminUser: a.cfg.AdminUser,
	})
}
