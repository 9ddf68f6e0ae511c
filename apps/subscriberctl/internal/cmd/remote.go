package cmd

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/oyaguma3/open5gs-subscriber-admin/apps/subscriberctl/internal/csv"
	"github.com/oyaguma3/open5gs-subscriber-admin/pkg/logging"
	"github.com/oyaguma3/open5gs-subscriber-admin/pkg/model"
	"github.com/spf13/cobra"
)

// エクスポート形式
const (
	formatCSV  = "csv"
	formatJSON = "json"
)

func newApplyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "apply FILE",
		Short: "Create a subscriber, or replace it when the IMSI already exists",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readDocument(args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}
			imsi, err := documentIMSI(data)
			if err != nil {
				return err
			}

			_, created, err := a.client().Apply(cmd.Context(), imsi, data)
			if err != nil {
				if reportViolations(a.out, err) {
					return errReported
				}
				return err
			}
			if created {
				fmt.Fprintf(a.out, "subscriber %s created\n", imsi)
			} else {
				fmt.Fprintf(a.out, "subscriber %s updated\n", imsi)
			}
			return nil
		},
	}
}

func newGetCmd(a *app) *cobra.Command {
	var reveal bool
	cmd := &cobra.Command{
		Use:   "get IMSI",
		Short: "Show a stored subscriber document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sub, err := a.client().Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if !reveal {
				maskSecurity(&sub.Security)
			}
			return writeJSON(a.out, sub)
		},
	}
	cmd.Flags().BoolVar(&reveal, "reveal", false, "print k/op/opc without masking")
	return cmd
}

func newDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete IMSI",
		Short: "Delete a subscriber",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.client().Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "subscriber %s deleted\n", args[0])
			return nil
		},
	}
}

func newListCmd(a *app) *cobra.Command {
	var (
		prefix string
		page   int
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List subscribers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c := a.client()
			var (
				subs  []*model.Subscriber
				total int
			)
			if page > 0 {
				p, err := c.List(cmd.Context(), prefix, page)
				if err != nil {
					return err
				}
				subs, total = p.Items, p.Total
			} else {
				all, err := c.ListAll(cmd.Context(), prefix)
				if err != nil {
					return err
				}
				subs, total = all, len(all)
			}
			return writeTable(a, subs, total)
		},
	}
	cmd.Flags().StringVar(&prefix, "prefix", "", "IMSI prefix filter")
	cmd.Flags().IntVar(&page, "page", 0, "page number (0 lists every page)")
	return cmd
}

func newExportCmd(a *app) *cobra.Command {
	var (
		format string
		prefix string
		output string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export subscribers as CSV or JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != formatCSV && format != formatJSON {
				return fmt.Errorf("unsupported format %q: must be %s or %s", format, formatCSV, formatJSON)
			}
			subs, err := a.client().ListAll(cmd.Context(), prefix)
			if err != nil {
				return err
			}

			w := a.out
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("failed to create %s: %w", output, err)
				}
				defer f.Close()
				w = f
			}

			if format == formatCSV {
				return csv.WriteSubscriberCSV(w, subs)
			}
			for _, sub := range subs {
				maskSecurity(&sub.Security)
			}
			if subs == nil {
				subs = []*model.Subscriber{}
			}
			return writeJSON(w, subs)
		},
	}
	cmd.Flags().StringVar(&format, "format", formatCSV, "output format (csv or json)")
	cmd.Flags().StringVar(&prefix, "prefix", "", "IMSI prefix filter")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to file instead of stdout")
	return cmd
}

func writeTable(a *app, subs []*model.Subscriber, total int) error {
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "IMSI\tMSISDN\tSLICES\tSESSIONS\tUPDATED")
	for _, sub := range subs {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%s\n",
			sub.IMSI,
			strings.Join(sub.MSISDN, ","),
			len(sub.Slices),
			sub.SessionCount(),
			sub.UpdatedAt,
		)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(a.out, "%d of %d subscriber(s)\n", len(subs), total)
	return err
}

// maskSecurity は鍵素材を表示用にマスキングする。
func maskSecurity(s *model.Security) {
	s.K = logging.MaskSecret(s.K)
	if s.OP != nil {
		v := logging.MaskSecret(*s.OP)
		s.OP = &v
	}
	if s.OPc != nil {
		v := logging.MaskSecret(*s.OPc)
		s.OPc = &v
	}
}
