package cmd

import (
	"github.com/oyaguma3/open5gs-subscriber-admin/pkg/model"
	"github.com/oyaguma3/open5gs-subscriber-admin/pkg/provision"
	"github.com/spf13/cobra"
)

func newValidateCmd(a *app) *cobra.Command {
	var (
		updateOf string
		remote   bool
		quiet    bool
	)
	cmd := &cobra.Command{
		Use:   "validate FILE",
		Short: "Validate and normalize a subscriber document (JSON or YAML)",
		Long: "Validate a subscriber document and print the normalized form.\n" +
			"Violations are printed one per line and the command exits with status 1.\n" +
			"Use - as FILE to read from standard input.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readDocument(args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}

			var prior *model.Subscriber
			if updateOf != "" {
				if prior, err = readStored(updateOf, cmd.InOrStdin()); err != nil {
					return err
				}
			}

			var sub *model.Subscriber
			switch {
			case remote:
				imsi := ""
				if prior != nil {
					imsi = prior.IMSI
				}
				sub, err = a.client().Validate(cmd.Context(), data, imsi)
			case quiet:
				err = provision.New(nil, nil).Check(data, prior)
			default:
				sub, err = provision.New(nil, nil).Build(data, prior)
			}
			if err != nil {
				if reportViolations(a.out, err) {
					return errReported
				}
				return err
			}
			if quiet {
				return nil
			}
			return writeJSON(a.out, sub)
		},
	}
	cmd.Flags().StringVar(&updateOf, "update-of", "", "stored document the input replaces")
	cmd.Flags().BoolVar(&remote, "remote", false, "validate on subscriber-api instead of locally")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "print violations only")
	return cmd
}
