package cmd

import (
	"fmt"

	"github.com/oyaguma3/open5gs-subscriber-admin/pkg/catalog"
	"github.com/spf13/cobra"
)

func newSchemaCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema of subscriber documents",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat := catalog.Default()
			if _, err := cat.CompileSchema(); err != nil {
				return fmt.Errorf("schema does not compile: %w", err)
			}
			return writeJSON(a.out, cat.JSONSchema())
		},
	}
}

func newTemplateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "template",
		Short: "Print a subscriber document filled with defaults",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tmpl, err := catalog.Default().Template()
			if err != nil {
				return err
			}
			return writeJSON(a.out, tmpl)
		},
	}
}
