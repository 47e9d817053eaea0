package main

import (
	"encoding/json"
	"fmt"

	"github.com/darkkaiser/contenthub-server/internal/config"
	"github.com/darkkaiser/contenthub-server/internal/pkg/version"
	"github.com/spf13/cobra"
)

func newVersionCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "빌드 정보를 출력합니다",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			bi := version.Get()

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(bi)
			}

			_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", config.AppName, bi.String())
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "JSON 형식으로 출력")

	return cmd
}
