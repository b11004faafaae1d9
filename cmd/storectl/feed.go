package main

import (
	"fmt"

	"storefront/internal/core/application/usecases/commands"

	"github.com/spf13/cobra"
)

func generateFeedCmd() *cobra.Command {
	var key string
	cmd := &cobra.Command{
		Use:   "generate-feed",
		Short: "Write the Meta catalogue CSV to the blob store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			feedCmd, err := commands.NewGenerateFeedCommand(key)
			if err != nil {
				return err
			}

			e, err := loadEnv()
			if err != nil {
				return err
			}
			defer e.Close()
			blobs, err := e.app.CreateBlobStore(cmd.Context())
			if err != nil {
				return err
			}

			res, err := e.app.CreateGenerateFeedCommandHandler(blobs).Handle(cmd.Context(), feedCmd)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Feed generated: %s (%d rows)\n", res.Key, res.Rows)
			return nil
		},
	}
	cmd.Flags().StringVar(&key, "key", commands.DefaultFeedKey, "blob key of the generated feed")
	return cmd
}
