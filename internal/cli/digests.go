package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/opportunities-radar/radar/internal/model"
	"github.com/opportunities-radar/radar/internal/storage"
)

var (
	digestsDSN    string
	digestsLimit  int
	digestsSource string
)

// digestsCmd represents the digests command
var digestsCmd = &cobra.Command{
	Use:   "digests",
	Short: "Show recent digests, highest score first",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		cfg := buildConfig()
		if digestsDSN != "" {
			cfg.Database.DSN = digestsDSN
		}

		db, err := storage.Connect(ctx, cfg.Database.DSN)
		if err != nil {
			return err
		}
		defer db.Close()

		store := storage.New(db)

		var digests []model.Digest
		if digestsSource != "" {
			digests, err = store.DigestsForSource(ctx, digestsSource, digestsLimit)
		} else {
			digests, err = store.ListDigests(ctx, digestsLimit)
		}
		if err != nil {
			return err
		}

		if len(digests) == 0 {
			fmt.Println("No digests yet.")
			return nil
		}

		for _, digest := range digests {
			fmt.Printf("[%3d] %s\n", digest.Score, digest.Title)
			for _, bullet := range digest.Bullets {
				fmt.Printf("      - %s\n", bullet)
			}
			if digest.Action != "" {
				fmt.Printf("      action: %s\n", digest.Action)
			}
			if digest.Deadline != nil {
				fmt.Printf("      deadline: %s\n", digest.Deadline.Format("2006-01-02"))
			}
			if len(digest.Tags) > 0 {
				fmt.Printf("      tags: %s\n", strings.Join(digest.Tags, ", "))
			}
			fmt.Println()
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(digestsCmd)
	digestsCmd.Flags().StringVar(&digestsDSN, "dsn", "", "Postgres DSN")
	digestsCmd.Flags().IntVar(&digestsLimit, "limit", 20, "max digests to show")
	digestsCmd.Flags().StringVar(&digestsSource, "source", "", "show digests for this source id only")
}
