package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/opportunities-radar/radar/internal/storage"
)

var (
	sourcesDSN     string
	sourcesEnable  string
	sourcesDisable string
)

// sourcesCmd represents the sources command
var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List monitored sources, or enable/disable one",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		cfg := buildConfig()
		if sourcesDSN != "" {
			cfg.Database.DSN = sourcesDSN
		}

		db, err := storage.Connect(ctx, cfg.Database.DSN)
		if err != nil {
			return err
		}
		defer db.Close()

		store := storage.New(db)

		if sourcesEnable != "" {
			if err := store.SetSourceEnabled(ctx, sourcesEnable, true); err != nil {
				return err
			}
		}
		if sourcesDisable != "" {
			if err := store.SetSourceEnabled(ctx, sourcesDisable, false); err != nil {
				return err
			}
		}

		sources, err := store.ListSources(ctx)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tENABLED\tLAST FETCHED\tURL")
		for _, source := range sources {
			lastFetched := "never"
			if source.LastFetchedAt != nil {
				lastFetched = source.LastFetchedAt.Local().Format(time.RFC3339)
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%v\t%s\t%s\n",
				source.ID, source.Name, source.Category, source.Enabled, lastFetched, source.URL)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(sourcesCmd)
	sourcesCmd.Flags().StringVar(&sourcesDSN, "dsn", "", "Postgres DSN")
	sourcesCmd.Flags().StringVar(&sourcesEnable, "enable", "", "enable the source with this id")
	sourcesCmd.Flags().StringVar(&sourcesDisable, "disable", "", "disable the source with this id")
}
