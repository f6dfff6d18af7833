package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/NickyBoy89/cfc/store"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newIndexCmd(opts *options) *cobra.Command {
	var dbPath string
	indexCmd := &cobra.Command{
		Use:   "index",
		Short: "Compile the class hierarchy and persist it to a SQLite index",
		Long: `Compile the class hierarchy and store it in a SQLite database.

The index command:
- Replaces any previously indexed hierarchy
- Stores every parcel and class, in ladder order
- Stores the method table and instance variables of every class`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := opts.compile(cmd)
			if err != nil {
				return err
			}

			s, err := store.Open(dbPath)
			if err != nil {
				return fmt.Errorf("failed to open index: %w", err)
			}
			defer s.Close()

			if err := s.Clear(); err != nil {
				return fmt.Errorf("failed to clear index: %w", err)
			}
			ladder := result.Ladder()
			if err := s.SaveHierarchy(ladder); err != nil {
				return fmt.Errorf("failed to save hierarchy: %w", err)
			}

			metadata := map[string]string{
				"root_class":  result.Registry.RootClassName(),
				"class_count": strconv.Itoa(len(ladder)),
				"indexed_at":  time.Now().UTC().Format(time.RFC3339),
			}
			for key, value := range metadata {
				if err := s.SetMetadata(key, value); err != nil {
					return fmt.Errorf("failed to save metadata: %w", err)
				}
			}

			log.WithFields(log.Fields{
				"database": s.DBPath(),
				"classes":  len(ladder),
			}).Debug("Saved hierarchy")

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Indexing complete!\n")
			fmt.Fprintf(out, "  Parcels:  %d\n", len(result.Registry.Parcels()))
			fmt.Fprintf(out, "  Classes:  %d\n", len(ladder))
			fmt.Fprintf(out, "  Files:    %d\n", len(result.Files))
			fmt.Fprintf(out, "  Duration: %s\n", result.Duration.Round(time.Millisecond))
			fmt.Fprintf(out, "  Database: %s\n", s.DBPath())
			return nil
		},
	}
	indexCmd.Flags().StringVar(&dbPath, "db", store.DefaultPath, "path of the index database")
	return indexCmd
}
