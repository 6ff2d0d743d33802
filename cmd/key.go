package cmd

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/vibast-solutions/ms-go-keys/app/entity"
	"github.com/vibast-solutions/ms-go-keys/app/service"
	"github.com/vibast-solutions/ms-go-keys/app/store"
	"github.com/vibast-solutions/ms-go-keys/config"
)

var keyCmd = &cobra.Command{
	Use:   "key",
	Short: "Manage access keys in the key file",
}

var keyGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Issue a new access key",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		keyService, err := newKeyServiceForCommands()
		if err != nil {
			return err
		}

		key := keyService.Issue(context.Background())
		fmt.Printf("key: %s\n", key.ID)
		fmt.Printf("expires_at: %s\n", key.ExpiresAtString())
		return nil
	},
}

var keyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored access keys and their expirations",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		keyService, err := newKeyServiceForCommands()
		if err != nil {
			return err
		}

		keys, err := keyService.List(context.Background())
		if err != nil {
			return err
		}

		ids := make([]string, 0, len(keys))
		for id := range keys {
			ids = append(ids, id)
		}
		sort.Strings(ids)

		now := time.Now().UTC()
		for _, id := range ids {
			expiresAt, err := entity.ParseExpiresAt(keys[id])
			switch {
			case err != nil:
				fmt.Printf("%s  %s  (malformed)\n", id, keys[id])
			case !now.Before(expiresAt):
				fmt.Printf("%s  %s  (expired)\n", id, keys[id])
			default:
				fmt.Printf("%s  %s\n", id, keys[id])
			}
		}
		return nil
	},
}

var keyPurgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Remove expired and malformed entries from the key file",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		keyService, err := newKeyServiceForCommands()
		if err != nil {
			return err
		}

		removed, err := keyService.Purge(context.Background())
		if err != nil {
			return err
		}

		fmt.Printf("purged %d key(s)\n", removed)
		return nil
	},
}

func init() {
	keyCmd.AddCommand(keyGenerateCmd)
	keyCmd.AddCommand(keyListCmd)
	keyCmd.AddCommand(keyPurgeCmd)
	rootCmd.AddCommand(keyCmd)
}

func newKeyServiceForCommands() (*service.KeyService, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return service.NewKeyService(store.NewFileStore(cfg.KeyFile), cfg.KeyTTL), nil
}
