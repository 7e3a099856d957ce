package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/qza7849467chensh5/reflective-bind/internal/driver"
	"github.com/qza7849467chensh5/reflective-bind/internal/project"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect or clear the result cache",
}

var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show the cache location, entry count and size",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cache, err := openCache(cmd)
		if err != nil {
			return err
		}
		entries, size, err := cache.Stats()
		if err != nil {
			return fmt.Errorf("failed to read cache: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "dir:     %s\nentries: %d\nsize:    %s\n", cache.Dir(), entries, humanSize(size))
		return nil
	},
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every cached result",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cache, err := openCache(cmd)
		if err != nil {
			return err
		}
		if err := cache.DropAll(); err != nil {
			return fmt.Errorf("failed to clear cache: %w", err)
		}
		quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "cleared %s\n", cache.Dir())
		}
		return nil
	},
}

func init() {
	cacheCmd.PersistentFlags().String("cache-dir", "", "result cache directory (default: [run].cache_dir or the user cache dir)")
	cacheCmd.AddCommand(cacheStatsCmd)
	cacheCmd.AddCommand(cacheClearCmd)
}

// openCache resolves the directory from --cache-dir, then .rbind.toml.
func openCache(cmd *cobra.Command) (*driver.DiskCache, error) {
	dir, err := cmd.Flags().GetString("cache-dir")
	if err != nil {
		return nil, fmt.Errorf("failed to get cache-dir flag: %w", err)
	}
	if dir == "" {
		manifest, _, loadErr := project.Load(".")
		if loadErr != nil {
			return nil, loadErr
		}
		dir = manifest.Config.Run.CacheDir
		if dir != "" && !filepath.IsAbs(dir) && manifest.Root != "" {
			dir = filepath.Join(manifest.Root, dir)
		}
	}
	return driver.OpenDiskCache(dir)
}

func humanSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
