package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/go-github/v57/github"
	"github.com/spf13/cobra"
)

const (
	repoOwner = "lamplighters"
	repoName  = "helix-lamp"
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Check whether a newer release is available",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
		defer cancel()
		return checkRelease(ctx, github.NewClient(nil))
	},
}

func init() {
	rootCmd.AddCommand(updateCmd)
}

func checkRelease(ctx context.Context, client *github.Client) error {
	release, _, err := client.Repositories.GetLatestRelease(ctx, repoOwner, repoName)
	if err != nil {
		return fmt.Errorf("failed to fetch latest release: %w", err)
	}

	latest := strings.TrimPrefix(release.GetTagName(), "v")
	if latest == Version {
		fmt.Printf("helix-lamp %s is up to date\n", Version)
		return nil
	}
	fmt.Printf("helix-lamp %s installed, %s available: %s\n", Version, latest, release.GetHTMLURL())
	return nil
}
