package main

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var healthcheckURL string

// healthcheck exits non-zero unless GET <url>/health answers 200. It is meant
// for container probes where no curl is available.
var healthcheckCmd = &cobra.Command{
	Use:   "healthcheck",
	Short: "Probe a running API",
	RunE: func(cmd *cobra.Command, args []string) error {
		client := &http.Client{Timeout: 5 * time.Second}
		url := strings.TrimSuffix(healthcheckURL, "/") + "/health"

		req, err := http.NewRequestWithContext(cmd.Context(), http.MethodGet, url, nil)
		if err != nil {
			return err
		}
		resp, err := client.Do(req)
		if err != nil {
			return fmt.Errorf("health check failed: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("health check failed: %s returned %d", url, resp.StatusCode)
		}
		color.New(color.FgGreen).Fprintln(cmd.OutOrStdout(), "ok")
		return nil
	},
}

func init() {
	healthcheckCmd.Flags().StringVar(&healthcheckURL, "url", "http://localhost:8000", "base URL of the API")
	rootCmd.AddCommand(healthcheckCmd)
}
