// cmd/collecta/commands/root.go
package commands

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Annany2002/collecta-backend/client"
	"github.com/Annany2002/collecta-backend/cmd/collecta/output"
	"github.com/Annany2002/collecta-backend/internal/core"
	"github.com/Annany2002/collecta-backend/internal/domain"
)

var (
	// Global flags
	serverURL  string
	token      string
	jsonOutput bool
	timeout    time.Duration
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "collecta",
	Short: "Collecta - command line client for a Collecta server",
	Long: `Collecta manages collections, items and events on a Collecta server.

Log in once and export the printed token:
  collecta login alice --password '...'
  export COLLECTA_TOKEN=<token>

List commands accept display filters (--search, --type, --high, --since) that
narrow the fetched page without another request.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		output.Error("%v", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", envOr("COLLECTA_SERVER", "http://localhost:8080"), "Server base URL")
	rootCmd.PersistentFlags().StringVar(&token, "token", os.Getenv("COLLECTA_TOKEN"), "Bearer token (defaults to $COLLECTA_TOKEN)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Request timeout")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func newClient() *client.Client {
	opts := []client.Option{}
	if token != "" {
		opts = append(opts, client.WithToken(token))
	}
	return client.New(serverURL, opts...)
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", arg)
	}
	return id, nil
}

// parseRating accepts 0-5, or "none" to clear.
func parseRating(arg string) (*int, error) {
	if strings.EqualFold(arg, "none") {
		return nil, nil
	}
	n, err := strconv.Atoi(arg)
	if err != nil {
		return nil, fmt.Errorf("invalid rating %q", arg)
	}
	return &n, nil
}

func parseSince(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if !core.IsValidDate(s) {
		return time.Time{}, fmt.Errorf("--since must be a YYYY-MM-DD date, got %q", s)
	}
	return time.Parse(domain.DateLayout, s)
}

// changed returns a pointer to the flag value when the user set it.
func changed[T any](cmd *cobra.Command, name string, v T) *T {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	return &v
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func ratingText(r *int) string {
	if r == nil {
		return "-"
	}
	return strconv.Itoa(*r)
}
