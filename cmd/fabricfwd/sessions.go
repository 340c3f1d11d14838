package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"fabricfwd/internal/handler"
)

const defaultServer = "http://localhost:8181"

func newSessions() *cobra.Command {
	var flags struct {
		server  string
		timeout time.Duration
	}
	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "Inspect the sessions of a running controller",
		Args:  cobra.NoArgs,
	}
	cmd.PersistentFlags().StringVar(&flags.server, "server", defaultServer, "controller API base URL")
	cmd.PersistentFlags().DurationVar(&flags.timeout, "timeout", 5*time.Second, "request timeout")

	list := &cobra.Command{
		Use:   "list",
		Short: "List recorded sessions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			ctx, cancel := context.WithTimeout(cmd.Context(), flags.timeout)
			defer cancel()

			body, err := call(ctx, http.MethodGet, flags.server, "/api/sessions")
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(body)
			return err
		},
	}
	reset := &cobra.Command{
		Use:   "reset",
		Short: "Forget every recorded session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			ctx, cancel := context.WithTimeout(cmd.Context(), flags.timeout)
			defer cancel()

			body, err := call(ctx, http.MethodDelete, flags.server, "/api/sessions")
			if err != nil {
				return err
			}
			var resp handler.ResetResponse
			if err := json.Unmarshal(body, &resp); err != nil {
				return fmt.Errorf("decoding response: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Dropped %d sessions\n", resp.Dropped)
			return nil
		},
	}
	cmd.AddCommand(list, reset)
	return cmd
}

// call performs one API request and returns the body of a successful
// response.
func call(ctx context.Context, method, server, path string) ([]byte, error) {
	url := strings.TrimSuffix(server, "/") + path
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, url, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		var apiErr handler.ErrorResponse
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error != "" {
			return nil, fmt.Errorf("%s %s: %s: %s", method, url, resp.Status, apiErr.Error)
		}
		return nil, fmt.Errorf("%s %s: %s", method, url, resp.Status)
	}
	return body, nil
}
