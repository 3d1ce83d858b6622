package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"taskflow/internal/mockapi"

	"github.com/spf13/cobra"
)

func newMockServerCmd(app *App) *cobra.Command {
	var addr, email, password string

	cmd := &cobra.Command{
		Use:   "mock-server",
		Short: "Run an in-memory TaskFlow API",
		Long: `Serve the TaskFlow REST API from memory, for trying the client without a
backend. Data is lost when the process exits.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			srv := mockapi.New()
			if email != "" {
				if err := srv.RegisterUser(email, password); err != nil {
					return fmt.Errorf("error creating user %s: %w", email, err)
				}
				fmt.Fprintf(out, "Registered user %s\n", email)
			}

			listener, err := net.Listen("tcp", addr)
			if err != nil {
				return fmt.Errorf("error listening on %s: %w", addr, err)
			}
			return serveMock(cmd.Context(), app, listener, srv, out)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:8000", "Address to listen on")
	cmd.Flags().StringVar(&email, "user", "", "Register this email at startup")
	cmd.Flags().StringVar(&password, "password", "password", "Password for --user")
	return cmd
}

// serveMock serves until ctx is done, then shuts the server down
func serveMock(ctx context.Context, app *App, listener net.Listener, handler http.Handler, out io.Writer) error {
	server := &http.Server{Handler: handler, ReadHeaderTimeout: 10 * time.Second}
	errCh := make(chan error, 1)
	go func() {
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	fmt.Fprintf(out, "Mock TaskFlow API listening on http://%s\n", listener.Addr())
	app.Logger.Info("Mock server listening on %s", listener.Addr())

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("mock server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("error shutting down mock server: %w", err)
	}
	fmt.Fprintln(out, "Mock server stopped")
	return nil
}
