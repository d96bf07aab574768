// cmd/labeler-config/main.go
// Resolves an Ozone labeler's configuration and prints it as JSON
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"

	"Ozone/internal/atproto/identity"
	"Ozone/internal/core/labelerconfig"
)

type options struct {
	plcURL       string
	origin       string
	allowPrivate bool
	full         bool
	timeout      time.Duration
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "labeler-config [did]",
		Short: "Resolve an Ozone labeler's DID document, metadata and service record",
		Long: `Resolves the labeler's DID document, fetches its well-known
metadata and its app.bsky.labeler.service record, and reports whether they agree.

Without a DID, the labeler is discovered from --origin's
/.well-known/atproto-labeler.json.`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			did := ""
			if len(args) == 1 {
				did = args[0]
			}
			return run(cmd.Context(), cmd.OutOrStdout(), opts, did)
		},
	}

	cmd.Flags().StringVar(&opts.plcURL, "plc-url", envOr("PLC_DIRECTORY_URL", identity.DefaultPLCURL), "DID PLC directory URL")
	cmd.Flags().StringVar(&opts.origin, "origin", os.Getenv("OZONE_PUBLIC_URL"), "service origin whose well-known metadata is the fallback")
	cmd.Flags().BoolVar(&opts.allowPrivate, "allow-private", false, "allow lookups against private/loopback addresses (development only)")
	cmd.Flags().BoolVar(&opts.full, "full", false, "fail unless both the DID document and the metadata resolve")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", time.Minute, "overall resolution timeout")

	return cmd
}

func run(ctx context.Context, out io.Writer, opts *options, did string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, opts.timeout)
	defer cancel()

	httpClient := identity.NewSSRFSafeHTTPClient(opts.allowPrivate)
	resolver := identity.NewResolver(identity.Config{
		HTTPClient: httpClient,
		PLCURL:     opts.plcURL,
	})
	svc := labelerconfig.NewService(resolver, httpClient, opts.origin)

	cfg, err := svc.Resolve(ctx, did, "")
	if err != nil {
		if errors.Is(err, labelerconfig.ErrDIDUndetermined) {
			return fmt.Errorf("%w (pass a DID or --origin)", err)
		}
		return err
	}

	var result any = cfg
	if opts.full {
		full, err := labelerconfig.WithDocAndMeta(cfg)
		if err != nil {
			return err
		}
		result = full
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if cfg.Needs != (labelerconfig.Needs{}) {
		log.Printf("Labeler setup incomplete: %+v", cfg.Needs)
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
