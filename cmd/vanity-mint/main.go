// Command vanity-mint grinds keypairs until one's public key starts with the
// given base58 prefix. The keypair file it writes can be passed to
// metaplex-nft mint --mint-keypair so the NFT gets the vanity address.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/mr-tron/base58"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var logger *zap.Logger

func main() {
	var err error
	logger, err = zap.NewDevelopment()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	var (
		prefix     string
		ignoreCase bool
		workers    int
		outFile    string
	)

	root := &cobra.Command{
		Use:           "vanity-mint",
		Short:         "Grind a mint keypair with a vanity address prefix",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if prefix == "" {
				return errors.New("--prefix is required")
			}
			if _, err := base58.Decode(prefix); err != nil {
				return fmt.Errorf("prefix %q is not valid base58: %w", prefix, err)
			}
			if workers <= 0 {
				workers = runtime.NumCPU()
			}
			if outFile == "" {
				outFile = prefix + "-keypair.json"
			}

			logger.Info("grinding",
				zap.String("prefix", prefix),
				zap.Bool("ignore_case", ignoreCase),
				zap.Int("workers", workers),
			)

			start := time.Now()
			wallet, attempts, err := grind(cmd.Context(), prefix, ignoreCase, workers)
			if err != nil {
				return err
			}

			if err := writeKeypair(outFile, wallet.PrivateKey); err != nil {
				return err
			}

			logger.Info("found",
				zap.Stringer("address", wallet.PublicKey()),
				zap.Uint64("attempts", attempts),
				zap.Duration("elapsed", time.Since(start)),
				zap.String("file", outFile),
			)
			return nil
		},
	}

	root.Flags().StringVar(&prefix, "prefix", "", "base58 prefix to search for")
	root.Flags().BoolVar(&ignoreCase, "ignore-case", false, "match the prefix case-insensitively")
	root.Flags().IntVar(&workers, "workers", runtime.NumCPU(), "number of search goroutines")
	root.Flags().StringVar(&outFile, "out", "", "output keypair file, default <prefix>-keypair.json")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := root.ExecuteContext(ctx); err != nil {
		logger.Error("vanity-mint failed", zap.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}
	_ = logger.Sync()
}

func grind(ctx context.Context, prefix string, ignoreCase bool, workers int) (*solana.Wallet, uint64, error) {
	if ignoreCase {
		prefix = strings.ToLower(prefix)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		attempts uint64
		wg       sync.WaitGroup
	)
	found := make(chan *solana.Wallet, 1)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for ctx.Err() == nil {
				w := solana.NewWallet()
				atomic.AddUint64(&attempts, 1)

				addr := w.PublicKey().String()
				if ignoreCase {
					addr = strings.ToLower(addr)
				}
				if strings.HasPrefix(addr, prefix) {
					select {
					case found <- w:
					default:
					}
					cancel()
					return
				}
			}
		}()
	}

	start := time.Now()
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case w := <-found:
			wg.Wait()
			return w, atomic.LoadUint64(&attempts), nil
		case <-ctx.Done():
			wg.Wait()
			// a worker may have found a match in the same instant
			select {
			case w := <-found:
				return w, atomic.LoadUint64(&attempts), nil
			default:
			}
			return nil, atomic.LoadUint64(&attempts), ctx.Err()
		case <-ticker.C:
			n := atomic.LoadUint64(&attempts)
			logger.Info("searching",
				zap.Uint64("attempts", n),
				zap.Float64("per_second", float64(n)/time.Since(start).Seconds()),
			)
		}
	}
}

// writeKeypair stores a private key the way solana-keygen does, a JSON array
// of the 64 key bytes.
func writeKeypair(path string, key solana.PrivateKey) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}

	arr := make([]int, len(key))
	for i, b := range key {
		arr[i] = int(b)
	}
	raw, err := json.Marshal(arr)
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0o600)
}
