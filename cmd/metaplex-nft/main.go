// Command metaplex-nft mints and manages NFTs from the command line.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/gagliardetto/solana-go/rpc/ws"
	"github.com/krazyTry/metaplex-go/nftmint"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	rpcURL      string
	wsURL       string
	keypairPath string

	logger *zap.Logger
)

func main() {
	var err error
	logger, err = zap.NewDevelopment()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	root := &cobra.Command{
		Use:           "metaplex-nft",
		Short:         "Mint and manage NFTs on Solana",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&rpcURL, "rpc", envOr("SOLANA_RPC_URL", rpc.DevNet_RPC), "rpc endpoint")
	root.PersistentFlags().StringVar(&wsURL, "ws", envOr("SOLANA_WS_URL", rpc.DevNet_WS), "websocket endpoint")
	root.PersistentFlags().StringVar(&keypairPath, "keypair", defaultKeypairPath(), "path to the authority keypair file")

	root.AddCommand(
		mintCommand(),
		showCommand(),
		transferCommand(),
		updateCommand(),
		keygenCommand(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := root.ExecuteContext(ctx); err != nil {
		logger.Error("command failed", zap.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}
	_ = logger.Sync()
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func defaultKeypairPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "id.json"
	}
	return filepath.Join(home, ".config", "solana", "id.json")
}

func newMinter(ctx context.Context, opts ...nftmint.Option) (*nftmint.Minter, *solana.Wallet, error) {
	key, err := solana.PrivateKeyFromSolanaKeygenFile(keypairPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load keypair %s: %w", keypairPath, err)
	}
	authority := &solana.Wallet{PrivateKey: key}

	wsClient, err := ws.Connect(ctx, wsURL)
	if err != nil {
		return nil, nil, fmt.Errorf("connect %s: %w", wsURL, err)
	}

	minter, err := nftmint.NewMinter(rpc.New(rpcURL), wsClient, authority, opts...)
	if err != nil {
		return nil, nil, err
	}
	return minter, authority, nil
}

func mintCommand() *cobra.Command {
	var (
		name      string
		symbol    string
		uri       string
		royalty   string
		immutable bool
		mintFile  string
	)

	c := &cobra.Command{
		Use:   "mint",
		Short: "Mint a new NFT",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			percent, err := decimal.NewFromString(royalty)
			if err != nil {
				return fmt.Errorf("parse royalty: %w", err)
			}
			bps, err := nftmint.RoyaltyBasisPoints(percent)
			if err != nil {
				return err
			}

			opts := []nftmint.Option{nftmint.WithSellerFeeBasisPoints(bps)}
			if immutable {
				opts = append(opts, nftmint.WithImmutableMetadata())
			}

			minter, authority, err := newMinter(ctx, opts...)
			if err != nil {
				return err
			}

			mintWallet := solana.NewWallet()
			if mintFile != "" {
				key, err := solana.PrivateKeyFromSolanaKeygenFile(mintFile)
				if err != nil {
					return fmt.Errorf("load mint keypair %s: %w", mintFile, err)
				}
				mintWallet = &solana.Wallet{PrivateKey: key}
			}

			logger.Info("minting",
				zap.Stringer("authority", authority.PublicKey()),
				zap.Stringer("mint", mintWallet.PublicKey()),
				zap.String("name", name),
			)

			nft, err := minter.MintWithKeypair(ctx, mintWallet, name, symbol, uri)
			if err != nil {
				return err
			}

			logger.Info("minted",
				zap.Stringer("mint", nft.Mint),
				zap.Stringer("metadata", nft.Metadata),
				zap.Stringer("master_edition", nft.MasterEdition),
				zap.Stringer("token_account", nft.TokenAccount),
				zap.Stringer("signature", nft.Signature),
			)
			return nil
		},
	}

	c.Flags().StringVar(&name, "name", "", "nft name (max 32 bytes)")
	c.Flags().StringVar(&symbol, "symbol", "", "nft symbol (max 10 bytes)")
	c.Flags().StringVar(&uri, "uri", "", "metadata uri (max 200 bytes)")
	c.Flags().StringVar(&royalty, "royalty", "0", "royalty percent, e.g. 2.5")
	c.Flags().BoolVar(&immutable, "immutable", false, "create the metadata immutable")
	c.Flags().StringVar(&mintFile, "mint-keypair", "", "use a pre-ground mint keypair file")
	_ = c.MarkFlagRequired("name")
	_ = c.MarkFlagRequired("symbol")
	_ = c.MarkFlagRequired("uri")

	return c
}

func showCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <mint>",
		Short: "Print the on-chain state of an NFT",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			mint, err := solana.PublicKeyFromBase58(args[0])
			if err != nil {
				return fmt.Errorf("parse mint: %w", err)
			}

			minter, _, err := newMinter(ctx)
			if err != nil {
				return err
			}

			nft, err := minter.GetNFT(ctx, mint)
			if err != nil {
				return err
			}

			fmt.Println("mint:", nft.Mint)
			fmt.Println("supply:", nft.Supply)
			fmt.Println("decimals:", nft.Decimals)
			fmt.Println("metadata:", nft.MetadataAddress)
			fmt.Println("name:", nft.Metadata.Data.Name)
			fmt.Println("symbol:", nft.Metadata.Data.Symbol)
			fmt.Println("uri:", nft.Metadata.Data.Uri)
			fmt.Println("royalty:", nftmint.RoyaltyPercent(nft.Metadata.Data.SellerFeeBasisPoints).String()+"%")
			fmt.Println("mutable:", nft.Metadata.IsMutable)
			if nft.Edition != nil {
				fmt.Println("master edition:", nft.EditionAddress)
			}
			fmt.Println("holding account:", nft.TokenAccount)
			fmt.Println("balance:", nft.Balance)
			return nil
		},
	}
}

func transferCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "transfer <mint> <recipient>",
		Short: "Transfer an NFT to another wallet",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			mint, err := solana.PublicKeyFromBase58(args[0])
			if err != nil {
				return fmt.Errorf("parse mint: %w", err)
			}

			recipient, err := solana.PublicKeyFromBase58(args[1])
			if err != nil {
				return fmt.Errorf("parse recipient: %w", err)
			}

			minter, authority, err := newMinter(ctx)
			if err != nil {
				return err
			}

			logger.Info("transferring",
				zap.Stringer("mint", mint),
				zap.Stringer("from", authority.PublicKey()),
				zap.Stringer("to", recipient),
			)

			sig, err := minter.Transfer(ctx, mint, recipient)
			if err != nil {
				return err
			}

			logger.Info("transferred", zap.String("signature", sig))
			return nil
		},
	}
}

func updateCommand() *cobra.Command {
	var (
		name        string
		symbol      string
		uri         string
		primarySale bool
		immutable   bool
	)

	c := &cobra.Command{
		Use:   "update <mint>",
		Short: "Update the metadata of a mutable NFT",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			mint, err := solana.PublicKeyFromBase58(args[0])
			if err != nil {
				return fmt.Errorf("parse mint: %w", err)
			}

			var updates []nftmint.Update
			flags := cmd.Flags()
			if flags.Changed("name") {
				updates = append(updates, nftmint.UpdateName(name))
			}
			if flags.Changed("symbol") {
				updates = append(updates, nftmint.UpdateSymbol(symbol))
			}
			if flags.Changed("uri") {
				updates = append(updates, nftmint.UpdateURI(uri))
			}
			if flags.Changed("primary-sale") {
				updates = append(updates, nftmint.UpdatePrimarySaleHappened(primarySale))
			}
			if immutable {
				updates = append(updates, nftmint.UpdateImmutable())
			}
			if len(updates) == 0 {
				return errors.New("nothing to update")
			}

			minter, _, err := newMinter(ctx)
			if err != nil {
				return err
			}

			sig, err := minter.UpdateMetadata(ctx, mint, updates...)
			if err != nil {
				return err
			}

			logger.Info("updated", zap.Stringer("mint", mint), zap.String("signature", sig))
			return nil
		},
	}

	c.Flags().StringVar(&name, "name", "", "new nft name")
	c.Flags().StringVar(&symbol, "symbol", "", "new nft symbol")
	c.Flags().StringVar(&uri, "uri", "", "new metadata uri")
	c.Flags().BoolVar(&primarySale, "primary-sale", false, "set the primary-sale flag")
	c.Flags().BoolVar(&immutable, "immutable", false, "make the metadata immutable, this cannot be undone")

	return c
}

func keygenCommand() *cobra.Command {
	var outFile string

	c := &cobra.Command{
		Use:   "keygen",
		Short: "Generate a keypair file in the Solana CLI format",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := solana.NewWallet()
			if err := writeKeypair(outFile, w.PrivateKey); err != nil {
				return err
			}

			logger.Info("keypair written",
				zap.String("file", outFile),
				zap.Stringer("address", w.PublicKey()),
			)
			return nil
		},
	}

	c.Flags().StringVar(&outFile, "out", "keypair.json", "output file")
	return c
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
