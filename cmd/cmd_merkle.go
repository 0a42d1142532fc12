package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/common"
	"github.com/gaze-network/launchpad/common/errs"
	"github.com/gaze-network/launchpad/pkg/allocations"
	"github.com/gaze-network/launchpad/pkg/decimals"
	"github.com/gaze-network/launchpad/pkg/merkle"
	"github.com/spf13/cobra"
)

type merkleCmdOptions struct {
	Inputs      []string
	Format      string
	Decimals    uint16
	Concurrency int
}

func (opts *merkleCmdOptions) bindFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringSliceVar(&opts.Inputs, "input", nil, "Allocation sources, local paths or `s3://bucket/key`. Repeat or comma separate for many")
	flags.StringVar(&opts.Format, "format", "", `Allocation format: "csv" | "json" | "parquet". Inferred from file extension when empty`)
	flags.Uint16Var(&opts.Decimals, "decimals", 0, "Token decimals of human readable amounts. Zero means amounts are in base units")
	flags.IntVar(&opts.Concurrency, "concurrency", allocations.DefaultConcurrency, "Number of sources loaded at once")
	_ = cmd.MarkFlagRequired("input")
}

func (opts *merkleCmdOptions) load(cmd *cobra.Command) ([]merkle.Allocation, *merkle.Tree, error) {
	loader := allocations.NewLoader(allocations.WithConcurrency(opts.Concurrency))
	list, err := loader.LoadAll(cmd.Context(), opts.Inputs, allocations.Options{
		Format:   allocations.Format(opts.Format),
		Decimals: opts.Decimals,
	})
	if err != nil {
		return nil, nil, errors.Wrap(err, "can't load allocations")
	}
	tree, err := merkle.NewTree(list)
	if err != nil {
		return nil, nil, errors.Wrap(err, "can't build merkle tree")
	}
	return list, tree, nil
}

func NewMerkleCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "merkle",
		Short: "Build whitelist merkle roots and proofs from allocation lists",
	}
	cmd.AddCommand(
		newMerkleRootCommand(),
		newMerkleProofCommand(),
	)
	return cmd
}

func newMerkleRootCommand() *cobra.Command {
	opts := &merkleCmdOptions{}

	cmd := &cobra.Command{
		Use:     "root",
		Short:   "Print the whitelist merkle root of allocation lists",
		Example: `launchpad merkle root --input ./round1.csv --input s3://allocations/round2.parquet`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			list, tree, err := opts.load(cmd)
			if err != nil {
				return errors.WithStack(err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), tree.Root().Hex())
			fmt.Fprintf(cmd.ErrOrStderr(), "%d allocations\n", len(list))
			return nil
		},
	}
	opts.bindFlags(cmd)

	return cmd
}

type merkleProofOutput struct {
	Root       common.Hash   `json:"root"`
	Address    string        `json:"address"`
	Allocation string        `json:"allocation"`
	Amount     string        `json:"amount,omitempty"`
	Proof      []common.Hash `json:"proof"`
}

func newMerkleProofCommand() *cobra.Command {
	opts := &merkleCmdOptions{}
	var address string

	cmd := &cobra.Command{
		Use:     "proof",
		Short:   "Print the whitelist merkle proof of an address as JSON",
		Example: `launchpad merkle proof --input ./round1.csv --address 0x00000000000000000000000000000000000a11ce`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !common.IsHexAddress(address) {
				return errors.Wrapf(errs.InvalidInput, "invalid address %q", address)
			}
			wallet := common.HexToAddress(address)

			list, tree, err := opts.load(cmd)
			if err != nil {
				return errors.WithStack(err)
			}
			for _, allocation := range list {
				if allocation.Address != wallet {
					continue
				}
				proof, err := tree.ProofFor(allocation.Address, allocation.Amount)
				if err != nil {
					return errors.WithStack(err)
				}
				output := merkleProofOutput{
					Root:       tree.Root(),
					Address:    wallet.Hex(),
					Allocation: allocation.Amount.Dec(),
					Proof:      proof,
				}
				if opts.Decimals > 0 {
					output.Amount = decimals.FormatUnits(allocation.Amount, opts.Decimals)
				}
				encoder := json.NewEncoder(cmd.OutOrStdout())
				encoder.SetIndent("", "  ")
				return errors.WithStack(encoder.Encode(output))
			}
			return errors.Wrapf(errs.NotFound, "%s has no allocation", wallet.Hex())
		},
	}
	opts.bindFlags(cmd)
	cmd.Flags().StringVar(&address, "address", "", "Wallet address to prove")
	_ = cmd.MarkFlagRequired("address")

	return cmd
}
