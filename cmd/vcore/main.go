// Command vcore is a demonstration CLI over the vcore library: it
// generates a Naor-Yung key pair and encrypts/decrypts a message under it
// (roundtrip), or generates a key pair and prints both keys as hex-debug
// lines (keygen).
package main

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sigilvote/vcore/pkg/vcore/config"
	"github.com/sigilvote/vcore/pkg/vcore/entropy"
	"github.com/sigilvote/vcore/pkg/vcore/group/ecgroup"
	"github.com/sigilvote/vcore/pkg/vcore/hash"
	"github.com/sigilvote/vcore/pkg/vcore/logging"
	"github.com/sigilvote/vcore/pkg/vcore/marshal"
	"github.com/sigilvote/vcore/pkg/vcore/naoryung"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cfg := config.Default()

	root := &cobra.Command{
		Use:           "vcore",
		Short:         "Demonstrate the vcore cryptographic core",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&cfg.DevicePath, "device", cfg.DevicePath, "OS random device path")
	root.PersistentFlags().IntVar(&cfg.StatDist, "stat-dist", cfg.StatDist, "statistical distance parameter (bits)")
	root.PersistentFlags().IntVar(&cfg.SecPro, "sec-pro", cfg.SecPro, "Fiat-Shamir challenge length (bits)")

	root.AddCommand(newRoundTripCmd(&cfg))
	root.AddCommand(newKeygenCmd(&cfg))
	return root
}

func newRoundTripCmd(cfg *config.Config) *cobra.Command {
	var label string
	cmd := &cobra.Command{
		Use:   "roundtrip [message]",
		Short: "Generate a key pair, encrypt the given message, then decrypt it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rs, closeRS, err := openDevice(cfg.DevicePath)
			if err != nil {
				return err
			}
			defer closeRS()

			g := ecgroup.New()
			roh, err := defaultRandomOracle(cfg.SecPro)
			if err != nil {
				return err
			}

			kg, err := naoryung.NewKeyGenerator(g, roh, cfg.SecPro)
			if err != nil {
				return fmt.Errorf("build key generator: %w", err)
			}
			pk, sk, err := kg.Generate(rs, cfg.StatDist)
			if err != nil {
				return fmt.Errorf("generate key pair: %w", err)
			}

			msg := []byte(args[0])
			ct, err := naoryung.Encrypt(pk, []byte(label), msg, rs, cfg.StatDist)
			if err != nil {
				return fmt.Errorf("encrypt: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ciphertext: %s\n", hex.EncodeToString(ct))

			recovered, ok := naoryung.Decrypt(sk, []byte(label), ct)
			if !ok {
				return fmt.Errorf("decrypt: ciphertext rejected as invalid")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "recovered: %s\n", recovered)
			return nil
		},
	}
	cmd.Flags().StringVar(&label, "label", "vcore-cli", "label bound into the Naor-Yung proof")
	return cmd
}

func newKeygenCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "keygen",
		Short: "Generate a Naor-Yung key pair and print it in hex-debug form",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rs, closeRS, err := openDevice(cfg.DevicePath)
			if err != nil {
				return err
			}
			defer closeRS()

			g := ecgroup.New()
			roh, err := defaultRandomOracle(cfg.SecPro)
			if err != nil {
				return err
			}

			kg, err := naoryung.NewKeyGenerator(g, roh, cfg.SecPro)
			if err != nil {
				return fmt.Errorf("build key generator: %w", err)
			}
			pk, sk, err := kg.Generate(rs, cfg.StatDist)
			if err != nil {
				return fmt.Errorf("generate key pair: %w", err)
			}

			log := logging.New(nil)
			log.Info(cmd.Context(), "generated key pair",
				"sec_pro", cfg.SecPro, logging.Redacted("secret_key"))

			fmt.Fprintln(cmd.OutOrStdout(), marshal.MarshalHex(pk))
			fmt.Fprintln(cmd.OutOrStdout(), marshal.MarshalHex(sk))
			return nil
		},
	}
}

func defaultRandomOracle(secpro int) (*hash.RandomOracle, error) {
	sha, err := hash.NewPlatform(hash.SHA256)
	if err != nil {
		return nil, fmt.Errorf("build platform hash: %w", err)
	}
	roh, err := hash.NewRandomOracle(sha, secpro)
	if err != nil {
		return nil, fmt.Errorf("build random oracle: %w", err)
	}
	return roh, nil
}

func openDevice(path string) (entropy.Source, func(), error) {
	dev, err := entropy.NewDevice(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open random device: %w", err)
	}
	return dev, func() { _ = dev.Close() }, nil
}
