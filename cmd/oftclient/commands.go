package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ClipFinance/oft-client/api"
	xerrors "github.com/ClipFinance/oft-client/common/errors"
	"github.com/ClipFinance/oft-client/common/types"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 5 * time.Second

func printJSON(w io.Writer, v any) error {
	bz, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(bz))
	return err
}

func addWalletFlag(cmd *cobra.Command) {
	cmd.Flags().String("wallet", "", "UUID of the wallet provider. Defaults to the first discovered one.")
}

func addTransferFlags(cmd *cobra.Command) {
	addWalletFlag(cmd)
	cmd.Flags().String("from", "", "Source chain id. Defaults to the wallet's current chain.")
	cmd.Flags().String("to", "", "Destination chain id. Required.")
	cmd.Flags().String("recipient", "", "Recipient address. Required.")
	cmd.Flags().String("amount", "", "Amount in whole tokens, e.g. 1.5. Required.")
}

func transferRequestFromCmd(cmd *cobra.Command) types.TransferRequest {
	from, _ := cmd.Flags().GetString("from")
	to, _ := cmd.Flags().GetString("to")
	recipient, _ := cmd.Flags().GetString("recipient")
	amount, _ := cmd.Flags().GetString("amount")
	return types.TransferRequest{
		SourceChainID:      from,
		DestinationChainID: to,
		Recipient:          recipient,
		Amount:             amount,
	}
}

func connectFromCmd(cmd *cobra.Command, app *App) (*types.Session, error) {
	id, _ := cmd.Flags().GetString("wallet")
	return app.Connect(cmd.Context(), id)
}

func CmdChains() *cobra.Command {
	return &cobra.Command{
		Use:   "chains",
		Short: "List the chains the OFT can be sent between.",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := unwrapApp(cmd)
			return printJSON(cmd.OutOrStdout(), app.Registry.List())
		},
	}
}

func CmdWallets() *cobra.Command {
	return &cobra.Command{
		Use:   "wallets",
		Short: "List the discovered wallet providers.",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := unwrapApp(cmd)
			app.Bus.RequestProviders()
			app.Bus.Wait()

			var infos []types.ProviderInfo
			for _, a := range app.Discovery.Providers() {
				infos = append(infos, a.Info)
			}
			return printJSON(cmd.OutOrStdout(), infos)
		},
	}
}

func CmdBalance() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "balance",
		Short: "Show the token balance of the connected account.",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := unwrapApp(cmd)
			session, err := connectFromCmd(cmd, app)
			if err != nil {
				return err
			}

			chainID, _ := cmd.Flags().GetString("chain")
			if chainID == "" {
				chainID = session.ChainID
			}
			chain, err := app.Registry.Get(chainID)
			if err != nil {
				return err
			}

			amount, err := app.Balances.Read(cmd.Context(), session, chain)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s on %s\n", amount, chain.Name)
			return err
		},
	}
	addWalletFlag(cmd)
	cmd.Flags().String("chain", "", "Chain id. Defaults to the wallet's current chain.")
	return cmd
}

func CmdQuote() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Estimate the cross-chain fee of a transfer.",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := unwrapApp(cmd)
			if _, err := connectFromCmd(cmd, app); err != nil {
				return err
			}

			if _, err := app.Workflow.RequestQuote(cmd.Context(), transferRequestFromCmd(cmd)); err != nil {
				return err
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), app.Workflow.Snapshot().Status)
			return err
		},
	}
	addTransferFlags(cmd)
	return cmd
}

func CmdSend() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "send",
		Short: "Quote and send a cross-chain transfer.",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := unwrapApp(cmd)
			if _, err := connectFromCmd(cmd, app); err != nil {
				return err
			}

			req := transferRequestFromCmd(cmd)
			if _, err := app.Workflow.RequestQuote(cmd.Context(), req); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, app.Workflow.Snapshot().Status)

			tx, err := app.Workflow.CommitSend(cmd.Context(), req)
			if err != nil {
				var execErr *xerrors.TransferExecutionError
				if errors.As(err, &execErr) && execErr.TxHash != "" {
					fmt.Fprintf(cmd.ErrOrStderr(), "Transaction %s was broadcast but not confirmed\n", execErr.TxHash)
				}
				return err
			}
			fmt.Fprintln(out, app.Workflow.Snapshot().Status)
			if destination, err := app.Registry.GetByEndpoint(tx.DstEid); err == nil {
				fmt.Fprintf(out, "Delivery to %s pending on LayerZero\n", destination.Name)
			}
			return printJSON(out, tx)
		},
	}
	addTransferFlags(cmd)
	return cmd
}

func CmdServe() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API and the workflow event feed.",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := unwrapApp(cmd)

			addr, _ := cmd.Flags().GetString("addr")
			if addr == "" {
				addr = app.Config.Server.Addr
			}

			server := api.NewServer(addr, api.Deps{
				Chains:   app.Registry,
				Wallets:  app.Discovery,
				Sessions: app.Sessions,
				Balances: app.Balances,
				Workflow: app.Workflow,
			}, app.Logger)

			errCh := make(chan error, 1)
			go func() {
				errCh <- server.Start()
			}()

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
			defer signal.Stop(quit)

			select {
			case err := <-errCh:
				return err
			case <-quit:
			}

			ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return server.Shutdown(ctx)
		},
	}
	cmd.Flags().String("addr", "", "Listen address. Overrides server.addr.")
	return cmd
}
