package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/DanielPopoola/bitnob-payments-gateway/internal/application"
	"github.com/DanielPopoola/bitnob-payments-gateway/internal/application/services"
	"github.com/DanielPopoola/bitnob-payments-gateway/internal/config"
	"github.com/DanielPopoola/bitnob-payments-gateway/internal/domain"
	"github.com/DanielPopoola/bitnob-payments-gateway/internal/infrastructure/upstream"
	"github.com/DanielPopoola/bitnob-payments-gateway/internal/notify"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func payoutCmd() *cobra.Command {
	var (
		req         domain.OrchestrationRequest
		amount      string
		mobileMoney bool
	)

	cmd := &cobra.Command{
		Use:   "payout",
		Short: "Run a single payout and print the result envelope",
		Long: `Runs quote, initialize and finalize for one payout against the configured
provider, then prints the same JSON envelope the HTTP API would return.
The process exits non-zero when the payout fails.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if amount != "" {
				d, err := decimal.NewFromString(amount)
				if err != nil {
					return fmt.Errorf("invalid --amount %q: %w", amount, err)
				}
				req.Amount = &d
			}

			kind := domain.KindBankPayout
			if mobileMoney {
				kind = domain.KindMobileMoneyPayout
			}
			return runPayout(cmd.Context(), kind, req)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&req.Name, "name", "", "Beneficiary name")
	flags.StringVar(&req.AccountNumber, "account", "", "Bank account number")
	flags.StringVar(&req.BankName, "bank", "", "Bank name (provider default when empty)")
	flags.StringVar(&req.PhoneNumber, "phone", "", "Mobile money phone number")
	flags.StringVar(&req.Network, "network", "", "Mobile money network (provider default when empty)")
	flags.StringVar(&req.Reference, "reference", "", "Correlation reference (generated when empty)")
	flags.StringVar(&amount, "amount", "", "Settlement amount")
	flags.BoolVar(&mobileMoney, "mobile-money", false, "Pay out to a mobile money wallet instead of a bank account")

	return cmd
}

func runPayout(ctx context.Context, kind domain.Kind, req domain.OrchestrationRequest) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	logger := cfg.Logger.NewLogger()

	sink, closeSink, err := notify.NewSink(cfg.Notifier, logger)
	if err != nil {
		return err
	}
	defer closeSink()

	dispatcher := notify.NewDispatcher(sink, cfg.Notifier, logger)
	dispatchCtx, stopDispatch := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		_ = dispatcher.Start(dispatchCtx)
		close(done)
	}()
	defer func() {
		stopDispatch()
		<-done
	}()

	client := upstream.NewClient(cfg.Upstream, logger)
	orchestrator := services.NewOrchestrator(client, dispatcher, cfg.Upstream.CustomerID, logger)

	flow, err := services.LookupFlow(kind)
	if err != nil {
		return err
	}

	run, runErr := orchestrator.Run(ctx, kind, req)

	var envelope domain.ResultEnvelope
	if runErr != nil {
		reference := ""
		if run != nil {
			reference = run.Reference
		}
		_, envelope = application.BuildFailureEnvelope(flow.Label, reference, runErr)
	} else {
		envelope = flow.Envelope(run)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(envelope); err != nil {
		return err
	}

	if runErr != nil {
		return fmt.Errorf("%s failed", flow.Label)
	}
	return nil
}
