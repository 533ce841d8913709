package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/messhub/ledger/internal/models"
	"github.com/messhub/ledger/internal/service"
)

func newRechargeCmd(a *app) *cobra.Command {
	var (
		userID      int64
		cardID      int64
		amount      string
		paymentType string
		occurredAt  string
	)

	cmd := &cobra.Command{
		Use:   "recharge",
		Short: "Recharge a card",
		Long: `Recharge a card directly against the database, the way the admin console
does. The amount is a decimal such as 50 or 12.75.`,
		Example: "  messledger recharge --user 7 --card 3 --amount 50.00 --type cash",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cents, err := service.ParseAmount(amount)
			if err != nil {
				return err
			}
			pt, err := models.ParsePaymentType(paymentType)
			if err != nil {
				return err
			}

			req := service.RechargeRequest{
				UserID:      userID,
				CardID:      cardID,
				AmountCents: cents,
				PaymentType: pt,
			}
			if occurredAt != "" {
				at, err := time.Parse(time.RFC3339, occurredAt)
				if err != nil {
					return fmt.Errorf("invalid --at %q: %w", occurredAt, err)
				}
				req.OccurredAt = at
			}

			database, err := a.openDB(cmd.Context())
			if err != nil {
				return err
			}
			defer database.Close()

			svc := service.NewRechargeService(service.NewRepositories(database), a.cfg.App, a.logger)
			result, err := svc.ProcessRecharge(cmd.Context(), req)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "recharge %d committed (transaction %d, reference %s)\n",
				result.RechargeID, result.TransactionID, result.Reference)
			fmt.Fprintf(out, "new balance: %s\n", service.FormatCents(result.NewBalanceCents))
			fmt.Fprintf(out, "lifetime total: %s\n", service.FormatCents(result.NewLifetimeTotalCents))
			return nil
		},
	}

	cmd.Flags().Int64Var(&userID, "user", 0, "id of the user making the recharge")
	cmd.Flags().Int64Var(&cardID, "card", 0, "id of the card to recharge")
	cmd.Flags().StringVar(&amount, "amount", "", "decimal amount, at most two fraction digits")
	cmd.Flags().StringVar(&paymentType, "type", "", "payment type: cash, card or upi")
	cmd.Flags().StringVar(&occurredAt, "at", "", "RFC 3339 time of the payment (defaults to now)")
	for _, name := range []string{"user", "card", "amount", "type"} {
		_ = cmd.MarkFlagRequired(name)
	}

	return cmd
}
