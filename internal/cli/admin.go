package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/messhub/ledger/internal/models"
	"github.com/messhub/ledger/internal/repository"
	"github.com/messhub/ledger/internal/service"
)

const dateLayout = "2006-01-02"

func newUserCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage ledger users",
	}

	var role string
	add := &cobra.Command{
		Use:   "add USERNAME",
		Short: "Create a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			database, err := a.openDB(cmd.Context())
			if err != nil {
				return err
			}
			defer database.Close()

			admin := service.NewAdminService(repository.NewUserRepository(database), repository.NewCardRepository(database))
			user, err := admin.AddUser(cmd.Context(), args[0], models.Role(role))
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "user %d created (%s, %s)\n", user.ID, user.Username, user.Role)
			return nil
		},
	}
	add.Flags().StringVar(&role, "role", string(models.RoleUser), "admin or user")

	cmd.AddCommand(add)
	return cmd
}

func newCardCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "card",
		Short: "Issue and inspect cards",
	}
	cmd.AddCommand(newCardIssueCmd(a), newCardShowCmd(a))
	return cmd
}

func newCardIssueCmd(a *app) *cobra.Command {
	var (
		ownerID int64
		balance string
		expires string
	)

	cmd := &cobra.Command{
		Use:   "issue",
		Short: "Issue a card to a user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := service.IssueCardRequest{OwnerUserID: ownerID}

			if balance != "" {
				cents, err := parseOpeningBalance(balance)
				if err != nil {
					return err
				}
				req.BalanceCents = cents
			}
			if expires != "" {
				at, err := time.Parse(dateLayout, expires)
				if err != nil {
					return fmt.Errorf("invalid --expires %q: want YYYY-MM-DD", expires)
				}
				req.ExpiresAt = &at
			}

			database, err := a.openDB(cmd.Context())
			if err != nil {
				return err
			}
			defer database.Close()

			admin := service.NewAdminService(repository.NewUserRepository(database), repository.NewCardRepository(database))
			card, err := admin.IssueCard(cmd.Context(), req)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "card %d issued to user %d with balance %s\n",
				card.ID, card.OwnerUserID, service.FormatCents(card.BalanceCents))
			return nil
		},
	}

	cmd.Flags().Int64Var(&ownerID, "owner", 0, "id of the owning user")
	cmd.Flags().StringVar(&balance, "balance", "", "opening balance, decimal")
	cmd.Flags().StringVar(&expires, "expires", "", "expiry date, YYYY-MM-DD")
	_ = cmd.MarkFlagRequired("owner")

	return cmd
}

// parseOpeningBalance accepts zero, unlike a recharge amount
func parseOpeningBalance(s string) (int64, error) {
	if d, err := decimal.NewFromString(s); err == nil && d.IsZero() {
		return 0, nil
	}
	return service.ParseAmount(s)
}

func newCardShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show CARD_ID",
		Short: "Print a card's balances and latest recharges",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cardID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid card id %q", args[0])
			}

			database, err := a.openDB(cmd.Context())
			if err != nil {
				return err
			}
			defer database.Close()

			svc := service.NewRechargeService(service.NewRepositories(database), a.cfg.App, a.logger)
			card, err := svc.GetCard(cmd.Context(), cardID)
			if err != nil {
				return err
			}
			recharges, err := svc.ListCardRecharges(cmd.Context(), cardID, 0)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "card:           %d\n", card.ID)
			fmt.Fprintf(out, "owner:          %d\n", card.OwnerUserID)
			fmt.Fprintf(out, "status:         %s\n", card.Status)
			fmt.Fprintf(out, "balance:        %s\n", service.FormatCents(card.BalanceCents))
			fmt.Fprintf(out, "lifetime total: %s\n", service.FormatCents(card.LifetimeTotalCents))
			if card.ExpiresAt != nil {
				fmt.Fprintf(out, "expires:        %s\n", card.ExpiresAt.Format(dateLayout))
			}
			for _, r := range recharges {
				link := "unlinked"
				if r.Completed() {
					link = fmt.Sprintf("transaction %d", *r.TransactionID)
				}
				fmt.Fprintf(out, "  recharge %d  %s  %-4s  %s  %s\n",
					r.ID, r.OccurredAt.Format(time.RFC3339), r.Type, service.FormatCents(r.AmountCents), link)
			}
			return nil
		},
	}
}
