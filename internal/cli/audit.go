package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/messhub/ledger/internal/service"
)

var errAuditFailed = errors.New("ledger audit found problems")

func newAuditCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "audit",
		Short: "Check that every recharge and transaction reference each other",
		Long: `audit scans committed data for recharges with no transaction and for
recharge/transaction pairs whose references disagree. It exits non-zero
when anything is found.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			database, err := a.openDB(cmd.Context())
			if err != nil {
				return err
			}
			defer database.Close()

			svc := service.NewRechargeService(service.NewRepositories(database), a.cfg.App, a.logger)
			report, err := svc.Audit(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if report.Clean() {
				fmt.Fprintln(out, "ledger is consistent")
				return nil
			}

			for _, r := range report.IncompleteRecharges {
				fmt.Fprintf(out, "recharge %d on card %d has no transaction\n", r.ID, r.CardID)
			}
			for _, link := range report.BrokenLinks {
				fmt.Fprintf(out, "recharge %d / transaction %d: %s\n", link.RechargeID, link.TransactionID, link.Reason)
			}
			return errAuditFailed
		},
	}
}
