package cmds

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/judgebase/judgebase-api/cmd/server/internal/workflow"
	"github.com/judgebase/judgebase-api/internal/types"
)

// Exit code of a repair that still left a step failed
const exitPartial = 3

var approvalsCmd = &cobra.Command{
	Use:   "approvals",
	Short: "Inspect and repair approvals whose side effects failed",
}

var approvalsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List partial and stuck approval runs as JSON",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		db, err := openDB(ctx, cfg)
		if err != nil {
			return err
		}
		defer closeDB(db) //nolint:errcheck // best effort on exit

		engine, err := workflow.New(db, workflow.Deps{AppURL: cfg.Mail.AppURL})
		if err != nil {
			return err
		}

		runs, err := engine.IncompleteApprovals(ctx)
		if err != nil {
			return err
		}

		views := make([]types.ApprovalRunView, 0, len(runs))
		for i := range runs {
			views = append(views, runs[i].View())
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(views)
	},
}

var approvalsRepairCmd = &cobra.Command{
	Use:   "repair <run-id>",
	Short: "Issue a new credential for an approval and redo its side effects",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, span := tracer.Start(cmd.Context(), "approvalsRepairCmd")
		defer span.End()

		runID, err := uuid.Parse(args[0])
		if err != nil {
			return ExitErrorWrap(2, fmt.Errorf("invalid run id: %w", err))
		}

		db, err := openDB(ctx, cfg)
		if err != nil {
			return err
		}
		defer closeDB(db) //nolint:errcheck // best effort on exit

		engine, err := buildEngine(ctx, cfg, db)
		if err != nil {
			return err
		}

		repair, err := engine.RepairApproval(ctx, runID)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(types.RepairResponse{
			Run:               repair.Run.View(),
			GeneratedPassword: repair.GeneratedPassword,
			SideEffects:       repair.SideEffects,
		}); err != nil {
			return err
		}

		if repair.Run.State != types.RunStateCompleted {
			return ExitErrorWrap(exitPartial, fmt.Errorf("run %s is still %s", runID, repair.Run.State))
		}
		return nil
	},
}

func init() {
	approvalsCmd.AddCommand(approvalsListCmd, approvalsRepairCmd)
	rootCmd.AddCommand(approvalsCmd)
}
