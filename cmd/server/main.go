package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/judgebase/judgebase-api/cmd/server/cmds"
	"github.com/judgebase/judgebase-api/internal/logger"
)

func runApp(ctx context.Context) int {
	err := cmds.Execute(ctx)
	if err != nil {
		var ee cmds.ExitError
		if errors.As(err, &ee) {
			if ee.Err != nil {
				fmt.Fprintln(os.Stderr, "Error: "+ee.Err.Error())
			}
			return ee.Code
		}

		logger.Logger.Error(err.Error())
		return 1
	}

	return 0
}

func main() {
	ctx, cancelSignal := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
	)

	logger.InitSlog()

	code := runApp(ctx)
	cancelSignal()
	os.Exit(code)
}
