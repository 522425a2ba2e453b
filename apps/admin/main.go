package main

import (
	"os"

	"go.uber.org/zap"
)

var logger *zap.SugaredLogger

func main() {
	zl, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	logger = zl.Named("admin").Sugar()

	// start CLI
	cli := commandLine{newClient: newAPIClient}
	code := exitCode(cli.run(os.Args))
	_ = zl.Sync() // os.Exit skips deferred calls
	os.Exit(code)
}

// exitCode logs err, unless it is a usage error, and returns the process exit status.
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	if err != errHelp {
		logger.Errorf("error: %s", err)
	}
	return 1
}
