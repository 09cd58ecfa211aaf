// Command testcontainers starts MySQL and a Mailpit SMTP sink in Docker and
// prints the environment a locally started server needs to use them.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/forgeline/leaddesk/internal/testutil"
	"github.com/forgeline/leaddesk/internal/utils"
	"github.com/joho/godotenv"
	"github.com/powerman/structlog"
)

var log = structlog.New(structlog.KeyUnit, "testcontainers")

func main() {
	var showHelp, noMail bool
	flag.BoolVar(&showHelp, "h", false, "show help")
	flag.BoolVar(&noMail, "no-mail", false, "do not start the Mailpit SMTP sink")
	var envFilename string
	flag.StringVar(&envFilename, "f", "", "path to the .env file")
	flag.Parse()

	usage := `
Run the leaddesk backing services (MySQL, Mailpit) in throwaway containers.

Usage:

testcontainers [-h] [-no-mail] [-f ENV_FILE_PATH]

ENV_FILE_PATH: path to a .env file with DB_IMAGE or MAILPIT_IMAGE overrides

example
  testcontainers -f /path/to/something/.env
`
	if showHelp {
		fmt.Println(usage)
		return
	}

	utils.InitLog(false)

	if envFilename != "" {
		log.Info("loading environment", "file", envFilename)
		if err := godotenv.Load(envFilename); err != nil {
			log.Fatalf("Failed to load environment variables: %v", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	tc, err := testutil.StartContainers(ctx, !noMail)
	if err != nil {
		log.Fatalf("Failed to create test containers: %v", err)
	}

	env := tc.Env()
	keys := make([]string, 0, len(env))
	for k := range env {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Printf("%s=%s\n", k, env[k])
	}
	if tc.MailpitURL != "" {
		fmt.Fprintf(os.Stderr, "Mailpit UI: %s\n", tc.MailpitURL)
	}

	<-ctx.Done()
	log.Info("terminating test containers")
	tc.Terminate(context.Background())
}
