package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"go.uber.org/zap"

	"staybook/internal/api"
	"staybook/internal/app"
	"staybook/internal/cli"
	"staybook/internal/config"
	"staybook/internal/logger"
	"staybook/internal/modules/booking"
)

func main() {
	cmd := flag.String("cmd", cli.CmdProperties, "properties|property|book|bookings|profile|logout")
	server := flag.String("server", "", "API base URL (overrides API_BASE_URL)")
	query := flag.String("q", "", "search text for -cmd properties")
	id := flag.String("id", "", "property id for -cmd property|book")
	checkIn := flag.String("check-in", "", "check-in date YYYY-MM-DD")
	checkOut := flag.String("check-out", "", "check-out date YYYY-MM-DD")
	flag.Parse()

	if err := config.LoadDotEnv(); err != nil {
		log.Fatal(err)
	}
	if *server != "" {
		os.Setenv("API_BASE_URL", *server)
	}
	cfg, err := config.LoadClient()
	if err != nil {
		log.Fatal(err)
	}
	zlog, err := logger.New(cfg.AppEnv, cfg.Log)
	if err != nil {
		log.Fatal(err)
	}

	if (*cmd == cli.CmdProperty || *cmd == cli.CmdBook) && *id == "" {
		fmt.Fprintln(os.Stderr, "-id is required")
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	ui := cli.NewTerminalUI(os.Stdout)
	a := app.New(cfg, api.NewClient(cfg, zlog.Named("api")), ui, zlog)

	err = cli.Run(ctx, a, cli.Options{
		Cmd:        *cmd,
		Query:      *query,
		PropertyID: *id,
		CheckIn:    *checkIn,
		CheckOut:   *checkOut,
	}, os.Stdout)
	a.Close()

	if err != nil {
		zlog.Debug("command failed", zap.String("cmd", *cmd), zap.Error(err))
		switch {
		case errors.Is(err, cli.ErrUnknownCommand):
			fmt.Fprintln(os.Stderr, err)
			flag.Usage()
			os.Exit(2)
		case errors.Is(err, booking.ErrInvalidDates), errors.Is(err, booking.ErrCreateFailed):
			// the alert has already been printed
		default:
			fmt.Println(cli.RetryMessage)
		}
		os.Exit(1)
	}
}
