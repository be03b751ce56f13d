package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"raffler/application"
	"raffler/config"
	"raffler/database"
	"raffler/domain/entities"
	"raffler/domain/interfaces"
	"raffler/domain/services"
	"raffler/infrastructure"
	"raffler/repository"

	log "github.com/sirupsen/logrus"
)

const usage = `usage: raffler <command> [flags]

commands:
  migrate up|down <steps>|status   manage the database schema
  create   -actor <id> -name <text> -prefix <text> -price <cents> [-prime <n>] [-min <n>] -venmo <handle>
  activate -raffle <id> -actor <id>                       open ticket sales
  cancel   -raffle <id> -actor <id>                       cancel a raffle
  purchase -raffle <id> -email <addr> -venmo <handle>     sell the next ticket
  verify   -ticket <id> -actor <id> [-txn <ref>]          mark payment verified
  reject   -ticket <id> -actor <id>                       reject a pending ticket
  draw     -raffle <id> -actor <id>                       select a draw candidate
  redraw   -raffle <id> -ticket <id> -actor <id> [-reason <text>]
  confirm  -raffle <id> -ticket <id> -actor <id>          confirm the winner
  status   -raffle <id>                                   show drawing status
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	if os.Args[1] == "migrate" {
		if err := handleMigrationCommand(); err != nil {
			log.WithError(err).Fatal("Migration failed")
		}
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	// Cancel on interrupt so a stuck operation doesn't hang the CLI
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	if err := run(ctx, os.Args[1], os.Args[2:]); err != nil {
		log.WithError(err).Fatal("Command failed")
	}
}

func handleMigrationCommand() error {
	if len(os.Args) < 3 {
		return fmt.Errorf("usage: raffler migrate [up|down|status] [args...]")
	}

	switch os.Args[2] {
	case "up":
		return database.MigrateUp()
	case "down":
		if len(os.Args) < 4 {
			return fmt.Errorf("usage: raffler migrate down <steps>")
		}
		return database.MigrateDown(os.Args[3])
	case "status":
		return database.MigrateStatus()
	default:
		return fmt.Errorf("unknown migration command: %s", os.Args[2])
	}
}

func run(ctx context.Context, command string, args []string) error {
	cfg := config.Get()

	db, err := database.NewConnection(ctx, cfg.GetDatabaseURL())
	if err != nil {
		return err
	}
	defer db.Close()

	var realPublisher interfaces.EventPublisher
	if cfg.NATSServers != "" {
		natsClient := infrastructure.NewNATSClient(cfg.NATSServers)
		if err := natsClient.Connect(); err != nil {
			return err
		}
		defer natsClient.Close()
		realPublisher = infrastructure.NewNATSEventPublisher(natsClient)
	}

	uowFactory := repository.NewUnitOfWorkFactory(db, func() interfaces.TransactionalEventPublisher {
		if realPublisher == nil {
			return infrastructure.NewNoopEventPublisher()
		}
		return infrastructure.NewTransactionalPublisher(realPublisher)
	})

	clock := services.NewSystemClock()
	drawing := application.NewDrawingHandler(
		uowFactory,
		infrastructure.NewLogNotifier(),
		services.NewCryptoRandomSource(),
		clock,
	)
	raffles := application.NewRaffleHandler(uowFactory, clock)
	tickets := application.NewTicketHandler(uowFactory, clock)

	switch command {
	case "create":
		return runCreate(ctx, raffles, args)
	case "activate":
		return runActivate(ctx, raffles, args)
	case "cancel":
		return runCancel(ctx, raffles, args)
	case "purchase":
		return runPurchase(ctx, tickets, args)
	case "verify":
		return runVerify(ctx, tickets, args)
	case "reject":
		return runReject(ctx, tickets, args)
	case "draw":
		return runDraw(ctx, drawing, args)
	case "redraw":
		return runRedraw(ctx, drawing, args)
	case "confirm":
		return runConfirm(ctx, drawing, args)
	case "status":
		return runStatus(ctx, drawing, args)
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command: %s", command)
	}
}

func runCreate(ctx context.Context, handler *application.RaffleHandler, args []string) error {
	fs := flag.NewFlagSet("create", flag.ExitOnError)
	actorID := fs.Int64("actor", 0, "acting organizer ID")
	name := fs.String("name", "", "raffle name")
	prefix := fs.String("prefix", "", "ticket number prefix")
	price := fs.Int64("price", 0, "ticket price in cents")
	prime := fs.Int("prime", 0, "owner routing prime (0 uses the platform default)")
	minTickets := fs.Int("min", 0, "minimum tickets before drawing (0 disables the gate)")
	venmo := fs.String("venmo", "", "organizer venmo handle")
	if err := fs.Parse(args); err != nil {
		return err
	}

	raffle, err := handler.CreateRaffle(ctx, interfaces.CreateRaffleParams{
		Name:              *name,
		TicketPrefix:      *prefix,
		TicketPriceCents:  *price,
		OwnerPrime:        *prime,
		MinTickets:        *minTickets,
		MinTicketsEnabled: *minTickets > 0,
		OrganizerVenmo:    *venmo,
	}, *actorID)
	if err != nil {
		return err
	}

	fmt.Printf("Created raffle %d (%s): %d tickets max at %d.%02d each\n",
		raffle.ID, raffle.PublicID, raffle.MaxTickets,
		raffle.TicketPriceCents/100, raffle.TicketPriceCents%100)
	return nil
}

func runActivate(ctx context.Context, handler *application.RaffleHandler, args []string) error {
	fs := flag.NewFlagSet("activate", flag.ExitOnError)
	raffleID := fs.Int64("raffle", 0, "raffle ID")
	actorID := fs.Int64("actor", 0, "acting organizer ID")
	if err := fs.Parse(args); err != nil {
		return err
	}

	raffle, err := handler.ActivateRaffle(ctx, *raffleID, *actorID)
	if err != nil {
		return err
	}

	fmt.Printf("Raffle %d is now active; share code %s\n", raffle.ID, raffle.PublicID)
	return nil
}

func runCancel(ctx context.Context, handler *application.RaffleHandler, args []string) error {
	fs := flag.NewFlagSet("cancel", flag.ExitOnError)
	raffleID := fs.Int64("raffle", 0, "raffle ID")
	actorID := fs.Int64("actor", 0, "acting organizer ID")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := handler.CancelRaffle(ctx, *raffleID, *actorID); err != nil {
		return err
	}

	fmt.Printf("Raffle %d cancelled\n", *raffleID)
	return nil
}

func runPurchase(ctx context.Context, handler *application.TicketHandler, args []string) error {
	fs := flag.NewFlagSet("purchase", flag.ExitOnError)
	raffleID := fs.Int64("raffle", 0, "raffle ID")
	email := fs.String("email", "", "player email")
	venmo := fs.String("venmo", "", "player venmo handle")
	if err := fs.Parse(args); err != nil {
		return err
	}

	result, err := handler.PurchaseTicket(ctx, *raffleID, *email, *venmo)
	if err != nil {
		return err
	}

	fmt.Printf("Ticket %s reserved. Pay here: %s\n", result.Ticket.TicketNumber, result.PaymentLink)
	fmt.Printf("Current jackpot: %d.%02d\n", result.JackpotCents/100, result.JackpotCents%100)
	return nil
}

func runVerify(ctx context.Context, handler *application.TicketHandler, args []string) error {
	fs := flag.NewFlagSet("verify", flag.ExitOnError)
	ticketID := fs.Int64("ticket", 0, "ticket ID")
	actorID := fs.Int64("actor", 0, "acting organizer ID")
	txn := fs.String("txn", "", "venmo transaction reference")
	if err := fs.Parse(args); err != nil {
		return err
	}

	ticket, err := handler.VerifyTicket(ctx, *ticketID, *txn, *actorID)
	if err != nil {
		return err
	}

	fmt.Printf("Ticket %s verified\n", ticket.TicketNumber)
	return nil
}

func runReject(ctx context.Context, handler *application.TicketHandler, args []string) error {
	fs := flag.NewFlagSet("reject", flag.ExitOnError)
	ticketID := fs.Int64("ticket", 0, "ticket ID")
	actorID := fs.Int64("actor", 0, "acting organizer ID")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := handler.RejectTicket(ctx, *ticketID, *actorID); err != nil {
		return err
	}

	fmt.Printf("Ticket %d rejected\n", *ticketID)
	return nil
}

func runDraw(ctx context.Context, handler *application.DrawingHandler, args []string) error {
	fs := flag.NewFlagSet("draw", flag.ExitOnError)
	raffleID := fs.Int64("raffle", 0, "raffle ID")
	actorID := fs.Int64("actor", 0, "acting organizer ID")
	if err := fs.Parse(args); err != nil {
		return err
	}

	candidate, err := handler.ExecuteDraw(ctx, *raffleID, *actorID)
	if err != nil {
		return describeDrawError(err)
	}

	fmt.Printf("Draw #%d candidate: %s (player %s, status %s)\n",
		candidate.DrawNumber,
		candidate.Ticket.TicketNumber,
		candidate.Ticket.PlayerEmail,
		candidate.Ticket.Status,
	)
	fmt.Println("Confirm with 'raffler confirm' or invalidate with 'raffler redraw'.")
	return nil
}

func runRedraw(ctx context.Context, handler *application.DrawingHandler, args []string) error {
	fs := flag.NewFlagSet("redraw", flag.ExitOnError)
	raffleID := fs.Int64("raffle", 0, "raffle ID")
	ticketID := fs.Int64("ticket", 0, "ticket ID to invalidate")
	actorID := fs.Int64("actor", 0, "acting organizer ID")
	reason := fs.String("reason", "", "invalidation reason")
	if err := fs.Parse(args); err != nil {
		return err
	}

	result, err := handler.Redraw(ctx, *raffleID, *ticketID, *reason, *actorID)
	if err != nil {
		return describeDrawError(err)
	}

	fmt.Printf("Draw #%d candidate: %s (%d redraws remaining)\n",
		result.DrawNumber,
		result.NewTicket.TicketNumber,
		result.RedrawsRemaining,
	)
	return nil
}

func runConfirm(ctx context.Context, handler *application.DrawingHandler, args []string) error {
	fs := flag.NewFlagSet("confirm", flag.ExitOnError)
	raffleID := fs.Int64("raffle", 0, "raffle ID")
	ticketID := fs.Int64("ticket", 0, "winning ticket ID")
	actorID := fs.Int64("actor", 0, "acting organizer ID")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := handler.ConfirmWinner(ctx, *raffleID, *ticketID, *actorID); err != nil {
		return describeDrawError(err)
	}

	fmt.Println("Winner confirmed, raffle complete.")
	return nil
}

func runStatus(ctx context.Context, handler *application.DrawingHandler, args []string) error {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	raffleID := fs.Int64("raffle", 0, "raffle ID")
	if err := fs.Parse(args); err != nil {
		return err
	}

	status, err := handler.Status(ctx, *raffleID)
	if err != nil {
		return err
	}

	fmt.Printf("Draws: %d  Redraws: %d/%d (%d remaining)\n",
		status.DrawCount, status.Redraws, status.MaxRedraws, status.RedrawsRemaining)
	if status.NeedsEscalation {
		fmt.Println("Redraw limit reached: owner intervention required.")
	}
	for _, entry := range status.DrawLog {
		line := fmt.Sprintf("  #%d %s ticket %d", entry.DrawNumber, entry.Result, entry.TicketID)
		if entry.Reason != "" {
			line += " (" + entry.Reason + ")"
		}
		fmt.Println(line)
	}
	return nil
}

// describeDrawError adds the operator-facing detail for conditions that
// carry a payload.
func describeDrawError(err error) error {
	var belowMin *entities.BelowMinimumError
	if errors.As(err, &belowMin) {
		return fmt.Errorf("%w (need %d more tickets)", err, belowMin.Shortfall())
	}

	var maxRedraws *entities.MaxRedrawsExceededError
	if errors.As(err, &maxRedraws) {
		return fmt.Errorf("%w: contact the platform owner", err)
	}

	return err
}
