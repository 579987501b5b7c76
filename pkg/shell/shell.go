// Package shell implements the interactive text menu over a Ledger.
// Input parsing happens here; every business rule lives in the ledger.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/amirasaad/ledger/pkg/domain/account"
	"github.com/amirasaad/ledger/pkg/domain/money"
	"github.com/amirasaad/ledger/pkg/ledger"
	"github.com/fatih/color"
)

// Menu options.
const (
	OptionExit = iota
	OptionDeposit
	OptionWithdraw
	OptionStatement
	OptionNewCustomer
	OptionNewAccount
	OptionListAccounts
)

const (
	msgInvalidOption = "Invalid option! Try again."
	msgInvalidNumber = "Invalid number! Try again."
	msgNoAccounts    = "No accounts registered."
	msgFinished      = "Operation finished."
	msgExit          = "Exiting the system..."
)

var menuItems = []struct {
	option int
	label  string
}{
	{OptionDeposit, "Deposit"},
	{OptionWithdraw, "Withdraw"},
	{OptionStatement, "Statement"},
	{OptionNewCustomer, "New Customer"},
	{OptionNewAccount, "New Account"},
	{OptionListAccounts, "List Accounts"},
	{OptionExit, "Exit"},
}

// Shell reads menu choices from an input stream and writes results to an output stream.
type Shell struct {
	ledger *ledger.Ledger
	in     *bufio.Scanner
	lines  chan inputLine
	out    io.Writer
	logger *slog.Logger

	title *color.Color
	ok    *color.Color
	fail  *color.Color
	warn  *color.Color
}

type inputLine struct {
	text string
	err  error
}

// Option configures a Shell.
type Option func(*Shell)

// WithColor turns ANSI colors on or off. Colors are off by default.
func WithColor(enabled bool) Option {
	return func(s *Shell) {
		for _, c := range []*color.Color{s.title, s.ok, s.fail, s.warn} {
			if enabled {
				c.EnableColor()
			} else {
				c.DisableColor()
			}
		}
	}
}

// WithLogger sets the logger used for shell diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Shell) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New returns a Shell operating on l.
func New(l *ledger.Ledger, in io.Reader, out io.Writer, opts ...Option) *Shell {
	s := &Shell{
		ledger: l,
		in:     bufio.NewScanner(in),
		out:    out,
		logger: slog.Default(),
		title:  color.New(color.FgCyan, color.Bold),
		ok:     color.New(color.FgGreen),
		fail:   color.New(color.FgRed),
		warn:   color.New(color.FgYellow),
	}
	WithColor(false)(s)
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("component", "shell")
	return s
}

// Run shows the menu until the operator exits, the input ends or ctx is
// cancelled. Cancellation interrupts any pending prompt and is returned as
// ctx.Err(). Input is read on a separate goroutine, which stays blocked until
// the input stream delivers its next line or closes.
func (s *Shell) Run(ctx context.Context) error {
	s.logger.Debug("session started")
	defer s.logger.Debug("session finished")

	done := make(chan struct{})
	defer close(done)
	s.lines = make(chan inputLine)
	go s.scan(s.lines, done)

	for {
		if err := ctx.Err(); err != nil {
			return s.endOfInput(err)
		}
		s.menu()
		line, err := s.readLine(ctx, "Choose an option: ")
		if err != nil {
			return s.endOfInput(err)
		}
		option, err := strconv.Atoi(line)
		if err != nil {
			s.fail.Fprintln(s.out, msgInvalidOption)
			continue
		}

		switch option {
		case OptionDeposit:
			err = s.deposit(ctx)
		case OptionWithdraw:
			err = s.withdraw(ctx)
		case OptionStatement:
			err = s.statement(ctx)
		case OptionNewCustomer:
			err = s.newCustomer(ctx)
		case OptionNewAccount:
			err = s.newAccount(ctx)
		case OptionListAccounts:
			s.listAccounts()
		case OptionExit:
			fmt.Fprintln(s.out, msgExit)
			return nil
		default:
			s.fail.Fprintln(s.out, msgInvalidOption)
		}
		if err != nil {
			return s.endOfInput(err)
		}
	}
}

// endOfInput turns EOF into a clean exit. Cancellation also prints the exit
// message but is still returned to the caller.
func (s *Shell) endOfInput(err error) error {
	eof := errors.Is(err, io.EOF)
	if eof || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		fmt.Fprintln(s.out)
		fmt.Fprintln(s.out, msgExit)
	}
	if eof {
		return nil
	}
	return err
}

// scan forwards input lines to out until the input ends or done closes.
func (s *Shell) scan(out chan<- inputLine, done <-chan struct{}) {
	defer close(out)
	for {
		var l inputLine
		if s.in.Scan() {
			l.text = s.in.Text()
		} else if l.err = s.in.Err(); l.err == nil {
			l.err = io.EOF
		}
		select {
		case out <- l:
		case <-done:
			return
		}
		if l.err != nil {
			return
		}
	}
}

func (s *Shell) menu() {
	s.title.Fprintln(s.out, "===== MENU =====")
	fmt.Fprintln(s.out)
	for _, item := range menuItems {
		fmt.Fprintf(s.out, "%d - %s\n", item.option, item.label)
	}
	fmt.Fprintln(s.out)
}

func (s *Shell) header(name string) {
	fmt.Fprintln(s.out)
	s.title.Fprintf(s.out, "=== %s ===\n", name)
	fmt.Fprintln(s.out)
}

// readLine prints prompt and returns the next trimmed input line.
func (s *Shell) readLine(ctx context.Context, prompt string) (string, error) {
	fmt.Fprint(s.out, prompt)
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case l, ok := <-s.lines:
		if !ok {
			return "", io.EOF
		}
		if l.err != nil {
			return "", l.err
		}
		return strings.TrimSpace(l.text), nil
	}
}

// readInt re-prompts until the operator types an integer.
func (s *Shell) readInt(ctx context.Context, prompt string) (int, error) {
	for {
		line, err := s.readLine(ctx, prompt)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(line)
		if err == nil {
			return n, nil
		}
		s.fail.Fprintln(s.out, msgInvalidNumber)
	}
}

// readAmount re-prompts until the operator types a well-formed amount.
// Sign is not checked here.
func (s *Shell) readAmount(ctx context.Context, prompt string) (money.Money, error) {
	for {
		line, err := s.readLine(ctx, prompt)
		if err != nil {
			return money.Money{}, err
		}
		m, err := money.Parse(line)
		if err == nil {
			return m, nil
		}
		s.fail.Fprintf(s.out, "Invalid amount! %v\n", err)
	}
}

// again asks whether to repeat an operation. Only "n" stops the loop.
func (s *Shell) again(ctx context.Context, question string) (bool, error) {
	line, err := s.readLine(ctx, question + " (y/n): ")
	if err != nil {
		return false, err
	}
	if strings.EqualFold(line, "n") {
		fmt.Fprintln(s.out, msgFinished)
		fmt.Fprintln(s.out)
		return false, nil
	}
	return true, nil
}

func (s *Shell) selectAccount(ctx context.Context) (*account.Account, error) {
	number, err := s.readInt(ctx, "Account number: ")
	if err != nil {
		return nil, err
	}
	acc, ok := s.ledger.FindAccount(number)
	if !ok {
		s.fail.Fprintf(s.out, "%v: %d\n", ledger.ErrAccountNotFound, number)
		return nil, nil
	}
	return acc, nil
}

type movement func(ctx context.Context, number int, amount money.Money) (account.Record, error)

func (s *Shell) deposit(ctx context.Context) error {
	return s.movementLoop(ctx, "DEPOSIT", "Deposit", "Make another deposit?", s.ledger.Deposit)
}

func (s *Shell) withdraw(ctx context.Context) error {
	return s.movementLoop(ctx, "WITHDRAWAL", "Withdrawal", "Make another withdrawal?", s.ledger.Withdraw)
}

func (s *Shell) movementLoop(ctx context.Context, title, label, question string, apply movement) error {
	acc, err := s.selectAccount(ctx)
	if err != nil || acc == nil {
		return err
	}
	for {
		s.header(title)
		amount, err := s.readAmount(ctx, label + " amount: " + money.Symbol + " ")
		if err != nil {
			return err
		}
		fmt.Fprintln(s.out)
		rec, err := apply(ctx, acc.Number, amount)
		if err != nil {
			s.fail.Fprintln(s.out, err.Error())
		} else {
			s.ok.Fprintf(s.out, "%s of %s completed successfully!\n", label, rec.Amount.Format())
			fmt.Fprintf(s.out, "Your current balance is: %s\n", rec.BalanceAfter.Format())
		}
		fmt.Fprintln(s.out)
		more, err := s.again(ctx, question)
		if err != nil || !more {
			return err
		}
	}
}

func (s *Shell) statement(ctx context.Context) error {
	acc, err := s.selectAccount(ctx)
	if err != nil || acc == nil {
		return err
	}
	s.header("STATEMENT")
	fmt.Fprintln(s.out, acc.Statement())
	fmt.Fprintln(s.out)
	return nil
}

func (s *Shell) newCustomer(ctx context.Context) error {
	s.header("NEW CUSTOMER")
	var fields [4]string
	prompts := [4]string{"ID: ", "Name: ", "Birth date (dd-mm-yyyy): ", "Address: "}
	for i, p := range prompts {
		v, err := s.readLine(ctx, p)
		if err != nil {
			return err
		}
		fields[i] = v
	}
	c, err := s.ledger.CreateCustomer(ctx, fields[0], fields[1], fields[2], fields[3])
	if err != nil {
		s.fail.Fprintln(s.out, err.Error())
		return nil
	}
	if c.BirthDateRaw != "" && !c.HasValidBirthDate() {
		s.warn.Fprintf(s.out, "Birth date %q not recognised; kept as typed.\n", c.BirthDateRaw)
	}
	s.ok.Fprintf(s.out, "Customer %s created successfully!\n", c.Name)
	fmt.Fprintln(s.out)
	return nil
}

func (s *Shell) newAccount(ctx context.Context) error {
	s.header("NEW ACCOUNT")
	id, err := s.readLine(ctx, "Customer ID: ")
	if err != nil {
		return err
	}
	acc, err := s.ledger.CreateAccount(ctx, id)
	if err != nil {
		s.fail.Fprintln(s.out, err.Error())
		return nil
	}
	s.ok.Fprintf(s.out, "Account %s/%d opened successfully!\n", acc.Branch, acc.Number)
	fmt.Fprintln(s.out)
	return nil
}

func (s *Shell) listAccounts() {
	s.header("ACCOUNTS")
	accounts := s.ledger.Accounts()
	if len(accounts) == 0 {
		fmt.Fprintln(s.out, msgNoAccounts)
		fmt.Fprintln(s.out)
		return
	}
	for _, a := range accounts {
		owner := a.OwnerID
		if c, ok := s.ledger.FindCustomer(a.OwnerID); ok {
			owner = c.Name
		}
		fmt.Fprintf(s.out, "Branch: %s  Number: %d  Owner: %s\n", a.Branch, a.Number, owner)
	}
	fmt.Fprintln(s.out)
}
