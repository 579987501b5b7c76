package shell_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/amirasaad/ledger/pkg/ledger"
	"github.com/amirasaad/ledger/pkg/shell"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
	os.Exit(m.Run())
}

// run feeds the given input lines to a fresh shell and returns its output.
func run(t *testing.T, l *ledger.Ledger, lines ...string) string {
	t.Helper()
	if l == nil {
		var err error
		l, err = ledger.New()
		require.NoError(t, err)
	}
	var out bytes.Buffer
	in := strings.NewReader(strings.Join(lines, "\n") + "\n")
	require.NoError(t, shell.New(l, in, &out).Run(context.Background()))
	return out.String()
}

func TestRun_MenuAndExit(t *testing.T) {
	t.Parallel()
	out := run(t, nil, "0")
	assert.Contains(t, out, "===== MENU =====")
	for _, label := range []string{"1 - Deposit", "2 - Withdraw", "3 - Statement", "4 - New Customer", "5 - New Account", "6 - List Accounts", "0 - Exit"} {
		assert.Contains(t, out, label)
	}
	assert.Contains(t, out, "Exiting the system...")
	assert.NotContains(t, out, "\x1b[", "colors are off by default")
}

func TestRun_InvalidOption(t *testing.T) {
	t.Parallel()
	out := run(t, nil, "9", "abc", "0")
	assert.Equal(t, 2, strings.Count(out, "Invalid option! Try again."))
	assert.Equal(t, 3, strings.Count(out, "===== MENU ====="))
}

func TestRun_EndOfInputExits(t *testing.T) {
	t.Parallel()
	out := run(t, nil, "4", "111")
	assert.Contains(t, out, "Exiting the system...")
}

func TestRun_FullSession(t *testing.T) {
	t.Parallel()
	l, err := ledger.New()
	require.NoError(t, err)

	out := run(t, l,
		"4", "111", "Ana Souza", "15-03-1990", "Rua A, 1",
		"5", "111",
		"1", "1", "200", "y", "abc", "0", "n",
		"2", "1", "50", "y", "1000", "n",
		"3", "1",
		"6",
		"0",
	)

	assert.Contains(t, out, "Customer Ana Souza created successfully!")
	assert.Contains(t, out, "Account 0001/1 opened successfully!")
	assert.Contains(t, out, "Deposit of R$ 200.00 completed successfully!")
	assert.Contains(t, out, "Your current balance is: R$ 200.00")
	assert.Contains(t, out, "Invalid amount!")
	assert.Contains(t, out, "invalid amount: the value must be greater than zero")
	assert.Contains(t, out, "Withdrawal of R$ 50.00 completed successfully!")
	assert.Contains(t, out, "insufficient funds")
	assert.Contains(t, out, "Balance: R$ 150.00")
	assert.Contains(t, out, "Branch: 0001  Number: 1  Owner: Ana Souza")
	assert.Equal(t, 2, strings.Count(out, "Operation finished."))

	acc, ok := l.FindAccount(1)
	require.True(t, ok)
	assert.Equal(t, "150.00", acc.Balance().String())
	assert.Equal(t, 2, acc.History().Len())
}

func TestRun_StatementOfFreshAccount(t *testing.T) {
	t.Parallel()
	out := run(t, nil, "4", "111", "Ana", "", "", "5", "111", "3", "1", "0")
	assert.Contains(t, out, "=== STATEMENT ===")
	assert.Contains(t, out, "No movements were made.")
	assert.Contains(t, out, "Balance: R$ 0.00")
}

func TestRun_Errors(t *testing.T) {
	t.Parallel()
	out := run(t, nil,
		"6",
		"5", "404",
		"1", "x", "7",
		"4", "111", "Ana", "someday", "",
		"4", "111", "Bia", "", "",
		"0",
	)
	assert.Contains(t, out, "No accounts registered.")
	assert.Contains(t, out, "customer not found: 404")
	assert.Contains(t, out, "Invalid number! Try again.")
	assert.Contains(t, out, "account not found: 7")
	assert.Contains(t, out, `Birth date "someday" not recognised; kept as typed.`)
	assert.Contains(t, out, "a customer with this id already exists: 111")
}

func TestRun_ColorEnabled(t *testing.T) {
	t.Parallel()
	l, err := ledger.New()
	require.NoError(t, err)
	var out bytes.Buffer
	sh := shell.New(l, strings.NewReader("0\n"), &out, shell.WithColor(true))
	require.NoError(t, sh.Run(context.Background()))
	assert.Contains(t, out.String(), "\x1b[")
}

func TestRun_CancelledContext(t *testing.T) {
	t.Parallel()
	l, err := ledger.New()
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = shell.New(l, strings.NewReader("0\n"), io.Discard).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRun_CancelInterruptsPrompt(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		input []string
	}{
		{"menu prompt", nil},
		{"deposit loop", []string{"4", "111", "Ana", "", "", "5", "111", "1", "1", "10"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			l, err := ledger.New()
			require.NoError(t, err)

			pr, pw := io.Pipe()
			t.Cleanup(func() { _ = pw.Close() })
			out := &syncBuffer{}
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			result := make(chan error, 1)
			go func() { result <- shell.New(l, pr, out).Run(ctx) }()

			for _, line := range tt.input {
				_, err := io.WriteString(pw, line+"\n")
				require.NoError(t, err)
			}
			// the shell is now blocked waiting for input on an open stream
			wantPrompt := "Choose an option: "
			if tt.input != nil {
				wantPrompt = "Make another deposit? (y/n): "
			}
			require.Eventually(t, func() bool {
				return strings.HasSuffix(out.String(), wantPrompt)
			}, time.Second, 5*time.Millisecond)

			cancel()
			select {
			case err := <-result:
				assert.ErrorIs(t, err, context.Canceled)
			case <-time.After(time.Second):
				t.Fatal("shell kept running after cancellation")
			}
			assert.Contains(t, out.String(), "Exiting the system...")
		})
	}
}

// syncBuffer is a bytes.Buffer safe for one writer and concurrent readers.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}
