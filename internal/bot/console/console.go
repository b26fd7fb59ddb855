// Package console implements the interactive terminal front end.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/AchileWeiglet/FinanceConsultant/internal/domain"
)

var (
	subtle    = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#383838"}
	highlight = lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"}
	special   = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	warn      = lipgloss.AdaptiveColor{Light: "#BF4343", Dark: "#F57373"}

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Background(highlight).
			Padding(1, 2).
			Bold(true).
			MarginBottom(1)

	promptStyle = lipgloss.NewStyle().
			Foreground(special).
			Bold(true)

	replyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#1A1A1A", Dark: "#DDDDDD"}).
			PaddingLeft(1)

	errorStyle = lipgloss.NewStyle().
			Foreground(warn).
			PaddingLeft(1)

	hintStyle = lipgloss.NewStyle().
			Foreground(subtle)
)

// processor handles one user message end to end.
type processor interface {
	Process(ctx context.Context, userMessage string) *domain.ResponseEnvelope
}

// tradeExecutor runs a confirmed analysis as a simulated order.
type tradeExecutor interface {
	ExecuteAnalysis(ctx context.Context, analysis *domain.TradingAnalysis) (*domain.TradeResult, error)
}

// Bot is the console REPL: it reads lines, routes them through the selector
// and asks for confirmation before executing any suggested trade.
type Bot struct {
	processor processor
	trader    tradeExecutor
	logger    *zap.Logger
	in        io.Reader
	out       io.Writer
}

func New(processor processor, trader tradeExecutor, logger *zap.Logger) *Bot {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Bot{
		processor: processor,
		trader:    trader,
		logger:    logger,
		in:        os.Stdin,
		out:       os.Stdout,
	}
}

// Run blocks until the context is cancelled, input ends or the user quits.
func (b *Bot) Run(ctx context.Context) error {
	fmt.Fprintln(b.out, headerStyle.Render("BITCOIN TRADING ASSISTANT"))
	fmt.Fprintln(b.out, hintStyle.Render("Ask about prices, balances, portfolio or trading decisions."))
	fmt.Fprintln(b.out, hintStyle.Render("Type 'help' for examples, 'quit' to exit.\n"))

	scanner := bufio.NewScanner(b.in)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		fmt.Fprint(b.out, promptStyle.Render("you> ")+" ")
		if !scanner.Scan() {
			return scanner.Err()
		}

		message := strings.TrimSpace(scanner.Text())
		if message == "" {
			continue
		}
		if isQuitCommand(message) {
			fmt.Fprintln(b.out, hintStyle.Render("Goodbye! 👋"))
			return nil
		}

		envelope := b.processor.Process(ctx, message)
		b.render(envelope)

		if envelope.RequiresTradeConfirmation && envelope.Analysis != nil {
			b.confirmAndExecute(ctx, envelope.Analysis)
		}
	}
}

func (b *Bot) render(envelope *domain.ResponseEnvelope) {
	style := replyStyle
	if !envelope.Success {
		style = errorStyle
	}
	fmt.Fprintln(b.out, style.Render(envelope.Message))

	if envelope.IntentInfo != nil {
		fmt.Fprintln(b.out, hintStyle.Render(fmt.Sprintf("  [intent: %s | handler: %s | confidence: %.0f%%]",
			envelope.IntentInfo.Intent, envelope.IntentInfo.Handler, envelope.IntentInfo.Confidence*100)))
	}
	fmt.Fprintln(b.out)
}

// confirmAndExecute asks before any simulated order goes through. A dropped
// form (ctrl+c) counts as a decline.
func (b *Bot) confirmAndExecute(ctx context.Context, analysis *domain.TradingAnalysis) {
	confirmed := false
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Execute simulated %s of %s BTC?",
					strings.ToUpper(string(analysis.Intention)), analysis.Amount.String())).
				Description("No real funds move. The order is recorded as simulated.").
				Affirmative("Execute").
				Negative("Cancel").
				Value(&confirmed),
		),
	).Run()
	if err != nil || !confirmed {
		fmt.Fprintln(b.out, hintStyle.Render("  Trade cancelled.\n"))
		return
	}

	result, err := b.trader.ExecuteAnalysis(ctx, analysis)
	if err != nil {
		b.logger.Error("simulated trade failed", zap.Error(err))
		fmt.Fprintln(b.out, errorStyle.Render(fmt.Sprintf("❌ Trade failed: %v\n", err)))
		return
	}

	fmt.Fprintln(b.out, replyStyle.Render(fmt.Sprintf(`✅ Trade executed (%s):
  📋 Order ID: %s
  📊 %s %s %s`,
		result.Status, result.OrderID, result.Side, result.Quantity.String(), result.Symbol)))
	fmt.Fprintln(b.out)
}

func isQuitCommand(message string) bool {
	switch strings.ToLower(message) {
	case "quit", "exit", "q":
		return true
	}
	return false
}
