package report

import (
	"fmt"
	"strings"

	"WagerArena/internal/model"
)

// FormatSnapshot formats the current round for display.
func FormatSnapshot(s model.RoundSnapshot) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("🎲 Round %d | %s | %ds left\n", s.Round, s.Phase, s.TimeRemaining))
	b.WriteString(fmt.Sprintf("Balance: %d | Streak: %d | Tier: %s\n", s.Balance, s.Streak, s.Tier))

	if len(s.Racers) > 0 {
		b.WriteString("\n🏁 Choices:\n")
		for _, r := range s.Racers {
			b.WriteString(fmt.Sprintf("  %-8s %5.1f%%  wins %d", r.Name, r.Probability*100, r.Wins))
			if r.Multiplier > 0 {
				b.WriteString(fmt.Sprintf("  pays x%d", r.Multiplier))
			}
			b.WriteString("\n")
		}
	}
	if s.Prompt != "" {
		b.WriteString(fmt.Sprintf("\n🧮 %s\n", s.Prompt))
		opts := make([]string, len(s.Options))
		for i, o := range s.Options {
			opts[i] = fmt.Sprintf("[%d]", o)
		}
		b.WriteString("  " + strings.Join(opts, " ") + "\n")
	}
	if s.StagedStake > 0 {
		b.WriteString(fmt.Sprintf("\nStaged: %d\n", s.StagedStake))
	}
	if s.Over {
		b.WriteString("\n⛔ Session over. /reset to play again.\n")
	}

	return b.String()
}

// FormatResolution formats a resolved round.
func FormatResolution(r model.ResolutionEvent) string {
	var b strings.Builder

	switch r.Kind {
	case model.KindWin:
		b.WriteString(fmt.Sprintf("✅ Round %d won: +%d\n", r.Round, r.Payout))
	case model.KindTimeout:
		b.WriteString(fmt.Sprintf("⏰ Round %d timed out: %+d\n", r.Round, r.Payout))
	default:
		b.WriteString(fmt.Sprintf("❌ Round %d lost: %+d\n", r.Round, r.Payout))
	}
	b.WriteString(fmt.Sprintf("Answer: %s\n", r.Answer))
	b.WriteString(fmt.Sprintf("Balance: %d | Streak: %d\n", r.NewBalance, r.Streak))
	if r.TierChanged {
		b.WriteString(fmt.Sprintf("⬆️ Difficulty raised to %s\n", r.Tier))
	}
	if r.Over {
		if r.Won {
			b.WriteString("🏆 Target reached, challenge complete!\n")
		} else {
			b.WriteString("⛔ Session over.\n")
		}
	}

	return b.String()
}

// FormatAcceptance formats an activated power-up.
func FormatAcceptance(a model.AcceptanceEvent) string {
	msg := fmt.Sprintf("⚡ %s: %s (%d uses left)\nBalance: %d | %ds left\n",
		a.PowerUp.Name, a.EffectApplied, a.PowerUp.RemainingUses, a.Balance, a.TimeRemaining)
	if len(a.Options) > 0 {
		msg += fmt.Sprintf("Options: %v\n", a.Options)
	}
	return msg
}

// FormatInitial formats a fresh session.
func FormatInitial(s model.InitialSnapshot) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("🔄 New session %s\n", s.Session))
	b.WriteString(fmt.Sprintf("Balance: %d | Tier: %s\n", s.Balance, s.Tier))
	b.WriteString(FormatPowerUps(s.PowerUps))
	return b.String()
}

// FormatPowerUps lists the catalog.
func FormatPowerUps(pups []model.PowerUp) string {
	var b strings.Builder
	b.WriteString("Power-ups:\n")
	for _, p := range pups {
		active := ""
		if p.Active {
			active = " (active)"
		}
		b.WriteString(fmt.Sprintf("  %-7s %-13s cost %-4d uses %d%s\n", p.ID, p.Name, p.Cost, p.RemainingUses, active))
	}
	return b.String()
}

// FormatHistory lists the last n transactions, newest last. n <= 0 lists all.
func FormatHistory(txs []model.Transaction, n int) string {
	if len(txs) == 0 {
		return "No transactions yet."
	}
	if n > 0 && len(txs) > n {
		txs = txs[len(txs)-n:]
	}
	var b strings.Builder
	b.WriteString("📒 History:\n")
	for _, tx := range txs {
		b.WriteString(fmt.Sprintf("  #%-3d r%-3d %-8s stake %-5d %+6d -> %-6d %s",
			tx.Seq, tx.Round, tx.Kind, tx.Stake, tx.Payout, tx.ResultingBalance, tx.Risk))
		if tx.Note != "" {
			b.WriteString(" " + tx.Note)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// FormatHelp lists the available commands.
func FormatHelp() string {
	return "Commands:\n" +
		"• /start                      start the next round\n" +
		"• /stage <stake> [choice]     hold a stake, lost on timeout\n" +
		"• /bet <choice> <stake> [x]   bet, x is the confidence level\n" +
		"• /power <id>                 use a power-up\n" +
		"• /status                     show the current round\n" +
		"• /history [n]                show transactions\n" +
		"• /reset                      start a new session"
}
