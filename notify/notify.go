/* notify.go
 * Contains the Discord notifier. When a bot token and channel are configured, a completed run
 * posts its headline results to the channel. Notification failures are logged and never fail
 * the run.
 */

package notify

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/sirupsen/logrus"

	"bracket-bot/predictor/report"
	"bracket-bot/predictor/shared"
)

// Notifier posts run results to a Discord channel.
type Notifier struct {
	session   DiscordSession
	channelID string
	logger    *logrus.Logger
}

// NewNotifier opens a Discord session for the given bot token.
// Preconditions: botToken is a valid Discord bot token, channelID names a reachable channel
// Postconditions: returns a connected notifier, or an error if the session could not be opened
func NewNotifier(botToken string, channelID string, logger *logrus.Logger) (*Notifier, error) {
	discord, err := discordgo.New("Bot " + botToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create discord session: %w", err)
	}
	if err := discord.Open(); err != nil {
		return nil, fmt.Errorf("failed to open discord session: %w", err)
	}
	return &Notifier{session: discord, channelID: channelID, logger: logger}, nil
}

// AnnounceCompletion posts the champion, Final Four and biggest upsets for a finished run.
// Failures are logged, the run's result does not depend on Discord being reachable.
func (n *Notifier) AnnounceCompletion(t *shared.Tournament) {
	if _, err := n.session.ChannelMessageSend(n.channelID, CompletionMessage(t)); err != nil {
		n.logger.Warnf("Failed to post completion announcement: %v", err)
	}
}

// AnnounceFailure posts a short note that a run stopped on an error.
func (n *Notifier) AnnounceFailure(t *shared.Tournament, runErr error) {
	msg := fmt.Sprintf("**%s** prediction run failed: %v", t.TournamentName, runErr)
	if t.LastCompletedGameID != nil {
		msg += fmt.Sprintf("\nLast completed game: %s", *t.LastCompletedGameID)
	}
	if _, err := n.session.ChannelMessageSend(n.channelID, msg); err != nil {
		n.logger.Warnf("Failed to post failure announcement: %v", err)
	}
}

// Close shuts down the underlying Discord session if it is a real session.
func (n *Notifier) Close() {
	if session, ok := n.session.(*discordgo.Session); ok {
		if err := session.Close(); err != nil {
			n.logger.Warnf("Failed to close discord session: %v", err)
		}
	}
}

// CompletionMessage renders the announcement for a finished bracket.
func CompletionMessage(t *shared.Tournament) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "**%s** bracket complete!\n", t.TournamentName)
	if champion := t.Champion(); champion != "" {
		final := t.FinalGame()
		fmt.Fprintf(&sb, "Predicted champion: **%s**", champion)
		if final.Confidence != nil {
			fmt.Fprintf(&sb, " (%d%% confidence)", *final.Confidence)
		}
		sb.WriteString("\n")
	}

	if teams := report.FinalFour(t); len(teams) > 0 {
		names := make([]string, len(teams))
		for i, team := range teams {
			names[i] = fmt.Sprintf("#%d %s", team.Seed, team.Name)
		}
		fmt.Fprintf(&sb, "Final Four: %s\n", strings.Join(names, ", "))
	}

	upsets := report.Upsets(t)
	if len(upsets) > 3 {
		upsets = upsets[:3]
	}
	if len(upsets) > 0 {
		sb.WriteString("Biggest upsets:\n")
		for _, upset := range upsets {
			fmt.Fprintf(&sb, "- #%d %s over #%d %s (%s)\n",
				upset.Winner.Seed, upset.Winner.Name, upset.Loser.Seed, upset.Loser.Name, upset.RoundDisplay)
		}
	}

	return sb.String()
}
