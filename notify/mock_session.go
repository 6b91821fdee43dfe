/* mock_session.go
 * Contains a recording implementation of DiscordSession for testing
 */

package notify

import "github.com/bwmarrin/discordgo"

// RecordingSession implements DiscordSession and captures every message sent through it.
type RecordingSession struct {
	ChannelIDs []string
	Messages   []string
	// Err makes every send fail, simulating an unreachable channel
	Err error
}

// ChannelMessageSend implements DiscordSession.ChannelMessageSend
func (r *RecordingSession) ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	r.ChannelIDs = append(r.ChannelIDs, channelID)
	r.Messages = append(r.Messages, content)
	return &discordgo.Message{ChannelID: channelID, Content: content}, nil
}
