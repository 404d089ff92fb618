package notify

import (
	"fmt"
	"os"
	"time"

	"github.com/dghubble/go-twitter/twitter" //nolint:staticcheck // Using stable v1.1 API
	"github.com/dghubble/oauth1"
	"github.com/openchess/entrywatch/internal/event"
)

// maxTweetsPerCycle caps how many per-event tweets one cycle may post.
const maxTweetsPerCycle = 10

// TwitterNotifier announces entry-list changes as one tweet per changed
// event.
type TwitterNotifier struct {
	client *twitter.Client
}

// NewTwitterNotifier creates the Twitter sink from environment credentials:
// TWITTER_API_KEY, TWITTER_API_SECRET, TWITTER_ACCESS_TOKEN and
// TWITTER_ACCESS_SECRET.
func NewTwitterNotifier() (*TwitterNotifier, error) {
	apiKey := os.Getenv("TWITTER_API_KEY")
	apiSecret := os.Getenv("TWITTER_API_SECRET")
	accessToken := os.Getenv("TWITTER_ACCESS_TOKEN")
	accessSecret := os.Getenv("TWITTER_ACCESS_SECRET")

	if apiKey == "" || apiSecret == "" || accessToken == "" || accessSecret == "" {
		return nil, fmt.Errorf("missing required Twitter credentials in environment variables")
	}

	oauthConfig := oauth1.NewConfig(apiKey, apiSecret)
	token := oauth1.NewToken(accessToken, accessSecret)
	httpClient := oauthConfig.Client(oauth1.NoContext, token)

	return &TwitterNotifier{client: twitter.NewClient(httpClient)}, nil
}

func (n *TwitterNotifier) Name() string { return "twitter" }

// Notify posts one tweet per changed event, up to the per-cycle cap.
func (n *TwitterNotifier) Notify(reports []*event.Report) error {
	posted := 0
	for _, r := range reports {
		if !r.HasChanges() {
			continue
		}
		if posted >= maxTweetsPerCycle {
			break
		}
		if posted > 0 {
			// Rate limiting: wait between tweets
			time.Sleep(2 * time.Second)
		}
		if _, _, err := n.client.Statuses.Update(formatTweet(r), nil); err != nil {
			return fmt.Errorf("failed to post tweet for %s: %w", r.Name, err)
		}
		posted++
	}
	return nil
}

// formatTweet renders one changed event within the 280-character limit.
func formatTweet(r *event.Report) string {
	tweet := fmt.Sprintf("%s %s\n", r.Name, DeltaTag(r))
	tweet += fmt.Sprintf("Date: %s\n", DateDisplay(r.Dates))
	tweet += fmt.Sprintf("Entries: %d\n", r.Count)
	tweet += r.RosterURL

	if len(tweet) > 280 {
		tweet = tweet[:277] + "..."
	}
	return tweet
}
