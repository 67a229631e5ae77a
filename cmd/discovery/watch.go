package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/nats-io/nats.go"
	"github.com/spf13/cobra"

	"github.com/alfredjeanlab/discovery/internal/events"
	"github.com/alfredjeanlab/discovery/internal/model"
	"github.com/alfredjeanlab/discovery/internal/ui"
)

var watchCmd = &cobra.Command{
	Use:               "watch",
	Short:             "Stream discovery events from NATS",
	GroupID:           "graph",
	Args:              cobra.NoArgs,
	PersistentPreRunE: noClient,
	RunE: func(cmd *cobra.Command, args []string) error {
		natsURL, _ := cmd.Flags().GetString("nats-url")
		topic, _ := cmd.Flags().GetString("topic")
		projectID, _ := cmd.Flags().GetInt64("project")
		if natsURL == "" {
			return fmt.Errorf("--nats-url or DISCOVERY_NATS_URL is required")
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return watchNATS(ctx, cmd.OutOrStdout(), natsURL, topic, projectID)
	},
}

func watchNATS(ctx context.Context, out io.Writer, natsURL, topic string, projectID int64) error {
	sub, err := events.NewNATSSubscriber(natsURL,
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			log.Printf("nats: disconnected: %v", err)
		}),
		nats.ReconnectHandler(func(_ *nats.Conn) {
			log.Printf("nats: reconnected")
		}),
	)
	if err != nil {
		return fmt.Errorf("connecting to NATS: %w", err)
	}
	defer sub.Close()

	return watchEvents(ctx, out, sub, topic, projectID)
}

// watchEvents prints every event on topic until ctx is done or the
// subscription closes.
func watchEvents(ctx context.Context, out io.Writer, sub events.Subscriber, topic string, projectID int64) error {
	ch, cancel, err := sub.Subscribe(topic)
	if err != nil {
		return fmt.Errorf("subscribing to events: %w", err)
	}
	defer cancel()

	for {
		select {
		case <-ctx.Done():
			return nil
		case data, ok := <-ch:
			if !ok {
				return nil
			}
			line, show := formatEvent(data, projectID)
			if show {
				fmt.Fprintln(out, line)
			}
		}
	}
}

// watchEvent is the union of the fields carried by discovery events. The bus
// delivers payloads without their subject, so the kind is inferred from
// which fields are present.
type watchEvent struct {
	ProjectID   int64             `json:"project_id"`
	Stats       *model.GraphStats `json:"stats"`
	Destination string            `json:"destination"`
	Projects    int               `json:"projects"`
	Bytes       int               `json:"bytes"`
}

// formatEvent renders a payload for the terminal. With projectID > 0 only
// graph events for that project are shown. In JSON mode the raw payload is
// passed through.
func formatEvent(data []byte, projectID int64) (string, bool) {
	var evt watchEvent
	if err := json.Unmarshal(data, &evt); err != nil {
		if projectID > 0 {
			return "", false
		}
		return string(data), true
	}
	if projectID > 0 && evt.ProjectID != projectID {
		return "", false
	}
	if jsonOutput {
		return string(data), true
	}

	switch {
	case evt.ProjectID > 0:
		line := ui.RenderAccent("graph built") + fmt.Sprintf(" project %d", evt.ProjectID)
		if s := evt.Stats; s != nil {
			line += ui.RenderMuted(fmt.Sprintf(" (%d stakeholders, %d problems, %d outcomes, %d interviews)",
				s.StakeholderCount, s.ProblemCount, s.OutcomeCount, s.InterviewCount))
		}
		return line, true
	case evt.Destination != "":
		return ui.RenderAccent("export completed") + fmt.Sprintf(" %s", evt.Destination) +
			ui.RenderMuted(fmt.Sprintf(" (%d projects, %d bytes)", evt.Projects, evt.Bytes)), true
	}
	return string(data), true
}

func init() {
	watchCmd.Flags().String("nats-url", os.Getenv("DISCOVERY_NATS_URL"), "NATS server URL")
	watchCmd.Flags().String("topic", events.TopicAll, "subject to subscribe to (wildcards allowed)")
	watchCmd.Flags().Int64("project", 0, "only show graph events for this project id")
}
