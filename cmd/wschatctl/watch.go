package main

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/matheus3301/wschat/internal/bus"
	"github.com/matheus3301/wschat/internal/status"
	"github.com/matheus3301/wschat/internal/store"
	"github.com/spf13/cobra"
)

var flagCount int

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Connect and print every received message",
	RunE:  runWatch,
}

func init() {
	watchCmd.Flags().IntVarP(&flagCount, "count", "n", 0, "exit after this many messages (0 = until interrupted)")
}

// watchLine is the --json shape of one received message.
type watchLine struct {
	Time    time.Time `json:"time"`
	From    string    `json:"from"`
	Message string    `json:"message"`
	Unread  int       `json:"unread"`
	New     bool      `json:"new"`
}

func runWatch(cmd *cobra.Command, _ []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}
	ctx, cancel := signalContext(cmd.Context())
	defer cancel()

	events, unsubscribe := s.bus.Subscribe("", 256)
	defer unsubscribe()

	if err := s.engine.Connect(ctx); err != nil {
		return err
	}
	defer s.engine.Disconnect()

	out := cmd.OutOrStdout()
	seen := 0
	for {
		select {
		case <-ctx.Done():
			return nil
		case evt := <-events:
			switch evt.Kind {
			case bus.KindMessageReceived:
				me, ok := evt.Payload.(store.MessageEvent)
				if !ok {
					continue
				}
				if err := printMessage(out, s.store, me); err != nil {
					return err
				}
				seen++
				if flagCount > 0 && seen >= flagCount {
					return nil
				}
			case bus.KindStatusChanged:
				change, _ := evt.Payload.(status.StatusChange)
				if !flagJSON {
					fmt.Fprintf(cmd.ErrOrStderr(), "# %s -> %s\n", change.From, change.To)
				}
				if change.To == status.Disconnected {
					return fmt.Errorf("connection to %s closed", s.engine.Endpoint())
				}
			case bus.KindEventDropped:
				fmt.Fprintln(cmd.ErrOrStderr(), "# dropped malformed event")
			}
		}
	}
}

func printMessage(w io.Writer, st *store.Store, me store.MessageEvent) error {
	c, _ := st.Contact(me.Contact)
	if flagJSON {
		return json.NewEncoder(w).Encode(watchLine{
			Time:    me.Message.Timestamp,
			From:    me.Message.From,
			Message: me.Message.Text,
			Unread:  c.UnreadCount,
			New:     st.IsNew(me.Contact),
		})
	}
	_, err := fmt.Fprintf(w, "%s  %-12s %s\n", me.Message.Timestamp.Format("15:04:05"), me.Message.From, me.Message.Text)
	return err
}
