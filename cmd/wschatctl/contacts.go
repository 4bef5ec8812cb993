package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/matheus3301/wschat/internal/store"
	"github.com/spf13/cobra"
)

var (
	flagFor    time.Duration
	flagNewTab bool
	flagSeed   bool
)

var contactsCmd = &cobra.Command{
	Use:   "contacts",
	Short: "Listen for a while, then print the resulting contact list",
	RunE:  runContacts,
}

func init() {
	flags := contactsCmd.Flags()
	flags.DurationVar(&flagFor, "for", 10*time.Second, "how long to listen before printing")
	flags.BoolVar(&flagNewTab, "new", false, "only list new contacts")
	flags.BoolVar(&flagSeed, "seed", false, "start from the demo contacts")
}

type contactLine struct {
	Name        string    `json:"name"`
	LastMessage string    `json:"last_message"`
	Unread      int       `json:"unread"`
	LastTime    time.Time `json:"last_message_time"`
	New         bool      `json:"new"`
}

func runContacts(cmd *cobra.Command, _ []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}
	if flagSeed {
		s.store.Seed(store.DemoSeed(time.Now()))
	}

	ctx, cancel := signalContext(cmd.Context())
	defer cancel()

	if err := s.engine.Connect(ctx); err != nil {
		// Print what we have; a dead server is not fatal.
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", err)
	} else {
		select {
		case <-ctx.Done():
		case <-time.After(flagFor):
		}
		s.engine.Disconnect()
	}

	if flagNewTab {
		s.store.SetActiveTab(store.TabNew)
	}
	return printContacts(cmd.OutOrStdout(), s.store)
}

func printContacts(w io.Writer, st *store.Store) error {
	contacts := st.VisibleContacts()
	lines := make([]contactLine, 0, len(contacts))
	for _, c := range contacts {
		lines = append(lines, contactLine{
			Name:        c.Name,
			LastMessage: c.LastMessage,
			Unread:      c.UnreadCount,
			LastTime:    c.LastMessageTime,
			New:         st.IsNew(c.Name),
		})
	}
	if flagJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(lines)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tUNREAD\tNEW\tLAST\tMESSAGE")
	for _, l := range lines {
		newMark := ""
		if l.New {
			newMark = "*"
		}
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\n", l.Name, l.Unread, newMark, l.LastTime.Format("15:04:05"), l.LastMessage)
	}
	fmt.Fprintf(tw, "\ntotal unread: %d\n", st.TotalUnreadCount())
	return tw.Flush()
}
