package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/matheus3301/wschat/internal/store"
)

func TestPrintContacts(t *testing.T) {
	st := store.NewStore(nil)
	st.Seed(store.DemoSeed(time.Now()))
	st.ReceiveMessage("Ольга", "Добрый вечер!")

	var buf bytes.Buffer
	if err := printContacts(&buf, st); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"NAME", "Ольга", "Алёна", "total unread: 4"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "Ольга") > strings.Index(out, "Алёна") {
		t.Error("contacts not sorted by last message time")
	}
}

func TestPrintContactsJSONNewTab(t *testing.T) {
	flagJSON = true
	defer func() { flagJSON = false }()

	st := store.NewStore(nil)
	st.Seed(store.DemoSeed(time.Now()))
	st.ReceiveMessage("Ольга", "hi")
	st.SetActiveTab(store.TabNew)

	var buf bytes.Buffer
	if err := printContacts(&buf, st); err != nil {
		t.Fatal(err)
	}
	var lines []contactLine
	if err := json.Unmarshal(buf.Bytes(), &lines); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	if len(lines) != 1 || lines[0].Name != "Ольга" || !lines[0].New || lines[0].Unread != 1 {
		t.Errorf("lines = %+v", lines)
	}
}
