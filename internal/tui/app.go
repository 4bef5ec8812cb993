package tui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/matheus3301/wschat/internal/bus"
	"github.com/matheus3301/wschat/internal/status"
	"github.com/matheus3301/wschat/internal/store"
	intsync "github.com/matheus3301/wschat/internal/sync"
	"github.com/matheus3301/wschat/internal/tui/keys"
	"github.com/matheus3301/wschat/internal/tui/model"
	"github.com/matheus3301/wschat/internal/tui/ui"
	"github.com/matheus3301/wschat/internal/tui/views"
	"github.com/rivo/tview"
	"go.uber.org/zap"
)

const (
	pageMain    = "main"
	pageDetails = "details"
	pageHelp    = "help"

	// Logical views for key bindings on the main page.
	viewContacts = "contacts"
	viewThread   = "thread"

	menuRows = 5
)

// errOffline is flashed when connect is requested without an engine.
var errOffline = errors.New("offline mode: no server configured")

// Options wires the app to the chat core. Engine may be nil for offline use.
type Options struct {
	Store       *store.Store
	Engine      *intsync.Engine
	Bus         *bus.Bus
	Logger      *zap.Logger
	AutoConnect bool
}

// App is the main TUI application shell.
type App struct {
	app      *tview.Application
	theme    *ui.Theme
	pages    *ui.Pages
	root     *tview.Flex
	registry *keys.Registry
	flash    *ui.FlashModel

	store  *store.Store
	engine *intsync.Engine
	bus    *bus.Bus
	logger *zap.Logger

	logo      *ui.Logo
	info      *ui.ConnInfo
	menu      *ui.Menu
	tabs      *ui.Tabs
	prompt    *ui.Prompt
	contacts  *views.ContactList
	thread    *views.MessageThread
	details   *views.ContactInfo
	help      *views.HelpView
	statusBar *views.StatusBar

	filter      string
	savedFilter string // restored when the filter prompt is cancelled
	autoConnect bool
	ctx         context.Context
	cancel      context.CancelFunc
}

// NewApp creates the TUI application.
func NewApp(opts Options) *App {
	ctx, cancel := context.WithCancel(context.Background())
	theme := ui.DefaultTheme()
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	a := &App{
		app:         tview.NewApplication(),
		theme:       theme,
		pages:       ui.NewPages(),
		registry:    keys.NewRegistry(),
		flash:       ui.NewFlashModel(),
		store:       opts.Store,
		engine:      opts.Engine,
		bus:         opts.Bus,
		logger:      logger,
		logo:        ui.NewLogo(theme),
		info:        ui.NewConnInfo(theme),
		menu:        ui.NewMenu(theme),
		tabs:        ui.NewTabs(theme),
		prompt:      ui.NewPrompt(theme),
		contacts:    views.NewContactList(theme),
		thread:      views.NewMessageThread(theme),
		details:     views.NewContactInfo(theme),
		help:        views.NewHelpView(theme),
		statusBar:   views.NewStatusBar(theme),
		autoConnect: opts.AutoConnect,
		ctx:         ctx,
		cancel:      cancel,
	}

	a.setupBindings()
	a.setupCallbacks()
	a.setupLayout()
	return a
}

func (a *App) setupBindings() {
	a.registry.AddGlobal(&keys.Action{
		Name: "connect", Key: tcell.KeyRune, Rune: 'c',
		Description: "Connect", Visible: true,
		Handler: a.Connect,
	})
	a.registry.AddGlobal(&keys.Action{
		Name: "disconnect", Key: tcell.KeyRune, Rune: 'x',
		Description: "Disconnect", Visible: true,
		Handler: a.Disconnect,
	})
	a.registry.AddGlobal(&keys.Action{
		Name: "command", Key: tcell.KeyRune, Rune: ':',
		Description: "Command", Visible: true,
		Handler: func() { a.showPrompt(ui.PromptCommand) },
	})
	a.registry.AddGlobal(&keys.Action{
		Name: "help", Key: tcell.KeyRune, Rune: '?',
		Description: "Help", Visible: true,
		Handler: a.ShowHelp,
	})
	a.registry.AddGlobal(&keys.Action{
		Name: "quit", Key: tcell.KeyRune, Rune: 'q',
		Description: "Quit", Visible: true,
		Handler: a.Quit,
	})

	a.registry.AddView(viewContacts, &keys.Action{
		Name: "recent", Key: tcell.KeyRune, Rune: 'r',
		Description: "Recent", Visible: true,
		Handler: func() { a.SetTab(store.TabRecent) },
	})
	a.registry.AddView(viewContacts, &keys.Action{
		Name: "new", Key: tcell.KeyRune, Rune: 'n',
		Description: "New", Visible: true,
		Handler: func() { a.SetTab(store.TabNew) },
	})
	a.registry.AddView(viewContacts, &keys.Action{
		Name: "filter", Key: tcell.KeyRune, Rune: '/',
		Description: "Filter", Visible: true,
		Handler: func() { a.showPrompt(ui.PromptFilter) },
	})

	a.registry.AddView(viewThread, &keys.Action{
		Name: "compose", Key: tcell.KeyRune, Rune: 'i',
		Description: "Compose", Visible: true,
		Handler: func() { a.app.SetFocus(a.thread.Composer()) },
	})
	a.registry.AddView(viewThread, &keys.Action{
		Name: "details", Key: tcell.KeyRune, Rune: 'd',
		Description: "Details", Visible: true,
		Handler: a.showDetails,
	})
	a.registry.AddView(viewThread, &keys.Action{
		Name: "back", Key: tcell.KeyEscape, Label: "Esc",
		Description: "Back", Visible: true,
		Handler: a.back,
	})
	for _, page := range []string{pageHelp, pageDetails} {
		a.registry.AddView(page, &keys.Action{
			Name: "back", Key: tcell.KeyEscape, Label: "Esc",
			Description: "Back", Visible: true,
			Handler: a.back,
		})
	}
}

func (a *App) setupCallbacks() {
	a.contacts.SetOnOpen(a.OpenChat)
	a.contacts.SetSelectionChangedFunc(func(int, int) { a.updateMenu() })

	a.thread.SetOnSend(func(text string) {
		a.store.SendMessage(text)
	})
	a.thread.SetOnLeave(func() {
		a.app.SetFocus(a.thread.Messages())
		a.updateMenu()
	})

	a.prompt.SetOnSubmit(func(mode ui.PromptMode, text string) {
		a.hidePrompt()
		switch mode {
		case ui.PromptFilter:
			a.filter = text
			a.refresh()
		case ui.PromptCommand:
			if err := ParseCommand(text).Run(a); err != nil {
				a.flash.Err(err)
				a.refresh()
			}
		}
	})
	a.prompt.SetOnChange(func(_ ui.PromptMode, text string) {
		a.filter = text
		a.refresh()
	})
	a.prompt.SetOnCancel(func() {
		if a.prompt.Mode() == ui.PromptFilter {
			a.filter = a.savedFilter
			a.refresh()
		}
		a.hidePrompt()
	})

	a.pages.SetOnChange(func(string) { a.updateMenu() })
}

func (a *App) setupLayout() {
	left := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(a.tabs, 1, 0, false).
		AddItem(a.contacts, 0, 1, true)

	main := tview.NewFlex().
		AddItem(left, 0, 2, true).
		AddItem(a.thread, 0, 3, false)

	a.pages.AddPage(pageMain, main, true, false)
	a.pages.AddPage(pageDetails, a.details, true, false)
	a.pages.AddPage(pageHelp, a.help, true, false)
	a.pages.Push(pageMain)

	header := tview.NewFlex().
		AddItem(a.logo, 24, 0, false).
		AddItem(a.info, 0, 1, false).
		AddItem(a.menu, 0, 2, false)

	a.root = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(header, menuRows+1, 0, false).
		AddItem(a.prompt, 0, 0, false).
		AddItem(a.pages, 0, 1, true).
		AddItem(a.statusBar, 1, 0, false)

	a.app.SetRoot(a.root, true)
	a.app.SetFocus(a.contacts)
	a.app.SetInputCapture(a.capture)
}

func (a *App) capture(ev *tcell.EventKey) *tcell.EventKey {
	// Text inputs handle their own keys, Esc included.
	if _, ok := a.app.GetFocus().(*tview.InputField); ok {
		return ev
	}
	if a.registry.HandleEvent(a.view(), ev) {
		return nil
	}
	if ev.Key() == tcell.KeyEscape {
		a.back()
		return nil
	}
	return ev
}

// view names the key binding scope for the current focus.
func (a *App) view() string {
	if page := a.pages.Current(); page != pageMain {
		return page
	}
	if a.app.GetFocus() == a.thread.Messages() {
		return viewThread
	}
	return viewContacts
}

func (a *App) back() {
	switch {
	case a.pages.Current() != pageMain:
		a.pages.Pop()
		a.app.SetFocus(a.contacts)
	case a.view() == viewThread:
		a.app.SetFocus(a.contacts)
	case a.filter != "":
		a.filter = ""
		a.refresh()
	}
	a.updateMenu()
}

func (a *App) showPrompt(mode ui.PromptMode) {
	a.savedFilter = a.filter
	a.prompt.Activate(mode)
	if mode == ui.PromptFilter {
		a.prompt.SetText(a.savedFilter)
	}
	a.root.ResizeItem(a.prompt, 3, 0)
	a.app.SetFocus(a.prompt.InputField)
}

func (a *App) hidePrompt() {
	a.root.ResizeItem(a.prompt, 0, 0)
	if a.pages.Current() == pageMain {
		a.app.SetFocus(a.contacts)
	}
	a.updateMenu()
}

func (a *App) showDetails() {
	if a.store.Selected() == "" {
		return
	}
	a.renderDetails(time.Now())
	a.pages.Push(pageDetails)
	a.app.SetFocus(a.details)
}

func (a *App) renderDetails(now time.Time) {
	name := a.store.Selected()
	c, ok := a.store.Contact(name)
	if !ok {
		c = store.Contact{Name: name}
	}
	a.details.Update(c, a.store.IsNew(name), len(a.store.Messages(name)), now)
}

// OpenChat selects name, known or not, and focuses its thread.
func (a *App) OpenChat(name string) {
	a.store.SelectContact(name)
	for a.pages.Current() != pageMain {
		a.pages.Pop()
	}
	a.refresh()
	a.app.SetFocus(a.thread.Messages())
	a.updateMenu()
}

// SetTab switches the contact list tab.
func (a *App) SetTab(tab store.Tab) {
	a.store.SetActiveTab(tab)
	a.refresh()
}

// ShowHelp pushes the help page.
func (a *App) ShowHelp() {
	a.pages.Push(pageHelp)
	a.app.SetFocus(a.help)
}

// Connect dials the server in the background. Failures are flashed; the
// chat keeps working offline.
func (a *App) Connect() {
	if a.engine == nil {
		a.flash.Warn(errOffline.Error())
		a.refresh()
		return
	}
	go func() {
		if err := a.engine.Connect(a.ctx); err != nil {
			a.flash.Err(err)
			a.app.QueueUpdateDraw(a.refresh)
		}
	}()
}

// Disconnect closes the server connection.
func (a *App) Disconnect() {
	if a.engine == nil {
		return
	}
	a.engine.Disconnect()
}

// Quit stops the application.
func (a *App) Quit() {
	a.Stop()
}

func (a *App) source() model.Source {
	if a.engine == nil {
		return nil
	}
	return a.engine
}

// refresh redraws every widget from a fresh snapshot. Must run on the draw
// goroutine.
func (a *App) refresh() {
	now := time.Now()
	snap := model.Build(a.store, a.source(), a.filter)

	a.tabs.Update([]ui.Tab{
		{Key: string(store.TabRecent), Label: "Recent", Count: snap.RecentCount},
		{Key: string(store.TabNew), Label: "New", Count: snap.NewCount},
	}, string(snap.Tab))
	a.contacts.Update(snap.Rows, snap.Filter, now)
	a.thread.Update(snap.Selected, snap.Messages, now)
	a.info.Update(ui.ConnData{
		Endpoint:  snap.Endpoint,
		Status:    string(snap.State),
		Connected: snap.Connected,
		Contacts:  snap.RecentCount,
		New:       snap.NewCount,
		Unread:    snap.Unread,
	})
	a.logo.Update(snap.Connected, snap.Unread)
	a.statusBar.Update(snap.State, snap.Unread, a.flash.Current(), now)
	if a.pages.Current() == pageDetails {
		a.renderDetails(now)
	}
	a.updateMenu()
}

func (a *App) updateMenu() {
	a.menu.Update(a.registry.Hints(a.view()), menuRows)
}

// notify turns bus events into flash messages.
func (a *App) notify(evt bus.Event) {
	switch evt.Kind {
	case bus.KindStatusChanged:
		change, ok := evt.Payload.(status.StatusChange)
		if !ok {
			return
		}
		switch {
		case change.To == status.Connected:
			a.flash.Info("Connected to " + a.engine.Endpoint())
		case change.To == status.Disconnected && change.From == status.Connected:
			a.flash.Warn("Connection closed")
		}
	case bus.KindContactCreated:
		if name, ok := evt.Payload.(string); ok {
			a.flash.Info(fmt.Sprintf("New contact: %s", name))
		}
	case bus.KindEventDropped:
		a.flash.Warn("Dropped a malformed event")
	}
}

func (a *App) watch(events <-chan bus.Event) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case evt := <-events:
			a.logger.Debug("bus event", zap.String("kind", evt.Kind))
			a.notify(evt)
			a.app.QueueUpdateDraw(a.refresh)
		case <-ticker.C:
			// Clock and flash expiry.
			a.app.QueueUpdateDraw(a.refresh)
		case <-a.ctx.Done():
			return
		}
	}
}

// Run starts the TUI and blocks until it exits.
func (a *App) Run() error {
	events, unsubscribe := a.bus.Subscribe("", 256)
	defer unsubscribe()
	go a.watch(events)

	a.refresh()
	if a.autoConnect {
		a.Connect()
	}
	err := a.app.Run()
	a.cancel()
	return err
}

// Stop gracefully shuts down the TUI.
func (a *App) Stop() {
	a.cancel()
	a.app.Stop()
}
