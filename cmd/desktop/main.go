package main

import (
	"errors"
	"fmt"
	"image/color"
	"time"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"github.com/MihkelHunter/kif/internal/app"
	"github.com/MihkelHunter/kif/internal/command"
	"github.com/MihkelHunter/kif/internal/logging"
	"github.com/MihkelHunter/kif/internal/todo"
)

// ── Colour palette ───────────────────────────────────────────────────────────

var (
	colBackground = color.NRGBA{R: 15, G: 15, B: 20, A: 255}
	colSurface    = color.NRGBA{R: 26, G: 26, B: 36, A: 255}
	colAccent     = color.NRGBA{R: 99, G: 102, B: 241, A: 255}
	colUser       = color.NRGBA{R: 55, G: 58, B: 140, A: 255}
	colFailure    = color.NRGBA{R: 90, G: 30, B: 34, A: 255}
)

const quitDelay = 800 * time.Millisecond

// ── Chat window ──────────────────────────────────────────────────────────────

type chatWindow struct {
	engine     *command.Engine
	app        fyne.App
	win        fyne.Window
	transcript *fyne.Container
	scroll     *container.Scroll
	input      *widget.Entry
	countLabel *widget.Label
}

func main() {
	logging.Init(false)

	s, err := app.Open(viper.New(), "")
	if err != nil {
		log.Fatal().Err(err).Msg("open tasks")
	}
	defer s.Close()

	a := fyneapp.New()
	a.Settings().SetTheme(&darkTheme{})

	win := a.NewWindow("kif")
	win.Resize(fyne.NewSize(560, 680))
	win.CenterOnScreen()

	c := &chatWindow{engine: s.Engine, app: a, win: win}
	win.SetContent(c.buildUI())
	c.addBubble(command.Greeting(), false, false)
	c.refreshCount()
	win.Canvas().Focus(c.input)

	win.ShowAndRun()
}

func (c *chatWindow) buildUI() fyne.CanvasObject {
	title := canvas.NewText("  kif", color.White)
	title.TextSize = 20
	title.TextStyle = fyne.TextStyle{Bold: true}

	c.countLabel = widget.NewLabel("")
	header := container.NewBorder(nil, nil, title, c.countLabel)
	headerStack := container.NewStack(canvas.NewRectangle(colSurface), container.NewPadded(header))

	c.transcript = container.NewVBox()
	c.scroll = container.NewVScroll(c.transcript)

	c.input = widget.NewEntry()
	c.input.SetPlaceHolder("todo Buy milk")
	c.input.OnSubmitted = func(string) { c.submit() }

	sendBtn := widget.NewButtonWithIcon("", theme.MailSendIcon(), c.submit)
	sendBtn.Importance = widget.HighImportance

	footer := container.NewBorder(nil, nil, nil, sendBtn, c.input)
	footerStack := container.NewStack(canvas.NewRectangle(colSurface), container.NewPadded(footer))

	return container.NewStack(
		canvas.NewRectangle(colBackground),
		container.NewBorder(headerStack, footerStack, nil, nil, c.scroll),
	)
}

func (c *chatWindow) submit() {
	line := c.input.Text
	c.input.SetText("")
	if line == "" {
		return
	}
	c.addBubble(line, true, false)

	reply := c.engine.Handle(line)
	c.addBubble(reply.Text, false, reply.Failed())
	c.refreshCount()

	var pe *todo.PersistError
	if errors.As(reply.Err, &pe) {
		dialog.ShowError(pe, c.win)
	}
	if reply.Exit {
		c.input.Disable()
		time.AfterFunc(quitDelay, func() { fyne.Do(c.app.Quit) })
	}
}

// addBubble appends one message. User lines sit on the right half.
func (c *chatWindow) addBubble(text string, fromUser, failed bool) {
	label := widget.NewLabel(text)
	label.Wrapping = fyne.TextWrapWord

	fill := colSurface
	switch {
	case fromUser:
		fill = colUser
	case failed:
		fill = colFailure
	}
	bg := canvas.NewRectangle(fill)
	bg.CornerRadius = 8
	bubble := container.NewStack(bg, container.NewPadded(label))

	var row fyne.CanvasObject = bubble
	if fromUser {
		row = container.NewGridWithColumns(2, layout.NewSpacer(), bubble)
	}
	c.transcript.Add(container.NewPadded(row))
	c.scroll.ScrollToBottom()
}

func (c *chatWindow) refreshCount() {
	c.countLabel.SetText(fmt.Sprintf("%d tasks", c.engine.Service().Count()))
}

// ── Custom dark theme ─────────────────────────────────────────────────────────

type darkTheme struct{}

func (darkTheme) Color(n fyne.ThemeColorName, v fyne.ThemeVariant) color.Color {
	switch n {
	case theme.ColorNameBackground:
		return colBackground
	case theme.ColorNameButton, theme.ColorNamePrimary:
		return colAccent
	case theme.ColorNameForeground:
		return color.White
	case theme.ColorNameInputBackground:
		return color.NRGBA{R: 35, G: 35, B: 50, A: 255}
	case theme.ColorNameDisabled:
		return color.NRGBA{R: 80, G: 80, B: 100, A: 255}
	}
	return theme.DefaultTheme().Color(n, v)
}

func (darkTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

func (darkTheme) Icon(n fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(n)
}

func (darkTheme) Size(n fyne.ThemeSizeName) float32 {
	switch n {
	case theme.SizeNamePadding:
		return 6
	case theme.SizeNameText:
		return 14
	}
	return theme.DefaultTheme().Size(n)
}
