package main

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/LuggaPugga/autoclicker/internal/core/autoclicker"
	"github.com/LuggaPugga/autoclicker/internal/core/hotkey"
)

const (
	uiRefreshInterval = 150 * time.Millisecond
	uiRecordTimeout   = 15 * time.Second
	recordPrompt      = "Press a key. ESC to cancel. Hotkeys work globally."
	maxUILogLines     = 50
)

type clickerTheme struct {
	base   fyne.Theme
	forced *fyne.ThemeVariant
}

func newClickerTheme(pref autoclicker.Theme) fyne.Theme {
	t := &clickerTheme{base: theme.DefaultTheme()}
	switch pref {
	case autoclicker.ThemeDark:
		v := theme.VariantDark
		t.forced = &v
	case autoclicker.ThemeLight:
		v := theme.VariantLight
		t.forced = &v
	}
	return t
}

func (t *clickerTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	if t.forced != nil {
		variant = *t.forced
	}
	switch name {
	case theme.ColorNamePrimary, theme.ColorNameHyperlink:
		return color.NRGBA{R: 0xff, G: 0x66, B: 0x66, A: 0xff}
	case theme.ColorNameFocus:
		return color.NRGBA{R: 0xff, G: 0x7a, B: 0x7a, A: 0x66}
	case theme.ColorNameHover:
		return color.NRGBA{R: 0xff, G: 0x7a, B: 0x7a, A: 0x22}
	case theme.ColorNamePressed:
		return color.NRGBA{R: 0xff, G: 0x7a, B: 0x7a, A: 0x40}
	case theme.ColorNameSelection:
		return color.NRGBA{R: 0xff, G: 0x66, B: 0x66, A: 0x44}
	case theme.ColorNameSuccess:
		return color.NRGBA{R: 0x7f, G: 0xd4, B: 0xa8, A: 0xff}
	}
	return t.base.Color(name, variant)
}

func (t *clickerTheme) Font(style fyne.TextStyle) fyne.Resource {
	return t.base.Font(style)
}

func (t *clickerTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return t.base.Icon(name)
}

func (t *clickerTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNamePadding, theme.SizeNameInnerPadding, theme.SizeNameInputRadius:
		return 8
	}
	return t.base.Size(name)
}

func hotkeyButtonText(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "Not set"
	}
	spec, ok := hotkey.Parse(raw)
	if !ok {
		return raw + " (invalid)"
	}
	return hotkey.Format(spec)
}

func activityText(active bool) string {
	if active {
		return "● active"
	}
	return "○ idle"
}

func runButtonText(running bool) string {
	if running {
		return "Stop"
	}
	return "Start"
}

func unitFromLabel(label string) autoclicker.SpeedUnit {
	if label == "ms" {
		return autoclicker.UnitMS
	}
	return autoclicker.UnitCPS
}

func unitLabel(unit autoclicker.SpeedUnit) string {
	if unit == autoclicker.UnitMS {
		return "ms"
	}
	return "CPS"
}

func describeStartError(err error) string {
	switch {
	case isPermissionError(err):
		return permissionDeniedHint()
	case errors.Is(err, syscall.EBUSY) || strings.Contains(strings.ToLower(err.Error()), "device or resource busy"):
		return "Input device is in use by another app. Close the other app and try again."
	default:
		return err.Error()
	}
}

func runUI(opts options) error {
	fApp := app.NewWithID("io.github.luggapugga.autoclicker")
	fApp.Settings().SetTheme(newClickerTheme(autoclicker.ThemeSystem))

	window := fApp.NewWindow("Autoclicker")
	window.Resize(fyne.NewSize(760, 520))
	window.CenterOnScreen()

	logGrid := widget.NewTextGrid()
	logScroll := container.NewVScroll(logGrid)
	logScroll.SetMinSize(fyne.NewSize(0, 150))

	var logMu sync.Mutex
	logLines := make([]string, 0, maxUILogLines)
	debugLogs := debugLogsEnabled()
	appendLogLine := func(line string) {
		line = strings.TrimSpace(line)
		if line == "" {
			return
		}

		logMu.Lock()
		logLines = append(logLines, line)
		if len(logLines) > maxUILogLines {
			logLines = logLines[len(logLines)-maxUILogLines:]
		}
		logText := strings.Join(logLines, "\n")
		logMu.Unlock()

		fyne.Do(func() {
			logGrid.SetText(logText)
			logScroll.ScrollToBottom()
		})
	}

	var logOut io.Writer
	var logSink func(string)
	if debugLogs {
		logOut = os.Stderr
		logSink = appendLogLine
	}
	logger := newSlogLogger(opts.logLevel, logOut, logSink)

	statusText := canvas.NewText("", theme.Color(theme.ColorNameError))
	setStatus := func(text string) {
		statusText.Text = text
		statusText.Refresh()
	}

	runBtn := widget.NewButton(runButtonText(opts.start), nil)
	runBtn.Importance = widget.HighImportance
	clicksLabel := widget.NewLabel("Clicks: 0")
	clicksLabel.TextStyle = fyne.TextStyle{Bold: true}
	initProgress := widget.NewProgressBarInfinite()

	leftBtn := widget.NewButton("Not set", nil)
	rightBtn := widget.NewButton("Not set", nil)
	leftClear := widget.NewButtonWithIcon("", theme.ContentClearIcon(), nil)
	rightClear := widget.NewButtonWithIcon("", theme.ContentClearIcon(), nil)
	leftIndicator := widget.NewLabel(activityText(false))
	rightIndicator := widget.NewLabel(activityText(false))
	holdCheck := widget.NewCheck("Hold mode (click only while held)", nil)
	themeSelect := widget.NewSelect([]string{
		string(autoclicker.ThemeSystem),
		string(autoclicker.ThemeLight),
		string(autoclicker.ThemeDark),
	}, nil)

	unitRadio := widget.NewRadioGroup([]string{"CPS", "ms"}, nil)
	unitRadio.Horizontal = true
	unitRadio.Required = true
	speedSlider := widget.NewSlider(1, 100)
	speedSlider.Step = 1
	speedValue := widget.NewLabel("")
	speedValue.Alignment = fyne.TextAlignTrailing
	speedValue.TextStyle = fyne.TextStyle{Bold: true}
	randomCheck := widget.NewCheck("Randomize interval (±10%)", nil)

	advTitle := widget.NewLabel("")
	advTitle.TextStyle = fyne.TextStyle{Bold: true}
	advSummary := widget.NewLabel("")
	advSummary.Wrapping = fyne.TextWrapWord
	advDetails := widget.NewLabel("")
	advDetails.Wrapping = fyne.TextWrapWord
	advDetails.Hide()
	advDetailsBtn := widget.NewButton("Show details", nil)
	advDismissBtn := widget.NewButton("Dismiss", nil)
	advisoryCard := widget.NewCard("", "", container.NewVBox(
		advTitle,
		advSummary,
		advDetails,
		container.NewHBox(advDetailsBtn, advDismissBtn),
	))
	advisoryCard.Hide()

	advDetailsBtn.OnTapped = func() {
		if advDetails.Visible() {
			advDetails.Hide()
			advDetailsBtn.SetText("Show details")
			return
		}
		advDetails.Show()
		advDetailsBtn.SetText("Hide details")
	}
	advDismissBtn.OnTapped = func() {
		advisoryCard.Hide()
	}

	controls := []fyne.Disableable{
		runBtn, leftBtn, rightBtn, leftClear, rightClear,
		holdCheck, themeSelect, unitRadio, speedSlider, randomCheck,
	}
	for _, c := range controls {
		c.Disable()
	}

	var stateMu sync.Mutex
	var current *session
	getSession := func() *session {
		stateMu.Lock()
		defer stateMu.Unlock()
		return current
	}

	// The fields below are only touched on the fyne goroutine.
	unit := autoclicker.UnitCPS
	syncing := false
	recording := false
	var lastApplied autoclicker.SettingsSnapshot

	applySnapshot := func(snap autoclicker.SettingsSnapshot) {
		syncing = true
		defer func() { syncing = false }()

		lastApplied = snap
		if !recording {
			leftBtn.SetText(hotkeyButtonText(snap.HotkeyLeft))
			rightBtn.SetText(hotkeyButtonText(snap.HotkeyRight))
		}
		holdCheck.SetChecked(snap.HoldMode)
		randomCheck.SetChecked(snap.Randomize)
		themeSelect.SetSelected(string(snap.Theme))
		fApp.Settings().SetTheme(newClickerTheme(snap.Theme))

		lo, hi := unit.Range()
		speedSlider.Min = lo
		speedSlider.Max = hi
		speedSlider.SetValue(unit.FromMS(snap.ClickSpeedMS))
		speedValue.SetText(unit.Format(snap.ClickSpeedMS))
	}

	runBtn.OnTapped = func() {
		s := getSession()
		if s == nil {
			return
		}
		runBtn.SetText(runButtonText(s.service.ToggleRunning()))
	}

	speedSlider.OnChanged = func(v float64) {
		if syncing {
			return
		}
		speedValue.SetText(unit.Format(unit.ToMS(v)))
	}
	speedSlider.OnChangeEnded = func(v float64) {
		s := getSession()
		if syncing || s == nil {
			return
		}
		if err := s.service.SetClickSpeed(unit.ToMS(v)); err != nil {
			setStatus(err.Error())
		}
	}

	unitRadio.OnChanged = func(label string) {
		unit = unitFromLabel(label)
		if s := getSession(); s != nil {
			applySnapshot(s.service.Settings())
		}
	}

	holdCheck.OnChanged = func(v bool) {
		if s := getSession(); !syncing && s != nil {
			s.service.SetHoldMode(v)
		}
	}
	randomCheck.OnChanged = func(v bool) {
		if s := getSession(); !syncing && s != nil {
			s.service.SetRandomize(v)
		}
	}
	themeSelect.OnChanged = func(v string) {
		if s := getSession(); !syncing && s != nil {
			s.service.SetTheme(autoclicker.Theme(v))
			fApp.Settings().SetTheme(newClickerTheme(autoclicker.ParseTheme(v)))
		}
	}

	startRecording := func(side autoclicker.Side, btn *widget.Button) {
		s := getSession()
		if s == nil || recording {
			return
		}
		if !s.service.HotkeysAvailable() {
			setStatus(autoclicker.ErrHotkeysUnavailable.Error())
			return
		}
		recording = true
		btn.SetText("Press a key...")
		setStatus(recordPrompt)

		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), uiRecordTimeout)
			defer cancel()
			value, err := s.service.RecordHotkey(ctx)
			fyne.Do(func() {
				recording = false
				switch {
				case err == nil:
					s.service.SetHotkey(side, value)
					setStatus("")
				case errors.Is(err, autoclicker.ErrRecordCancelled):
					setStatus("")
				case errors.Is(err, context.DeadlineExceeded):
					setStatus("No key was pressed.")
				default:
					setStatus(err.Error())
				}
				applySnapshot(s.service.Settings())
			})
		}()
	}
	leftBtn.OnTapped = func() { startRecording(autoclicker.SideLeft, leftBtn) }
	rightBtn.OnTapped = func() { startRecording(autoclicker.SideRight, rightBtn) }
	leftClear.OnTapped = func() {
		if s := getSession(); s != nil && !recording {
			s.service.SetHotkey(autoclicker.SideLeft, "")
			applySnapshot(s.service.Settings())
		}
	}
	rightClear.OnTapped = func() {
		if s := getSession(); s != nil && !recording {
			s.service.SetHotkey(autoclicker.SideRight, "")
			applySnapshot(s.service.Settings())
		}
	}

	refreshLoop := func(s *session, stop <-chan struct{}) {
		events, unsubscribe := s.service.Subscribe(8)
		defer unsubscribe()
		ticker := time.NewTicker(uiRefreshInterval)
		defer ticker.Stop()

		refresh := func() {
			running := s.service.IsRunning()
			left := s.service.IsActive(autoclicker.SideLeft)
			right := s.service.IsActive(autoclicker.SideRight)
			clicks := s.service.ClickCount()
			snap := s.service.Settings()
			fyne.Do(func() {
				runBtn.SetText(runButtonText(running))
				leftIndicator.SetText(activityText(left))
				rightIndicator.SetText(activityText(right))
				clicksLabel.SetText(fmt.Sprintf("Clicks: %d", clicks))
				if snap != lastApplied && !recording {
					applySnapshot(snap)
				}
			})
		}

		for {
			select {
			case <-stop:
				return
			case _, ok := <-events:
				if !ok {
					return
				}
				refresh()
			case <-ticker.C:
				refresh()
			}
		}
	}

	refreshStop := make(chan struct{})
	var closeOnce sync.Once
	cleanup := func() {
		closeOnce.Do(func() {
			close(refreshStop)
			stateMu.Lock()
			s := current
			current = nil
			stateMu.Unlock()
			if s != nil {
				s.Close()
			}
		})
	}

	go func() {
		s, err := openSession(opts, logger)
		fyne.Do(func() {
			initProgress.Hide()
			if err != nil {
				setStatus(describeStartError(err))
				appendLogLine("ERROR " + err.Error())
				return
			}

			stateMu.Lock()
			current = s
			stateMu.Unlock()

			for _, c := range controls {
				c.Enable()
			}
			unitRadio.SetSelected(unitLabel(unit))
			applySnapshot(s.service.Settings())
			runBtn.SetText(runButtonText(s.service.IsRunning()))

			if !s.advisory.Empty() {
				advTitle.SetText(s.advisory.Title)
				advSummary.SetText(s.advisory.Summary)
				advDetails.SetText(s.advisory.DetailText())
				advisoryCard.Show()
			}
			go refreshLoop(s, refreshStop)
		})
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	requestQuit := func() {
		fyne.Do(func() {
			cleanup()
			fApp.Quit()
		})
	}

	go func() {
		<-sigCh
		requestQuit()
	}()

	// Some GUI backends can leave Ctrl+C as raw ETX byte instead of SIGINT.
	go func() {
		buf := make([]byte, 1)
		for {
			n, err := os.Stdin.Read(buf)
			if err != nil {
				return
			}
			if n == 1 && buf[0] == 3 {
				requestQuit()
				return
			}
		}
	}()

	window.SetCloseIntercept(func() {
		cleanup()
		fApp.Quit()
	})

	titleText := canvas.NewText("AUTOCLICKER", color.NRGBA{R: 0xff, G: 0x75, B: 0x75, A: 0xff})
	titleText.TextStyle = fyne.TextStyle{Bold: true}
	titleText.TextSize = 28

	accentLine := canvas.NewRectangle(color.NRGBA{R: 0xff, G: 0x66, B: 0x66, A: 0xff})
	accentLine.SetMinSize(fyne.NewSize(220, 3))

	hotkeyRow := func(btn, clearBtn *widget.Button, indicator *widget.Label) fyne.CanvasObject {
		return container.NewBorder(nil, nil, nil, container.NewHBox(clearBtn, indicator), btn)
	}
	hotkeyCard := widget.NewCard("Hotkeys", "", container.NewVBox(
		widget.NewForm(
			widget.NewFormItem("Left click", hotkeyRow(leftBtn, leftClear, leftIndicator)),
			widget.NewFormItem("Right click", hotkeyRow(rightBtn, rightClear, rightIndicator)),
			widget.NewFormItem("Theme", themeSelect),
		),
		holdCheck,
	))

	speedTitle := widget.NewLabel("Speed")
	speedTitle.TextStyle = fyne.TextStyle{Bold: true}
	speedCard := widget.NewCard("Rate", "", container.NewVBox(
		unitRadio,
		container.NewBorder(nil, nil, speedTitle, speedValue, nil),
		speedSlider,
		randomCheck,
	))

	mainContent := container.NewVBox(
		titleText,
		accentLine,
		advisoryCard,
		container.NewGridWithColumns(2, hotkeyCard, speedCard),
		clicksLabel,
		statusText,
		initProgress,
		runBtn,
	)
	mainPanel := container.NewPadded(mainContent)

	var rootContent fyne.CanvasObject = mainPanel
	if debugLogs {
		logsCard := widget.NewCard("Logs", "", logScroll)
		split := container.NewVSplit(mainPanel, logsCard)
		split.SetOffset(0.7)
		rootContent = split
	}

	window.SetContent(rootContent)
	window.ShowAndRun()
	cleanup()
	return nil
}
