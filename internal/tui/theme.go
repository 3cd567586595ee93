package tui

import (
        "os"
        "strconv"
        "strings"

        "github.com/charmbracelet/lipgloss"
        "github.com/muesli/termenv"
)

// Theme/palette helpers.
//
// The TUI must stay readable on light and dark backgrounds, so colors are
// adaptive and "faint" is only applied on dark backgrounds.

func ac(light, dark string) lipgloss.AdaptiveColor {
        return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

func faintIfDark(st lipgloss.Style) lipgloss.Style {
        if lipgloss.HasDarkBackground() {
                return st.Faint(true)
        }
        return st
}

var (
        colorMuted       lipgloss.TerminalColor = ac("240", "243")
        colorChromeFg    lipgloss.TerminalColor = ac("240", "245")
        colorSelectedBg  lipgloss.TerminalColor = ac("#e9e9e9", "#262626")
        colorSelectedFg  lipgloss.TerminalColor = ac("235", "255")
        colorSurfaceBg   lipgloss.TerminalColor = ac("255", "235")
        colorSurfaceFg   lipgloss.TerminalColor = ac("235", "252")
        colorControlBg   lipgloss.TerminalColor = ac("252", "235")
        colorAccent      lipgloss.TerminalColor = ac("27", "62")
        colorErrorFg     lipgloss.TerminalColor = ac("160", "203")
        colorDisabledFg  lipgloss.TerminalColor = ac("246", "240")
        colorGrabbedBg   lipgloss.TerminalColor = ac("153", "24")
        colorOverrideFg  lipgloss.TerminalColor = ac("130", "214")
        colorSidebarEdge lipgloss.TerminalColor = ac("250", "238")
)

func styleMuted() lipgloss.Style {
        return faintIfDark(lipgloss.NewStyle().Foreground(colorMuted))
}

func styleHeader() lipgloss.Style {
        return lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
}

func styleError() lipgloss.Style {
        return lipgloss.NewStyle().Foreground(colorErrorFg)
}

// applyColorProfilePreference sets Lip Gloss's color profile for the TUI.
// termenv.EnvColorProfile honors CLICOLOR, which can disable colors in a TUI,
// so only NO_COLOR is honored here.
func applyColorProfilePreference() {
        if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
                lipgloss.SetColorProfile(termenv.Ascii)
                return
        }
        profile := termenv.ColorProfile()
        term := strings.ToLower(strings.TrimSpace(os.Getenv("TERM")))
        colorterm := strings.ToLower(strings.TrimSpace(os.Getenv("COLORTERM")))
        switch {
        case strings.Contains(colorterm, "truecolor") || strings.Contains(colorterm, "24bit"):
                if profile != termenv.Ascii {
                        profile = termenv.TrueColor
                }
        case strings.Contains(term, "256color"):
                if profile == termenv.Ascii || profile == termenv.ANSI {
                        profile = termenv.ANSI256
                }
        }
        lipgloss.SetColorProfile(profile)
}

// applyThemePreference configures background detection.
//
// Priority:
// 1) ISSUECFG_TUI_THEME=light|dark|auto
// 2) COLORFGBG heuristic ("fg;bg")
func applyThemePreference() {
        switch strings.ToLower(strings.TrimSpace(os.Getenv("ISSUECFG_TUI_THEME"))) {
        case "light":
                lipgloss.SetHasDarkBackground(false)
                return
        case "dark":
                lipgloss.SetHasDarkBackground(true)
                return
        }
        if v := strings.TrimSpace(os.Getenv("COLORFGBG")); v != "" {
                parts := strings.Split(v, ";")
                if bg, err := strconv.Atoi(strings.TrimSpace(parts[len(parts)-1])); err == nil {
                        lipgloss.SetHasDarkBackground(bg < 7)
                }
        }
}
